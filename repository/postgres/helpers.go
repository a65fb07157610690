package postgres

import (
	"encoding/json"
	"reflect"
	"time"
)

func marshalMap(data map[string]string) []byte {
	if len(data) == 0 {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return b
}

// marshalList encodes a slice for a JSONB array column, never as null.
func marshalList(list interface{}) ([]byte, error) {
	if v := reflect.ValueOf(list); !v.IsValid() || (v.Kind() == reflect.Slice && v.Len() == 0) {
		return []byte("[]"), nil
	}
	return json.Marshal(list)
}

func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// limitArg maps a non-positive limit to NULL, which Postgres treats as no limit.
func limitArg(limit int) interface{} {
	if limit <= 0 {
		return nil
	}
	return limit
}

func offsetArg(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
