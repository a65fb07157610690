package monitor

import "time"

type Status struct {
	Store       bool      `json:"store"`
	StoreDriver string    `json:"store_driver"`
	Redis       bool      `json:"redis"`
	Buffer      bool      `json:"buffer"`
	BufferSize  int       `json:"buffer_size"`
	LastCheck   time.Time `json:"last_check"`
}
