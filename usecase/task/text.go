package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/fastygo/taskboard/domain"
)

// dateLayout renders dates as "Mon Jan 02 2006".
const dateLayout = "Mon Jan 02 2006"

func assignmentText(teamSize int, priority domain.Priority, date time.Time) string {
	var b strings.Builder
	b.WriteString(assignedPhrase(teamSize))
	fmt.Fprintf(&b, " The task priority is set at %s priority, so check and act accordingly. The task date is %s. Thank you!",
		priority, date.Format(dateLayout))
	return b.String()
}

func duplicateText(teamSize int, priority domain.Priority, date time.Time) string {
	var b strings.Builder
	b.WriteString(assignedPhrase(teamSize))
	fmt.Fprintf(&b, " The task priority is set at %s priority, so act accordingly. The task date is %s.",
		priority, date.Format(dateLayout))
	return b.String()
}

func assignedPhrase(teamSize int) string {
	phrase := "New task has been assigned to you"
	if teamSize > 1 {
		phrase += fmt.Sprintf(" and %d others.", teamSize-1)
	}
	return phrase
}
