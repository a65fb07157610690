package domain

// Statistics is the dashboard report for a single caller.
type Statistics struct {
	TotalTasks int            `json:"totalTasks"`
	Last10Task []TaskView     `json:"last10Task"`
	Users      []UserSummary  `json:"users"`
	Tasks      map[Stage]int  `json:"tasks"`
	GraphData  []PriorityStat `json:"graphData"`
}

type PriorityStat struct {
	Name  Priority `json:"name"`
	Total int      `json:"total"`
}
