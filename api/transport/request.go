package transport

type ProfileUpdateRequest struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// TaskRequest is the body of task create and update calls.
type TaskRequest struct {
	Title    string   `json:"title"`
	Team     []string `json:"team"`
	Stage    string   `json:"stage"`
	Priority string   `json:"priority"`
	Date     *Date    `json:"date"`
	Deadline *Date    `json:"deadline"`
	Assets   []string `json:"assets"`
}

type ActivityRequest struct {
	Type     string `json:"type"`
	Activity string `json:"activity"`
}

type SubTaskRequest struct {
	Title string `json:"title"`
	Tag   string `json:"tag"`
	Date  *Date  `json:"date"`
}

// TrashActionResult reports how many tasks a delete/restore action touched.
type TrashActionResult struct {
	Action   string `json:"action"`
	Affected int64  `json:"affected"`
}
