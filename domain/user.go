package domain

import "time"

// User represents a member of the team directory.
type User struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Title     string            `json:"title"`
	Email     string            `json:"email,omitempty"`
	Role      string            `json:"role"`
	IsAdmin   bool              `json:"isAdmin"`
	Status    string            `json:"status"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

const UserStatusActive = "active"

func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}

// Summary is the display projection shared with other users.
func (u *User) Summary() UserSummary {
	if u == nil {
		return UserSummary{}
	}
	return UserSummary{ID: u.ID, Name: u.Name, Title: u.Title, Role: u.Role}
}

// UserSummary never carries credentials or contact data.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Role  string `json:"role"`
}

// Caller is the identity supplied by the auth layer for every operation.
type Caller struct {
	UserID  string
	IsAdmin bool
}
