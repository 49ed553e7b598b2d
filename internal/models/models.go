package models

import "time"

// Task status values. The storage layer does not constrain the column;
// validation happens at the HTTP boundary.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	UserID      int       `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}
