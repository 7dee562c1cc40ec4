package entity

// Task belongs to exactly one user. Every non-privileged read or mutation
// must be filtered by OwnerID.
type Task struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	OwnerID int64  `json:"user_id"`
}
