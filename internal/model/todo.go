package model

import "time"

// CreatedAtLayout is the ISO-8601 layout used for new todos.
const CreatedAtLayout = "2006-01-02T15:04:05.000000Z07:00"

type Todo struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// FormatCreatedAt renders t the way new todos record their creation time.
func FormatCreatedAt(t time.Time) string {
	return t.Format(CreatedAtLayout)
}

// NextTodoID returns 1 + the highest id in todos, or 1 for an empty collection.
// Deleting the highest id lets the next call hand it out again.
func NextTodoID(todos []Todo) int {
	maxID := 0
	for _, t := range todos {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}
