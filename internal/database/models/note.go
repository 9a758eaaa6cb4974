package models

import "time"

// TimeLayout is a fixed-width ISO-8601 UTC layout. The fraction is always
// six digits so lexicographic order on timestamps equals chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Now returns the current UTC time in TimeLayout.
func Now() string {
	return time.Now().UTC().Format(TimeLayout)
}
