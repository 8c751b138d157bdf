package models

import "time"

type ActionItem struct {
	ID          int        `json:"id"`
	QRTID       int        `json:"qrtId"`
	SortIdx     int        `json:"sortIdx"`
	Section     string     `json:"section"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CompletedBy string     `json:"completedBy"`
	CompletedOn *time.Time `json:"completedOn"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Complete stamps the item as done by the given person.
func (a *ActionItem) Complete(by string, at time.Time) {
	a.Completed = true
	a.CompletedBy = by
	a.CompletedOn = &at
}
