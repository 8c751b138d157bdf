package models

import (
	"sort"
	"time"
)

const (
	StatusInProgress = "In Progress"
	StatusComplete   = "Complete"
)

// MaxActionItems caps how many items are loaded with a ticket.
const MaxActionItems = 999

type QRT struct {
	ID           int          `json:"qrtID"`
	Status       string       `json:"qrtStatus"`
	Type         string       `json:"qrtType"`
	JobNumber    string       `json:"jobNumber"`
	GeneratedBy  string       `json:"generatedBy"`
	AssignedTo   string       `json:"assignedTo"`
	RequiredDate time.Time    `json:"requiredDate"`
	ReasonDesc   string       `json:"reasonDesc"`
	ReasonID     *int         `json:"reasonId"`
	Reason       *Reason      `json:"reason"`
	ActionItems  []ActionItem `json:"actionItems"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// AllItemsComplete reports whether no action item is left open.
// A ticket without items counts as complete.
func (q *QRT) AllItemsComplete() bool {
	for _, a := range q.ActionItems {
		if !a.Completed {
			return false
		}
	}
	return true
}

// SortItems orders action items by sort index, then id, and applies the
// MaxActionItems cap.
func SortItems(items []ActionItem) []ActionItem {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortIdx != items[j].SortIdx {
			return items[i].SortIdx < items[j].SortIdx
		}
		return items[i].ID < items[j].ID
	})
	if len(items) > MaxActionItems {
		items = items[:MaxActionItems]
	}
	return items
}
