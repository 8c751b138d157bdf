package models

import "time"

type Reason struct {
	ID         int       `json:"id"`
	ReasonType string    `json:"reasonType"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
