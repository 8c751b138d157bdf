package models

import "time"

type User struct {
	EmployeeID   int       `json:"employeeID"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	EmailAddress string    `json:"emailAddress"`
	Department   string    `json:"department"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// DisplayName is the "First Last" form stamped onto tickets and action items.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
