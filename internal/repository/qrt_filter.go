package repository

import (
	"strings"

	"qrt-tracker/internal/models"
)

type QRTFilter struct {
	Keyword      string
	ShowComplete bool
	Limit        int
	Offset       int
}

// Statuses returns the ticket statuses the filter admits.
func (f QRTFilter) Statuses() []string {
	if f.ShowComplete {
		return []string{models.StatusInProgress, models.StatusComplete}
	}
	return []string{models.StatusInProgress}
}

// LikePattern wraps the keyword for a substring LIKE match, escaping the
// LIKE metacharacters with a backslash.
func (f QRTFilter) LikePattern() string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(f.Keyword)) + "%"
}

// RequiredDateLayout is how the required date is rendered when matched
// against a keyword.
const RequiredDateLayout = "2006-01-02 15:04:05"
