package repository

import (
	"context"
	"errors"
	"time"

	"qrt-tracker/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
	// ErrForeignKey is returned when a write would leave a dangling
	// reference: deleting a referenced row or pointing at a missing one.
	ErrForeignKey = errors.New("foreign key violation")
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// Update writes the profile fields; a non-empty passwordHash also
	// replaces the stored hash.
	Update(ctx context.Context, u *models.User, passwordHash string) error
	Delete(ctx context.Context, id int) error
}

type ReasonRepository interface {
	Create(ctx context.Context, reasonType string) (*models.Reason, error)
	List(ctx context.Context) ([]models.Reason, error)
	Get(ctx context.Context, id int) (*models.Reason, error)
	Update(ctx context.Context, id int, reasonType string) (*models.Reason, error)
	Delete(ctx context.Context, id int) error
}

type QRTRepository interface {
	// Create inserts the ticket and its items together.
	Create(ctx context.Context, q *models.QRT) error
	List(ctx context.Context, f QRTFilter) ([]models.QRT, error)
	Count(ctx context.Context, f QRTFilter) (int, error)
	Get(ctx context.Context, id int) (*models.QRT, error)
	// Update replaces scalar ticket fields and upserts the given items
	// together. Items with an ID must already belong to the ticket.
	Update(ctx context.Context, q *models.QRT, items []models.ActionItem) error
	Delete(ctx context.Context, id int) error
	// CompleteAll marks the ticket Complete and stamps every open item.
	CompleteAll(ctx context.Context, id int, by string, at time.Time) error
	// CompleteItem stamps one item and promotes the ticket when no open
	// items remain.
	CompleteItem(ctx context.Context, qrtID, itemID int, by string, at time.Time) error
	Summary(ctx context.Context, now time.Time) (Summary, error)
}

type Summary struct {
	InProgress int `json:"inProgress"`
	Complete   int `json:"complete"`
	Overdue    int `json:"overdue"`
}
