package service

import (
	"context"
	"errors"
	"strings"

	"qrt-tracker/internal/models"
	"qrt-tracker/internal/repository"
)

type ReasonService struct {
	reasons repository.ReasonRepository
}

func NewReasonService(reasons repository.ReasonRepository) *ReasonService {
	return &ReasonService{reasons: reasons}
}

func (s *ReasonService) Create(ctx context.Context, reasonType string) (*models.Reason, error) {
	reasonType = strings.TrimSpace(reasonType)
	if reasonType == "" {
		return nil, fail(ErrInvalid, "reasonType is required")
	}
	return s.reasons.Create(ctx, reasonType)
}

func (s *ReasonService) List(ctx context.Context) ([]models.Reason, error) {
	return s.reasons.List(ctx)
}

func (s *ReasonService) Get(ctx context.Context, id int) (*models.Reason, error) {
	r, err := s.reasons.Get(ctx, id)
	return r, reasonErr(err)
}

func (s *ReasonService) Update(ctx context.Context, id int, reasonType string) (*models.Reason, error) {
	reasonType = strings.TrimSpace(reasonType)
	if reasonType == "" {
		return nil, fail(ErrInvalid, "reasonType is required")
	}
	r, err := s.reasons.Update(ctx, id, reasonType)
	return r, reasonErr(err)
}

// Delete refuses to remove a reason that tickets still point at.
func (s *ReasonService) Delete(ctx context.Context, id int) error {
	return reasonErr(s.reasons.Delete(ctx, id))
}

func reasonErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fail(ErrNotFound, "Reason not found")
	case errors.Is(err, repository.ErrForeignKey):
		return fail(ErrConflict, "Reason is referenced by one or more QRTs")
	}
	return err
}
