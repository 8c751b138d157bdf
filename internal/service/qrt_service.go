package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"qrt-tracker/internal/models"
	"qrt-tracker/internal/repository"
)

// PageSize is the number of tickets per listing page.
const PageSize = 10

// QRTInput holds the scalar ticket fields a client supplies on create and
// update. Update replaces all of them.
type QRTInput struct {
	Type         string
	JobNumber    string
	AssignedTo   string
	RequiredDate time.Time
	ReasonDesc   string
	ReasonID     *int
}

// ActionItemInput is a checklist entry from a client; ID != 0 edits an
// existing item of the ticket.
type ActionItemInput struct {
	ID          int
	SortIdx     *int
	Section     string
	Description string
}

type ListParams struct {
	Page         int
	Keyword      string
	ShowComplete bool
}

type QRTPage struct {
	QRTs  []models.QRT `json:"qrts"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
}

type QRTService struct {
	qrts repository.QRTRepository
	now  func() time.Time
}

func NewQRTService(qrts repository.QRTRepository) *QRTService {
	return &QRTService{qrts: qrts, now: time.Now}
}

// Create stores a new In Progress ticket generated by actor, together with
// its action items.
func (s *QRTService) Create(ctx context.Context, in QRTInput, items []ActionItemInput, actor *models.User) (*models.QRT, error) {
	q, err := buildQRT(in)
	if err != nil {
		return nil, err
	}
	q.Status = models.StatusInProgress
	q.GeneratedBy = actor.DisplayName()
	for _, it := range items {
		if it.ID != 0 {
			return nil, fail(ErrInvalid, "new action items must not carry an id")
		}
		a, err := buildItem(it)
		if err != nil {
			return nil, err
		}
		q.ActionItems = append(q.ActionItems, a)
	}

	if err := s.qrts.Create(ctx, q); err != nil {
		return nil, qrtWriteErr(err)
	}
	return s.Get(ctx, q.ID)
}

func (s *QRTService) List(ctx context.Context, p ListParams) (*QRTPage, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	f := repository.QRTFilter{
		Keyword:      strings.TrimSpace(p.Keyword),
		ShowComplete: p.ShowComplete,
		Limit:        PageSize,
		Offset:       PageSize * (page - 1),
	}
	count, err := s.qrts.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	items, err := s.qrts.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &QRTPage{QRTs: items, Page: page, Pages: (count + PageSize - 1) / PageSize}, nil
}

func (s *QRTService) Get(ctx context.Context, id int) (*models.QRT, error) {
	q, err := s.qrts.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fail(ErrNotFound, "QRT not found")
	}
	return q, err
}

// Update replaces the ticket fields wholesale and upserts the given items.
func (s *QRTService) Update(ctx context.Context, id int, in QRTInput, items []ActionItemInput) (*models.QRT, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	q, err := buildQRT(in)
	if err != nil {
		return nil, err
	}
	q.ID = cur.ID

	upserts := make([]models.ActionItem, 0, len(items))
	for _, it := range items {
		a, err := buildItem(it)
		if err != nil {
			return nil, err
		}
		a.ID = it.ID
		upserts = append(upserts, a)
	}

	if err := s.qrts.Update(ctx, q, upserts); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fail(ErrNotFound, "Action Item not found")
		}
		return nil, qrtWriteErr(err)
	}
	return s.Get(ctx, id)
}

func (s *QRTService) Delete(ctx context.Context, id int) error {
	err := s.qrts.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(ErrNotFound, "QRT not found")
	}
	return err
}

// CompleteAll closes the ticket and every open item in one step.
func (s *QRTService) CompleteAll(ctx context.Context, id int, actor *models.User) (*models.QRT, error) {
	err := s.qrts.CompleteAll(ctx, id, actor.DisplayName(), s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fail(ErrNotFound, "QRT not found")
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// CompleteActionItem closes one item; the ticket turns Complete once no open
// items remain.
func (s *QRTService) CompleteActionItem(ctx context.Context, qrtID, itemID int, actor *models.User) (*models.QRT, error) {
	if _, err := s.Get(ctx, qrtID); err != nil {
		return nil, err
	}
	err := s.qrts.CompleteItem(ctx, qrtID, itemID, actor.DisplayName(), s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fail(ErrNotFound, "Action Item not found")
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, qrtID)
}

func (s *QRTService) Summary(ctx context.Context) (repository.Summary, error) {
	return s.qrts.Summary(ctx, s.now())
}

func buildQRT(in QRTInput) (*models.QRT, error) {
	q := &models.QRT{
		Type:         strings.TrimSpace(in.Type),
		JobNumber:    strings.TrimSpace(in.JobNumber),
		AssignedTo:   strings.TrimSpace(in.AssignedTo),
		RequiredDate: in.RequiredDate,
		ReasonDesc:   strings.TrimSpace(in.ReasonDesc),
		ReasonID:     in.ReasonID,
	}
	switch {
	case q.Type == "":
		return nil, fail(ErrInvalid, "qrtType is required")
	case q.JobNumber == "":
		return nil, fail(ErrInvalid, "jobNumber is required")
	case q.RequiredDate.IsZero():
		return nil, fail(ErrInvalid, "requiredDate is required")
	case q.ReasonDesc == "":
		return nil, fail(ErrInvalid, "reasonDesc is required")
	}
	return q, nil
}

func buildItem(in ActionItemInput) (models.ActionItem, error) {
	a := models.ActionItem{
		Section:     strings.TrimSpace(in.Section),
		Description: strings.TrimSpace(in.Description),
	}
	if in.SortIdx == nil {
		return a, fail(ErrInvalid, "action item sortIdx is required")
	}
	if a.Section == "" {
		return a, fail(ErrInvalid, "action item section is required")
	}
	a.SortIdx = *in.SortIdx
	return a, nil
}

func qrtWriteErr(err error) error {
	if errors.Is(err, repository.ErrForeignKey) {
		return fail(ErrInvalid, "reasonId does not reference an existing reason")
	}
	return err
}
