// Package memory is an in-process implementation of the repository
// interfaces with the same constraint semantics as the postgres package:
// unique employee id and email, restricted reason deletes and cascading
// ticket deletes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"qrt-tracker/internal/models"
	"qrt-tracker/internal/repository"
)

type userRow struct {
	user models.User
	hash string
}

// Store holds every table; the typed repositories share it.
type Store struct {
	mu      sync.Mutex
	users   map[int]userRow
	reasons map[int]models.Reason
	qrts    map[int]models.QRT
	items   map[int]models.ActionItem
	seq     struct{ reason, qrt, item int }
	now     func() time.Time
}

func New() *Store {
	return &Store{
		users:   map[int]userRow{},
		reasons: map[int]models.Reason{},
		qrts:    map[int]models.QRT{},
		items:   map[int]models.ActionItem{},
		now:     time.Now,
	}
}

func (s *Store) Users() repository.UserRepository { return (*UserRepo)(s) }
func (s *Store) Reasons() repository.ReasonRepository { return (*ReasonRepo)(s) }
func (s *Store) QRTs() repository.QRTRepository { return (*QRTRepo)(s) }

// -----------------------------------------------------------------------------
// Users
// -----------------------------------------------------------------------------

type UserRepo Store

func (r *UserRepo) Create(_ context.Context, u *models.User, passwordHash string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.EmployeeID]; ok {
		return repository.ErrDuplicate
	}
	if s.emailTaken(u.EmailAddress, 0) {
		return repository.ErrDuplicate
	}
	now := s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.EmployeeID] = userRow{user: *u, hash: passwordHash}
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, string, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.users {
		if strings.EqualFold(row.user.EmailAddress, email) {
			u := row.user
			return &u, row.hash, nil
		}
	}
	return nil, "", repository.ErrNotFound
}

func (r *UserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := row.user
	return &u, nil
}

func (r *UserRepo) List(_ context.Context) ([]models.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(s.users))
	for _, row := range s.users {
		out = append(out, row.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u *models.User, passwordHash string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.users[u.EmployeeID]
	if !ok {
		return repository.ErrNotFound
	}
	if s.emailTaken(u.EmailAddress, u.EmployeeID) {
		return repository.ErrDuplicate
	}
	u.CreatedAt = row.user.CreatedAt
	u.UpdatedAt = s.now()
	row.user = *u
	if passwordHash != "" {
		row.hash = passwordHash
	}
	s.users[u.EmployeeID] = row
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id int) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Store) emailTaken(email string, except int) bool {
	for id, row := range s.users {
		if id != except && strings.EqualFold(row.user.EmailAddress, email) {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Reasons
// -----------------------------------------------------------------------------

type ReasonRepo Store

func (r *ReasonRepo) Create(_ context.Context, reasonType string) (*models.Reason, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.reason++
	now := s.now()
	rs := models.Reason{ID: s.seq.reason, ReasonType: reasonType, CreatedAt: now, UpdatedAt: now}
	s.reasons[rs.ID] = rs
	return &rs, nil
}

func (r *ReasonRepo) List(_ context.Context) ([]models.Reason, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Reason, 0, len(s.reasons))
	for _, rs := range s.reasons {
		out = append(out, rs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ReasonRepo) Get(_ context.Context, id int) (*models.Reason, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, ok := s.reasons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rs, nil
}

func (r *ReasonRepo) Update(_ context.Context, id int, reasonType string) (*models.Reason, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, ok := s.reasons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rs.ReasonType = reasonType
	rs.UpdatedAt = s.now()
	s.reasons[id] = rs
	return &rs, nil
}

func (r *ReasonRepo) Delete(_ context.Context, id int) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reasons[id]; !ok {
		return repository.ErrNotFound
	}
	for _, q := range s.qrts {
		if q.ReasonID != nil && *q.ReasonID == id {
			return repository.ErrForeignKey
		}
	}
	delete(s.reasons, id)
	return nil
}

// -----------------------------------------------------------------------------
// QRTs
// -----------------------------------------------------------------------------

type QRTRepo Store

func (r *QRTRepo) Create(_ context.Context, q *models.QRT) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.reasonExists(q.ReasonID) {
		return repository.ErrForeignKey
	}
	s.seq.qrt++
	now := s.now()
	q.ID, q.CreatedAt, q.UpdatedAt = s.seq.qrt, now, now
	for i := range q.ActionItems {
		s.insertItem(q.ID, &q.ActionItems[i])
	}
	row := *q
	row.ActionItems, row.Reason = nil, nil
	s.qrts[q.ID] = row
	return nil
}

func (r *QRTRepo) List(_ context.Context, f repository.QRTFilter) ([]models.QRT, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.match(f)
	if f.Offset >= len(matched) {
		return []models.QRT{}, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	out := make([]models.QRT, 0, len(matched))
	for _, q := range matched {
		out = append(out, s.hydrate(q))
	}
	return out, nil
}

func (r *QRTRepo) Count(_ context.Context, f repository.QRTFilter) (int, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.match(f)), nil
}

func (r *QRTRepo) Get(_ context.Context, id int) (*models.QRT, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.qrts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	h := s.hydrate(q)
	return &h, nil
}

func (r *QRTRepo) Update(_ context.Context, q *models.QRT, items []models.ActionItem) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.qrts[q.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if !s.reasonExists(q.ReasonID) {
		return repository.ErrForeignKey
	}
	// validate before writing anything so a failure leaves no partial update
	for _, a := range items {
		if a.ID == 0 {
			continue
		}
		if prev, ok := s.items[a.ID]; !ok || prev.QRTID != q.ID {
			return repository.ErrNotFound
		}
	}

	cur.Type, cur.JobNumber, cur.AssignedTo = q.Type, q.JobNumber, q.AssignedTo
	cur.RequiredDate, cur.ReasonDesc, cur.ReasonID = q.RequiredDate, q.ReasonDesc, q.ReasonID
	cur.UpdatedAt = s.now()
	s.qrts[q.ID] = cur

	for i := range items {
		a := &items[i]
		if a.ID == 0 {
			s.insertItem(q.ID, a)
			continue
		}
		prev := s.items[a.ID]
		prev.SortIdx, prev.Section, prev.Description = a.SortIdx, a.Section, a.Description
		prev.UpdatedAt = s.now()
		s.items[a.ID] = prev
	}
	return nil
}

func (r *QRTRepo) Delete(_ context.Context, id int) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.qrts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.qrts, id)
	for itemID, a := range s.items {
		if a.QRTID == id {
			delete(s.items, itemID)
		}
	}
	return nil
}

func (r *QRTRepo) CompleteAll(_ context.Context, id int, by string, at time.Time) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.qrts[id]
	if !ok {
		return repository.ErrNotFound
	}
	for itemID, a := range s.items {
		if a.QRTID == id {
			a.Complete(by, at)
			s.items[itemID] = a
		}
	}
	q.Status = models.StatusComplete
	q.UpdatedAt = s.now()
	s.qrts[id] = q
	return nil
}

func (r *QRTRepo) CompleteItem(_ context.Context, qrtID, itemID int, by string, at time.Time) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.qrts[qrtID]
	if !ok {
		return repository.ErrNotFound
	}
	a, ok := s.items[itemID]
	if !ok || a.QRTID != qrtID {
		return repository.ErrNotFound
	}
	a.Complete(by, at)
	s.items[itemID] = a

	if h := s.hydrate(q); !h.AllItemsComplete() {
		return nil
	}
	q.Status = models.StatusComplete
	q.UpdatedAt = s.now()
	s.qrts[qrtID] = q
	return nil
}

func (r *QRTRepo) Summary(_ context.Context, now time.Time) (repository.Summary, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum repository.Summary
	for _, q := range s.qrts {
		switch q.Status {
		case models.StatusInProgress:
			sum.InProgress++
			if q.RequiredDate.Before(now) {
				sum.Overdue++
			}
		case models.StatusComplete:
			sum.Complete++
		}
	}
	return sum, nil
}

// match returns the tickets passing the filter ordered by id.
func (s *Store) match(f repository.QRTFilter) []models.QRT {
	statuses := f.Statuses()
	kw := strings.ToLower(strings.TrimSpace(f.Keyword))

	var out []models.QRT
	for _, q := range s.qrts {
		okStatus := false
		for _, st := range statuses {
			if q.Status == st {
				okStatus = true
				break
			}
		}
		if !okStatus {
			continue
		}
		if kw != "" && !keywordMatch(q, kw) {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func keywordMatch(q models.QRT, kw string) bool {
	for _, field := range []string{
		q.JobNumber,
		q.GeneratedBy,
		q.AssignedTo,
		q.Type,
		q.RequiredDate.UTC().Format(repository.RequiredDateLayout),
		q.ReasonDesc,
	} {
		if strings.Contains(strings.ToLower(field), kw) {
			return true
		}
	}
	return false
}

// hydrate attaches a copy of the ticket's reason and sorted items.
func (s *Store) hydrate(q models.QRT) models.QRT {
	if q.ReasonID != nil {
		if rs, ok := s.reasons[*q.ReasonID]; ok {
			q.Reason = &rs
		}
	}
	items := []models.ActionItem{}
	for _, a := range s.items {
		if a.QRTID == q.ID {
			items = append(items, a)
		}
	}
	q.ActionItems = models.SortItems(items)
	return q
}

func (s *Store) insertItem(qrtID int, a *models.ActionItem) {
	s.seq.item++
	now := s.now()
	a.ID, a.QRTID, a.CreatedAt, a.UpdatedAt = s.seq.item, qrtID, now, now
	s.items[a.ID] = *a
}

func (s *Store) reasonExists(id *int) bool {
	if id == nil {
		return true
	}
	_, ok := s.reasons[*id]
	return ok
}
