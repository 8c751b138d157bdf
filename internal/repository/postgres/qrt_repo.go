package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"qrt-tracker/internal/models"
	"qrt-tracker/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QRTRepo struct{ db *pgxpool.Pool }

func NewQRTRepo(db *pgxpool.Pool) repository.QRTRepository { return &QRTRepo{db: db} }

const qrtSelect = `
	SELECT
		q.id, q.status, q.qrt_type, q.job_number, q.generated_by, COALESCE(q.assigned_to, ''),
		q.required_date, q.reason_desc, q.reason_id, q.created_at, q.updated_at,
		r.id, r.reason_type, r.created_at, r.updated_at
	FROM qrts q
	LEFT JOIN reasons r ON r.id = q.reason_id`

func scanQRT(row rowScanner) (models.QRT, error) {
	var (
		q          models.QRT
		rID        *int
		rType      *string
		rCreatedAt *time.Time
		rUpdatedAt *time.Time
	)
	err := row.Scan(
		&q.ID, &q.Status, &q.Type, &q.JobNumber, &q.GeneratedBy, &q.AssignedTo,
		&q.RequiredDate, &q.ReasonDesc, &q.ReasonID, &q.CreatedAt, &q.UpdatedAt,
		&rID, &rType, &rCreatedAt, &rUpdatedAt,
	)
	if err != nil {
		return q, err
	}
	if rID != nil {
		q.Reason = &models.Reason{ID: *rID}
		if rType != nil {
			q.Reason.ReasonType = *rType
		}
		if rCreatedAt != nil {
			q.Reason.CreatedAt = *rCreatedAt
		}
		if rUpdatedAt != nil {
			q.Reason.UpdatedAt = *rUpdatedAt
		}
	}
	q.ActionItems = []models.ActionItem{}
	return q, nil
}

// -----------------------------------------------------------------------------
// Listing with keyword + status filter + pagination
// -----------------------------------------------------------------------------

// List returns a page of tickets with their reason and action items.
func (r *QRTRepo) List(ctx context.Context, f repository.QRTFilter) ([]models.QRT, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	whereSQL, args := buildQRTWhere(f)
	sql := fmt.Sprintf(`%s
		%s
		ORDER BY q.id ASC
		LIMIT $%d OFFSET $%d`, qrtSelect, whereSQL, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	out := []models.QRT{}
	for rows.Next() {
		q, err := scanQRT(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachItems(ctx, r.db, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of tickets matching the filter (for pagination).
func (r *QRTRepo) Count(ctx context.Context, f repository.QRTFilter) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	whereSQL, args := buildQRTWhere(f)
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM qrts q `+whereSQL, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// -----------------------------------------------------------------------------
// Single ticket + create/update/delete
// -----------------------------------------------------------------------------

func (r *QRTRepo) Get(ctx context.Context, id int) (*models.QRT, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return getQRT(ctx, r.db, id)
}

func getQRT(ctx context.Context, db querier, id int) (*models.QRT, error) {
	q, err := scanQRT(db.QueryRow(ctx, qrtSelect+` WHERE q.id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	out := []models.QRT{q}
	if err := attachItems(ctx, db, out); err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (r *QRTRepo) Create(ctx context.Context, q *models.QRT) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO qrts (status, qrt_type, job_number, generated_by, assigned_to, required_date, reason_desc, reason_id)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id, created_at, updated_at`,
			q.Status, q.Type, q.JobNumber, q.GeneratedBy, nullIfEmpty(q.AssignedTo), q.RequiredDate, q.ReasonDesc, q.ReasonID,
		).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return mapErr(err)
		}
		for i := range q.ActionItems {
			if err := insertItem(ctx, tx, q.ID, &q.ActionItems[i]); err != nil {
				return mapErr(err)
			}
		}
		return nil
	})
}

func (r *QRTRepo) Update(ctx context.Context, q *models.QRT, items []models.ActionItem) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `
			UPDATE qrts SET
				qrt_type=$1, job_number=$2, assigned_to=$3, required_date=$4, reason_desc=$5, reason_id=$6, updated_at=now()
			WHERE id=$7`,
			q.Type, q.JobNumber, nullIfEmpty(q.AssignedTo), q.RequiredDate, q.ReasonDesc, q.ReasonID, q.ID,
		)
		if err != nil {
			return mapErr(err)
		}
		if ct.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		for i := range items {
			if items[i].ID != 0 {
				if err := updateItem(ctx, tx, q.ID, &items[i]); err != nil {
					return err
				}
				continue
			}
			if err := insertItem(ctx, tx, q.ID, &items[i]); err != nil {
				return mapErr(err)
			}
		}
		return nil
	})
}

// Delete removes the ticket; its action items go with it (ON DELETE CASCADE).
func (r *QRTRepo) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ct, err := r.db.Exec(ctx, `DELETE FROM qrts WHERE id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------------------------
// Completion
// -----------------------------------------------------------------------------

func (r *QRTRepo) CompleteAll(ctx context.Context, id int, by string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := setStatus(ctx, tx, id, models.StatusComplete); err != nil {
			return err
		}
		return completeAllItems(ctx, tx, id, by, at)
	})
}

func (r *QRTRepo) CompleteItem(ctx context.Context, qrtID, itemID int, by string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		// lock the ticket row so concurrent completions promote it once
		var status string
		if err := tx.QueryRow(ctx, `SELECT status FROM qrts WHERE id=$1 FOR UPDATE`, qrtID).Scan(&status); err != nil {
			return mapErr(err)
		}
		if err := completeItem(ctx, tx, qrtID, itemID, by, at); err != nil {
			return err
		}
		open, err := countOpenItems(ctx, tx, qrtID)
		if err != nil {
			return err
		}
		if open == 0 && status != models.StatusComplete {
			return setStatus(ctx, tx, qrtID, models.StatusComplete)
		}
		return nil
	})
}

func setStatus(ctx context.Context, db querier, id int, status string) error {
	ct, err := db.Exec(ctx, `UPDATE qrts SET status=$1, updated_at=now() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------------------------
// Reporting helpers (used by /api/reports)
// -----------------------------------------------------------------------------

func (r *QRTRepo) Summary(ctx context.Context, now time.Time) (repository.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s repository.Summary
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $1 AND required_date < $3)
		FROM qrts`, models.StatusInProgress, models.StatusComplete, now).
		Scan(&s.InProgress, &s.Complete, &s.Overdue)
	return s, err
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// buildQRTWhere composes the WHERE clause: (keyword OR-group) AND status filter.
func buildQRTWhere(f repository.QRTFilter) (string, []any) {
	args := []any{f.Statuses()}
	clauses := []string{"q.status = ANY($1)"}

	if strings.TrimSpace(f.Keyword) != "" {
		args = append(args, f.LikePattern())
		p := "$" + itoa(len(args))
		clauses = append(clauses, "("+strings.Join([]string{
			"q.job_number ILIKE " + p,
			"q.generated_by ILIKE " + p,
			"COALESCE(q.assigned_to, '') ILIKE " + p,
			"q.qrt_type ILIKE " + p,
			"to_char(q.required_date AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS') ILIKE " + p,
			"q.reason_desc ILIKE " + p,
		}, " OR ")+")")
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func attachItems(ctx context.Context, db querier, qrts []models.QRT) error {
	ids := make([]int, len(qrts))
	for i := range qrts {
		ids[i] = qrts[i].ID
	}
	items, err := loadItems(ctx, db, ids)
	if err != nil {
		return err
	}
	for i := range qrts {
		if it, ok := items[qrts[i].ID]; ok {
			qrts[i].ActionItems = it
		}
	}
	return nil
}
