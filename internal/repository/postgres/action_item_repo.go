package postgres

import (
	"context"
	"time"

	"qrt-tracker/internal/models"
	"qrt-tracker/internal/repository"
)

const itemCols = `id, qrt_id, sort_idx, section, COALESCE(description, ''), completed,
	COALESCE(completed_by, ''), completed_on, created_at, updated_at`

func scanItem(row rowScanner) (models.ActionItem, error) {
	var a models.ActionItem
	err := row.Scan(&a.ID, &a.QRTID, &a.SortIdx, &a.Section, &a.Description, &a.Completed,
		&a.CompletedBy, &a.CompletedOn, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// loadItems returns the action items of the given tickets keyed by ticket id,
// each slice ordered by sort index and capped at models.MaxActionItems.
func loadItems(ctx context.Context, q querier, qrtIDs []int) (map[int][]models.ActionItem, error) {
	out := make(map[int][]models.ActionItem, len(qrtIDs))
	if len(qrtIDs) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `
		SELECT `+itemCols+`
		FROM action_items
		WHERE qrt_id = ANY($1)
		ORDER BY qrt_id, sort_idx ASC, id ASC`, qrtIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		a, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		if len(out[a.QRTID]) < models.MaxActionItems {
			out[a.QRTID] = append(out[a.QRTID], a)
		}
	}
	return out, rows.Err()
}

func insertItem(ctx context.Context, q querier, qrtID int, a *models.ActionItem) error {
	a.QRTID = qrtID
	return q.QueryRow(ctx, `
		INSERT INTO action_items (qrt_id, sort_idx, section, description, completed, completed_by, completed_on)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at`,
		qrtID, a.SortIdx, a.Section, nullIfEmpty(a.Description), a.Completed, nullIfEmpty(a.CompletedBy), a.CompletedOn,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// updateItem edits the content fields of an item owned by qrtID.
func updateItem(ctx context.Context, q querier, qrtID int, a *models.ActionItem) error {
	ct, err := q.Exec(ctx, `
		UPDATE action_items SET sort_idx=$1, section=$2, description=$3, updated_at=now()
		WHERE id=$4 AND qrt_id=$5`,
		a.SortIdx, a.Section, nullIfEmpty(a.Description), a.ID, qrtID)
	if err != nil {
		return mapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// completeAllItems stamps every item of a ticket with the given completer
// and time.
func completeAllItems(ctx context.Context, q querier, qrtID int, by string, at time.Time) error {
	_, err := q.Exec(ctx, `
		UPDATE action_items SET completed=true, completed_by=$1, completed_on=$2, updated_at=now()
		WHERE qrt_id=$3`, by, at, qrtID)
	return err
}

func completeItem(ctx context.Context, q querier, qrtID, itemID int, by string, at time.Time) error {
	ct, err := q.Exec(ctx, `
		UPDATE action_items SET completed=true, completed_by=$1, completed_on=$2, updated_at=now()
		WHERE id=$3 AND qrt_id=$4`, by, at, itemID, qrtID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func countOpenItems(ctx context.Context, q querier, qrtID int) (int, error) {
	var n int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM action_items WHERE qrt_id=$1 AND completed=false`, qrtID).Scan(&n)
	return n, err
}
