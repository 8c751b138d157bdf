package postgres

import (
	"context"

	"qrt-tracker/internal/models"
	"qrt-tracker/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReasonRepo struct{ db *pgxpool.Pool }

func NewReasonRepo(db *pgxpool.Pool) repository.ReasonRepository { return &ReasonRepo{db: db} }

func (r *ReasonRepo) Create(ctx context.Context, reasonType string) (*models.Reason, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rs models.Reason
	err := r.db.QueryRow(ctx, `
		INSERT INTO reasons (reason_type) VALUES ($1)
		RETURNING id, reason_type, created_at, updated_at`, reasonType).
		Scan(&rs.ID, &rs.ReasonType, &rs.CreatedAt, &rs.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &rs, nil
}

func (r *ReasonRepo) List(ctx context.Context) ([]models.Reason, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, reason_type, created_at, updated_at FROM reasons ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Reason{}
	for rows.Next() {
		var rs models.Reason
		if err := rows.Scan(&rs.ID, &rs.ReasonType, &rs.CreatedAt, &rs.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

func (r *ReasonRepo) Get(ctx context.Context, id int) (*models.Reason, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rs models.Reason
	err := r.db.QueryRow(ctx, `SELECT id, reason_type, created_at, updated_at FROM reasons WHERE id=$1`, id).
		Scan(&rs.ID, &rs.ReasonType, &rs.CreatedAt, &rs.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &rs, nil
}

func (r *ReasonRepo) Update(ctx context.Context, id int, reasonType string) (*models.Reason, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rs models.Reason
	err := r.db.QueryRow(ctx, `
		UPDATE reasons SET reason_type=$1, updated_at=now()
		WHERE id=$2
		RETURNING id, reason_type, created_at, updated_at`, reasonType, id).
		Scan(&rs.ID, &rs.ReasonType, &rs.CreatedAt, &rs.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &rs, nil
}

// Delete fails with repository.ErrForeignKey while a QRT still references the reason.
func (r *ReasonRepo) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ct, err := r.db.Exec(ctx, `DELETE FROM reasons WHERE id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
