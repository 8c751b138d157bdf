package postgres

import (
	"context"

	"qrt-tracker/internal/models"
	"qrt-tracker/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct{ db *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) repository.UserRepository { return &UserRepo{db: db} }

const userCols = `employee_id, first_name, last_name, email_address, department, is_admin, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, extra ...any) (*models.User, error) {
	var u models.User
	dest := append([]any{
		&u.EmployeeID, &u.FirstName, &u.LastName, &u.EmailAddress,
		&u.Department, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// Create inserts the user and stores the bcrypt hash in password_h.
func (r *UserRepo) Create(ctx context.Context, u *models.User, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO users (employee_id, first_name, last_name, email_address, department, is_admin, password_h)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		u.EmployeeID, u.FirstName, u.LastName, u.EmailAddress, u.Department, u.IsAdmin, passwordHash).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	return mapErr(err)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var ph string
	u, err := scanUser(r.db.QueryRow(ctx, `
		SELECT `+userCols+`, password_h
		FROM users WHERE lower(email_address) = lower($1)`, email), &ph)
	if err != nil {
		return nil, "", err
	}
	return u, ph, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE employee_id = $1`, id))
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UserRepo) Update(ctx context.Context, u *models.User, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET first_name=$1, last_name=$2, email_address=$3, department=$4, is_admin=$5,
			password_h=COALESCE($6, password_h), updated_at=now()
		WHERE employee_id=$7
		RETURNING created_at, updated_at`,
		u.FirstName, u.LastName, u.EmailAddress, u.Department, u.IsAdmin, nullIfEmpty(passwordHash), u.EmployeeID).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	return mapErr(err)
}

func (r *UserRepo) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ct, err := r.db.Exec(ctx, `DELETE FROM users WHERE employee_id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
