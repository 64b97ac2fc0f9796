package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"showroom-backend/internal/models"
)

var ErrNotFound = errors.New("not found")

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, nama, no_hp, password_hash, approved, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return r.DB.QueryRow(ctx, query,
		user.Email, user.Nama, user.NoHP, user.PasswordHash, user.Approved, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, email, nama, no_hp, password_hash, approved, role, created_at, updated_at
		FROM users WHERE id = $1`

	user := &models.User{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Nama, &user.NoHP, &user.PasswordHash,
		&user.Approved, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, nama, no_hp, password_hash, approved, role, created_at, updated_at
		FROM users WHERE email = $1`

	user := &models.User{}
	err := r.DB.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Nama, &user.NoHP, &user.PasswordHash,
		&user.Approved, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, email, nama, no_hp, password_hash, approved, role, created_at, updated_at
		FROM users ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Nama, &user.NoHP, &user.PasswordHash,
			&user.Approved, &user.Role, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) ListPending(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, email, nama, no_hp, password_hash, approved, role, created_at, updated_at
		FROM users WHERE approved = FALSE ORDER BY created_at ASC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Nama, &user.NoHP, &user.PasswordHash,
			&user.Approved, &user.Role, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) SetApproved(ctx context.Context, id int, approved bool) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET approved = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
		id, approved)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetRole(ctx context.Context, id int, role string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET role = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
		id, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
