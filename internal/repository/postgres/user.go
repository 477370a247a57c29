package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, role, device_token, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`
	now := time.Now()
	user.CreatedOn = now
	user.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Role, user.DeviceToken, now,
	).Scan(&user.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT id, email, password_hash, name, role, device_token, created_on, updated_on
	          FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, name, role, device_token, created_on, updated_on
	          FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email = $1, name = $2, role = $3, device_token = $4, updated_on = $5
	          WHERE id = $6`
	user.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.Email, user.Name, user.Role, user.DeviceToken, user.UpdatedOn, user.ID)
	return err
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, email, password_hash, name, role, device_token, created_on, updated_on
	          FROM users WHERE role = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.DeviceToken, &u.CreatedOn, &u.UpdatedOn); err != nil {
			return nil, err
		}
		admins = append(admins, u)
	}
	return admins, rows.Err()
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.DeviceToken, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("user not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
