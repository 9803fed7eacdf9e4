package postgres

import (
	"context"
	"database/sql"
	"time"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (full_name, email, phone_number, license_number, password_hash, role, email_verified, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, user.FullName, user.Email, user.PhoneNumber, user.LicenseNumber, user.PasswordHash, user.Role, user.EmailVerified, now, now).Scan(&user.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, full_name, email, phone_number, license_number, password_hash, role, email_verified, created_on, updated_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.LicenseNumber, &u.PasswordHash, &u.Role, &u.EmailVerified, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, full_name, email, phone_number, license_number, password_hash, role, email_verified, created_on, updated_on FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.LicenseNumber, &u.PasswordHash, &u.Role, &u.EmailVerified, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET full_name=$1, phone_number=$2, license_number=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, user.FullName, user.PhoneNumber, user.LicenseNumber, time.Now(), user.ID)
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	query := `UPDATE users SET password_hash=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), id)
	return err
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, id int32) error {
	query := `UPDATE users SET email_verified=true, updated_on=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *userRepository) ListCustomers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, full_name, email, phone_number, license_number, password_hash, role, email_verified, created_on, updated_on
	          FROM users WHERE role = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.LicenseNumber, &u.PasswordHash, &u.Role, &u.EmailVerified, &u.CreatedOn, &u.UpdatedOn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
