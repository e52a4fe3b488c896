package postgresql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Every read goes through this predicate so deactivated accounts stay
// invisible without scattering the filter across queries.
const activeUser = "is_active = TRUE"

const userColumns = `id, email, first_name, last_name, password, employee_identifier, phone_number,
		   role, is_active, is_email_verified, email_verified_at,
		   refresh_token, refresh_token_expires_at,
		   password_reset_token, password_reset_expires_at,
		   last_login_at, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.EmployeeIdentifier,
		&u.PhoneNumber,
		&u.Role,
		&u.IsActive,
		&u.IsEmailVerified,
		&u.EmailVerifiedAt,
		&u.RefreshTokenHash,
		&u.RefreshTokenExpiresAt,
		&u.PasswordResetTokenHash,
		&u.PasswordResetExpiresAt,
		&u.LastLoginAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			email, first_name, last_name, password, employee_identifier, phone_number, role
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.Email,
		newUser.FirstName,
		newUser.LastName,
		newUser.PasswordHash,
		newUser.EmployeeIdentifier,
		newUser.PhoneNumber,
		newUser.Role,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Two unique constraints can fire here; report the right one.
			if strings.Contains(pgErr.ConstraintName, "employee_identifier") {
				return user.User{}, user.ErrUserIdentifierExists
			}
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, err
	}

	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND ` + activeUser

	found, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return found, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND ` + activeUser

	found, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return found, nil
}

// ExistsByEmail implements user.UserRepository. Inactive accounts
// still block the address; emails stay globally unique.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := `SELECT COUNT(*) FROM users WHERE ` + activeUser + ` AND ($1 = '' OR email ILIKE '%' || $1 || '%')`
	var total int64
	if err := q.QueryRow(ctx, countQuery, filter.Search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ` + activeUser + ` AND ($1 = '' OR email ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := q.Query(ctx, query, filter.Search, filter.Limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, updated user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, phone_number = $3, password = $4, role = $5, updated_at = NOW()
		WHERE id = $6 AND ` + activeUser + `
		RETURNING ` + userColumns

	result, err := scanUser(q.QueryRow(ctx, query,
		updated.FirstName,
		updated.LastName,
		updated.PhoneNumber,
		updated.PasswordHash,
		updated.Role,
		updated.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return result, nil
}

// UpdatePassword implements user.UserRepository. The reset token and
// its expiry are cleared in the same statement so a used token can
// never be replayed.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password = $1, password_reset_token = NULL, password_reset_expires_at = NULL, updated_at = NOW()
		WHERE id = $2 AND ` + activeUser

	tag, err := q.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateRefreshToken implements user.UserRepository. Nil clears the
// stored token (logout).
func (r *userRepositoryImpl) UpdateRefreshToken(ctx context.Context, id string, tokenHash *string, expiresAt *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expires_at = $2, updated_at = NOW()
		WHERE id = $3 AND ` + activeUser

	tag, err := q.Exec(ctx, query, tokenHash, expiresAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateResetToken implements user.UserRepository.
func (r *userRepositoryImpl) UpdateResetToken(ctx context.Context, id string, tokenHash string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password_reset_token = $1, password_reset_expires_at = $2, updated_at = NOW()
		WHERE id = $3 AND ` + activeUser

	tag, err := q.Exec(ctx, query, tokenHash, expiresAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin implements user.UserRepository.
func (r *userRepositoryImpl) UpdateLastLogin(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	return err
}

// Deactivate implements user.UserRepository. Soft delete; attendance
// history stays intact.
func (r *userRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET is_active = FALSE, refresh_token = NULL, refresh_token_expires_at = NULL, updated_at = NOW()
		WHERE id = $1 AND ` + activeUser

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// CountActiveByRole implements user.UserRepository.
func (r *userRepositoryImpl) CountActiveByRole(ctx context.Context, role user.Role) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1 AND `+activeUser, role).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
