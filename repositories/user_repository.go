package repositories

import (
	"context"
	"database/sql"
	"errors"

	"backoffice-service/models"
	"backoffice-service/store"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, password, role) VALUES (?, ?, ?)",
		user.Username, user.Password, user.Role)
	return err
}

func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByUsername returns the user including the password hash; callers that
// serialize a user never expose it (the field is json:"-").
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var (
		u         models.User
		contactID sql.NullInt64
		first     sql.NullString
		last      sql.NullString
		email     sql.NullString
		phone     sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT u.username, u.password, u.role,
		       c.id, c.first_name, c.last_name, c.email, c.phone
		FROM users u
		LEFT JOIN contacts c ON c.username = u.username
		WHERE u.username = ?
	`, username).Scan(&u.Username, &u.Password, &u.Role,
		&contactID, &first, &last, &email, &phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if contactID.Valid {
		u.Contact = &models.Contact{
			ID:        int(contactID.Int64),
			Username:  u.Username,
			FirstName: first.String,
			LastName:  last.String,
			Email:     email.String,
			Phone:     phone.String,
		}
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, page, limit int, role string) ([]models.User, int, error) {
	where := ""
	args := []any{}
	if role != "" {
		where = " WHERE u.role = ?"
		args = append(args, role)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users u"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, (page-1)*limit)
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.username, u.role,
		       c.id, c.first_name, c.last_name, c.email, c.phone
		FROM users u
		LEFT JOIN contacts c ON c.username = u.username`+where+`
		ORDER BY u.username ASC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var (
			u         models.User
			contactID sql.NullInt64
			first     sql.NullString
			last      sql.NullString
			email     sql.NullString
			phone     sql.NullString
		)
		if err := rows.Scan(&u.Username, &u.Role,
			&contactID, &first, &last, &email, &phone); err != nil {
			return nil, 0, err
		}
		if contactID.Valid {
			u.Contact = &models.Contact{
				ID:        int(contactID.Int64),
				Username:  u.Username,
				FirstName: first.String,
				LastName:  last.String,
				Email:     email.String,
				Phone:     phone.String,
			}
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// Update writes the merged user row. Existence is checked by the service
// beforehand; RowsAffected is not inspected because MySQL reports zero for
// a no-op update.
func (r *UserRepository) Update(ctx context.Context, user models.User) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET password = ?, role = ? WHERE username = ?",
		user.Password, user.Role, user.Username)
	return err
}
