package repositories

import (
	"context"
	"database/sql"
	"errors"

	"backoffice-service/models"
	"backoffice-service/store"
)

type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact models.Contact) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO contacts (username, first_name, last_name, email, phone) VALUES (?, ?, ?, ?, ?)",
		contact.Username, contact.FirstName, contact.LastName, contact.Email, contact.Phone)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *ContactRepository) GetByUsername(ctx context.Context, username string) (*models.Contact, error) {
	var c models.Contact
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name, email, phone
		FROM contacts
		WHERE username = ?
	`, username).Scan(&c.ID, &c.Username, &c.FirstName, &c.LastName, &c.Email, &c.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact models.Contact) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE contacts SET first_name = ?, last_name = ?, email = ?, phone = ? WHERE username = ?",
		contact.FirstName, contact.LastName, contact.Email, contact.Phone, contact.Username)
	return err
}

func (r *ContactRepository) Delete(ctx context.Context, username string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM contacts WHERE username = ?", username)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
