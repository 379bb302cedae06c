package services

import (
	"context"
	"errors"

	"backoffice-service/apperrors"
	"backoffice-service/models"
	"backoffice-service/repositories"
	"backoffice-service/store"
)

type ContactService struct {
	contacts *repositories.ContactRepository
	users    *repositories.UserRepository
}

func NewContactService(contacts *repositories.ContactRepository, users *repositories.UserRepository) *ContactService {
	return &ContactService{contacts: contacts, users: users}
}

// Create attaches the single contact a user may have.
func (s *ContactService) Create(ctx context.Context, username string, req models.CreateContactRequest) (*models.Contact, error) {
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !exists {
		return nil, apperrors.NotFound("User not found")
	}

	if _, err := s.contacts.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.Conflict("User already has a contact")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	contact := models.Contact{
		Username:  username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	id, err := s.contacts.Create(ctx, contact)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	contact.ID = id
	return &contact, nil
}

func (s *ContactService) Get(ctx context.Context, username string) (*models.Contact, error) {
	contact, err := s.contacts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Contact not found")
		}
		return nil, apperrors.Internal(err)
	}
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, username string, patch models.ContactPatch) (*models.Contact, error) {
	contact, err := s.contacts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Contact not found")
		}
		return nil, apperrors.Internal(err)
	}

	merged := patch.Apply(*contact)
	if err := s.contacts.Update(ctx, merged); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &merged, nil
}

func (s *ContactService) Delete(ctx context.Context, username string) error {
	if err := s.contacts.Delete(ctx, username); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Contact not found")
		}
		return apperrors.Internal(err)
	}
	return nil
}
