package service

import (
	"context"

	"github.com/healthguard/healthguard-go/internal/model"
	"github.com/healthguard/healthguard-go/internal/repository"
)

// ContactService manages a user's emergency contact list.
type ContactService struct {
	store repository.ContactStore
}

// NewContactService creates a new ContactService.
func NewContactService(store repository.ContactStore) *ContactService {
	return &ContactService{store: store}
}

// Replace overwrites the stored list; nil clears it.
func (s *ContactService) Replace(ctx context.Context, userID string, contacts []model.Contact) error {
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return s.store.ReplaceContacts(ctx, userID, contacts)
}

// List returns the saved contacts, or an empty list if none were saved.
func (s *ContactService) List(ctx context.Context, userID string) ([]model.Contact, error) {
	contacts, err := s.store.ListContacts(ctx, userID)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return contacts, nil
}
