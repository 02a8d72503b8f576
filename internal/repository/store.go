package repository

import (
	"context"
	"errors"

	"github.com/healthguard/healthguard-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserStore persists registered accounts keyed by email.
type UserStore interface {
	// CreateUser stores a new user, failing with ErrDuplicateEmail if the email is taken.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// HealthStore is an append-only ledger of readings per user.
type HealthStore interface {
	// AppendRecord stores rec at the end of the user's ledger and returns its zero-based position.
	AppendRecord(ctx context.Context, userID string, rec model.HealthRecord) (int, error)
	// ListRecords returns the user's records in insertion order.
	ListRecords(ctx context.Context, userID string) ([]model.HealthRecord, error)
	// ListAbnormal returns, per user with at least one abnormal record, only those records.
	ListAbnormal(ctx context.Context) ([]model.UserRecords, error)
}

// ContactStore keeps one replace-all contact list per user.
type ContactStore interface {
	ReplaceContacts(ctx context.Context, userID string, contacts []model.Contact) error
	ListContacts(ctx context.Context, userID string) ([]model.Contact, error)
}

// Store is the full persistence surface injected into services.
type Store interface {
	UserStore
	HealthStore
	ContactStore
	Close() error
}
