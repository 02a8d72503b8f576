package repository

import (
	"bytes"
	"context"
	"sync"

	"github.com/healthguard/healthguard-go/internal/model"
)

// MemoryStore keeps all state in process memory. Each bucket has its own
// lock; reads return copies so callers never alias stored slices.
type MemoryStore struct {
	usersMu sync.RWMutex
	byEmail map[string]*model.User
	byID    map[string]*model.User

	healthMu  sync.RWMutex
	records   map[string][]model.HealthRecord
	userOrder []string

	contactsMu sync.RWMutex
	contacts   map[string][]model.Contact
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byEmail:  make(map[string]*model.User),
		byID:     make(map[string]*model.User),
		records:  make(map[string][]model.HealthRecord),
		contacts: make(map[string][]model.Contact),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *model.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}

	u := *user
	s.byEmail[u.Email] = &u
	s.byID[u.ID] = &u
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) AppendRecord(_ context.Context, userID string, rec model.HealthRecord) (int, error) {
	s.healthMu.Lock()
	defer s.healthMu.Unlock()

	existing, ok := s.records[userID]
	if !ok {
		s.userOrder = append(s.userOrder, userID)
	}
	s.records[userID] = append(existing, rec)
	return len(existing), nil
}

func (s *MemoryStore) ListRecords(_ context.Context, userID string) ([]model.HealthRecord, error) {
	s.healthMu.RLock()
	defer s.healthMu.RUnlock()

	out := make([]model.HealthRecord, len(s.records[userID]))
	copy(out, s.records[userID])
	return out, nil
}

func (s *MemoryStore) ListAbnormal(_ context.Context) ([]model.UserRecords, error) {
	s.healthMu.RLock()
	defer s.healthMu.RUnlock()

	var out []model.UserRecords
	for _, userID := range s.userOrder {
		var abnormal []model.HealthRecord
		for _, rec := range s.records[userID] {
			if rec.Abnormal() {
				abnormal = append(abnormal, rec)
			}
		}
		if len(abnormal) > 0 {
			out = append(out, model.UserRecords{UserID: userID, Records: abnormal})
		}
	}
	return out, nil
}

func (s *MemoryStore) ReplaceContacts(_ context.Context, userID string, contacts []model.Contact) error {
	cp := make([]model.Contact, len(contacts))
	for i, c := range contacts {
		cp[i] = model.Contact(bytes.Clone(c))
	}

	s.contactsMu.Lock()
	defer s.contactsMu.Unlock()

	s.contacts[userID] = cp
	return nil
}

func (s *MemoryStore) ListContacts(_ context.Context, userID string) ([]model.Contact, error) {
	s.contactsMu.RLock()
	defer s.contactsMu.RUnlock()

	out := make([]model.Contact, len(s.contacts[userID]))
	copy(out, s.contacts[userID])
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
