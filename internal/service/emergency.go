package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/healthguard/healthguard-go/internal/crypto"
	"github.com/healthguard/healthguard-go/internal/metrics"
	"github.com/healthguard/healthguard-go/internal/model"
	"github.com/healthguard/healthguard-go/internal/repository"
)

// Dispatcher delivers a triggered emergency to the user's contacts.
type Dispatcher interface {
	Dispatch(ctx context.Context, event model.EmergencyEvent, contacts []model.Contact) error
}

// LogDispatcher only records what would have been sent.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher returns a dispatcher writing to logger, or to slog.Default if nil.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, event model.EmergencyEvent, contacts []model.Contact) error {
	d.logger.WarnContext(ctx, "emergency triggered",
		"emergency_id", event.ID,
		"user_id", event.UserID,
		"type", event.Type,
		"status", event.Status,
		"timestamp", event.Timestamp,
		"location", string(event.Location),
		"contacts", len(contacts),
	)
	for _, c := range contacts {
		name, phone := c.Summary()
		d.logger.InfoContext(ctx, "emergency notification not sent, no delivery channel configured",
			"emergency_id", event.ID,
			"contact", name,
			"phone", phone,
		)
	}
	return nil
}

// EmergencyService acknowledges emergency alerts and hands them to a Dispatcher.
type EmergencyService struct {
	contacts   repository.ContactStore
	dispatcher Dispatcher
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewEmergencyService creates a new EmergencyService. m may be nil.
func NewEmergencyService(contacts repository.ContactStore, dispatcher Dispatcher, m *metrics.Metrics) *EmergencyService {
	return &EmergencyService{
		contacts:   contacts,
		dispatcher: dispatcher,
		metrics:    m,
		now:        time.Now,
	}
}

// Trigger returns a fresh emergency id. Contact lookup and dispatch
// failures are logged and never fail the call.
func (s *EmergencyService) Trigger(ctx context.Context, userID string, req model.EmergencyRequest) (string, error) {
	id, err := crypto.NewEmergencyID()
	if err != nil {
		return "", fmt.Errorf("generate emergency id: %w", err)
	}

	event := model.EmergencyEvent{
		ID:         id,
		UserID:     userID,
		Type:       req.Type,
		Timestamp:  s.now(),
		Location:   req.Location,
		HealthData: req.HealthData,
		Status:     model.EmergencyTriggered,
	}
	if event.Type == "" {
		event.Type = model.DefaultEmergencyType
	}

	contacts, err := s.contacts.ListContacts(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "emergency contacts unavailable", "user_id", userID, "error", err)
	}

	if err := s.dispatcher.Dispatch(ctx, event, contacts); err != nil {
		slog.ErrorContext(ctx, "emergency dispatch failed", "emergency_id", id, "error", err)
	}

	s.metrics.RecordEmergency(event.Type)
	return id, nil
}
