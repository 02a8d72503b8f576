package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/healthguard/healthguard-go/internal/model"
	"github.com/healthguard/healthguard-go/internal/repository"
)

// DoctorService builds the cross-user abnormal readings report.
type DoctorService struct {
	users  repository.UserStore
	health *HealthService
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(users repository.UserStore, health *HealthService) *DoctorService {
	return &DoctorService{users: users, health: health}
}

// ListAbnormal joins each user's abnormal readings with the owner's email.
// A reading whose owner is unknown is still reported, with a nil email.
func (s *DoctorService) ListAbnormal(ctx context.Context) ([]model.AbnormalReport, error) {
	groups, err := s.health.ScanAbnormal(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan abnormal records: %w", err)
	}

	reports := make([]model.AbnormalReport, 0, len(groups))
	for _, g := range groups {
		report := model.AbnormalReport{UserID: g.UserID, Records: g.Records}

		user, err := s.users.GetUserByID(ctx, g.UserID)
		switch {
		case err == nil:
			email := user.Email
			report.UserEmail = &email
		case !errors.Is(err, repository.ErrUserNotFound):
			return nil, fmt.Errorf("lookup user %s: %w", g.UserID, err)
		}

		reports = append(reports, report)
	}

	return reports, nil
}
