package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/healthguard/healthguard-go/internal/metrics"
	"github.com/healthguard/healthguard-go/internal/model"
	"github.com/healthguard/healthguard-go/internal/repository"
)

var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// Defaults for fields the client left out. Explicit nulls are kept.
var (
	defaultActivityState = json.RawMessage(strconv.Quote(model.DefaultActivityState))
	notAbnormal          = json.RawMessage("false")
)

// dateLayouts are tried in order when parsing a date bound.
var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	time.RFC3339,
}

// HealthService stores and queries vital-sign readings.
type HealthService struct {
	store   repository.HealthStore
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewHealthService creates a new HealthService. m may be nil.
func NewHealthService(store repository.HealthStore, m *metrics.Metrics) *HealthService {
	return &HealthService{store: store, metrics: m, now: time.Now}
}

// Append stamps the reading with the server time in UTC and stores it. The
// abnormal flag and analysis are kept exactly as the client sent them.
func (s *HealthService) Append(ctx context.Context, userID string, req model.HealthRecordRequest) (int, error) {
	rec := model.HealthRecord{
		Timestamp:              s.now().UTC(),
		HeartRate:              req.HeartRate,
		BloodPressureSystolic:  req.BloodPressureSystolic,
		BloodPressureDiastolic: req.BloodPressureDiastolic,
		Temperature:            req.Temperature,
		ActivityState:          req.ActivityState,
		Location:               req.Location,
		IsAbnormal:             req.IsAbnormal,
		AnalysisResult:         req.AnalysisResult,
	}
	if len(rec.ActivityState) == 0 {
		rec.ActivityState = defaultActivityState
	}
	if len(rec.IsAbnormal) == 0 {
		rec.IsAbnormal = notAbnormal
	}

	pos, err := s.store.AppendRecord(ctx, userID, rec)
	if err != nil {
		return 0, err
	}

	s.metrics.RecordReading(rec.Abnormal())
	return pos, nil
}

// Query returns the user's readings. The range filter applies only when
// both bounds are given; a single bound returns everything.
func (s *HealthService) Query(ctx context.Context, userID, startDate, endDate string) ([]model.HealthRecord, error) {
	var (
		from, to time.Time
		filter   = startDate != "" && endDate != ""
	)
	if filter {
		var err error
		if from, err = parseDate(startDate); err != nil {
			return nil, err
		}
		if to, err = parseDate(endDate); err != nil {
			return nil, err
		}
	}

	records, err := s.store.ListRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !filter {
		return records, nil
	}

	filtered := make([]model.HealthRecord, 0, len(records))
	for _, rec := range records {
		d := dateOf(rec.Timestamp)
		if !d.Before(from) && !d.After(to) {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// ScanAbnormal returns every user's abnormal readings; users without any are omitted.
func (s *HealthService) ScanAbnormal(ctx context.Context) ([]model.UserRecords, error) {
	return s.store.ListAbnormal(ctx)
}

// parseDate accepts an ISO date or datetime and returns its calendar date.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOf(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
