package model

import (
	"encoding/json"
	"time"
)

const (
	DefaultEmergencyType = "health_alert"
	EmergencyTriggered   = "triggered"
)

// EmergencyRequest is the body of a trigger-emergency call.
type EmergencyRequest struct {
	Type       string          `json:"type"`
	Location   json.RawMessage `json:"location"`
	HealthData json.RawMessage `json:"health_data"`
}

// EmergencyEvent is built per trigger and never stored.
type EmergencyEvent struct {
	ID         string
	UserID     string
	Type       string
	Timestamp  time.Time
	Location   json.RawMessage
	HealthData json.RawMessage
	Status     string
}

// EmergencyResponse acknowledges a triggered emergency.
type EmergencyResponse struct {
	Success     bool   `json:"success"`
	EmergencyID string `json:"emergency_id"`
}
