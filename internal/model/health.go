package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

const DefaultActivityState = "rest"

// HealthRecord is one vital-sign snapshot. It is immutable once stored.
// Client supplied fields are kept as the raw JSON values that were sent.
type HealthRecord struct {
	Timestamp              time.Time       `json:"timestamp"`
	HeartRate              json.RawMessage `json:"heart_rate"`
	BloodPressureSystolic  json.RawMessage `json:"blood_pressure_systolic"`
	BloodPressureDiastolic json.RawMessage `json:"blood_pressure_diastolic"`
	Temperature            json.RawMessage `json:"temperature"`
	ActivityState          json.RawMessage `json:"activity_state"`
	Location               json.RawMessage `json:"location"`
	IsAbnormal             json.RawMessage `json:"is_abnormal"`
	AnalysisResult         json.RawMessage `json:"analysis_result"`
}

// Abnormal reports whether the client flagged the reading.
func (r HealthRecord) Abnormal() bool {
	return Truthy(r.IsAbnormal)
}

// HealthRecordRequest is the client payload for a new reading.
// Any client supplied timestamp is ignored.
type HealthRecordRequest struct {
	HeartRate              json.RawMessage `json:"heart_rate"`
	BloodPressureSystolic  json.RawMessage `json:"blood_pressure_systolic"`
	BloodPressureDiastolic json.RawMessage `json:"blood_pressure_diastolic"`
	Temperature            json.RawMessage `json:"temperature"`
	ActivityState          json.RawMessage `json:"activity_state"`
	Location               json.RawMessage `json:"location"`
	IsAbnormal             json.RawMessage `json:"is_abnormal"`
	AnalysisResult         json.RawMessage `json:"analysis_result"`
}

// HealthRecordResponse acknowledges a stored reading with its position in the user's ledger.
type HealthRecordResponse struct {
	Success  bool `json:"success"`
	RecordID int  `json:"record_id"`
}

// UserRecords groups records owned by one user.
type UserRecords struct {
	UserID  string
	Records []HealthRecord
}

// Truthy reports whether raw holds a JSON value other than null, false,
// zero, the empty string, an empty array or an empty object.
func Truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}

	switch v[0] {
	case 'n', 'f':
		return false
	case 't':
		return true
	case '"':
		var s string
		return json.Unmarshal(v, &s) == nil && s != ""
	case '[':
		var a []json.RawMessage
		return json.Unmarshal(v, &a) == nil && len(a) > 0
	case '{':
		var m map[string]json.RawMessage
		return json.Unmarshal(v, &m) == nil && len(m) > 0
	default:
		// Out of range numbers still parse to ±Inf or 0.
		f, _ := strconv.ParseFloat(string(v), 64)
		return f != 0
	}
}
