package model

// AbnormalReport lists one user's abnormal readings for the doctor portal.
// UserEmail is nil when the owning account cannot be found.
type AbnormalReport struct {
	UserID    string         `json:"user_id"`
	UserEmail *string        `json:"user_email"`
	Records   []HealthRecord `json:"records"`
}
