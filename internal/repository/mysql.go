package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/healthguard/healthguard-go/internal/model"
)

const mysqlDuplicateEntry = 1062

// MySQLStore implements Store on top of a MySQL connection pool.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore creates a new MySQLStore.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) CreateUser(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *MySQLStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, `SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?`, email)
}

func (s *MySQLStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.getUser(ctx, `SELECT id, email, name, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (s *MySQLStore) getUser(ctx context.Context, query string, arg string) (*model.User, error) {
	user := &model.User{}
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// AppendRecord assigns the next sequence number under a row lock so
// concurrent appends for one user cannot share a position.
func (s *MySQLStore) AppendRecord(ctx context.Context, userID string, rec model.HealthRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var seq int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM health_records WHERE user_id = ? FOR UPDATE`, userID,
	).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO health_records
		(user_id, seq, recorded_at, heart_rate, bp_systolic, bp_diastolic, temperature,
		 activity_state, location, is_abnormal, abnormal, analysis_result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, seq, rec.Timestamp.UTC(),
		nullableJSON(rec.HeartRate), nullableJSON(rec.BloodPressureSystolic),
		nullableJSON(rec.BloodPressureDiastolic), nullableJSON(rec.Temperature),
		nullableJSON(rec.ActivityState), nullableJSON(rec.Location),
		nullableJSON(rec.IsAbnormal), rec.Abnormal(), nullableJSON(rec.AnalysisResult),
	)
	if err != nil {
		return 0, fmt.Errorf("insert health record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return seq, nil
}

const recordColumns = `r.user_id, r.recorded_at, r.heart_rate, r.bp_systolic, r.bp_diastolic,
	r.temperature, r.activity_state, r.location, r.is_abnormal, r.analysis_result`

func (s *MySQLStore) ListRecords(ctx context.Context, userID string) ([]model.HealthRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM health_records r WHERE r.user_id = ? ORDER BY r.seq ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.HealthRecord{}
	for rows.Next() {
		_, rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListAbnormal orders users by their first record of any kind.
func (s *MySQLStore) ListAbnormal(ctx context.Context) ([]model.UserRecords, error) {
	query := `SELECT ` + recordColumns + `
		FROM health_records r
		JOIN (SELECT user_id, MIN(id) AS first_id FROM health_records GROUP BY user_id) f
			ON f.user_id = r.user_id
		WHERE r.abnormal = TRUE
		ORDER BY f.first_id ASC, r.seq ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.UserRecords
	for rows.Next() {
		userID, rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		if n := len(out); n > 0 && out[n-1].UserID == userID {
			out[n-1].Records = append(out[n-1].Records, rec)
			continue
		}
		out = append(out, model.UserRecords{UserID: userID, Records: []model.HealthRecord{rec}})
	}
	return out, rows.Err()
}

func (s *MySQLStore) ReplaceContacts(ctx context.Context, userID string, contacts []model.Contact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear contacts: %w", err)
	}

	for i, c := range contacts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO emergency_contacts (user_id, position, contact) VALUES (?, ?, ?)`,
			userID, i, contactJSON(c),
		)
		if err != nil {
			return fmt.Errorf("insert contact %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s *MySQLStore) ListContacts(ctx context.Context, userID string) ([]model.Contact, error) {
	query := `SELECT contact FROM emergency_contacts WHERE user_id = ? ORDER BY position ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c []byte
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		contacts = append(contacts, model.Contact(c))
	}
	return contacts, rows.Err()
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}

func scanRecord(rows *sql.Rows) (string, model.HealthRecord, error) {
	var (
		userID                       string
		rec                          model.HealthRecord
		hr, sys, dia, temp, activity []byte
		location, abnormal, analysis []byte
	)

	if err := rows.Scan(
		&userID, &rec.Timestamp, &hr, &sys, &dia, &temp,
		&activity, &location, &abnormal, &analysis,
	); err != nil {
		return "", model.HealthRecord{}, err
	}

	rec.HeartRate = rawJSON(hr)
	rec.BloodPressureSystolic = rawJSON(sys)
	rec.BloodPressureDiastolic = rawJSON(dia)
	rec.Temperature = rawJSON(temp)
	rec.ActivityState = rawJSON(activity)
	rec.Location = rawJSON(location)
	rec.IsAbnormal = rawJSON(abnormal)
	rec.AnalysisResult = rawJSON(analysis)

	return userID, rec, nil
}

// rawJSON maps a NULL column back to an absent value, which encodes as null.
func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}

// nullableJSON stores absent values and JSON null as SQL NULL.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return string(raw)
}

// contactJSON keeps a null entry as JSON null so list positions survive.
func contactJSON(c model.Contact) string {
	if len(c) == 0 {
		return "null"
	}
	return string(c)
}

// isDuplicateEntryError reports whether err is a MySQL duplicate key violation.
func isDuplicateEntryError(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
