// Package storage persists upload sessions in SQLite through GORM.
// Structured payloads (parsed resume, analysis, optimized output) are
// kept as JSON columns so the schema survives model changes.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mu7ammad-3li/cv-lize/internal/models"
)

// SessionTTL is how long a session stays retrievable after upload.
const SessionTTL = 24 * time.Hour

// ErrNotFound is returned when no live session matches the lookup.
var ErrNotFound = errors.New("session not found")

type SessionModel struct {
	ID               uint      `gorm:"primaryKey"`
	SessionID        string    `gorm:"uniqueIndex;size:64"`
	OriginalFilename string    `gorm:"size:255"`
	FileHash         string    `gorm:"index;size:64"`
	FileType         string    `gorm:"size:16"`
	ExtractedText    string
	JobDescription   string
	ParsedJSON       string
	AnalysisJSON     string
	OptimizedJSON    string
	CreatedAt        time.Time
	ExpiresAt        time.Time `gorm:"index"`
}

func (SessionModel) TableName() string { return "sessions" }

// Store wraps the database handle. Callers hold one Store for the
// process lifetime.
type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&SessionModel{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Create persists a fresh session and stamps its expiry.
func (s *Store) Create(sess *models.Session) error {
	now := time.Now()
	sess.CreatedAt = now
	sess.ExpiresAt = now.Add(SessionTTL)

	rec, err := toModel(sess)
	if err != nil {
		return err
	}
	return s.db.Create(rec).Error
}

// Get returns the session for id, or ErrNotFound if it is missing or
// already expired.
func (s *Store) Get(id string) (*models.Session, error) {
	var rec SessionModel
	err := s.db.Where("session_id = ? AND expires_at > ?", id, time.Now()).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromModel(&rec)
}

// FindByHash returns the newest live session for a content hash, letting
// re-uploads of the same file reuse the extraction work. ErrNotFound
// means no usable duplicate exists.
func (s *Store) FindByHash(hash string) (*models.Session, error) {
	var rec SessionModel
	err := s.db.Where("file_hash = ? AND expires_at > ?", hash, time.Now()).
		Order("created_at desc").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromModel(&rec)
}

// UpdateAnalysis writes the analyze step results back onto the session.
func (s *Store) UpdateAnalysis(id string, jd string, analysis *models.CVAnalysis, optimized *models.OptimizedCV) error {
	analysisJSON, err := marshalField(analysis)
	if err != nil {
		return err
	}
	optimizedJSON, err := marshalField(optimized)
	if err != nil {
		return err
	}

	res := s.db.Model(&SessionModel{}).Where("session_id = ?", id).Updates(map[string]any{
		"job_description": jd,
		"analysis_json":   analysisJSON,
		"optimized_json":  optimizedJSON,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeExpired deletes sessions past their expiry and reports how many
// rows went away.
func (s *Store) PurgeExpired() (int64, error) {
	res := s.db.Where("expires_at <= ?", time.Now()).Delete(&SessionModel{})
	return res.RowsAffected, res.Error
}

// Count returns the number of live sessions, for the health endpoint.
func (s *Store) Count() (int64, error) {
	var n int64
	err := s.db.Model(&SessionModel{}).Where("expires_at > ?", time.Now()).Count(&n).Error
	return n, err
}

func toModel(sess *models.Session) (*SessionModel, error) {
	parsed, err := marshalField(sess.ParsedData)
	if err != nil {
		return nil, err
	}
	analysis, err := marshalField(sess.Analysis)
	if err != nil {
		return nil, err
	}
	optimized, err := marshalField(sess.OptimizedCV)
	if err != nil {
		return nil, err
	}
	return &SessionModel{
		SessionID:        sess.SessionID,
		OriginalFilename: sess.OriginalFilename,
		FileHash:         sess.FileHash,
		FileType:         string(sess.FileType),
		ExtractedText:    sess.ExtractedText,
		JobDescription:   sess.JobDescription,
		ParsedJSON:       parsed,
		AnalysisJSON:     analysis,
		OptimizedJSON:    optimized,
		CreatedAt:        sess.CreatedAt,
		ExpiresAt:        sess.ExpiresAt,
	}, nil
}

func fromModel(rec *SessionModel) (*models.Session, error) {
	sess := &models.Session{
		SessionID:        rec.SessionID,
		OriginalFilename: rec.OriginalFilename,
		FileHash:         rec.FileHash,
		FileType:         models.FileType(rec.FileType),
		ExtractedText:    rec.ExtractedText,
		JobDescription:   rec.JobDescription,
		CreatedAt:        rec.CreatedAt,
		ExpiresAt:        rec.ExpiresAt,
	}
	if err := unmarshalField(rec.ParsedJSON, &sess.ParsedData); err != nil {
		return nil, err
	}
	if err := unmarshalField(rec.AnalysisJSON, &sess.Analysis); err != nil {
		return nil, err
	}
	if err := unmarshalField(rec.OptimizedJSON, &sess.OptimizedCV); err != nil {
		return nil, err
	}
	return sess, nil
}

func marshalField(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding session field: %w", err)
	}
	// Typed nil pointers marshal to the literal "null".
	if string(b) == "null" {
		return "", nil
	}
	return string(b), nil
}

func unmarshalField[T any](raw string, dst **T) error {
	if raw == "" {
		return nil
	}
	v := new(T)
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decoding session field: %w", err)
	}
	*dst = v
	return nil
}
