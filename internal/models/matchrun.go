package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchRunStatus string

const (
	StatusQueued     MatchRunStatus = "queued"
	StatusProcessing MatchRunStatus = "processing"
	StatusCompleted  MatchRunStatus = "completed"
	StatusFailed     MatchRunStatus = "failed"
)

type MatchRun struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobDescription string         `gorm:"type:text;not null" json:"job_description"`
	Status         MatchRunStatus `gorm:"not null;default:'queued'" json:"status"`
	ResultsJSON    *string        `gorm:"type:jsonb" json:"-"`
	ErrorMessage   string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Documents []MatchRunDocument `gorm:"foreignKey:MatchRunID" json:"-"`
}

func (MatchRun) TableName() string {
	return "match_runs"
}

// MatchRunDocument links a run to one of the uploaded resumes it scores.
type MatchRunDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MatchRunID uuid.UUID `gorm:"type:uuid;not null" json:"match_run_id"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null" json:"document_id"`
	Position   int       `gorm:"not null" json:"position"`

	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

func (MatchRunDocument) TableName() string {
	return "match_run_documents"
}
