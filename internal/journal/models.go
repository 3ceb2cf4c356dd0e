package journal

import (
	"time"

	"gorm.io/gorm"
)

// SessionRecord is one closed game session. The authoritative per-day
// aggregate lives in the JSON usage document; the journal keeps the
// individual sessions for inspection and the web API.
type SessionRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"not null;index" json:"title"`
	Date      string         `gorm:"not null;index;size:10" json:"date"` // Close-time day, YYYY-MM-DD
	StartedAt time.Time      `gorm:"not null" json:"started_at"`
	EndedAt   time.Time      `gorm:"not null;index" json:"ended_at"`
	Seconds   float64        `gorm:"not null;default:0" json:"seconds"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ErrorLog records tracking errors for later inspection.
type ErrorLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	ErrorMsg  string         `gorm:"not null" json:"error_msg"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TitleSummary is the aggregated journal view of a single title.
type TitleSummary struct {
	Title        string  `json:"title"`
	TotalSeconds float64 `json:"total_seconds"`
	TotalHours   float64 `json:"total_hours"`
	SessionCount int     `json:"session_count"`
	Percentage   float64 `json:"percentage,omitempty"`
}
