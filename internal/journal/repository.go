package journal

import (
	"time"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// Repository handles all journal operations for closed sessions
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Create appends a closed session to the journal
func (r *Repository) Create(record *SessionRecord) error {
	result := r.db.Create(record)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert session record")
	}
	return nil
}

// GetByDate retrieves all sessions closed on a given day
func (r *Repository) GetByDate(date string) ([]*SessionRecord, error) {
	var records []*SessionRecord
	result := r.db.Where("date = ?", date).Order("ended_at ASC").Find(&records)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query session records")
	}
	return records, nil
}

// GetSince retrieves all sessions that ended at or after a given time
func (r *Repository) GetSince(since time.Time) ([]*SessionRecord, error) {
	var records []*SessionRecord
	result := r.db.Where("ended_at >= ?", since).Order("ended_at ASC").Find(&records)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query session records")
	}
	return records, nil
}

// GetLatest retrieves the most recently closed session, nil if none exists
func (r *Repository) GetLatest() (*SessionRecord, error) {
	var record SessionRecord
	result := r.db.Order("ended_at DESC").First(&record)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest session")
	}
	return &record, nil
}

// SummaryByTitleSince returns per-title aggregates for sessions ended at or
// after a given time. SQL does the SUM; callers derive percentages.
func (r *Repository) SummaryByTitleSince(since time.Time) ([]TitleSummary, error) {
	var summaries []TitleSummary

	result := r.db.Model(&SessionRecord{}).
		Select("title, SUM(seconds) as total_seconds, COUNT(*) as session_count").
		Where("ended_at >= ?", since).
		Group("title").
		Order("total_seconds DESC").
		Scan(&summaries)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query title summary")
	}

	return summaries, nil
}

// DeleteOldRecords deletes sessions that ended before a specified time (soft delete)
func (r *Repository) DeleteOldRecords(before time.Time) (int64, error) {
	result := r.db.Where("ended_at < ?", before).Delete(&SessionRecord{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete old session records")
	}
	return result.RowsAffected, nil
}

// CreateErrorLog inserts a new error log into the journal
func (r *Repository) CreateErrorLog(errorLog *ErrorLog) error {
	result := r.db.Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// Clear removes all session records from the journal
func (r *Repository) Clear() error {
	result := r.db.Exec("DELETE FROM session_records")
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear session records")
	}
	return nil
}
