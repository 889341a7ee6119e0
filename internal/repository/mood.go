package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/models"
)

type moodRepository struct {
	db *sql.DB
}

// NewMoodRepository creates a new mood repository
func NewMoodRepository(db *sql.DB) MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Upsert(ctx context.Context, record *models.MoodRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO mood_entries (date, segment, rating, note, logged_at)
		VALUES (?, ?, ?, ?, ?)
	`, models.FormatDate(record.Date), int(record.Segment), record.Rating, record.Note, record.LoggedAt)
	if err != nil {
		return fmt.Errorf("failed to save mood entry: %w", err)
	}
	return nil
}

func (r *moodRepository) GetByDate(ctx context.Context, date time.Time) ([]models.MoodRecord, error) {
	return r.query(ctx, `
		SELECT date, segment, rating, note, logged_at
		FROM mood_entries
		WHERE date = ?
		ORDER BY segment ASC
	`, models.FormatDate(date))
}

func (r *moodRepository) GetRange(ctx context.Context, start, end time.Time) ([]models.MoodRecord, error) {
	return r.query(ctx, `
		SELECT date, segment, rating, note, logged_at
		FROM mood_entries
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, segment ASC
	`, models.FormatDate(start), models.FormatDate(end))
}

func (r *moodRepository) GetAll(ctx context.Context) ([]models.MoodRecord, error) {
	return r.query(ctx, `
		SELECT date, segment, rating, note, logged_at
		FROM mood_entries
		ORDER BY date ASC, segment ASC
	`)
}

func (r *moodRepository) Delete(ctx context.Context, date time.Time, segment models.Segment) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM mood_entries WHERE date = ? AND segment = ?
	`, models.FormatDate(date), int(segment))
	if err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
	}
	return nil
}

func (r *moodRepository) EarliestDate(ctx context.Context) (*time.Time, error) {
	var earliest sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT MIN(date) FROM mood_entries`).Scan(&earliest)
	if err != nil {
		return nil, fmt.Errorf("failed to query earliest mood date: %w", err)
	}
	if !earliest.Valid {
		return nil, nil
	}

	date, err := models.ParseDate(earliest.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse earliest mood date %q: %w", earliest.String, err)
	}
	return &date, nil
}

// query runs a SELECT over mood_entries and scans the rows. Rows that fail
// to scan or carry an unparsable date are logged and skipped rather than
// failing the whole read.
func (r *moodRepository) query(ctx context.Context, q string, args ...any) ([]models.MoodRecord, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	records := make([]models.MoodRecord, 0)
	for rows.Next() {
		var (
			dateStr  string
			segment  int
			rating   sql.NullFloat64
			note     string
			loggedAt time.Time
		)
		if err := rows.Scan(&dateStr, &segment, &rating, &note, &loggedAt); err != nil {
			logger.Warn("skipping unreadable mood entry", logger.Err(err))
			continue
		}
		if !rating.Valid {
			logger.Warn("skipping mood entry with malformed rating", logger.String("date", dateStr))
			continue
		}
		date, err := models.ParseDate(dateStr)
		if err != nil {
			logger.Warn("skipping mood entry with malformed date", logger.String("date", dateStr))
			continue
		}

		records = append(records, models.MoodRecord{
			Date:     date,
			Segment:  models.Segment(segment),
			Rating:   rating.Float64,
			Note:     note,
			LoggedAt: loggedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mood entries: %w", err)
	}

	return records, nil
}
