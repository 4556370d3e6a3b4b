package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mayagamaleldin/graduationproject/models"
)

// ErrProfileNotFound is returned when no stored profile matches.
var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `id, run_id, source_hash, first_name, last_name, age, gender,
	marital_status, education, job, location,
	first_interest, first_interest_percentage,
	second_interest, second_interest_percentage,
	third_interest, third_interest_percentage,
	personality_summary, key_activities, total_posts, top_habits, top_hobby,
	travel_indicators, life_indicators, spending_indicators, created_at`

const insertProfileSQL = `INSERT INTO user_profiles (
	run_id, source_hash, first_name, last_name, age, gender,
	marital_status, education, job, location,
	first_interest, first_interest_percentage,
	second_interest, second_interest_percentage,
	third_interest, third_interest_percentage,
	personality_summary, key_activities, total_posts, top_habits, top_hobby,
	travel_indicators, life_indicators, spending_indicators, created_at
) VALUES (
	:run_id, :source_hash, :first_name, :last_name, :age, :gender,
	:marital_status, :education, :job, :location,
	:first_interest, :first_interest_percentage,
	:second_interest, :second_interest_percentage,
	:third_interest, :third_interest_percentage,
	:personality_summary, :key_activities, :total_posts, :top_habits, :top_hobby,
	:travel_indicators, :life_indicators, :spending_indicators, :created_at
)`

// ProfileStore persists profile rows in the user_profiles table.
type ProfileStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewProfileStore wraps an open connection. The schema must already exist.
func NewProfileStore(db *sqlx.DB) *ProfileStore {
	return &ProfileStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// InsertProfile stores rec and returns its id. ID and CreatedAt on rec are
// ignored.
func (s *ProfileStore) InsertProfile(ctx context.Context, rec models.ProfileRecord) (int64, error) {
	rec.CreatedAt = s.now()

	query, args, err := sqlx.Named(insertProfileSQL, rec)
	if err != nil {
		return 0, fmt.Errorf("bind profile insert: %w", err)
	}
	query = s.db.Rebind(query)

	if s.db.DriverName() == "postgres" {
		var id int64
		if err := s.db.QueryRowxContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert profile: %w", err)
		}
		return id, nil
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert profile: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert profile id: %w", err)
	}
	return id, nil
}

// SaveProfile makes the store usable as a batch sink.
func (s *ProfileStore) SaveProfile(ctx context.Context, rec models.ProfileRecord) (int64, error) {
	return s.InsertProfile(ctx, rec)
}

// GetProfile returns the row with the given id or ErrProfileNotFound.
func (s *ProfileStore) GetProfile(ctx context.Context, id int64) (models.ProfileRecord, error) {
	var rec models.ProfileRecord
	query := s.db.Rebind(`SELECT ` + profileColumns + ` FROM user_profiles WHERE id = ?`)
	if err := s.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ProfileRecord{}, ErrProfileNotFound
		}
		return models.ProfileRecord{}, fmt.Errorf("get profile %d: %w", id, err)
	}
	return rec, nil
}

// ListProfiles returns a page of rows, newest first.
func (s *ProfileStore) ListProfiles(ctx context.Context, limit, offset int) ([]models.ProfileRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	recs := make([]models.ProfileRecord, 0, limit)
	query := s.db.Rebind(`SELECT ` + profileColumns + ` FROM user_profiles ORDER BY id DESC LIMIT ? OFFSET ?`)
	if err := s.db.SelectContext(ctx, &recs, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return recs, nil
}

// ExistsBySourceHash reports whether a row with the fingerprint exists.
func (s *ProfileStore) ExistsBySourceHash(ctx context.Context, hash string) (bool, error) {
	var count int
	query := s.db.Rebind(`SELECT COUNT(1) FROM user_profiles WHERE source_hash = ?`)
	if err := s.db.GetContext(ctx, &count, query, hash); err != nil {
		return false, fmt.Errorf("check source hash: %w", err)
	}
	return count > 0, nil
}
