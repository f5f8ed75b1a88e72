// Package postgres implements the persistence interfaces on GORM + Postgres.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zhouzirui/mindshift/backend/internal/model/therapist"
)

const migrateLockID int64 = 51620417

// checkMoodPatternsSQL mirrors memory.MoodStore.CheckPatterns: days since the
// latest entry, and how many of the latest seven entries are 4 or lower.
// p_today is the caller's calendar date, the same clock that stamps entry_date.
const checkMoodPatternsSQL = `
DROP FUNCTION IF EXISTS check_mood_patterns(text);

CREATE OR REPLACE FUNCTION check_mood_patterns(p_user_id text, p_today date)
RETURNS TABLE (
	has_concerning_pattern boolean,
	days_without_entry integer,
	negative_mood_count integer
)
LANGUAGE plpgsql STABLE AS $$
DECLARE
	last_day date;
	gap integer := 0;
	negatives integer := 0;
BEGIN
	SELECT max(entry_date) INTO last_day FROM mood_entries WHERE user_id = p_user_id;
	IF last_day IS NULL THEN
		RETURN QUERY SELECT false, 0, 0;
		RETURN;
	END IF;

	gap := GREATEST(p_today - last_day, 0);

	SELECT count(*) INTO negatives FROM (
		SELECT mood FROM mood_entries
		WHERE user_id = p_user_id
		ORDER BY entry_date DESC
		LIMIT 7
	) recent
	WHERE recent.mood <= 4;

	RETURN QUERY SELECT (gap >= 3 OR negatives >= 3), gap, negatives;
END;
$$;
`

// Store implements the chat, mood, review and therapist stores.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Option customises Open.
type Option func(*options)

type options struct {
	seedTherapists []therapist.Therapist
	now            func() time.Time
}

// WithTherapistSeed inserts items when the therapists table is empty.
func WithTherapistSeed(items []therapist.Therapist) Option {
	return func(o *options) { o.seedTherapists = items }
}

// WithClock sets the clock that decides "today" for pattern checks. It should
// be the clock the mood service stamps entries with.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Open connects to dsn and runs migrations.
func Open(dsn string, opts ...Option) (*Store, error) {
	cfg := options{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	gormLog := gormlogger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := withMigrationLock(db, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&ChatMessageModel{}, &MoodEntryModel{}, &ReviewModel{}, &TherapistModel{}); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		if err := tx.Exec(checkMoodPatternsSQL).Error; err != nil {
			return fmt.Errorf("create check_mood_patterns: %w", err)
		}
		return seedTherapists(tx, cfg.seedTherapists)
	}); err != nil {
		return nil, err
	}
	return &Store{db: db, now: cfg.now}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func seedTherapists(tx *gorm.DB, items []therapist.Therapist) error {
	if len(items) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(&TherapistModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count therapists: %w", err)
	}
	if count > 0 {
		return nil
	}
	models := make([]TherapistModel, 0, len(items))
	for _, item := range items {
		models = append(models, therapistToModel(item))
	}
	if err := tx.Create(&models).Error; err != nil {
		return fmt.Errorf("seed therapists: %w", err)
	}
	return nil
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string, lockID int64) error {
	_, err := conn.ExecContext(ctx, query, lockID)
	return err
}
