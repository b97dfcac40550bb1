package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/athlete-platform/internal/apperror"
	"github.com/sakif/athlete-platform/internal/model"
	"github.com/sakif/athlete-platform/internal/repository"
)

// Compile-time check that *DB implements repository.AthleteRepository.
var _ repository.AthleteRepository = (*DB)(nil)

const athleteColumns = `id, user_id, name, email, age, sport, position, phone,
	location, achievements, photo, password_hash, created_at`

// Create inserts a new athlete. It assigns the internal ID (an xid — 20
// chars, URL-safe, time-sortable) and CreatedAt, modifying the caller's
// struct in place.
//
// A UNIQUE violation on user_id or email — the race the service-level
// pre-check can't close — comes back as apperror.ErrDuplicate.
func (db *DB) Create(ctx context.Context, athlete *model.Athlete) error {
	athlete.ID = xid.New().String()
	athlete.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO athletes (id, user_id, name, email, age, sport, position,
			phone, location, achievements, photo, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		athlete.ID,
		athlete.UserID,
		athlete.Name,
		athlete.Email,
		athlete.Age,
		athlete.Sport,
		athlete.Position,
		athlete.Phone,
		athlete.Location,
		athlete.Achievements,
		athlete.Photo,
		athlete.PasswordHash,
		athlete.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Duplicate("Athlete with this email or userID already exists")
		}
		return fmt.Errorf("sqlite: creating athlete %s: %w", athlete.UserID, err)
	}

	return nil
}

// GetByID retrieves an athlete (video list included) by internal ID.
// Returns apperror.ErrNotFound if no athlete exists with that ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Athlete, error) {
	return db.getOne(ctx,
		`SELECT `+athleteColumns+` FROM athletes WHERE id = ?`, id)
}

// GetByEmail retrieves an athlete by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.Athlete, error) {
	return db.getOne(ctx,
		`SELECT `+athleteColumns+` FROM athletes WHERE email = ?`, email)
}

// GetByEmailOrUserID retrieves an athlete matching either the email or the
// public handle. Registration uses this as its duplicate pre-check.
func (db *DB) GetByEmailOrUserID(ctx context.Context, email, userID string) (*model.Athlete, error) {
	return db.getOne(ctx,
		`SELECT `+athleteColumns+` FROM athletes WHERE email = ? OR user_id = ?`,
		email, userID)
}

// getOne runs a single-row athlete query and loads its video list.
// sql.ErrNoRows is translated to the domain's NotFound error.
func (db *DB) getOne(ctx context.Context, query string, args ...any) (*model.Athlete, error) {
	var a model.Athlete

	err := db.conn.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Email,
		&a.Age,
		&a.Sport,
		&a.Position,
		&a.Phone,
		&a.Location,
		&a.Achievements,
		&a.Photo,
		&a.PasswordHash,
		&a.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("athlete", fmt.Sprint(args[0]))
		}
		return nil, fmt.Errorf("sqlite: getting athlete: %w", err)
	}

	videos, err := db.loadVideos(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Videos = videos

	return &a, nil
}

// List returns every athlete with their video lists, oldest first.
func (db *DB) List(ctx context.Context) ([]model.Athlete, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+athleteColumns+` FROM athletes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing athletes: %w", err)
	}
	defer rows.Close()

	athletes := []model.Athlete{}
	for rows.Next() {
		var a model.Athlete
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Name,
			&a.Email,
			&a.Age,
			&a.Sport,
			&a.Position,
			&a.Phone,
			&a.Location,
			&a.Achievements,
			&a.Photo,
			&a.PasswordHash,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning athlete row: %w", err)
		}
		athletes = append(athletes, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating athletes: %w", err)
	}

	for i := range athletes {
		videos, err := db.loadVideos(ctx, athletes[i].ID)
		if err != nil {
			return nil, err
		}
		athletes[i].Videos = videos
	}

	return athletes, nil
}

// Save writes back a loaded athlete record in a single transaction: the
// profile row is updated and the video list replaced wholesale. This gives
// Save per-record atomicity; concurrent Saves of the same athlete are
// last-writer-wins.
func (db *DB) Save(ctx context.Context, athlete *model.Athlete) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning save: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE athletes SET name = ?, age = ?, sport = ?, position = ?,
			phone = ?, location = ?, achievements = ?, photo = ?,
			password_hash = ?
		 WHERE id = ?`,
		athlete.Name,
		athlete.Age,
		athlete.Sport,
		athlete.Position,
		athlete.Phone,
		athlete.Location,
		athlete.Achievements,
		athlete.Photo,
		athlete.PasswordHash,
		athlete.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving athlete %s: %w", athlete.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: saving athlete %s: %w", athlete.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("athlete", athlete.ID)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM videos WHERE athlete_id = ?`, athlete.ID); err != nil {
		return fmt.Errorf("sqlite: clearing videos for %s: %w", athlete.ID, err)
	}

	for i, v := range athlete.Videos {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO videos (id, athlete_id, seq, title, url, added_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			v.ID, athlete.ID, i, v.Title, v.URL, v.AddedAt,
		); err != nil {
			return fmt.Errorf("sqlite: saving video %s: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing save for %s: %w", athlete.ID, err)
	}

	return nil
}

// Stats returns the platform-wide athlete and video counts.
func (db *DB) Stats(ctx context.Context) (*repository.Stats, error) {
	var s repository.Stats

	err := db.conn.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM athletes),
			(SELECT COUNT(*) FROM videos)`,
	).Scan(&s.TotalAthletes, &s.TotalVideos)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting stats: %w", err)
	}

	return &s, nil
}

// loadVideos returns an athlete's video entries in list order.
func (db *DB) loadVideos(ctx context.Context, athleteID string) ([]model.Video, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, url, added_at FROM videos
		 WHERE athlete_id = ? ORDER BY seq`,
		athleteID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: loading videos for %s: %w", athleteID, err)
	}
	defer rows.Close()

	videos := []model.Video{}
	for rows.Next() {
		var v model.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.URL, &v.AddedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning video row: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating videos: %w", err)
	}

	return videos, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite surfaces these as plain errors carrying the SQLite
// message, so string matching is the available check.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
