package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/GintGld/vam-seed/internal/models"
	"github.com/GintGld/vam-seed/internal/storage"
)

// SaveVideo saves new video. Parent sequence must exist.
func (s *Storage) SaveVideo(ctx context.Context, v models.Video) (models.Video, error) {
	const op = "storage.sqlite.SaveVideo"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if ok, err := exists(ctx, tx, "video_sequences", v.VideoSequenceUUID); err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	} else if !ok {
		return models.Video{}, fmt.Errorf("%s: %w", op, storage.ErrSequenceNotFound)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO videos(uuid, name, start_time, duration_millis, description, video_sequence_uuid, last_updated_time)
		VALUES(?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	now := s.now()
	v.UUID = newUUID()
	v.LastUpdated = &now

	if _, err := stmt.ExecContext(ctx,
		v.UUID,
		v.Name,
		formatTime(v.Start),
		nullable(v.DurationMillis),
		nullable(v.Description),
		v.VideoSequenceUUID,
		formatTime(now),
	); err != nil {
		if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
			return models.Video{}, fmt.Errorf("%s: %w", op, storage.ErrSequenceNotFound)
		}
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}

	v.Start = v.Start.UTC()

	return v, nil
}

// Video returns video by uuid.
func (s *Storage) Video(ctx context.Context, id string) (models.Video, error) {
	const op = "storage.sqlite.Video"

	stmt, err := s.db.PrepareContext(ctx, `
		SELECT uuid, name, start_time, duration_millis, description, video_sequence_uuid, last_updated_time
		FROM videos
		WHERE uuid = ?
	`)
	if err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	var (
		v              models.Video
		start, updated string
		duration       sql.NullInt64
		description    sql.NullString
	)

	err = stmt.QueryRowContext(ctx, id).Scan(
		&v.UUID,
		&v.Name,
		&start,
		&duration,
		&description,
		&v.VideoSequenceUUID,
		&updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Video{}, fmt.Errorf("%s: %w", op, storage.ErrVideoNotFound)
		}
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}

	if v.Start, err = parseTime(start); err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}
	t, err := parseTime(updated)
	if err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}

	v.DurationMillis = fromNullInt64(duration)
	v.Description = fromNullString(description)
	v.LastUpdated = &t

	return v, nil
}

// UpdateVideo overwrites all fields of video with v.UUID.
// New parent sequence must exist.
func (s *Storage) UpdateVideo(ctx context.Context, v models.Video) (models.Video, error) {
	const op = "storage.sqlite.UpdateVideo"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if ok, err := exists(ctx, tx, "video_sequences", v.VideoSequenceUUID); err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	} else if !ok {
		return models.Video{}, fmt.Errorf("%s: %w", op, storage.ErrSequenceNotFound)
	}

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE videos
		SET name = ?, start_time = ?, duration_millis = ?, description = ?, video_sequence_uuid = ?, last_updated_time = ?
		WHERE uuid = ?
	`)
	if err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	now := s.now()

	res, err := stmt.ExecContext(ctx,
		v.Name,
		formatTime(v.Start),
		nullable(v.DurationMillis),
		nullable(v.Description),
		v.VideoSequenceUUID,
		formatTime(now),
		v.UUID,
	)
	if err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}

	if n, err := res.RowsAffected(); err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	} else if n == 0 {
		return models.Video{}, fmt.Errorf("%s: %w", op, storage.ErrVideoNotFound)
	}

	if err := tx.Commit(); err != nil {
		return models.Video{}, fmt.Errorf("%s: %w", op, err)
	}

	v.Start = v.Start.UTC()
	v.LastUpdated = &now

	return v, nil
}

// DeleteVideo deletes video with all its references.
func (s *Storage) DeleteVideo(ctx context.Context, id string) error {
	const op = "storage.sqlite.DeleteVideo"

	if err := s.deleteFrom(ctx, "videos", id, storage.ErrVideoNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
