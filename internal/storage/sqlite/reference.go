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

// SaveReference saves new video reference. Parent video must exist.
func (s *Storage) SaveReference(ctx context.Context, vr models.VideoReference) (models.VideoReference, error) {
	const op = "storage.sqlite.SaveReference"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if ok, err := exists(ctx, tx, "videos", vr.VideoUUID); err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	} else if !ok {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, storage.ErrVideoNotFound)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO video_references(
			uuid, video_uuid, uri, container, video_codec, audio_codec,
			width, height, frame_rate, size_bytes, description, last_updated_time
		)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	now := s.now()
	vr.UUID = newUUID()
	vr.LastUpdated = &now

	if _, err := stmt.ExecContext(ctx,
		vr.UUID,
		vr.VideoUUID,
		vr.URI,
		nullable(vr.Container),
		nullable(vr.VideoCodec),
		nullable(vr.AudioCodec),
		nullable(vr.Width),
		nullable(vr.Height),
		nullable(vr.FrameRate),
		nullable(vr.SizeBytes),
		nullable(vr.Description),
		formatTime(now),
	); err != nil {
		if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
			return models.VideoReference{}, fmt.Errorf("%s: %w", op, storage.ErrVideoNotFound)
		}
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}

	return vr, nil
}

// Reference returns video reference by uuid.
func (s *Storage) Reference(ctx context.Context, id string) (models.VideoReference, error) {
	const op = "storage.sqlite.Reference"

	stmt, err := s.db.PrepareContext(ctx, `
		SELECT
			uuid, video_uuid, uri, container, video_codec, audio_codec,
			width, height, frame_rate, size_bytes, description, last_updated_time
		FROM video_references
		WHERE uuid = ?
	`)
	if err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	var (
		vr                                          models.VideoReference
		container, videoCodec, audioCodec, descript sql.NullString
		width, height, size                         sql.NullInt64
		frameRate                                   sql.NullFloat64
		updated                                     string
	)

	err = stmt.QueryRowContext(ctx, id).Scan(
		&vr.UUID,
		&vr.VideoUUID,
		&vr.URI,
		&container,
		&videoCodec,
		&audioCodec,
		&width,
		&height,
		&frameRate,
		&size,
		&descript,
		&updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VideoReference{}, fmt.Errorf("%s: %w", op, storage.ErrReferenceNotFound)
		}
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}

	t, err := parseTime(updated)
	if err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}

	vr.Container = fromNullString(container)
	vr.VideoCodec = fromNullString(videoCodec)
	vr.AudioCodec = fromNullString(audioCodec)
	vr.Width = fromNullInt(width)
	vr.Height = fromNullInt(height)
	vr.FrameRate = fromNullFloat(frameRate)
	vr.SizeBytes = fromNullInt64(size)
	vr.Description = fromNullString(descript)
	vr.LastUpdated = &t

	return vr, nil
}

// UpdateReference overwrites all fields of reference with vr.UUID.
// New parent video must exist.
func (s *Storage) UpdateReference(ctx context.Context, vr models.VideoReference) (models.VideoReference, error) {
	const op = "storage.sqlite.UpdateReference"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if ok, err := exists(ctx, tx, "videos", vr.VideoUUID); err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	} else if !ok {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, storage.ErrVideoNotFound)
	}

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE video_references
		SET
			video_uuid = ?, uri = ?, container = ?, video_codec = ?, audio_codec = ?,
			width = ?, height = ?, frame_rate = ?, size_bytes = ?, description = ?,
			last_updated_time = ?
		WHERE uuid = ?
	`)
	if err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	now := s.now()

	res, err := stmt.ExecContext(ctx,
		vr.VideoUUID,
		vr.URI,
		nullable(vr.Container),
		nullable(vr.VideoCodec),
		nullable(vr.AudioCodec),
		nullable(vr.Width),
		nullable(vr.Height),
		nullable(vr.FrameRate),
		nullable(vr.SizeBytes),
		nullable(vr.Description),
		formatTime(now),
		vr.UUID,
	)
	if err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}

	if n, err := res.RowsAffected(); err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	} else if n == 0 {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, storage.ErrReferenceNotFound)
	}

	if err := tx.Commit(); err != nil {
		return models.VideoReference{}, fmt.Errorf("%s: %w", op, err)
	}

	vr.LastUpdated = &now

	return vr, nil
}

// DeleteReference deletes video reference.
func (s *Storage) DeleteReference(ctx context.Context, id string) error {
	const op = "storage.sqlite.DeleteReference"

	if err := s.deleteFrom(ctx, "video_references", id, storage.ErrReferenceNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
