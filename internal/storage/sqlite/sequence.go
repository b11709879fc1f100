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

const sequenceColumns = "uuid, name, camera_id, description, last_updated_time"

// SaveSequence saves new video sequence
// and returns it with assigned uuid.
func (s *Storage) SaveSequence(ctx context.Context, vs models.VideoSequence) (models.VideoSequence, error) {
	const op = "storage.sqlite.SaveSequence"

	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO video_sequences("+sequenceColumns+") VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	now := s.now()
	vs.UUID = newUUID()
	vs.LastUpdated = &now

	if _, err := stmt.ExecContext(ctx, vs.UUID, vs.Name, vs.CameraID, nullable(vs.Description), formatTime(now)); err != nil {
		if isConstraint(err, sqlite3.ErrConstraintUnique) {
			return models.VideoSequence{}, fmt.Errorf("%s: %w", op, storage.ErrSequenceExists)
		}
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}

	return vs, nil
}

// Sequence returns video sequence by uuid.
func (s *Storage) Sequence(ctx context.Context, id string) (models.VideoSequence, error) {
	const op = "storage.sqlite.Sequence"

	vs, err := s.sequenceBy(ctx, "uuid", id)
	if err != nil {
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}

	return vs, nil
}

// SequenceByName returns video sequence by unique name.
func (s *Storage) SequenceByName(ctx context.Context, name string) (models.VideoSequence, error) {
	const op = "storage.sqlite.SequenceByName"

	vs, err := s.sequenceBy(ctx, "name", name)
	if err != nil {
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}

	return vs, nil
}

func (s *Storage) sequenceBy(ctx context.Context, column, value string) (models.VideoSequence, error) {
	stmt, err := s.db.PrepareContext(ctx, "SELECT "+sequenceColumns+" FROM video_sequences WHERE "+column+" = ?")
	if err != nil {
		return models.VideoSequence{}, err
	}
	defer stmt.Close()

	var (
		vs          models.VideoSequence
		description sql.NullString
		updated     string
	)

	err = stmt.QueryRowContext(ctx, value).Scan(&vs.UUID, &vs.Name, &vs.CameraID, &description, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VideoSequence{}, storage.ErrSequenceNotFound
		}
		return models.VideoSequence{}, err
	}

	t, err := parseTime(updated)
	if err != nil {
		return models.VideoSequence{}, err
	}

	vs.Description = fromNullString(description)
	vs.LastUpdated = &t

	return vs, nil
}

// UpdateSequence overwrites all fields of sequence with vs.UUID.
func (s *Storage) UpdateSequence(ctx context.Context, vs models.VideoSequence) (models.VideoSequence, error) {
	const op = "storage.sqlite.UpdateSequence"

	stmt, err := s.db.PrepareContext(ctx, `
		UPDATE video_sequences
		SET name = ?, camera_id = ?, description = ?, last_updated_time = ?
		WHERE uuid = ?
	`)
	if err != nil {
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	now := s.now()

	res, err := stmt.ExecContext(ctx, vs.Name, vs.CameraID, nullable(vs.Description), formatTime(now), vs.UUID)
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintUnique) {
			return models.VideoSequence{}, fmt.Errorf("%s: %w", op, storage.ErrSequenceExists)
		}
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	}

	if n, err := res.RowsAffected(); err != nil {
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, err)
	} else if n == 0 {
		return models.VideoSequence{}, fmt.Errorf("%s: %w", op, storage.ErrSequenceNotFound)
	}

	vs.LastUpdated = &now

	return vs, nil
}

// DeleteSequence deletes sequence with all its videos.
func (s *Storage) DeleteSequence(ctx context.Context, id string) error {
	const op = "storage.sqlite.DeleteSequence"

	if err := s.deleteFrom(ctx, "video_sequences", id, storage.ErrSequenceNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SequenceNames returns names of all sequences ordered by name.
func (s *Storage) SequenceNames(ctx context.Context) ([]string, error) {
	const op = "storage.sqlite.SequenceNames"

	names, err := s.strings(ctx, "SELECT name FROM video_sequences ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return names, nil
}

// Cameras returns distinct camera ids ordered by name.
func (s *Storage) Cameras(ctx context.Context) ([]string, error) {
	const op = "storage.sqlite.Cameras"

	cameras, err := s.strings(ctx, "SELECT DISTINCT camera_id FROM video_sequences ORDER BY camera_id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cameras, nil
}

func (s *Storage) strings(ctx context.Context, query string) ([]string, error) {
	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]string, 0)
	for rows.Next() {
		var str string
		if err := rows.Scan(&str); err != nil {
			return nil, err
		}
		res = append(res, str)
	}

	return res, rows.Err()
}

func (s *Storage) deleteFrom(ctx context.Context, table, id string, notFound error) error {
	stmt, err := s.db.PrepareContext(ctx, "DELETE FROM "+table+" WHERE uuid = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}

	return nil
}
