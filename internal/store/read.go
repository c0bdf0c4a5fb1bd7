package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/irattrs/internal/attr"
)

// ErrSnapshotNotFound is returned when no snapshot matches the request.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrDigestMismatch is returned by VerifySnapshot when stored rows no longer
// hash to the snapshot's recorded digest.
var ErrDigestMismatch = errors.New("snapshot digest mismatch")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.Seq, &snap.Digest, &snap.CatalogVersion, &snap.Count)
	return snap, err
}

// GetSnapshot returns the snapshot with the given ID.
func (s *Store) GetSnapshot(ctx context.Context, id string) (Snapshot, error) {
	snap, err := scanSnapshot(s.db.QueryRowContext(ctx, `
		SELECT id, seq, digest, catalog_version, attr_count
		FROM snapshots
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("get snapshot %q: %w", id, ErrSnapshotNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("get snapshot %q: %w", id, err)
	}
	return snap, nil
}

// LatestSnapshot returns the snapshot with the highest seq.
func (s *Store) LatestSnapshot(ctx context.Context) (Snapshot, error) {
	snap, err := scanSnapshot(s.db.QueryRowContext(ctx, `
		SELECT id, seq, digest, catalog_version, attr_count
		FROM snapshots
		ORDER BY seq DESC
		LIMIT 1
	`))
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("latest snapshot: %w", ErrSnapshotNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("latest snapshot: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns every snapshot ordered by seq ascending.
// Returns an empty slice (not nil) when the store holds no snapshots.
func (s *Store) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, digest, catalog_version, attr_count
		FROM snapshots
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}

// ReadSnapshot returns the entries of a snapshot in ordinal order.
//
// Identifiers are resolved against the live registry. A snapshot holding an
// identifier this build does not know fails with attr.ErrUnknownAttribute
// rather than yielding a partial record.
func (s *Store) ReadSnapshot(ctx context.Context, id string) ([]attr.Info, error) {
	if _, err := s.GetSnapshot(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT identifier, name, description, value_shape
		FROM attributes
		WHERE snapshot_id = ?
		ORDER BY ordinal ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query attributes: %w", err)
	}
	defer rows.Close()

	infos := []attr.Info{}
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attributes: %w", err)
	}
	return infos, nil
}

// LookupName returns one entry of a snapshot by canonical name.
// Unknown names fail with an error matching attr.ErrUnknownAttribute.
func (s *Store) LookupName(ctx context.Context, snapshotID, name string) (attr.Info, error) {
	if _, err := s.GetSnapshot(ctx, snapshotID); err != nil {
		return attr.Info{}, err
	}

	info, err := scanInfo(s.db.QueryRowContext(ctx, `
		SELECT identifier, name, description, value_shape
		FROM attributes
		WHERE snapshot_id = ? AND name = ?
	`, snapshotID, name))
	if errors.Is(err, sql.ErrNoRows) {
		return attr.Info{}, &attr.UnknownAttributeError{Name: name}
	}
	if err != nil {
		return attr.Info{}, err
	}
	return info, nil
}

// VerifySnapshot recomputes the digest of a snapshot's rows and compares it
// with the recorded digest.
func (s *Store) VerifySnapshot(ctx context.Context, id string) error {
	snap, err := s.GetSnapshot(ctx, id)
	if err != nil {
		return err
	}
	infos, err := s.ReadSnapshot(ctx, id)
	if err != nil {
		return err
	}
	if len(infos) != snap.Count {
		return fmt.Errorf("verify snapshot %q: %d rows, expected %d: %w", id, len(infos), snap.Count, ErrDigestMismatch)
	}
	digest, err := attr.DigestOf(infos)
	if err != nil {
		return fmt.Errorf("verify snapshot %q: %w", id, err)
	}
	if digest != snap.Digest {
		return fmt.Errorf("verify snapshot %q: %w", id, ErrDigestMismatch)
	}
	return nil
}

func scanInfo(row rowScanner) (attr.Info, error) {
	var (
		info  attr.Info
		shape sql.NullString
	)
	if err := row.Scan(&info.Identifier, &info.Name, &info.Description, &shape); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attr.Info{}, err
		}
		return attr.Info{}, fmt.Errorf("scan attribute: %w", err)
	}
	if shape.Valid {
		info.ValueShape = shape.String
	}

	a, err := attr.LookupIdentifier(info.Identifier)
	if err != nil {
		return attr.Info{}, fmt.Errorf("scan attribute: %w", err)
	}
	info.Attribute = a
	return info, nil
}
