package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/irattrs/internal/attr"
)

// Snapshot describes one stored catalog.
type Snapshot struct {
	ID             string `json:"id" yaml:"id"`
	Seq            int64  `json:"seq" yaml:"seq"`
	Digest         string `json:"digest" yaml:"digest"`
	CatalogVersion string `json:"catalog_version" yaml:"catalog_version"`
	Count          int    `json:"count" yaml:"count"`
}

// WriteSnapshot stores infos as a new snapshot in a single transaction.
// Returns the snapshot and whether a new record was inserted.
//
// Snapshots are content-addressed by attr.DigestOf: if a snapshot with the
// same digest already exists it is returned unchanged with inserted=false.
// An entry whose identifier is not in the registry fails the write with an
// error matching attr.ErrUnknownAttribute, and nothing is stored.
func (s *Store) WriteSnapshot(ctx context.Context, infos []attr.Info) (snap Snapshot, inserted bool, err error) {
	// Every row must read back through attr.LookupIdentifier.
	for i, info := range infos {
		if _, err := attr.LookupIdentifier(info.Identifier); err != nil {
			return Snapshot{}, false, fmt.Errorf("write snapshot: attributes[%d]: %w", i, err)
		}
	}

	digest, err := attr.DigestOf(infos)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	existing, err := scanSnapshot(tx.QueryRowContext(ctx, `
		SELECT id, seq, digest, catalog_version, attr_count
		FROM snapshots
		WHERE digest = ?
	`, digest))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, fmt.Errorf("write snapshot: find by digest: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM snapshots`).Scan(&seq); err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: next seq: %w", err)
	}

	snap = Snapshot{
		ID:             uuid.New().String(),
		Seq:            seq,
		Digest:         digest,
		CatalogVersion: attr.CatalogVersion,
		Count:          len(infos),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, seq, digest, catalog_version, attr_count)
		VALUES (?, ?, ?, ?, ?)
	`, snap.ID, snap.Seq, snap.Digest, snap.CatalogVersion, snap.Count)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO attributes (snapshot_id, ordinal, identifier, name, description, value_shape)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: prepare: %w", err)
	}
	defer stmt.Close()

	for i, info := range infos {
		// NULL, not "", for attributes without a value
		var shape sql.NullString
		if v, ok := info.Shape(); ok {
			shape = sql.NullString{String: v, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, snap.ID, i, info.Identifier, info.Name, info.Description, shape); err != nil {
			return Snapshot{}, false, fmt.Errorf("write snapshot: attribute %q: %w", info.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, false, fmt.Errorf("write snapshot: commit: %w", err)
	}

	return snap, true, nil
}

// WriteRegistry snapshots the live registry table.
func (s *Store) WriteRegistry(ctx context.Context) (Snapshot, bool, error) {
	return s.WriteSnapshot(ctx, attr.Infos())
}
