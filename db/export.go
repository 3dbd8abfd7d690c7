// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-rate/models"
)

// ExportRun records one export of a project
type ExportRun struct {
	ID          string
	ProjectID   string
	ExportedAt  time.Time
	SampleCount int
	RatingCount int
}

// WriteExport upserts a project's samples and ratings and records the
// run, all in one transaction. Rows already exported are overwritten.
func WriteExport(ctx context.Context, db *sql.DB, projectID string, samples []models.Sample, ratings []models.Rating, now time.Time) (ExportRun, error) {
	run := ExportRun{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		ExportedAt:  now.UTC(),
		SampleCount: len(samples),
		RatingCount: len(ratings),
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ExportRun{}, fmt.Errorf("failed to begin export: %w", err)
	}
	defer tx.Rollback()

	sampleStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sample (project_id, id, text1, text2, source1, source2)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (project_id, id) DO UPDATE SET
			text1 = excluded.text1,
			text2 = excluded.text2,
			source1 = excluded.source1,
			source2 = excluded.source2
	`)
	if err != nil {
		return ExportRun{}, fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer sampleStmt.Close()

	for _, s := range samples {
		if _, err := sampleStmt.ExecContext(ctx, projectID, s.ID, s.Text1, s.Text2, s.Source1, s.Source2); err != nil {
			return ExportRun{}, fmt.Errorf("failed to write sample %d: %w", s.ID, err)
		}
	}

	ratingStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rating (project_id, id, sample_id, rater, rating)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_id, id) DO UPDATE SET
			sample_id = excluded.sample_id,
			rater = excluded.rater,
			rating = excluded.rating
	`)
	if err != nil {
		return ExportRun{}, fmt.Errorf("failed to prepare rating insert: %w", err)
	}
	defer ratingStmt.Close()

	for _, r := range ratings {
		if _, err := ratingStmt.ExecContext(ctx, projectID, r.ID, r.SampleID, r.IP, r.Rating); err != nil {
			return ExportRun{}, fmt.Errorf("failed to write rating %d: %w", r.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO export_run (id, project_id, exported_at, sample_count, rating_count)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID, run.ProjectID, run.ExportedAt, run.SampleCount, run.RatingCount)
	if err != nil {
		return ExportRun{}, fmt.Errorf("failed to record export run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ExportRun{}, fmt.Errorf("failed to commit export: %w", err)
	}
	return run, nil
}

// ListExportRuns returns a project's exports, newest first
func ListExportRuns(ctx context.Context, db *sql.DB, projectID string) ([]ExportRun, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, project_id, exported_at, sample_count, rating_count
		FROM export_run
		WHERE project_id = $1
		ORDER BY exported_at DESC, id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query export runs: %w", err)
	}
	defer rows.Close()

	var runs []ExportRun
	for rows.Next() {
		var r ExportRun
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.ExportedAt, &r.SampleCount, &r.RatingCount); err != nil {
			return nil, fmt.Errorf("failed to scan export run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// CountRows returns how many samples and ratings are stored for a project
func CountRows(ctx context.Context, db *sql.DB, projectID string) (samples, ratings int, err error) {
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sample WHERE project_id = $1`, projectID).Scan(&samples)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count samples: %w", err)
	}
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rating WHERE project_id = $1`, projectID).Scan(&ratings)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return samples, ratings, nil
}
