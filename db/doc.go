// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores project exports in SQLite or PostgreSQL.

# Connecting

	conn, err := db.Open(ctx, db.TypeSQLite, "quickly-rate.db")
	conn, err := db.Open(ctx, db.TypePostgres, "postgres://...")

SQLite uses the pure Go modernc.org/sqlite driver, PostgreSQL uses lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		return err
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - sample: text pairs per project, keyed by (project_id, id)
  - rating: ratings per project, keyed by (project_id, id); rater is the
    service's hash of the participant address
  - export_run: one row per export with its counts

# Exporting

WriteExport upserts everything in one transaction, so exporting again
refreshes changed rows and adds new ones without duplicates.
*/
package db
