// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Shemin

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/models"
)

// attemptJournal is the SQLite-backed implementation of [AttemptJournal].
// It appends unseal outcomes to the "attempts" table and serves read-side
// aggregates for the lockout status endpoint.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type attemptJournal struct {
	logger *logger.Logger
	db     *DB
}

// NewAttemptJournal constructs an [AttemptJournal] backed by the provided
// database connection and logger.
func NewAttemptJournal(db *DB, logger *logger.Logger) AttemptJournal {
	logger.Debug().Msg("creating attempt journal")
	return &attemptJournal{
		db:     db,
		logger: logger,
	}
}

// RecordAttempt appends one outcome row to the journal.
//
// Error handling:
//   - Query construction failure → [ErrBuildingSQLQuery].
//   - Driver-level execution failure → wrapped [ErrExecutingStatement].
//   - Zero affected rows → [ErrAttemptNotRecorded].
func (j *attemptJournal) RecordAttempt(ctx context.Context, record models.AttemptRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAttemptQuery(record.AccountID, record.Outcome, record.TraceID)
	if err != nil {
		log.Err(err).Str("func", "*attemptJournal.RecordAttempt").Msg("error building insert query")
		return ErrBuildingSQLQuery
	}

	result, err := j.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*attemptJournal.RecordAttempt").Msg("error executing insert")
		return errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrAttemptNotRecorded
	}

	return nil
}

// ListRecent returns up to limit journal records of one account, newest
// first. A non-positive limit falls back to a single page of 20 rows.
func (j *attemptJournal) ListRecent(ctx context.Context, accountID string, limit int) ([]models.AttemptRecord, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = 20
	}

	query, args, err := buildSelectRecentAttemptsQuery(accountID, limit)
	if err != nil {
		log.Err(err).Str("func", "*attemptJournal.ListRecent").Msg("error building select query")
		return nil, ErrBuildingSQLQuery
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*attemptJournal.ListRecent").Msg("error executing select")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.AttemptRecord
	for rows.Next() {
		var record models.AttemptRecord
		if err := rows.Scan(&record.ID, &record.AccountID, &record.Outcome, &record.TraceID, &record.AttemptedAt); err != nil {
			log.Err(err).Str("func", "*attemptJournal.ListRecent").Msg("error scanning journal row")
			return nil, errors.Join(ErrScanningRows, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return records, nil
}

// Stats aggregates the whole journal history of one account.
func (j *attemptJournal) Stats(ctx context.Context, accountID string) (models.AttemptStats, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildAttemptStatsQuery(accountID)
	if err != nil {
		log.Err(err).Str("func", "*attemptJournal.Stats").Msg("error building stats query")
		return models.AttemptStats{}, ErrBuildingSQLQuery
	}

	stats := models.AttemptStats{AccountID: accountID}
	var lastFailure sql.NullTime

	row := j.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&stats.TotalFailed, &stats.TotalSuccess, &lastFailure); err != nil {
		log.Err(err).Str("func", "*attemptJournal.Stats").Msg("error scanning stats row")
		return models.AttemptStats{}, errors.Join(ErrExecutingQuery, err)
	}

	if lastFailure.Valid {
		stats.LastFailureAt = &lastFailure.Time
	}

	return stats, nil
}

// nopJournal discards every write and serves empty reads. Used when no
// journal DSN is configured so the vault flow does not have to branch.
type nopJournal struct{}

// NewNopJournal returns an [AttemptJournal] that records nothing.
func NewNopJournal() AttemptJournal {
	return nopJournal{}
}

func (nopJournal) RecordAttempt(ctx context.Context, record models.AttemptRecord) error {
	return nil
}

func (nopJournal) ListRecent(ctx context.Context, accountID string, limit int) ([]models.AttemptRecord, error) {
	return nil, nil
}

func (nopJournal) Stats(ctx context.Context, accountID string) (models.AttemptStats, error) {
	return models.AttemptStats{AccountID: accountID}, nil
}
