package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/models"
)

func newTestJournal(t *testing.T) (*attemptJournal, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	journal := &attemptJournal{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return journal, mock, db
}

func TestRecordAttempt_Success(t *testing.T) {
	journal, mock, db := newTestJournal(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO attempts").
		WithArgs("acc-1", models.AttemptOutcomeFailure, "trace-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := journal.RecordAttempt(context.Background(), models.AttemptRecord{
		AccountID: "acc-1",
		Outcome:   models.AttemptOutcomeFailure,
		TraceID:   "trace-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecordAttempt_ExecError(t *testing.T) {
	journal, mock, db := newTestJournal(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO attempts").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))

	err := journal.RecordAttempt(context.Background(), models.AttemptRecord{
		AccountID: "acc-1",
		Outcome:   models.AttemptOutcomeSuccess,
	})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got: %v", err)
	}
}

func TestRecordAttempt_NoRowsAffected(t *testing.T) {
	journal, mock, db := newTestJournal(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO attempts").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := journal.RecordAttempt(context.Background(), models.AttemptRecord{
		AccountID: "acc-1",
		Outcome:   models.AttemptOutcomeReset,
	})
	if !errors.Is(err, ErrAttemptNotRecorded) {
		t.Fatalf("expected ErrAttemptNotRecorded, got: %v", err)
	}
}

func TestListRecent_Success(t *testing.T) {
	journal, mock, db := newTestJournal(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"id", "account_id", "outcome", "trace_id", "attempted_at"}).
		AddRow(2, "acc-1", models.AttemptOutcomeFrozen, "trace-2", now).
		AddRow(1, "acc-1", models.AttemptOutcomeFailure, "trace-1", now.Add(-time.Minute))

	mock.ExpectQuery("SELECT id, account_id, outcome, trace_id, attempted_at FROM attempts").
		WithArgs("acc-1").
		WillReturnRows(rows)

	records, err := journal.ListRecent(context.Background(), "acc-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Outcome != models.AttemptOutcomeFrozen {
		t.Errorf("expected newest record first, got outcome %q", records[0].Outcome)
	}
	if records[1].ID != 1 {
		t.Errorf("expected second record ID=1, got %d", records[1].ID)
	}
}

func TestListRecent_QueryError(t *testing.T) {
	journal, mock, db := newTestJournal(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, account_id, outcome, trace_id, attempted_at FROM attempts").
		WithArgs("acc-1").
		WillReturnError(errors.New("database is locked"))

	_, err := journal.ListRecent(context.Background(), "acc-1", 10)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got: %v", err)
	}
}

func TestListRecent_ScanError(t *testing.T) {
	journal, mock, db := newTestJournal(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"id", "account_id", "outcome", "trace_id", "attempted_at"}).
		AddRow("not-an-int", "acc-1", models.AttemptOutcomeFailure, "", time.Now())

	mock.ExpectQuery("SELECT id, account_id, outcome, trace_id, attempted_at FROM attempts").
		WithArgs("acc-1").
		WillReturnRows(rows)

	_, err := journal.ListRecent(context.Background(), "acc-1", 10)
	if !errors.Is(err, ErrScanningRows) {
		t.Fatalf("expected ErrScanningRows, got: %v", err)
	}
}

func TestStats_Success(t *testing.T) {
	journal, mock, db := newTestJournal(t)
	defer db.Close()

	lastFailure := time.Now().Add(-time.Hour)
	rows := sqlmock.
		NewRows([]string{"total_failed", "total_success", "last_failure_at"}).
		AddRow(4, 7, lastFailure)

	mock.ExpectQuery("SELECT .+ FROM attempts").
		WithArgs("acc-1").
		WillReturnRows(rows)

	stats, err := journal.Stats(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.AccountID != "acc-1" {
		t.Errorf("expected account acc-1, got %q", stats.AccountID)
	}
	if stats.TotalFailed != 4 || stats.TotalSuccess != 7 {
		t.Errorf("unexpected totals: failed=%d success=%d", stats.TotalFailed, stats.TotalSuccess)
	}
	if stats.LastFailureAt == nil || !stats.LastFailureAt.Equal(lastFailure) {
		t.Errorf("unexpected last failure time: %v", stats.LastFailureAt)
	}
}

func TestStats_NoFailures(t *testing.T) {
	journal, mock, db := newTestJournal(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"total_failed", "total_success", "last_failure_at"}).
		AddRow(0, 3, nil)

	mock.ExpectQuery("SELECT .+ FROM attempts").
		WithArgs("acc-1").
		WillReturnRows(rows)

	stats, err := journal.Stats(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.LastFailureAt != nil {
		t.Errorf("expected nil last failure time, got %v", stats.LastFailureAt)
	}
}

func TestNopJournal(t *testing.T) {
	journal := NewNopJournal()
	ctx := context.Background()

	if err := journal.RecordAttempt(ctx, models.AttemptRecord{AccountID: "acc-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := journal.ListRecent(ctx, "acc-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records != nil {
		t.Errorf("expected no records, got %v", records)
	}

	stats, err := journal.Stats(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.AccountID != "acc-1" {
		t.Errorf("expected account echoed back, got %q", stats.AccountID)
	}
}
