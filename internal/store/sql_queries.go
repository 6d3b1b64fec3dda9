package store

import (
	sq "github.com/Masterminds/squirrel"
)

// buildInsertAttemptQuery builds the INSERT for one journal record.
func buildInsertAttemptQuery(accountID, outcome, traceID string) (string, []any, error) {
	return sq.Insert("attempts").
		Columns("account_id", "outcome", "trace_id", "attempted_at").
		Values(accountID, outcome, traceID, sq.Expr("CURRENT_TIMESTAMP")).
		ToSql()
}

// buildSelectRecentAttemptsQuery builds the SELECT for the newest journal
// records of one account, newest first.
func buildSelectRecentAttemptsQuery(accountID string, limit int) (string, []any, error) {
	return sq.Select("id", "account_id", "outcome", "trace_id", "attempted_at").
		From("attempts").
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("attempted_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
}

// buildAttemptStatsQuery builds the aggregate over all journal records of one
// account. Frozen rows count as failures: the freeze itself is the third
// failed attempt, not a separate event.
func buildAttemptStatsQuery(accountID string) (string, []any, error) {
	return sq.Select(
		"COUNT(CASE WHEN outcome IN ('failure', 'frozen') THEN 1 END) AS total_failed",
		"COUNT(CASE WHEN outcome = 'success' THEN 1 END) AS total_success",
		"MAX(CASE WHEN outcome IN ('failure', 'frozen') THEN attempted_at END) AS last_failure_at",
	).
		From("attempts").
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
}
