package store

import (
	"context"

	"github.com/dshemin/lockbox/models"
)

// AttemptJournal is the persistent audit trail of unseal attempts.
//
// The journal is write-mostly: the vault flow appends an outcome per
// decryption attempt, and the status endpoint reads aggregates back for
// display. Lockout decisions never consult the journal.
type AttemptJournal interface {
	RecordAttempt(ctx context.Context, record models.AttemptRecord) error
	ListRecent(ctx context.Context, accountID string, limit int) ([]models.AttemptRecord, error)
	Stats(ctx context.Context, accountID string) (models.AttemptStats, error)
}
