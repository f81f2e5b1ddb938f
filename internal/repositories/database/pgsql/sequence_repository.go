package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buildledger/payables_backend/internal/apperrors"
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
)

// maxAPSequence is the largest value the 4-digit suffix can hold.
const maxAPSequence = 9999

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for AP number allocation.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceAllocator {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSequenceRepository implements portsrepo.SequenceAllocator
var _ portsrepo.SequenceAllocator = (*PgxSequenceRepository)(nil)

// NextAPNumber atomically increments the per-year counter and returns the
// formatted document number. The single upsert statement is the
// serialization point: concurrent callers queue on the counter row, so two
// allocations can never return the same value.
func (r *PgxSequenceRepository) NextAPNumber(ctx context.Context, year int) (string, error) {
	query := `
		INSERT INTO ap_sequences (fiscal_year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (fiscal_year)
		DO UPDATE SET last_value = ap_sequences.last_value + 1
		RETURNING last_value;
	`
	var lastValue int
	if err := r.Pool.QueryRow(ctx, query, year).Scan(&lastValue); err != nil {
		return "", apperrors.NewAppError(500, fmt.Sprintf("failed to allocate AP sequence for year %d", year), err)
	}
	if lastValue > maxAPSequence {
		return "", fmt.Errorf("%w: AP number space exhausted for fiscal year %d", apperrors.ErrValidation, year)
	}
	return fmt.Sprintf("AP-%d-%04d", year, lastValue), nil
}
