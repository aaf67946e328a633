package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Registry resolves a holding through an open unit and asserts
// ownership. A holding that exists but belongs to someone else is
// reported as ErrNotFound so the API never leaks other users' ids; the
// real cause is logged here.
type Registry struct {
	log *slog.Logger
}

func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{log: log}
}

func (r *Registry) Resolve(ctx context.Context, u Unit, ownerID string, kind HoldingKind, id uuid.UUID) (*Holding, error) {
	h, err := u.Holding(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != ownerID {
		r.log.Warn("ownership check failed",
			"holding_id", id,
			"kind", kind,
			"cause", ErrUnauthorized,
		)
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return h, nil
}
