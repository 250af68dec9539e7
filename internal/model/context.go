package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager threads the current actor through request contexts.
// The controller layer resolves a session token to a user ID once and
// every store/policy call downstream reads it from the context; there is
// no ambient global session state.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context
	GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool)
}
