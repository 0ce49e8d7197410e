package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/inkpad/webapps/internal/core/domain"
	"github.com/inkpad/webapps/internal/pkg/metrics"
)

// guardedMutation runs the edit/delete sequence shared by every owned
// resource: look the record up (domain.ErrNotFound), apply
// domain.AuthorizeMutation, then mutate. The mutate step must itself match
// on the owner id so nothing can change hands between the check and the
// write.
func guardedMutation(
	ctx context.Context,
	log zerolog.Logger,
	kind, op, actorID, id string,
	owner func(ctx context.Context, id string) (string, error),
	mutate func(ctx context.Context) error,
) error {
	ownerID, err := owner(ctx, id)
	if err != nil {
		observeMutation(kind, op, err)
		return err
	}

	if err := domain.AuthorizeMutation(actorID, ownerID); err != nil {
		log.Warn().
			Str("kind", kind).
			Str("op", op).
			Str("id", id).
			Str("actor_id", actorID).
			Err(err).
			Msg("mutation denied")
		observeMutation(kind, op, err)
		return err
	}

	err = mutate(ctx)
	observeMutation(kind, op, err)
	return err
}

func observeMutation(kind, op string, err error) {
	metrics.ResourceMutationsTotal.WithLabelValues(kind, op, mutationResult(err)).Inc()
}

func mutationResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
