package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sirpyerre/social-network/internal/core/domain"
	"github.com/Sirpyerre/social-network/internal/core/ports"
)

// publishActivity announces a persisted action. Failure is logged only; the
// action itself has already succeeded.
func publishActivity(ctx context.Context, pub ports.ActivityPublisher, log zerolog.Logger, a domain.Activity) {
	if pub == nil {
		return
	}
	a.At = time.Now().UTC()
	if err := pub.Publish(ctx, a); err != nil {
		log.Warn().Err(err).Str("activity", string(a.Type)).Str("actor_id", a.ActorID).Msg("failed to publish activity")
	}
}
