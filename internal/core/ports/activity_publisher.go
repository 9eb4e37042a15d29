package ports

import (
	"context"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

// ActivityPublisher announces persisted social actions to other systems.
type ActivityPublisher interface {
	Publish(ctx context.Context, activity domain.Activity) error
}
