package ports

import (
	"context"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

// SearchCache memoizes user search results for a short time.
type SearchCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, query string) (users []domain.UserSummary, ok bool, err error)
	Set(ctx context.Context, query string, users []domain.UserSummary) error
}
