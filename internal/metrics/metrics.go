// Package metrics defines the custom Prometheus metrics of the social network
// API. Metrics are registered with the default registry on import; HTTP
// request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "social"

// ── Accounts ─────────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// FollowsToggledTotal counts follow toggles.
// Label:
//   - direction: "follow" or "unfollow"
var FollowsToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "follows_toggled_total",
		Help:      "Total number of follow toggles, by resulting direction.",
	},
	[]string{"direction"},
)

// ── Content ──────────────────────────────────────────────────────────────────

var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

var PostsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_deleted_total",
		Help:      "Total number of posts deleted by their author.",
	},
)

// LikesToggledTotal counts like toggles.
// Label:
//   - direction: "like" or "unlike"
var LikesToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_toggled_total",
		Help:      "Total number of like toggles, by resulting direction.",
	},
	[]string{"direction"},
)

var CommentsAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_added_total",
		Help:      "Total number of comments added.",
	},
)

// ── Media ────────────────────────────────────────────────────────────────────

// MediaReleaseTotal counts scheduled media removals.
// Label:
//   - result: "deleted", "failed" or "dropped" (queue full or closed)
var MediaReleaseTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_release_total",
		Help:      "Total number of media release jobs, by outcome.",
	},
	[]string{"result"},
)

// MediaReleaseQueueDepth tracks pending release jobs per worker.
var MediaReleaseQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "media_release_queue_depth",
		Help:      "Current number of media release jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// ── Search ───────────────────────────────────────────────────────────────────

// SearchCacheTotal counts user-search cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var SearchCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_cache_total",
		Help:      "Total number of user search cache lookups, by result.",
	},
	[]string{"result"},
)
