package cli

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lgi/pkg/observability"
)

// cacheStats counts cache traffic during one command.
type cacheStats struct {
	hits, misses, sets, bytes atomic.Int64
}

func (s *cacheStats) OnCacheHit(context.Context, string)  { s.hits.Add(1) }
func (s *cacheStats) OnCacheMiss(context.Context, string) { s.misses.Add(1) }

func (s *cacheStats) OnCacheSet(_ context.Context, _ string, size int) {
	s.sets.Add(1)
	s.bytes.Add(int64(size))
}

// trackCache installs cache hooks until the returned function is called,
// which logs the totals at debug level.
func trackCache(logger *log.Logger) func() {
	stats := &cacheStats{}
	observability.SetCacheHooks(stats)
	return func() {
		observability.SetCacheHooks(observability.NoopCacheHooks{})
		logger.Debug("cache traffic",
			"hits", stats.hits.Load(),
			"misses", stats.misses.Load(),
			"writes", stats.sets.Load(),
			"bytes", stats.bytes.Load())
	}
}
