package tenant

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const DefaultSweepSchedule = "@every 1m"

// Janitor periodically drops expired entries from a MemoryCache.
type Janitor struct {
	cron  *cron.Cron
	cache *MemoryCache
}

func NewJanitor(cache *MemoryCache, schedule string) (*Janitor, error) {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	j := &Janitor{cron: cron.New(), cache: cache}
	if _, err := j.cron.AddFunc(schedule, j.run); err != nil {
		return nil, fmt.Errorf("failed to schedule tenant cache sweep: %w", err)
	}
	return j, nil
}

func (j *Janitor) Start() {
	log.Info().Msg("⏰ Starting tenant cache janitor...")
	j.cron.Start()
}

func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
	log.Info().Msg("✅ Tenant cache janitor stopped")
}

func (j *Janitor) run() {
	if removed := j.cache.Sweep(); removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", j.cache.Len()).Msg("🧹 Swept tenant cache")
	}
}
