package jobs

import (
	"log"
	"time"

	"match-typer/internal/services"
)

// StatsJob periodically snapshots platform statistics so the admin panel
// has a history to show.
type StatsJob struct {
	service *services.AdminService
}

func NewStatsJob(service *services.AdminService) *StatsJob {
	return &StatsJob{
		service: service,
	}
}

// Start begins the periodic snapshot job
func (j *StatsJob) Start(interval time.Duration) {
	go func() {
		// Run immediately on start
		if err := j.service.SnapshotPlatformStats(time.Now()); err != nil {
			log.Printf("Initial stats snapshot error: %v", err)
		}

		// Then run periodically
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if err := j.service.SnapshotPlatformStats(time.Now()); err != nil {
				log.Printf("Stats snapshot error: %v", err)
			}
		}
	}()
}
