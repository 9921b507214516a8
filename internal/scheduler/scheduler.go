package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/anubhav-001/saferov/internal/crime"
	"github.com/anubhav-001/saferov/internal/geo"
	"github.com/anubhav-001/saferov/internal/weather"
)

// Scheduler periodically prefetches crime and weather data for the tracked
// locations so their cache entries stay warm.
type Scheduler struct {
	scheduler *gocron.Scheduler
	crime     *crime.Service
	weather   *weather.Service
	locations []geo.Descriptor
	interval  time.Duration
}

// New creates a new Scheduler.
func New(locations []geo.Descriptor, interval time.Duration, crimeSvc *crime.Service, weatherSvc *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		crime:     crimeSvc,
		weather:   weatherSvc,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running prefetch job")

		var wg sync.WaitGroup
		for _, loc := range s.locations {
			loc := loc
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				s.crime.ComprehensiveSafetyData(ctx, loc)
				s.weather.CurrentWeather(ctx, loc.WeatherQuery())
			}()
		}
		wg.Wait()
		log.Println("scheduler: completed prefetch job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
