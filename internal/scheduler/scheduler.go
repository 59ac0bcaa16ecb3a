// Package scheduler keeps the watchlist's weather fresh in the background.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/weatherdeck/internal/viewmodel"
)

// Scheduler periodically refreshes weather for the watchlist cities.
type Scheduler struct {
	scheduler *gocron.Scheduler
	vm        *viewmodel.ViewModel
	interval  time.Duration
}

// New creates a Scheduler driving the given view model.
func New(vm *viewmodel.ViewModel, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		vm:        vm,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		cities := s.vm.Watchlist()
		if len(cities) == 0 {
			return
		}
		logrus.WithField("cities", len(cities)).Debug("scheduler: refreshing watchlist")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result := s.vm.RefreshWatchlist(ctx)

		unavailable := 0
		for _, e := range result {
			if e.Unavailable {
				unavailable++
			}
		}
		logrus.WithFields(logrus.Fields{
			"cities":      len(result),
			"unavailable": unavailable,
		}).Info("scheduler: watchlist refreshed")
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
