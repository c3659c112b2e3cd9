// Package workers runs the background jobs: the hourly sweep that expires
// stale pending bets and the month-end rollover that closes out unit records.
package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"

	"bookie/service"
)

// Scheduler owns the gocron instance and the services the jobs call.
type Scheduler struct {
	sched        gocron.Scheduler
	betService   service.BetService
	statsService service.StatsService
}

// NewScheduler builds the job scheduler. Jobs do not run until Start.
func NewScheduler(betService service.BetService, statsService service.StatsService) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{
		sched:        sched,
		betService:   betService,
		statsService: statsService,
	}

	_, err = sched.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(s.expireStaleBets),
		gocron.WithName("expire-stale-bets"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register expiry job: %w", err)
	}

	// Shortly after midnight UTC so the month is closed when it fires
	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 10, 0))),
		gocron.NewTask(s.monthlyRollover),
		gocron.WithName("monthly-rollover"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register rollover job: %w", err)
	}

	return s, nil
}

// Start launches the background jobs.
func (s *Scheduler) Start() {
	s.sched.Start()
	log.Info("background jobs started")
}

// Stop shuts the scheduler down, waiting for running jobs to finish.
func (s *Scheduler) Stop() error {
	return s.sched.Shutdown()
}

func (s *Scheduler) expireStaleBets() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	expired, err := s.betService.ExpirePendingBets(ctx)
	if err != nil {
		log.WithError(err).Error("bet expiry sweep failed")
		return
	}
	if expired > 0 {
		log.WithField("count", expired).Info("expired stale pending bets")
	}
}

// monthlyRollover closes out the previous period on the first of the month.
func (s *Scheduler) monthlyRollover() {
	now := time.Now().UTC()
	if now.Day() != 1 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	closed := now.AddDate(0, -1, 0)
	winners, err := s.statsService.MonthlyWinners(ctx, closed.Year(), int(closed.Month()))
	if err != nil {
		log.WithError(err).Error("monthly rollover failed")
		return
	}

	for guildID, record := range winners {
		log.WithFields(log.Fields{
			"guild_id": guildID,
			"user_id":  record.UserID,
			"units":    record.Units,
			"period":   fmt.Sprintf("%d-%02d", record.Year, record.Month),
		}).Info("monthly units winner")
	}
}
