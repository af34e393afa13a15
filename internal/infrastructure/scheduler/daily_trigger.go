package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TriggerConfig holds configuration for the daily trigger
type TriggerConfig struct {
	// GenerationHour and GenerationMinute set the local time at which
	// the day's orders are generated (24h format)
	GenerationHour   int
	GenerationMinute int

	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration
}

// DefaultTriggerConfig returns default trigger configuration
func DefaultTriggerConfig() TriggerConfig {
	return TriggerConfig{
		GenerationHour:   4, // Before morning deliveries start
		GenerationMinute: 0,
		CheckInterval:    time.Minute,
	}
}

// DailyTrigger queues order generation for the current date once per
// day at the configured time
type DailyTrigger struct {
	config    TriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger
	now       func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewDailyTrigger creates a new daily trigger
func NewDailyTrigger(config TriggerConfig, scheduler *Scheduler, logger *zap.Logger) *DailyTrigger {
	return &DailyTrigger{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
		now:       time.Now,
	}
}

// Start starts the daily trigger
func (t *DailyTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Daily generation trigger started",
		zap.Int("hour", t.config.GenerationHour),
		zap.Int("minute", t.config.GenerationMinute),
		zap.Duration("check_interval", t.config.CheckInterval),
	)

	return nil
}

// Stop stops the daily trigger
func (t *DailyTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Daily generation trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *DailyTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.checkAndTrigger()
		}
	}
}

// checkAndTrigger queues generation when the configured time is
// reached, at most once per calendar date
func (t *DailyTrigger) checkAndTrigger() {
	now := t.now()
	currentDate := now.Format("2006-01-02")

	t.mu.Lock()
	alreadyRan := t.lastRunDate == currentDate
	t.mu.Unlock()
	if alreadyRan {
		return
	}

	if now.Hour() != t.config.GenerationHour || now.Minute() != t.config.GenerationMinute {
		return
	}

	t.mu.Lock()
	t.lastRunDate = currentDate
	t.mu.Unlock()

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	t.logger.Info("Triggering daily order generation", zap.Time("date", date))
	if err := t.scheduler.ScheduleGeneration(date, false); err != nil {
		t.logger.Error("Failed to queue daily order generation",
			zap.Time("date", date),
			zap.Error(err),
		)
	}
}
