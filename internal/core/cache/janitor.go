package cache

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultCleanupSchedule sweeps expired entries once a minute.
const DefaultCleanupSchedule = "@every 1m"

// Janitor periodically sweeps expired entries from a store.
type Janitor struct {
	cron   *cron.Cron
	store  func() *LRU
	logger *zap.Logger
}

// NewJanitor schedules CleanupExpired on the store returned by store, resolved at
// every run so a reconfigured Default store is picked up. A nil store means Default.
func NewJanitor(schedule string, store func() *LRU, logger *zap.Logger) (*Janitor, error) {
	if schedule == "" {
		schedule = DefaultCleanupSchedule
	}
	if store == nil {
		store = Default
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cl := cronLogger{logger: logger.Sugar()}
	j := &Janitor{
		cron:   cron.New(cron.WithChain(cron.Recover(cl)), cron.WithLogger(cl)),
		store:  store,
		logger: logger,
	}

	if _, err := j.cron.AddFunc(schedule, j.Sweep); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Sweep runs one cleanup pass.
func (j *Janitor) Sweep() {
	removed := j.store().CleanupExpired()
	if removed > 0 {
		j.logger.Debug("Expired cache entries removed", zap.Int("removed", removed))
	}
}

// Start begins the schedule in the background.
func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
