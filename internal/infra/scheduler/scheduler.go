package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"shop_notifier/internal/app"
	"shop_notifier/internal/domain/delivery"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// FamilySpecs maps each record family to its cron expression. Promotion
// broadcasts do not appear here; they run from the daily last-day-of-month
// job below.
type FamilySpecs struct {
	Signup         string
	OrderPlaced    string
	OrderDelivered string
	PlanRequest    string
	PromoLastDay   string // daily spec; the job itself checks for the last day
}

// NotificationScheduler fires cycle passes on independent calendar triggers.
// Each family carries an in-flight guard: if the previous cycle for that
// family is still running when its trigger fires again, the firing is
// skipped. The store's compare-and-set already prevents double delivery, but
// the guard spares the duplicate scan and render work.
type NotificationScheduler struct {
	cronEngine *cron.Cron
	cycles     app.CycleRunner
	logger     *logrus.Logger
	specs      FamilySpecs
	inFlight   map[delivery.Family]*atomic.Bool
	jobTimeout time.Duration
}

func NewNotificationScheduler(cycles app.CycleRunner, logger *logrus.Logger, specs FamilySpecs) *NotificationScheduler {
	inFlight := make(map[delivery.Family]*atomic.Bool, len(delivery.Families))
	for _, f := range delivery.Families {
		inFlight[f] = &atomic.Bool{}
	}
	return &NotificationScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // server's local time
		cycles:     cycles,
		logger:     logger,
		specs:      specs,
		inFlight:   inFlight,
		jobTimeout: 10 * time.Minute,
	}
}

func (s *NotificationScheduler) Start() error {
	jobs := []struct {
		spec   string
		family delivery.Family
	}{
		{s.specs.Signup, delivery.FamilySignup},
		{s.specs.OrderPlaced, delivery.FamilyOrderPlaced},
		{s.specs.OrderDelivered, delivery.FamilyOrderDelivered},
		{s.specs.PlanRequest, delivery.FamilyPlanRequest},
	}
	for _, job := range jobs {
		family := job.family
		if _, err := s.cronEngine.AddFunc(job.spec, func() {
			s.runFamily(family)
		}); err != nil {
			return err
		}
	}

	// Promotion broadcasts go out on the last day of the month. The job runs
	// daily and computes the month's last day the same way every time: first
	// day of next month minus one day.
	if _, err := s.cronEngine.AddFunc(s.specs.PromoLastDay, func() {
		now := time.Now()
		if !isLastDayOfMonth(now) {
			s.logger.WithField("today", now.Day()).
				Debug("Not the last day of the month; skipping promotion broadcast")
			return
		}
		s.runFamily(delivery.FamilyPromotion)
	}); err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.Info("Notification scheduler started with jobs")
	return nil
}

// isLastDayOfMonth computes the month's last day as the first day of the
// next month minus one day, which is safe across month lengths and leap years.
func isLastDayOfMonth(now time.Time) bool {
	firstOfNextMonth := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	return now.Day() == firstOfNextMonth.AddDate(0, 0, -1).Day()
}

// runFamily executes one guarded cycle pass for the family.
func (s *NotificationScheduler) runFamily(family delivery.Family) {
	guard := s.inFlight[family]
	if !guard.CompareAndSwap(false, true) {
		s.logger.WithField("family", family).Warn("Previous cycle still running; skipping trigger firing")
		return
	}
	defer guard.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	if err := s.cycles.RunCycle(ctx, family); err != nil {
		s.logger.WithError(err).WithField("family", family).Error("Cycle pass failed")
	}
}

func (s *NotificationScheduler) Stop() {
	s.logger.Info("Stopping notification scheduler...")
	ctx := s.cronEngine.Stop() // stops new firings, waits for running jobs
	<-ctx.Done()
	s.logger.Info("Notification scheduler gracefully stopped")
}
