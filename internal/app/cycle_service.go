// internal/app/cycle_service.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shop_notifier/internal/domain/delivery"
	"shop_notifier/internal/domain/mailer"
	"shop_notifier/internal/domain/routine"
	idb "shop_notifier/internal/infra/database"
	"shop_notifier/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PlanRenderer turns a generated routine into a fully buffered document.
type PlanRenderer interface {
	Render(recipientName string, plan *routine.Plan) ([]byte, error)
}

// CycleRunner is the operation the scheduler triggers per record family.
type CycleRunner interface {
	RunCycle(ctx context.Context, family delivery.Family) error
}

// CycleService orchestrates one scan-and-process pass for a record family:
// scan eligible records, build each message (generating and rendering the
// plan document for plan requests), dispatch in paced batches, then commit
// each record's transition based on the classified outcome. A failure for one
// record never aborts the rest of the pass.
type CycleService struct {
	repo         delivery.Repository
	dispatcher   *BatchDispatcher
	renderer     PlanRenderer
	classifier   *Classifier
	mailFrom     string
	mailFromName string
	logger       *logrus.Logger
}

func NewCycleService(
	repo delivery.Repository,
	dispatcher *BatchDispatcher,
	renderer PlanRenderer,
	classifier *Classifier,
	mailFrom string,
	mailFromName string,
	logger *logrus.Logger,
) *CycleService {
	return &CycleService{
		repo:         repo,
		dispatcher:   dispatcher,
		renderer:     renderer,
		classifier:   classifier,
		mailFrom:     mailFrom,
		mailFromName: mailFromName,
		logger:       logger,
	}
}

// RunCycle executes one pass for the family. The returned error covers only
// cycle-level failures (the scan itself); per-record failures are committed
// to the store and logged, never propagated.
func (s *CycleService) RunCycle(ctx context.Context, family delivery.Family) error {
	log := s.logger.WithFields(logrus.Fields{
		"family":   family,
		"cycle_id": uuid.NewString(),
	})

	records, err := s.repo.FindEligible(ctx, family, delivery.StatusPending)
	if err != nil {
		log.WithError(err).Error("Failed to scan eligible records; cycle ends, next trigger retries")
		return fmt.Errorf("failed to scan eligible %s records: %w", family, err)
	}
	metrics.CyclesTotal.WithLabelValues(string(family)).Inc()
	if len(records) == 0 {
		log.Debug("No eligible records")
		return nil
	}
	log.WithField("count", len(records)).Info("Processing eligible records")

	// Build phase. A record whose content cannot be generated or rendered is
	// permanently failed right here; no message is ever sent for it.
	byID := make(map[int64]*delivery.Record, len(records))
	prepared := make([]PreparedMessage, 0, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
		msg, err := s.buildMessage(rec)
		if err != nil {
			log.WithError(err).WithField("record_id", rec.ID).Warn("Content build failed; failing record permanently")
			s.commitPermanent(ctx, log, rec, err.Error())
			metrics.RecordsTotal.WithLabelValues(string(family), "build_failed").Inc()
			continue
		}
		prepared = append(prepared, PreparedMessage{RecordID: rec.ID, Message: msg})
	}

	results := s.dispatcher.Dispatch(ctx, prepared)

	for _, res := range results {
		rec := byID[res.RecordID]
		if res.Outcome.Success {
			s.commitSuccess(ctx, log, rec)
			continue
		}
		switch s.classifier.Classify(res.Outcome) {
		case FailureTransient:
			// Leave PENDING untouched; the next cycle retries naturally.
			log.WithFields(logrus.Fields{
				"record_id": rec.ID,
				"code":      res.Outcome.ErrorCode,
				"error":     res.Outcome.ErrorMessage,
			}).Info("Transient transport failure; record stays pending")
			metrics.RecordsTotal.WithLabelValues(string(family), "transient").Inc()
		case FailurePermanent:
			s.commitPermanent(ctx, log, rec, outcomeDiagnostic(res.Outcome))
			metrics.RecordsTotal.WithLabelValues(string(family), "permanent").Inc()
		}
	}

	return nil
}

func (s *CycleService) commitSuccess(ctx context.Context, log *logrus.Entry, rec *delivery.Record) {
	update := delivery.TransitionUpdate{
		ProcessedAt: sql.NullTime{Time: time.Now(), Valid: true},
	}
	err := s.repo.Transition(ctx, rec.ID, delivery.StatusPending, rec.Family.SuccessStatus(), update)
	switch {
	case err == nil:
		log.WithField("record_id", rec.ID).Info("Record delivered")
		metrics.RecordsTotal.WithLabelValues(string(rec.Family), "sent").Inc()
	case errors.Is(err, idb.ErrTransitionConflict):
		// A concurrent pass already owns this record. Skip, never re-send.
		log.WithField("record_id", rec.ID).Warn("Transition conflict on success commit; skipping record")
		metrics.RecordsTotal.WithLabelValues(string(rec.Family), "conflict").Inc()
	default:
		log.WithError(err).WithField("record_id", rec.ID).Error("Failed to commit success transition")
	}
}

func (s *CycleService) commitPermanent(ctx context.Context, log *logrus.Entry, rec *delivery.Record, diagnostic string) {
	update := delivery.TransitionUpdate{
		ProcessedAt: sql.NullTime{Time: time.Now(), Valid: true},
		LastError:   sql.NullString{String: diagnostic, Valid: true},
	}
	err := s.repo.Transition(ctx, rec.ID, delivery.StatusPending, delivery.StatusFailed, update)
	switch {
	case err == nil:
		log.WithFields(logrus.Fields{"record_id": rec.ID, "error": diagnostic}).Warn("Record failed permanently")
	case errors.Is(err, idb.ErrTransitionConflict):
		log.WithField("record_id", rec.ID).Warn("Transition conflict on failure commit; skipping record")
		metrics.RecordsTotal.WithLabelValues(string(rec.Family), "conflict").Inc()
	default:
		log.WithError(err).WithField("record_id", rec.ID).Error("Failed to commit failure transition")
	}
}

func outcomeDiagnostic(o mailer.Outcome) string {
	if o.ErrorCode != "" {
		return fmt.Sprintf("%s: %s", o.ErrorCode, o.ErrorMessage)
	}
	return o.ErrorMessage
}
