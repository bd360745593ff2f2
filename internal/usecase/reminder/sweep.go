package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/skillsync-team/meeting-service/internal/domain/entities"
	"github.com/skillsync-team/meeting-service/internal/domain/repositories"
	"github.com/skillsync-team/meeting-service/internal/infrastructure/metrics"
	"github.com/skillsync-team/meeting-service/internal/usecase/notification"
	"github.com/skillsync-team/meeting-service/pkg/config"
	"github.com/skillsync-team/meeting-service/pkg/jobcontext"
)

// sweepTimeout bounds one whole sweep invocation
const sweepTimeout = 5 * time.Minute

// Sweeper implements the periodic reminder selection-and-dispatch algorithm.
// It is safe to invoke repeatedly at a cadence shorter than the lead window:
// the ledger's conditional flag writes guarantee at-most-once successful
// delivery per participant, and the optional lease short-circuits overlap.
type Sweeper struct {
	meetingRepo repositories.MeetingRepository
	ledgerRepo  repositories.LedgerRepository
	userRepo    repositories.UserRepository
	gateway     notification.Gateway
	lease       Lease
	directory   *gocache.Cache
	cfg         config.ReminderConfig
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewSweeper creates a new sweeper. lease may be nil, in which case overlap
// protection rests solely on the ledger's conditional updates.
func NewSweeper(
	meetingRepo repositories.MeetingRepository,
	ledgerRepo repositories.LedgerRepository,
	userRepo repositories.UserRepository,
	gateway notification.Gateway,
	lease Lease,
	cfg config.ReminderConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Sweeper {
	return &Sweeper{
		meetingRepo: meetingRepo,
		ledgerRepo:  ledgerRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		lease:       lease,
		directory:   gocache.New(5*time.Minute, 10*time.Minute),
		cfg:         cfg,
		metrics:     m,
		logger:      logger,
	}
}

// Run executes one sweep invocation
func (s *Sweeper) Run(ctx context.Context) (*Result, error) {
	sweepID := uuid.New()
	ctx, cancel := jobcontext.SweepBegin(ctx, sweepID, sweepTimeout)
	defer cancel()

	result := &Result{SweepID: sweepID, StartedAt: time.Now().UTC()}
	s.metrics.SweepsTotal.Inc()

	if s.lease != nil {
		acquired, err := s.lease.Acquire(ctx)
		switch {
		case err != nil:
			// The ledger CAS remains the correctness backstop, so an
			// unreachable lease store degrades to lease-less operation.
			s.logger.Warn("sweep lease unavailable, proceeding without it",
				zap.String("sweep_id", sweepID.String()),
				zap.Error(err),
			)
		case !acquired:
			result.SkippedByLease = true
			result.Duration = time.Since(result.StartedAt)
			s.logger.Info("sweep skipped, lease held by another invocation",
				zap.String("sweep_id", sweepID.String()),
			)
			return result, nil
		default:
			defer s.lease.Release(context.WithoutCancel(ctx))
		}
	}

	now := time.Now().UTC()
	windowEnd := now.Add(s.cfg.LeadWindow)

	meetings, err := s.meetingRepo.FindDueAccepted(ctx, now, windowEnd)
	if err != nil {
		s.metrics.SweepFailures.Inc()
		return nil, fmt.Errorf("selecting due meetings: %w", err)
	}

	result.Examined = len(meetings)
	if len(meetings) == 0 {
		return s.finish(result), nil
	}

	workers := s.cfg.WorkerCount
	if workers > len(meetings) {
		workers = len(meetings)
	}

	// Meetings share no mutable state, so per-meeting processing runs on a
	// bounded worker pool; only the result accumulator is shared.
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		jobs = make(chan *entities.Meeting)
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for m := range jobs {
				mr := s.processMeeting(jobcontext.WithWorker(ctx, workerID, m.ID), m)
				mu.Lock()
				if mr.skipped {
					result.Skipped++
				}
				result.RemindersSent += mr.sent
				result.Errors = append(result.Errors, mr.errs...)
				mu.Unlock()
			}
		}(i)
	}

	for _, m := range meetings {
		jobs <- m
	}
	close(jobs)
	wg.Wait()

	return s.finish(result), nil
}

func (s *Sweeper) finish(result *Result) *Result {
	result.Duration = time.Since(result.StartedAt)
	s.metrics.SweepDuration.Observe(result.Duration.Seconds())

	s.logger.Info("sweep finished",
		zap.String("sweep_id", result.SweepID.String()),
		zap.Int("examined", result.Examined),
		zap.Int("skipped", result.Skipped),
		zap.Int("reminders_sent", result.RemindersSent),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("duration", result.Duration),
	)
	return result
}

// meetingResult is the per-meeting contribution to the sweep result
type meetingResult struct {
	skipped bool
	sent    int
	errs    []string
}

// processMeeting handles one due meeting independently of all others.
// Failures are recorded, never propagated: one meeting's lookup or delivery
// problem must not abort the rest of the sweep.
func (s *Sweeper) processMeeting(ctx context.Context, m *entities.Meeting) meetingResult {
	var mr meetingResult

	ledger, err := s.ledgerRepo.GetStatus(ctx, m.ID)
	if err != nil {
		mr.errs = append(mr.errs, fmt.Sprintf("meeting %s: ledger read failed: %v", m.ID, err))
		return mr
	}

	if ledger.FullyNotified() {
		mr.skipped = true
		return mr
	}

	initiator, err := s.lookupUser(ctx, m.InitiatorID)
	if err != nil {
		mr.errs = append(mr.errs, fmt.Sprintf("meeting %s: initiator lookup failed: %v", m.ID, err))
		return mr
	}
	counterpart, err := s.lookupUser(ctx, m.CounterpartID)
	if err != nil {
		mr.errs = append(mr.errs, fmt.Sprintf("meeting %s: counterpart lookup failed: %v", m.ID, err))
		return mr
	}

	// The two participants are independent failure domains: a failed send
	// to one leaves the other's flag untouched and retryable next sweep.
	attempted := false
	if !ledger.Notified(entities.PartyInitiator) {
		attempted = true
		s.remindParticipant(ctx, m, entities.PartyInitiator, initiator, counterpart, &mr)
	}

	if !ledger.Notified(entities.PartyCounterpart) {
		if attempted {
			// Fixed pause between the two sends for the gateway's
			// outbound rate limits, not for correctness.
			time.Sleep(s.cfg.DispatchDelay)
		}
		s.remindParticipant(ctx, m, entities.PartyCounterpart, counterpart, initiator, &mr)
	}

	return mr
}

// remindParticipant delivers one reminder and, only on success, flips the
// participant's ledger flag.
func (s *Sweeper) remindParticipant(ctx context.Context, m *entities.Meeting, party entities.Party, recipient, other *entities.User, mr *meetingResult) {
	if err := s.deliver(ctx, notification.ReminderMessage(m, recipient, other)); err != nil {
		s.metrics.ReminderFailures.Inc()
		mr.errs = append(mr.errs, fmt.Sprintf("meeting %s: %s delivery failed: %v", m.ID, party, err))
		return
	}

	if err := s.ledgerRepo.MarkNotified(ctx, m.ID, party); err != nil {
		// Delivered but unrecorded: the next sweep may send a duplicate.
		// Surfaced as an error so operators can see it happened.
		mr.errs = append(mr.errs, fmt.Sprintf("meeting %s: %s delivered but not recorded: %v", m.ID, party, err))
		return
	}

	s.metrics.RemindersSent.Inc()
	mr.sent++

	s.logger.Info("reminder sent",
		zap.String("meeting_id", m.ID.String()),
		zap.String("party", string(party)),
		zap.String("to", recipient.Email),
	)
}

// deliver attempts one gateway send, retrying transient failures briefly
// within the attempt. Exhaustion or a permanent failure leaves the ledger
// flag untouched; the next sweep retries the participant.
func (s *Sweeper) deliver(ctx context.Context, msg *notification.Message) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 15 * time.Second

	op := func() error {
		err := s.gateway.Send(ctx, msg)
		if err != nil && !jobcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

// lookupUser resolves a participant through a short-TTL directory cache;
// repeated sweeps against the same due meetings hit the store once.
func (s *Sweeper) lookupUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	key := id.String()
	if cached, ok := s.directory.Get(key); ok {
		return cached.(*entities.User), nil
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s not found", id)
		}
		return nil, err
	}

	s.directory.Set(key, user, gocache.DefaultExpiration)
	return user, nil
}
