package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/skillsync-team/meeting-service/internal/domain/entities"
	"github.com/skillsync-team/meeting-service/internal/domain/repositories"
	"github.com/skillsync-team/meeting-service/internal/infrastructure/metrics"
	"github.com/skillsync-team/meeting-service/internal/usecase/notification"
	"github.com/skillsync-team/meeting-service/pkg/config"
)

type sweepMeetingRepo struct {
	meetings []*entities.Meeting
	err      error
}

func (r *sweepMeetingRepo) Create(context.Context, *entities.Meeting) error { return nil }
func (r *sweepMeetingRepo) FindByID(context.Context, uuid.UUID) (*entities.Meeting, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *sweepMeetingRepo) Update(context.Context, *entities.Meeting) error { return nil }
func (r *sweepMeetingRepo) CancelWithRecord(context.Context, *entities.Meeting, *entities.CancellationRecord) error {
	return nil
}
func (r *sweepMeetingRepo) List(context.Context, repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	return nil, 0, nil
}

func (r *sweepMeetingRepo) FindDueAccepted(_ context.Context, from, to time.Time) ([]*entities.Meeting, error) {
	if r.err != nil {
		return nil, r.err
	}
	var due []*entities.Meeting
	for _, m := range r.meetings {
		if m.State == entities.MeetingStateAccepted && !m.ScheduledTime.Before(from) && !m.ScheduledTime.After(to) {
			due = append(due, m)
		}
	}
	return due, nil
}

// fakeLedgerRepo mirrors the storage contract: absent rows read as
// (nil, nil), MarkNotified creates then flips exactly one flag.
type fakeLedgerRepo struct {
	mu      sync.Mutex
	ledgers map[uuid.UUID]*entities.ReminderLedger
	markErr error
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{ledgers: make(map[uuid.UUID]*entities.ReminderLedger)}
}

func (r *fakeLedgerRepo) GetStatus(_ context.Context, meetingID uuid.UUID) (*entities.ReminderLedger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.ledgers[meetingID]
	if !ok {
		return nil, nil
	}
	copied := *l
	return &copied, nil
}

func (r *fakeLedgerRepo) MarkNotified(_ context.Context, meetingID uuid.UUID, party entities.Party) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.ledgers[meetingID]
	if !ok {
		l = &entities.ReminderLedger{MeetingID: meetingID}
		r.ledgers[meetingID] = l
	}
	if party == entities.PartyInitiator {
		l.InitiatorNotified = true
	} else {
		l.CounterpartNotified = true
	}
	return nil
}

type sweepUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func (r *sweepUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

// fakeGateway records deliveries and fails permanently for listed addresses
type fakeGateway struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (g *fakeGateway) Send(_ context.Context, msg *notification.Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failFor[msg.ToAddress] {
		// Classified as non-retryable so the backoff gives up immediately
		return fmt.Errorf("550 mailbox unavailable for %s", msg.ToAddress)
	}
	g.sent = append(g.sent, msg.ToAddress)
	return nil
}

func (g *fakeGateway) sentTo(addr string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, a := range g.sent {
		if a == addr {
			n++
		}
	}
	return n
}

type fakeLease struct {
	acquired bool
	err      error
	released bool
}

func (l *fakeLease) Acquire(context.Context) (bool, error) { return l.acquired, l.err }
func (l *fakeLease) Release(context.Context)               { l.released = true }

type sweepFixture struct {
	sweeper *Sweeper
	repo    *sweepMeetingRepo
	ledger  *fakeLedgerRepo
	gateway *fakeGateway
	alice   *entities.User
	bob     *entities.User
	carol   *entities.User
}

func newSweepFixture(t *testing.T, lease Lease) *sweepFixture {
	t.Helper()

	alice := &entities.User{ID: uuid.New(), Email: "alice@test.local", Name: "Alice", Timezone: "UTC"}
	bob := &entities.User{ID: uuid.New(), Email: "bob@test.local", Name: "Bob", Timezone: "UTC"}
	carol := &entities.User{ID: uuid.New(), Email: "carol@test.local", Name: "Carol", Timezone: "UTC"}

	repo := &sweepMeetingRepo{}
	ledger := newFakeLedgerRepo()
	users := &sweepUserRepo{users: map[uuid.UUID]*entities.User{alice.ID: alice, bob.ID: bob, carol.ID: carol}}
	gateway := &fakeGateway{failFor: make(map[string]bool)}

	cfg := config.ReminderConfig{
		LeadWindow:    10 * time.Minute,
		DispatchDelay: time.Millisecond,
		WorkerCount:   2,
	}

	sweeper := NewSweeper(repo, ledger, users, gateway, lease, cfg, metrics.New(prometheus.NewRegistry()), zap.NewNop())

	return &sweepFixture{
		sweeper: sweeper,
		repo:    repo,
		ledger:  ledger,
		gateway: gateway,
		alice:   alice,
		bob:     bob,
		carol:   carol,
	}
}

func (f *sweepFixture) addMeeting(initiator, counterpart *entities.User, in time.Duration, state entities.MeetingState) *entities.Meeting {
	link := "https://meet.test.local/m/" + uuid.New().String()
	m := &entities.Meeting{
		ID:            uuid.New(),
		InitiatorID:   initiator.ID,
		CounterpartID: counterpart.ID,
		ScheduledTime: time.Now().UTC().Add(in),
		Description:   "practice session",
		MeetingLink:   &link,
		State:         state,
	}
	f.repo.meetings = append(f.repo.meetings, m)
	return m
}

func TestSweepSendsBothReminders(t *testing.T) {
	f := newSweepFixture(t, nil)
	m := f.addMeeting(f.alice, f.bob, 5*time.Minute, entities.MeetingStateAccepted)

	result, err := f.sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if result.Examined != 1 || result.RemindersSent != 2 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if f.gateway.sentTo(f.alice.Email) != 1 || f.gateway.sentTo(f.bob.Email) != 1 {
		t.Fatalf("each participant should receive exactly one reminder")
	}

	ledger, _ := f.ledger.GetStatus(context.Background(), m.ID)
	if !ledger.FullyNotified() {
		t.Fatalf("ledger should record both participants: %+v", ledger)
	}
}

func TestSweepIsIdempotentAcrossInvocations(t *testing.T) {
	f := newSweepFixture(t, nil)
	f.addMeeting(f.alice, f.bob, 5*time.Minute, entities.MeetingStateAccepted)

	if _, err := f.sweeper.Run(context.Background()); err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}

	result, err := f.sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}

	if result.RemindersSent != 0 || result.Skipped != 1 {
		t.Fatalf("second sweep should skip the fully notified meeting: %+v", result)
	}
	if f.gateway.sentTo(f.alice.Email) != 1 || f.gateway.sentTo(f.bob.Email) != 1 {
		t.Fatalf("participants must not be reminded twice")
	}
}

func TestSweepSelectsOnlyDueAcceptedMeetings(t *testing.T) {
	f := newSweepFixture(t, nil)
	// Only the first meeting is due and accepted; the rest are outside
	// the window, pending, or cancelled.
	f.addMeeting(f.alice, f.bob, 5*time.Minute, entities.MeetingStateAccepted)
	f.addMeeting(f.alice, f.carol, time.Hour, entities.MeetingStateAccepted)
	f.addMeeting(f.carol, f.bob, 5*time.Minute, entities.MeetingStatePending)
	f.addMeeting(f.carol, f.alice, 5*time.Minute, entities.MeetingStateCancelled)

	result, err := f.sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if result.Examined != 1 || result.RemindersSent != 2 {
		t.Fatalf("only the due accepted meeting should be processed: %+v", result)
	}
}

func TestSweepRemindsOnlyUnnotifiedParticipant(t *testing.T) {
	f := newSweepFixture(t, nil)
	m := f.addMeeting(f.alice, f.bob, 5*time.Minute, entities.MeetingStateAccepted)

	// The initiator was already reminded in an earlier sweep
	if err := f.ledger.MarkNotified(context.Background(), m.ID, entities.PartyInitiator); err != nil {
		t.Fatalf("seeding ledger failed: %v", err)
	}

	result, err := f.sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if result.RemindersSent != 1 {
		t.Fatalf("only the counterpart should be reminded: %+v", result)
	}
	if f.gateway.sentTo(f.alice.Email) != 0 {
		t.Fatalf("initiator must not be reminded again")
	}
	if f.gateway.sentTo(f.bob.Email) != 1 {
		t.Fatalf("counterpart should be reminded")
	}
}

func TestSweepPartialDeliveryFailureIsIsolated(t *testing.T) {
	f := newSweepFixture(t, nil)
	m := f.addMeeting(f.alice, f.bob, 5*time.Minute, entities.MeetingStateAccepted)
	f.gateway.failFor[f.alice.Email] = true

	result, err := f.sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if result.RemindersSent != 1 || len(result.Errors) != 1 {
		t.Fatalf("expected one send and one error: %+v", result)
	}

	ledger, _ := f.ledger.GetStatus(context.Background(), m.ID)
	if ledger.Notified(entities.PartyInitiator) {
		t.Fatalf("failed delivery must leave the flag unset")
	}
	if !ledger.Notified(entities.PartyCounterpart) {
		t.Fatalf("the other participant's delivery must still be recorded")
	}

	// Once the gateway recovers, only the failed participant is retried
	f.gateway.failFor[f.alice.Email] = false
	result, err = f.sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("recovery sweep failed: %v", err)
	}
	if result.RemindersSent != 1 {
		t.Fatalf("recovery sweep should send exactly one reminder: %+v", result)
	}
	if f.gateway.sentTo(f.bob.Email) != 1 {
		t.Fatalf("counterpart must not be reminded twice")
	}
}

func TestSweepFailedMeetingDoesNotAbortOthers(t *testing.T) {
	f := newSweepFixture(t, nil)

	// One meeting references a participant missing from the directory
	ghost := &entities.User{ID: uuid.New(), Email: "ghost@test.local", Name: "Ghost"}
	f.addMeeting(f.alice, ghost, 5*time.Minute, entities.MeetingStateAccepted)
	f.addMeeting(f.carol, f.bob, 5*time.Minute, entities.MeetingStateAccepted)

	result, err := f.sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if result.Examined != 2 || result.RemindersSent != 2 {
		t.Fatalf("healthy meeting should be fully processed: %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "lookup failed") {
		t.Fatalf("lookup failure should be recorded: %v", result.Errors)
	}
}

func TestSweepRecordsUnrecordedDelivery(t *testing.T) {
	f := newSweepFixture(t, nil)
	f.addMeeting(f.alice, f.bob, 5*time.Minute, entities.MeetingStateAccepted)
	f.ledger.markErr = errors.New("connection refused")

	result, err := f.sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if result.RemindersSent != 0 {
		t.Fatalf("unrecorded deliveries must not count as sent: %+v", result)
	}
	if len(result.Errors) != 2 || !strings.Contains(result.Errors[0], "delivered but not recorded") {
		t.Fatalf("unrecorded delivery should be surfaced: %v", result.Errors)
	}
}

func TestSweepSkippedWhenLeaseHeld(t *testing.T) {
	lease := &fakeLease{acquired: false}
	f := newSweepFixture(t, lease)
	f.addMeeting(f.alice, f.bob, 5*time.Minute, entities.MeetingStateAccepted)

	result, err := f.sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if !result.SkippedByLease || result.Examined != 0 {
		t.Fatalf("held lease should short-circuit the sweep: %+v", result)
	}
	if len(f.gateway.sent) != 0 {
		t.Fatalf("no reminders should be sent when the lease is held")
	}
	if lease.released {
		t.Fatalf("a lease we never held must not be released")
	}
}

func TestSweepProceedsWhenLeaseStoreUnavailable(t *testing.T) {
	lease := &fakeLease{err: errors.New("connection refused")}
	f := newSweepFixture(t, lease)
	f.addMeeting(f.alice, f.bob, 5*time.Minute, entities.MeetingStateAccepted)

	result, err := f.sweeper.Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if result.RemindersSent != 2 {
		t.Fatalf("an unreachable lease store must not block the sweep: %+v", result)
	}
}

func TestSweepReleasesAcquiredLease(t *testing.T) {
	lease := &fakeLease{acquired: true}
	f := newSweepFixture(t, lease)

	if _, err := f.sweeper.Run(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if !lease.released {
		t.Fatalf("an acquired lease must be released")
	}
}

func TestSweepSelectionFailureIsFatal(t *testing.T) {
	f := newSweepFixture(t, nil)
	f.repo.err = errors.New("database unreachable")

	if _, err := f.sweeper.Run(context.Background()); err == nil {
		t.Fatalf("selection failure should abort the sweep")
	}
}
