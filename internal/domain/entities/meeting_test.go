package entities

import (
	"testing"

	"github.com/google/uuid"
)

func TestMeetingStateTransitions(t *testing.T) {
	cases := []struct {
		from    MeetingState
		to      MeetingState
		allowed bool
	}{
		{MeetingStatePending, MeetingStateAccepted, true},
		{MeetingStatePending, MeetingStateRejected, true},
		{MeetingStatePending, MeetingStateCancelled, true},
		{MeetingStatePending, MeetingStateCompleted, false},
		{MeetingStateAccepted, MeetingStateCancelled, true},
		{MeetingStateAccepted, MeetingStateCompleted, true},
		{MeetingStateAccepted, MeetingStateRejected, false},
		{MeetingStateAccepted, MeetingStatePending, false},
		{MeetingStateRejected, MeetingStateCancelled, false},
		{MeetingStateCancelled, MeetingStateAccepted, false},
		{MeetingStateCompleted, MeetingStateCancelled, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestMeetingStateIsTerminal(t *testing.T) {
	terminal := []MeetingState{MeetingStateRejected, MeetingStateCancelled, MeetingStateCompleted}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}

	active := []MeetingState{MeetingStatePending, MeetingStateAccepted}
	for _, s := range active {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestMeetingAcceptAssignsLinkOnce(t *testing.T) {
	m := &Meeting{State: MeetingStatePending}

	m.Accept("https://meet.example.com/m/abc")
	if m.State != MeetingStateAccepted {
		t.Fatalf("expected accepted, got %s", m.State)
	}
	if m.MeetingLink == nil || *m.MeetingLink != "https://meet.example.com/m/abc" {
		t.Fatalf("meeting link not assigned")
	}

	// The link is immutable once set
	m.Accept("https://meet.example.com/m/other")
	if *m.MeetingLink != "https://meet.example.com/m/abc" {
		t.Fatalf("meeting link was overwritten")
	}
}

func TestMeetingParticipants(t *testing.T) {
	initiator := uuid.New()
	counterpart := uuid.New()
	stranger := uuid.New()

	m := &Meeting{InitiatorID: initiator, CounterpartID: counterpart}

	if !m.IsParticipant(initiator) || !m.IsParticipant(counterpart) {
		t.Fatalf("both parties should be participants")
	}
	if m.IsParticipant(stranger) {
		t.Fatalf("stranger should not be a participant")
	}

	if m.OtherParticipant(initiator) != counterpart {
		t.Fatalf("other participant of initiator should be counterpart")
	}
	if m.OtherParticipant(counterpart) != initiator {
		t.Fatalf("other participant of counterpart should be initiator")
	}

	if party, ok := m.PartyOf(initiator); !ok || party != PartyInitiator {
		t.Fatalf("expected initiator party, got %s ok=%v", party, ok)
	}
	if party, ok := m.PartyOf(counterpart); !ok || party != PartyCounterpart {
		t.Fatalf("expected counterpart party, got %s ok=%v", party, ok)
	}
	if _, ok := m.PartyOf(stranger); ok {
		t.Fatalf("stranger should have no party")
	}
}

func TestReminderLedgerNilSafety(t *testing.T) {
	var ledger *ReminderLedger

	if ledger.Notified(PartyInitiator) || ledger.Notified(PartyCounterpart) {
		t.Fatalf("nil ledger should report both flags false")
	}
	if ledger.FullyNotified() {
		t.Fatalf("nil ledger should not be fully notified")
	}

	ledger = &ReminderLedger{InitiatorNotified: true}
	if !ledger.Notified(PartyInitiator) {
		t.Fatalf("initiator flag should be set")
	}
	if ledger.Notified(PartyCounterpart) {
		t.Fatalf("counterpart flag should be unset")
	}
	if ledger.FullyNotified() {
		t.Fatalf("half-notified ledger should not be fully notified")
	}

	ledger.CounterpartNotified = true
	if !ledger.FullyNotified() {
		t.Fatalf("both flags set should be fully notified")
	}
}
