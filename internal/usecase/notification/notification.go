package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/skillsync-team/meeting-service/internal/domain/entities"
)

// Kind identifies the type of notification being dispatched
type Kind string

const (
	KindMeetingProposed  Kind = "meeting_proposed"
	KindMeetingAccepted  Kind = "meeting_accepted"
	KindMeetingRejected  Kind = "meeting_rejected"
	KindMeetingCancelled Kind = "meeting_cancelled"
	KindMeetingReminder  Kind = "meeting_reminder"
)

// Message is a rendered notification ready for the delivery gateway
type Message struct {
	Kind      Kind
	ToName    string
	ToAddress string
	Subject   string
	TextBody  string
	HTMLBody  string
}

// Gateway attempts delivery of a rendered message. Implementations must
// bound the call with the context and return a typed failure on timeout.
type Gateway interface {
	Send(ctx context.Context, msg *Message) error
}

// Dispatcher accepts messages for asynchronous, best-effort delivery
type Dispatcher interface {
	Enqueue(msg *Message)
}

// localTime formats a timestamp in the recipient's timezone, falling back
// to UTC when the timezone is unknown.
func localTime(t time.Time, tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc).Format("Mon, 02 Jan 2006 15:04 MST")
}

// ReminderMessage renders the pre-meeting reminder for one participant,
// naming the other party, the scheduled time, the description, and the link.
func ReminderMessage(meeting *entities.Meeting, recipient, other *entities.User) *Message {
	when := localTime(meeting.ScheduledTime, recipient.Timezone)
	link := ""
	if meeting.MeetingLink != nil {
		link = *meeting.MeetingLink
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nYour meeting with %s starts at %s.\n\nTopic: %s\n\nJoin: %s\n",
		recipient.Name, other.Name, when, meeting.Description, link,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your meeting with <strong>%s</strong> starts at <strong>%s</strong>.</p><p>Topic: %s</p><p><a href=%q>Join meeting</a></p>",
		recipient.Name, other.Name, when, meeting.Description, link,
	)

	return &Message{
		Kind:      KindMeetingReminder,
		ToName:    recipient.Name,
		ToAddress: recipient.Email,
		Subject:   fmt.Sprintf("Reminder: meeting with %s at %s", other.Name, when),
		TextBody:  text,
		HTMLBody:  html,
	}
}

// CancellationMessage renders the notice sent to the counterpart when the
// other party cancels, naming who cancelled, the original time, and why.
func CancellationMessage(meeting *entities.Meeting, record *entities.CancellationRecord, recipient, canceller *entities.User) *Message {
	when := localTime(meeting.ScheduledTime, recipient.Timezone)

	text := fmt.Sprintf(
		"Hi %s,\n\n%s has cancelled your meeting scheduled for %s.\n\nReason: %s\n",
		recipient.Name, canceller.Name, when, record.Reason,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p><strong>%s</strong> has cancelled your meeting scheduled for <strong>%s</strong>.</p><p>Reason: %s</p>",
		recipient.Name, canceller.Name, when, record.Reason,
	)

	return &Message{
		Kind:      KindMeetingCancelled,
		ToName:    recipient.Name,
		ToAddress: recipient.Email,
		Subject:   fmt.Sprintf("Meeting cancelled by %s", canceller.Name),
		TextBody:  text,
		HTMLBody:  html,
	}
}

// ProposedMessage renders the notice sent to the counterpart when a
// meeting is proposed.
func ProposedMessage(meeting *entities.Meeting, recipient, initiator *entities.User) *Message {
	when := localTime(meeting.ScheduledTime, recipient.Timezone)

	text := fmt.Sprintf(
		"Hi %s,\n\n%s has proposed a meeting for %s.\n\nTopic: %s\n\nPlease accept or reject the proposal.\n",
		recipient.Name, initiator.Name, when, meeting.Description,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p><strong>%s</strong> has proposed a meeting for <strong>%s</strong>.</p><p>Topic: %s</p><p>Please accept or reject the proposal.</p>",
		recipient.Name, initiator.Name, when, meeting.Description,
	)

	return &Message{
		Kind:      KindMeetingProposed,
		ToName:    recipient.Name,
		ToAddress: recipient.Email,
		Subject:   fmt.Sprintf("Meeting proposed by %s", initiator.Name),
		TextBody:  text,
		HTMLBody:  html,
	}
}

// RespondedMessage renders the notice sent to the initiator when the
// counterpart accepts or rejects.
func RespondedMessage(meeting *entities.Meeting, recipient, counterpart *entities.User, accepted bool) *Message {
	when := localTime(meeting.ScheduledTime, recipient.Timezone)

	kind := KindMeetingRejected
	verdict := "rejected"
	if accepted {
		kind = KindMeetingAccepted
		verdict = "accepted"
	}

	text := fmt.Sprintf(
		"Hi %s,\n\n%s has %s your meeting proposal for %s.\n",
		recipient.Name, counterpart.Name, verdict, when,
	)
	if accepted && meeting.MeetingLink != nil {
		text += fmt.Sprintf("\nJoin: %s\n", *meeting.MeetingLink)
	}
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p><strong>%s</strong> has %s your meeting proposal for <strong>%s</strong>.</p>",
		recipient.Name, counterpart.Name, verdict, when,
	)
	if accepted && meeting.MeetingLink != nil {
		html += fmt.Sprintf("<p><a href=%q>Join meeting</a></p>", *meeting.MeetingLink)
	}

	return &Message{
		Kind:      kind,
		ToName:    recipient.Name,
		ToAddress: recipient.Email,
		Subject:   fmt.Sprintf("Meeting %s by %s", verdict, counterpart.Name),
		TextBody:  text,
		HTMLBody:  html,
	}
}
