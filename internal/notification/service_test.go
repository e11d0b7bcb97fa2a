package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/party-rsvp-backend/internal/testutil"
)

type fakeMailer struct {
	sent []Message
	err  error
}

func (m *fakeMailer) Name() string { return "fake" }

func (m *fakeMailer) Send(_ context.Context, msg Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeRoster struct {
	attendees []Attendee
	err       error
	calls     int
}

func (r *fakeRoster) Roster(_ context.Context, _ uint) (PartyDetails, []Attendee, error) {
	r.calls++
	return testParty(), r.attendees, r.err
}

func newTestService(t *testing.T, mailer Mailer, roster RosterSource, recipient string) (*Service, Repository) {
	repo := NewRepository(testutil.NewDB(t, &NotificationLog{}))
	return NewService(mailer, roster, repo, recipient, zerolog.Nop()), repo
}

func TestDeliverSendsRosterToRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	roster := &fakeRoster{attendees: []Attendee{{Name: "Ana", NumberOfGuests: 2}, {Name: "Bo", NumberOfGuests: 1}}}
	svc, repo := newTestService(t, mailer, roster, "host@example.com")

	err := svc.Deliver(context.Background(), Job{PartyID: 1, GuestName: "Ana", ConfirmationCode: "ABCD1234"})
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, []string{"host@example.com"}, msg.To)
	assert.Contains(t, msg.Subject, "Ana")
	assert.Contains(t, msg.Text, "1. Ana (2 guests)")
	assert.Contains(t, msg.Text, "2. Bo (1 guest)")

	logs, err := repo.ListLogs(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, StatusSent, logs[0].Status)
	assert.Equal(t, "ABCD1234", logs[0].ConfirmationCode)
	assert.Equal(t, "fake", logs[0].Channel)
	assert.JSONEq(t, `["host@example.com"]`, string(logs[0].Recipients))
	assert.Nil(t, logs[0].Error)
}

func TestDeliverSkipsWithoutRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	roster := &fakeRoster{}
	svc, repo := newTestService(t, mailer, roster, "")

	require.NoError(t, svc.Deliver(context.Background(), Job{PartyID: 1, GuestName: "Ana"}))
	assert.Empty(t, mailer.sent)
	assert.Zero(t, roster.calls)

	logs, err := repo.ListLogs(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, StatusSkipped, logs[0].Status)
	assert.JSONEq(t, `[]`, string(logs[0].Recipients))
}

func TestDeliverRecordsTransportFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("connection refused")}
	svc, repo := newTestService(t, mailer, &fakeRoster{}, "host@example.com")

	err := svc.Deliver(context.Background(), Job{PartyID: 1, GuestName: "Ana"})
	require.Error(t, err)

	logs, err := repo.ListLogs(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, StatusFailed, logs[0].Status)
	require.NotNil(t, logs[0].Error)
	assert.Equal(t, "connection refused", *logs[0].Error)
}

func TestDeliverRosterFailure(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _ := newTestService(t, mailer, &fakeRoster{err: errors.New("db gone")}, "host@example.com")

	err := svc.Deliver(context.Background(), Job{PartyID: 1, GuestName: "Ana"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load roster")
	assert.Empty(t, mailer.sent)
}
