package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"regexp"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/thehatchggs/site-api/internal/crypto"
	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/events"
	"github.com/thehatchggs/site-api/internal/repository"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	nextID  int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = "t-" + strconv.Itoa(r.nextID)
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	out := []domain.Ticket{}
	for _, ticket := range r.tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		out = append(out, *ticket)
	}
	return out, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) error {
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	return nil
}

func (r *fakeTicketRepo) AppendNote(_ context.Context, id string, note domain.InternalNote) error {
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.InternalNotes = append(ticket.InternalNotes, note)
	return nil
}

func testCipher(t *testing.T) *crypto.FieldCipher {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	cipher, err := crypto.NewFieldCipher(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	return cipher
}

func newTicketServiceForTest(t *testing.T) (*TicketService, *fakeTicketRepo) {
	t.Helper()
	repo := newFakeTicketRepo()
	svc := NewTicketService(TicketDependencies{
		TicketRepo: repo,
		Cipher:     testCipher(t),
		Logger:     zap.NewNop(),
	})
	return svc, repo
}

func validInput() TicketCreateInput {
	return TicketCreateInput{
		Name:     "Alex",
		Email:    "alex@example.com",
		Subject:  "Order never arrived",
		Category: "merch",
		Message:  "My sticker pack has been missing for three weeks.",
	}
}

func TestCreateTicket_MissingFieldsRejected(t *testing.T) {
	svc, repo := newTicketServiceForTest(t)

	input := validInput()
	input.Email = "  "
	input.Subject = ""

	_, err := svc.CreateTicket(context.Background(), input)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Details, "email")
	assert.Contains(t, domainErr.Details, "subject")
	assert.Empty(t, repo.tickets)
}

func TestCreateTicket_DefaultsApplied(t *testing.T) {
	svc, _ := newTicketServiceForTest(t)

	created, err := svc.CreateTicket(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, created.Ticket.Status)
	assert.Equal(t, domain.EscalationUserRequested, created.Ticket.EscalationReason)
	assert.Nil(t, created.Ticket.PrivateInfo)
	assert.Empty(t, created.PrivateInfoKey)
}

func TestCreateTicket_PrivateInfoEncrypted(t *testing.T) {
	svc, repo := newTicketServiceForTest(t)

	input := validInput()
	input.PrivateInfo = "secret123"

	created, err := svc.CreateTicket(context.Background(), input)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}$`), created.PrivateInfoKey)

	stored := repo.tickets[created.Ticket.ID]
	require.NotNil(t, stored.PrivateInfo)
	assert.NotContains(t, stored.PrivateInfo.Ciphertext, "secret123")

	plaintext, err := svc.DecryptPrivateInfo(context.Background(), created.Ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret123", plaintext)
}

func TestCreateTicket_TranscriptStamped(t *testing.T) {
	svc, repo := newTicketServiceForTest(t)

	input := validInput()
	input.EscalationReason = domain.EscalationNoMatch
	input.Transcript = []domain.ChatTurn{
		{Role: domain.ChatRoleUser, Message: "do you ship abroad?"},
		{Role: domain.ChatRoleAgent, Message: "I'm sorry, I don't have information on that."},
	}

	created, err := svc.CreateTicket(context.Background(), input)
	require.NoError(t, err)

	stored := repo.tickets[created.Ticket.ID]
	require.Len(t, stored.Transcript, 2)
	assert.False(t, stored.Transcript[0].At.IsZero())
	assert.Equal(t, domain.EscalationNoMatch, stored.EscalationReason)
}

func TestCreateTicket_AnalyticsRecordedWithoutTranscript(t *testing.T) {
	analyticsRepo := &fakeAnalyticsRepo{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: newFakeTicketRepo(),
		Cipher:     testCipher(t),
		Analytics:  NewAnalyticsService(analyticsRepo, zap.NewNop()),
		Logger:     zap.NewNop(),
	})

	_, err := svc.CreateTicket(context.Background(), validInput())
	require.NoError(t, err)

	types := make([]string, 0, len(analyticsRepo.inserted))
	for _, event := range analyticsRepo.inserted {
		types = append(types, event.Type)
	}
	assert.Contains(t, types, domain.EventTypeTicketCreated)
	assert.Contains(t, types, domain.EventTypeBotToTicket)
}

type failingDispatcher struct{}

func (d *failingDispatcher) Publish(_ context.Context, _ events.Event) error {
	return errors.New("handler blew up")
}

func (d *failingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func TestCreateTicket_DispatcherFailureLoggedNotFatal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewTicketService(TicketDependencies{
		TicketRepo: newFakeTicketRepo(),
		Cipher:     testCipher(t),
		Dispatcher: &failingDispatcher{},
		Logger:     zap.New(core),
	})

	created, err := svc.CreateTicket(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, created.Ticket)

	assert.Equal(t, 1, logs.FilterMessage("event handlers failed").Len())
}

func TestUpdateStatus_InvalidValueLeavesRecordUntouched(t *testing.T) {
	svc, repo := newTicketServiceForTest(t)

	created, err := svc.CreateTicket(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "admin-1", created.Ticket.ID, domain.TicketStatus("Escalated"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Equal(t, domain.TicketStatusOpen, repo.tickets[created.Ticket.ID].Status)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	svc, repo := newTicketServiceForTest(t)

	created, err := svc.CreateTicket(context.Background(), validInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), "admin-1", created.Ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, updated.Status)

	// Closed is not terminal: an admin can reopen.
	updated, err = svc.UpdateStatus(context.Background(), "admin-1", created.Ticket.ID, domain.TicketStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, updated.Status)
	assert.Equal(t, domain.TicketStatusOpen, repo.tickets[created.Ticket.ID].Status)
}

func TestAddNote_AppendOnly(t *testing.T) {
	svc, repo := newTicketServiceForTest(t)

	created, err := svc.CreateTicket(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.AddNote(context.Background(), "admin-1", created.Ticket.ID, "checked shipping partner")
	require.NoError(t, err)
	ticket, err := svc.AddNote(context.Background(), "admin-2", created.Ticket.ID, "refund issued")
	require.NoError(t, err)

	require.Len(t, ticket.InternalNotes, 2)
	assert.Equal(t, "checked shipping partner", ticket.InternalNotes[0].Note)
	assert.Equal(t, "admin-2", ticket.InternalNotes[1].AdminID)
	assert.Len(t, repo.tickets[created.Ticket.ID].InternalNotes, 2)
}

func TestAddNote_EmptyRejected(t *testing.T) {
	svc, _ := newTicketServiceForTest(t)

	created, err := svc.CreateTicket(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.AddNote(context.Background(), "admin-1", created.Ticket.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestDecryptPrivateInfo_AbsentFieldIsNotFound(t *testing.T) {
	svc, _ := newTicketServiceForTest(t)

	created, err := svc.CreateTicket(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.DecryptPrivateInfo(context.Background(), created.Ticket.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestDecryptPrivateInfo_TamperedCiphertext(t *testing.T) {
	svc, repo := newTicketServiceForTest(t)

	input := validInput()
	input.PrivateInfo = "secret123"
	created, err := svc.CreateTicket(context.Background(), input)
	require.NoError(t, err)

	stored := repo.tickets[created.Ticket.ID]
	stored.PrivateInfo.AuthTag = stored.PrivateInfo.IV

	_, err = svc.DecryptPrivateInfo(context.Background(), created.Ticket.ID)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "INTEGRITY_ERROR", domainErr.Code)
	assert.Equal(t, 500, domainErr.HTTPStatus)
}

func TestGetTicket_UnknownID(t *testing.T) {
	svc, _ := newTicketServiceForTest(t)

	_, err := svc.GetTicket(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
