package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/farmstead/backend/internal/analysis/intent"
	"github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
)

func newInternalService() *Service {
	store := knowledge.NewMemoryStore(knowledge.Seed())
	return NewService(intent.NewResolver(store), intent.NewDispatcher(store), Config{
		Delay:      NoDelay{},
		SessionTTL: time.Minute,
	})
}

func TestSweepKeepsAcquiredSession(t *testing.T) {
	svc := newInternalService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	conv, err := svc.acquire(session.ID)
	require.NoError(t, err)

	later := time.Now().Add(time.Hour)
	assert.Equal(t, 0, svc.Sweep(later))

	ex, err := conv.submitText("checkout")
	require.NoError(t, err)
	conv.release()

	messages, err := svc.LoadTranscript(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, ex.Bot.ID, messages[len(messages)-1].ID)

	assert.Equal(t, 1, svc.Sweep(later))
	_, err = svc.LoadTranscript(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestServiceSubmitWhileAcquiredIsBusy(t *testing.T) {
	svc := newInternalService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	conv, err := svc.acquire(session.ID)
	require.NoError(t, err)

	_, err = svc.SubmitText(ctx, session.ID, "hello")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = svc.SubmitQuickAction(ctx, session.ID, knowledge.Shipping)
	assert.ErrorIs(t, err, ErrBusy)

	conv.release()
	_, err = svc.SubmitText(ctx, session.ID, "hello")
	assert.NoError(t, err)
}

func TestServiceReleasesAfterFailedSubmit(t *testing.T) {
	svc := newInternalService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	_, err = svc.SubmitText(ctx, session.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, err = svc.SubmitQuickAction(ctx, session.ID, "treatments")
	assert.ErrorIs(t, err, ErrUnknownQuickAction)

	_, err = svc.SubmitText(ctx, session.ID, "hello")
	assert.NoError(t, err)
}

func TestTranscriptContextMirrorsLastBotMessage(t *testing.T) {
	svc := newInternalService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitQuickAction(ctx, session.ID, knowledge.Ordering)
	require.NoError(t, err)

	messages, dialogue, err := svc.Transcript(ctx, session.ID)
	require.NoError(t, err)
	last := messages[len(messages)-1]
	assert.True(t, dialogue.AwaitingSelection)
	assert.Equal(t, last.Options, dialogue.PendingOptions)

	_, _, err = svc.Transcript(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
