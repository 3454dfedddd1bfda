package chat

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/farmstead/backend/internal/analysis/intent"
	"github.com/zhouzirui/farmstead/backend/internal/model/chat"
)

func TestSynthesizeBuildsMessagePair(t *testing.T) {
	s := NewSynthesizer(NoDelay{})

	reply := intent.Reply{Text: "pick one", Options: []string{"a", "b"}}
	ex := s.Synthesize("sess", "hello", func() (Outcome, error) {
		return Outcome{Reply: reply, Context: intent.ContextFor(reply)}, nil
	})

	assert.False(t, ex.Failed)
	assert.Equal(t, chat.SenderUser, ex.User.Sender)
	assert.Equal(t, "hello", ex.User.Text)
	assert.Nil(t, ex.User.Options)
	assert.Equal(t, chat.SenderBot, ex.Bot.Sender)
	assert.Equal(t, []string{"a", "b"}, ex.Bot.Options)
	assert.True(t, ex.Context.AwaitingSelection)
	assert.Equal(t, "sess", ex.Bot.SessionID)
	assert.NotEqual(t, ex.User.ID, ex.Bot.ID)
	assert.False(t, ex.Bot.Timestamp.Before(ex.User.Timestamp))
	assert.Less(t, ex.User.ID, ex.Bot.ID)
}

func TestSynthesizeWaitsDelayBeforeCall(t *testing.T) {
	s := NewSynthesizer(FixedDelay(750 * time.Millisecond))

	var events []string
	s.sleep = func(d time.Duration) {
		assert.Equal(t, 750*time.Millisecond, d)
		events = append(events, "sleep")
	}

	s.Synthesize("sess", "hi", func() (Outcome, error) {
		events = append(events, "call")
		return Outcome{Reply: intent.Reply{Text: "ok"}, Context: intent.Cleared()}, nil
	})

	assert.Equal(t, []string{"sleep", "call"}, events)
}

func TestSynthesizeErrorBecomesApology(t *testing.T) {
	s := NewSynthesizer(nil)

	ex := s.Synthesize("sess", "hi", func() (Outcome, error) {
		return Outcome{Reply: intent.Reply{Text: "x", Options: []string{"a"}}}, errors.New("boom")
	})

	assert.True(t, ex.Failed)
	assert.Equal(t, ApologyMessage, ex.Bot.Text)
	assert.Nil(t, ex.Bot.Options)
	assert.Equal(t, intent.Cleared(), ex.Context)
}

func TestSynthesizeRecoversPanic(t *testing.T) {
	s := NewSynthesizer(nil)

	var ex Exchange
	require.NotPanics(t, func() {
		ex = s.Synthesize("sess", "hi", func() (Outcome, error) {
			panic("resolver exploded")
		})
	})

	assert.True(t, ex.Failed)
	assert.Equal(t, ApologyMessage, ex.Bot.Text)
	assert.Equal(t, "hi", ex.User.Text)
}

func TestRandomDelayBounds(t *testing.T) {
	d := RandomDelay{Min: 100 * time.Millisecond, Max: 200 * time.Millisecond}
	for i := 0; i < 100; i++ {
		got := d.Next()
		assert.GreaterOrEqual(t, got, d.Min)
		assert.LessOrEqual(t, got, d.Max)
	}

	assert.Equal(t, 50*time.Millisecond, RandomDelay{Min: 50 * time.Millisecond}.Next())
	assert.Equal(t, time.Duration(0), NoDelay{}.Next())
}
