package chat

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/farmstead/backend/internal/analysis/intent"
	"github.com/zhouzirui/farmstead/backend/internal/model/chat"
)

// ApologyMessage replaces the reply of a turn that failed internally.
const ApologyMessage = "Sorry, something went wrong on my side. Please try again in a moment."

// Delay decides how long the bot appears to be typing.
type Delay interface {
	Next() time.Duration
}

// NoDelay replies immediately.
type NoDelay struct{}

func (NoDelay) Next() time.Duration { return 0 }

// FixedDelay always waits the same duration.
type FixedDelay time.Duration

func (d FixedDelay) Next() time.Duration { return time.Duration(d) }

// RandomDelay waits a uniformly random duration in [Min, Max].
type RandomDelay struct {
	Min time.Duration
	Max time.Duration
}

func (d RandomDelay) Next() time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + rand.N(d.Max-d.Min+1)
}

// Outcome is what the resolver or dispatcher produced for one turn.
type Outcome struct {
	Reply   intent.Reply
	Context intent.DialogueContext
}

// Exchange is one completed user turn: the two messages to append and the
// context that must follow them.
type Exchange struct {
	User    chat.Message           `json:"user"`
	Bot     chat.Message           `json:"bot"`
	Context intent.DialogueContext `json:"context"`
	Failed  bool                   `json:"failed,omitempty"`
}

// Synthesizer turns engine calls into timestamped message pairs.
type Synthesizer struct {
	delay Delay
	sleep func(time.Duration)
	now   func() time.Time
}

// NewSynthesizer creates a synthesizer waiting delay before each reply.
// A nil delay means NoDelay.
func NewSynthesizer(delay Delay) *Synthesizer {
	if delay == nil {
		delay = NoDelay{}
	}
	return &Synthesizer{
		delay: delay,
		sleep: time.Sleep,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Synthesize builds the user message, waits the typing delay, runs call and
// builds the bot message from its outcome. Errors and panics inside call are
// turned into the apology reply; Synthesize itself never fails.
func (s *Synthesizer) Synthesize(sessionID, userText string, call func() (Outcome, error)) Exchange {
	user := s.message(sessionID, chat.SenderUser, userText, nil)

	if d := s.delay.Next(); d > 0 {
		typingDelaySeconds.Observe(d.Seconds())
		s.sleep(d)
	}

	outcome, err := safeCall(call)
	failed := err != nil
	if failed {
		slog.Error("assistant turn failed", "session", sessionID, "error", err)
		outcome = Outcome{Reply: intent.Reply{Text: ApologyMessage}, Context: intent.Cleared()}
	}

	bot := s.message(sessionID, chat.SenderBot, outcome.Reply.Text, outcome.Reply.Options)
	return Exchange{User: user, Bot: bot, Context: outcome.Context, Failed: failed}
}

func (s *Synthesizer) message(sessionID string, sender chat.Sender, text string, options []string) chat.Message {
	var opts []string
	if len(options) > 0 {
		opts = append([]string(nil), options...)
	}
	return chat.Message{
		ID:        newMessageID(),
		SessionID: sessionID,
		Sender:    sender,
		Text:      text,
		Options:   opts,
		Timestamp: s.now(),
	}
}

func safeCall(call func() (Outcome, error)) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return call()
}

// newMessageID returns a time-ordered identifier.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
