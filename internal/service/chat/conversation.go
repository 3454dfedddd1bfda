package chat

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zhouzirui/farmstead/backend/internal/analysis/intent"
	"github.com/zhouzirui/farmstead/backend/internal/model/chat"
)

// InitialGreeting is the only message of a fresh or reset conversation.
const InitialGreeting = "Hi! I'm the Farmstead assistant. Ask me about our products, ordering, shipping or support, or pick a topic below."

var (
	ErrEmptyInput         = errors.New("message text is required")
	ErrBusy               = errors.New("a reply is still pending")
	ErrConversationReset  = errors.New("conversation was reset while the reply was pending")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnknownQuickAction = intent.ErrUnknownCategory
)

// Conversation is the message log and dialogue context of one session.
// Only one submission may be in flight at a time; the log is append-only
// apart from Reset, which replaces it.
type Conversation struct {
	sessionID  string
	resolver   *intent.Resolver
	dispatcher *intent.Dispatcher
	synth      *Synthesizer

	inFlight atomic.Bool

	mu           sync.RWMutex
	messages     []chat.Message
	dialogue     intent.DialogueContext
	generation   uint64
	lastActivity time.Time
}

// NewConversation returns a conversation holding only the initial greeting.
func NewConversation(sessionID string, resolver *intent.Resolver, dispatcher *intent.Dispatcher, synth *Synthesizer) *Conversation {
	c := &Conversation{
		sessionID:  sessionID,
		resolver:   resolver,
		dispatcher: dispatcher,
		synth:      synth,
	}
	c.Reset()
	return c
}

// Append adds msg to the log. A bot message overwrites the dialogue context
// with the one its options imply.
func (c *Conversation) Append(msg chat.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appendLocked(msg)
	if msg.Sender == chat.SenderBot {
		c.dialogue = intent.ContextFor(intent.Reply{Text: msg.Text, Options: msg.Options})
	}
}

// Reset replaces the log with the initial greeting and clears the context.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.messages = []chat.Message{{
		ID:        newMessageID(),
		SessionID: c.sessionID,
		Sender:    chat.SenderBot,
		Text:      InitialGreeting,
		Timestamp: time.Now().UTC(),
	}}
	c.dialogue = intent.Cleared()
	c.lastActivity = time.Now()
}

// Snapshot returns a copy of the log in submission order.
func (c *Conversation) Snapshot() []chat.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	copied := make([]chat.Message, len(c.messages))
	copy(copied, c.messages)
	return copied
}

// Context returns the current dialogue context.
func (c *Conversation) Context() intent.DialogueContext {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return intent.DialogueContext{
		AwaitingSelection: c.dialogue.AwaitingSelection,
		PendingOptions:    append([]string{}, c.dialogue.PendingOptions...),
	}
}

// LastActivity reports when the conversation was last submitted to or reset.
func (c *Conversation) LastActivity() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastActivity
}

// Pending reports whether a reply is being prepared.
func (c *Conversation) Pending() bool {
	return c.inFlight.Load()
}

// SubmitText runs one free-text turn through the resolver.
func (c *Conversation) SubmitText(raw string) (Exchange, error) {
	if !c.acquire() {
		return Exchange{}, ErrBusy
	}
	defer c.release()
	return c.submitText(raw)
}

// SubmitQuickAction runs one shortcut turn for categoryKey.
func (c *Conversation) SubmitQuickAction(categoryKey string) (Exchange, error) {
	if !c.acquire() {
		return Exchange{}, ErrBusy
	}
	defer c.release()
	return c.submitQuickAction(categoryKey)
}

// State returns the log and the dialogue context as of the same instant.
func (c *Conversation) State() ([]chat.Message, intent.DialogueContext) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	copied := make([]chat.Message, len(c.messages))
	copy(copied, c.messages)
	return copied, intent.DialogueContext{
		AwaitingSelection: c.dialogue.AwaitingSelection,
		PendingOptions:    append([]string{}, c.dialogue.PendingOptions...),
	}
}

// acquire marks a submission as in flight. The caller must release it.
func (c *Conversation) acquire() bool {
	return c.inFlight.CompareAndSwap(false, true)
}

func (c *Conversation) release() {
	c.inFlight.Store(false)
}

func (c *Conversation) submitText(raw string) (Exchange, error) {
	if strings.TrimSpace(raw) == "" {
		return Exchange{}, ErrEmptyInput
	}
	return c.submit("text", raw, func(ctx intent.DialogueContext) (Outcome, error) {
		reply, next := c.resolver.Resolve(raw, ctx)
		return Outcome{Reply: reply, Context: next}, nil
	})
}

func (c *Conversation) submitQuickAction(categoryKey string) (Exchange, error) {
	action, next, err := c.dispatcher.Dispatch(categoryKey)
	if err != nil {
		return Exchange{}, err
	}
	return c.submit("quick_action", action.UserEcho, func(intent.DialogueContext) (Outcome, error) {
		return Outcome{Reply: action.Reply, Context: next}, nil
	})
}

// submit runs one exchange. The caller holds the in-flight mark.
func (c *Conversation) submit(kind, userText string, call func(intent.DialogueContext) (Outcome, error)) (Exchange, error) {
	c.mu.Lock()
	ctx := c.dialogue
	generation := c.generation
	c.lastActivity = time.Now()
	c.mu.Unlock()

	exchange := c.synth.Synthesize(c.sessionID, userText, func() (Outcome, error) {
		return call(ctx)
	})

	result := "ok"
	if exchange.Failed {
		result = "apology"
	}
	exchangesTotal.WithLabelValues(kind, result).Inc()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return exchange, ErrConversationReset
	}
	c.appendLocked(exchange.User)
	c.appendLocked(exchange.Bot)
	c.dialogue = exchange.Context
	c.lastActivity = time.Now()
	return exchange, nil
}

func (c *Conversation) appendLocked(msg chat.Message) {
	if msg.SessionID == "" {
		msg.SessionID = c.sessionID
	}
	c.messages = append(c.messages, msg)
}
