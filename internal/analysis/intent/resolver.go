package intent

import (
	"log/slog"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
)

const (
	// RuleSelection names turns answered through a pending numbered choice.
	RuleSelection = "selection"
)

var selectionLiteral = regexp.MustCompile(`^[0-9]+$`)

// Resolver maps a user turn and the current dialogue context to a reply.
// It holds no per-conversation state and can be shared between sessions.
type Resolver struct {
	store knowledge.Store
	rules []Rule
}

// Option customises a Resolver.
type Option func(*resolverOptions)

type resolverOptions struct {
	pick  Picker
	rules func(knowledge.Store, Picker) []Rule
}

// WithPicker replaces the random choice between greeting variants.
func WithPicker(p Picker) Option {
	return func(o *resolverOptions) { o.pick = p }
}

// WithRules replaces the default rule list.
func WithRules(build func(knowledge.Store, Picker) []Rule) Option {
	return func(o *resolverOptions) { o.rules = build }
}

// NewResolver creates a resolver over store using DefaultRules.
func NewResolver(store knowledge.Store, opts ...Option) *Resolver {
	o := resolverOptions{
		pick:  rand.IntN,
		rules: DefaultRules,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Resolver{store: store, rules: o.rules(store, o.pick)}
}

// Rules returns the rule names in evaluation order, fallback last.
func (r *Resolver) Rules() []string {
	names := make([]string, 0, len(r.rules)+1)
	for _, rule := range r.rules {
		names = append(names, rule.Name)
	}
	return append(names, RuleFallback)
}

// Resolve answers input given ctx and returns the context that must follow.
// input must not be blank.
func (r *Resolver) Resolve(input string, ctx DialogueContext) (Reply, DialogueContext) {
	reply, rule := r.resolve(input, ctx)
	ruleMatchesTotal.WithLabelValues(rule).Inc()
	slog.Debug("intent resolved", "rule", rule, "options", len(reply.Options))
	return reply, ContextFor(reply)
}

func (r *Resolver) resolve(input string, ctx DialogueContext) (Reply, string) {
	trimmed := strings.TrimSpace(input)

	if ctx.AwaitingSelection {
		if answer, ok := r.selection(trimmed, ctx.PendingOptions); ok {
			selectionsTotal.WithLabelValues("resolved").Inc()
			return Reply{Text: answer}, RuleSelection
		}
		// the stale option list is dropped; the turn is read as free text
		selectionsTotal.WithLabelValues("missed").Inc()
	}

	normalized := strings.ToLower(trimmed)
	for _, rule := range r.rules {
		if rule.Match(normalized) {
			return rule.Respond(normalized), rule.Name
		}
	}
	return Reply{Text: fallbackReply}, RuleFallback
}

func (r *Resolver) selection(input string, options []string) (string, bool) {
	if !selectionLiteral.MatchString(input) {
		return "", false
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return "", false
	}
	index := n - 1
	if index < 0 || index >= len(options) {
		return "", false
	}
	return r.store.FindAnswer(options[index])
}
