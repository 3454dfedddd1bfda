package intent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
)

// ErrUnknownCategory is returned for quick actions naming no category.
var ErrUnknownCategory = errors.New("unknown category")

// QuickAction is the synthetic exchange produced by a shortcut button.
type QuickAction struct {
	UserEcho string `json:"userEcho"`
	Reply    Reply  `json:"reply"`
}

// Shortcut describes one quick-action button.
type Shortcut struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Dispatcher answers quick actions without pattern matching. Its replies are
// the same category overviews the typed trigger phrases produce.
type Dispatcher struct {
	store knowledge.Store
}

// NewDispatcher creates a dispatcher over store.
func NewDispatcher(store knowledge.Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// Actions lists one shortcut per category in display order.
func (d *Dispatcher) Actions() []Shortcut {
	categories := d.store.List()
	out := make([]Shortcut, len(categories))
	for i, c := range categories {
		out[i] = Shortcut{Key: c.Key, Title: c.Title, Icon: c.Icon}
	}
	return out
}

// Dispatch builds the overview exchange for categoryKey. The returned
// context always awaits a selection.
func (d *Dispatcher) Dispatch(categoryKey string) (QuickAction, DialogueContext, error) {
	category, ok := d.store.FindByKey(categoryKey)
	if !ok {
		return QuickAction{}, Cleared(), fmt.Errorf("%w: %q", ErrUnknownCategory, categoryKey)
	}

	quickActionsTotal.WithLabelValues(category.Key).Inc()
	reply := Overview(category)
	return QuickAction{
		UserEcho: "Tell me about " + strings.ToLower(category.Title),
		Reply:    reply,
	}, ContextFor(reply), nil
}
