package intent

// DialogueContext is the resolver's memory between two user turns: whether
// the next message may be a numbered selection and which labels it selects
// among. AwaitingSelection is true exactly when PendingOptions is non-empty.
type DialogueContext struct {
	AwaitingSelection bool     `json:"awaitingSelection"`
	PendingOptions    []string `json:"pendingOptions"`
}

// Reply is the bot answer computed for one user turn.
type Reply struct {
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
}

// Cleared returns the initial context.
func Cleared() DialogueContext {
	return DialogueContext{PendingOptions: []string{}}
}

// ContextFor derives the context that must follow reply. It overwrites the
// previous context: replies without options clear it.
func ContextFor(reply Reply) DialogueContext {
	if len(reply.Options) == 0 {
		return Cleared()
	}
	return DialogueContext{
		AwaitingSelection: true,
		PendingOptions:    append([]string(nil), reply.Options...),
	}
}
