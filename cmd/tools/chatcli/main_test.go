package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/farmstead/backend/internal/analysis/intent"
	"github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
	chatservice "github.com/zhouzirui/farmstead/backend/internal/service/chat"
)

func TestRunScriptedConversation(t *testing.T) {
	store := knowledge.NewMemoryStore(knowledge.Seed())
	svc := chatservice.NewService(intent.NewResolver(store), intent.NewDispatcher(store), chatservice.Config{
		Delay: chatservice.NoDelay{},
	})

	in := strings.NewReader("/quick shipping\n2\n/quick nope\n/reset\n/quit\n")
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), svc, in, &out))

	text := out.String()
	assert.Contains(t, text, "Tell me about shipping")
	assert.Contains(t, text, "1. How long does delivery take?")
	assert.Contains(t, text, "Shipping is free for orders over $50")
	assert.Contains(t, text, "unknown quick action")
	assert.Equal(t, 2, strings.Count(text, chatservice.InitialGreeting))
}
