package agents

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voicelab-go/agent-days/pkg/agent"
)

// toolCaller invokes a persona's tools the way the session would, straight
// through the registered handler.
type toolCaller struct {
	t     *testing.T
	tools *agent.ToolSet
}

func (c toolCaller) call(name, input string) result {
	c.t.Helper()
	out, err := c.callRaw(name, input)
	require.NoError(c.t, err)
	r, ok := out.(result)
	require.True(c.t, ok, "tool %s returned %T", name, out)
	return r
}

func (c toolCaller) callRaw(name, input string) (any, error) {
	c.t.Helper()
	h, ok := c.tools.Handler(name)
	require.True(c.t, ok, "no tool %s", name)
	return h(context.Background(), json.RawMessage(input))
}
