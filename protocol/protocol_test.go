package protocol_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/branched-services/go-scenario"
	"github.com/branched-services/go-scenario/internal/testutil"
	"github.com/branched-services/go-scenario/protocol"
)

type output struct {
	lines []string
}

func (o *output) printer() scenario.WorldOption {
	return scenario.WithPrinter(scenario.CallbackPrinter{Fn: func(s string) { o.lines = append(o.lines, s) }})
}

// newTestWorld returns a World on the "test" network backed by a fresh
// FakeBackend, recording printed lines.
func newTestWorld(t *testing.T, opts ...scenario.WorldOption) (*scenario.World, *testutil.FakeBackend, *output) {
	t.Helper()
	b := testutil.NewFakeBackend()
	out := &output{}
	w := protocol.NewWorld("test", testutil.WorldOptions(b, append([]scenario.WorldOption{out.printer()}, opts...)...)...)
	return w, b, out
}

func process(ctx context.Context, w *scenario.World, line string) (*scenario.World, error) {
	return protocol.ProcessEvent(ctx, w, scenario.MustParseLine(line))
}

// run processes each line and fails the test on the first error.
func run(t *testing.T, w *scenario.World, lines ...string) *scenario.World {
	t.Helper()
	ctx := context.Background()
	for _, line := range lines {
		var err error
		w, err = process(ctx, w, line)
		require.NoError(t, err, line)
	}
	return w
}
