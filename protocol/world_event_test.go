package protocol_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldEvents(t *testing.T) {
	t.Run("dry run", func(t *testing.T) {
		w, _, _ := newTestWorld(t)
		w = run(t, w, "World SetDryRun True")
		assert.True(t, w.IsDryRun())

		w = run(t, w, "World SetDryRun False")
		assert.False(t, w.IsDryRun())
	})

	t.Run("allow failures", func(t *testing.T) {
		w, _, _ := newTestWorld(t)
		w = run(t, w, "World AllowFailures")
		assert.True(t, w.AllowsFailures())

		w = run(t, w, "World AllowFailures False")
		assert.False(t, w.AllowsFailures())
	})

	t.Run("contracts", func(t *testing.T) {
		w, _, out := newTestWorld(t)
		w = run(t, w, "Unitroller Deploy", "ComptrollerImpl Deploy MyScen Scenario")
		out.lines = nil

		run(t, w, "World Contracts")
		require.Len(t, out.lines, 2)
		assert.True(t, strings.HasPrefix(out.lines[0], "MyScen ComptrollerScenario 0x"), out.lines[0])
		assert.True(t, strings.HasPrefix(out.lines[1], "Unitroller Unitroller 0x"), out.lines[1])
	})

	t.Run("actions", func(t *testing.T) {
		w, _, out := newTestWorld(t)
		w = run(t, w, "Unitroller Deploy")
		out.lines = nil

		run(t, w, "World Actions")
		require.Len(t, out.lines, 1)
		assert.True(t, strings.HasPrefix(out.lines[0], "Added Unitroller at address"))
	})
}
