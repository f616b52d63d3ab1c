package scenario

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScenario = `
# Set up the proxy
Print "before any test"

Test "deploys"
Unitroller Deploy -- a comment
ComptrollerImpl Deploy MyScen Scenario

Pending "not yet"
Assert Success

Test "fails"
Fail here
Print "never"
`

func TestParseScenario(t *testing.T) {
	tests, err := ParseScenario(testScenario)
	require.NoError(t, err)
	require.Len(t, tests, 4)

	assert.Equal(t, "main", tests[0].Name)
	assert.Len(t, tests[0].Statements, 1)

	assert.Equal(t, "deploys", tests[1].Name)
	require.Len(t, tests[1].Statements, 2)
	assert.Equal(t, 6, tests[1].Statements[0].Line)
	assert.Equal(t, "Unitroller Deploy", tests[1].Statements[0].Event.String())
	assert.Equal(t, "ComptrollerImpl Deploy MyScen Scenario", tests[1].Statements[1].Text)

	assert.True(t, tests[2].Pending)
	assert.Equal(t, "not yet", tests[2].Name)

	assert.False(t, tests[3].Pending)
	assert.Len(t, tests[3].Statements, 2)
}

func TestParseScenarioErrors(t *testing.T) {
	t.Run("bad line", func(t *testing.T) {
		_, err := ParseScenario("Print ok\nPrint \"unterminated\n")

		var stmtErr *StatementError
		require.ErrorAs(t, err, &stmtErr)
		assert.Equal(t, 2, stmtErr.Line)

		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("group as test name", func(t *testing.T) {
		_, err := ParseScenario("Test (name)")

		var mismatch *TypeMismatchError
		assert.ErrorAs(t, err, &mismatch)
	})
}

// recordingProcessor appends each event to the action log and fails on "Fail".
func recordingProcessor(ctx context.Context, w *World, e Event) (*World, error) {
	if head, _ := e.Head(); head == "Fail" {
		return w, errors.New("boom")
	}
	return AddAction(w, e.String(), nil), nil
}

func TestRunnerRun(t *testing.T) {
	ctx := context.Background()
	tests, err := ParseScenario(testScenario)
	require.NoError(t, err)

	t.Run("halts at the first failure", func(t *testing.T) {
		var printed []string
		w := NewWorld("test", WithPrinter(CallbackPrinter{Fn: func(s string) { printed = append(printed, s) }}))

		results, err := NewRunner(recordingProcessor).Run(ctx, w, append(tests, Test{Name: "after"}))
		require.Error(t, err)
		require.Len(t, results, 4)

		assert.NoError(t, results[0].Err)
		assert.Len(t, results[1].World.Actions(), 2)
		assert.True(t, results[2].Skipped)

		var stmtErr *StatementError
		require.ErrorAs(t, results[3].Err, &stmtErr)
		assert.Equal(t, "fails", stmtErr.Test)
		assert.Equal(t, "Fail here", stmtErr.Text)
		assert.Contains(t, printed, "Error: boom")
		assert.Empty(t, results[3].World.Actions())
	})

	t.Run("tests start from the same world", func(t *testing.T) {
		w := NewWorld("test")
		results, err := NewRunner(recordingProcessor).Run(ctx, w, tests[:2])
		require.NoError(t, err)

		assert.Len(t, results[0].World.Actions(), 1)
		assert.Len(t, results[1].World.Actions(), 2)
		assert.Empty(t, w.Actions())
	})

	t.Run("continues on error", func(t *testing.T) {
		failing := Test{Name: "again", Statements: []Statement{{Line: 1, Text: "Fail", Event: NewEvent("Fail")}}}
		results, err := NewRunner(recordingProcessor, WithContinueOnError(true)).
			Run(ctx, NewWorld("test"), append(tests, failing))
		require.Error(t, err)
		assert.Len(t, results, 5)
		assert.True(t, strings.Contains(err.Error(), "2 errors occurred"))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		res := NewRunner(recordingProcessor).RunTest(cctx, NewWorld("test"), tests[1])
		assert.ErrorIs(t, res.Err, context.Canceled)
	})
}

func TestStatementError(t *testing.T) {
	cause := errors.New("boom")

	withTest := &StatementError{Test: "deploys", Line: 3, Text: "Fail", Err: cause}
	assert.Equal(t, `scenario: test "deploys" line 3: Fail: boom`, withTest.Error())
	assert.ErrorIs(t, withTest, cause)

	bare := &StatementError{Line: 3, Text: "Fail", Err: cause}
	assert.Equal(t, "scenario: line 3: Fail: boom", bare.Error())
}
