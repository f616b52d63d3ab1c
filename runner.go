package scenario

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/branched-services/go-scenario/internal/ctxlog"
)

// Statement is one parsed line of a scenario file.
type Statement struct {
	Line  int
	Text  string
	Event Event
}

// Test is a named block of statements. Every test runs from the same
// initial World.
type Test struct {
	Name       string
	Pending    bool
	Statements []Statement
}

// ParseScenario splits a scenario script into tests. A test starts with
// `Test "name"` (or `Pending "name"`, which is parsed but not run) and holds
// every following statement. Statements before the first header form a test
// named "main". Blank lines and comments are skipped.
func ParseScenario(src string) ([]Test, error) {
	var tests []Test
	scanner := bufio.NewScanner(strings.NewReader(src))
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		e, err := ParseLine(text)
		if err != nil {
			return nil, &StatementError{Line: n, Text: text, Err: err}
		}
		if len(e) == 0 {
			continue
		}

		if head, ok := e.Head(); ok && (head == "Test" || head == "Pending") && len(e) == 2 {
			name, ok := e[1].(Word)
			if !ok {
				return nil, &StatementError{Line: n, Text: text, Err: &TypeMismatchError{Expected: "test name", Got: tokenKind(e[1])}}
			}
			tests = append(tests, Test{Name: string(name), Pending: head == "Pending"})
			continue
		}

		if len(tests) == 0 {
			tests = append(tests, Test{Name: "main"})
		}
		cur := &tests[len(tests)-1]
		cur.Statements = append(cur.Statements, Statement{Line: n, Text: text, Event: e})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tests, nil
}

// EventProcessor executes one statement and returns the next World.
type EventProcessor func(ctx context.Context, w *World, e Event) (*World, error)

// Runner executes tests statement by statement, threading the World.
type Runner struct {
	process         EventProcessor
	continueOnError bool
}

// NewRunner creates a Runner dispatching statements to process.
func NewRunner(process EventProcessor, opts ...RunnerOption) *Runner {
	r := &Runner{process: process}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is the outcome of one test.
type Result struct {
	Test    string
	Skipped bool
	World   *World
	Err     error
}

// Run executes tests in order, each from w. It stops at the first failing
// test unless the Runner continues on error; the returned error aggregates
// every failure.
func (r *Runner) Run(ctx context.Context, w *World, tests []Test) ([]Result, error) {
	var (
		results []Result
		errs    *multierror.Error
	)
	for _, t := range tests {
		res := r.RunTest(ctx, w, t)
		results = append(results, res)
		if res.Err == nil {
			continue
		}
		errs = multierror.Append(errs, res.Err)
		if !r.continueOnError {
			break
		}
	}
	return results, errs.ErrorOrNil()
}

// RunTest executes the statements of one test. On failure the World after
// the last successful statement is returned with the error.
func (r *Runner) RunTest(ctx context.Context, w *World, t Test) Result {
	logger := ctxlog.FromContext(ctx).With("test", t.Name)
	if t.Pending {
		logger.Info("Skipping pending test.")
		return Result{Test: t.Name, Skipped: true, World: w}
	}

	logger.Info("Running test.", "statements", len(t.Statements))
	for _, s := range t.Statements {
		if err := ctx.Err(); err != nil {
			return Result{Test: t.Name, World: w, Err: err}
		}
		logger.Debug("Processing statement.", "line", s.Line, "statement", s.Text)
		next, err := r.process(ctx, w, s.Event)
		if err != nil {
			w.Printer().PrintError(err)
			return Result{Test: t.Name, World: w, Err: &StatementError{Test: t.Name, Line: s.Line, Text: s.Text, Err: err}}
		}
		w = next
	}
	logger.Info("Test passed.")
	return Result{Test: t.Name, World: w}
}

// StatementError locates a failure in a scenario script.
type StatementError struct {
	Test string
	Line int
	Text string
	Err  error
}

func (e *StatementError) Error() string {
	if e.Test != "" {
		return fmt.Sprintf("scenario: test %q line %d: %s: %v", e.Test, e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("scenario: line %d: %s: %v", e.Line, e.Text, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}
