package app

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/branched-services/go-scenario"
	"github.com/branched-services/go-scenario/protocol"
)

// Summary counts the outcomes of a scenario run.
type Summary struct {
	Passed  int
	Failed  int
	Skipped int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped", s.Passed, s.Failed, s.Skipped)
}

// RunFile parses and runs a scenario file from the initial World.
func (a *App) RunFile(ctx context.Context, path string) (Summary, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "read scenario %s", path)
	}
	a.logger.Info("Running scenario.", "path", path)
	return a.Run(ctx, string(src))
}

// Run parses and runs a scenario script, reporting each test.
func (a *App) Run(ctx context.Context, src string) (Summary, error) {
	tests, err := scenario.ParseScenario(src)
	if err != nil {
		return Summary{}, err
	}

	runner := scenario.NewRunner(protocol.ProcessEvent, scenario.WithContinueOnError(a.continueOnError))
	results, runErr := runner.Run(a.Context(ctx), a.world, tests)

	var sum Summary
	for _, r := range results {
		switch {
		case r.Skipped:
			sum.Skipped++
			fmt.Fprintf(a.outW, "SKIP %s\n", r.Test)
		case r.Err != nil:
			sum.Failed++
			fmt.Fprintf(a.outW, "FAIL %s: %v\n", r.Test, r.Err)
		default:
			sum.Passed++
			fmt.Fprintf(a.outW, "PASS %s\n", r.Test)
		}
	}
	fmt.Fprintln(a.outW, sum)
	return sum, runErr
}
