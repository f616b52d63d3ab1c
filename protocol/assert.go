package protocol

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-scenario"
)

func assertionFailed(format string, args ...any) error {
	return &scenario.AssertionError{Message: fmt.Sprintf(format, args...)}
}

// lastInvokation returns the invokation an assertion checks.
func lastInvokation(w *scenario.World) (scenario.Invoked, error) {
	inv := w.LastInvokation()
	if inv == nil {
		return nil, assertionFailed("no invokation to check")
	}
	return inv, nil
}

func assertSuccess(w *scenario.World) error {
	inv, err := lastInvokation(w)
	if err != nil {
		return err
	}
	if !inv.Succeeded() {
		return assertionFailed("expected %s to succeed, got %v", inv.MethodName(), inv.Err())
	}
	return nil
}

func assertFailure(w *scenario.World, errName, info string, detail *big.Int) error {
	inv, err := lastInvokation(w)
	if err != nil {
		return err
	}
	failures := inv.FailureList()
	if len(failures) == 0 {
		return assertionFailed("expected %s to fail with %s, but it emitted no failure", inv.MethodName(), errName)
	}
	for _, f := range failures {
		if f.Equal(errName, info, detail) {
			return nil
		}
	}
	return assertionFailed("expected %s to fail with %s %s, got %s", inv.MethodName(), errName, info, failures[0])
}

func assertRevert(w *scenario.World, reason string) error {
	inv, err := lastInvokation(w)
	if err != nil {
		return err
	}
	invErr := inv.Err()
	if invErr == nil || len(inv.FailureList()) > 0 {
		return assertionFailed("expected %s to revert, got %v", inv.MethodName(), invErr)
	}
	if reason != "" && !strings.Contains(invErr.Error(), reason) {
		return assertionFailed("expected %s to revert with %q, got %v", inv.MethodName(), reason, invErr)
	}
	return nil
}

// AssertionCommands returns the commands of the "Assert" noun. Assertions
// never change the World.
func AssertionCommands() []*scenario.Command {
	return []*scenario.Command{
		scenario.NewView(`
			#### Success

			* "Assert Success" - Asserts the last invokation succeeded
			  * E.g. "Assert Success"
		`,
			"Success",
			nil,
			func(_ context.Context, w *scenario.World, _ scenario.Args) error {
				return assertSuccess(w)
			},
		),
		scenario.NewView(`
			#### Failure

			* "Assert Failure error:<String> info:<String> detail:<Number>" - Asserts the last invokation emitted a Failure event
			  * E.g. "Assert Failure UNAUTHORIZED SET_PENDING_ADMIN_OWNER_CHECK"
		`,
			"Failure",
			[]*scenario.Arg{
				scenario.NewArg("error", scenario.GetStringV),
				scenario.NewArg("info", scenario.GetStringV, scenario.Default(scenario.StringV(""))),
				scenario.NewArg("detail", scenario.GetNumberV, scenario.Default(scenario.NothingV{})),
			},
			func(_ context.Context, w *scenario.World, args scenario.Args) error {
				var detail *big.Int
				if n, ok := args.Get("detail").(scenario.NumberV); ok {
					i, exact := n.Int()
					if !exact {
						return assertionFailed("detail %s is not an integer", n)
					}
					detail = i
				}
				return assertFailure(w, args.String("error"), args.String("info"), detail)
			},
		),
		scenario.NewView(`
			#### Revert

			* "Assert Revert reason:<String>" - Asserts the last invokation reverted, optionally with a reason
			  * E.g. "Assert Revert "revert""
		`,
			"Revert",
			[]*scenario.Arg{scenario.NewArg("reason", scenario.GetStringV, scenario.Default(scenario.StringV("")))},
			func(_ context.Context, w *scenario.World, args scenario.Args) error {
				return assertRevert(w, args.String("reason"))
			},
		),
		scenario.NewView(`
			#### Equal

			* "Assert Equal given:<Value> expected:<Value>" - Asserts two values are equal
			  * E.g. "Assert Equal (Unitroller Implementation) (ComptrollerImpl MyImpl Address)"
		`,
			"Equal",
			[]*scenario.Arg{
				scenario.NewArg("given", scenario.GetCoreValue),
				scenario.NewArg("expected", scenario.GetCoreValue),
			},
			func(_ context.Context, _ *scenario.World, args scenario.Args) error {
				given, expected := args.Get("given"), args.Get("expected")
				if !scenario.Equal(given, expected) {
					return assertionFailed("expected %s to equal %s", given, expected)
				}
				return nil
			},
		),
		scenario.NewView(`
			#### True

			* "Assert True given:<Bool>" - Asserts a value is true
			  * E.g. "Assert True (Call Unitroller isComptroller)"
		`,
			"True",
			[]*scenario.Arg{scenario.NewArg("given", scenario.GetCoreValue)},
			func(_ context.Context, _ *scenario.World, args scenario.Args) error {
				if given := args.Get("given"); !scenario.Equal(given, scenario.BoolV(true)) {
					return assertionFailed("expected %s to be True", given)
				}
				return nil
			},
		),
		scenario.NewView(`
			#### False

			* "Assert False given:<Bool>" - Asserts a value is false
			  * E.g. "Assert False (Call Unitroller isComptroller)"
		`,
			"False",
			[]*scenario.Arg{scenario.NewArg("given", scenario.GetCoreValue)},
			func(_ context.Context, _ *scenario.World, args scenario.Args) error {
				if given := args.Get("given"); !scenario.Equal(given, scenario.BoolV(false)) {
					return assertionFailed("expected %s to be False", given)
				}
				return nil
			},
		),
	}
}

// ProcessAssertionEvent runs an "Assert" statement.
func ProcessAssertionEvent(ctx context.Context, w *scenario.World, e scenario.Event, from common.Address) (*scenario.World, error) {
	return scenario.ProcessCommandEvent(ctx, "Assert", AssertionCommands(), w, e, from)
}
