// Package protocol binds the scenario interpreter to the lending protocol:
// contract builders, the command modules of each contract family and the
// top-level noun table a scenario line is dispatched through.
package protocol

import (
	"context"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-scenario"
	"github.com/branched-services/go-scenario/internal/ctxlog"
)

// NewWorld creates a World whose parenthesised expressions are evaluated by
// Resolve.
func NewWorld(network string, opts ...scenario.WorldOption) *scenario.World {
	return scenario.NewWorld(network, append([]scenario.WorldOption{scenario.WithResolver(Resolve)}, opts...)...)
}

type eventProcessor func(ctx context.Context, w *scenario.World, e scenario.Event, from common.Address) (*scenario.World, error)

// nounCommand wraps a noun's event processor as a top-level Command.
func nounCommand(doc, noun string, process eventProcessor) *scenario.Command {
	return scenario.NewCommand(doc, noun,
		[]*scenario.Arg{scenario.NewArg("event", scenario.GetEventV, scenario.Variadic())},
		func(ctx context.Context, w *scenario.World, from common.Address, args scenario.Args) (*scenario.World, error) {
			return process(ctx, w, args.Event("event"), from)
		},
	)
}

// Commands returns the top-level noun table.
func Commands() []*scenario.Command {
	return []*scenario.Command{
		scenario.NewView(`
			#### Help

			* "Help ...noun" - Prints the commands of a noun, or every noun
			  * E.g. "Help ComptrollerImpl"
		`,
			"Help",
			[]*scenario.Arg{scenario.NewArg("noun", scenario.GetStringV, scenario.Variadic(), scenario.Default(scenario.StringV("")))},
			func(_ context.Context, w *scenario.World, args scenario.Args) error {
				w.Printer().PrintLine(Help(args.String("noun")))
				return nil
			},
		),
		scenario.NewView(`
			#### Print

			* "Print message:<String>" - Prints a message
			  * E.g. "Print "Hello World""
		`,
			"Print",
			[]*scenario.Arg{scenario.NewArg("message", scenario.GetStringV)},
			func(_ context.Context, w *scenario.World, args scenario.Args) error {
				w.Printer().PrintLine(args.String("message"))
				return nil
			},
		),
		scenario.NewView(`
			#### Read

			* "Read ...value" - Prints a value
			  * E.g. "Read Unitroller Implementation"
		`,
			"Read",
			[]*scenario.Arg{scenario.NewArg("value", scenario.GetEventV, scenario.Variadic())},
			func(ctx context.Context, w *scenario.World, args scenario.Args) error {
				v, err := Resolve(ctx, w, args.Event("value"))
				if err != nil {
					return err
				}
				w.Printer().PrintValue(v)
				return nil
			},
		),
		scenario.NewCommand(`
			#### From

			* "From account:<Address> ...event" - Runs the event as account
			  * E.g. "From Geoff (Unitroller AcceptAdmin)"
		`,
			"From",
			[]*scenario.Arg{
				scenario.NewArg("account", scenario.GetAddressV),
				scenario.NewArg("event", scenario.GetEventV, scenario.Variadic()),
			},
			func(ctx context.Context, w *scenario.World, _ common.Address, args scenario.Args) (*scenario.World, error) {
				return ProcessEventFrom(ctx, w, args.Event("event"), args.Address("account"))
			},
		),
		scenario.NewCommand(`
			#### Send

			* "Send contract:<Contract> method:<String> ...args" - Sends a transaction calling any method of a registered contract
			  * E.g. "Send Comptroller _setMaxAssets 20"
		`,
			"Send",
			[]*scenario.Arg{
				scenario.NewArg("contract", GetContract),
				scenario.NewArg("method", scenario.GetStringV),
				scenario.NewArg("args", scenario.GetCoreValue, scenario.Variadic(), scenario.Mapped(), scenario.Default(scenario.ArrayV{})),
			},
			func(ctx context.Context, w *scenario.World, from common.Address, args scenario.Args) (*scenario.World, error) {
				return sendCall(ctx, w, from, args.Contract("contract"), args.String("method"), args.Array("args"))
			},
		),
		nounCommand(`
			#### World

			* "World ...event" - Runs a World event
			  * E.g. "World SetDryRun True"
		`, "World", ProcessWorldEvent),
		nounCommand(`
			#### Assert

			* "Assert ...event" - Runs an assertion
			  * E.g. "Assert Success"
		`, "Assert", ProcessAssertionEvent),
		nounCommand(`
			#### Unitroller

			* "Unitroller ...event" - Runs a Unitroller event
			  * E.g. "Unitroller Deploy"
		`, "Unitroller", ProcessUnitrollerEvent),
		nounCommand(`
			#### ComptrollerImpl

			* "ComptrollerImpl ...event" - Runs a ComptrollerImpl event
			  * E.g. "ComptrollerImpl Deploy MyScen Scenario"
		`, "ComptrollerImpl", ProcessComptrollerImplEvent),
		nounCommand(`
			#### CTokenDelegate

			* "CTokenDelegate ...event" - Runs a CTokenDelegate event
			  * E.g. "CTokenDelegate Deploy CErc20Delegate cDAIDelegate"
		`, "CTokenDelegate", ProcessCTokenDelegateEvent),
	}
}

// ProcessEvent runs one scenario statement as the World's default account.
func ProcessEvent(ctx context.Context, w *scenario.World, e scenario.Event) (*scenario.World, error) {
	return ProcessEventFrom(ctx, w, e, w.DefaultFrom())
}

// ProcessEventFrom runs one scenario statement as from.
func ProcessEventFrom(ctx context.Context, w *scenario.World, e scenario.Event, from common.Address) (*scenario.World, error) {
	ctxlog.FromContext(ctx).Debug("Processing event.", "event", e.String(), "from", from.Hex())
	return scenario.ProcessCommandEvent(ctx, "Core", Commands(), w, e, from)
}

func sendCall(ctx context.Context, w *scenario.World, from common.Address, c *scenario.Contract, method string, values scenario.ArrayV) (*scenario.World, error) {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	call, err := c.Invoke(method, args...)
	if err != nil {
		return w, err
	}
	inv, err := scenario.Invoke(ctx, w, call, from, reporterFor(c))
	if err != nil {
		return w, err
	}
	return scenario.AddAction(w, "Sent "+call.String(), inv), nil
}

// reporterFor picks the error reporter of a contract family.
func reporterFor(c *scenario.Contract) scenario.ErrorReporter {
	if strings.HasPrefix(c.Type(), "Ape") {
		return TokenErrorReporter
	}
	return ComptrollerErrorReporter
}

// Values returns the top-level value nouns, used to evaluate parenthesised
// expressions and Read statements.
func Values() []*scenario.Fetcher[scenario.Value] {
	noun := func(doc, name string, fetchers func() []*scenario.Fetcher[scenario.Value]) *scenario.Fetcher[scenario.Value] {
		return scenario.NewFetcher(doc, name,
			[]*scenario.Arg{scenario.NewArg("res", scenario.GetEventV, scenario.Variadic())},
			func(ctx context.Context, w *scenario.World, args scenario.Args) (scenario.Value, error) {
				return scenario.GetFetcherValue(ctx, name, fetchers(), w, args.Event("res"))
			},
		)
	}

	return []*scenario.Fetcher[scenario.Value]{
		scenario.NewFetcher(`
			#### Address

			* "Address address:<Address>" - An address, account or contract
			  * E.g. "Address Geoff"
		`,
			"Address",
			[]*scenario.Arg{scenario.NewArg("address", scenario.GetAddressV)},
			func(_ context.Context, _ *scenario.World, args scenario.Args) (scenario.Value, error) {
				return args.Get("address"), nil
			},
		),
		scenario.NewFetcher(`
			#### Exactly

			* "Exactly number:<Number>" - A number, unscaled
			  * E.g. "Exactly 0.1e18"
		`,
			"Exactly",
			[]*scenario.Arg{scenario.NewArg("number", scenario.GetNumberV)},
			func(_ context.Context, _ *scenario.World, args scenario.Args) (scenario.Value, error) {
				return args.Get("number"), nil
			},
		),
		scenario.NewFetcher(`
			#### Exp

			* "Exp number:<Number>" - A number scaled by 1e18
			  * E.g. "Exp 0.5"
		`,
			"Exp",
			[]*scenario.Arg{scenario.NewArg("number", scenario.GetExpNumberV)},
			func(_ context.Context, _ *scenario.World, args scenario.Args) (scenario.Value, error) {
				return args.Get("number"), nil
			},
		),
		scenario.NewFetcher(`
			#### Call

			* "Call contract:<Contract> method:<String> ...args" - Calls a constant method of a registered contract
			  * E.g. "Call Unitroller admin"
		`,
			"Call",
			[]*scenario.Arg{
				scenario.NewArg("contract", GetContract),
				scenario.NewArg("method", scenario.GetStringV),
				scenario.NewArg("args", scenario.GetCoreValue, scenario.Variadic(), scenario.Mapped(), scenario.Default(scenario.ArrayV{})),
			},
			func(ctx context.Context, w *scenario.World, args scenario.Args) (scenario.Value, error) {
				values := args.Array("args")
				callArgs := make([]any, len(values))
				for i, v := range values {
					callArgs[i] = v
				}
				return callValue(ctx, w, args.Contract("contract"), args.String("method"), callArgs...)
			},
		),
		noun(`
			#### Unitroller

			* "Unitroller ...res" - Reads a Unitroller value
			  * E.g. "Unitroller Implementation"
		`, "Unitroller", UnitrollerFetchers),
		noun(`
			#### ComptrollerImpl

			* "ComptrollerImpl ...res" - Reads a ComptrollerImpl value
			  * E.g. "ComptrollerImpl MyImpl Address"
		`, "ComptrollerImpl", ComptrollerImplFetchers),
		noun(`
			#### CTokenDelegate

			* "CTokenDelegate ...res" - Reads a CTokenDelegate value
			  * E.g. "CTokenDelegate cDAIDelegate Address"
		`, "CTokenDelegate", CTokenDelegateFetchers),
	}
}

// Resolve evaluates a value expression such as "Unitroller Implementation".
func Resolve(ctx context.Context, w *scenario.World, e scenario.Event) (scenario.Value, error) {
	return scenario.GetFetcherValue(ctx, "Value", Values(), w, e)
}

// nouns lists the documentation of every noun, keyed by noun.
func nouns() map[string]string {
	return map[string]string{
		"Core":            scenario.Help("Core", Commands()),
		"World":           scenario.Help("World", WorldCommands()),
		"Assert":          scenario.Help("Assert", AssertionCommands()),
		"Unitroller":      scenario.Help("Unitroller", UnitrollerCommands()) + scenario.Help("Unitroller Values", UnitrollerFetchers()),
		"ComptrollerImpl": scenario.Help("ComptrollerImpl", ComptrollerImplCommands()) + scenario.Help("ComptrollerImpl Values", ComptrollerImplFetchers()),
		"CTokenDelegate":  scenario.Help("CTokenDelegate", CTokenDelegateCommands()) + scenario.Help("CTokenDelegate Values", CTokenDelegateFetchers()),
		"Value":           scenario.Help("Value", Values()),
	}
}

// Help returns the documentation of a noun, or of every noun when noun is
// empty. An unknown noun lists the known ones.
func Help(noun string) string {
	docs := nouns()
	if noun != "" {
		if doc, ok := docs[noun]; ok {
			return doc
		}
	}
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	if noun != "" {
		return "Unknown noun " + noun + ", expected one of: " + strings.Join(names, ", ")
	}
	var b strings.Builder
	for _, name := range names {
		b.WriteString(docs[name])
		b.WriteString("\n")
	}
	return b.String()
}
