package protocol

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-scenario"
)

// WorldCommands returns the commands of the "World" noun.
func WorldCommands() []*scenario.Command {
	return []*scenario.Command{
		scenario.NewCommand(`
			#### SetDryRun

			* "World SetDryRun dryRun:<Bool>" - Skips merges and saving of contracts when set
			  * E.g. "World SetDryRun True"
		`,
			"SetDryRun",
			[]*scenario.Arg{scenario.NewArg("dryRun", scenario.GetBoolV)},
			func(_ context.Context, w *scenario.World, _ common.Address, args scenario.Args) (*scenario.World, error) {
				return w.SetDryRun(args.Bool("dryRun")), nil
			},
		),
		scenario.NewCommand(`
			#### AllowFailures

			* "World AllowFailures allow:<Bool>" - Keeps failed invokations for assertions instead of stopping
			  * E.g. "World AllowFailures"
		`,
			"AllowFailures",
			[]*scenario.Arg{scenario.NewArg("allow", scenario.GetBoolV, scenario.Default(scenario.BoolV(true)))},
			func(_ context.Context, w *scenario.World, _ common.Address, args scenario.Args) (*scenario.World, error) {
				return w.SetAllowFailures(args.Bool("allow")), nil
			},
		),
		scenario.NewView(`
			#### Contracts

			* "World Contracts" - Prints every registered contract
			  * E.g. "World Contracts"
		`,
			"Contracts",
			nil,
			func(_ context.Context, w *scenario.World, _ scenario.Args) error {
				w.Printer().PrintContracts(scenario.ContractRows(w))
				return nil
			},
		),
		scenario.NewView(`
			#### Actions

			* "World Actions" - Prints the action log
			  * E.g. "World Actions"
		`,
			"Actions",
			nil,
			func(_ context.Context, w *scenario.World, _ scenario.Args) error {
				for _, a := range w.Actions() {
					w.Printer().PrintLine(a.Description)
				}
				return nil
			},
		),
	}
}

// ProcessWorldEvent runs a "World" statement.
func ProcessWorldEvent(ctx context.Context, w *scenario.World, e scenario.Event, from common.Address) (*scenario.World, error) {
	return scenario.ProcessCommandEvent(ctx, "World", WorldCommands(), w, e, from)
}
