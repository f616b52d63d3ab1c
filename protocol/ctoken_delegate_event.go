package protocol

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-scenario"
)

func genCTokenDelegate(ctx context.Context, w *scenario.World, from common.Address, params scenario.Event) (*scenario.World, error) {
	w, delegate, data, err := BuildCTokenDelegate(ctx, w, from, params)
	if err != nil {
		return w, err
	}
	return scenario.AddAction(w,
		fmt.Sprintf("Added CToken Delegate (%s) at address %s", data.Description, delegate.Address().Hex()),
		w.LastInvokation(),
	), nil
}

// CTokenDelegateCommands returns the commands of the "CTokenDelegate" noun.
func CTokenDelegateCommands() []*scenario.Command {
	return []*scenario.Command{
		scenario.NewCommand(`
			#### Deploy

			* "CTokenDelegate Deploy ...cTokenDelegateParams" - Generates a new CTokenDelegate
			  * E.g. "CTokenDelegate Deploy CErc20Delegate cDAIDelegate"
		`,
			"Deploy",
			[]*scenario.Arg{scenario.NewArg("cTokenDelegateParams", scenario.GetEventV, scenario.Variadic())},
			func(ctx context.Context, w *scenario.World, from common.Address, args scenario.Args) (*scenario.World, error) {
				return genCTokenDelegate(ctx, w, from, args.Event("cTokenDelegateParams"))
			},
		),
		scenario.NewView(`
			#### Verify

			* "CTokenDelegate cTokenDelegateArg:<CTokenDelegate> Verify apiKey:<String>" - Verifies CTokenDelegate in Etherscan
			  * E.g. "CTokenDelegate cDaiDelegate Verify myApiKey"
		`,
			"Verify",
			[]*scenario.Arg{
				scenario.NewArg("cTokenDelegateArg", scenario.GetStringV),
				scenario.NewArg("apiKey", scenario.GetStringV),
			},
			func(ctx context.Context, w *scenario.World, args scenario.Args) error {
				name := args.String("cTokenDelegateArg")
				delegate, data, err := GetCTokenDelegateData(w, name)
				if err != nil {
					return err
				}
				return verifyContract(ctx, w, delegate, name, data.Contract, args.String("apiKey"))
			},
			scenario.WithNamePos(1),
		),
	}
}

// ProcessCTokenDelegateEvent runs a "CTokenDelegate" statement.
func ProcessCTokenDelegateEvent(ctx context.Context, w *scenario.World, e scenario.Event, from common.Address) (*scenario.World, error) {
	return scenario.ProcessCommandEvent(ctx, "CTokenDelegate", CTokenDelegateCommands(), w, e, from)
}

// CTokenDelegateFetchers returns the values of the "CTokenDelegate" noun.
func CTokenDelegateFetchers() []*scenario.Fetcher[scenario.Value] {
	return []*scenario.Fetcher[scenario.Value]{
		scenario.NewFetcher(`
			#### Address

			* "CTokenDelegate cTokenDelegate:<CTokenDelegate> Address" - Returns address of the delegate
			  * E.g. "CTokenDelegate cDaiDelegate Address"
		`,
			"Address",
			[]*scenario.Arg{scenario.NewArg("cTokenDelegate", GetCTokenDelegate)},
			func(_ context.Context, _ *scenario.World, args scenario.Args) (scenario.Value, error) {
				return scenario.AddressV(args.Address("cTokenDelegate")), nil
			},
			scenario.WithNamePos(1),
		),
	}
}
