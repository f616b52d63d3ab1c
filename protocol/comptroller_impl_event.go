package protocol

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-scenario"
)

func genComptrollerImpl(ctx context.Context, w *scenario.World, from common.Address, params scenario.Event) (*scenario.World, error) {
	w, impl, data, err := BuildComptrollerImpl(ctx, w, from, params)
	if err != nil {
		return w, err
	}
	return scenario.AddAction(w,
		fmt.Sprintf("Added Comptroller Implementation (%s) at address %s", data.Description, impl.Address().Hex()),
		w.LastInvokation(),
	), nil
}

// mergeComptrollerABI registers the Unitroller with the implementation's
// interface as "Comptroller". Dry runs skip it since the implementation may
// never have been deployed.
func mergeComptrollerABI(ctx context.Context, w *scenario.World, impl, unitroller *scenario.Contract) (*scenario.World, error) {
	if w.IsDryRun() {
		return w, nil
	}
	w, _, err := scenario.MergeContractABI(ctx, w, "Comptroller", unitroller.Name(), unitroller.Name(), impl.Name())
	return w, err
}

func become(ctx context.Context, w *scenario.World, from common.Address, impl, unitroller *scenario.Contract) (*scenario.World, error) {
	call, err := impl.Invoke("_become", unitroller.Address())
	if err != nil {
		return w, err
	}
	inv, err := scenario.Invoke(ctx, w, call, from, ComptrollerErrorReporter)
	if err != nil {
		return w, err
	}

	// Merged even when _become emitted a Failure.
	if w, err = mergeComptrollerABI(ctx, w, impl, unitroller); err != nil {
		return w, err
	}
	return scenario.AddAction(w, fmt.Sprintf("Become %s's Comptroller Impl", unitroller.Address().Hex()), inv), nil
}

func verifyContract(ctx context.Context, w *scenario.World, c *scenario.Contract, name, contract, apiKey string) error {
	return scenario.Verify(ctx, w, apiKey, name, contract, c.Address())
}

// ComptrollerImplCommands returns the commands of the "ComptrollerImpl" noun.
func ComptrollerImplCommands() []*scenario.Command {
	return []*scenario.Command{
		scenario.NewCommand(`
			#### Deploy

			* "ComptrollerImpl Deploy ...comptrollerImplParams" - Generates a new Comptroller Implementation
			  * E.g. "ComptrollerImpl Deploy MyScen Scenario"
		`,
			"Deploy",
			[]*scenario.Arg{scenario.NewArg("comptrollerImplParams", scenario.GetEventV, scenario.Variadic())},
			func(ctx context.Context, w *scenario.World, from common.Address, args scenario.Args) (*scenario.World, error) {
				return genComptrollerImpl(ctx, w, from, args.Event("comptrollerImplParams"))
			},
		),
		scenario.NewView(`
			#### Verify

			* "ComptrollerImpl comptrollerImplArg:<Impl> Verify apiKey:<String>" - Verifies Comptroller Implementation in Etherscan
			  * E.g. "ComptrollerImpl MyImpl Verify myApiKey"
		`,
			"Verify",
			[]*scenario.Arg{
				scenario.NewArg("comptrollerImplArg", scenario.GetStringV),
				scenario.NewArg("apiKey", scenario.GetStringV),
			},
			func(ctx context.Context, w *scenario.World, args scenario.Args) error {
				name := args.String("comptrollerImplArg")
				impl, data, err := GetComptrollerImplData(w, name)
				if err != nil {
					return err
				}
				return verifyContract(ctx, w, impl, name, data.Contract, args.String("apiKey"))
			},
			scenario.WithNamePos(1),
		),
		scenario.NewCommand(`
			#### Become

			* "ComptrollerImpl comptrollerImpl:<Impl> Become" - Become the comptroller behind the unitroller, if possible.
			  * E.g. "ComptrollerImpl MyImpl Become"
		`,
			"Become",
			[]*scenario.Arg{
				scenario.NewArg("unitroller", GetUnitroller, scenario.Implicit()),
				scenario.NewArg("comptrollerImpl", GetComptrollerImpl),
			},
			func(ctx context.Context, w *scenario.World, from common.Address, args scenario.Args) (*scenario.World, error) {
				return become(ctx, w, from, args.Contract("comptrollerImpl"), args.Contract("unitroller"))
			},
			scenario.WithNamePos(1),
		),
		scenario.NewCommand(`
			#### MergeABI

			* "ComptrollerImpl comptrollerImpl:<Impl> MergeABI" - Merges the ABI into the unitroller, as if it was a become.
			  * E.g. "ComptrollerImpl MyImpl MergeABI"
		`,
			"MergeABI",
			[]*scenario.Arg{
				scenario.NewArg("unitroller", GetUnitroller, scenario.Implicit()),
				scenario.NewArg("comptrollerImpl", GetComptrollerImpl),
			},
			func(ctx context.Context, w *scenario.World, _ common.Address, args scenario.Args) (*scenario.World, error) {
				return mergeComptrollerABI(ctx, w, args.Contract("comptrollerImpl"), args.Contract("unitroller"))
			},
			scenario.WithNamePos(1),
		),
	}
}

// ProcessComptrollerImplEvent runs a "ComptrollerImpl" statement.
func ProcessComptrollerImplEvent(ctx context.Context, w *scenario.World, e scenario.Event, from common.Address) (*scenario.World, error) {
	return scenario.ProcessCommandEvent(ctx, "ComptrollerImpl", ComptrollerImplCommands(), w, e, from)
}

// ComptrollerImplFetchers returns the values of the "ComptrollerImpl" noun.
func ComptrollerImplFetchers() []*scenario.Fetcher[scenario.Value] {
	return []*scenario.Fetcher[scenario.Value]{
		scenario.NewFetcher(`
			#### Address

			* "ComptrollerImpl comptrollerImpl:<Impl> Address" - Returns address of the implementation
			  * E.g. "ComptrollerImpl MyImpl Address"
		`,
			"Address",
			[]*scenario.Arg{scenario.NewArg("comptrollerImpl", GetComptrollerImpl)},
			func(_ context.Context, _ *scenario.World, args scenario.Args) (scenario.Value, error) {
				return scenario.AddressV(args.Address("comptrollerImpl")), nil
			},
			scenario.WithNamePos(1),
		),
	}
}
