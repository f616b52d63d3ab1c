package protocol

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-scenario"
)

func genUnitroller(ctx context.Context, w *scenario.World, from common.Address, params scenario.Event) (*scenario.World, error) {
	w, unitroller, data, err := BuildUnitroller(ctx, w, from, params)
	if err != nil {
		return w, err
	}
	return scenario.AddAction(w,
		fmt.Sprintf("Added %s at address %s", data.Description, unitroller.Address().Hex()),
		w.LastInvokation(),
	), nil
}

// invokeUnitroller sends a Unitroller admin call and logs it as an action.
func invokeUnitroller(ctx context.Context, w *scenario.World, from common.Address, unitroller *scenario.Contract, description, method string, args ...any) (*scenario.World, error) {
	call, err := unitroller.Invoke(method, args...)
	if err != nil {
		return w, err
	}
	inv, err := scenario.Invoke(ctx, w, call, from, ComptrollerErrorReporter)
	if err != nil {
		return w, err
	}
	return scenario.AddAction(w, description, inv), nil
}

// UnitrollerCommands returns the commands of the "Unitroller" noun.
func UnitrollerCommands() []*scenario.Command {
	return []*scenario.Command{
		scenario.NewCommand(`
			#### Deploy

			* "Unitroller Deploy ...unitrollerParams" - Generates a new Unitroller
			  * E.g. "Unitroller Deploy"
		`,
			"Deploy",
			[]*scenario.Arg{scenario.NewArg("unitrollerParams", scenario.GetEventV, scenario.Variadic(), scenario.Default(scenario.EventV{}))},
			func(ctx context.Context, w *scenario.World, from common.Address, args scenario.Args) (*scenario.World, error) {
				return genUnitroller(ctx, w, from, args.Event("unitrollerParams"))
			},
		),
		scenario.NewCommand(`
			#### SetPendingImpl

			* "Unitroller SetPendingImpl comptrollerImpl:<Impl>" - Sets the pending comptroller implementation of the unitroller
			  * E.g. "Unitroller SetPendingImpl MyScen"
		`,
			"SetPendingImpl",
			[]*scenario.Arg{
				scenario.NewArg("unitroller", GetUnitroller, scenario.Implicit()),
				scenario.NewArg("comptrollerImpl", GetComptrollerImpl),
			},
			func(ctx context.Context, w *scenario.World, from common.Address, args scenario.Args) (*scenario.World, error) {
				impl := args.Contract("comptrollerImpl")
				return invokeUnitroller(ctx, w, from, args.Contract("unitroller"),
					fmt.Sprintf("Set pending comptroller impl to %s", impl.Name()),
					"_setPendingImplementation", impl.Address())
			},
		),
		scenario.NewCommand(`
			#### SetPendingAdmin

			* "Unitroller SetPendingAdmin newPendingAdmin:<Address>" - Sets the pending admin of the unitroller
			  * E.g. "Unitroller SetPendingAdmin Geoff"
		`,
			"SetPendingAdmin",
			[]*scenario.Arg{
				scenario.NewArg("unitroller", GetUnitroller, scenario.Implicit()),
				scenario.NewArg("newPendingAdmin", scenario.GetAddressV),
			},
			func(ctx context.Context, w *scenario.World, from common.Address, args scenario.Args) (*scenario.World, error) {
				admin := args.Address("newPendingAdmin")
				return invokeUnitroller(ctx, w, from, args.Contract("unitroller"),
					fmt.Sprintf("Set pending admin to %s", admin.Hex()),
					"_setPendingAdmin", admin)
			},
		),
		scenario.NewCommand(`
			#### AcceptAdmin

			* "Unitroller AcceptAdmin" - Accepts admin of the unitroller for the sender
			  * E.g. "From Geoff (Unitroller AcceptAdmin)"
		`,
			"AcceptAdmin",
			[]*scenario.Arg{scenario.NewArg("unitroller", GetUnitroller, scenario.Implicit())},
			func(ctx context.Context, w *scenario.World, from common.Address, args scenario.Args) (*scenario.World, error) {
				return invokeUnitroller(ctx, w, from, args.Contract("unitroller"),
					fmt.Sprintf("Accept admin as %s", from.Hex()),
					"_acceptAdmin")
			},
		),
	}
}

// ProcessUnitrollerEvent runs a "Unitroller" statement.
func ProcessUnitrollerEvent(ctx context.Context, w *scenario.World, e scenario.Event, from common.Address) (*scenario.World, error) {
	return scenario.ProcessCommandEvent(ctx, "Unitroller", UnitrollerCommands(), w, e, from)
}

// callValue calls a constant method and returns its first output.
func callValue(ctx context.Context, w *scenario.World, c *scenario.Contract, method string, args ...any) (scenario.Value, error) {
	call, err := c.Invoke(method, args...)
	if err != nil {
		return nil, err
	}
	inv, err := scenario.Invoke(ctx, w, call, w.DefaultFrom(), ComptrollerErrorReporter)
	if err != nil {
		return nil, err
	}
	if err := inv.Err(); err != nil {
		return nil, err
	}
	if len(inv.Value) == 0 {
		return scenario.NothingV{}, nil
	}
	return scenario.ValueOf(inv.Value[0]), nil
}

func unitrollerCallFetcher(doc, name, method string) *scenario.Fetcher[scenario.Value] {
	return scenario.NewFetcher(doc, name,
		[]*scenario.Arg{scenario.NewArg("unitroller", GetUnitroller, scenario.Implicit())},
		func(ctx context.Context, w *scenario.World, args scenario.Args) (scenario.Value, error) {
			return callValue(ctx, w, args.Contract("unitroller"), method)
		},
	)
}

// UnitrollerFetchers returns the values of the "Unitroller" noun.
func UnitrollerFetchers() []*scenario.Fetcher[scenario.Value] {
	return []*scenario.Fetcher[scenario.Value]{
		scenario.NewFetcher(`
			#### Address

			* "Unitroller Address" - Returns address of the unitroller
			  * E.g. "Unitroller Address"
		`,
			"Address",
			[]*scenario.Arg{scenario.NewArg("unitroller", GetUnitroller, scenario.Implicit())},
			func(_ context.Context, _ *scenario.World, args scenario.Args) (scenario.Value, error) {
				return scenario.AddressV(args.Address("unitroller")), nil
			},
		),
		unitrollerCallFetcher(`
			#### Implementation

			* "Unitroller Implementation" - Returns the comptroller implementation of the unitroller
			  * E.g. "Unitroller Implementation"
		`, "Implementation", "comptrollerImplementation"),
		unitrollerCallFetcher(`
			#### PendingImplementation

			* "Unitroller PendingImplementation" - Returns the pending comptroller implementation of the unitroller
			  * E.g. "Unitroller PendingImplementation"
		`, "PendingImplementation", "pendingComptrollerImplementation"),
		unitrollerCallFetcher(`
			#### Admin

			* "Unitroller Admin" - Returns the admin of the unitroller
			  * E.g. "Unitroller Admin"
		`, "Admin", "admin"),
		unitrollerCallFetcher(`
			#### PendingAdmin

			* "Unitroller PendingAdmin" - Returns the pending admin of the unitroller
			  * E.g. "Unitroller PendingAdmin"
		`, "PendingAdmin", "pendingAdmin"),
	}
}
