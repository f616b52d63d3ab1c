package protocol

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-scenario"
)

const comptrollerIndex = "Comptroller"

// ComptrollerImplData describes a deployed Comptroller implementation.
type ComptrollerImplData struct {
	Name        string
	Contract    string
	Description string
}

func comptrollerImplFetchers(from common.Address) []*scenario.Fetcher[deployment[ComptrollerImplData]] {
	deploy := func(contract, description string) scenario.FetchHandler[deployment[ComptrollerImplData]] {
		return func(ctx context.Context, w *scenario.World, args scenario.Args) (deployment[ComptrollerImplData], error) {
			return deployment[ComptrollerImplData]{
				invokation: scenario.Deploy(ctx, w, from, contract),
				data: ComptrollerImplData{
					Name:        args.String("name"),
					Contract:    contract,
					Description: description,
				},
			}, nil
		}
	}
	nameArg := func() []*scenario.Arg {
		return []*scenario.Arg{scenario.NewArg("name", scenario.GetNameV)}
	}

	return []*scenario.Fetcher[deployment[ComptrollerImplData]]{
		scenario.NewFetcher(`
			#### Scenario

			* "name:<String> Scenario" - The Comptroller Scenario for local testing
			  * E.g. "ComptrollerImpl Deploy MyScen Scenario"
		`,
			"Scenario",
			nameArg(),
			deploy("ComptrollerScenario", "Scenario Comptroller Impl"),
			scenario.WithNamePos(1),
		),
		scenario.NewFetcher(`
			#### Standard

			* "name:<String> Standard" - The standard Comptroller contract
			  * E.g. "ComptrollerImpl Deploy MyStandard Standard"
		`,
			"Standard",
			nameArg(),
			deploy("Comptroller", "Standard Comptroller Impl"),
			scenario.WithNamePos(1),
		),
		scenario.NewFetcher(`
			#### Borked

			* "name:<String> Borked" - A Borked Comptroller for testing
			  * E.g. "ComptrollerImpl Deploy MyBork Borked"
		`,
			"Borked",
			nameArg(),
			deploy("ComptrollerBorked", "Borked Comptroller Impl"),
			scenario.WithNamePos(1),
		),
		scenario.NewFetcher(`
			#### Default

			* "name:<String> Default" - The Scenario Comptroller on local networks, the standard one elsewhere
			  * E.g. "ComptrollerImpl Deploy MyDefault Default"
		`,
			"Default",
			nameArg(),
			func(ctx context.Context, w *scenario.World, args scenario.Args) (deployment[ComptrollerImplData], error) {
				if w.IsLocalNetwork() {
					return deploy("ComptrollerScenario", "Scenario Comptroller Impl")(ctx, w, args)
				}
				return deploy("Comptroller", "Standard Comptroller Impl")(ctx, w, args)
			},
			scenario.WithNamePos(1),
		),
	}
}

// BuildComptrollerImpl deploys the Comptroller implementation variant named
// by params and registers it under its name and "Comptroller/<name>". A
// failed deployment returns its error and leaves w unchanged.
func BuildComptrollerImpl(ctx context.Context, w *scenario.World, from common.Address, params scenario.Event) (*scenario.World, *scenario.Contract, ComptrollerImplData, error) {
	d, err := scenario.GetFetcherValue(ctx, "DeployComptrollerImpl", comptrollerImplFetchers(from), w, params)
	if err != nil {
		return w, nil, ComptrollerImplData{}, err
	}
	if err := d.invokation.Err(); err != nil {
		return w, nil, ComptrollerImplData{}, err
	}

	impl := d.invokation.Value
	w, err = scenario.StoreAndSaveContract(ctx, w, impl, d.data.Name, d.invokation, []scenario.Index{{
		Path: []string{comptrollerIndex, d.data.Name},
		Data: scenario.ContractData{
			Address:     impl.Address(),
			Contract:    d.data.Contract,
			Description: d.data.Description,
		},
	}})
	if err != nil {
		return w, nil, ComptrollerImplData{}, err
	}
	impl, _ = w.Contract(d.data.Name)
	return w, impl, d.data, nil
}
