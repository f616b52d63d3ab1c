package protocol

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-scenario"
)

// UnitrollerData describes a deployed Unitroller.
type UnitrollerData struct {
	Contract    string
	Description string
}

func unitrollerFetchers(from common.Address) []*scenario.Fetcher[deployment[UnitrollerData]] {
	deploy := func(ctx context.Context, w *scenario.World, _ scenario.Args) (deployment[UnitrollerData], error) {
		return deployment[UnitrollerData]{
			invokation: scenario.Deploy(ctx, w, from, "Unitroller"),
			data:       UnitrollerData{Contract: "Unitroller", Description: "Unitroller"},
		}, nil
	}
	return []*scenario.Fetcher[deployment[UnitrollerData]]{
		scenario.NewFetcher(`
			#### Unitroller

			* "Unitroller" - The upgradable Comptroller proxy
			  * E.g. "Unitroller Deploy Unitroller"
		`,
			"Unitroller",
			nil,
			deploy,
		),
		scenario.NewFetcher(`
			#### Default

			* "Default" - The upgradable Comptroller proxy, also used when no variant is given
			  * E.g. "Unitroller Deploy"
		`,
			"Default",
			nil,
			deploy,
		),
	}
}

// BuildUnitroller deploys a Unitroller and registers it as "Unitroller".
// A failed deployment returns its error and leaves w unchanged.
func BuildUnitroller(ctx context.Context, w *scenario.World, from common.Address, params scenario.Event) (*scenario.World, *scenario.Contract, UnitrollerData, error) {
	if len(params) == 0 {
		params = scenario.NewEvent("Default")
	}
	d, err := scenario.GetFetcherValue(ctx, "DeployUnitroller", unitrollerFetchers(from), w, params)
	if err != nil {
		return w, nil, UnitrollerData{}, err
	}
	if err := d.invokation.Err(); err != nil {
		return w, nil, UnitrollerData{}, err
	}

	w, err = scenario.StoreAndSaveContract(ctx, w, d.invokation.Value, "Unitroller", d.invokation, nil)
	if err != nil {
		return w, nil, UnitrollerData{}, err
	}
	unitroller, _ := w.Contract("Unitroller")
	return w, unitroller, d.data, nil
}
