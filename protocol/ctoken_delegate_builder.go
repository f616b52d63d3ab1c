package protocol

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-scenario"
)

const delegateIndex = "ApeTokenDelegate"

// CTokenDelegateData describes a deployed ApeToken delegate.
type CTokenDelegateData struct {
	Name        string
	Contract    string
	Description string
}

// deployment is what a builder fetcher produces: the deploy result plus the
// metadata to store. The invokation never leaves the builder.
type deployment[D any] struct {
	invokation *scenario.Invokation[*scenario.Contract]
	data       D
}

type delegateVariant struct {
	doc         string
	name        string
	contract    string
	description string
}

var delegateVariants = []delegateVariant{
	{
		doc: `
			#### CErc20Delegate

			* "CErc20Delegate name:<String>"
			  * E.g. "CTokenDelegate Deploy CErc20Delegate cDAIDelegate"
		`,
		name:        "CErc20Delegate",
		contract:    "ApeErc20Delegate",
		description: "Standard CErc20 Delegate",
	},
	{
		doc: `
			#### CErc20DelegateScenario

			* "CErc20DelegateScenario name:<String>" - A CErc20Delegate Scenario for local testing
			  * E.g. "CTokenDelegate Deploy CErc20DelegateScenario cDAIDelegate"
		`,
		name:        "CErc20DelegateScenario",
		contract:    "ApeErc20DelegateScenario",
		description: "Scenario CErc20 Delegate",
	},
	{
		doc: `
			#### CCollateralCapErc20DelegateScenario

			* "CCollateralCapErc20DelegateScenario name:<String>"
			  * E.g. "CTokenDelegate Deploy CCollateralCapErc20DelegateScenario cLinkDelegate"
		`,
		name:        "CCollateralCapErc20DelegateScenario",
		contract:    "ApeCollateralCapErc20DelegateScenario",
		description: "Collateral Cap CErc20 Delegate",
	},
	{
		doc: `
			#### CWrappedNativeDelegateScenario

			* "CWrappedNativeDelegateScenario name:<String>"
			  * E.g. "CTokenDelegate Deploy CWrappedNativeDelegateScenario cLinkDelegate"
		`,
		name:        "CWrappedNativeDelegateScenario",
		contract:    "ApeWrappedNativeDelegateScenario",
		description: "Wrapped Native CErc20 Delegate",
	},
}

func cTokenDelegateFetchers(from common.Address) []*scenario.Fetcher[deployment[CTokenDelegateData]] {
	fetchers := make([]*scenario.Fetcher[deployment[CTokenDelegateData]], 0, len(delegateVariants))
	for _, v := range delegateVariants {
		fetchers = append(fetchers, scenario.NewFetcher(v.doc, v.name,
			[]*scenario.Arg{scenario.NewArg("name", scenario.GetNameV)},
			func(ctx context.Context, w *scenario.World, args scenario.Args) (deployment[CTokenDelegateData], error) {
				return deployment[CTokenDelegateData]{
					invokation: scenario.Deploy(ctx, w, from, v.contract),
					data: CTokenDelegateData{
						Name:        args.String("name"),
						Contract:    v.contract,
						Description: v.description,
					},
				}, nil
			},
		))
	}
	return fetchers
}

// BuildCTokenDelegate deploys the ApeToken delegate variant named by params
// and registers it under its name and "ApeTokenDelegate/<name>". A failed
// deployment returns its error and leaves w unchanged.
func BuildCTokenDelegate(ctx context.Context, w *scenario.World, from common.Address, params scenario.Event) (*scenario.World, *scenario.Contract, CTokenDelegateData, error) {
	d, err := scenario.GetFetcherValue(ctx, "DeployCToken", cTokenDelegateFetchers(from), w, params)
	if err != nil {
		return w, nil, CTokenDelegateData{}, err
	}
	if err := d.invokation.Err(); err != nil {
		return w, nil, CTokenDelegateData{}, err
	}

	delegate := d.invokation.Value
	w, err = scenario.StoreAndSaveContract(ctx, w, delegate, d.data.Name, d.invokation, []scenario.Index{{
		Path: []string{delegateIndex, d.data.Name},
		Data: scenario.ContractData{
			Address:     delegate.Address(),
			Contract:    d.data.Contract,
			Description: d.data.Description,
		},
	}})
	if err != nil {
		return w, nil, CTokenDelegateData{}, err
	}
	delegate, _ = w.Contract(d.data.Name)
	return w, delegate, d.data, nil
}
