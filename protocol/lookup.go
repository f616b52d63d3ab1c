package protocol

import (
	"context"
	"fmt"

	"github.com/branched-services/go-scenario"
)

// GetContract reads a registered contract name.
func GetContract(ctx context.Context, w *scenario.World, e scenario.Event) (scenario.Value, error) {
	name, err := scenario.GetStringV(ctx, w, e)
	if err != nil {
		return nil, err
	}
	c, err := w.Contract(string(name.(scenario.StringV)))
	if err != nil {
		return nil, err
	}
	return scenario.ContractV{Contract: c}, nil
}

// GetUnitroller returns the registered Unitroller. It reads no tokens and is
// used by implicit args.
func GetUnitroller(_ context.Context, w *scenario.World, _ scenario.Event) (scenario.Value, error) {
	c, err := w.Contract("Unitroller")
	if err != nil {
		return nil, err
	}
	return scenario.ContractV{Contract: c}, nil
}

// indexedContract looks a contract up by name through an index family, so
// "MyImpl" only resolves for ComptrollerImpl statements when it was deployed
// as a Comptroller implementation.
func indexedContract(w *scenario.World, family, name string) (*scenario.Contract, scenario.ContractData, error) {
	data, err := w.ContractData(family, name)
	if err != nil {
		return nil, scenario.ContractData{}, err
	}
	c, err := w.Contract(name)
	if err != nil {
		return nil, scenario.ContractData{}, err
	}
	if c.Address() != data.Address {
		return nil, scenario.ContractData{}, fmt.Errorf("%w: %s/%s moved from %s to %s",
			scenario.ErrContractNotFound, family, name, data.Address.Hex(), c.Address().Hex())
	}
	return c, data, nil
}

func getIndexed(family string) scenario.FetchFunc {
	return func(ctx context.Context, w *scenario.World, e scenario.Event) (scenario.Value, error) {
		name, err := scenario.GetStringV(ctx, w, e)
		if err != nil {
			return nil, err
		}
		c, _, err := indexedContract(w, family, string(name.(scenario.StringV)))
		if err != nil {
			return nil, err
		}
		return scenario.ContractV{Contract: c}, nil
	}
}

// GetComptrollerImpl reads the name of a deployed Comptroller implementation.
func GetComptrollerImpl(ctx context.Context, w *scenario.World, e scenario.Event) (scenario.Value, error) {
	return getIndexed(comptrollerIndex)(ctx, w, e)
}

// GetComptrollerImplData returns a Comptroller implementation with its
// stored metadata.
func GetComptrollerImplData(w *scenario.World, name string) (*scenario.Contract, scenario.ContractData, error) {
	return indexedContract(w, comptrollerIndex, name)
}

// GetCTokenDelegate reads the name of a deployed ApeToken delegate.
func GetCTokenDelegate(ctx context.Context, w *scenario.World, e scenario.Event) (scenario.Value, error) {
	return getIndexed(delegateIndex)(ctx, w, e)
}

// GetCTokenDelegateData returns an ApeToken delegate with its stored metadata.
func GetCTokenDelegateData(w *scenario.World, name string) (*scenario.Contract, scenario.ContractData, error) {
	return indexedContract(w, delegateIndex, name)
}
