package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Networks file layout, one file per network:
//
//	{
//	  "Contracts": {"Unitroller": {"address": "0x...", "contract": "Unitroller"}},
//	  "Comptroller": {"MyImpl": {"address": "0x...", "contract": "ComptrollerScenario"}}
//	}
//
// Index paths "A/B" become nested objects. A bare address string is accepted
// in place of an entry object when loading.

func networksFile(dir, network string) string {
	return filepath.Join(dir, network+".json")
}

// SaveNetworks writes the registry data index of a network to dir.
func SaveNetworks(dir, network string, data map[string]ContractData) error {
	root := make(map[string]any)
	paths := make([]string, 0, len(data))
	for p := range data {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		parts := strings.Split(p, "/")
		node := root
		for i, part := range parts[:len(parts)-1] {
			existing, found := node[part]
			child, ok := existing.(map[string]any)
			if found && !ok {
				return fmt.Errorf("networks entry %s conflicts with %s", p, IndexPath(parts[:i+1]...))
			}
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		leaf := parts[len(parts)-1]
		if _, ok := node[leaf].(map[string]any); ok {
			return fmt.Errorf("networks entry %s conflicts with a nested entry", p)
		}
		node[leaf] = data[p]
	}

	encoded, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode networks file")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create networks dir")
	}
	if err := os.WriteFile(networksFile(dir, network), encoded, 0o644); err != nil {
		return errors.Wrap(err, "write networks file")
	}
	return nil
}

// LoadNetworks reads the data index of a network saved by SaveNetworks.
func LoadNetworks(dir, network string) (map[string]ContractData, error) {
	raw, err := os.ReadFile(networksFile(dir, network))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read networks file")
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, errors.Wrap(err, "parse networks file")
	}
	out := make(map[string]ContractData)
	for key, msg := range root {
		if err := flattenNetworks(out, []string{key}, msg); err != nil {
			return nil, errors.Wrapf(err, "networks entry %s", key)
		}
	}
	return out, nil
}

func flattenNetworks(out map[string]ContractData, path []string, msg json.RawMessage) error {
	var addr string
	if err := json.Unmarshal(msg, &addr); err == nil {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("invalid address %q", addr)
		}
		out[IndexPath(path...)] = ContractData{Address: common.HexToAddress(addr)}
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(msg, &obj); err != nil {
		return err
	}
	if _, ok := obj["address"]; ok {
		var d ContractData
		if err := json.Unmarshal(msg, &d); err != nil {
			return err
		}
		out[IndexPath(path...)] = d
		return nil
	}
	for key, child := range obj {
		if err := flattenNetworks(out, append(path[:len(path):len(path)], key), child); err != nil {
			return err
		}
	}
	return nil
}

// RestoreContracts registers the contracts of a loaded networks file in w.
// An entry without a contract type borrows the type of another entry with
// the same address. Types without a known artifact get an empty ABI.
func RestoreContracts(w *World, data map[string]ContractData) *World {
	reg := w.registry.clone()
	for p, d := range data {
		reg.data[p] = d
	}

	types := make(map[common.Address]string)
	for _, d := range data {
		if d.Contract != "" {
			types[d.Address] = d.Contract
		}
	}
	for p, d := range data {
		name, ok := strings.CutPrefix(p, "Contracts/")
		if !ok {
			continue
		}
		typeName := d.Contract
		if typeName == "" {
			typeName = types[d.Address]
		}
		reg.data[p] = ContractData{Address: d.Address, Contract: typeName}
		reg.put(name, NewContract(name, typeName, d.Address, abiOf(w.artifacts, typeName)))
	}

	clone := w.clone()
	clone.registry = reg
	return clone
}

func abiOf(a *Artifacts, typeName string) abi.ABI {
	if art, err := a.Get(typeName); err == nil {
		return art.ABI
	}
	return abi.ABI{}
}
