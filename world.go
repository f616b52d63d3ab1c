package scenario

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-scenario/internal/ctxlog"
)

// localNetworks are networks where external services such as source
// verification are never contacted.
var localNetworks = map[string]bool{
	"development": true,
	"test":        true,
	"coverage":    true,
	"local":       true,
	"simulated":   true,
}

var errNoResolver = errors.New("world has no value resolver")

// ValueResolver evaluates a parenthesised expression such as
// "(Comptroller Address)" to a Value.
type ValueResolver func(ctx context.Context, w *World, e Event) (Value, error)

// Action is one entry of the World's action log.
type Action struct {
	Description string
	Invokation  Invoked
}

// World is the state threaded through a scenario run.
//
// World is immutable: every operation returns a new World and never changes
// its receiver, so a caller must always continue with the returned value.
// Collections are copied on write and shared otherwise.
type World struct {
	network        string
	dryRun         bool
	allowFailures  bool
	registry       *registry
	actions        []Action
	lastInvokation Invoked
	printer        Printer
	backend        Backend
	artifacts      *Artifacts
	verifier       Verifier
	accounts       map[string]common.Address
	defaultFrom    common.Address
	networksDir    string
	resolver       ValueResolver
}

// NewWorld creates the initial World for a network.
func NewWorld(network string, opts ...WorldOption) *World {
	w := &World{
		network:   network,
		registry:  newRegistry(),
		printer:   NopPrinter{},
		artifacts: NewArtifacts(nil),
		accounts:  make(map[string]common.Address),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// clone creates a shallow copy of the World. Callers replace, never mutate,
// the collections of the copy.
func (w *World) clone() *World {
	clone := *w
	return &clone
}

// Network returns the network name.
func (w *World) Network() string { return w.network }

// IsDryRun returns true if chain-changing operations that tend to fail
// outside a live network are skipped.
func (w *World) IsDryRun() bool { return w.dryRun }

// AllowsFailures returns true if failed invokations are recorded instead of
// aborting the statement.
func (w *World) AllowsFailures() bool { return w.allowFailures }

// IsLocalNetwork returns true for development networks and dry runs.
func (w *World) IsLocalNetwork() bool {
	return w.dryRun || localNetworks[w.network]
}

// Printer returns the output sink.
func (w *World) Printer() Printer { return w.printer }

// Backend returns the chain backend, or nil.
func (w *World) Backend() Backend { return w.backend }

// Artifacts returns the compiled contract artifacts.
func (w *World) Artifacts() *Artifacts { return w.artifacts }

// Verifier returns the source verifier, or nil.
func (w *World) Verifier() Verifier { return w.verifier }

// DefaultFrom returns the account used when a statement names none.
func (w *World) DefaultFrom() common.Address { return w.defaultFrom }

// Actions returns a copy of the action log.
func (w *World) Actions() []Action {
	return slices.Clone(w.actions)
}

// LastInvokation returns the invokation of the most recent action, or nil.
func (w *World) LastInvokation() Invoked { return w.lastInvokation }

// Account returns the address of an account alias.
func (w *World) Account(alias string) (common.Address, bool) {
	addr, ok := w.accounts[alias]
	return addr, ok
}

// AccountNames returns the account aliases, sorted.
func (w *World) AccountNames() []string {
	return slices.Sorted(maps.Keys(w.accounts))
}

// SetDryRun returns a World with the dry-run flag set.
func (w *World) SetDryRun(dryRun bool) *World {
	clone := w.clone()
	clone.dryRun = dryRun
	return clone
}

// SetAllowFailures returns a World that records failed invokations instead
// of aborting on them.
func (w *World) SetAllowFailures(allow bool) *World {
	clone := w.clone()
	clone.allowFailures = allow
	return clone
}

// SetLastInvokation returns a World whose last invokation is inv, without
// adding an action.
func (w *World) SetLastInvokation(inv Invoked) *World {
	clone := w.clone()
	clone.lastInvokation = inv
	return clone
}

// Contract returns the contract registered under name.
func (w *World) Contract(name string) (*Contract, error) {
	c, ok := w.registry.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrContractNotFound, name)
	}
	return c, nil
}

// ContractAt returns a registered contract with the given address.
func (w *World) ContractAt(addr common.Address) (*Contract, bool) {
	return w.registry.byAddress(addr)
}

// ContractData returns the metadata stored under an index path.
func (w *World) ContractData(path ...string) (ContractData, error) {
	d, ok := w.registry.data[IndexPath(path...)]
	if !ok {
		return ContractData{}, fmt.Errorf("%w: %q", ErrContractNotFound, IndexPath(path...))
	}
	return d, nil
}

// ContractNames returns every registered contract name, sorted.
func (w *World) ContractNames() []string {
	return w.registry.names()
}

// ResolveAddress reads a hex address, an account alias or a contract name.
func (w *World) ResolveAddress(s string) (common.Address, error) {
	if common.IsHexAddress(s) {
		return common.HexToAddress(s), nil
	}
	if addr, ok := w.accounts[s]; ok {
		return addr, nil
	}
	if c, ok := w.registry.lookup(s); ok {
		return c.Address(), nil
	}
	return common.Address{}, fmt.Errorf("%w: %q", ErrAddressNotFound, s)
}

// Resolve evaluates a nested expression with the World's value resolver.
func (w *World) Resolve(ctx context.Context, e Event) (Value, error) {
	if w.resolver == nil {
		return nil, &ParseError{Input: e.String(), As: "value", Err: errNoResolver}
	}
	return w.resolver(ctx, w, e)
}

// AddAction returns a World whose action log is w's log with the action
// appended. The registry is shared unchanged.
func AddAction(w *World, description string, inv Invoked) *World {
	clone := w.clone()
	clone.actions = append(slices.Clip(w.actions), Action{Description: description, Invokation: inv})
	clone.lastInvokation = inv
	w.printer.PrintAction(description)
	return clone
}

// StoreAndSaveContract registers c under name, under the "Contracts/<name>"
// index and under every extra index, then saves the networks file when one
// is configured.
//
// A name already bound to a different address is overwritten and a warning
// is logged. Names and index path elements must pass ValidateName. When the
// networks file cannot be written, w is returned unchanged with the error.
func StoreAndSaveContract(ctx context.Context, w *World, c *Contract, name string, inv Invoked, indices []Index) (*World, error) {
	logger := ctxlog.FromContext(ctx)

	if err := ValidateName(name); err != nil {
		return w, err
	}
	for _, idx := range indices {
		for _, part := range idx.Path {
			if err := ValidateName(part); err != nil {
				return w, err
			}
		}
	}

	reg := w.registry.clone()
	c = c.WithName(name)
	if prev, overwrites := reg.put(name, c); overwrites {
		logger.Warn("Overwriting registered contract.",
			"name", name, "previous", prev.Hex(), "address", c.Address().Hex())
	}
	reg.data[IndexPath("Contracts", name)] = ContractData{Address: c.Address(), Contract: c.Type()}
	for _, idx := range indices {
		reg.data[IndexPath(idx.Path...)] = idx.Data
	}

	clone := w.clone()
	clone.registry = reg
	if inv != nil {
		clone.lastInvokation = inv
	}
	logger.Debug("Stored contract.", "name", name, "type", c.Type(), "address", c.Address().Hex(), "indices", len(indices))

	if w.networksDir != "" && !w.dryRun {
		if err := SaveNetworks(w.networksDir, w.network, reg.data); err != nil {
			return w, err
		}
	}
	return clone, nil
}

// MergeContractABI registers, under target, a contract at the address of the
// contract named at whose ABI merges the ABIs of contracts a and b. A proxy
// gains the interface of its implementation this way.
func MergeContractABI(ctx context.Context, w *World, target, at, a, b string) (*World, *Contract, error) {
	atContract, err := w.Contract(at)
	if err != nil {
		return w, nil, err
	}
	aContract, err := w.Contract(a)
	if err != nil {
		return w, nil, err
	}
	bContract, err := w.Contract(b)
	if err != nil {
		return w, nil, err
	}

	// The merged record takes b's type so it stays distinct from the record at at.
	merged := NewContract(target, bContract.Type(), atContract.Address(), MergeABI(aContract.ABI(), bContract.ABI()))
	w, err = StoreAndSaveContract(ctx, w, merged, target, nil, nil)
	if err != nil {
		return w, nil, err
	}
	return w, merged, nil
}
