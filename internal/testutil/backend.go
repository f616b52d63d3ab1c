// Package testutil provides an in-memory chain backend and compact artifacts
// for tests that drive the interpreter without a node.
package testutil

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/branched-services/go-scenario"
)

// Deployment records one FakeBackend deployment.
type Deployment struct {
	From    common.Address
	Type    string
	Address common.Address
	Args    []any
}

// Invocation records one FakeBackend call or transaction.
type Invocation struct {
	From     common.Address
	Contract common.Address
	Method   string
	Args     []any
}

type failure struct {
	errCode, info, detail uint64
}

// FakeBackend is a scenario.Backend that executes nothing. Deployed addresses
// follow the CREATE rule of the sender and a shared nonce.
//
// Unless configured otherwise a call returns zeroed outputs, a transaction
// succeeds without logs and a deployment succeeds.
type FakeBackend struct {
	mu    sync.Mutex
	nonce uint64

	Deployed []Deployment
	Sent     []Invocation
	Called   []Invocation

	deployErrs map[string]error
	callErrs   map[string]error
	sendErrs   map[string]error
	results    map[string][]any
	failures   map[string]failure
}

var _ scenario.Backend = (*FakeBackend)(nil)

// NewFakeBackend creates an empty FakeBackend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		deployErrs: make(map[string]error),
		callErrs:   make(map[string]error),
		sendErrs:   make(map[string]error),
		results:    make(map[string][]any),
		failures:   make(map[string]failure),
	}
}

// FailDeploy makes deployments of contractType return err.
func (b *FakeBackend) FailDeploy(contractType string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deployErrs[contractType] = err
}

// RevertCall makes calls of method return err, as a reverting simulation would.
func (b *FakeBackend) RevertCall(method string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callErrs[method] = err
}

// FailSend makes transactions of method return err.
func (b *FakeBackend) FailSend(method string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sendErrs[method] = err
}

// Return makes calls of method return values, packed with the method's outputs.
func (b *FakeBackend) Return(method string, values ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results[method] = values
}

// EmitFailure makes transactions of method emit a Failure event.
func (b *FakeBackend) EmitFailure(method string, errCode, info, detail uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method] = failure{errCode: errCode, info: info, detail: detail}
}

func (b *FakeBackend) Deploy(_ context.Context, from common.Address, artifact *scenario.Artifact, args ...any) (common.Address, *types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.deployErrs[artifact.Name]; err != nil {
		return common.Address{}, &types.Receipt{Status: types.ReceiptStatusFailed}, err
	}
	addr := crypto.CreateAddress(from, b.nonce)
	b.nonce++
	b.Deployed = append(b.Deployed, Deployment{From: from, Type: artifact.Name, Address: addr, Args: args})
	return addr, &types.Receipt{Status: types.ReceiptStatusSuccessful, ContractAddress: addr}, nil
}

func (b *FakeBackend) Send(_ context.Context, from common.Address, call *scenario.Call) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	method := call.Method().Name
	if err := b.sendErrs[method]; err != nil {
		return &types.Receipt{Status: types.ReceiptStatusFailed}, err
	}
	b.nonce++
	b.Sent = append(b.Sent, invocation(from, call))

	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful}
	if f, ok := b.failures[method]; ok {
		receipt.Logs = append(receipt.Logs, scenario.FailureLog(call.Contract().Address(), f.errCode, f.info, f.detail))
	}
	return receipt, nil
}

func (b *FakeBackend) Call(_ context.Context, from common.Address, call *scenario.Call) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	method := call.Method()
	b.Called = append(b.Called, invocation(from, call))
	if err := b.callErrs[method.Name]; err != nil {
		return nil, err
	}
	if values, ok := b.results[method.Name]; ok {
		return method.Outputs.Pack(values...)
	}
	return make([]byte, 32*len(method.Outputs)), nil
}

// SentMethods lists the method names of every transaction, in order.
func (b *FakeBackend) SentMethods() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.Sent))
	for i, s := range b.Sent {
		out[i] = s.Method
	}
	return out
}

func invocation(from common.Address, call *scenario.Call) Invocation {
	return Invocation{
		From:     from,
		Contract: call.Contract().Address(),
		Method:   call.Method().Name,
		Args:     call.Args(),
	}
}
