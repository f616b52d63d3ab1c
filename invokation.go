package scenario

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/branched-services/go-scenario/internal/ctxlog"
)

// Invoked is the type-erased view of an Invokation, as stored in the action log.
type Invoked interface {
	Succeeded() bool
	Err() error
	TxReceipt() *types.Receipt
	FailureList() []Failure
	MethodName() string
}

// Invokation is the result of a contract call or deployment. Exactly one of
// Value and Err is meaningful: Value when Succeeded returns true.
type Invokation[T any] struct {
	Value    T
	Receipt  *types.Receipt
	Error    error
	Failures []Failure
	Method   string
}

// Succeeded returns true if the call neither errored nor emitted failures.
func (i *Invokation[T]) Succeeded() bool {
	return i.Error == nil && len(i.Failures) == 0
}

// Err returns the error of a failed invokation, or nil.
// Failure events are reported as an *InvokationError.
func (i *Invokation[T]) Err() error {
	if i.Error != nil {
		return i.Error
	}
	if len(i.Failures) > 0 {
		return &InvokationError{Method: i.Method, Reason: i.Failures[0].String()}
	}
	return nil
}

func (i *Invokation[T]) TxReceipt() *types.Receipt { return i.Receipt }
func (i *Invokation[T]) FailureList() []Failure    { return i.Failures }
func (i *Invokation[T]) MethodName() string        { return i.Method }

// Deploy deploys a compiled contract type. Constructor arguments can be Go
// values or scenario Values. The returned Contract has no name yet.
func Deploy(ctx context.Context, w *World, from common.Address, contractType string, args ...any) *Invokation[*Contract] {
	inv := &Invokation[*Contract]{Method: contractType + ".constructor"}
	logger := ctxlog.FromContext(ctx)

	if w.backend == nil {
		inv.Error = ErrNoBackend
		return inv
	}
	art, err := w.artifacts.Get(contractType)
	if err != nil {
		inv.Error = err
		return inv
	}

	inputs := art.ABI.Constructor.Inputs
	if len(args) != len(inputs) {
		inv.Error = &ArgumentError{
			Method: inv.Method,
			Index:  len(args),
			Err:    fmt.Errorf("expected %d arguments, got %d", len(inputs), len(args)),
		}
		return inv
	}
	converted := make([]any, len(args))
	for i, arg := range args {
		v, err := toABIValue(arg, inputs[i].Type)
		if err != nil {
			inv.Error = &ArgumentError{Method: inv.Method, Index: i, Err: err}
			return inv
		}
		converted[i] = v
	}

	logger.Debug("Deploying contract.", "type", contractType, "from", from.Hex())
	addr, receipt, err := w.backend.Deploy(ctx, from, art, converted...)
	inv.Receipt = receipt
	if err != nil {
		inv.Error = &InvokationError{Method: inv.Method, Reason: RevertReason(err), Err: err}
		return inv
	}
	inv.Value = NewContract("", contractType, addr, art.ABI)
	return inv
}

// Invoke runs a contract call. Constant methods are only called. Other
// methods are simulated first, so reverts are reported with their reason,
// then sent; Failure events of the receipt are decoded with reporter.
//
// A failed invokation is returned together with its error unless the World
// allows failures, in which case the error is nil and the failure is left
// for assertions.
func Invoke(ctx context.Context, w *World, call *Call, from common.Address, reporter ErrorReporter) (*Invokation[[]any], error) {
	inv := &Invokation[[]any]{Method: call.Contract().Name() + "." + call.Method().Name}
	if w.backend == nil {
		inv.Error = ErrNoBackend
		return inv, inv.Error
	}
	logger := ctxlog.FromContext(ctx).With("method", inv.Method, "from", from.Hex())

	ret, err := w.backend.Call(ctx, from, call)
	switch {
	case err != nil:
		inv.Error = &InvokationError{Method: inv.Method, Reason: RevertReason(err), Err: err}
	case call.IsConstant():
		inv.Value, inv.Error = call.Unpack(ret)
	default:
		logger.Debug("Sending transaction.")
		receipt, err := w.backend.Send(ctx, from, call)
		inv.Receipt = receipt
		if err != nil {
			inv.Error = &InvokationError{Method: inv.Method, Reason: RevertReason(err), Err: err}
			break
		}
		inv.Failures, inv.Error = DecodeFailures(receipt.Logs, reporter)
		if inv.Error == nil {
			inv.Value, inv.Error = call.Unpack(ret)
		}
	}

	if !inv.Succeeded() {
		logger.Debug("Invokation failed.", "error", inv.Err())
		if !w.allowFailures {
			return inv, inv.Err()
		}
	}
	return inv, nil
}
