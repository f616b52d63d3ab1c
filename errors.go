package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for common failure conditions.
var (
	// ErrContractNotFound indicates no contract is registered under a name or index.
	ErrContractNotFound = errors.New("scenario: contract not found")

	// ErrAddressNotFound indicates a token is neither an address, an account nor a contract.
	ErrAddressNotFound = errors.New("scenario: unknown address")

	// ErrArtifactNotFound indicates no compiled artifact exists for a contract type.
	ErrArtifactNotFound = errors.New("scenario: artifact not found")

	// ErrNoBackend indicates the World was built without a chain backend.
	ErrNoBackend = errors.New("scenario: world has no backend")

	// ErrEmptyEvent indicates an event with no tokens was dispatched.
	ErrEmptyEvent = errors.New("scenario: empty event")

	// ErrInvalidArgs indicates an Arg list was declared incorrectly.
	ErrInvalidArgs = errors.New("scenario: invalid argument declaration")

	// ErrTransactionFailed indicates a mined transaction has a failed status.
	ErrTransactionFailed = errors.New("scenario: transaction failed")

	// ErrDryRun indicates an operation was skipped because the World is a dry run.
	ErrDryRun = errors.New("scenario: skipped in dry run")

	// ErrInvalidName indicates a contract name cannot be registered.
	ErrInvalidName = errors.New("scenario: invalid contract name")

	// ErrUnknownNetwork indicates a networks file has no entry for the network.
	ErrUnknownNetwork = errors.New("scenario: unknown network")
)

// MethodNotFoundError indicates the contract doesn't have the requested method.
type MethodNotFoundError struct {
	Contract common.Address
	Method   string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("scenario: method %q not found in contract %s", e.Method, e.Contract.Hex())
}

// ArgumentError indicates an issue with a contract method argument.
type ArgumentError struct {
	Method string
	Index  int
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("scenario: argument %d for method %q: %v", e.Index, e.Method, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// ParseError indicates a token that is malformed for the type it was read as.
type ParseError struct {
	Input string
	As    string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scenario: cannot parse %q as %s: %v", e.Input, e.As, e.Err)
	}
	return fmt.Sprintf("scenario: cannot parse %q as %s", e.Input, e.As)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TypeMismatchError indicates a value's kind doesn't match the expected kind.
type TypeMismatchError struct {
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("scenario: type mismatch: expected %s, got %s", e.Expected, e.Got)
}

// ArgumentCountError indicates the tokens of an event don't fit an Arg list.
type ArgumentCountError struct {
	Missing string // name of the first arg without a token, if any
	Extra   int    // number of unconsumed tokens
}

func (e *ArgumentCountError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("scenario: missing argument %q", e.Missing)
	}
	return fmt.Sprintf("scenario: %d unexpected argument(s)", e.Extra)
}

// ArgumentTypeError indicates a token could not be fetched as its Arg's type.
type ArgumentTypeError struct {
	Arg string
	Err error
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("scenario: argument %q: %v", e.Arg, e.Err)
}

func (e *ArgumentTypeError) Unwrap() error {
	return e.Err
}

// NoMatchError indicates no candidate of an overload set bound to an event.
// Err aggregates each candidate's binding failure.
type NoMatchError struct {
	Noun       string
	Event      Event
	Signatures []string
	Err        error
}

func (e *NoMatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s: no match for %q, expected one of:", e.Noun, e.Event.String())
	for _, sig := range e.Signatures {
		b.WriteString("\n\t")
		b.WriteString(sig)
	}
	return b.String()
}

func (e *NoMatchError) Unwrap() error {
	return e.Err
}

// AmbiguousMatchError indicates more than one candidate bound to an event.
type AmbiguousMatchError struct {
	Noun       string
	Event      Event
	Signatures []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("scenario: %s: ambiguous match for %q between %s",
		e.Noun, e.Event.String(), strings.Join(e.Signatures, " and "))
}

// InvokationError indicates a contract call or deployment failed or reverted.
type InvokationError struct {
	Method string
	Reason string
	Err    error
}

func (e *InvokationError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return fmt.Sprintf("scenario: invokation of %s failed: %s: %v", e.Method, e.Reason, e.Err)
	case e.Reason != "":
		return fmt.Sprintf("scenario: invokation of %s failed: %s", e.Method, e.Reason)
	default:
		return fmt.Sprintf("scenario: invokation of %s failed: %v", e.Method, e.Err)
	}
}

func (e *InvokationError) Unwrap() error {
	return e.Err
}

// AssertionError indicates a failed scenario assertion.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return "scenario: assertion failed: " + e.Message
}
