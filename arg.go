package scenario

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Arg declares one named, typed parameter of a Command or Fetcher.
// An Arg is bound at declaration time and never modified afterwards.
type Arg struct {
	Name  string
	Fetch FetchFunc

	implicit bool
	variadic bool
	mapped   bool
	def      Value
	rescue   Value
}

// ArgOption configures an Arg.
type ArgOption func(*Arg)

// Implicit supplies the value from the World instead of from a token.
// The fetch function receives an empty event.
func Implicit() ArgOption {
	return func(a *Arg) {
		a.implicit = true
	}
}

// Variadic consumes every remaining token. It must be the last Arg.
func Variadic() ArgOption {
	return func(a *Arg) {
		a.variadic = true
	}
}

// Mapped fetches each remaining token of a variadic Arg separately and
// collects the results into an ArrayV.
func Mapped() ArgOption {
	return func(a *Arg) {
		a.mapped = true
	}
}

// Default supplies v when no token is left for the Arg.
func Default(v Value) ArgOption {
	return func(a *Arg) {
		a.def = v
	}
}

// Rescue supplies v when the fetch function fails.
func Rescue(v Value) ArgOption {
	return func(a *Arg) {
		a.rescue = v
	}
}

// NewArg creates an Arg.
func NewArg(name string, fetch FetchFunc, opts ...ArgOption) *Arg {
	a := &Arg{Name: name, Fetch: fetch}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// IsImplicit returns true if the Arg consumes no token.
func (a *Arg) IsImplicit() bool { return a.implicit }

// IsVariadic returns true if the Arg consumes the remaining tokens.
func (a *Arg) IsVariadic() bool { return a.variadic }

// HasDefault returns true if the Arg may be omitted.
func (a *Arg) HasDefault() bool { return a.def != nil }

// validateArgs checks that a variadic Arg, if any, is the last one.
func validateArgs(args []*Arg) error {
	seen := make(map[string]bool, len(args))
	for i, a := range args {
		if a.Fetch == nil {
			return fmt.Errorf("%w: arg %q has no fetch function", ErrInvalidArgs, a.Name)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: duplicate arg %q", ErrInvalidArgs, a.Name)
		}
		seen[a.Name] = true
		if a.variadic && i != len(args)-1 {
			return fmt.Errorf("%w: variadic arg %q must be last", ErrInvalidArgs, a.Name)
		}
		if a.variadic && a.implicit {
			return fmt.Errorf("%w: arg %q cannot be both variadic and implicit", ErrInvalidArgs, a.Name)
		}
	}
	return nil
}

// bindArgs resolves args against tokens. Implicit args are fetched first
// without consuming tokens, then positional args consume one token each from
// left to right and a trailing variadic arg consumes the rest.
func bindArgs(ctx context.Context, w *World, args []*Arg, tokens Event) (Args, error) {
	bound := make(Args, len(args))

	for _, a := range args {
		if !a.implicit {
			continue
		}
		v, err := fetchArg(ctx, w, a, Event{})
		if err != nil {
			return nil, err
		}
		bound[a.Name] = v
	}

	pos := 0
	for _, a := range args {
		if a.implicit {
			continue
		}

		if a.variadic {
			rest := tokens[pos:]
			pos = len(tokens)
			v, err := fetchVariadic(ctx, w, a, rest)
			if err != nil {
				return nil, err
			}
			bound[a.Name] = v
			continue
		}

		if pos >= len(tokens) {
			if a.def != nil {
				bound[a.Name] = a.def
				continue
			}
			return nil, &ArgumentCountError{Missing: a.Name}
		}

		v, err := fetchArg(ctx, w, a, Event{tokens[pos]})
		if err != nil {
			return nil, err
		}
		bound[a.Name] = v
		pos++
	}

	if pos < len(tokens) {
		return nil, &ArgumentCountError{Extra: len(tokens) - pos}
	}
	return bound, nil
}

func fetchArg(ctx context.Context, w *World, a *Arg, e Event) (Value, error) {
	v, err := a.Fetch(ctx, w, e)
	if err != nil {
		if a.rescue != nil {
			return a.rescue, nil
		}
		return nil, &ArgumentTypeError{Arg: a.Name, Err: err}
	}
	return v, nil
}

func fetchVariadic(ctx context.Context, w *World, a *Arg, rest Event) (Value, error) {
	if len(rest) == 0 && a.def != nil {
		return a.def, nil
	}
	if !a.mapped {
		return fetchArg(ctx, w, a, rest)
	}
	out := make(ArrayV, 0, len(rest))
	for _, t := range rest {
		v, err := fetchArg(ctx, w, a, Event{t})
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Args holds the values bound to a descriptor's Arg list, keyed by Arg name.
// The typed accessors panic when the value has a different kind, which can
// only happen when a handler disagrees with its own Arg declarations.
type Args map[string]Value

// Get returns the raw value of an arg.
func (a Args) Get(name string) Value {
	return a[name]
}

// String returns a string arg.
func (a Args) String(name string) string {
	return string(a[name].(StringV))
}

// Number returns a number arg.
func (a Args) Number(name string) NumberV {
	return a[name].(NumberV)
}

// Bool returns a boolean arg.
func (a Args) Bool(name string) bool {
	return bool(a[name].(BoolV))
}

// Address returns an address arg. Contract args yield their address.
func (a Args) Address(name string) common.Address {
	switch v := a[name].(type) {
	case ContractV:
		return v.Contract.Address()
	default:
		return common.Address(v.(AddressV))
	}
}

// Event returns an event arg.
func (a Args) Event(name string) Event {
	return Event(a[name].(EventV))
}

// Array returns an array arg.
func (a Args) Array(name string) ArrayV {
	return a[name].(ArrayV)
}

// Contract returns a contract arg.
func (a Args) Contract(name string) *Contract {
	return a[name].(ContractV).Contract
}
