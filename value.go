package scenario

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Kind identifies the variant of a Value.
type Kind uint8

const (
	KindNothing Kind = iota
	KindString
	KindNumber
	KindAddress
	KindBool
	KindArray
	KindMap
	KindEvent
	KindContract
)

var kindNames = [...]string{
	KindNothing:  "nothing",
	KindString:   "string",
	KindNumber:   "number",
	KindAddress:  "address",
	KindBool:     "bool",
	KindArray:    "array",
	KindMap:      "map",
	KindEvent:    "event",
	KindContract: "contract",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a typed runtime value of the scenario language.
// This is a sealed interface - only types within this package can implement it.
type Value interface {
	// isValue is unexported to seal the interface.
	isValue()

	// Kind returns the variant of this value.
	Kind() Kind

	// String returns the canonical textual form of the value.
	String() string
}

// NothingV is the absent value.
type NothingV struct{}

func (NothingV) isValue()       {}
func (NothingV) Kind() Kind     { return KindNothing }
func (NothingV) String() string { return "Nothing" }

// StringV is a string value.
type StringV string

func (StringV) isValue()         {}
func (StringV) Kind() Kind       { return KindString }
func (v StringV) String() string { return string(v) }

// BoolV is a boolean value.
type BoolV bool

func (BoolV) isValue()   {}
func (BoolV) Kind() Kind { return KindBool }
func (v BoolV) String() string {
	if v {
		return "True"
	}
	return "False"
}

// AddressV is an Ethereum address value.
type AddressV common.Address

func (AddressV) isValue()         {}
func (AddressV) Kind() Kind       { return KindAddress }
func (v AddressV) String() string { return common.Address(v).Hex() }

// Address returns the underlying address.
func (v AddressV) Address() common.Address { return common.Address(v) }

// NumberV is an exact arbitrary-precision number.
// The zero NumberV is the number zero.
type NumberV struct {
	rat *big.Rat
}

func (NumberV) isValue()   {}
func (NumberV) Kind() Kind { return KindNumber }

// NewNumber creates a NumberV from an integer.
func NewNumber(i *big.Int) NumberV {
	return NumberV{rat: new(big.Rat).SetInt(i)}
}

// NewNumberFromRat creates a NumberV from a rational number.
func NewNumberFromRat(r *big.Rat) NumberV {
	return NumberV{rat: new(big.Rat).Set(r)}
}

// NumberFromInt64 creates a NumberV from an int64.
func NumberFromInt64(i int64) NumberV {
	return NumberV{rat: new(big.Rat).SetInt64(i)}
}

func (v NumberV) value() *big.Rat {
	if v.rat == nil {
		return new(big.Rat)
	}
	return v.rat
}

// Rat returns a copy of the number as a rational.
func (v NumberV) Rat() *big.Rat {
	return new(big.Rat).Set(v.value())
}

// IsInt returns true if the number has no fractional part.
func (v NumberV) IsInt() bool {
	return v.value().IsInt()
}

// Int returns the number as an integer and whether the conversion was exact.
// A fractional number is truncated toward zero.
func (v NumberV) Int() (*big.Int, bool) {
	r := v.value()
	if r.IsInt() {
		return new(big.Int).Set(r.Num()), true
	}
	return new(big.Int).Quo(r.Num(), r.Denom()), false
}

// Mul returns v * other.
func (v NumberV) Mul(other NumberV) NumberV {
	return NumberV{rat: new(big.Rat).Mul(v.value(), other.value())}
}

// Cmp compares two numbers, returning -1, 0 or +1.
func (v NumberV) Cmp(other NumberV) int {
	return v.value().Cmp(other.value())
}

// String returns the canonical decimal form. Fractions with a terminating
// decimal expansion are printed exactly; other fractions use "a/b".
// The result always parses back to the same number with ParseNumber.
func (v NumberV) String() string {
	r := v.value()
	if r.IsInt() {
		return r.Num().String()
	}
	places, ok := decimalPlaces(r.Denom())
	if !ok {
		return r.RatString()
	}
	return r.FloatString(places)
}

// decimalPlaces returns the number of decimal digits needed to print a
// fraction with the given reduced denominator exactly.
func decimalPlaces(den *big.Int) (int, bool) {
	d := new(big.Int).Set(den)
	two, five := big.NewInt(2), big.NewInt(5)
	var twos, fives int
	mod := new(big.Int)
	for {
		q, m := new(big.Int).QuoRem(d, two, mod)
		if m.Sign() != 0 {
			break
		}
		d, twos = q, twos+1
	}
	for {
		q, m := new(big.Int).QuoRem(d, five, mod)
		if m.Sign() != 0 {
			break
		}
		d, fives = q, fives+1
	}
	if d.Cmp(big.NewInt(1)) != 0 {
		return 0, false
	}
	return max(twos, fives), true
}

// ArrayV is an ordered list of values.
type ArrayV []Value

func (ArrayV) isValue()   {}
func (ArrayV) Kind() Kind { return KindArray }
func (v ArrayV) String() string {
	parts := make([]string, len(v))
	for i, elem := range v {
		parts[i] = elem.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// MapV is a string-keyed map of values. It must not be modified once built.
type MapV map[string]Value

func (MapV) isValue()   {}
func (MapV) Kind() Kind { return KindMap }
func (v MapV) String() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + v[k].String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// EventV wraps an unevaluated event, such as the parameters of a builder.
type EventV Event

func (EventV) isValue()         {}
func (EventV) Kind() Kind       { return KindEvent }
func (v EventV) String() string { return Event(v).String() }

// Event returns the wrapped event.
func (v EventV) Event() Event { return Event(v) }

// ContractV is a registered contract instance.
type ContractV struct {
	Contract *Contract
}

func (ContractV) isValue()   {}
func (ContractV) Kind() Kind { return KindContract }
func (v ContractV) String() string {
	if v.Contract == nil {
		return "Contract<nil>"
	}
	return fmt.Sprintf("%s<%s>", v.Contract.Name(), v.Contract.Address().Hex())
}

// Equal reports whether two values are equal after widening:
// strings compare with numbers and addresses by parsing, and contracts
// compare with addresses by their address.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		wa, wb, ok := widen(a, b)
		if !ok {
			return false
		}
		a, b = wa, wb
	}

	switch av := a.(type) {
	case NothingV:
		return true
	case StringV:
		return av == b.(StringV)
	case BoolV:
		return av == b.(BoolV)
	case AddressV:
		return av == b.(AddressV)
	case NumberV:
		return av.Cmp(b.(NumberV)) == 0
	case ArrayV:
		bv := b.(ArrayV)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case MapV:
		bv := b.(MapV)
		if len(av) != len(bv) {
			return false
		}
		for k, elem := range av {
			other, ok := bv[k]
			if !ok || !Equal(elem, other) {
				return false
			}
		}
		return true
	case EventV:
		return av.String() == b.(EventV).String()
	case ContractV:
		bv := b.(ContractV)
		if av.Contract == nil || bv.Contract == nil {
			return av.Contract == bv.Contract
		}
		return av.Contract.Address() == bv.Contract.Address()
	default:
		return false
	}
}

// widen converts a pair of values of different kinds to a common kind.
func widen(a, b Value) (Value, Value, bool) {
	if isWidenable(b) && !isWidenable(a) {
		a, b = b, a
		wb, wa, ok := widen(a, b)
		return wa, wb, ok
	}
	switch av := a.(type) {
	case StringV:
		switch b.Kind() {
		case KindNumber:
			n, err := ParseNumber(string(av))
			return n, b, err == nil
		case KindAddress:
			if !common.IsHexAddress(string(av)) {
				return nil, nil, false
			}
			return AddressV(common.HexToAddress(string(av))), b, true
		case KindBool:
			bv, err := parseBool(string(av))
			return bv, b, err == nil
		}
	case ContractV:
		if b.Kind() == KindAddress && av.Contract != nil {
			return AddressV(av.Contract.Address()), b, true
		}
	}
	return nil, nil, false
}

func isWidenable(v Value) bool {
	return v.Kind() == KindString || v.Kind() == KindContract
}
