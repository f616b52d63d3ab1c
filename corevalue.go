package scenario

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// FetchFunc converts the tokens bound to an Arg into a typed Value.
// Positional args receive a single-token event, variadic args the remainder
// and implicit args an empty event.
type FetchFunc func(ctx context.Context, w *World, e Event) (Value, error)

// decimalPattern is an integer or decimal with an optional exponent.
// big.Rat alone would also take fractions and 0b/0o prefixes.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var (
	errNotANumber  = errors.New("not a number")
	errNotABool    = errors.New("not a boolean")
	errNotAPercent = errors.New("not a percentage")

	expScale = new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
)

// ParseNumber parses an integer, decimal, exponent ("0.1e18") or 0x-prefixed
// hex literal into an exact NumberV.
func ParseNumber(s string) (NumberV, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NumberV{}, &ParseError{Input: s, As: "number", Err: errNotANumber}
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		i, ok := math.ParseBig256(s)
		if !ok {
			return NumberV{}, &ParseError{Input: s, As: "number", Err: errNotANumber}
		}
		return NewNumber(i), nil
	}

	if !decimalPattern.MatchString(s) {
		return NumberV{}, &ParseError{Input: s, As: "number", Err: errNotANumber}
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return NumberV{}, &ParseError{Input: s, As: "number", Err: errNotANumber}
	}
	return NumberV{rat: r}, nil
}

// MustParseNumber is like ParseNumber but panics on error.
func MustParseNumber(s string) NumberV {
	n, err := ParseNumber(s)
	if err != nil {
		panic(err)
	}
	return n
}

// single returns the only token of a positional argument's event.
func single(e Event) (Token, error) {
	if len(e) != 1 {
		return nil, &TypeMismatchError{Expected: "single token", Got: fmt.Sprintf("%d tokens", len(e))}
	}
	return e[0], nil
}

// word returns the only token of an event as a Word.
func word(e Event, expected string) (string, error) {
	t, err := single(e)
	if err != nil {
		return "", err
	}
	w, ok := t.(Word)
	if !ok {
		return "", &TypeMismatchError{Expected: expected, Got: tokenKind(t)}
	}
	return string(w), nil
}

func tokenKind(t Token) string {
	if g, ok := t.(Group); ok && g.IsArray() {
		return KindArray.String()
	}
	if _, ok := t.(Group); ok {
		return KindEvent.String()
	}
	return "word"
}

// GetStringV reads a single word as a StringV.
func GetStringV(_ context.Context, _ *World, e Event) (Value, error) {
	s, err := word(e, KindString.String())
	if err != nil {
		return nil, err
	}
	return StringV(s), nil
}

// GetNameV reads a contract name. Names are registry path elements, so
// they may not be empty or contain "/".
func GetNameV(ctx context.Context, w *World, e Event) (Value, error) {
	v, err := GetStringV(ctx, w, e)
	if err != nil {
		return nil, err
	}
	if err := ValidateName(string(v.(StringV))); err != nil {
		return nil, err
	}
	return v, nil
}

// ValidateName reports whether name can be registered.
func ValidateName(name string) error {
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// GetNumberV reads a single word as an exact NumberV.
func GetNumberV(_ context.Context, _ *World, e Event) (Value, error) {
	s, err := word(e, KindNumber.String())
	if err != nil {
		return nil, err
	}
	return ParseNumber(s)
}

// GetExpNumberV reads a number and scales it by 1e18, so "0.5" is 0.5e18.
func GetExpNumberV(ctx context.Context, w *World, e Event) (Value, error) {
	v, err := GetNumberV(ctx, w, e)
	if err != nil {
		return nil, err
	}
	return v.(NumberV).Mul(NumberV{rat: expScale}), nil
}

// GetPercentV reads "5%" as the 1e18-scaled fraction 0.05e18.
func GetPercentV(_ context.Context, _ *World, e Event) (Value, error) {
	s, err := word(e, "percent")
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(s, "%") {
		return nil, &ParseError{Input: s, As: "percent", Err: errNotAPercent}
	}
	n, err := ParseNumber(strings.TrimSuffix(s, "%"))
	if err != nil {
		return nil, &ParseError{Input: s, As: "percent", Err: errNotAPercent}
	}
	return n.Mul(NumberV{rat: new(big.Rat).Quo(expScale, big.NewRat(100, 1))}), nil
}

func parseBool(s string) (BoolV, error) {
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &ParseError{Input: s, As: "bool", Err: errNotABool}
}

// GetBoolV reads "True" or "False".
func GetBoolV(_ context.Context, _ *World, e Event) (Value, error) {
	s, err := word(e, KindBool.String())
	if err != nil {
		return nil, err
	}
	return parseBool(s)
}

// GetAddressV reads a hex address, an account alias or the name of a
// registered contract.
func GetAddressV(_ context.Context, w *World, e Event) (Value, error) {
	s, err := word(e, KindAddress.String())
	if err != nil {
		return nil, err
	}
	addr, err := w.ResolveAddress(s)
	if err != nil {
		return nil, err
	}
	return AddressV(addr), nil
}

// GetEventV wraps the tokens as an EventV. A single parenthesised or
// bracketed group is unwrapped.
func GetEventV(_ context.Context, _ *World, e Event) (Value, error) {
	if len(e) == 1 {
		if g, ok := e[0].(Group); ok {
			return EventV(g.Tokens), nil
		}
	}
	return EventV(e), nil
}

// GetArrayV reads a bracketed group as an ArrayV of raw values: words become
// StringV and nested groups nested ArrayV.
func GetArrayV(ctx context.Context, w *World, e Event) (Value, error) {
	return GetArrayOf(rawValue)(ctx, w, e)
}

// GetArrayOf returns a FetchFunc reading a bracketed group, converting each
// element with fetch. A multi-token event (a variadic remainder) is read as
// the element list itself.
func GetArrayOf(fetch FetchFunc) FetchFunc {
	return func(ctx context.Context, w *World, e Event) (Value, error) {
		if len(e) == 1 {
			g, ok := e[0].(Group)
			if !ok || !g.IsArray() {
				return nil, &TypeMismatchError{Expected: KindArray.String(), Got: tokenKind(e[0])}
			}
			return mapTokens(ctx, w, fetch, g.Tokens)
		}
		return mapTokens(ctx, w, fetch, e)
	}
}

func mapTokens(ctx context.Context, w *World, fetch FetchFunc, tokens Event) (ArrayV, error) {
	out := make(ArrayV, 0, len(tokens))
	for i, t := range tokens {
		v, err := fetch(ctx, w, Event{t})
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func rawValue(ctx context.Context, w *World, e Event) (Value, error) {
	t, err := single(e)
	if err != nil {
		return nil, err
	}
	if g, ok := t.(Group); ok {
		return mapTokens(ctx, w, rawValue, g.Tokens)
	}
	return StringV(t.(Word)), nil
}

// GetMapV reads a bracketed group of key=value words as a MapV.
func GetMapV(ctx context.Context, w *World, e Event) (Value, error) {
	t, err := single(e)
	if err != nil {
		return nil, err
	}
	g, ok := t.(Group)
	if !ok || !g.IsArray() {
		return nil, &TypeMismatchError{Expected: KindMap.String(), Got: tokenKind(t)}
	}
	out := make(MapV, len(g.Tokens))
	for _, elem := range g.Tokens {
		kv, ok := elem.(Word)
		key, raw, found := strings.Cut(string(kv), "=")
		if !ok || !found || key == "" {
			return nil, &ParseError{Input: elem.String(), As: "map entry"}
		}
		v, err := GetCoreValue(ctx, w, NewEvent(raw))
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

// GetCoreValue infers the type of a token: numbers, addresses, booleans,
// bracketed arrays and parenthesised expressions (evaluated by the World's
// value resolver) are recognised; anything else is a StringV.
func GetCoreValue(ctx context.Context, w *World, e Event) (Value, error) {
	t, err := single(e)
	if err != nil {
		return nil, err
	}

	switch tok := t.(type) {
	case Group:
		if tok.IsArray() {
			return mapTokens(ctx, w, GetCoreValue, tok.Tokens)
		}
		return w.Resolve(ctx, tok.Tokens)
	case Word:
		s := string(tok)
		if strings.HasPrefix(s, "0x") && common.IsHexAddress(s) {
			return AddressV(common.HexToAddress(s)), nil
		}
		if n, err := ParseNumber(s); err == nil {
			return n, nil
		}
		if b, err := parseBool(s); err == nil {
			return b, nil
		}
		return StringV(s), nil
	}
	return nil, &TypeMismatchError{Expected: "token", Got: fmt.Sprintf("%T", t)}
}
