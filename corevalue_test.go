package scenario

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var geoff = common.HexToAddress("0x00000000000000000000000000000000000000b2")

func testWorld(opts ...WorldOption) *World {
	return NewWorld("test", append([]WorldOption{
		WithAccounts(map[string]common.Address{"Geoff": geoff}),
		WithResolver(func(_ context.Context, _ *World, e Event) (Value, error) {
			if e.String() == "Geoff Balance" {
				return NumberFromInt64(100), nil
			}
			return nil, errors.New("unknown value")
		}),
	}, opts...)...)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"5", "5"},
		{"0.1e18", "100000000000000000"},
		{"1.5", "1.5"},
		{"-2", "-2"},
		{"0x10", "16"},
		{"1e-2", "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := ParseNumber(tt.in)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if n.String() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, n)
			}
		})
	}

	for _, in := range []string{"", "abc", "0xzz", "1..2", "1/3", "0b101", "0o17", "1_000"} {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := ParseNumber(in)

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected *ParseError, got %v", err)
			}
			if !errors.Is(err, errNotANumber) {
				t.Errorf("Expected errNotANumber, got %v", err)
			}
		})
	}
}

func TestGetScalarValues(t *testing.T) {
	ctx := context.Background()
	w := testWorld()

	tests := []struct {
		name     string
		fetch    FetchFunc
		token    string
		expected Value
	}{
		{"string", GetStringV, "Ape", StringV("Ape")},
		{"number", GetNumberV, "0.1e18", MustParseNumber("100000000000000000")},
		{"exp", GetExpNumberV, "0.5", MustParseNumber("500000000000000000")},
		{"percent", GetPercentV, "5%", MustParseNumber("50000000000000000")},
		{"true", GetBoolV, "True", BoolV(true)},
		{"false", GetBoolV, "false", BoolV(false)},
		{"account", GetAddressV, "Geoff", AddressV(geoff)},
		{"hex address", GetAddressV, geoff.Hex(), AddressV(geoff)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fetch(ctx, w, NewEvent(tt.token))
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got.Kind() != tt.expected.Kind() || !Equal(got, tt.expected) {
				t.Errorf("Expected %s %s, got %s %s", tt.expected.Kind(), tt.expected, got.Kind(), got)
			}
		})
	}
}

func TestGetScalarValueErrors(t *testing.T) {
	ctx := context.Background()
	w := testWorld()

	tests := []struct {
		name  string
		fetch FetchFunc
		event Event
		want  any
	}{
		{"two tokens", GetStringV, NewEvent("a", "b"), new(*TypeMismatchError)},
		{"group for string", GetStringV, MustParseLine("(a)"), new(*TypeMismatchError)},
		{"bad number", GetNumberV, NewEvent("lots"), new(*ParseError)},
		{"bad bool", GetBoolV, NewEvent("yes"), new(*ParseError)},
		{"percent without sign", GetPercentV, NewEvent("5"), new(*ParseError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fetch(ctx, w, tt.event)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !errors.As(err, tt.want) {
				t.Errorf("Expected %T, got %T: %v", tt.want, err, err)
			}
		})
	}

	t.Run("unknown address", func(t *testing.T) {
		_, err := GetAddressV(ctx, w, NewEvent("Nobody"))
		if !errors.Is(err, ErrAddressNotFound) {
			t.Errorf("Expected ErrAddressNotFound, got %v", err)
		}
	})
}

func TestGetEventV(t *testing.T) {
	ctx := context.Background()
	w := testWorld()

	t.Run("unwraps a single group", func(t *testing.T) {
		v, err := GetEventV(ctx, w, MustParseLine("(Unitroller AcceptAdmin)"))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if v.String() != "Unitroller AcceptAdmin" {
			t.Errorf("Expected 'Unitroller AcceptAdmin', got %q", v.String())
		}
	})

	t.Run("keeps several tokens", func(t *testing.T) {
		v, err := GetEventV(ctx, w, NewEvent("MyScen", "Scenario"))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(v.(EventV)) != 2 {
			t.Errorf("Expected 2 tokens, got %d", len(v.(EventV)))
		}
	})
}

func TestGetArrayAndMap(t *testing.T) {
	ctx := context.Background()
	w := testWorld()

	t.Run("raw array", func(t *testing.T) {
		v, err := GetArrayV(ctx, w, MustParseLine("[a [b c]]"))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		expected := ArrayV{StringV("a"), ArrayV{StringV("b"), StringV("c")}}
		if !Equal(v, expected) {
			t.Errorf("Expected %s, got %s", expected, v)
		}
	})

	t.Run("typed array", func(t *testing.T) {
		v, err := GetArrayOf(GetNumberV)(ctx, w, MustParseLine("[1 2 3]"))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(v.(ArrayV)) != 3 {
			t.Errorf("Expected 3 elements, got %s", v)
		}
	})

	t.Run("typed array element error", func(t *testing.T) {
		_, err := GetArrayOf(GetNumberV)(ctx, w, MustParseLine("[1 x]"))
		if err == nil {
			t.Fatal("Expected an error")
		}
	})

	t.Run("array rejects a word", func(t *testing.T) {
		_, err := GetArrayV(ctx, w, NewEvent("a"))

		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("Expected *TypeMismatchError, got %v", err)
		}
	})

	t.Run("map", func(t *testing.T) {
		v, err := GetMapV(ctx, w, MustParseLine("[cap=5 enabled=True]"))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		expected := MapV{"cap": NumberFromInt64(5), "enabled": BoolV(true)}
		if !Equal(v, expected) {
			t.Errorf("Expected %s, got %s", expected, v)
		}
	})

	t.Run("map entry without key", func(t *testing.T) {
		_, err := GetMapV(ctx, w, MustParseLine("[=5]"))

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Expected *ParseError, got %v", err)
		}
	})
}

func TestGetNameV(t *testing.T) {
	ctx := context.Background()

	v, err := GetNameV(ctx, nil, MustParseLine("cDAIDelegate"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v != StringV("cDAIDelegate") {
		t.Errorf("Expected cDAIDelegate, got %s", v)
	}

	_, err = GetNameV(ctx, nil, MustParseLine("cDAI/impl"))
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("Expected ErrInvalidName, got %v", err)
	}
}

func TestGetCoreValue(t *testing.T) {
	ctx := context.Background()
	w := testWorld()

	tests := []struct {
		name     string
		line     string
		expected Value
	}{
		{"number", "0.1e18", MustParseNumber("100000000000000000")},
		{"address", geoff.Hex(), AddressV(geoff)},
		{"bool", "True", BoolV(true)},
		{"string", "Geoff", StringV("Geoff")},
		{"fraction is a word", "1/2", StringV("1/2")},
		{"array", "[1 True]", ArrayV{NumberFromInt64(1), BoolV(true)}},
		{"expression", "(Geoff Balance)", NumberFromInt64(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetCoreValue(ctx, w, MustParseLine(tt.line))
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got.Kind() != tt.expected.Kind() || !Equal(got, tt.expected) {
				t.Errorf("Expected %s %s, got %s %s", tt.expected.Kind(), tt.expected, got.Kind(), got)
			}
		})
	}

	t.Run("expression without resolver", func(t *testing.T) {
		_, err := GetCoreValue(ctx, NewWorld("test"), MustParseLine("(Geoff Balance)"))
		if !errors.Is(err, errNoResolver) {
			t.Errorf("Expected errNoResolver, got %v", err)
		}
	})
}
