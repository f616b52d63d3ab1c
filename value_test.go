package scenario

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindNothing, "nothing"},
		{KindString, "string"},
		{KindNumber, "number"},
		{KindAddress, "address"},
		{KindBool, "bool"},
		{KindArray, "array"},
		{KindMap, "map"},
		{KindEvent, "event"},
		{KindContract, "contract"},
		{Kind(42), "kind(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if tt.kind.String() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, tt.kind.String())
			}
		})
	}
}

func TestValueString(t *testing.T) {
	a := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	c := NewContract("cDAI", "ApeErc20Delegator", a, MustParseABI("[]"))

	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"nothing", NothingV{}, "Nothing"},
		{"string", StringV("Ape"), "Ape"},
		{"true", BoolV(true), "True"},
		{"false", BoolV(false), "False"},
		{"address", AddressV(a), a.Hex()},
		{"integer", NumberFromInt64(42), "42"},
		{"decimal", MustParseNumber("0.25"), "0.25"},
		{"repeating fraction", NewNumberFromRat(big.NewRat(1, 3)), "1/3"},
		{"array", ArrayV{NumberFromInt64(1), StringV("x")}, "[1 x]"},
		{"map", MapV{"b": NumberFromInt64(2), "a": NumberFromInt64(1)}, "{a=1 b=2}"},
		{"event", EventV(NewEvent("Unitroller", "Address")), "Unitroller Address"},
		{"contract", ContractV{Contract: c}, "cDAI<" + a.Hex() + ">"},
		{"nil contract", ContractV{}, "Contract<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value.String() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, tt.value.String())
			}
		})
	}
}

func TestNumberStringRoundTrip(t *testing.T) {
	inputs := []string{"0", "7", "-3", "0.1e18", "1.5", "0.000001", "1e-18", "123456789012345678901234567890"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			n := MustParseNumber(in)
			back, err := ParseNumber(n.String())
			if err != nil {
				t.Fatalf("Expected %q to parse, got %v", n.String(), err)
			}
			if n.Cmp(back) != 0 {
				t.Errorf("Expected %s to round-trip, got %s", n, back)
			}
		})
	}
}

func TestNumberInt(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		i, exact := MustParseNumber("0.1e18").Int()
		if !exact {
			t.Fatal("Expected 0.1e18 to be exact")
		}
		if i.String() != "100000000000000000" {
			t.Errorf("Expected 100000000000000000, got %s", i)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		i, exact := MustParseNumber("-2.7").Int()
		if exact {
			t.Error("Expected -2.7 to be inexact")
		}
		if i.Int64() != -2 {
			t.Errorf("Expected -2, got %s", i)
		}
	})

	t.Run("zero value", func(t *testing.T) {
		var n NumberV
		i, exact := n.Int()
		if !exact || i.Sign() != 0 {
			t.Errorf("Expected exact zero, got %s (exact=%v)", i, exact)
		}
	})
}

func TestNumberRatIsCopy(t *testing.T) {
	n := NumberFromInt64(5)
	r := n.Rat()
	r.SetInt64(6)
	if n.Cmp(NumberFromInt64(5)) != 0 {
		t.Errorf("Expected 5 to be unchanged, got %s", n)
	}
}

func TestEqual(t *testing.T) {
	a := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	b := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	c := NewContract("Unitroller", "Unitroller", a, MustParseABI("[]"))

	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"same numbers", MustParseNumber("1e18"), MustParseNumber("1000000000000000000"), true},
		{"different numbers", NumberFromInt64(1), NumberFromInt64(2), false},
		{"string widens to number", StringV("5"), NumberFromInt64(5), true},
		{"number widens from string", NumberFromInt64(5), StringV("5.0"), true},
		{"non-numeric string", StringV("five"), NumberFromInt64(5), false},
		{"string widens to address", StringV(a.Hex()), AddressV(a), true},
		{"string widens to bool", StringV("true"), BoolV(true), true},
		{"contract widens to address", ContractV{Contract: c}, AddressV(a), true},
		{"contract and other address", ContractV{Contract: c}, AddressV(b), false},
		{"addresses", AddressV(a), AddressV(b), false},
		{"nothing", NothingV{}, NothingV{}, true},
		{"nothing and zero", NothingV{}, NumberFromInt64(0), false},
		{"arrays", ArrayV{NumberFromInt64(1), StringV("2")}, ArrayV{StringV("1"), NumberFromInt64(2)}, true},
		{"arrays of different length", ArrayV{NumberFromInt64(1)}, ArrayV{}, false},
		{"maps", MapV{"a": BoolV(true)}, MapV{"a": StringV("True")}, true},
		{"maps with different keys", MapV{"a": BoolV(true)}, MapV{"b": BoolV(true)}, false},
		{"events", EventV(NewEvent("A", "B")), EventV(NewEvent("A", "B")), true},
		{"nil", nil, nil, true},
		{"nil and value", nil, NothingV{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equal(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
			if got := Equal(tt.b, tt.a); got != tt.expected {
				t.Errorf("Equal(%v, %v) = %v, expected %v", tt.b, tt.a, got, tt.expected)
			}
		})
	}
}
