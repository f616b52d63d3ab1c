package scenario

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

// Sample ABI JSON for testing
const testABIJSON = `[
	{
		"name": "add",
		"type": "function",
		"stateMutability": "pure",
		"inputs": [
			{"name": "a", "type": "uint256"},
			{"name": "b", "type": "uint256"}
		],
		"outputs": [
			{"name": "", "type": "uint256"}
		]
	},
	{
		"name": "transfer",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": [
			{"name": "", "type": "bool"}
		]
	},
	{
		"name": "getValue",
		"type": "function",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [
			{"name": "", "type": "uint256"}
		]
	}
]`

const otherABIJSON = `[
	{
		"name": "getValue",
		"type": "function",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [
			{"name": "", "type": "address"}
		]
	},
	{
		"name": "_become",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "unitroller", "type": "address"}
		],
		"outputs": []
	}
]`

var testAddr = common.HexToAddress("0x1234567890123456789012345678901234567890")

func TestNewContract(t *testing.T) {
	parsed := MustParseABI(testABIJSON)
	contract := NewContract("cDAI", "ApeErc20Delegator", testAddr, parsed)

	if contract.Name() != "cDAI" {
		t.Errorf("Expected name 'cDAI', got %q", contract.Name())
	}
	if contract.Type() != "ApeErc20Delegator" {
		t.Errorf("Expected type 'ApeErc20Delegator', got %q", contract.Type())
	}
	if contract.Address() != testAddr {
		t.Errorf("Expected address %s, got %s", testAddr.Hex(), contract.Address().Hex())
	}
	if len(contract.ABI().Methods) != 3 {
		t.Errorf("Expected 3 methods, got %d", len(contract.ABI().Methods))
	}
}

func TestContractWithName(t *testing.T) {
	contract := NewContract("", "Unitroller", testAddr, MustParseABI(testABIJSON))
	named := contract.WithName("Unitroller")

	if named.Name() != "Unitroller" {
		t.Errorf("Expected name 'Unitroller', got %q", named.Name())
	}
	if contract.Name() != "" {
		t.Errorf("Expected original to remain unnamed, got %q", contract.Name())
	}
	if named.Address() != contract.Address() {
		t.Error("Expected same address")
	}
}

func TestContractInvoke(t *testing.T) {
	contract := NewContract("Token", "Token", testAddr, MustParseABI(testABIJSON))

	t.Run("creates call for valid method", func(t *testing.T) {
		call, err := contract.Invoke("add", big.NewInt(1), big.NewInt(2))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if call.Method().Name != "add" {
			t.Errorf("Expected method 'add', got %q", call.Method().Name)
		}
	})

	t.Run("returns error for unknown method", func(t *testing.T) {
		_, err := contract.Invoke("nonexistent", big.NewInt(1))

		var notFound *MethodNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("Expected *MethodNotFoundError, got %T", err)
		}
		if notFound.Method != "nonexistent" {
			t.Errorf("Expected method 'nonexistent', got %q", notFound.Method)
		}
		if notFound.Contract != testAddr {
			t.Errorf("Expected contract %s, got %s", testAddr.Hex(), notFound.Contract.Hex())
		}
	})

	t.Run("returns error for wrong argument count", func(t *testing.T) {
		_, err := contract.Invoke("add", big.NewInt(1))

		var argErr *ArgumentError
		if !errors.As(err, &argErr) {
			t.Fatalf("Expected *ArgumentError, got %T", err)
		}
		if argErr.Method != "add" {
			t.Errorf("Expected method 'add', got %q", argErr.Method)
		}
	})

	t.Run("accepts scenario values", func(t *testing.T) {
		recipient := common.HexToAddress("0x9999999999999999999999999999999999999999")
		call, err := contract.Invoke("transfer", AddressV(recipient), MustParseNumber("0.1e18"))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		args := call.Args()
		if args[0] != recipient {
			t.Errorf("Expected recipient %s, got %v", recipient.Hex(), args[0])
		}
		want, _ := new(big.Int).SetString("100000000000000000", 10)
		if args[1].(*big.Int).Cmp(want) != 0 {
			t.Errorf("Expected amount %s, got %v", want, args[1])
		}
	})
}

func TestContractMustInvoke(t *testing.T) {
	contract := NewContract("Token", "Token", testAddr, MustParseABI(testABIJSON))

	t.Run("returns call on success", func(t *testing.T) {
		call := contract.MustInvoke("getValue")
		if call == nil {
			t.Fatal("Expected call to be non-nil")
		}
	})

	t.Run("panics on error", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic for unknown method")
			}
		}()
		contract.MustInvoke("nonexistent")
	})
}

func TestContractHasMethod(t *testing.T) {
	contract := NewContract("Token", "Token", testAddr, MustParseABI(testABIJSON))

	tests := []struct {
		method   string
		expected bool
	}{
		{"add", true},
		{"transfer", true},
		{"getValue", true},
		{"nonexistent", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			if got := contract.HasMethod(tt.method); got != tt.expected {
				t.Errorf("HasMethod(%q) = %v, expected %v", tt.method, got, tt.expected)
			}
		})
	}
}

func TestContractMethodNames(t *testing.T) {
	contract := NewContract("Token", "Token", testAddr, MustParseABI(testABIJSON))

	names := contract.MethodNames()
	expected := []string{"add", "getValue", "transfer"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d names, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Expected names[%d] = %q, got %q", i, name, names[i])
		}
	}
}

func TestMergeABI(t *testing.T) {
	merged := MergeABI(MustParseABI(testABIJSON), MustParseABI(otherABIJSON))

	if len(merged.Methods) != 4 {
		t.Fatalf("Expected 4 methods, got %d", len(merged.Methods))
	}
	if _, ok := merged.Methods["_become"]; !ok {
		t.Error("Expected _become from the second ABI")
	}
	if _, ok := merged.Methods["add"]; !ok {
		t.Error("Expected add from the first ABI")
	}
	out := merged.Methods["getValue"].Outputs[0].Type.String()
	if out != "address" {
		t.Errorf("Expected getValue of the second ABI to win, got output %s", out)
	}
}

func TestParseABI(t *testing.T) {
	t.Run("parses valid ABI", func(t *testing.T) {
		parsed, err := ParseABI(testABIJSON)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(parsed.Methods) != 3 {
			t.Errorf("Expected 3 methods, got %d", len(parsed.Methods))
		}
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		if _, err := ParseABI("not json"); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})
}

func TestMustParseABI(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for invalid ABI")
		}
	}()
	MustParseABI("{invalid")
}
