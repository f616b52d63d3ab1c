package scenario

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract wraps a deployed contract known to the World.
// Contract is immutable - WithName returns a new instance.
type Contract struct {
	name     string
	typeName string
	address  common.Address
	abi      abi.ABI
}

// NewContract creates a Contract. typeName is the compiled contract it was
// deployed from, such as "ApeErc20Delegate".
func NewContract(name, typeName string, address common.Address, contractABI abi.ABI) *Contract {
	return &Contract{
		name:     name,
		typeName: typeName,
		address:  address,
		abi:      contractABI,
	}
}

// Name returns the scenario name of the contract.
func (c *Contract) Name() string {
	return c.name
}

// Type returns the compiled contract type name.
func (c *Contract) Type() string {
	return c.typeName
}

// Address returns the contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// ABI returns the contract ABI.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// WithName returns a copy of the contract registered under another name.
func (c *Contract) WithName(name string) *Contract {
	clone := *c
	clone.name = name
	return &clone
}

// Invoke creates a Call for the named method with the given arguments.
// Arguments can be Go values or scenario Values.
func (c *Contract) Invoke(methodName string, args ...any) (*Call, error) {
	method, ok := c.abi.Methods[methodName]
	if !ok {
		return nil, &MethodNotFoundError{Contract: c.address, Method: methodName}
	}

	return newCall(c, method, args)
}

// MustInvoke is like Invoke but panics on error.
func (c *Contract) MustInvoke(methodName string, args ...any) *Call {
	call, err := c.Invoke(methodName, args...)
	if err != nil {
		panic(err)
	}
	return call
}

// HasMethod returns true if the contract has a method with the given name.
func (c *Contract) HasMethod(methodName string) bool {
	_, ok := c.abi.Methods[methodName]
	return ok
}

// MethodNames returns all method names in the contract ABI, sorted.
func (c *Contract) MethodNames() []string {
	names := make([]string, 0, len(c.abi.Methods))
	for name := range c.abi.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MergeABI combines two ABIs. Entries of b win over entries of a with the
// same name, which is how an implementation's interface replaces a proxy's.
func MergeABI(a, b abi.ABI) abi.ABI {
	merged := abi.ABI{
		Constructor: a.Constructor,
		Methods:     make(map[string]abi.Method, len(a.Methods)+len(b.Methods)),
		Events:      make(map[string]abi.Event, len(a.Events)+len(b.Events)),
		Errors:      make(map[string]abi.Error, len(a.Errors)+len(b.Errors)),
		Fallback:    a.Fallback,
		Receive:     a.Receive,
	}
	for _, src := range []abi.ABI{a, b} {
		for k, m := range src.Methods {
			merged.Methods[k] = m
		}
		for k, e := range src.Events {
			merged.Events[k] = e
		}
		for k, e := range src.Errors {
			merged.Errors[k] = e
		}
	}
	if b.HasFallback() {
		merged.Fallback = b.Fallback
	}
	if b.HasReceive() {
		merged.Receive = b.Receive
	}
	return merged
}

// ParseABI parses a JSON ABI string into an abi.ABI.
func ParseABI(abiJSON string) (abi.ABI, error) {
	return abi.JSON(strings.NewReader(abiJSON))
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}
