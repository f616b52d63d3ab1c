package scenario

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Call represents a pending contract method call with packed calldata.
// Call is immutable - modifier methods return new instances.
type Call struct {
	contract *Contract
	method   abi.Method
	args     []any
	data     []byte
	value    *big.Int // ETH value sent with the call
}

// newCall creates a Call from a contract, method, and arguments.
// Arguments are converted using the method's input types and packed.
func newCall(contract *Contract, method abi.Method, rawArgs []any) (*Call, error) {
	if len(rawArgs) != len(method.Inputs) {
		return nil, &ArgumentError{
			Method: method.Name,
			Index:  len(rawArgs),
			Err:    fmt.Errorf("expected %d arguments, got %d", len(method.Inputs), len(rawArgs)),
		}
	}

	args := make([]any, len(rawArgs))
	for i, arg := range rawArgs {
		val, err := toABIValue(arg, method.Inputs[i].Type)
		if err != nil {
			return nil, &ArgumentError{
				Method: method.Name,
				Index:  i,
				Err:    err,
			}
		}
		args[i] = val
	}

	packed, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, &ArgumentError{Method: method.Name, Index: -1, Err: err}
	}
	data := make([]byte, 0, len(method.ID)+len(packed))
	data = append(data, method.ID...)
	data = append(data, packed...)

	return &Call{
		contract: contract,
		method:   method,
		args:     args,
		data:     data,
	}, nil
}

// Contract returns the target contract for this call.
func (c *Call) Contract() *Contract {
	return c.contract
}

// Method returns the ABI method for this call.
func (c *Call) Method() abi.Method {
	return c.method
}

// Args returns the converted arguments for this call.
func (c *Call) Args() []any {
	out := make([]any, len(c.args))
	copy(out, c.args)
	return out
}

// Data returns the calldata: the 4-byte selector followed by the packed arguments.
func (c *Call) Data() []byte {
	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out
}

// EthValue returns the ETH value for this call (nil if none).
func (c *Call) EthValue() *big.Int {
	return c.value
}

// IsConstant returns true for view and pure methods.
func (c *Call) IsConstant() bool {
	return c.method.IsConstant()
}

// Selector returns the 4-byte function selector.
func (c *Call) Selector() [4]byte {
	var sel [4]byte
	copy(sel[:], c.method.ID[:4])
	return sel
}

// String describes the call as "name.method(args)".
func (c *Call) String() string {
	return fmt.Sprintf("%s.%s%v", c.contract.Name(), c.method.Name, c.args)
}

// WithValue attaches ETH value to the call.
//
// Returns a new Call with the value set.
func (c *Call) WithValue(amount *big.Int) *Call {
	clone := c.clone()
	clone.value = new(big.Int).Set(amount)
	return clone
}

// Unpack decodes the return data of the call.
func (c *Call) Unpack(data []byte) ([]any, error) {
	if len(c.method.Outputs) == 0 {
		return nil, nil
	}
	return c.method.Outputs.Unpack(data)
}

// clone creates a shallow copy of the Call.
func (c *Call) clone() *Call {
	clone := *c
	// Deep copy the args slice
	clone.args = make([]any, len(c.args))
	copy(clone.args, c.args)
	return &clone
}

// toABIValue handles Go and scenario Value conversions for ABI encoding.
// Integers become the Go type go-ethereum packs for the parameter size.
func toABIValue(value any, abiType abi.Type) (any, error) {
	switch v := value.(type) {
	case int:
		return toABIInt(big.NewInt(int64(v)), abiType)
	case int64:
		return toABIInt(big.NewInt(v), abiType)
	case uint64:
		return toABIInt(new(big.Int).SetUint64(v), abiType)
	case *big.Int:
		return toABIInt(v, abiType)
	case NumberV:
		i, exact := v.Int()
		if !exact {
			return nil, &TypeMismatchError{Expected: "integer", Got: v.String()}
		}
		return toABIInt(i, abiType)
	case AddressV:
		return common.Address(v), nil
	case ContractV:
		return v.Contract.Address(), nil
	case *Contract:
		return v.Address(), nil
	case StringV:
		return stringToABI(string(v), abiType)
	case BoolV:
		return bool(v), nil
	case ArrayV:
		if abiType.Elem == nil {
			return nil, &TypeMismatchError{Expected: abiType.String(), Got: KindArray.String()}
		}
		return toABISlice(v, abiType)
	default:
		return v, nil
	}
}

// toABIInt range checks i against an intN/uintN parameter. Sizes of 8, 16,
// 32 and 64 bits use the sized Go integer, wider ones keep *big.Int.
func toABIInt(i *big.Int, abiType abi.Type) (any, error) {
	switch abiType.T {
	case abi.UintTy:
		if i.Sign() < 0 || i.BitLen() > abiType.Size {
			return nil, &TypeMismatchError{Expected: abiType.String(), Got: i.String()}
		}
		switch abiType.Size {
		case 8:
			return uint8(i.Uint64()), nil
		case 16:
			return uint16(i.Uint64()), nil
		case 32:
			return uint32(i.Uint64()), nil
		case 64:
			return i.Uint64(), nil
		}
		return i, nil
	case abi.IntTy:
		magnitude := i
		if i.Sign() < 0 {
			magnitude = new(big.Int).Not(i) // -i-1
		}
		if magnitude.BitLen() > abiType.Size-1 {
			return nil, &TypeMismatchError{Expected: abiType.String(), Got: i.String()}
		}
		switch abiType.Size {
		case 8:
			return int8(i.Int64()), nil
		case 16:
			return int16(i.Int64()), nil
		case 32:
			return int32(i.Int64()), nil
		case 64:
			return i.Int64(), nil
		}
		return i, nil
	default:
		return nil, &TypeMismatchError{Expected: abiType.String(), Got: KindNumber.String()}
	}
}

// stringToABI reads a string argument as an address, hex bytes or a plain
// string depending on the parameter type.
func stringToABI(s string, abiType abi.Type) (any, error) {
	switch abiType.T {
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, &TypeMismatchError{Expected: "address", Got: s}
		}
		return common.HexToAddress(s), nil
	case abi.BytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return nil, &TypeMismatchError{Expected: "hex bytes", Got: s}
		}
		return b, nil
	case abi.FixedBytesTy:
		b, err := hexutil.Decode(s)
		if err != nil || len(b) != abiType.Size {
			return nil, &TypeMismatchError{Expected: abiType.String(), Got: s}
		}
		out := reflect.New(abiType.GetType()).Elem()
		reflect.Copy(out, reflect.ValueOf(b))
		return out.Interface(), nil
	default:
		return s, nil
	}
}

// toABISlice converts an ArrayV into the slice or fixed array go-ethereum
// packs for the parameter, converting every element for the element type.
func toABISlice(v ArrayV, abiType abi.Type) (any, error) {
	typ := abiType.GetType()
	var out reflect.Value
	switch abiType.T {
	case abi.SliceTy:
		out = reflect.MakeSlice(typ, len(v), len(v))
	case abi.ArrayTy:
		if len(v) != abiType.Size {
			return nil, &TypeMismatchError{Expected: abiType.String(), Got: fmt.Sprintf("%d elements", len(v))}
		}
		out = reflect.New(typ).Elem()
	default:
		return nil, &TypeMismatchError{Expected: abiType.String(), Got: KindArray.String()}
	}

	for i, elem := range v {
		conv, err := toABIValue(elem, *abiType.Elem)
		if err != nil {
			return nil, err
		}
		rv := reflect.ValueOf(conv)
		if !rv.IsValid() || !rv.Type().AssignableTo(typ.Elem()) {
			return nil, &TypeMismatchError{Expected: abiType.Elem.String(), Got: elem.Kind().String()}
		}
		out.Index(i).Set(rv)
	}
	return out.Interface(), nil
}

// ValueOf converts a value decoded from return data into a scenario Value.
// Types without a scenario counterpart are rendered as strings.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return NothingV{}
	case *big.Int:
		return NewNumber(x)
	case uint8:
		return NewNumber(new(big.Int).SetUint64(uint64(x)))
	case uint16:
		return NewNumber(new(big.Int).SetUint64(uint64(x)))
	case uint32:
		return NewNumber(new(big.Int).SetUint64(uint64(x)))
	case uint64:
		return NewNumber(new(big.Int).SetUint64(x))
	case int8:
		return NumberFromInt64(int64(x))
	case int16:
		return NumberFromInt64(int64(x))
	case int32:
		return NumberFromInt64(int64(x))
	case int64:
		return NumberFromInt64(x)
	case common.Address:
		return AddressV(x)
	case bool:
		return BoolV(x)
	case string:
		return StringV(x)
	case []common.Address:
		out := make(ArrayV, len(x))
		for i, a := range x {
			out[i] = AddressV(a)
		}
		return out
	case []*big.Int:
		out := make(ArrayV, len(x))
		for i, n := range x {
			out[i] = NewNumber(n)
		}
		return out
	default:
		return StringV(fmt.Sprint(x))
	}
}
