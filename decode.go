package scenario

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// FailureEventSignature is the event protocol contracts emit instead of
// reverting: Failure(error, info, detail).
const FailureEventSignature = "Failure(uint256,uint256,uint256)"

// FailureTopic is the topic hash of FailureEventSignature.
var FailureTopic = crypto.Keccak256Hash([]byte(FailureEventSignature))

var failureArgs = func() abi.Arguments {
	uint256, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{{Type: uint256}, {Type: uint256}, {Type: uint256}}
}()

// ErrorReporter maps protocol error and failure-info codes to their names.
type ErrorReporter interface {
	Get(code uint64) string
	Info(code uint64) string
}

// CodeReporter is an ErrorReporter backed by enum name lists, where the
// index of a name is its code.
type CodeReporter struct {
	Errors []string
	Infos  []string
}

// Get returns the name of an error code.
func (r CodeReporter) Get(code uint64) string {
	return enumName(r.Errors, code)
}

// Info returns the name of a failure-info code.
func (r CodeReporter) Info(code uint64) string {
	return enumName(r.Infos, code)
}

// ErrorCode returns the code of an error name.
func (r CodeReporter) ErrorCode(name string) (uint64, bool) {
	for i, n := range r.Errors {
		if n == name {
			return uint64(i), true
		}
	}
	return 0, false
}

func enumName(names []string, code uint64) string {
	if code < uint64(len(names)) {
		return names[code]
	}
	return fmt.Sprintf("UNKNOWN(%d)", code)
}

// Failure is a decoded Failure event.
type Failure struct {
	Error  string
	Info   string
	Detail *big.Int
}

func (f Failure) String() string {
	return fmt.Sprintf("Failure{error=%s info=%s detail=%s}", f.Error, f.Info, f.Detail)
}

// Equal reports whether f matches an expected error, info and detail.
// Empty info and nil detail match anything.
func (f Failure) Equal(errName, info string, detail *big.Int) bool {
	if f.Error != errName {
		return false
	}
	if info != "" && f.Info != info {
		return false
	}
	return detail == nil || (f.Detail != nil && f.Detail.Cmp(detail) == 0)
}

// DecodeFailures extracts the Failure events of a receipt's logs.
func DecodeFailures(logs []*types.Log, reporter ErrorReporter) ([]Failure, error) {
	if reporter == nil {
		reporter = CodeReporter{}
	}
	var out []Failure
	for _, l := range logs {
		if len(l.Topics) == 0 || l.Topics[0] != FailureTopic {
			continue
		}
		values, err := failureArgs.Unpack(l.Data)
		if err != nil {
			return nil, fmt.Errorf("decode failure log: %w", err)
		}
		errCode := values[0].(*big.Int)
		info := values[1].(*big.Int)
		out = append(out, Failure{
			Error:  reporter.Get(errCode.Uint64()),
			Info:   reporter.Info(info.Uint64()),
			Detail: values[2].(*big.Int),
		})
	}
	return out, nil
}

// FailureLog builds the log a contract emits for a failure. Test backends use
// it to simulate protocol errors.
func FailureLog(address common.Address, errCode, info, detail uint64) *types.Log {
	data, err := failureArgs.Pack(
		new(big.Int).SetUint64(errCode),
		new(big.Int).SetUint64(info),
		new(big.Int).SetUint64(detail),
	)
	if err != nil {
		panic(err)
	}
	return &types.Log{Address: address, Topics: []common.Hash{FailureTopic}, Data: data}
}

// dataError is implemented by JSON-RPC errors that carry revert data.
type dataError interface {
	ErrorData() interface{}
}

// RevertReason extracts the Error(string) reason of a reverted call, or
// returns the error text when no revert data is attached.
func RevertReason(err error) string {
	if err == nil {
		return ""
	}
	var de dataError
	if errors.As(err, &de) {
		if s, ok := de.ErrorData().(string); ok {
			if data, decodeErr := hexutil.Decode(s); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
					return reason
				}
			}
		}
	}
	return strings.TrimPrefix(err.Error(), "execution reverted: ")
}
