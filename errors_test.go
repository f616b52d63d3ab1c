package scenario

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrContractNotFound", ErrContractNotFound, "scenario: contract not found"},
		{"ErrAddressNotFound", ErrAddressNotFound, "scenario: unknown address"},
		{"ErrArtifactNotFound", ErrArtifactNotFound, "scenario: artifact not found"},
		{"ErrNoBackend", ErrNoBackend, "scenario: world has no backend"},
		{"ErrEmptyEvent", ErrEmptyEvent, "scenario: empty event"},
		{"ErrInvalidArgs", ErrInvalidArgs, "scenario: invalid argument declaration"},
		{"ErrTransactionFailed", ErrTransactionFailed, "scenario: transaction failed"},
		{"ErrDryRun", ErrDryRun, "scenario: skipped in dry run"},
		{"ErrUnknownNetwork", ErrUnknownNetwork, "scenario: unknown network"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.msg {
				t.Errorf("Expected error message %q, got %q", tt.msg, tt.err.Error())
			}
		})
	}
}

func TestMethodNotFoundError(t *testing.T) {
	addr := common.HexToAddress("0x1234567890123456789012345678901234567890")
	err := &MethodNotFoundError{
		Contract: addr,
		Method:   "_become",
	}

	expected := `scenario: method "_become" not found in contract 0x1234567890123456789012345678901234567890`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestArgumentError(t *testing.T) {
	innerErr := errors.New("invalid type")
	err := &ArgumentError{
		Method: "_setPendingAdmin",
		Index:  0,
		Err:    innerErr,
	}

	expected := `scenario: argument 0 for method "_setPendingAdmin": invalid type`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, innerErr) {
		t.Error("Expected errors.Is to find the wrapped error")
	}
}

func TestParseError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		err := &ParseError{Input: "lots", As: "number", Err: errNotANumber}

		expected := `scenario: cannot parse "lots" as number: not a number`
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
		if !errors.Is(err, errNotANumber) {
			t.Error("Expected errors.Is to find the cause")
		}
	})

	t.Run("without cause", func(t *testing.T) {
		err := &ParseError{Input: "=5", As: "map entry"}

		expected := `scenario: cannot parse "=5" as map entry`
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
	})
}

func TestTypeMismatchError(t *testing.T) {
	err := &TypeMismatchError{Expected: "address", Got: "word"}

	expected := "scenario: type mismatch: expected address, got word"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestArgumentCountError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ArgumentCountError
		expected string
	}{
		{"missing", &ArgumentCountError{Missing: "apiKey"}, `scenario: missing argument "apiKey"`},
		{"extra", &ArgumentCountError{Extra: 2}, "scenario: 2 unexpected argument(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestNoMatchError(t *testing.T) {
	cause := errors.New("bad token")
	err := &NoMatchError{
		Noun:       "ComptrollerImpl",
		Event:      NewEvent("MyImpl", "Bcome"),
		Signatures: []string{"Deploy ...comptrollerImplParams", "comptrollerImpl:<Impl> Become"},
		Err:        cause,
	}

	expected := "scenario: ComptrollerImpl: no match for \"MyImpl Bcome\", expected one of:" +
		"\n\tDeploy ...comptrollerImplParams\n\tcomptrollerImpl:<Impl> Become"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
}

func TestAmbiguousMatchError(t *testing.T) {
	err := &AmbiguousMatchError{
		Noun:       "Value",
		Event:      NewEvent("Address", "Geoff"),
		Signatures: []string{"Address a", "Address b"},
	}

	expected := `scenario: Value: ambiguous match for "Address Geoff" between Address a and Address b`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestInvokationError(t *testing.T) {
	cause := errors.New("execution reverted")

	tests := []struct {
		name     string
		err      *InvokationError
		expected string
	}{
		{
			name:     "reason and cause",
			err:      &InvokationError{Method: "Unitroller._acceptAdmin", Reason: "unauthorized", Err: cause},
			expected: "scenario: invokation of Unitroller._acceptAdmin failed: unauthorized: execution reverted",
		},
		{
			name:     "reason only",
			err:      &InvokationError{Method: "Unitroller._acceptAdmin", Reason: "Failure{error=UNAUTHORIZED}"},
			expected: "scenario: invokation of Unitroller._acceptAdmin failed: Failure{error=UNAUTHORIZED}",
		},
		{
			name:     "cause only",
			err:      &InvokationError{Method: "Unitroller.constructor", Err: cause},
			expected: "scenario: invokation of Unitroller.constructor failed: execution reverted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}

	if !errors.Is(tests[0].err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
}

func TestAssertionError(t *testing.T) {
	err := &AssertionError{Message: "expected 1 to equal 2"}

	expected := "scenario: assertion failed: expected 1 to equal 2"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrContractNotFound, ErrAddressNotFound, ErrArtifactNotFound, ErrNoBackend,
		ErrEmptyEvent, ErrInvalidArgs, ErrTransactionFailed, ErrDryRun, ErrUnknownNetwork,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("Expected %v and %v to be distinct", a, b)
			}
		}
	}
}
