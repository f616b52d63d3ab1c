package protocol_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branched-services/go-scenario"
)

func TestAssertions(t *testing.T) {
	ctx := context.Background()

	w, b, _ := newTestWorld(t)
	b.EmitFailure("_setPendingAdmin", 1, 14, 3)
	b.RevertCall("_acceptAdmin", errors.New("execution reverted: only pending admin"))
	w = run(t, w, "Unitroller Deploy", "World AllowFailures")

	failed := run(t, w, "Unitroller SetPendingAdmin Geoff")
	reverted := run(t, w, "Unitroller AcceptAdmin")

	tests := []struct {
		name   string
		world  *scenario.World
		line   string
		passes bool
	}{
		{"success after deploy", w, "Assert Success", true},
		{"success after failure", failed, "Assert Success", false},
		{"success after revert", reverted, "Assert Success", false},
		{"failure by error", failed, "Assert Failure UNAUTHORIZED", true},
		{"failure by error and info", failed, "Assert Failure UNAUTHORIZED SET_PENDING_ADMIN_OWNER_CHECK", true},
		{"failure with detail", failed, "Assert Failure UNAUTHORIZED SET_PENDING_ADMIN_OWNER_CHECK 3", true},
		{"failure with other detail", failed, "Assert Failure UNAUTHORIZED SET_PENDING_ADMIN_OWNER_CHECK 4", false},
		{"failure with inexact detail", failed, "Assert Failure UNAUTHORIZED SET_PENDING_ADMIN_OWNER_CHECK 0.5", false},
		{"failure with other error", failed, "Assert Failure MATH_ERROR", false},
		{"failure after revert", reverted, "Assert Failure UNAUTHORIZED", false},
		{"revert", reverted, "Assert Revert", true},
		{"revert with reason", reverted, `Assert Revert "only pending admin"`, true},
		{"revert with other reason", reverted, `Assert Revert "paused"`, false},
		{"revert after failure", failed, "Assert Revert", false},
		{"equal numbers", w, "Assert Equal 1 1.0", true},
		{"equal exp", w, "Assert Equal (Exp 1) 1e18", true},
		{"unequal", w, "Assert Equal 1 2", false},
		{"true", w, "Assert True True", true},
		{"false", w, "Assert False False", true},
		{"true on false", w, "Assert True False", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := process(ctx, tt.world, tt.line)
			if tt.passes {
				require.NoError(t, err)
				assert.Same(t, tt.world, next)
				return
			}
			var assertErr *scenario.AssertionError
			assert.ErrorAs(t, err, &assertErr)
		})
	}
}

func TestAssertWithoutInvokation(t *testing.T) {
	w, _, _ := newTestWorld(t)

	_, err := process(context.Background(), w, "Assert Success")
	var assertErr *scenario.AssertionError
	require.ErrorAs(t, err, &assertErr)
	assert.Contains(t, assertErr.Message, "no invokation")
}
