package scenario

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A key from the well-known development mnemonic.
const devKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestParseKeys(t *testing.T) {
	keys, err := ParseKeys([]string{devKey, devKey[2:]})
	require.NoError(t, err)
	require.Len(t, keys, 2)

	expected := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	assert.Equal(t, expected, crypto.PubkeyToAddress(keys[0].PublicKey))
	assert.Equal(t, expected, crypto.PubkeyToAddress(keys[1].PublicKey))

	_, err = ParseKeys([]string{"0xnothex"})
	assert.ErrorContains(t, err, "key 0")
}

func TestSimulatedBackend(t *testing.T) {
	ctx := context.Background()
	keys, err := ParseKeys([]string{devKey})
	require.NoError(t, err)

	b, closeFn, err := NewSimulatedBackend(ctx, keys)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	from := crypto.PubkeyToAddress(keys[0].PublicKey)
	require.Equal(t, []common.Address{from}, b.Accounts())

	// A STOP initcode deploys an empty contract.
	artifact := &Artifact{Name: "Empty", ABI: MustParseABI("[]"), Bytecode: []byte{0x00}}

	t.Run("deploys", func(t *testing.T) {
		addr, receipt, err := b.Deploy(ctx, from, artifact)
		require.NoError(t, err)
		assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
		assert.Equal(t, receipt.ContractAddress, addr)
	})

	t.Run("calls", func(t *testing.T) {
		c := NewContract("Empty", "Empty", common.HexToAddress("0xee"), MustParseABI(testABIJSON))
		out, err := b.Call(ctx, from, c.MustInvoke("getValue"))
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("unknown sender", func(t *testing.T) {
		_, _, err := b.Deploy(ctx, common.HexToAddress("0x01"), artifact)
		assert.True(t, errors.Is(err, ErrAddressNotFound), "got %v", err)
	})
}
