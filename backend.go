package scenario

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/pkg/errors"
)

// Backend executes transactions on a chain. Implementations block until the
// transaction is mined; cancellation comes from ctx.
type Backend interface {
	// Deploy deploys an artifact with already converted constructor args.
	Deploy(ctx context.Context, from common.Address, artifact *Artifact, args ...any) (common.Address, *types.Receipt, error)

	// Send submits a call as a transaction and waits for its receipt.
	Send(ctx context.Context, from common.Address, call *Call) (*types.Receipt, error)

	// Call executes a call against the latest state without a transaction.
	Call(ctx context.Context, from common.Address, call *Call) ([]byte, error)
}

// ChainClient is the part of an RPC client EthBackend needs. Both
// *ethclient.Client and simulated.Client satisfy it.
type ChainClient interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// EthBackend is a Backend over a go-ethereum client, signing with local keys.
type EthBackend struct {
	client   ChainClient
	signers  map[common.Address]*bind.TransactOpts
	gasLimit uint64
	commit   func()
}

// BackendOption configures an EthBackend.
type BackendOption func(*EthBackend)

// WithGasLimit sets a fixed gas limit instead of estimating gas.
func WithGasLimit(limit uint64) BackendOption {
	return func(b *EthBackend) {
		b.gasLimit = limit
	}
}

// WithCommit sets a hook run after every submitted transaction. Simulated
// chains use it to mine a block.
func WithCommit(commit func()) BackendOption {
	return func(b *EthBackend) {
		b.commit = commit
	}
}

// NewEthBackend creates an EthBackend signing for every key.
func NewEthBackend(ctx context.Context, client ChainClient, keys []*ecdsa.PrivateKey, opts ...BackendOption) (*EthBackend, error) {
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get chain id")
	}

	b := &EthBackend{
		client:  client,
		signers: make(map[common.Address]*bind.TransactOpts, len(keys)),
	}
	for _, key := range keys {
		auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			return nil, errors.Wrap(err, "create transactor")
		}
		b.signers[auth.From] = auth
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// DialBackend connects to an RPC endpoint.
func DialBackend(ctx context.Context, url string, keys []*ecdsa.PrivateKey, opts ...BackendOption) (*EthBackend, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", url)
	}
	return NewEthBackend(ctx, client, keys, opts...)
}

// NewSimulatedBackend starts an in-process chain funding every key. The
// returned function shuts the chain down.
func NewSimulatedBackend(ctx context.Context, keys []*ecdsa.PrivateKey, opts ...BackendOption) (*EthBackend, func() error, error) {
	balance := new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18))
	alloc := make(types.GenesisAlloc, len(keys))
	for _, key := range keys {
		alloc[crypto.PubkeyToAddress(key.PublicKey)] = types.Account{Balance: balance}
	}

	sim := simulated.NewBackend(alloc)
	opts = append([]BackendOption{WithCommit(func() { sim.Commit() })}, opts...)
	b, err := NewEthBackend(ctx, sim.Client(), keys, opts...)
	if err != nil {
		_ = sim.Close()
		return nil, nil, err
	}
	return b, sim.Close, nil
}

// ParseKeys decodes hex private keys, with or without a 0x prefix.
func ParseKeys(hexKeys []string) ([]*ecdsa.PrivateKey, error) {
	keys := make([]*ecdsa.PrivateKey, 0, len(hexKeys))
	for i, h := range hexKeys {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(h, "0x"))
		if err != nil {
			return nil, errors.Wrapf(err, "key %d", i)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Accounts returns the signing addresses, sorted.
func (b *EthBackend) Accounts() []common.Address {
	out := make([]common.Address, 0, len(b.signers))
	for addr := range b.signers {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}

func (b *EthBackend) transactOpts(ctx context.Context, from common.Address) (*bind.TransactOpts, error) {
	signer, ok := b.signers[from]
	if !ok {
		return nil, fmt.Errorf("%w: no key for %s", ErrAddressNotFound, from.Hex())
	}
	opts := *signer
	opts.Context = ctx
	opts.GasLimit = b.gasLimit
	return &opts, nil
}

func (b *EthBackend) wait(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if b.commit != nil {
		b.commit()
	}
	receipt, err := bind.WaitMined(ctx, b.client, tx)
	if err != nil {
		return nil, errors.Wrap(err, "wait mined")
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s", ErrTransactionFailed, tx.Hash().Hex())
	}
	return receipt, nil
}

func (b *EthBackend) Deploy(ctx context.Context, from common.Address, artifact *Artifact, args ...any) (common.Address, *types.Receipt, error) {
	opts, err := b.transactOpts(ctx, from)
	if err != nil {
		return common.Address{}, nil, err
	}
	addr, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, b.client, args...)
	if err != nil {
		return common.Address{}, nil, err
	}
	receipt, err := b.wait(ctx, tx)
	return addr, receipt, err
}

func (b *EthBackend) Send(ctx context.Context, from common.Address, call *Call) (*types.Receipt, error) {
	opts, err := b.transactOpts(ctx, from)
	if err != nil {
		return nil, err
	}
	opts.Value = call.EthValue()

	contract := bind.NewBoundContract(call.Contract().Address(), call.Contract().ABI(), b.client, b.client, b.client)
	tx, err := contract.RawTransact(opts, call.Data())
	if err != nil {
		return nil, err
	}
	return b.wait(ctx, tx)
}

func (b *EthBackend) Call(ctx context.Context, from common.Address, call *Call) ([]byte, error) {
	to := call.Contract().Address()
	return b.client.CallContract(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Data:  call.Data(),
		Value: call.EthValue(),
	}, nil)
}
