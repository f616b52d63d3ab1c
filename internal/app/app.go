// Package app wires a scenario World from configuration and drives it from
// scenario files or an interactive prompt.
package app

import (
	"context"
	"crypto/ecdsa"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/branched-services/go-scenario"
	"github.com/branched-services/go-scenario/internal/config"
	"github.com/branched-services/go-scenario/internal/ctxlog"
	"github.com/branched-services/go-scenario/protocol"
)

// Option configures an App.
type Option func(*App)

// WithBackend uses b instead of dialing the configured RPC endpoint or
// starting an in-process chain.
func WithBackend(b scenario.Backend) Option {
	return func(a *App) {
		a.backend = b
	}
}

// WithArtifacts uses artifacts instead of loading the configured path.
func WithArtifacts(artifacts *scenario.Artifacts) Option {
	return func(a *App) {
		a.artifacts = artifacts
	}
}

// WithVerbose prints every action as it is recorded.
func WithVerbose(verbose bool) Option {
	return func(a *App) {
		a.verbose = verbose
	}
}

// WithContinueOnError keeps running scenario tests after one fails.
func WithContinueOnError(enabled bool) Option {
	return func(a *App) {
		a.continueOnError = enabled
	}
}

// App holds the initial World built from configuration.
type App struct {
	cfg    config.Config
	outW   io.Writer
	logger *slog.Logger

	backend         scenario.Backend
	artifacts       *scenario.Artifacts
	verbose         bool
	continueOnError bool

	world   *scenario.World
	closers []func() error
}

// New builds an App: it connects the backend, loads artifacts and restores
// the contracts saved for the configured network. Output goes to outW and
// logs to logW.
func New(ctx context.Context, cfg config.Config, outW, logW io.Writer, opts ...Option) (*App, error) {
	a := &App{
		cfg:    cfg,
		outW:   outW,
		logger: newLogger(cfg.Log.Level, cfg.Log.Format, logW),
	}
	for _, opt := range opts {
		opt(a)
	}
	ctx = ctxlog.WithLogger(ctx, a.logger)

	keys, err := scenario.ParseKeys(cfg.Keys)
	if err != nil {
		return nil, errors.Wrap(err, "parse keys")
	}
	if a.backend == nil {
		if err := a.connect(ctx, keys); err != nil {
			return nil, err
		}
	}
	if a.artifacts == nil {
		if a.artifacts, err = loadArtifacts(ctx, cfg.Artifacts); err != nil {
			a.Close()
			return nil, err
		}
	}

	accounts, err := parseAccounts(cfg.Accounts)
	if err != nil {
		a.Close()
		return nil, err
	}
	from, err := defaultFrom(cfg.DefaultFrom, accounts, keys)
	if err != nil {
		a.Close()
		return nil, err
	}

	w := protocol.NewWorld(cfg.Network,
		scenario.WithBackend(a.backend),
		scenario.WithArtifacts(a.artifacts),
		scenario.WithAccounts(accounts),
		scenario.WithDefaultFrom(from),
		scenario.WithNetworksDir(cfg.NetworksDir),
		scenario.WithDryRun(cfg.DryRun),
		scenario.WithVerifier(a.verifier()),
		scenario.WithPrinter(scenario.NewConsolePrinter(outW, a.verbose)),
	)
	if a.world, err = restore(ctx, w, cfg.NetworksDir, cfg.Network); err != nil {
		a.Close()
		return nil, err
	}
	a.logger.Debug("World ready.", "network", cfg.Network, "from", from.Hex(),
		"contracts", len(a.world.ContractNames()), "dryRun", cfg.DryRun)
	return a, nil
}

// World returns the initial World.
func (a *App) World() *scenario.World {
	return a.world
}

// Context returns ctx carrying the App's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Close shuts down an in-process chain, if one was started.
func (a *App) Close() error {
	var err error
	for _, fn := range a.closers {
		if cerr := fn(); cerr != nil && err == nil {
			err = cerr
		}
	}
	a.closers = nil
	return err
}

func (a *App) connect(ctx context.Context, keys []*ecdsa.PrivateKey) error {
	if a.cfg.RPCURL == "" {
		a.logger.Info("Starting in-process chain.", "accounts", len(keys))
		b, closeFn, err := scenario.NewSimulatedBackend(ctx, keys)
		if err != nil {
			return errors.Wrap(err, "start in-process chain")
		}
		a.backend = b
		a.closers = append(a.closers, closeFn)
		return nil
	}

	a.logger.Info("Connecting to node.", "url", a.cfg.RPCURL)
	b, err := scenario.DialBackend(ctx, a.cfg.RPCURL, keys)
	if err != nil {
		return err
	}
	a.backend = b
	return nil
}

// verifier returns the Etherscan verifier, reading flattened sources from
// the configured directory.
func (a *App) verifier() scenario.Verifier {
	es := a.cfg.Etherscan
	return &scenario.EtherscanVerifier{
		BaseURL: es.URL,
		Source: func(contract string) (string, string, error) {
			if es.SourcesDir == "" {
				return "", "", errors.New("no sources directory configured")
			}
			src, err := os.ReadFile(filepath.Join(es.SourcesDir, contract+".sol"))
			if err != nil {
				return "", "", errors.Wrapf(err, "read source of %s", contract)
			}
			return string(src), es.Compiler, nil
		},
	}
}

func loadArtifacts(ctx context.Context, path string) (*scenario.Artifacts, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		ctxlog.FromContext(ctx).Warn("Artifacts not found, deployments will fail.", "path", path)
		return scenario.NewArtifacts(nil), nil
	}
	return scenario.LoadArtifacts(path)
}

func parseAccounts(aliases map[string]string) (map[string]common.Address, error) {
	out := make(map[string]common.Address, len(aliases))
	for alias, addr := range aliases {
		if !common.IsHexAddress(addr) {
			return nil, errors.Errorf("account %s: invalid address %q", alias, addr)
		}
		out[alias] = common.HexToAddress(addr)
	}
	return out, nil
}

// defaultFrom resolves the sending account: an alias, a hex address or, when
// empty, the address of the first key.
func defaultFrom(from string, accounts map[string]common.Address, keys []*ecdsa.PrivateKey) (common.Address, error) {
	switch {
	case from == "":
		if len(keys) == 0 {
			return common.Address{}, errors.New("no keys configured")
		}
		return crypto.PubkeyToAddress(keys[0].PublicKey), nil
	case common.IsHexAddress(from):
		return common.HexToAddress(from), nil
	}
	if addr, ok := accounts[from]; ok {
		return addr, nil
	}
	return common.Address{}, errors.Errorf("default_from: unknown account %s", from)
}

// restore registers the contracts saved in the networks file of network.
func restore(ctx context.Context, w *scenario.World, dir, network string) (*scenario.World, error) {
	if dir == "" {
		return w, nil
	}
	data, err := scenario.LoadNetworks(dir, network)
	if errors.Is(err, scenario.ErrUnknownNetwork) {
		ctxlog.FromContext(ctx).Debug("No saved contracts.", "network", network)
		return w, nil
	}
	if err != nil {
		return w, err
	}
	w = scenario.RestoreContracts(w, data)
	ctxlog.FromContext(ctx).Info("Restored contracts.", "network", network, "count", len(w.ContractNames()))
	return w, nil
}
