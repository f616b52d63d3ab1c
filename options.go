package scenario

import "github.com/ethereum/go-ethereum/common"

// WorldOption configures the initial World.
type WorldOption func(*World)

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPrinter sets the output sink. The default discards output.
func WithPrinter(p Printer) WorldOption {
	return func(w *World) {
		w.printer = p
	}
}

// WithBackend sets the chain backend used by Deploy and Invoke.
func WithBackend(b Backend) WorldOption {
	return func(w *World) {
		w.backend = b
	}
}

// WithArtifacts sets the compiled contracts available to Deploy.
func WithArtifacts(a *Artifacts) WorldOption {
	return func(w *World) {
		w.artifacts = a
	}
}

// WithVerifier sets the source verifier.
func WithVerifier(v Verifier) WorldOption {
	return func(w *World) {
		w.verifier = v
	}
}

// WithAccounts sets the account aliases, such as "Admin" or "Geoff".
// The first account in the map is not the default; use WithDefaultFrom.
func WithAccounts(accounts map[string]common.Address) WorldOption {
	return func(w *World) {
		w.accounts = make(map[string]common.Address, len(accounts))
		for k, v := range accounts {
			w.accounts[k] = v
		}
	}
}

// WithDefaultFrom sets the sender of statements that name no account.
func WithDefaultFrom(from common.Address) WorldOption {
	return func(w *World) {
		w.defaultFrom = from
	}
}

// WithNetworksDir enables saving the contract registry to
// <dir>/<network>.json after every stored contract.
func WithNetworksDir(dir string) WorldOption {
	return func(w *World) {
		w.networksDir = dir
	}
}

// WithDryRun starts the World in dry-run mode.
func WithDryRun(dryRun bool) WorldOption {
	return func(w *World) {
		w.dryRun = dryRun
	}
}

// WithResolver sets the evaluator of parenthesised value expressions.
func WithResolver(r ValueResolver) WorldOption {
	return func(w *World) {
		w.resolver = r
	}
}

// WithContinueOnError keeps running the remaining tests after a test fails.
// By default the run halts at the first failing test.
func WithContinueOnError(enabled bool) RunnerOption {
	return func(r *Runner) {
		r.continueOnError = enabled
	}
}
