// Package scenario implements a scenario command interpreter for driving and
// verifying a deployed lending protocol on an Ethereum chain.
//
// A scenario is a plain-text script. Each line is tokenized into an Event and
// dispatched through a table of declared commands:
//
//	Unitroller Deploy
//	ComptrollerImpl Deploy MyImpl Scenario
//	Unitroller SetPendingImpl MyImpl
//	ComptrollerImpl MyImpl Become
//	CTokenDelegate Deploy CErc20Delegate cDAIDelegate
//
// # Commands and Fetchers
//
// Every operation is declared as data: a documentation string, a verb name,
// an ordered list of Args and a handler. Overloads share a name and differ in
// their Args; dispatch binds the event tokens against every candidate and
// invokes the single one that binds. More than one binding candidate is an
// AmbiguousMatchError; none is a NoMatchError listing the documented
// signatures of all candidates.
//
//   - Fetcher: produces a typed value (builders use fetchers to pick a
//     deployment variant).
//   - Command: may send transactions and returns an updated World.
//   - View: reads chain or registry state and never changes the World.
//
// # Values
//
// Arguments are converted into typed Values (StringV, NumberV, AddressV,
// BoolV, ArrayV, MapV, EventV, ContractV) by fetch functions such as
// GetNumberV. Numbers are exact rationals, so "0.1e18" is exactly
// 100000000000000000.
//
// # World
//
// World carries the network, dry-run flag, contract registry, action log,
// printer and chain backend. It is a persistent value: every operation that
// changes it returns a new *World and leaves its input untouched, so a caller
// must always continue with the returned World.
//
// # Backends
//
// Chain access goes through the Backend interface. EthBackend implements it
// with go-ethereum's ethclient and bind packages, either against a JSON-RPC
// node or an in-process simulated chain.
package scenario
