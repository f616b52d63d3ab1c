package testutil

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/branched-services/go-scenario"
)

const (
	comptrollerABI = `[
		{"type":"constructor","inputs":[]},
		{"type":"function","name":"_become","inputs":[{"name":"unitroller","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
		{"type":"function","name":"_setMaxAssets","inputs":[{"name":"newMaxAssets","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable"},
		{"type":"function","name":"admin","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
		{"type":"function","name":"isComptroller","inputs":[],"outputs":[{"name":"","type":"bool"}],"stateMutability":"view"}
	]`

	unitrollerABI = `[
		{"type":"constructor","inputs":[]},
		{"type":"function","name":"_setPendingImplementation","inputs":[{"name":"newPendingImplementation","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable"},
		{"type":"function","name":"_acceptImplementation","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable"},
		{"type":"function","name":"_setPendingAdmin","inputs":[{"name":"newPendingAdmin","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable"},
		{"type":"function","name":"_acceptAdmin","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable"},
		{"type":"function","name":"comptrollerImplementation","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
		{"type":"function","name":"pendingComptrollerImplementation","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
		{"type":"function","name":"admin","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
		{"type":"function","name":"pendingAdmin","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"}
	]`

	delegateABI = `[
		{"type":"constructor","inputs":[]},
		{"type":"function","name":"implementation","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
		{"type":"function","name":"_becomeImplementation","inputs":[{"name":"data","type":"bytes"}],"outputs":[],"stateMutability":"nonpayable"}
	]`
)

// dummyBytecode is never executed by FakeBackend.
var dummyBytecode = common.FromHex("0x6080604052")

// Accounts are the aliases every test World knows.
var Accounts = map[string]common.Address{
	"Admin":  common.HexToAddress("0x00000000000000000000000000000000000000a1"),
	"Geoff":  common.HexToAddress("0x00000000000000000000000000000000000000b2"),
	"Torrey": common.HexToAddress("0x00000000000000000000000000000000000000c3"),
}

// TestArtifacts returns artifacts for every contract type the protocol
// builders deploy, with compact ABIs.
func TestArtifacts() *scenario.Artifacts {
	abis := map[string]string{
		"Unitroller":                            unitrollerABI,
		"Comptroller":                           comptrollerABI,
		"ComptrollerScenario":                   comptrollerABI,
		"ComptrollerBorked":                     comptrollerABI,
		"ApeErc20Delegate":                      delegateABI,
		"ApeErc20DelegateScenario":              delegateABI,
		"ApeCollateralCapErc20DelegateScenario": delegateABI,
		"ApeWrappedNativeDelegateScenario":      delegateABI,
	}
	artifacts := make(map[string]*scenario.Artifact, len(abis))
	for name, abiJSON := range abis {
		artifacts[name] = &scenario.Artifact{
			Name:     name,
			ABI:      scenario.MustParseABI(abiJSON),
			Bytecode: dummyBytecode,
		}
	}
	return scenario.NewArtifacts(artifacts)
}

// WorldOptions returns the options of a World backed by b, with the test
// artifacts and accounts, sending as Admin by default.
func WorldOptions(b scenario.Backend, opts ...scenario.WorldOption) []scenario.WorldOption {
	return append([]scenario.WorldOption{
		scenario.WithBackend(b),
		scenario.WithArtifacts(TestArtifacts()),
		scenario.WithAccounts(Accounts),
		scenario.WithDefaultFrom(Accounts["Admin"]),
	}, opts...)
}
