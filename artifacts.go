package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Artifact is a compiled contract: its ABI and creation bytecode.
type Artifact struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

// Artifacts maps contract type names to compiled artifacts.
type Artifacts struct {
	byName map[string]*Artifact
}

// NewArtifacts creates an in-memory artifact set.
func NewArtifacts(artifacts map[string]*Artifact) *Artifacts {
	byName := make(map[string]*Artifact, len(artifacts))
	for name, a := range artifacts {
		byName[name] = a
	}
	return &Artifacts{byName: byName}
}

// Get returns the artifact of a contract type.
func (a *Artifacts) Get(name string) (*Artifact, error) {
	art, ok := a.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrArtifactNotFound, name)
	}
	return art, nil
}

// Names returns every contract type name, sorted.
func (a *Artifacts) Names() []string {
	names := make([]string, 0, len(a.byName))
	for name := range a.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// forgeArtifact is the layout of out/<File>.sol/<Name>.json.
type forgeArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode struct {
		Object string `json:"object"`
	} `json:"bytecode"`
}

// combinedJSON is the layout of `solc --combined-json abi,bin`.
type combinedJSON struct {
	Contracts map[string]struct {
		ABI json.RawMessage `json:"abi"`
		Bin string          `json:"bin"`
	} `json:"contracts"`
}

// LoadArtifacts reads a forge output directory or a solc combined JSON file.
func LoadArtifacts(path string) (*Artifacts, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "stat artifacts")
	}
	if info.IsDir() {
		return loadForgeArtifacts(path)
	}
	return loadCombinedJSON(path)
}

func loadForgeArtifacts(dir string) (*Artifacts, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sol", "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, "glob artifacts")
	}

	out := make(map[string]*Artifact, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "read artifact %s", file)
		}
		var fa forgeArtifact
		if err := json.Unmarshal(data, &fa); err != nil {
			return nil, errors.Wrapf(err, "parse artifact %s", file)
		}
		name := strings.TrimSuffix(filepath.Base(file), ".json")
		art, err := newArtifact(name, fa.ABI, fa.Bytecode.Object)
		if err != nil {
			return nil, errors.Wrapf(err, "artifact %s", file)
		}
		out[name] = art
	}
	return NewArtifacts(out), nil
}

func loadCombinedJSON(file string) (*Artifacts, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "read combined json")
	}
	var cj combinedJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return nil, errors.Wrap(err, "parse combined json")
	}

	out := make(map[string]*Artifact, len(cj.Contracts))
	for key, c := range cj.Contracts {
		// Keys look like "contracts/Comptroller.sol:Comptroller".
		name := key[strings.LastIndex(key, ":")+1:]
		abiJSON := c.ABI
		// Older solc versions encode the ABI as a JSON string.
		var quoted string
		if err := json.Unmarshal(c.ABI, &quoted); err == nil {
			abiJSON = json.RawMessage(quoted)
		}
		art, err := newArtifact(name, abiJSON, c.Bin)
		if err != nil {
			return nil, errors.Wrapf(err, "contract %s", key)
		}
		out[name] = art
	}
	return NewArtifacts(out), nil
}

func newArtifact(name string, abiJSON json.RawMessage, bytecode string) (*Artifact, error) {
	parsed, err := ParseABI(string(abiJSON))
	if err != nil {
		return nil, errors.Wrap(err, "parse abi")
	}
	return &Artifact{Name: name, ABI: parsed, Bytecode: common.FromHex(bytecode)}, nil
}
