package scenario

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ContractData is the metadata stored under a registry index path.
type ContractData struct {
	Address     common.Address `json:"address"`
	Contract    string         `json:"contract"`
	Description string         `json:"description,omitempty"`
}

// Index is an additional lookup path for a registered contract, such as
// {"ApeTokenDelegate", "cDAIDelegate"}.
type Index struct {
	Path []string
	Data ContractData
}

// IndexPath joins path elements into the "A/B" key used by the data index.
func IndexPath(path ...string) string {
	return strings.Join(path, "/")
}

// contractID is the identity of one physical contract record.
type contractID uint64

// registry stores each contract once and indexes it by name and by path.
// A registry is never modified after it has been attached to a World;
// mutations go through clone.
type registry struct {
	nextID    contractID
	contracts map[contractID]*Contract
	aliases   map[string]contractID
	data      map[string]ContractData
}

func newRegistry() *registry {
	return &registry{
		contracts: make(map[contractID]*Contract),
		aliases:   make(map[string]contractID),
		data:      make(map[string]ContractData),
	}
}

// clone copies the maps; the *Contract values are immutable and shared.
func (r *registry) clone() *registry {
	c := &registry{
		nextID:    r.nextID,
		contracts: make(map[contractID]*Contract, len(r.contracts)),
		aliases:   make(map[string]contractID, len(r.aliases)),
		data:      make(map[string]ContractData, len(r.data)),
	}
	for k, v := range r.contracts {
		c.contracts[k] = v
	}
	for k, v := range r.aliases {
		c.aliases[k] = v
	}
	for k, v := range r.data {
		c.data[k] = v
	}
	return c
}

// put registers c under name. An existing record with the same address and
// type is reused. It returns the address previously known under name, if
// that address differs.
func (r *registry) put(name string, c *Contract) (common.Address, bool) {
	var (
		prev       common.Address
		overwrites bool
	)
	if id, ok := r.aliases[name]; ok {
		old := r.contracts[id]
		if old.Address() != c.Address() {
			prev, overwrites = old.Address(), true
		}
	}

	id, found := r.find(c)
	if found {
		// The newest ABI wins, e.g. after a MergeABI.
		r.contracts[id] = c
	} else {
		r.nextID++
		id = r.nextID
		r.contracts[id] = c
	}
	r.aliases[name] = id
	r.prune()
	return prev, overwrites
}

func (r *registry) find(c *Contract) (contractID, bool) {
	for id, existing := range r.contracts {
		if existing.Address() == c.Address() && existing.Type() == c.Type() {
			return id, true
		}
	}
	return 0, false
}

// prune drops records no alias refers to anymore.
func (r *registry) prune() {
	used := make(map[contractID]bool, len(r.aliases))
	for _, id := range r.aliases {
		used[id] = true
	}
	for id := range r.contracts {
		if !used[id] {
			delete(r.contracts, id)
		}
	}
}

func (r *registry) lookup(name string) (*Contract, bool) {
	id, ok := r.aliases[name]
	if !ok {
		return nil, false
	}
	return r.contracts[id].WithName(name), true
}

func (r *registry) byAddress(addr common.Address) (*Contract, bool) {
	for _, name := range r.names() {
		c, _ := r.lookup(name)
		if c.Address() == addr {
			return c, true
		}
	}
	return nil, false
}

// names returns every alias, sorted.
func (r *registry) names() []string {
	out := make([]string, 0, len(r.aliases))
	for name := range r.aliases {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// records returns the number of distinct physical contracts.
func (r *registry) records() int {
	return len(r.contracts)
}
