package dtree

import (
	"encoding/json"

	"github.com/pkg/errors"
)

const (
	BranchBase      = "0"
	BranchExtension = "1"
	// BranchSecondary holds the memosprite chains.
	BranchSecondary = "2"
)

type (
	// Node is one level-row of the upstream skill-tree table. Parent is the id of the
	// first prerequisite point, zero when there is none.
	Node struct {
		ID      int
		OwnerID int
		Level   int
		Name    string
		Parent  int
	}

	// Cluster is either a single base-skill id or a chain of extension ids.
	Cluster struct {
		Base  string
		Chain []string
	}

	Branches map[string][]Cluster

	// Tree maps owner id -> branch key -> clusters.
	Tree map[string]Branches
)

func BaseCluster(id string) Cluster {
	return Cluster{Base: id}
}

func ChainCluster(ids ...string) Cluster {
	return Cluster{Chain: ids}
}

func (c Cluster) IsChain() bool {
	return c.Chain != nil
}

func (c Cluster) Len() int {
	if c.IsChain() {
		return len(c.Chain)
	}
	return 1
}

func (c Cluster) First() string {
	if c.IsChain() {
		return c.Chain[0]
	}
	return c.Base
}

func (c Cluster) Last() string {
	if c.IsChain() {
		return c.Chain[len(c.Chain)-1]
	}
	return c.Base
}

func (c Cluster) MarshalJSON() ([]byte, error) {
	if c.IsChain() {
		return json.Marshal(c.Chain)
	}
	return json.Marshal(c.Base)
}

func (c *Cluster) UnmarshalJSON(data []byte) error {
	var chain []string
	if err := json.Unmarshal(data, &chain); err == nil && chain != nil {
		*c = Cluster{Chain: chain}
		return nil
	}
	var base string
	if err := json.Unmarshal(data, &base); err != nil {
		return errors.Wrap(err, "Cluster.UnmarshalJSON error")
	}
	*c = Cluster{Base: base}
	return nil
}
