package dtree

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/samber/lo"

	"enkadb/ds"
)

type (
	nodeKey struct {
		owner int
		id    int
	}
	placement struct {
		branch string
		ids    []int
	}
	forest struct {
		nodes    map[nodeKey]Node
		children map[nodeKey][]int
		linked   map[nodeKey]bool
	}
)

// Reconstruct links the level-one rows of nodes by their parent ids and linearizes
// every owner's tree into clusters per branch key.
//
// Base nodes (empty name) go to "0" one by one. Every extension root becomes either one
// chain (pre-order, root first) or, when the root forks into children that continue,
// one chain per child followed by the single-id chain [root].
func Reconstruct(nodes []Node) Tree {
	sorted := ds.SortedBy(
		lo.Filter(nodes, func(node Node, _ int) bool { return node.Level == 1 }),
		func(node Node) int { return node.ID },
	)
	sorted = lo.UniqBy(sorted, func(node Node) nodeKey { return node.key() })
	f := link(sorted)

	tree := Tree{}
	for _, node := range sorted {
		id := strconv.Itoa(node.ID)
		if len(id) != 7 {
			continue
		}
		branches := tree.ensure(strconv.Itoa(node.OwnerID))
		if node.Name == "" {
			branches[BranchBase] = append(branches[BranchBase], BaseCluster(id))
			continue
		}
		branches.ensure(BranchExtension)
		branches.ensure(BranchSecondary)
		if f.linked[node.key()] {
			continue
		}
		for _, placed := range f.clusters(node) {
			branches[placed.branch] = append(branches[placed.branch], ChainCluster(idStrings(placed.ids)...))
		}
	}

	for _, branches := range tree {
		if extensions, ok := branches[BranchExtension]; ok {
			SortExtensions(extensions)
		}
	}
	return tree
}

// SortExtensions orders clusters by descending length, then by the 7th digit of the
// last id, then by the 5th digit of the first id.
func SortExtensions(clusters []Cluster) {
	slices.SortStableFunc(clusters, func(a, b Cluster) int {
		return cmp.Or(
			cmp.Compare(b.Len(), a.Len()),
			cmp.Compare(Digit(a.Last(), 7), Digit(b.Last(), 7)),
			cmp.Compare(Digit(a.First(), 5), Digit(b.First(), 5)),
		)
	})
}

// Digit returns the 1-based pos-th decimal digit of id, or -1 when there is none.
func Digit(id string, pos int) int {
	if pos < 1 || pos > len(id) {
		return -1
	}
	digit := id[pos-1]
	if digit < '0' || digit > '9' {
		return -1
	}
	return int(digit - '0')
}

func (n Node) key() nodeKey {
	return nodeKey{owner: n.OwnerID, id: n.ID}
}

func link(nodes []Node) forest {
	f := forest{
		nodes:    make(map[nodeKey]Node, len(nodes)),
		children: make(map[nodeKey][]int),
		linked:   make(map[nodeKey]bool),
	}
	for _, node := range nodes {
		f.nodes[node.key()] = node
	}
	for _, node := range nodes {
		if node.Parent == 0 {
			continue
		}
		parent := nodeKey{owner: node.OwnerID, id: node.Parent}
		if _, ok := f.nodes[parent]; !ok || parent == node.key() {
			continue
		}
		f.children[parent] = append(f.children[parent], node.ID)
		f.linked[node.key()] = true
	}
	return f
}

func (f forest) clusters(root Node) []placement {
	if !f.forksAtRoot(root) {
		branch := BranchExtension
		if Digit(strconv.Itoa(root.ID), 5) == 3 {
			branch = BranchSecondary
		}
		return []placement{{branch: branch, ids: f.preorder(root.OwnerID, root.ID)}}
	}

	placements := lo.Map(f.children[root.key()], func(child int, _ int) placement {
		return placement{branch: BranchExtension, ids: f.preorder(root.OwnerID, child)}
	})
	return append(placements, placement{branch: BranchExtension, ids: []int{root.ID}})
}

// forksAtRoot reports whether root has several children and at least one of them
// continues. Deeper forks stay inside a single pre-order chain.
func (f forest) forksAtRoot(root Node) bool {
	children := f.children[root.key()]
	if len(children) < 2 {
		return false
	}
	return lo.SomeBy(children, func(child int) bool {
		return len(f.children[nodeKey{owner: root.OwnerID, id: child}]) > 0
	})
}

func (f forest) preorder(owner int, start int) []int {
	ordered := make([]int, 0)
	stack := ds.NewStack(start)
	for !stack.IsEmpty() {
		id := stack.Pop()
		ordered = append(ordered, id)
		stack.PushReversed(f.children[nodeKey{owner: owner, id: id}])
	}
	return ordered
}

func (t Tree) ensure(owner string) Branches {
	branches, ok := t[owner]
	if !ok {
		branches = Branches{}
		t[owner] = branches
	}
	return branches
}

func (b Branches) ensure(key string) {
	if _, ok := b[key]; !ok {
		b[key] = []Cluster{}
	}
}

func idStrings(ids []int) []string {
	return lo.Map(ids, func(id int, _ int) string { return strconv.Itoa(id) })
}
