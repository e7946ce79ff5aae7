package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"proofgraph/application/ports"
	"proofgraph/domain/core/aggregates"
	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
)

// treeSnapshot is the stored form of a tree, detached from the aggregate
type treeSnapshot struct {
	proofID  valueobjects.ProofID
	position valueobjects.Position
	props    valueobjects.PhysicalProperties
	nodes    []aggregates.TreeNode
	version  int
}

// TreeRepository provides an in-memory implementation of ports.TreeRepository
type TreeRepository struct {
	mu    sync.RWMutex
	trees map[string]treeSnapshot
}

// NewTreeRepository creates a new in-memory tree repository
func NewTreeRepository() *TreeRepository {
	return &TreeRepository{
		trees: make(map[string]treeSnapshot),
	}
}

var _ ports.TreeRepository = (*TreeRepository)(nil)

// FindByID retrieves a tree by its ID
func (r *TreeRepository) FindByID(ctx context.Context, id valueobjects.TreeID) (*aggregates.Tree, error) {
	r.mu.RLock()
	snap, exists := r.trees[id.String()]
	r.mu.RUnlock()

	if !exists {
		return nil, pkgerrors.NewNotFoundError("tree")
	}
	return r.restore(id, snap)
}

// FindByProofID retrieves all trees for a proof document, ordered by tree id
func (r *TreeRepository) FindByProofID(ctx context.Context, proofID valueobjects.ProofID) ([]*aggregates.Tree, error) {
	r.mu.RLock()
	ids := make([]string, 0)
	for id, snap := range r.trees {
		if snap.proofID.Equals(proofID) {
			ids = append(ids, id)
		}
	}
	r.mu.RUnlock()
	sort.Strings(ids)

	trees := make([]*aggregates.Tree, 0, len(ids))
	for _, raw := range ids {
		id, err := valueobjects.NewTreeIDFromString(raw)
		if err != nil {
			return nil, err
		}
		tree, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// Save persists a tree with optimistic concurrency on the version
func (r *TreeRepository) Save(ctx context.Context, tree *aggregates.Tree) error {
	nodes := make([]aggregates.TreeNode, 0, tree.NodeCount())
	for _, node := range tree.Nodes() {
		nodes = append(nodes, node)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, exists := r.trees[tree.ID().String()]; exists {
		if stored.version >= tree.Version() {
			return pkgerrors.NewConflictError(fmt.Sprintf(
				"tree %q was modified concurrently: stored version %d, saving version %d",
				tree.ID().String(), stored.version, tree.Version()))
		}
	}

	r.trees[tree.ID().String()] = treeSnapshot{
		proofID:  tree.ProofID(),
		position: tree.Position(),
		props:    tree.PhysicalProperties(),
		nodes:    nodes,
		version:  tree.Version(),
	}
	return nil
}

// Delete removes a tree
func (r *TreeRepository) Delete(ctx context.Context, id valueobjects.TreeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.trees[id.String()]; !exists {
		return pkgerrors.NewNotFoundError("tree")
	}
	delete(r.trees, id.String())
	return nil
}

func (r *TreeRepository) restore(id valueobjects.TreeID, snap treeSnapshot) (*aggregates.Tree, error) {
	nodes := make([]aggregates.TreeNode, len(snap.nodes))
	copy(nodes, snap.nodes)

	tree, err := aggregates.ReconstructTree(id, snap.proofID, snap.position, snap.props, nodes, snap.version)
	if err != nil {
		return nil, pkgerrors.Wrap(err, fmt.Sprintf("failed to load tree %q", id.String()))
	}
	return tree, nil
}
