package aggregates

import (
	"fmt"
	"sort"

	"proofgraph/domain/config"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/domain/events"
	pkgerrors "proofgraph/pkg/errors"
)

// TreeNode is one slot in a derivation tree. It names the atomic argument it
// displays through an explicit mapping rather than by id convention, and the
// parent it hangs under; a nil parent marks a root. The parent id is not
// checked against the node map when set, so a node whose parent was removed
// simply becomes a root under the derived rules.
type TreeNode struct {
	ID         valueobjects.TreeNodeID
	ArgumentID valueobjects.ArgumentID
	ParentID   *valueobjects.TreeNodeID
}

// Tree arranges atomic arguments of one proof document into a derivation
// forest. Its lifecycle is independent of the Proof aggregate; it references
// the proof by id only. Node count and root enumeration are derived from the
// node map on every call rather than cached, so there is no second source of
// truth to drift. Cycle-freedom of the parent relation is a property checked
// by the stats service, not enforced here.
type Tree struct {
	id       valueobjects.TreeID
	proofID  valueobjects.ProofID
	position valueobjects.Position
	props    valueobjects.PhysicalProperties
	nodes    map[string]*TreeNode
	version  int
	cfg      *config.DomainConfig
	events   []events.DomainEvent
}

// NewTree creates a new empty tree for the given proof document
func NewTree(proofID valueobjects.ProofID, position valueobjects.Position) (*Tree, error) {
	return NewTreeWithConfig(proofID, position, config.DefaultDomainConfig())
}

// NewTreeWithConfig creates a new empty tree with configuration
func NewTreeWithConfig(
	proofID valueobjects.ProofID,
	position valueobjects.Position,
	cfg *config.DomainConfig,
) (*Tree, error) {
	if proofID.IsZero() {
		return nil, pkgerrors.NewValidationError("proof ID cannot be empty")
	}
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	t := &Tree{
		id:       valueobjects.NewTreeID(),
		proofID:  proofID,
		position: position,
		props:    valueobjects.DefaultPhysicalProperties(),
		nodes:    make(map[string]*TreeNode),
		version:  1,
		cfg:      cfg,
		events:   []events.DomainEvent{},
	}

	t.addEvent(events.NewTreeCreated(t.id.String(), proofID.String(), t.version))
	return t, nil
}

// ReconstructTree recreates a tree from stored data. Node records are taken
// as supplied; parent ids pointing at nodes outside the map are legal and
// resolve to roots.
func ReconstructTree(
	id valueobjects.TreeID,
	proofID valueobjects.ProofID,
	position valueobjects.Position,
	props valueobjects.PhysicalProperties,
	nodes []TreeNode,
	version int,
) (*Tree, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("tree ID cannot be empty")
	}
	if proofID.IsZero() {
		return nil, pkgerrors.NewValidationError("proof ID cannot be empty")
	}
	if version < 1 {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("version must be at least 1, got %d", version))
	}

	t := &Tree{
		id:       id,
		proofID:  proofID,
		position: position,
		props:    props,
		nodes:    make(map[string]*TreeNode, len(nodes)),
		version:  version,
		cfg:      config.DefaultDomainConfig(),
		events:   []events.DomainEvent{},
	}

	for _, node := range nodes {
		if node.ID.IsZero() {
			return nil, pkgerrors.NewValidationError("tree node ID cannot be empty")
		}
		if node.ArgumentID.IsZero() {
			return nil, pkgerrors.NewValidationError(
				fmt.Sprintf("tree node %q has no argument mapping", node.ID.String()))
		}
		key := node.ID.String()
		if _, dup := t.nodes[key]; dup {
			return nil, pkgerrors.NewConsistencyError(fmt.Sprintf("duplicate tree node ID %q", key))
		}
		t.nodes[key] = copyTreeNode(node)
	}

	return t, nil
}

// ID returns the tree's unique identifier
func (t *Tree) ID() valueobjects.TreeID {
	return t.id
}

// ProofID returns the id of the proof document this tree belongs to
func (t *Tree) ProofID() valueobjects.ProofID {
	return t.proofID
}

// Position returns the tree's workspace position
func (t *Tree) Position() valueobjects.Position {
	return t.position
}

// PhysicalProperties returns the tree's layout sizing
func (t *Tree) PhysicalProperties() valueobjects.PhysicalProperties {
	return t.props
}

// Version returns the tree's version for optimistic locking
func (t *Tree) Version() int {
	return t.version
}

// NodeCount returns the number of nodes, derived from the node map
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// GetNode retrieves a node by id
func (t *Tree) GetNode(id valueobjects.TreeNodeID) (TreeNode, error) {
	node, ok := t.nodes[id.String()]
	if !ok {
		return TreeNode{}, pkgerrors.NewReferenceError("tree node", id.String())
	}
	return *copyTreeNode(*node), nil
}

// Nodes returns all nodes keyed by id string
func (t *Tree) Nodes() map[string]TreeNode {
	m := make(map[string]TreeNode, len(t.nodes))
	for k, v := range t.nodes {
		m[k] = *copyTreeNode(*v)
	}
	return m
}

// RootNodeIDs enumerates the roots: nodes whose parent is absent or points
// outside the tree. Derived on every call, sorted for stable output.
func (t *Tree) RootNodeIDs() []valueobjects.TreeNodeID {
	roots := []valueobjects.TreeNodeID{}
	for _, node := range t.nodes {
		if node.ParentID == nil {
			roots = append(roots, node.ID)
			continue
		}
		if _, ok := t.nodes[node.ParentID.String()]; !ok {
			roots = append(roots, node.ID)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].String() < roots[j].String() })
	return roots
}

// ArgumentIDs returns the distinct atomic arguments placed in this tree
func (t *Tree) ArgumentIDs() []valueobjects.ArgumentID {
	seen := make(map[string]struct{}, len(t.nodes))
	ids := []valueobjects.ArgumentID{}
	for _, node := range t.nodes {
		if _, ok := seen[node.ArgumentID.String()]; ok {
			continue
		}
		seen[node.ArgumentID.String()] = struct{}{}
		ids = append(ids, node.ArgumentID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// HasArgument reports whether any node displays the given argument
func (t *Tree) HasArgument(argID valueobjects.ArgumentID) bool {
	for _, node := range t.nodes {
		if node.ArgumentID.Equals(argID) {
			return true
		}
	}
	return false
}

// AddNode inserts a node displaying the given argument, with no parent
// assigned yet: it is transiently a root until parented.
func (t *Tree) AddNode(nodeID valueobjects.TreeNodeID, argumentID valueobjects.ArgumentID) error {
	if nodeID.IsZero() {
		return pkgerrors.NewValidationError("tree node ID cannot be empty")
	}
	if argumentID.IsZero() {
		return pkgerrors.NewValidationError("argument ID cannot be empty")
	}
	if _, exists := t.nodes[nodeID.String()]; exists {
		return pkgerrors.NewConflictError(fmt.Sprintf("tree node %q already exists", nodeID.String()))
	}
	if len(t.nodes) >= t.cfg.MaxNodesPerTree {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("maximum nodes reached: %d", t.cfg.MaxNodesPerTree))
	}

	t.nodes[nodeID.String()] = &TreeNode{ID: nodeID, ArgumentID: argumentID}
	t.bump()
	t.addEvent(events.NewTreeNodeAdded(t.id.String(), nodeID.String(), argumentID.String(), t.version))
	return nil
}

// SetNodeParent reparents a node; nil marks it as a root. The parent id is
// not checked for existence or cycles here; consumers that treat the parent
// relation as authoritative verify acyclicity through the stats service.
func (t *Tree) SetNodeParent(nodeID valueobjects.TreeNodeID, parentID *valueobjects.TreeNodeID) error {
	node, ok := t.nodes[nodeID.String()]
	if !ok {
		return pkgerrors.NewReferenceError("tree node", nodeID.String())
	}
	if parentID != nil && parentID.Equals(nodeID) {
		return pkgerrors.NewValidationError("node cannot be its own parent")
	}

	if parentID == nil {
		node.ParentID = nil
	} else {
		pid := *parentID
		node.ParentID = &pid
	}

	t.bump()
	t.addEvent(events.NewTreeNodeReparented(t.id.String(), nodeID.String(), nodeIDString(parentID), t.version))
	return nil
}

// RemoveNode deletes a node. Children that pointed at it become roots under
// the derived root rule.
func (t *Tree) RemoveNode(nodeID valueobjects.TreeNodeID) error {
	if _, ok := t.nodes[nodeID.String()]; !ok {
		return pkgerrors.NewReferenceError("tree node", nodeID.String())
	}

	delete(t.nodes, nodeID.String())
	t.bump()
	t.addEvent(events.NewTreeNodeRemoved(t.id.String(), nodeID.String(), t.version))
	return nil
}

// MoveTo moves the tree to a new workspace position
func (t *Tree) MoveTo(position valueobjects.Position) {
	if position.Equals(t.position) {
		return
	}

	t.position = position
	t.bump()
	t.addEvent(events.NewTreeMoved(t.id.String(), position.X(), position.Y(), t.version))
}

// Resize replaces the tree's layout sizing
func (t *Tree) Resize(props valueobjects.PhysicalProperties) {
	if props.Equals(t.props) {
		return
	}

	t.props = props
	t.bump()
	t.addEvent(events.NewTreeMoved(t.id.String(), t.position.X(), t.position.Y(), t.version))
}

// GetUncommittedEvents returns all uncommitted domain events
func (t *Tree) GetUncommittedEvents() []events.DomainEvent {
	evts := make([]events.DomainEvent, len(t.events))
	copy(evts, t.events)
	return evts
}

// MarkEventsAsCommitted clears all uncommitted events
func (t *Tree) MarkEventsAsCommitted() {
	t.events = []events.DomainEvent{}
}

func (t *Tree) bump() {
	t.version++
}

func (t *Tree) addEvent(event events.DomainEvent) {
	t.events = append(t.events, event)
}

func copyTreeNode(n TreeNode) *TreeNode {
	c := TreeNode{ID: n.ID, ArgumentID: n.ArgumentID}
	if n.ParentID != nil {
		pid := *n.ParentID
		c.ParentID = &pid
	}
	return &c
}

func nodeIDString(id *valueobjects.TreeNodeID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
