package events

// Tree aggregate events. Trees have their own lifecycle and version stream,
// independent of the proof document they reference.

// TreeCreated is raised when a new derivation tree is created
type TreeCreated struct {
	BaseEvent
	TreeID  string `json:"tree_id"`
	ProofID string `json:"proof_id"`
}

// NewTreeCreated creates a TreeCreated event
func NewTreeCreated(treeID, proofID string, version int) TreeCreated {
	return TreeCreated{
		BaseEvent: newBaseEvent(treeID, "tree.created", version),
		TreeID:    treeID,
		ProofID:   proofID,
	}
}

// TreeMoved is raised when a tree's workspace position changes
type TreeMoved struct {
	BaseEvent
	TreeID string  `json:"tree_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// NewTreeMoved creates a TreeMoved event
func NewTreeMoved(treeID string, x, y float64, version int) TreeMoved {
	return TreeMoved{
		BaseEvent: newBaseEvent(treeID, "tree.moved", version),
		TreeID:    treeID,
		X:         x,
		Y:         y,
	}
}

// TreeNodeAdded is raised when a node is added to a tree
type TreeNodeAdded struct {
	BaseEvent
	TreeID     string `json:"tree_id"`
	NodeID     string `json:"node_id"`
	ArgumentID string `json:"argument_id"`
}

// NewTreeNodeAdded creates a TreeNodeAdded event
func NewTreeNodeAdded(treeID, nodeID, argumentID string, version int) TreeNodeAdded {
	return TreeNodeAdded{
		BaseEvent:  newBaseEvent(treeID, "tree.node_added", version),
		TreeID:     treeID,
		NodeID:     nodeID,
		ArgumentID: argumentID,
	}
}

// TreeNodeReparented is raised when a node's parent changes
type TreeNodeReparented struct {
	BaseEvent
	TreeID   string `json:"tree_id"`
	NodeID   string `json:"node_id"`
	ParentID string `json:"parent_id,omitempty"`
}

// NewTreeNodeReparented creates a TreeNodeReparented event
func NewTreeNodeReparented(treeID, nodeID, parentID string, version int) TreeNodeReparented {
	return TreeNodeReparented{
		BaseEvent: newBaseEvent(treeID, "tree.node_reparented", version),
		TreeID:    treeID,
		NodeID:    nodeID,
		ParentID:  parentID,
	}
}

// TreeNodeRemoved is raised when a node is removed from a tree
type TreeNodeRemoved struct {
	BaseEvent
	TreeID string `json:"tree_id"`
	NodeID string `json:"node_id"`
}

// NewTreeNodeRemoved creates a TreeNodeRemoved event
func NewTreeNodeRemoved(treeID, nodeID string, version int) TreeNodeRemoved {
	return TreeNodeRemoved{
		BaseEvent: newBaseEvent(treeID, "tree.node_removed", version),
		TreeID:    treeID,
		NodeID:    nodeID,
	}
}
