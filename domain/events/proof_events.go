package events

// Proof aggregate events. Each is emitted by exactly one successful
// mutation, after the aggregate's version has been bumped; Version carries
// the new aggregate version.

// ProofCreated is raised when a new proof document is created
type ProofCreated struct {
	BaseEvent
	ProofID string `json:"proof_id"`
}

// NewProofCreated creates a ProofCreated event
func NewProofCreated(proofID string, version int) ProofCreated {
	return ProofCreated{
		BaseEvent: newBaseEvent(proofID, "proof.created", version),
		ProofID:   proofID,
	}
}

// StatementAdded is raised when a statement is added to a proof
type StatementAdded struct {
	BaseEvent
	StatementID string `json:"statement_id"`
	Content     string `json:"content"`
}

// NewStatementAdded creates a StatementAdded event
func NewStatementAdded(proofID, statementID, content string, version int) StatementAdded {
	return StatementAdded{
		BaseEvent:   newBaseEvent(proofID, "proof.statement_added", version),
		StatementID: statementID,
		Content:     content,
	}
}

// StatementUpdated is raised when a statement's content changes
type StatementUpdated struct {
	BaseEvent
	StatementID string `json:"statement_id"`
	OldContent  string `json:"old_content"`
	NewContent  string `json:"new_content"`
}

// NewStatementUpdated creates a StatementUpdated event
func NewStatementUpdated(proofID, statementID, oldContent, newContent string, version int) StatementUpdated {
	return StatementUpdated{
		BaseEvent:   newBaseEvent(proofID, "proof.statement_updated", version),
		StatementID: statementID,
		OldContent:  oldContent,
		NewContent:  newContent,
	}
}

// StatementDeleted is raised when an unused statement is removed
type StatementDeleted struct {
	BaseEvent
	StatementID string `json:"statement_id"`
}

// NewStatementDeleted creates a StatementDeleted event
func NewStatementDeleted(proofID, statementID string, version int) StatementDeleted {
	return StatementDeleted{
		BaseEvent:   newBaseEvent(proofID, "proof.statement_deleted", version),
		StatementID: statementID,
	}
}

// OrderedSetCreated is raised when a new ordered set is created
type OrderedSetCreated struct {
	BaseEvent
	OrderedSetID string   `json:"ordered_set_id"`
	StatementIDs []string `json:"statement_ids"`
}

// NewOrderedSetCreated creates an OrderedSetCreated event
func NewOrderedSetCreated(proofID, orderedSetID string, statementIDs []string, version int) OrderedSetCreated {
	return OrderedSetCreated{
		BaseEvent:    newBaseEvent(proofID, "proof.ordered_set_created", version),
		OrderedSetID: orderedSetID,
		StatementIDs: statementIDs,
	}
}

// OrderedSetRemoved is raised when an unreferenced ordered set is collected
type OrderedSetRemoved struct {
	BaseEvent
	OrderedSetID string `json:"ordered_set_id"`
}

// NewOrderedSetRemoved creates an OrderedSetRemoved event
func NewOrderedSetRemoved(proofID, orderedSetID string, version int) OrderedSetRemoved {
	return OrderedSetRemoved{
		BaseEvent:    newBaseEvent(proofID, "proof.ordered_set_removed", version),
		OrderedSetID: orderedSetID,
	}
}

// OrderedSetChanged is raised when a set's statement membership changes
type OrderedSetChanged struct {
	BaseEvent
	OrderedSetID string   `json:"ordered_set_id"`
	StatementIDs []string `json:"statement_ids"`
}

// NewOrderedSetChanged creates an OrderedSetChanged event
func NewOrderedSetChanged(proofID, orderedSetID string, statementIDs []string, version int) OrderedSetChanged {
	return OrderedSetChanged{
		BaseEvent:    newBaseEvent(proofID, "proof.ordered_set_changed", version),
		OrderedSetID: orderedSetID,
		StatementIDs: statementIDs,
	}
}

// ArgumentCreated is raised when an atomic argument is created
type ArgumentCreated struct {
	BaseEvent
	ArgumentID      string `json:"argument_id"`
	PremiseSetID    string `json:"premise_set_id,omitempty"`
	ConclusionSetID string `json:"conclusion_set_id,omitempty"`
}

// NewArgumentCreated creates an ArgumentCreated event
func NewArgumentCreated(proofID, argumentID, premiseSetID, conclusionSetID string, version int) ArgumentCreated {
	return ArgumentCreated{
		BaseEvent:       newBaseEvent(proofID, "proof.argument_created", version),
		ArgumentID:      argumentID,
		PremiseSetID:    premiseSetID,
		ConclusionSetID: conclusionSetID,
	}
}

// ArgumentUpdated is raised when an argument's wiring or labels change
type ArgumentUpdated struct {
	BaseEvent
	ArgumentID      string `json:"argument_id"`
	PremiseSetID    string `json:"premise_set_id,omitempty"`
	ConclusionSetID string `json:"conclusion_set_id,omitempty"`
}

// NewArgumentUpdated creates an ArgumentUpdated event
func NewArgumentUpdated(proofID, argumentID, premiseSetID, conclusionSetID string, version int) ArgumentUpdated {
	return ArgumentUpdated{
		BaseEvent:       newBaseEvent(proofID, "proof.argument_updated", version),
		ArgumentID:      argumentID,
		PremiseSetID:    premiseSetID,
		ConclusionSetID: conclusionSetID,
	}
}

// ArgumentDeleted is raised when an atomic argument is removed
type ArgumentDeleted struct {
	BaseEvent
	ArgumentID string `json:"argument_id"`
}

// NewArgumentDeleted creates an ArgumentDeleted event
func NewArgumentDeleted(proofID, argumentID string, version int) ArgumentDeleted {
	return ArgumentDeleted{
		BaseEvent:  newBaseEvent(proofID, "proof.argument_deleted", version),
		ArgumentID: argumentID,
	}
}

// StatementMoved is raised when a statement moves between ordered sets
type StatementMoved struct {
	BaseEvent
	StatementID string `json:"statement_id"`
	FromSetID   string `json:"from_set_id"`
	ToSetID     string `json:"to_set_id"`
}

// NewStatementMoved creates a StatementMoved event
func NewStatementMoved(proofID, statementID, fromSetID, toSetID string, version int) StatementMoved {
	return StatementMoved{
		BaseEvent:   newBaseEvent(proofID, "proof.statement_moved", version),
		StatementID: statementID,
		FromSetID:   fromSetID,
		ToSetID:     toSetID,
	}
}

// BranchCreated is raised when a new argument is branched off an existing one
type BranchCreated struct {
	BaseEvent
	SourceArgumentID string `json:"source_argument_id"`
	BranchArgumentID string `json:"branch_argument_id"`
	SeedStatementID  string `json:"seed_statement_id"`
}

// NewBranchCreated creates a BranchCreated event
func NewBranchCreated(proofID, sourceArgumentID, branchArgumentID, seedStatementID string, version int) BranchCreated {
	return BranchCreated{
		BaseEvent:        newBaseEvent(proofID, "proof.branch_created", version),
		SourceArgumentID: sourceArgumentID,
		BranchArgumentID: branchArgumentID,
		SeedStatementID:  seedStatementID,
	}
}
