package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// The identifier value objects below are immutable and have no identity
// beyond their value. Every cross-entity reference in the proof graph is
// expressed through one of these ids, never through a direct pointer, so
// that "two arguments share a set" means "two ids address the same entry".

// ProofID identifies a proof document aggregate
type ProofID struct {
	value string
}

// NewProofID creates a new random ProofID
func NewProofID() ProofID {
	return ProofID{value: uuid.New().String()}
}

// NewProofIDFromString creates a ProofID from an existing string
func NewProofIDFromString(id string) (ProofID, error) {
	if err := validateID(id, "proof ID"); err != nil {
		return ProofID{}, err
	}
	return ProofID{value: id}, nil
}

func (id ProofID) String() string            { return id.value }
func (id ProofID) Equals(other ProofID) bool { return id.value == other.value }
func (id ProofID) IsZero() bool              { return id.value == "" }

// StatementID identifies a statement
type StatementID struct {
	value string
}

// NewStatementID creates a new random StatementID
func NewStatementID() StatementID {
	return StatementID{value: uuid.New().String()}
}

// NewStatementIDFromString creates a StatementID from an existing string
func NewStatementIDFromString(id string) (StatementID, error) {
	if err := validateID(id, "statement ID"); err != nil {
		return StatementID{}, err
	}
	return StatementID{value: id}, nil
}

func (id StatementID) String() string                { return id.value }
func (id StatementID) Equals(other StatementID) bool { return id.value == other.value }
func (id StatementID) IsZero() bool                  { return id.value == "" }

// OrderedSetID identifies an ordered statement collection
type OrderedSetID struct {
	value string
}

// NewOrderedSetID creates a new random OrderedSetID
func NewOrderedSetID() OrderedSetID {
	return OrderedSetID{value: uuid.New().String()}
}

// NewOrderedSetIDFromString creates an OrderedSetID from an existing string
func NewOrderedSetIDFromString(id string) (OrderedSetID, error) {
	if err := validateID(id, "ordered set ID"); err != nil {
		return OrderedSetID{}, err
	}
	return OrderedSetID{value: id}, nil
}

func (id OrderedSetID) String() string                 { return id.value }
func (id OrderedSetID) Equals(other OrderedSetID) bool { return id.value == other.value }
func (id OrderedSetID) IsZero() bool                   { return id.value == "" }

// ArgumentID identifies an atomic argument
type ArgumentID struct {
	value string
}

// NewArgumentID creates a new random ArgumentID
func NewArgumentID() ArgumentID {
	return ArgumentID{value: uuid.New().String()}
}

// NewArgumentIDFromString creates an ArgumentID from an existing string
func NewArgumentIDFromString(id string) (ArgumentID, error) {
	if err := validateID(id, "argument ID"); err != nil {
		return ArgumentID{}, err
	}
	return ArgumentID{value: id}, nil
}

func (id ArgumentID) String() string               { return id.value }
func (id ArgumentID) Equals(other ArgumentID) bool { return id.value == other.value }
func (id ArgumentID) IsZero() bool                 { return id.value == "" }

// TreeID identifies a derivation tree
type TreeID struct {
	value string
}

// NewTreeID creates a new random TreeID
func NewTreeID() TreeID {
	return TreeID{value: uuid.New().String()}
}

// NewTreeIDFromString creates a TreeID from an existing string
func NewTreeIDFromString(id string) (TreeID, error) {
	if err := validateID(id, "tree ID"); err != nil {
		return TreeID{}, err
	}
	return TreeID{value: id}, nil
}

func (id TreeID) String() string           { return id.value }
func (id TreeID) Equals(other TreeID) bool { return id.value == other.value }
func (id TreeID) IsZero() bool             { return id.value == "" }

// TreeNodeID identifies a node within a derivation tree
type TreeNodeID struct {
	value string
}

// NewTreeNodeID creates a new random TreeNodeID
func NewTreeNodeID() TreeNodeID {
	return TreeNodeID{value: uuid.New().String()}
}

// NewTreeNodeIDFromString creates a TreeNodeID from an existing string
func NewTreeNodeIDFromString(id string) (TreeNodeID, error) {
	if err := validateID(id, "tree node ID"); err != nil {
		return TreeNodeID{}, err
	}
	return TreeNodeID{value: id}, nil
}

func (id TreeNodeID) String() string               { return id.value }
func (id TreeNodeID) Equals(other TreeNodeID) bool { return id.value == other.value }
func (id TreeNodeID) IsZero() bool                 { return id.value == "" }

func validateID(id, name string) error {
	if id == "" {
		return errors.New(name + " cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(name + " must be a valid UUID")
	}
	return nil
}
