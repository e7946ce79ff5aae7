package entities

import (
	"fmt"
	"time"

	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
)

// ReferenceRole describes how an atomic argument uses an ordered set
type ReferenceRole string

const (
	RolePremise    ReferenceRole = "premise"
	RoleConclusion ReferenceRole = "conclusion"
)

// IsValid reports whether the role is one of the known values
func (r ReferenceRole) IsValid() bool {
	return r == RolePremise || r == RoleConclusion
}

// ArgumentReference records one atomic argument using this set in one role
type ArgumentReference struct {
	ArgumentID valueobjects.ArgumentID
	Role       ReferenceRole
}

// OrderedSet is a shared, order-preserving, duplicate-free sequence of
// statement references. Its lifetime is not owned by any single argument:
// every argument that names this set's id as premise or conclusion holds a
// stake in it, and a set nobody references is removable garbage. Two
// arguments are "connected" exactly when one's conclusion id and the other's
// premise id are this same set.
type OrderedSet struct {
	id           valueobjects.OrderedSetID
	statementIDs []valueobjects.StatementID
	references   []ArgumentReference
	createdAt    time.Time
	modifiedAt   time.Time
}

// NewOrderedSet creates an ordered set from the given statement ids,
// deduplicating while preserving first-occurrence order. The caller (the
// Proof aggregate) is responsible for checking that every id resolves.
func NewOrderedSet(statementIDs []valueobjects.StatementID) (*OrderedSet, error) {
	deduped := dedupeStatementIDs(statementIDs)

	now := time.Now()
	return &OrderedSet{
		id:           valueobjects.NewOrderedSetID(),
		statementIDs: deduped,
		references:   []ArgumentReference{},
		createdAt:    now,
		modifiedAt:   now,
	}, nil
}

// ReconstructOrderedSet recreates an ordered set from stored data. Argument
// references are intentionally not an input: the reconstruction path
// re-derives them from argument wiring.
func ReconstructOrderedSet(
	id valueobjects.OrderedSetID,
	statementIDs []valueobjects.StatementID,
	createdAt, modifiedAt time.Time,
) (*OrderedSet, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("ordered set ID cannot be empty")
	}
	for _, sid := range statementIDs {
		if sid.IsZero() {
			return nil, pkgerrors.NewValidationError("ordered set contains an empty statement ID")
		}
	}

	deduped := dedupeStatementIDs(statementIDs)
	if len(deduped) != len(statementIDs) {
		return nil, pkgerrors.NewConsistencyError(
			fmt.Sprintf("ordered set %q contains duplicate statement IDs", id.String()))
	}

	return &OrderedSet{
		id:           id,
		statementIDs: deduped,
		references:   []ArgumentReference{},
		createdAt:    createdAt,
		modifiedAt:   modifiedAt,
	}, nil
}

// ID returns the set's unique identifier
func (o *OrderedSet) ID() valueobjects.OrderedSetID {
	return o.id
}

// StatementIDs returns the ordered statement references
func (o *OrderedSet) StatementIDs() []valueobjects.StatementID {
	ids := make([]valueobjects.StatementID, len(o.statementIDs))
	copy(ids, o.statementIDs)
	return ids
}

// Size returns the number of statements in the set
func (o *OrderedSet) Size() int {
	return len(o.statementIDs)
}

// IsEmpty reports whether the set holds no statements
func (o *OrderedSet) IsEmpty() bool {
	return len(o.statementIDs) == 0
}

// Contains reports whether the set references the given statement
func (o *OrderedSet) Contains(id valueobjects.StatementID) bool {
	return o.indexOf(id) >= 0
}

// IndexOf returns the position of the statement, or -1 when absent
func (o *OrderedSet) IndexOf(id valueobjects.StatementID) int {
	return o.indexOf(id)
}

// StatementAt returns the statement id at the given position
func (o *OrderedSet) StatementAt(index int) (valueobjects.StatementID, error) {
	if index < 0 || index >= len(o.statementIDs) {
		return valueobjects.StatementID{}, pkgerrors.NewValidationError(
			fmt.Sprintf("index %d out of range for ordered set of size %d", index, len(o.statementIDs)))
	}
	return o.statementIDs[index], nil
}

// CreatedAt returns when the set was created
func (o *OrderedSet) CreatedAt() time.Time {
	return o.createdAt
}

// ModifiedAt returns when the set was last modified
func (o *OrderedSet) ModifiedAt() time.Time {
	return o.modifiedAt
}

// AddStatement appends a statement to the set. Adding a statement already
// present is a no-op success, matching set semantics layered over an ordered
// sequence. Returns whether the set changed so the aggregate knows whether
// to adjust usage counts.
func (o *OrderedSet) AddStatement(id valueobjects.StatementID) (bool, error) {
	if id.IsZero() {
		return false, pkgerrors.NewValidationError("statement ID cannot be empty")
	}
	if o.Contains(id) {
		return false, nil
	}

	o.statementIDs = append(o.statementIDs, id)
	o.modifiedAt = time.Now()
	return true, nil
}

// InsertStatementAt inserts a statement at the given position, shifting
// later statements right. Inserting a duplicate is a no-op success.
func (o *OrderedSet) InsertStatementAt(id valueobjects.StatementID, position int) (bool, error) {
	if id.IsZero() {
		return false, pkgerrors.NewValidationError("statement ID cannot be empty")
	}
	if position < 0 || position > len(o.statementIDs) {
		return false, pkgerrors.NewValidationError(
			fmt.Sprintf("position %d out of range for ordered set of size %d", position, len(o.statementIDs)))
	}
	if o.Contains(id) {
		return false, nil
	}

	o.statementIDs = append(o.statementIDs, valueobjects.StatementID{})
	copy(o.statementIDs[position+1:], o.statementIDs[position:])
	o.statementIDs[position] = id
	o.modifiedAt = time.Now()
	return true, nil
}

// RemoveStatement removes a statement from the set, preserving the order of
// the remaining statements.
func (o *OrderedSet) RemoveStatement(id valueobjects.StatementID) error {
	idx := o.indexOf(id)
	if idx < 0 {
		return pkgerrors.NewReferenceError("statement in ordered set", id.String())
	}

	o.statementIDs = append(o.statementIDs[:idx], o.statementIDs[idx+1:]...)
	o.modifiedAt = time.Now()
	return nil
}

// AddArgumentReference registers an atomic argument as using this set in the
// given role.
func (o *OrderedSet) AddArgumentReference(argID valueobjects.ArgumentID, role ReferenceRole) error {
	if argID.IsZero() {
		return pkgerrors.NewValidationError("argument ID cannot be empty")
	}
	if !role.IsValid() {
		return pkgerrors.NewValidationError(fmt.Sprintf("invalid reference role %q", role))
	}
	for _, ref := range o.references {
		if ref.ArgumentID.Equals(argID) && ref.Role == role {
			return pkgerrors.NewConflictError(
				fmt.Sprintf("argument %q already references set %q as %s", argID.String(), o.id.String(), role))
		}
	}

	o.references = append(o.references, ArgumentReference{ArgumentID: argID, Role: role})
	o.modifiedAt = time.Now()
	return nil
}

// RemoveArgumentReference deregisters an atomic argument from this set
func (o *OrderedSet) RemoveArgumentReference(argID valueobjects.ArgumentID, role ReferenceRole) error {
	for i, ref := range o.references {
		if ref.ArgumentID.Equals(argID) && ref.Role == role {
			o.references = append(o.references[:i], o.references[i+1:]...)
			o.modifiedAt = time.Now()
			return nil
		}
	}
	return pkgerrors.NewReferenceError("argument reference on ordered set", argID.String())
}

// TotalReferenceCount returns how many (argument, role) pairs use this set.
// A count of zero marks the set as removable garbage.
func (o *OrderedSet) TotalReferenceCount() int {
	return len(o.references)
}

// References returns all (argument, role) pairs using this set
func (o *OrderedSet) References() []ArgumentReference {
	refs := make([]ArgumentReference, len(o.references))
	copy(refs, o.references)
	return refs
}

// ReferencedByAsPremise returns the arguments using this set as premises
func (o *OrderedSet) ReferencedByAsPremise() []valueobjects.ArgumentID {
	return o.referencedBy(RolePremise)
}

// ReferencedByAsConclusion returns the arguments using this set as conclusions
func (o *OrderedSet) ReferencedByAsConclusion() []valueobjects.ArgumentID {
	return o.referencedBy(RoleConclusion)
}

// IsReferencedBy reports whether the given argument uses this set in the
// given role.
func (o *OrderedSet) IsReferencedBy(argID valueobjects.ArgumentID, role ReferenceRole) bool {
	for _, ref := range o.references {
		if ref.ArgumentID.Equals(argID) && ref.Role == role {
			return true
		}
	}
	return false
}

func (o *OrderedSet) referencedBy(role ReferenceRole) []valueobjects.ArgumentID {
	ids := []valueobjects.ArgumentID{}
	for _, ref := range o.references {
		if ref.Role == role {
			ids = append(ids, ref.ArgumentID)
		}
	}
	return ids
}

func (o *OrderedSet) indexOf(id valueobjects.StatementID) int {
	for i, sid := range o.statementIDs {
		if sid.Equals(id) {
			return i
		}
	}
	return -1
}

func dedupeStatementIDs(ids []valueobjects.StatementID) []valueobjects.StatementID {
	seen := make(map[string]struct{}, len(ids))
	deduped := make([]valueobjects.StatementID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id.String()]; ok {
			continue
		}
		seen[id.String()] = struct{}{}
		deduped = append(deduped, id)
	}
	return deduped
}
