package entities

import (
	"fmt"
	"time"

	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
)

// AtomicArgument is one reasoning step: an optional premise set reference
// and an optional conclusion set reference, plus optional side annotations.
// Both references absent is the "bootstrap" form, a valid placeholder and
// the common starting point of a new proof. The argument holds set ids, not
// the sets themselves; wiring them into shared sets is the Proof aggregate's
// job.
type AtomicArgument struct {
	id              valueobjects.ArgumentID
	premiseSetID    *valueobjects.OrderedSetID
	conclusionSetID *valueobjects.OrderedSetID
	sideLabels      valueobjects.SideLabels
	createdAt       time.Time
	modifiedAt      time.Time
}

// NewAtomicArgument creates an argument referencing the given sets. Either
// reference may be nil.
func NewAtomicArgument(
	premiseSetID, conclusionSetID *valueobjects.OrderedSetID,
	sideLabels valueobjects.SideLabels,
) (*AtomicArgument, error) {
	if premiseSetID != nil && premiseSetID.IsZero() {
		return nil, pkgerrors.NewValidationError("premise set ID cannot be empty; use nil for absent")
	}
	if conclusionSetID != nil && conclusionSetID.IsZero() {
		return nil, pkgerrors.NewValidationError("conclusion set ID cannot be empty; use nil for absent")
	}

	now := time.Now()
	return &AtomicArgument{
		id:              valueobjects.NewArgumentID(),
		premiseSetID:    copySetID(premiseSetID),
		conclusionSetID: copySetID(conclusionSetID),
		sideLabels:      sideLabels,
		createdAt:       now,
		modifiedAt:      now,
	}, nil
}

// NewBootstrapArgument creates the empty placeholder step
func NewBootstrapArgument() *AtomicArgument {
	arg, _ := NewAtomicArgument(nil, nil, valueobjects.EmptySideLabels())
	return arg
}

// ReconstructAtomicArgument recreates an argument from stored data. Inputs
// that are well-typed currently always succeed, but the constructor stays
// fallible so stricter checks can be added without breaking callers.
func ReconstructAtomicArgument(
	id valueobjects.ArgumentID,
	premiseSetID, conclusionSetID *valueobjects.OrderedSetID,
	sideLabels valueobjects.SideLabels,
	createdAt, modifiedAt time.Time,
) (*AtomicArgument, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("argument ID cannot be empty")
	}
	if premiseSetID != nil && premiseSetID.IsZero() {
		return nil, pkgerrors.NewValidationError("premise set ID cannot be empty; use nil for absent")
	}
	if conclusionSetID != nil && conclusionSetID.IsZero() {
		return nil, pkgerrors.NewValidationError("conclusion set ID cannot be empty; use nil for absent")
	}

	return &AtomicArgument{
		id:              id,
		premiseSetID:    copySetID(premiseSetID),
		conclusionSetID: copySetID(conclusionSetID),
		sideLabels:      sideLabels,
		createdAt:       createdAt,
		modifiedAt:      modifiedAt,
	}, nil
}

// ID returns the argument's unique identifier
func (a *AtomicArgument) ID() valueobjects.ArgumentID {
	return a.id
}

// PremiseSetID returns the premise set reference, nil when absent
func (a *AtomicArgument) PremiseSetID() *valueobjects.OrderedSetID {
	return copySetID(a.premiseSetID)
}

// ConclusionSetID returns the conclusion set reference, nil when absent
func (a *AtomicArgument) ConclusionSetID() *valueobjects.OrderedSetID {
	return copySetID(a.conclusionSetID)
}

// HasPremiseSet reports whether a premise set is wired
func (a *AtomicArgument) HasPremiseSet() bool {
	return a.premiseSetID != nil
}

// HasConclusionSet reports whether a conclusion set is wired
func (a *AtomicArgument) HasConclusionSet() bool {
	return a.conclusionSetID != nil
}

// IsBootstrap reports whether both references are absent
func (a *AtomicArgument) IsBootstrap() bool {
	return a.premiseSetID == nil && a.conclusionSetID == nil
}

// IsComplete reports whether both references are wired
func (a *AtomicArgument) IsComplete() bool {
	return a.premiseSetID != nil && a.conclusionSetID != nil
}

// SideLabels returns the argument's side annotations
func (a *AtomicArgument) SideLabels() valueobjects.SideLabels {
	return a.sideLabels
}

// CreatedAt returns when the argument was created
func (a *AtomicArgument) CreatedAt() time.Time {
	return a.createdAt
}

// ModifiedAt returns when the argument was last modified
func (a *AtomicArgument) ModifiedAt() time.Time {
	return a.modifiedAt
}

// UpdateSideLabels replaces the side annotations
func (a *AtomicArgument) UpdateSideLabels(labels valueobjects.SideLabels) {
	if labels.Equals(a.sideLabels) {
		return
	}
	a.sideLabels = labels
	a.modifiedAt = time.Now()
}

// SetPremiseSet rewires the premise reference. Called by the Proof
// aggregate, which keeps the set's argument references in step.
func (a *AtomicArgument) SetPremiseSet(setID *valueobjects.OrderedSetID) {
	a.premiseSetID = copySetID(setID)
	a.modifiedAt = time.Now()
}

// SetConclusionSet rewires the conclusion reference. Called by the Proof
// aggregate, which keeps the set's argument references in step.
func (a *AtomicArgument) SetConclusionSet(setID *valueobjects.OrderedSetID) {
	a.conclusionSetID = copySetID(setID)
	a.modifiedAt = time.Now()
}

// CreateBranchFromConclusion derives a new bootstrap argument seeded from
// one statement of this argument's conclusion set, as selected by the user.
// The resolved set must be this argument's conclusion set; the aggregate
// wires the seed into a fresh premise set for the branch.
func (a *AtomicArgument) CreateBranchFromConclusion(
	conclusionSet *OrderedSet, index int,
) (*AtomicArgument, valueobjects.StatementID, error) {
	if a.conclusionSetID == nil {
		return nil, valueobjects.StatementID{}, pkgerrors.NewValidationError(
			"cannot branch from an argument with no conclusion set")
	}
	if conclusionSet == nil || !conclusionSet.ID().Equals(*a.conclusionSetID) {
		return nil, valueobjects.StatementID{}, pkgerrors.NewConsistencyError(
			fmt.Sprintf("resolved set does not match conclusion set %q", a.conclusionSetID.String()))
	}

	seed, err := conclusionSet.StatementAt(index)
	if err != nil {
		return nil, valueobjects.StatementID{}, err
	}

	return NewBootstrapArgument(), seed, nil
}

// CreateBranchToPremise derives a new bootstrap argument seeded from one
// statement of this argument's premise set. The branch becomes the step
// that derives the selected premise; the aggregate wires the seed into a
// fresh conclusion set for it.
func (a *AtomicArgument) CreateBranchToPremise(
	premiseSet *OrderedSet, index int,
) (*AtomicArgument, valueobjects.StatementID, error) {
	if a.premiseSetID == nil {
		return nil, valueobjects.StatementID{}, pkgerrors.NewValidationError(
			"cannot branch from an argument with no premise set")
	}
	if premiseSet == nil || !premiseSet.ID().Equals(*a.premiseSetID) {
		return nil, valueobjects.StatementID{}, pkgerrors.NewConsistencyError(
			fmt.Sprintf("resolved set does not match premise set %q", a.premiseSetID.String()))
	}

	seed, err := premiseSet.StatementAt(index)
	if err != nil {
		return nil, valueobjects.StatementID{}, err
	}

	return NewBootstrapArgument(), seed, nil
}

func copySetID(id *valueobjects.OrderedSetID) *valueobjects.OrderedSetID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
