package aggregates

import (
	"fmt"

	"proofgraph/domain/config"
	"proofgraph/domain/core/entities"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/domain/events"
	pkgerrors "proofgraph/pkg/errors"
)

// ReconstructProof rebuilds a proof aggregate from externally supplied
// entities, the bulk-load path used after deserialization. The input is
// treated as adversarial: usage counts and argument reference registries are
// re-derived from raw statement membership and argument wiring, never read
// from the input, and every invariant is re-checked. Any violation fails the
// whole reconstruction; no partially populated aggregate is ever returned.
func ReconstructProof(
	id valueobjects.ProofID,
	version int,
	statements []*entities.Statement,
	orderedSets []*entities.OrderedSet,
	arguments []*entities.AtomicArgument,
) (*Proof, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("proof ID cannot be empty")
	}
	if version < 1 {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("version must be at least 1, got %d", version))
	}

	p := &Proof{
		id:              id,
		statements:      make(map[string]*entities.Statement, len(statements)),
		orderedSets:     make(map[string]*entities.OrderedSet, len(orderedSets)),
		atomicArguments: make(map[string]*entities.AtomicArgument, len(arguments)),
		version:         version,
		cfg:             config.DefaultDomainConfig(),
		events:          []events.DomainEvent{},
	}

	for _, stmt := range statements {
		if stmt == nil {
			return nil, pkgerrors.NewValidationError("statement cannot be nil")
		}
		key := stmt.ID().String()
		if _, dup := p.statements[key]; dup {
			return nil, pkgerrors.NewConsistencyError(fmt.Sprintf("duplicate statement ID %q", key))
		}
		p.statements[key] = stmt
	}

	for _, set := range orderedSets {
		if set == nil {
			return nil, pkgerrors.NewValidationError("ordered set cannot be nil")
		}
		key := set.ID().String()
		if _, dup := p.orderedSets[key]; dup {
			return nil, pkgerrors.NewConsistencyError(fmt.Sprintf("duplicate ordered set ID %q", key))
		}
		if set.TotalReferenceCount() != 0 {
			return nil, pkgerrors.NewConsistencyError(
				fmt.Sprintf("ordered set %q carries pre-populated argument references; they are derived state", key))
		}
		p.orderedSets[key] = set
	}

	for _, arg := range arguments {
		if arg == nil {
			return nil, pkgerrors.NewValidationError("atomic argument cannot be nil")
		}
		key := arg.ID().String()
		if _, dup := p.atomicArguments[key]; dup {
			return nil, pkgerrors.NewConsistencyError(fmt.Sprintf("duplicate argument ID %q", key))
		}
		p.atomicArguments[key] = arg
	}

	// Derive usage counts from raw set membership. Statements arrive with a
	// zero count from ReconstructStatement.
	for _, set := range p.orderedSets {
		for _, sid := range set.StatementIDs() {
			stmt, ok := p.statements[sid.String()]
			if !ok {
				return nil, pkgerrors.NewReferenceError("statement", sid.String())
			}
			stmt.IncrementUsage()
		}
	}

	// Derive set reference registries from argument wiring.
	for _, arg := range p.atomicArguments {
		if psID := arg.PremiseSetID(); psID != nil {
			set, ok := p.orderedSets[psID.String()]
			if !ok {
				return nil, pkgerrors.NewReferenceError("ordered set", psID.String())
			}
			if err := set.AddArgumentReference(arg.ID(), entities.RolePremise); err != nil {
				return nil, err
			}
		}
		if csID := arg.ConclusionSetID(); csID != nil {
			set, ok := p.orderedSets[csID.String()]
			if !ok {
				return nil, pkgerrors.NewReferenceError("ordered set", csID.String())
			}
			if err := set.AddArgumentReference(arg.ID(), entities.RoleConclusion); err != nil {
				return nil, err
			}
		}
	}

	if err := p.Validate(); err != nil {
		return nil, pkgerrors.Wrap(err, fmt.Sprintf("reconstruct proof %q", id.String()))
	}

	return p, nil
}
