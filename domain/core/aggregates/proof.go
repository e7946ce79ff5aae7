package aggregates

import (
	"fmt"

	"proofgraph/domain/config"
	"proofgraph/domain/core/entities"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/domain/events"
	pkgerrors "proofgraph/pkg/errors"
)

// Proof is the aggregate root for one proof document. It owns every
// statement, ordered set and atomic argument of the document and is the only
// code allowed to mutate them, because the consistency rules it protects are
// graph-wide: no dangling references, usage counts equal to ordered-set
// membership, and set reference registries that exactly mirror argument
// wiring. Mutations validate fully before writing, so a failed operation
// leaves the aggregate untouched.
type Proof struct {
	id              valueobjects.ProofID
	statements      map[string]*entities.Statement
	orderedSets     map[string]*entities.OrderedSet
	atomicArguments map[string]*entities.AtomicArgument
	version         int
	cfg             *config.DomainConfig
	events          []events.DomainEvent
}

// NewProof creates a new empty proof document at version 1
func NewProof() *Proof {
	return NewProofWithConfig(config.DefaultDomainConfig())
}

// NewProofWithConfig creates a new empty proof document with configuration
func NewProofWithConfig(cfg *config.DomainConfig) *Proof {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	p := &Proof{
		id:              valueobjects.NewProofID(),
		statements:      make(map[string]*entities.Statement),
		orderedSets:     make(map[string]*entities.OrderedSet),
		atomicArguments: make(map[string]*entities.AtomicArgument),
		version:         1,
		cfg:             cfg,
		events:          []events.DomainEvent{},
	}

	p.addEvent(events.NewProofCreated(p.id.String(), p.version))
	return p
}

// ID returns the proof's unique identifier
func (p *Proof) ID() valueobjects.ProofID {
	return p.id
}

// Version returns the aggregate version, bumped by exactly 1 per successful
// mutation. The repository uses it for optimistic concurrency.
func (p *Proof) Version() int {
	return p.version
}

// StatementCount returns the number of statements
func (p *Proof) StatementCount() int {
	return len(p.statements)
}

// OrderedSetCount returns the number of ordered sets
func (p *Proof) OrderedSetCount() int {
	return len(p.orderedSets)
}

// ArgumentCount returns the number of atomic arguments
func (p *Proof) ArgumentCount() int {
	return len(p.atomicArguments)
}

// GetStatement retrieves a statement by id
func (p *Proof) GetStatement(id valueobjects.StatementID) (*entities.Statement, error) {
	stmt, ok := p.statements[id.String()]
	if !ok {
		return nil, pkgerrors.NewReferenceError("statement", id.String())
	}
	return stmt, nil
}

// GetOrderedSet retrieves an ordered set by id
func (p *Proof) GetOrderedSet(id valueobjects.OrderedSetID) (*entities.OrderedSet, error) {
	set, ok := p.orderedSets[id.String()]
	if !ok {
		return nil, pkgerrors.NewReferenceError("ordered set", id.String())
	}
	return set, nil
}

// GetArgument retrieves an atomic argument by id
func (p *Proof) GetArgument(id valueobjects.ArgumentID) (*entities.AtomicArgument, error) {
	arg, ok := p.atomicArguments[id.String()]
	if !ok {
		return nil, pkgerrors.NewReferenceError("atomic argument", id.String())
	}
	return arg, nil
}

// Statements returns all statements keyed by id string
func (p *Proof) Statements() map[string]*entities.Statement {
	m := make(map[string]*entities.Statement, len(p.statements))
	for k, v := range p.statements {
		m[k] = v
	}
	return m
}

// OrderedSets returns all ordered sets keyed by id string
func (p *Proof) OrderedSets() map[string]*entities.OrderedSet {
	m := make(map[string]*entities.OrderedSet, len(p.orderedSets))
	for k, v := range p.orderedSets {
		m[k] = v
	}
	return m
}

// Arguments returns all atomic arguments keyed by id string
func (p *Proof) Arguments() map[string]*entities.AtomicArgument {
	m := make(map[string]*entities.AtomicArgument, len(p.atomicArguments))
	for k, v := range p.atomicArguments {
		m[k] = v
	}
	return m
}

// AddStatement creates a new statement from the given text and returns its
// id. The statement starts unused; usage is driven by ordered-set
// membership, not creation.
func (p *Proof) AddStatement(content string) (valueobjects.StatementID, error) {
	if len(p.statements) >= p.cfg.MaxStatementsPerProof {
		return valueobjects.StatementID{}, pkgerrors.NewValidationError(
			fmt.Sprintf("maximum statements reached: %d", p.cfg.MaxStatementsPerProof))
	}

	sc, err := valueobjects.NewStatementContentWithConfig(content, p.cfg)
	if err != nil {
		return valueobjects.StatementID{}, err
	}

	stmt, err := entities.NewStatement(sc)
	if err != nil {
		return valueobjects.StatementID{}, err
	}

	p.statements[stmt.ID().String()] = stmt
	p.bump()
	p.addEvent(events.NewStatementAdded(p.id.String(), stmt.ID().String(), sc.Text(), p.version))

	return stmt.ID(), nil
}

// UpdateStatement replaces a statement's text without changing its identity
func (p *Proof) UpdateStatement(id valueobjects.StatementID, content string) error {
	stmt, err := p.GetStatement(id)
	if err != nil {
		return err
	}

	sc, err := valueobjects.NewStatementContentWithConfig(content, p.cfg)
	if err != nil {
		return err
	}

	old := stmt.Content().Text()
	if sc.Text() == old {
		return nil
	}

	if err := stmt.UpdateContent(sc); err != nil {
		return pkgerrors.Wrap(err, fmt.Sprintf("update statement %q", id.String()))
	}

	p.bump()
	p.addEvent(events.NewStatementUpdated(p.id.String(), id.String(), old, sc.Text(), p.version))
	return nil
}

// DeleteStatement removes a statement. A statement still referenced by any
// ordered set cannot be deleted.
func (p *Proof) DeleteStatement(id valueobjects.StatementID) error {
	stmt, err := p.GetStatement(id)
	if err != nil {
		return err
	}

	if stmt.IsUsed() {
		return pkgerrors.NewConsistencyError(
			fmt.Sprintf("statement %q is still referenced by %d ordered set slot(s)",
				id.String(), stmt.UsageCount()))
	}

	delete(p.statements, id.String())
	p.bump()
	p.addEvent(events.NewStatementDeleted(p.id.String(), id.String(), p.version))
	return nil
}

// CreateOrderedSet creates an ordered set from the given statement ids,
// deduplicating while preserving first-occurrence order. Every id must
// resolve to a statement in this proof; each contained statement's usage
// count grows by one.
func (p *Proof) CreateOrderedSet(statementIDs []valueobjects.StatementID) (valueobjects.OrderedSetID, error) {
	if len(p.orderedSets) >= p.cfg.MaxSetsPerProof {
		return valueobjects.OrderedSetID{}, pkgerrors.NewValidationError(
			fmt.Sprintf("maximum ordered sets reached: %d", p.cfg.MaxSetsPerProof))
	}
	if len(statementIDs) > p.cfg.MaxStatementsPerSet {
		return valueobjects.OrderedSetID{}, pkgerrors.NewValidationError(
			fmt.Sprintf("ordered set exceeds maximum size of %d", p.cfg.MaxStatementsPerSet))
	}
	for _, sid := range statementIDs {
		if _, ok := p.statements[sid.String()]; !ok {
			return valueobjects.OrderedSetID{}, pkgerrors.NewReferenceError("statement", sid.String())
		}
	}

	set, err := entities.NewOrderedSet(statementIDs)
	if err != nil {
		return valueobjects.OrderedSetID{}, err
	}

	for _, sid := range set.StatementIDs() {
		p.statements[sid.String()].IncrementUsage()
	}

	p.orderedSets[set.ID().String()] = set
	p.bump()
	p.addEvent(events.NewOrderedSetCreated(p.id.String(), set.ID().String(), statementIDStrings(set.StatementIDs()), p.version))

	return set.ID(), nil
}

// RemoveUnreferencedSet collects an ordered set no argument references,
// releasing the usage it held on its statements.
func (p *Proof) RemoveUnreferencedSet(id valueobjects.OrderedSetID) error {
	set, err := p.GetOrderedSet(id)
	if err != nil {
		return err
	}

	if set.TotalReferenceCount() > 0 {
		return pkgerrors.NewConsistencyError(
			fmt.Sprintf("ordered set %q is still referenced by %d argument(s)",
				id.String(), set.TotalReferenceCount()))
	}

	for _, sid := range set.StatementIDs() {
		if stmt, ok := p.statements[sid.String()]; ok {
			if err := stmt.DecrementUsage(); err != nil {
				return pkgerrors.Wrap(err, fmt.Sprintf("remove ordered set %q", id.String()))
			}
		}
	}

	delete(p.orderedSets, id.String())
	p.bump()
	p.addEvent(events.NewOrderedSetRemoved(p.id.String(), id.String(), p.version))
	return nil
}

// CreateAtomicArgument creates a reasoning step referencing the given sets.
// Either reference may be nil; both nil is the bootstrap form. The argument
// is registered in each referenced set with the correct role.
func (p *Proof) CreateAtomicArgument(
	premiseSetID, conclusionSetID *valueobjects.OrderedSetID,
	sideLabels valueobjects.SideLabels,
) (valueobjects.ArgumentID, error) {
	if len(p.atomicArguments) >= p.cfg.MaxArgumentsPerProof {
		return valueobjects.ArgumentID{}, pkgerrors.NewValidationError(
			fmt.Sprintf("maximum arguments reached: %d", p.cfg.MaxArgumentsPerProof))
	}
	if premiseSetID != nil {
		if _, ok := p.orderedSets[premiseSetID.String()]; !ok {
			return valueobjects.ArgumentID{}, pkgerrors.NewReferenceError("ordered set", premiseSetID.String())
		}
	}
	if conclusionSetID != nil {
		if _, ok := p.orderedSets[conclusionSetID.String()]; !ok {
			return valueobjects.ArgumentID{}, pkgerrors.NewReferenceError("ordered set", conclusionSetID.String())
		}
	}

	arg, err := entities.NewAtomicArgument(premiseSetID, conclusionSetID, sideLabels)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	if err := p.registerArgument(arg); err != nil {
		return valueobjects.ArgumentID{}, err
	}

	p.atomicArguments[arg.ID().String()] = arg
	p.bump()
	p.addEvent(events.NewArgumentCreated(
		p.id.String(), arg.ID().String(), setIDString(premiseSetID), setIDString(conclusionSetID), p.version))

	return arg.ID(), nil
}

// CreateBootstrapArgument creates the empty placeholder step that starts a
// new proof.
func (p *Proof) CreateBootstrapArgument() (valueobjects.ArgumentID, error) {
	return p.CreateAtomicArgument(nil, nil, valueobjects.EmptySideLabels())
}

// UpdateAtomicArgument rewires an argument's premise and conclusion
// references. Old sets are deregistered, new ones registered; a set left
// with no references afterwards stays in place as collectable garbage.
func (p *Proof) UpdateAtomicArgument(
	id valueobjects.ArgumentID,
	premiseSetID, conclusionSetID *valueobjects.OrderedSetID,
) error {
	arg, err := p.GetArgument(id)
	if err != nil {
		return err
	}
	if premiseSetID != nil {
		if _, ok := p.orderedSets[premiseSetID.String()]; !ok {
			return pkgerrors.NewReferenceError("ordered set", premiseSetID.String())
		}
	}
	if conclusionSetID != nil {
		if _, ok := p.orderedSets[conclusionSetID.String()]; !ok {
			return pkgerrors.NewReferenceError("ordered set", conclusionSetID.String())
		}
	}

	p.deregisterArgument(arg)
	arg.SetPremiseSet(premiseSetID)
	arg.SetConclusionSet(conclusionSetID)
	if err := p.registerArgument(arg); err != nil {
		return err
	}

	p.bump()
	p.addEvent(events.NewArgumentUpdated(
		p.id.String(), id.String(), setIDString(premiseSetID), setIDString(conclusionSetID), p.version))
	return nil
}

// UpdateArgumentSideLabels replaces an argument's side annotations
func (p *Proof) UpdateArgumentSideLabels(id valueobjects.ArgumentID, labels valueobjects.SideLabels) error {
	arg, err := p.GetArgument(id)
	if err != nil {
		return err
	}

	if labels.Equals(arg.SideLabels()) {
		return nil
	}

	arg.UpdateSideLabels(labels)
	p.bump()
	p.addEvent(events.NewArgumentUpdated(
		p.id.String(), id.String(),
		setIDString(arg.PremiseSetID()), setIDString(arg.ConclusionSetID()), p.version))
	return nil
}

// DeleteAtomicArgument removes a reasoning step, deregistering it from the
// sets it referenced. Sets left unreferenced stay as collectable garbage.
func (p *Proof) DeleteAtomicArgument(id valueobjects.ArgumentID) error {
	arg, err := p.GetArgument(id)
	if err != nil {
		return err
	}

	p.deregisterArgument(arg)
	delete(p.atomicArguments, id.String())
	p.bump()
	p.addEvent(events.NewArgumentDeleted(p.id.String(), id.String(), p.version))
	return nil
}

// AddStatementToSet appends a statement to an ordered set. Appending a
// statement already present succeeds without changing anything.
func (p *Proof) AddStatementToSet(setID valueobjects.OrderedSetID, stmtID valueobjects.StatementID) error {
	return p.insertStatement(setID, stmtID, -1)
}

// InsertStatementIntoSetAt inserts a statement into an ordered set at the
// given position. Inserting a duplicate succeeds without changing anything.
func (p *Proof) InsertStatementIntoSetAt(
	setID valueobjects.OrderedSetID, stmtID valueobjects.StatementID, position int,
) error {
	if position < 0 {
		return pkgerrors.NewValidationError(fmt.Sprintf("position cannot be negative: %d", position))
	}
	return p.insertStatement(setID, stmtID, position)
}

// RemoveStatementFromSet removes a statement from an ordered set, releasing
// one usage.
func (p *Proof) RemoveStatementFromSet(setID valueobjects.OrderedSetID, stmtID valueobjects.StatementID) error {
	set, err := p.GetOrderedSet(setID)
	if err != nil {
		return err
	}
	stmt, err := p.GetStatement(stmtID)
	if err != nil {
		return err
	}

	if err := set.RemoveStatement(stmtID); err != nil {
		return err
	}
	if err := stmt.DecrementUsage(); err != nil {
		return pkgerrors.Wrap(err, fmt.Sprintf("remove statement %q from set %q", stmtID.String(), setID.String()))
	}

	p.bump()
	p.addEvent(events.NewOrderedSetChanged(p.id.String(), setID.String(), statementIDStrings(set.StatementIDs()), p.version))
	return nil
}

// MoveStatement moves a statement from one ordered set to another,
// optionally at a position in the target (pass a negative position to
// append). The move is atomic from the caller's perspective: if inserting
// into the target fails, the statement is restored to its original slot in
// the source, so the aggregate never observes statement loss.
func (p *Proof) MoveStatement(
	stmtID valueobjects.StatementID,
	fromSetID, toSetID valueobjects.OrderedSetID,
	position int,
) error {
	if fromSetID.Equals(toSetID) {
		return pkgerrors.NewValidationError("source and target ordered sets must differ")
	}

	from, err := p.GetOrderedSet(fromSetID)
	if err != nil {
		return err
	}
	to, err := p.GetOrderedSet(toSetID)
	if err != nil {
		return err
	}
	stmt, err := p.GetStatement(stmtID)
	if err != nil {
		return err
	}

	originalIndex := from.IndexOf(stmtID)
	if originalIndex < 0 {
		return pkgerrors.NewReferenceError("statement in ordered set", stmtID.String())
	}
	if !to.Contains(stmtID) && to.Size() >= p.cfg.MaxStatementsPerSet {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("ordered set exceeds maximum size of %d", p.cfg.MaxStatementsPerSet))
	}

	if err := from.RemoveStatement(stmtID); err != nil {
		return err
	}

	var added bool
	if position < 0 {
		added, err = to.AddStatement(stmtID)
	} else {
		added, err = to.InsertStatementAt(stmtID, position)
	}
	if err != nil {
		// Restore the statement to its original slot in the source set.
		if _, restoreErr := from.InsertStatementAt(stmtID, originalIndex); restoreErr != nil {
			return pkgerrors.NewConsistencyError(
				fmt.Sprintf("failed to restore statement %q to set %q after aborted move: %v",
					stmtID.String(), fromSetID.String(), restoreErr))
		}
		return err
	}

	// Net usage: -1 for leaving the source, +1 when the target gained it.
	// A target that already contained the statement absorbs the move.
	if !added {
		if err := stmt.DecrementUsage(); err != nil {
			return pkgerrors.Wrap(err, fmt.Sprintf("move statement %q", stmtID.String()))
		}
	}

	p.bump()
	p.addEvent(events.NewStatementMoved(p.id.String(), stmtID.String(), fromSetID.String(), toSetID.String(), p.version))
	return nil
}

// BranchFromConclusion derives a new argument from one statement of an
// existing argument's conclusion set. The selected statement seeds a fresh
// ordered set wired as the branch's premise set, so the branch continues the
// derivation from that conclusion.
func (p *Proof) BranchFromConclusion(
	sourceID valueobjects.ArgumentID, index int,
) (valueobjects.ArgumentID, error) {
	source, err := p.GetArgument(sourceID)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	var conclusionSet *entities.OrderedSet
	if csID := source.ConclusionSetID(); csID != nil {
		conclusionSet = p.orderedSets[csID.String()]
	}

	branch, seed, err := source.CreateBranchFromConclusion(conclusionSet, index)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	return p.wireBranch(source, branch, seed, entities.RolePremise)
}

// BranchToPremise derives a new argument from one statement of an existing
// argument's premise set. The selected statement seeds a fresh ordered set
// wired as the branch's conclusion set, so the branch becomes the step that
// derives that premise.
func (p *Proof) BranchToPremise(
	sourceID valueobjects.ArgumentID, index int,
) (valueobjects.ArgumentID, error) {
	source, err := p.GetArgument(sourceID)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	var premiseSet *entities.OrderedSet
	if psID := source.PremiseSetID(); psID != nil {
		premiseSet = p.orderedSets[psID.String()]
	}

	branch, seed, err := source.CreateBranchToPremise(premiseSet, index)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	return p.wireBranch(source, branch, seed, entities.RoleConclusion)
}

// Validate re-checks every aggregate-wide invariant:
//  1. every set reference held by any argument resolves,
//  2. every statement referenced by any set resolves,
//  3. each statement's usage count equals its total set membership,
//  4. each set's argument references exactly mirror argument wiring.
func (p *Proof) Validate() error {
	for _, arg := range p.atomicArguments {
		if psID := arg.PremiseSetID(); psID != nil {
			if _, ok := p.orderedSets[psID.String()]; !ok {
				return pkgerrors.NewReferenceError("ordered set", psID.String())
			}
		}
		if csID := arg.ConclusionSetID(); csID != nil {
			if _, ok := p.orderedSets[csID.String()]; !ok {
				return pkgerrors.NewReferenceError("ordered set", csID.String())
			}
		}
	}

	usage := make(map[string]int, len(p.statements))
	for _, set := range p.orderedSets {
		for _, sid := range set.StatementIDs() {
			if _, ok := p.statements[sid.String()]; !ok {
				return pkgerrors.NewReferenceError("statement", sid.String())
			}
			usage[sid.String()]++
		}
	}
	for idStr, stmt := range p.statements {
		if stmt.UsageCount() != usage[idStr] {
			return pkgerrors.NewConsistencyError(
				fmt.Sprintf("statement %q usage count %d does not match %d ordered set slot(s)",
					idStr, stmt.UsageCount(), usage[idStr]))
		}
	}

	for idStr, set := range p.orderedSets {
		expected := make(map[entities.ArgumentReference]struct{})
		for _, arg := range p.atomicArguments {
			if psID := arg.PremiseSetID(); psID != nil && psID.String() == idStr {
				expected[entities.ArgumentReference{ArgumentID: arg.ID(), Role: entities.RolePremise}] = struct{}{}
			}
			if csID := arg.ConclusionSetID(); csID != nil && csID.String() == idStr {
				expected[entities.ArgumentReference{ArgumentID: arg.ID(), Role: entities.RoleConclusion}] = struct{}{}
			}
		}

		actual := set.References()
		if len(actual) != len(expected) {
			return pkgerrors.NewConsistencyError(
				fmt.Sprintf("ordered set %q records %d argument reference(s) but %d argument(s) are wired to it",
					idStr, len(actual), len(expected)))
		}
		for _, ref := range actual {
			if _, ok := expected[ref]; !ok {
				return pkgerrors.NewConsistencyError(
					fmt.Sprintf("ordered set %q records a reference from argument %q as %s that no argument wiring backs",
						idStr, ref.ArgumentID.String(), ref.Role))
			}
		}
	}

	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (p *Proof) GetUncommittedEvents() []events.DomainEvent {
	evts := make([]events.DomainEvent, len(p.events))
	copy(evts, p.events)
	return evts
}

// MarkEventsAsCommitted clears all uncommitted events
func (p *Proof) MarkEventsAsCommitted() {
	p.events = []events.DomainEvent{}
}

// Private helper methods

func (p *Proof) insertStatement(setID valueobjects.OrderedSetID, stmtID valueobjects.StatementID, position int) error {
	set, err := p.GetOrderedSet(setID)
	if err != nil {
		return err
	}
	stmt, err := p.GetStatement(stmtID)
	if err != nil {
		return err
	}
	if set.Size() >= p.cfg.MaxStatementsPerSet {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("ordered set exceeds maximum size of %d", p.cfg.MaxStatementsPerSet))
	}

	var changed bool
	if position < 0 {
		changed, err = set.AddStatement(stmtID)
	} else {
		changed, err = set.InsertStatementAt(stmtID, position)
	}
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	stmt.IncrementUsage()
	p.bump()
	p.addEvent(events.NewOrderedSetChanged(p.id.String(), setID.String(), statementIDStrings(set.StatementIDs()), p.version))
	return nil
}

func (p *Proof) wireBranch(
	source, branch *entities.AtomicArgument,
	seed valueobjects.StatementID,
	role entities.ReferenceRole,
) (valueobjects.ArgumentID, error) {
	if len(p.atomicArguments) >= p.cfg.MaxArgumentsPerProof {
		return valueobjects.ArgumentID{}, pkgerrors.NewValidationError(
			fmt.Sprintf("maximum arguments reached: %d", p.cfg.MaxArgumentsPerProof))
	}
	if _, ok := p.statements[seed.String()]; !ok {
		return valueobjects.ArgumentID{}, pkgerrors.NewReferenceError("statement", seed.String())
	}

	seedSet, err := entities.NewOrderedSet([]valueobjects.StatementID{seed})
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	seedSetID := seedSet.ID()
	switch role {
	case entities.RolePremise:
		branch.SetPremiseSet(&seedSetID)
	case entities.RoleConclusion:
		branch.SetConclusionSet(&seedSetID)
	}
	if err := seedSet.AddArgumentReference(branch.ID(), role); err != nil {
		return valueobjects.ArgumentID{}, err
	}

	p.statements[seed.String()].IncrementUsage()
	p.orderedSets[seedSetID.String()] = seedSet
	p.atomicArguments[branch.ID().String()] = branch
	p.bump()
	p.addEvent(events.NewBranchCreated(p.id.String(), source.ID().String(), branch.ID().String(), seed.String(), p.version))

	return branch.ID(), nil
}

func (p *Proof) registerArgument(arg *entities.AtomicArgument) error {
	if psID := arg.PremiseSetID(); psID != nil {
		if err := p.orderedSets[psID.String()].AddArgumentReference(arg.ID(), entities.RolePremise); err != nil {
			return err
		}
	}
	if csID := arg.ConclusionSetID(); csID != nil {
		if err := p.orderedSets[csID.String()].AddArgumentReference(arg.ID(), entities.RoleConclusion); err != nil {
			// Roll back the premise registration so nothing half-applies.
			if psID := arg.PremiseSetID(); psID != nil {
				_ = p.orderedSets[psID.String()].RemoveArgumentReference(arg.ID(), entities.RolePremise)
			}
			return err
		}
	}
	return nil
}

func (p *Proof) deregisterArgument(arg *entities.AtomicArgument) {
	if psID := arg.PremiseSetID(); psID != nil {
		if set, ok := p.orderedSets[psID.String()]; ok {
			_ = set.RemoveArgumentReference(arg.ID(), entities.RolePremise)
		}
	}
	if csID := arg.ConclusionSetID(); csID != nil {
		if set, ok := p.orderedSets[csID.String()]; ok {
			_ = set.RemoveArgumentReference(arg.ID(), entities.RoleConclusion)
		}
	}
}

func (p *Proof) bump() {
	p.version++
}

func (p *Proof) addEvent(event events.DomainEvent) {
	p.events = append(p.events, event)
}

func setIDString(id *valueobjects.OrderedSetID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func statementIDStrings(ids []valueobjects.StatementID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
