package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofgraph/domain/config"
	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
)

// buildSyllogism assembles the classic two-premise proof: P1 and P2 feed one
// argument whose conclusion is C. Returns the proof and the ids involved.
func buildSyllogism(t *testing.T) (
	*Proof,
	[]valueobjects.StatementID,
	valueobjects.OrderedSetID,
	valueobjects.OrderedSetID,
	valueobjects.ArgumentID,
) {
	t.Helper()
	proof := NewProof()

	p1, err := proof.AddStatement("All men are mortal")
	require.NoError(t, err)
	p2, err := proof.AddStatement("Socrates is a man")
	require.NoError(t, err)
	c, err := proof.AddStatement("Socrates is mortal")
	require.NoError(t, err)

	premiseSetID, err := proof.CreateOrderedSet([]valueobjects.StatementID{p1, p2})
	require.NoError(t, err)
	conclusionSetID, err := proof.CreateOrderedSet([]valueobjects.StatementID{c})
	require.NoError(t, err)

	argID, err := proof.CreateAtomicArgument(&premiseSetID, &conclusionSetID, valueobjects.EmptySideLabels())
	require.NoError(t, err)

	return proof, []valueobjects.StatementID{p1, p2, c}, premiseSetID, conclusionSetID, argID
}

func TestNewProof_StartsAtVersionOneWithCreatedEvent(t *testing.T) {
	// Act
	proof := NewProof()

	// Assert
	assert.False(t, proof.ID().IsZero())
	assert.Equal(t, 1, proof.Version())
	assert.Equal(t, 0, proof.StatementCount())
	assert.Equal(t, 0, proof.OrderedSetCount())
	assert.Equal(t, 0, proof.ArgumentCount())

	evts := proof.GetUncommittedEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, "proof.created", evts[0].GetEventType())
	assert.Equal(t, proof.ID().String(), evts[0].GetAggregateID())
}

func TestProof_BuildSyllogism_WiresUsageAndReferences(t *testing.T) {
	// Act
	proof, stmts, premiseSetID, conclusionSetID, argID := buildSyllogism(t)

	// Assert
	assert.Equal(t, 3, proof.StatementCount())
	assert.Equal(t, 2, proof.OrderedSetCount())
	assert.Equal(t, 1, proof.ArgumentCount())

	for _, sid := range stmts {
		stmt, err := proof.GetStatement(sid)
		require.NoError(t, err)
		assert.Equal(t, 1, stmt.UsageCount())
	}

	premiseSet, err := proof.GetOrderedSet(premiseSetID)
	require.NoError(t, err)
	assert.Contains(t, premiseSet.ReferencedByAsPremise(), argID)
	assert.Empty(t, premiseSet.ReferencedByAsConclusion())

	conclusionSet, err := proof.GetOrderedSet(conclusionSetID)
	require.NoError(t, err)
	assert.Contains(t, conclusionSet.ReferencedByAsConclusion(), argID)

	arg, err := proof.GetArgument(argID)
	require.NoError(t, err)
	assert.True(t, arg.IsComplete())

	require.NoError(t, proof.Validate())
}

func TestProof_EveryMutationBumpsVersionByOne(t *testing.T) {
	// Arrange
	proof := NewProof()
	require.Equal(t, 1, proof.Version())

	// Act / Assert: each successful mutation bumps exactly once
	sid, err := proof.AddStatement("P")
	require.NoError(t, err)
	assert.Equal(t, 2, proof.Version())

	require.NoError(t, proof.UpdateStatement(sid, "P, revised"))
	assert.Equal(t, 3, proof.Version())

	setID, err := proof.CreateOrderedSet([]valueobjects.StatementID{sid})
	require.NoError(t, err)
	assert.Equal(t, 4, proof.Version())

	argID, err := proof.CreateAtomicArgument(&setID, nil, valueobjects.EmptySideLabels())
	require.NoError(t, err)
	assert.Equal(t, 5, proof.Version())

	require.NoError(t, proof.DeleteAtomicArgument(argID))
	assert.Equal(t, 6, proof.Version())

	// Event versions track the post-bump aggregate version.
	evts := proof.GetUncommittedEvents()
	require.NotEmpty(t, evts)
	last := evts[len(evts)-1]
	assert.Equal(t, 6, last.GetVersion())
}

func TestProof_NoOpMutations_DoNotBumpVersion(t *testing.T) {
	// Arrange
	proof := NewProof()
	sid, err := proof.AddStatement("P")
	require.NoError(t, err)
	setID, err := proof.CreateOrderedSet([]valueobjects.StatementID{sid})
	require.NoError(t, err)
	argID, err := proof.CreateAtomicArgument(&setID, nil, valueobjects.EmptySideLabels())
	require.NoError(t, err)
	before := proof.Version()
	eventsBefore := len(proof.GetUncommittedEvents())

	// Act: same text, same labels, duplicate append
	require.NoError(t, proof.UpdateStatement(sid, "P"))
	require.NoError(t, proof.UpdateArgumentSideLabels(argID, valueobjects.EmptySideLabels()))
	require.NoError(t, proof.AddStatementToSet(setID, sid))

	// Assert
	assert.Equal(t, before, proof.Version())
	assert.Len(t, proof.GetUncommittedEvents(), eventsBefore)

	stmt, err := proof.GetStatement(sid)
	require.NoError(t, err)
	assert.Equal(t, 1, stmt.UsageCount())
}

func TestProof_CreateOrderedSet_DeduplicatesPreservingOrder(t *testing.T) {
	// Arrange
	proof := NewProof()
	a, err := proof.AddStatement("A")
	require.NoError(t, err)
	b, err := proof.AddStatement("B")
	require.NoError(t, err)

	// Act
	setID, err := proof.CreateOrderedSet([]valueobjects.StatementID{a, b, a})

	// Assert
	require.NoError(t, err)
	set, err := proof.GetOrderedSet(setID)
	require.NoError(t, err)
	require.Equal(t, 2, set.Size())
	ids := set.StatementIDs()
	assert.True(t, ids[0].Equals(a))
	assert.True(t, ids[1].Equals(b))

	// Duplicate occurrences count one usage each.
	stmtA, err := proof.GetStatement(a)
	require.NoError(t, err)
	assert.Equal(t, 1, stmtA.UsageCount())
}

func TestProof_CreateOrderedSet_UnknownStatement_ReturnsReferenceError(t *testing.T) {
	// Arrange
	proof := NewProof()
	before := proof.Version()

	// Act
	_, err := proof.CreateOrderedSet([]valueobjects.StatementID{valueobjects.NewStatementID()})

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Equal(t, before, proof.Version())
	assert.Equal(t, 0, proof.OrderedSetCount())
}

func TestProof_DeleteStatement_StillReferenced_ReturnsConsistencyError(t *testing.T) {
	// Arrange
	proof, stmts, _, _, _ := buildSyllogism(t)
	before := proof.Version()

	// Act
	err := proof.DeleteStatement(stmts[0])

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConsistency(err))
	assert.Equal(t, before, proof.Version())
	_, getErr := proof.GetStatement(stmts[0])
	assert.NoError(t, getErr)
}

func TestProof_DeleteStatement_Unreferenced_Succeeds(t *testing.T) {
	// Arrange
	proof := NewProof()
	sid, err := proof.AddStatement("orphan")
	require.NoError(t, err)

	// Act
	err = proof.DeleteStatement(sid)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, proof.StatementCount())
	_, getErr := proof.GetStatement(sid)
	assert.True(t, pkgerrors.IsNotFound(getErr))
}

func TestProof_RemoveUnreferencedSet_ReleasesUsage(t *testing.T) {
	// Arrange
	proof := NewProof()
	sid, err := proof.AddStatement("P")
	require.NoError(t, err)
	setID, err := proof.CreateOrderedSet([]valueobjects.StatementID{sid})
	require.NoError(t, err)

	// Act
	err = proof.RemoveUnreferencedSet(setID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, proof.OrderedSetCount())
	stmt, err := proof.GetStatement(sid)
	require.NoError(t, err)
	assert.Equal(t, 0, stmt.UsageCount())

	// The statement is now deletable.
	assert.NoError(t, proof.DeleteStatement(sid))
}

func TestProof_RemoveUnreferencedSet_StillReferenced_ReturnsConsistencyError(t *testing.T) {
	// Arrange
	proof, _, premiseSetID, _, _ := buildSyllogism(t)

	// Act
	err := proof.RemoveUnreferencedSet(premiseSetID)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConsistency(err))
	_, getErr := proof.GetOrderedSet(premiseSetID)
	assert.NoError(t, getErr)
}

func TestProof_CreateBootstrapArgument_Succeeds(t *testing.T) {
	// Arrange
	proof := NewProof()

	// Act
	argID, err := proof.CreateBootstrapArgument()

	// Assert
	require.NoError(t, err)
	arg, err := proof.GetArgument(argID)
	require.NoError(t, err)
	assert.True(t, arg.IsBootstrap())
	require.NoError(t, proof.Validate())
}

func TestProof_CreateAtomicArgument_SameSetBothRoles_Succeeds(t *testing.T) {
	// Arrange
	proof := NewProof()
	sid, err := proof.AddStatement("P")
	require.NoError(t, err)
	setID, err := proof.CreateOrderedSet([]valueobjects.StatementID{sid})
	require.NoError(t, err)

	// Act: a step may consume and produce the same set
	argID, err := proof.CreateAtomicArgument(&setID, &setID, valueobjects.EmptySideLabels())

	// Assert
	require.NoError(t, err)
	set, err := proof.GetOrderedSet(setID)
	require.NoError(t, err)
	assert.Equal(t, 2, set.TotalReferenceCount())
	assert.Contains(t, set.ReferencedByAsPremise(), argID)
	assert.Contains(t, set.ReferencedByAsConclusion(), argID)
	require.NoError(t, proof.Validate())
}

func TestProof_UpdateAtomicArgument_RewiresReferences(t *testing.T) {
	// Arrange
	proof, stmts, premiseSetID, conclusionSetID, argID := buildSyllogism(t)
	otherSetID, err := proof.CreateOrderedSet([]valueobjects.StatementID{stmts[2]})
	require.NoError(t, err)

	// Act
	err = proof.UpdateAtomicArgument(argID, &otherSetID, &conclusionSetID)

	// Assert
	require.NoError(t, err)
	oldPremise, err := proof.GetOrderedSet(premiseSetID)
	require.NoError(t, err)
	assert.Equal(t, 0, oldPremise.TotalReferenceCount())

	newPremise, err := proof.GetOrderedSet(otherSetID)
	require.NoError(t, err)
	assert.Contains(t, newPremise.ReferencedByAsPremise(), argID)
	require.NoError(t, proof.Validate())
}

func TestProof_UpdateAtomicArgument_UnknownSet_LeavesWiringIntact(t *testing.T) {
	// Arrange
	proof, _, premiseSetID, _, argID := buildSyllogism(t)
	before := proof.Version()
	unknown := valueobjects.NewOrderedSetID()

	// Act
	err := proof.UpdateAtomicArgument(argID, &unknown, nil)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Equal(t, before, proof.Version())

	premiseSet, err := proof.GetOrderedSet(premiseSetID)
	require.NoError(t, err)
	assert.Contains(t, premiseSet.ReferencedByAsPremise(), argID)
	require.NoError(t, proof.Validate())
}

func TestProof_DeleteAtomicArgument_LeavesSetsAsGarbage(t *testing.T) {
	// Arrange
	proof, _, premiseSetID, conclusionSetID, argID := buildSyllogism(t)

	// Act
	err := proof.DeleteAtomicArgument(argID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, proof.ArgumentCount())

	// The sets survive, unreferenced, until explicitly collected.
	premiseSet, err := proof.GetOrderedSet(premiseSetID)
	require.NoError(t, err)
	assert.Equal(t, 0, premiseSet.TotalReferenceCount())
	conclusionSet, err := proof.GetOrderedSet(conclusionSetID)
	require.NoError(t, err)
	assert.Equal(t, 0, conclusionSet.TotalReferenceCount())
	require.NoError(t, proof.Validate())
}

func TestProof_MoveStatement_TransfersBetweenSets(t *testing.T) {
	// Arrange
	proof := NewProof()
	a, err := proof.AddStatement("A")
	require.NoError(t, err)
	b, err := proof.AddStatement("B")
	require.NoError(t, err)
	fromID, err := proof.CreateOrderedSet([]valueobjects.StatementID{a, b})
	require.NoError(t, err)
	toID, err := proof.CreateOrderedSet(nil)
	require.NoError(t, err)

	// Act
	err = proof.MoveStatement(a, fromID, toID, 0)

	// Assert
	require.NoError(t, err)
	from, err := proof.GetOrderedSet(fromID)
	require.NoError(t, err)
	assert.False(t, from.Contains(a))
	to, err := proof.GetOrderedSet(toID)
	require.NoError(t, err)
	assert.True(t, to.Contains(a))

	// Net usage is unchanged: one slot moved.
	stmt, err := proof.GetStatement(a)
	require.NoError(t, err)
	assert.Equal(t, 1, stmt.UsageCount())
	require.NoError(t, proof.Validate())
}

func TestProof_MoveStatement_TargetAlreadyContains_AbsorbsUsage(t *testing.T) {
	// Arrange
	proof := NewProof()
	a, err := proof.AddStatement("A")
	require.NoError(t, err)
	fromID, err := proof.CreateOrderedSet([]valueobjects.StatementID{a})
	require.NoError(t, err)
	toID, err := proof.CreateOrderedSet([]valueobjects.StatementID{a})
	require.NoError(t, err)

	// Act
	err = proof.MoveStatement(a, fromID, toID, -1)

	// Assert
	require.NoError(t, err)
	stmt, err := proof.GetStatement(a)
	require.NoError(t, err)
	assert.Equal(t, 1, stmt.UsageCount())
	require.NoError(t, proof.Validate())
}

func TestProof_MoveStatement_BadTargetPosition_RestoresSource(t *testing.T) {
	// Arrange
	proof := NewProof()
	a, err := proof.AddStatement("A")
	require.NoError(t, err)
	b, err := proof.AddStatement("B")
	require.NoError(t, err)
	fromID, err := proof.CreateOrderedSet([]valueobjects.StatementID{a, b})
	require.NoError(t, err)
	toID, err := proof.CreateOrderedSet(nil)
	require.NoError(t, err)
	before := proof.Version()

	// Act: position 5 is out of range for an empty target
	err = proof.MoveStatement(b, fromID, toID, 5)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, before, proof.Version())

	from, err := proof.GetOrderedSet(fromID)
	require.NoError(t, err)
	require.Equal(t, 2, from.Size())
	assert.Equal(t, 1, from.IndexOf(b))
	require.NoError(t, proof.Validate())
}

func TestProof_MoveStatement_SameSet_ReturnsValidationError(t *testing.T) {
	// Arrange
	proof := NewProof()
	a, err := proof.AddStatement("A")
	require.NoError(t, err)
	setID, err := proof.CreateOrderedSet([]valueobjects.StatementID{a})
	require.NoError(t, err)

	// Act
	err = proof.MoveStatement(a, setID, setID, 0)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestProof_MoveStatement_FullTarget_ReturnsValidationError(t *testing.T) {
	// Arrange
	cfg := config.DefaultDomainConfig()
	cfg.MaxStatementsPerSet = 1
	proof := NewProofWithConfig(cfg)
	a, err := proof.AddStatement("A")
	require.NoError(t, err)
	b, err := proof.AddStatement("B")
	require.NoError(t, err)
	fromID, err := proof.CreateOrderedSet([]valueobjects.StatementID{a})
	require.NoError(t, err)
	toID, err := proof.CreateOrderedSet([]valueobjects.StatementID{b})
	require.NoError(t, err)
	before := proof.Version()

	// Act
	err = proof.MoveStatement(a, fromID, toID, -1)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, before, proof.Version())
	from, err := proof.GetOrderedSet(fromID)
	require.NoError(t, err)
	assert.True(t, from.Contains(a))
	require.NoError(t, proof.Validate())
}

func TestProof_BranchFromConclusion_SeedsNewPremiseSet(t *testing.T) {
	// Arrange
	proof, stmts, _, _, argID := buildSyllogism(t)
	conclusion := stmts[2]

	// Act
	branchID, err := proof.BranchFromConclusion(argID, 0)

	// Assert
	require.NoError(t, err)
	branch, err := proof.GetArgument(branchID)
	require.NoError(t, err)
	require.True(t, branch.HasPremiseSet())
	assert.False(t, branch.HasConclusionSet())

	seedSet, err := proof.GetOrderedSet(*branch.PremiseSetID())
	require.NoError(t, err)
	require.Equal(t, 1, seedSet.Size())
	assert.True(t, seedSet.Contains(conclusion))
	assert.Contains(t, seedSet.ReferencedByAsPremise(), branchID)

	// The seed statement gained one usage for its new slot.
	stmt, err := proof.GetStatement(conclusion)
	require.NoError(t, err)
	assert.Equal(t, 2, stmt.UsageCount())
	require.NoError(t, proof.Validate())
}

func TestProof_BranchToPremise_SeedsNewConclusionSet(t *testing.T) {
	// Arrange
	proof, stmts, _, _, argID := buildSyllogism(t)
	premise := stmts[1]

	// Act
	branchID, err := proof.BranchToPremise(argID, 1)

	// Assert
	require.NoError(t, err)
	branch, err := proof.GetArgument(branchID)
	require.NoError(t, err)
	require.True(t, branch.HasConclusionSet())
	assert.False(t, branch.HasPremiseSet())

	seedSet, err := proof.GetOrderedSet(*branch.ConclusionSetID())
	require.NoError(t, err)
	assert.True(t, seedSet.Contains(premise))
	assert.Contains(t, seedSet.ReferencedByAsConclusion(), branchID)
	require.NoError(t, proof.Validate())
}

func TestProof_BranchFromConclusion_IndexOutOfRange_ReturnsError(t *testing.T) {
	// Arrange
	proof, _, _, _, argID := buildSyllogism(t)
	before := proof.Version()

	// Act: conclusion set has one statement
	_, err := proof.BranchFromConclusion(argID, 1)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, before, proof.Version())
	assert.Equal(t, 1, proof.ArgumentCount())
}

func TestProof_BranchFromConclusion_BootstrapSource_ReturnsError(t *testing.T) {
	// Arrange
	proof := NewProof()
	argID, err := proof.CreateBootstrapArgument()
	require.NoError(t, err)

	// Act
	_, err = proof.BranchFromConclusion(argID, 0)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestProof_RemoveStatementFromSet_ReleasesOneUsage(t *testing.T) {
	// Arrange
	proof := NewProof()
	a, err := proof.AddStatement("A")
	require.NoError(t, err)
	setID, err := proof.CreateOrderedSet([]valueobjects.StatementID{a})
	require.NoError(t, err)

	// Act
	err = proof.RemoveStatementFromSet(setID, a)

	// Assert
	require.NoError(t, err)
	set, err := proof.GetOrderedSet(setID)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Size())
	stmt, err := proof.GetStatement(a)
	require.NoError(t, err)
	assert.Equal(t, 0, stmt.UsageCount())
	require.NoError(t, proof.Validate())
}

func TestProof_InsertStatementIntoSetAt_NegativePosition_ReturnsValidationError(t *testing.T) {
	// Arrange
	proof := NewProof()
	a, err := proof.AddStatement("A")
	require.NoError(t, err)
	setID, err := proof.CreateOrderedSet(nil)
	require.NoError(t, err)

	// Act
	err = proof.InsertStatementIntoSetAt(setID, a, -1)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestProof_ConfiguredLimits_AreEnforced(t *testing.T) {
	// Arrange
	cfg := config.DefaultDomainConfig()
	cfg.MaxStatementsPerProof = 2
	proof := NewProofWithConfig(cfg)
	_, err := proof.AddStatement("one")
	require.NoError(t, err)
	_, err = proof.AddStatement("two")
	require.NoError(t, err)

	// Act
	_, err = proof.AddStatement("three")

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, 2, proof.StatementCount())
}

func TestProof_MarkEventsAsCommitted_ClearsBuffer(t *testing.T) {
	// Arrange
	proof, _, _, _, _ := buildSyllogism(t)
	require.NotEmpty(t, proof.GetUncommittedEvents())

	// Act
	proof.MarkEventsAsCommitted()

	// Assert
	assert.Empty(t, proof.GetUncommittedEvents())

	// New mutations start a fresh buffer.
	_, err := proof.AddStatement("later")
	require.NoError(t, err)
	assert.Len(t, proof.GetUncommittedEvents(), 1)
}

func TestProof_Accessors_ReturnCopies(t *testing.T) {
	// Arrange
	proof, _, _, _, _ := buildSyllogism(t)

	// Act
	stmts := proof.Statements()
	for k := range stmts {
		delete(stmts, k)
	}

	// Assert
	assert.Equal(t, 3, proof.StatementCount())
}
