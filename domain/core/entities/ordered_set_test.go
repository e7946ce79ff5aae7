package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofgraph/domain/core/valueobjects"
)

func newStatementIDs(n int) []valueobjects.StatementID {
	ids := make([]valueobjects.StatementID, n)
	for i := range ids {
		ids[i] = valueobjects.NewStatementID()
	}
	return ids
}

func TestNewOrderedSet_DeduplicatesPreservingFirstOccurrence(t *testing.T) {
	ids := newStatementIDs(2)
	a, b := ids[0], ids[1]

	set, err := NewOrderedSet([]valueobjects.StatementID{a, a, b, a})
	require.NoError(t, err)

	require.Equal(t, 2, set.Size())
	assert.True(t, set.StatementIDs()[0].Equals(a))
	assert.True(t, set.StatementIDs()[1].Equals(b))
}

func TestNewOrderedSet_EmptyIsAllowed(t *testing.T) {
	set, err := NewOrderedSet(nil)
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())
}

func TestReconstructOrderedSet_RejectsDuplicates(t *testing.T) {
	a := valueobjects.NewStatementID()
	_, err := ReconstructOrderedSet(
		valueobjects.NewOrderedSetID(),
		[]valueobjects.StatementID{a, a},
		time.Now(), time.Now(),
	)
	assert.Error(t, err)
}

func TestOrderedSet_AddStatement(t *testing.T) {
	ids := newStatementIDs(2)
	set, err := NewOrderedSet(ids[:1])
	require.NoError(t, err)

	added, err := set.AddStatement(ids[1])
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 2, set.Size())

	// Adding a duplicate succeeds but changes nothing.
	added, err = set.AddStatement(ids[1])
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 2, set.Size())
}

func TestOrderedSet_InsertStatementAt(t *testing.T) {
	ids := newStatementIDs(3)
	set, err := NewOrderedSet([]valueobjects.StatementID{ids[0], ids[1]})
	require.NoError(t, err)

	added, err := set.InsertStatementAt(ids[2], 1)
	require.NoError(t, err)
	assert.True(t, added)

	got := set.StatementIDs()
	assert.True(t, got[0].Equals(ids[0]))
	assert.True(t, got[1].Equals(ids[2]))
	assert.True(t, got[2].Equals(ids[1]))
}

func TestOrderedSet_InsertStatementAt_OutOfRange(t *testing.T) {
	ids := newStatementIDs(2)
	set, err := NewOrderedSet(ids[:1])
	require.NoError(t, err)

	_, err = set.InsertStatementAt(ids[1], 5)
	assert.Error(t, err)

	// Inserting at the end position equals append.
	added, err := set.InsertStatementAt(ids[1], 1)
	require.NoError(t, err)
	assert.True(t, added)
}

func TestOrderedSet_RemoveStatement(t *testing.T) {
	ids := newStatementIDs(2)
	set, err := NewOrderedSet(ids)
	require.NoError(t, err)

	require.NoError(t, set.RemoveStatement(ids[0]))
	assert.Equal(t, 1, set.Size())
	assert.False(t, set.Contains(ids[0]))

	err = set.RemoveStatement(ids[0])
	assert.Error(t, err)
}

func TestOrderedSet_ArgumentReferences(t *testing.T) {
	set, err := NewOrderedSet(nil)
	require.NoError(t, err)

	argA := valueobjects.NewArgumentID()
	argB := valueobjects.NewArgumentID()

	require.NoError(t, set.AddArgumentReference(argA, RoleConclusion))
	require.NoError(t, set.AddArgumentReference(argB, RolePremise))

	// The same argument may hold both roles on one set, but not the same
	// role twice.
	require.NoError(t, set.AddArgumentReference(argA, RolePremise))
	err = set.AddArgumentReference(argA, RoleConclusion)
	assert.Error(t, err)

	assert.Equal(t, 3, set.TotalReferenceCount())
	assert.Len(t, set.ReferencedByAsPremise(), 2)
	assert.Len(t, set.ReferencedByAsConclusion(), 1)

	require.NoError(t, set.RemoveArgumentReference(argA, RolePremise))
	assert.False(t, set.IsReferencedBy(argA, RolePremise))
	assert.True(t, set.IsReferencedBy(argA, RoleConclusion))
}

func TestOrderedSet_StatementAt(t *testing.T) {
	ids := newStatementIDs(2)
	set, err := NewOrderedSet(ids)
	require.NoError(t, err)

	got, err := set.StatementAt(1)
	require.NoError(t, err)
	assert.True(t, got.Equals(ids[1]))

	_, err = set.StatementAt(2)
	assert.Error(t, err)

	_, err = set.StatementAt(-1)
	assert.Error(t, err)
}
