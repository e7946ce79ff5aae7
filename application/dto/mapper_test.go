package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofgraph/domain/core/aggregates"
	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
)

// buildDocument assembles a proof with one complete argument plus a tree
// displaying it, the smallest envelope exercising every DTO shape.
func buildDocument(t *testing.T) (*aggregates.Proof, []*aggregates.Tree) {
	t.Helper()
	proof := aggregates.NewProof()

	p, err := proof.AddStatement("All men are mortal")
	require.NoError(t, err)
	c, err := proof.AddStatement("Socrates is mortal")
	require.NoError(t, err)

	premiseSetID, err := proof.CreateOrderedSet([]valueobjects.StatementID{p})
	require.NoError(t, err)
	conclusionSetID, err := proof.CreateOrderedSet([]valueobjects.StatementID{c})
	require.NoError(t, err)

	labels, err := valueobjects.NewSideLabels("MP", "")
	require.NoError(t, err)
	argID, err := proof.CreateAtomicArgument(&premiseSetID, &conclusionSetID, labels)
	require.NoError(t, err)

	tree, err := aggregates.NewTree(proof.ID(), valueobjects.NewPosition(100, 200))
	require.NoError(t, err)
	require.NoError(t, tree.AddNode(valueobjects.NewTreeNodeID(), argID))

	return proof, []*aggregates.Tree{tree}
}

func TestDocumentFromDTO_RoundTripsToDocumentDTO(t *testing.T) {
	// Arrange
	proof, trees := buildDocument(t)
	envelope := ToDocumentDTO(proof, trees, nil)

	// Act
	restored, restoredTrees, err := DocumentFromDTO(envelope)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, proof.ID().String(), restored.ID().String())
	assert.Equal(t, proof.Version(), restored.Version())
	assert.Equal(t, proof.StatementCount(), restored.StatementCount())
	assert.Equal(t, proof.OrderedSetCount(), restored.OrderedSetCount())
	assert.Equal(t, proof.ArgumentCount(), restored.ArgumentCount())
	require.NoError(t, restored.Validate())

	require.Len(t, restoredTrees, 1)
	assert.Equal(t, trees[0].ID().String(), restoredTrees[0].ID().String())
	assert.Equal(t, 1, restoredTrees[0].NodeCount())
	assert.Equal(t, float64(100), restoredTrees[0].Position().X())

	// A second serialization is field-for-field identical apart from event
	// buffers, which never serialize.
	again := ToDocumentDTO(restored, restoredTrees, nil)
	assert.Equal(t, envelope, again)
}

func TestToAtomicArgumentDTO_EmptyLabelsSerializeAsAbsent(t *testing.T) {
	// Arrange
	proof := aggregates.NewProof()
	argID, err := proof.CreateBootstrapArgument()
	require.NoError(t, err)
	arg, err := proof.GetArgument(argID)
	require.NoError(t, err)

	// Act
	d := ToAtomicArgumentDTO(arg)

	// Assert
	assert.Nil(t, d.SideLabels)
	assert.Nil(t, d.PremiseSetID)
	assert.Nil(t, d.ConclusionSetID)
}

func TestDocumentFromDTO_EmptyStringSetReference_NormalizesToAbsent(t *testing.T) {
	// Arrange
	proof := aggregates.NewProof()
	argID, err := proof.CreateBootstrapArgument()
	require.NoError(t, err)
	envelope := ToDocumentDTO(proof, nil, nil)

	empty := ""
	ad := envelope.AtomicArguments[argID.String()]
	ad.PremiseSetID = &empty
	envelope.AtomicArguments[argID.String()] = ad

	// Act
	restored, _, err := DocumentFromDTO(envelope)

	// Assert
	require.NoError(t, err)
	arg, err := restored.GetArgument(argID)
	require.NoError(t, err)
	assert.True(t, arg.IsBootstrap())
}

func TestDocumentFromDTO_DeclaredUsageCountMismatch_ReturnsConsistencyError(t *testing.T) {
	// Arrange
	proof, trees := buildDocument(t)
	envelope := ToDocumentDTO(proof, trees, nil)

	for key, sd := range envelope.Statements {
		sd.UsageCount = sd.UsageCount + 5
		envelope.Statements[key] = sd
		break
	}

	// Act
	_, _, err := DocumentFromDTO(envelope)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConsistency(err))
}

func TestDocumentFromDTO_DeclaredUsedByMismatch_ReturnsConsistencyError(t *testing.T) {
	// Arrange
	proof, trees := buildDocument(t)
	envelope := ToDocumentDTO(proof, trees, nil)

	for key, od := range envelope.OrderedSets {
		if len(od.UsedBy) == 0 {
			continue
		}
		od.UsedBy[0].ArgumentID = valueobjects.NewArgumentID().String()
		envelope.OrderedSets[key] = od
		break
	}

	// Act
	_, _, err := DocumentFromDTO(envelope)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConsistency(err))
}

func TestDocumentFromDTO_MapKeyMismatch_ReturnsConsistencyError(t *testing.T) {
	// Arrange
	proof, _ := buildDocument(t)
	envelope := ToDocumentDTO(proof, nil, nil)

	for key, sd := range envelope.Statements {
		delete(envelope.Statements, key)
		envelope.Statements[valueobjects.NewStatementID().String()] = sd
		break
	}

	// Act
	_, _, err := DocumentFromDTO(envelope)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConsistency(err))
}

func TestDocumentFromDTO_TreeNodeUnknownArgument_ReturnsError(t *testing.T) {
	// Arrange
	proof, trees := buildDocument(t)
	envelope := ToDocumentDTO(proof, trees, nil)

	for key, td := range envelope.Trees {
		td.Nodes[0].ArgumentID = valueobjects.NewArgumentID().String()
		envelope.Trees[key] = td
		break
	}

	// Act
	_, _, err := DocumentFromDTO(envelope)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDocumentFromDTO_InvalidProofID_ReturnsValidationError(t *testing.T) {
	// Act
	_, _, err := DocumentFromDTO(DocumentDTO{ID: "not-a-uuid", Version: 1})

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestDocumentFromDTO_MissingTreeVersion_DefaultsToOne(t *testing.T) {
	// Arrange
	proof, trees := buildDocument(t)
	envelope := ToDocumentDTO(proof, trees, nil)
	for key, td := range envelope.Trees {
		td.Version = 0
		envelope.Trees[key] = td
	}

	// Act
	_, restoredTrees, err := DocumentFromDTO(envelope)

	// Assert
	require.NoError(t, err)
	require.Len(t, restoredTrees, 1)
	assert.Equal(t, 1, restoredTrees[0].Version())
}
