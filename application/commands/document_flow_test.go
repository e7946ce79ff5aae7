package commands_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"proofgraph/application/commands"
	"proofgraph/application/queries"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/domain/events"
	"proofgraph/domain/services"
	"proofgraph/infrastructure/messaging"
	"proofgraph/infrastructure/persistence/memory"
	pkgerrors "proofgraph/pkg/errors"
)

// testEnv wires the command and query handlers over in-memory adapters, the
// same shape the container assembles in development mode.
type testEnv struct {
	proofRepo *memory.ProofRepository
	treeRepo  *memory.TreeRepository
	bus       *messaging.MemoryEventBus

	createProof     *commands.CreateProofHandler
	deleteProof     *commands.DeleteProofHandler
	createStatement *commands.CreateStatementHandler
	updateStatement *commands.UpdateStatementHandler
	updateLabels    *commands.UpdateSideLabelsHandler
	createBootstrap *commands.CreateBootstrapArgumentHandler
	moveTree        *commands.MoveTreeHandler
	deleteStatement *commands.DeleteStatementHandler
	createArgument  *commands.CreateArgumentHandler
	deleteArgument  *commands.DeleteArgumentHandler
	moveStatement   *commands.MoveStatementHandler
	branchArgument  *commands.BranchArgumentHandler
	createTree      *commands.CreateTreeHandler
	addTreeNode     *commands.AddTreeNodeHandler
	setNodeParent   *commands.SetNodeParentHandler
	getDocument     *queries.GetDocumentHandler
	getStats        *queries.GetProofStatsHandler
}

func newTestEnv() *testEnv {
	logger := zap.NewNop()
	proofRepo := memory.NewProofRepository()
	treeRepo := memory.NewTreeRepository()
	bus := messaging.NewMemoryEventBus(logger)
	stats := services.NewProofStatsService()

	return &testEnv{
		proofRepo:       proofRepo,
		treeRepo:        treeRepo,
		bus:             bus,
		createProof:     commands.NewCreateProofHandler(proofRepo, bus, logger),
		deleteProof:     commands.NewDeleteProofHandler(proofRepo, treeRepo, logger),
		createStatement: commands.NewCreateStatementHandler(proofRepo, bus, logger),
		updateStatement: commands.NewUpdateStatementHandler(proofRepo, bus, logger),
		updateLabels:    commands.NewUpdateSideLabelsHandler(proofRepo, bus, logger),
		createBootstrap: commands.NewCreateBootstrapArgumentHandler(proofRepo, bus, logger),
		moveTree:        commands.NewMoveTreeHandler(treeRepo, bus, logger),
		deleteStatement: commands.NewDeleteStatementHandler(proofRepo, bus, logger),
		createArgument:  commands.NewCreateArgumentHandler(proofRepo, bus, logger),
		deleteArgument:  commands.NewDeleteArgumentHandler(proofRepo, treeRepo, bus, logger),
		moveStatement:   commands.NewMoveStatementHandler(proofRepo, bus, logger),
		branchArgument:  commands.NewBranchArgumentHandler(proofRepo, bus, logger),
		createTree:      commands.NewCreateTreeHandler(proofRepo, treeRepo, bus, logger),
		addTreeNode:     commands.NewAddTreeNodeHandler(proofRepo, treeRepo, bus, logger),
		setNodeParent:   commands.NewSetNodeParentHandler(treeRepo, bus, logger),
		getDocument:     queries.NewGetDocumentHandler(proofRepo, treeRepo, stats, logger),
		getStats:        queries.NewGetProofStatsHandler(proofRepo, treeRepo, stats, logger),
	}
}

// recordingHandler captures every event the bus delivers to it
type recordingHandler struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (h *recordingHandler) Handle(_ context.Context, event events.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHandler) CanHandle(string) bool { return true }

func (h *recordingHandler) types() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.events))
	for i, e := range h.events {
		out[i] = e.GetEventType()
	}
	return out
}

func TestDocumentFlow_SyllogismEndToEnd(t *testing.T) {
	// Arrange
	env := newTestEnv()
	ctx := context.Background()

	// Act: assemble the document through the command surface only
	proofID, err := env.createProof.Handle(ctx, commands.CreateProofCommand{})
	require.NoError(t, err)

	contents := []string{"All men are mortal", "Socrates is a man", "Socrates is mortal"}
	stmtIDs := make([]string, len(contents))
	for i, content := range contents {
		sid, err := env.createStatement.Handle(ctx, commands.CreateStatementCommand{
			ProofID: proofID.String(),
			Content: content,
		})
		require.NoError(t, err)
		stmtIDs[i] = sid.String()
	}

	argID, err := env.createArgument.Handle(ctx, commands.CreateArgumentCommand{
		ProofID:                proofID.String(),
		PremiseStatementIDs:    []string{stmtIDs[0], stmtIDs[1]},
		ConclusionStatementIDs: []string{stmtIDs[2]},
		LeftLabel:              "MP",
	})
	require.NoError(t, err)

	// Assert: the read side sees the assembled document
	doc, err := env.getDocument.Handle(ctx, queries.GetDocumentQuery{
		ProofID:      proofID.String(),
		IncludeStats: true,
	})
	require.NoError(t, err)
	assert.Len(t, doc.Statements, 3)
	assert.Len(t, doc.OrderedSets, 2)
	assert.Len(t, doc.AtomicArguments, 1)
	require.NotNil(t, doc.Stats)
	assert.Equal(t, "valid", doc.Stats.ValidationStatus)
	assert.Equal(t, 0, doc.Stats.UnusedStatements)

	arg := doc.AtomicArguments[argID.String()]
	require.NotNil(t, arg.PremiseSetID)
	require.NotNil(t, arg.ConclusionSetID)
	require.NotNil(t, arg.SideLabels)
	require.NotNil(t, arg.SideLabels.Left)
	assert.Equal(t, "MP", *arg.SideLabels.Left)
}

func TestDocumentFlow_BranchFromConclusion_ChainsArguments(t *testing.T) {
	// Arrange
	env := newTestEnv()
	ctx := context.Background()

	proofID, err := env.createProof.Handle(ctx, commands.CreateProofCommand{})
	require.NoError(t, err)
	sid, err := env.createStatement.Handle(ctx, commands.CreateStatementCommand{
		ProofID: proofID.String(),
		Content: "Socrates is mortal",
	})
	require.NoError(t, err)
	argID, err := env.createArgument.Handle(ctx, commands.CreateArgumentCommand{
		ProofID:                proofID.String(),
		ConclusionStatementIDs: []string{sid.String()},
	})
	require.NoError(t, err)

	// Act
	branchID, err := env.branchArgument.Handle(ctx, commands.BranchArgumentCommand{
		ProofID:    proofID.String(),
		ArgumentID: argID.String(),
		Direction:  commands.BranchFromConclusion,
		Index:      0,
	})
	require.NoError(t, err)

	// Assert: the branch's premise set shares the conclusion statement, so
	// the stats service counts one connection.
	stats, err := env.getStats.Handle(ctx, queries.GetProofStatsQuery{ProofID: proofID.String()})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ArgumentCount)
	assert.False(t, branchID.IsZero())

	doc, err := env.getDocument.Handle(ctx, queries.GetDocumentQuery{ProofID: proofID.String()})
	require.NoError(t, err)
	branch := doc.AtomicArguments[branchID.String()]
	require.NotNil(t, branch.PremiseSetID)
	seedSet := doc.OrderedSets[*branch.PremiseSetID]
	require.Len(t, seedSet.StatementIDs, 1)
	assert.Equal(t, sid.String(), seedSet.StatementIDs[0])
}

func TestDocumentFlow_DeleteArgument_PlacedInTree_ReturnsConflict(t *testing.T) {
	// Arrange
	env := newTestEnv()
	ctx := context.Background()

	proofID, err := env.createProof.Handle(ctx, commands.CreateProofCommand{})
	require.NoError(t, err)
	argID, err := env.createArgument.Handle(ctx, commands.CreateArgumentCommand{
		ProofID: proofID.String(),
	})
	require.NoError(t, err)
	treeID, err := env.createTree.Handle(ctx, commands.CreateTreeCommand{
		ProofID: proofID.String(),
	})
	require.NoError(t, err)
	_, err = env.addTreeNode.Handle(ctx, commands.AddTreeNodeCommand{
		TreeID:     treeID.String(),
		ArgumentID: argID.String(),
	})
	require.NoError(t, err)

	// Act
	err = env.deleteArgument.Handle(ctx, commands.DeleteArgumentCommand{
		ProofID:    proofID.String(),
		ArgumentID: argID.String(),
	})

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConflict(err))

	// The argument survives.
	doc, err := env.getDocument.Handle(ctx, queries.GetDocumentQuery{ProofID: proofID.String()})
	require.NoError(t, err)
	assert.Len(t, doc.AtomicArguments, 1)
}

func TestDocumentFlow_TreeNodes_ParentingThroughHandlers(t *testing.T) {
	// Arrange
	env := newTestEnv()
	ctx := context.Background()

	proofID, err := env.createProof.Handle(ctx, commands.CreateProofCommand{})
	require.NoError(t, err)
	rootArg, err := env.createArgument.Handle(ctx, commands.CreateArgumentCommand{ProofID: proofID.String()})
	require.NoError(t, err)
	childArg, err := env.createArgument.Handle(ctx, commands.CreateArgumentCommand{ProofID: proofID.String()})
	require.NoError(t, err)
	treeID, err := env.createTree.Handle(ctx, commands.CreateTreeCommand{ProofID: proofID.String(), X: 50, Y: 60})
	require.NoError(t, err)

	rootNode, err := env.addTreeNode.Handle(ctx, commands.AddTreeNodeCommand{
		TreeID: treeID.String(), ArgumentID: rootArg.String(),
	})
	require.NoError(t, err)
	childNode, err := env.addTreeNode.Handle(ctx, commands.AddTreeNodeCommand{
		TreeID: treeID.String(), ArgumentID: childArg.String(),
	})
	require.NoError(t, err)

	// Act
	err = env.setNodeParent.Handle(ctx, commands.SetNodeParentCommand{
		TreeID:   treeID.String(),
		NodeID:   childNode.String(),
		ParentID: rootNode.String(),
	})
	require.NoError(t, err)

	// Assert
	doc, err := env.getDocument.Handle(ctx, queries.GetDocumentQuery{ProofID: proofID.String()})
	require.NoError(t, err)
	require.Len(t, doc.Trees, 1)
	tree := doc.Trees[treeID.String()]
	assert.Equal(t, 2, tree.NodeCount)
	require.Len(t, tree.RootNodeIDs, 1)
	assert.Equal(t, rootNode.String(), tree.RootNodeIDs[0])
}

func TestDocumentFlow_AddTreeNode_UnknownArgument_ReturnsNotFound(t *testing.T) {
	// Arrange
	env := newTestEnv()
	ctx := context.Background()

	proofID, err := env.createProof.Handle(ctx, commands.CreateProofCommand{})
	require.NoError(t, err)
	treeID, err := env.createTree.Handle(ctx, commands.CreateTreeCommand{ProofID: proofID.String()})
	require.NoError(t, err)

	// Act
	_, err = env.addTreeNode.Handle(ctx, commands.AddTreeNodeCommand{
		TreeID:     treeID.String(),
		ArgumentID: valueobjects.NewArgumentID().String(),
	})

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDocumentFlow_MoveStatement_ThroughHandler(t *testing.T) {
	// Arrange
	env := newTestEnv()
	ctx := context.Background()

	proofID, err := env.createProof.Handle(ctx, commands.CreateProofCommand{})
	require.NoError(t, err)
	sid, err := env.createStatement.Handle(ctx, commands.CreateStatementCommand{
		ProofID: proofID.String(), Content: "P",
	})
	require.NoError(t, err)
	other, err := env.createStatement.Handle(ctx, commands.CreateStatementCommand{
		ProofID: proofID.String(), Content: "Q",
	})
	require.NoError(t, err)

	fromArg, err := env.createArgument.Handle(ctx, commands.CreateArgumentCommand{
		ProofID:             proofID.String(),
		PremiseStatementIDs: []string{sid.String()},
	})
	require.NoError(t, err)
	toArg, err := env.createArgument.Handle(ctx, commands.CreateArgumentCommand{
		ProofID:             proofID.String(),
		PremiseStatementIDs: []string{other.String()},
	})
	require.NoError(t, err)

	doc, err := env.getDocument.Handle(ctx, queries.GetDocumentQuery{ProofID: proofID.String()})
	require.NoError(t, err)
	fromSet := *doc.AtomicArguments[fromArg.String()].PremiseSetID
	toSet := *doc.AtomicArguments[toArg.String()].PremiseSetID

	// Act
	err = env.moveStatement.Handle(ctx, commands.MoveStatementCommand{
		ProofID:     proofID.String(),
		StatementID: sid.String(),
		FromSetID:   fromSet,
		ToSetID:     toSet,
		Position:    0,
	})
	require.NoError(t, err)

	// Assert
	doc, err = env.getDocument.Handle(ctx, queries.GetDocumentQuery{ProofID: proofID.String()})
	require.NoError(t, err)
	assert.Empty(t, doc.OrderedSets[fromSet].StatementIDs)
	assert.Equal(t, []string{sid.String(), other.String()}, doc.OrderedSets[toSet].StatementIDs)
}

func TestDocumentFlow_DeleteProof_RemovesTreesToo(t *testing.T) {
	// Arrange
	env := newTestEnv()
	ctx := context.Background()

	proofID, err := env.createProof.Handle(ctx, commands.CreateProofCommand{})
	require.NoError(t, err)
	treeID, err := env.createTree.Handle(ctx, commands.CreateTreeCommand{ProofID: proofID.String()})
	require.NoError(t, err)

	// Act
	err = env.deleteProof.Handle(ctx, commands.DeleteProofCommand{ProofID: proofID.String()})
	require.NoError(t, err)

	// Assert
	_, err = env.getDocument.Handle(ctx, queries.GetDocumentQuery{ProofID: proofID.String()})
	assert.True(t, pkgerrors.IsNotFound(err))
	_, err = env.treeRepo.FindByID(ctx, treeID)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDocumentFlow_InvalidCommand_ReturnsValidationError(t *testing.T) {
	// Arrange
	env := newTestEnv()
	ctx := context.Background()

	// Act
	_, err := env.createStatement.Handle(ctx, commands.CreateStatementCommand{
		ProofID: "not-a-uuid",
		Content: "P",
	})

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestDocumentFlow_EventsReachSubscribers(t *testing.T) {
	// Arrange
	env := newTestEnv()
	ctx := context.Background()
	recorder := &recordingHandler{}
	require.NoError(t, env.bus.Subscribe("proof.created", recorder))
	require.NoError(t, env.bus.Subscribe("proof.statement_added", recorder))

	// Act
	proofID, err := env.createProof.Handle(ctx, commands.CreateProofCommand{})
	require.NoError(t, err)
	_, err = env.createStatement.Handle(ctx, commands.CreateStatementCommand{
		ProofID: proofID.String(), Content: "P",
	})
	require.NoError(t, err)

	// Assert
	assert.Contains(t, recorder.types(), "proof.created")
	assert.Contains(t, recorder.types(), "proof.statement_added")
}

func TestDocumentFlow_NoOpMutations_SucceedWithoutVersionChange(t *testing.T) {
	// Arrange
	env := newTestEnv()
	ctx := context.Background()

	proofID, err := env.createProof.Handle(ctx, commands.CreateProofCommand{})
	require.NoError(t, err)
	sid, err := env.createStatement.Handle(ctx, commands.CreateStatementCommand{
		ProofID: proofID.String(), Content: "Socrates is a man",
	})
	require.NoError(t, err)
	argID, err := env.createBootstrap.Handle(ctx, commands.CreateBootstrapArgumentCommand{
		ProofID: proofID.String(),
	})
	require.NoError(t, err)

	// Act: re-submit the statement's current text, twice
	update := commands.UpdateStatementCommand{
		ProofID:     proofID.String(),
		StatementID: sid.String(),
		Content:     "Socrates is a man",
	}
	require.NoError(t, env.updateStatement.Handle(ctx, update))
	require.NoError(t, env.updateStatement.Handle(ctx, update))

	// Act: re-submit the argument's current (absent) side labels
	require.NoError(t, env.updateLabels.Handle(ctx, commands.UpdateSideLabelsCommand{
		ProofID:    proofID.String(),
		ArgumentID: argID.String(),
	}))

	// Assert: no mutation was stored
	doc, err := env.getDocument.Handle(ctx, queries.GetDocumentQuery{ProofID: proofID.String()})
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Version)

	// Arrange: a tree moved to where it already stands
	treeID, err := env.createTree.Handle(ctx, commands.CreateTreeCommand{
		ProofID: proofID.String(), X: 4, Y: 2,
	})
	require.NoError(t, err)

	// Act
	require.NoError(t, env.moveTree.Handle(ctx, commands.MoveTreeCommand{
		TreeID: treeID.String(), X: 4, Y: 2,
	}))

	// Assert
	tree, err := env.treeRepo.FindByID(ctx, treeID)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Version())
}
