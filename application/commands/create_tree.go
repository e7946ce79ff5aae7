package commands

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/core/aggregates"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/pkg/utils"
)

// CreateTreeCommand places a new empty tree in a proof's workspace.
type CreateTreeCommand struct {
	ProofID string  `json:"proof_id" validate:"required,uuid"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// CreateTreeHandler handles the CreateTreeCommand
type CreateTreeHandler struct {
	proofRepo ports.ProofRepository
	treeRepo  ports.TreeRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateTreeHandler creates a new handler instance
func NewCreateTreeHandler(
	proofRepo ports.ProofRepository,
	treeRepo ports.TreeRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *CreateTreeHandler {
	return &CreateTreeHandler{
		proofRepo: proofRepo,
		treeRepo:  treeRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the create tree command and returns the new tree's id
func (h *CreateTreeHandler) Handle(ctx context.Context, cmd CreateTreeCommand) (valueobjects.TreeID, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return valueobjects.TreeID{}, err
	}

	proofID, err := valueobjects.NewProofIDFromString(cmd.ProofID)
	if err != nil {
		return valueobjects.TreeID{}, err
	}

	// The proof must exist before a tree can be attached to it.
	if _, err := h.proofRepo.FindByID(ctx, proofID); err != nil {
		return valueobjects.TreeID{}, err
	}

	tree, err := aggregates.NewTree(proofID, valueobjects.NewPosition(cmd.X, cmd.Y))
	if err != nil {
		return valueobjects.TreeID{}, err
	}

	if err := saveTreeAndPublish(ctx, h.treeRepo, h.eventBus, h.logger, tree); err != nil {
		return valueobjects.TreeID{}, err
	}

	h.logger.Info("tree created",
		zap.String("proof_id", proofID.String()),
		zap.String("tree_id", tree.ID().String()))
	return tree.ID(), nil
}

// MoveTreeCommand repositions a tree in the workspace.
type MoveTreeCommand struct {
	TreeID string  `json:"tree_id" validate:"required,uuid"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// MoveTreeHandler handles the MoveTreeCommand
type MoveTreeHandler struct {
	treeRepo ports.TreeRepository
	eventBus ports.EventPublisher
	logger   *zap.Logger
}

// NewMoveTreeHandler creates a new handler instance
func NewMoveTreeHandler(
	treeRepo ports.TreeRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *MoveTreeHandler {
	return &MoveTreeHandler{
		treeRepo: treeRepo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Handle executes the move tree command
func (h *MoveTreeHandler) Handle(ctx context.Context, cmd MoveTreeCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}

	treeID, err := valueobjects.NewTreeIDFromString(cmd.TreeID)
	if err != nil {
		return err
	}

	tree, err := h.treeRepo.FindByID(ctx, treeID)
	if err != nil {
		return err
	}

	tree.MoveTo(valueobjects.NewPosition(cmd.X, cmd.Y))

	if err := saveTreeAndPublish(ctx, h.treeRepo, h.eventBus, h.logger, tree); err != nil {
		return err
	}
	return nil
}
