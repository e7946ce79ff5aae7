package commands

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/pkg/utils"
)

// MoveStatementCommand relocates a statement from one ordered set to a
// position in another. The move either fully applies or leaves both sets
// untouched.
type MoveStatementCommand struct {
	ProofID     string `json:"proof_id" validate:"required,uuid"`
	StatementID string `json:"statement_id" validate:"required,uuid"`
	FromSetID   string `json:"from_set_id" validate:"required,uuid"`
	ToSetID     string `json:"to_set_id" validate:"required,uuid"`
	Position    int    `json:"position" validate:"min=0"`
}

// MoveStatementHandler handles the MoveStatementCommand
type MoveStatementHandler struct {
	proofRepo ports.ProofRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewMoveStatementHandler creates a new handler instance
func NewMoveStatementHandler(
	proofRepo ports.ProofRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *MoveStatementHandler {
	return &MoveStatementHandler{
		proofRepo: proofRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the move statement command
func (h *MoveStatementHandler) Handle(ctx context.Context, cmd MoveStatementCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}

	proofID, err := valueobjects.NewProofIDFromString(cmd.ProofID)
	if err != nil {
		return err
	}
	stmtID, err := valueobjects.NewStatementIDFromString(cmd.StatementID)
	if err != nil {
		return err
	}
	fromSetID, err := valueobjects.NewOrderedSetIDFromString(cmd.FromSetID)
	if err != nil {
		return err
	}
	toSetID, err := valueobjects.NewOrderedSetIDFromString(cmd.ToSetID)
	if err != nil {
		return err
	}

	proof, err := h.proofRepo.FindByID(ctx, proofID)
	if err != nil {
		return err
	}

	if err := proof.MoveStatement(stmtID, fromSetID, toSetID, cmd.Position); err != nil {
		return err
	}

	if err := saveProofAndPublish(ctx, h.proofRepo, h.eventBus, h.logger, proof); err != nil {
		return err
	}
	return nil
}
