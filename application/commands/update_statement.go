package commands

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/pkg/utils"
)

// UpdateStatementCommand replaces a statement's text. Identity is preserved:
// every ordered set referencing the statement sees the new content.
type UpdateStatementCommand struct {
	ProofID     string `json:"proof_id" validate:"required,uuid"`
	StatementID string `json:"statement_id" validate:"required,uuid"`
	Content     string `json:"content" validate:"required,min=1,max=10000"`
}

// UpdateStatementHandler handles the UpdateStatementCommand
type UpdateStatementHandler struct {
	proofRepo ports.ProofRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewUpdateStatementHandler creates a new handler instance
func NewUpdateStatementHandler(
	proofRepo ports.ProofRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *UpdateStatementHandler {
	return &UpdateStatementHandler{
		proofRepo: proofRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the update statement command
func (h *UpdateStatementHandler) Handle(ctx context.Context, cmd UpdateStatementCommand) error {
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

	proof, err := h.proofRepo.FindByID(ctx, proofID)
	if err != nil {
		return err
	}

	if err := proof.UpdateStatement(stmtID, cmd.Content); err != nil {
		return err
	}

	if err := saveProofAndPublish(ctx, h.proofRepo, h.eventBus, h.logger, proof); err != nil {
		return err
	}
	return nil
}

// DeleteStatementCommand removes an unused statement
type DeleteStatementCommand struct {
	ProofID     string `json:"proof_id" validate:"required,uuid"`
	StatementID string `json:"statement_id" validate:"required,uuid"`
}

// DeleteStatementHandler handles the DeleteStatementCommand
type DeleteStatementHandler struct {
	proofRepo ports.ProofRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewDeleteStatementHandler creates a new handler instance
func NewDeleteStatementHandler(
	proofRepo ports.ProofRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *DeleteStatementHandler {
	return &DeleteStatementHandler{
		proofRepo: proofRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the delete statement command. A statement still inside any
// ordered set cannot be deleted; the aggregate reports a consistency error
// and nothing changes.
func (h *DeleteStatementHandler) Handle(ctx context.Context, cmd DeleteStatementCommand) error {
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

	proof, err := h.proofRepo.FindByID(ctx, proofID)
	if err != nil {
		return err
	}

	if err := proof.DeleteStatement(stmtID); err != nil {
		return err
	}

	if err := saveProofAndPublish(ctx, h.proofRepo, h.eventBus, h.logger, proof); err != nil {
		return err
	}

	h.logger.Info("statement deleted",
		zap.String("proof_id", cmd.ProofID),
		zap.String("statement_id", cmd.StatementID),
	)
	return nil
}
