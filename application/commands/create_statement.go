package commands

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/pkg/utils"
)

// CreateStatementCommand represents the command to add a statement to a proof
type CreateStatementCommand struct {
	ProofID string `json:"proof_id" validate:"required,uuid"`
	Content string `json:"content" validate:"required,min=1,max=10000"`
}

// CreateStatementHandler handles the CreateStatementCommand
type CreateStatementHandler struct {
	proofRepo ports.ProofRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateStatementHandler creates a new handler instance
func NewCreateStatementHandler(
	proofRepo ports.ProofRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *CreateStatementHandler {
	return &CreateStatementHandler{
		proofRepo: proofRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the create statement command and returns the new
// statement's id
func (h *CreateStatementHandler) Handle(ctx context.Context, cmd CreateStatementCommand) (valueobjects.StatementID, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return valueobjects.StatementID{}, err
	}

	proofID, err := valueobjects.NewProofIDFromString(cmd.ProofID)
	if err != nil {
		return valueobjects.StatementID{}, err
	}

	proof, err := h.proofRepo.FindByID(ctx, proofID)
	if err != nil {
		return valueobjects.StatementID{}, err
	}

	stmtID, err := proof.AddStatement(cmd.Content)
	if err != nil {
		return valueobjects.StatementID{}, err
	}

	if err := saveProofAndPublish(ctx, h.proofRepo, h.eventBus, h.logger, proof); err != nil {
		return valueobjects.StatementID{}, err
	}

	h.logger.Info("statement created",
		zap.String("proof_id", cmd.ProofID),
		zap.String("statement_id", stmtID.String()),
	)

	return stmtID, nil
}
