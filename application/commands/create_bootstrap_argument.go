package commands

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/pkg/utils"
)

// CreateBootstrapArgumentCommand adds an argument with no premise and no
// conclusion. It is the entry point for an empty proof and gets populated
// through later edits.
type CreateBootstrapArgumentCommand struct {
	ProofID string `json:"proof_id" validate:"required,uuid"`
}

// CreateBootstrapArgumentHandler handles the CreateBootstrapArgumentCommand
type CreateBootstrapArgumentHandler struct {
	proofRepo ports.ProofRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateBootstrapArgumentHandler creates a new handler instance
func NewCreateBootstrapArgumentHandler(
	proofRepo ports.ProofRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *CreateBootstrapArgumentHandler {
	return &CreateBootstrapArgumentHandler{
		proofRepo: proofRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the command and returns the new argument's id
func (h *CreateBootstrapArgumentHandler) Handle(ctx context.Context, cmd CreateBootstrapArgumentCommand) (valueobjects.ArgumentID, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return valueobjects.ArgumentID{}, err
	}

	proofID, err := valueobjects.NewProofIDFromString(cmd.ProofID)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	proof, err := h.proofRepo.FindByID(ctx, proofID)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	argID, err := proof.CreateBootstrapArgument()
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	if err := saveProofAndPublish(ctx, h.proofRepo, h.eventBus, h.logger, proof); err != nil {
		return valueobjects.ArgumentID{}, err
	}

	h.logger.Info("bootstrap argument created",
		zap.String("proof_id", proofID.String()),
		zap.String("argument_id", argID.String()))
	return argID, nil
}
