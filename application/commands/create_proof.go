package commands

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/core/aggregates"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/pkg/utils"
)

// CreateProofCommand starts an empty proof document.
type CreateProofCommand struct{}

// CreateProofHandler handles the CreateProofCommand
type CreateProofHandler struct {
	proofRepo ports.ProofRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateProofHandler creates a new handler instance
func NewCreateProofHandler(
	proofRepo ports.ProofRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *CreateProofHandler {
	return &CreateProofHandler{
		proofRepo: proofRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the create proof command and returns the new proof's id
func (h *CreateProofHandler) Handle(ctx context.Context, _ CreateProofCommand) (valueobjects.ProofID, error) {
	proof := aggregates.NewProof()

	if err := saveProofAndPublish(ctx, h.proofRepo, h.eventBus, h.logger, proof); err != nil {
		return valueobjects.ProofID{}, err
	}

	h.logger.Info("proof created", zap.String("proof_id", proof.ID().String()))
	return proof.ID(), nil
}

// DeleteProofCommand removes a proof document and its trees.
type DeleteProofCommand struct {
	ProofID string `json:"proof_id" validate:"required,uuid"`
}

// DeleteProofHandler handles the DeleteProofCommand
type DeleteProofHandler struct {
	proofRepo ports.ProofRepository
	treeRepo  ports.TreeRepository
	logger    *zap.Logger
}

// NewDeleteProofHandler creates a new handler instance
func NewDeleteProofHandler(
	proofRepo ports.ProofRepository,
	treeRepo ports.TreeRepository,
	logger *zap.Logger,
) *DeleteProofHandler {
	return &DeleteProofHandler{
		proofRepo: proofRepo,
		treeRepo:  treeRepo,
		logger:    logger,
	}
}

// Handle executes the delete proof command
func (h *DeleteProofHandler) Handle(ctx context.Context, cmd DeleteProofCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}

	proofID, err := valueobjects.NewProofIDFromString(cmd.ProofID)
	if err != nil {
		return err
	}

	trees, err := h.treeRepo.FindByProofID(ctx, proofID)
	if err != nil {
		return err
	}
	for _, tree := range trees {
		if err := h.treeRepo.Delete(ctx, tree.ID()); err != nil {
			return err
		}
	}

	if err := h.proofRepo.Delete(ctx, proofID); err != nil {
		return err
	}

	h.logger.Info("proof deleted", zap.String("proof_id", proofID.String()))
	return nil
}
