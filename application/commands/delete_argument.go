package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
	"proofgraph/pkg/utils"
)

// DeleteArgumentCommand removes an argument from a proof. Deletion is refused
// while any tree node still maps to the argument.
type DeleteArgumentCommand struct {
	ProofID    string `json:"proof_id" validate:"required,uuid"`
	ArgumentID string `json:"argument_id" validate:"required,uuid"`
}

// DeleteArgumentHandler handles the DeleteArgumentCommand
type DeleteArgumentHandler struct {
	proofRepo ports.ProofRepository
	treeRepo  ports.TreeRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewDeleteArgumentHandler creates a new handler instance
func NewDeleteArgumentHandler(
	proofRepo ports.ProofRepository,
	treeRepo ports.TreeRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *DeleteArgumentHandler {
	return &DeleteArgumentHandler{
		proofRepo: proofRepo,
		treeRepo:  treeRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the delete argument command
func (h *DeleteArgumentHandler) Handle(ctx context.Context, cmd DeleteArgumentCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}

	proofID, err := valueobjects.NewProofIDFromString(cmd.ProofID)
	if err != nil {
		return err
	}
	argID, err := valueobjects.NewArgumentIDFromString(cmd.ArgumentID)
	if err != nil {
		return err
	}

	trees, err := h.treeRepo.FindByProofID(ctx, proofID)
	if err != nil {
		return err
	}
	for _, tree := range trees {
		if tree.HasArgument(argID) {
			return pkgerrors.NewConflictError(
				fmt.Sprintf("argument %q is placed in tree %q", argID.String(), tree.ID().String()))
		}
	}

	proof, err := h.proofRepo.FindByID(ctx, proofID)
	if err != nil {
		return err
	}

	if err := proof.DeleteAtomicArgument(argID); err != nil {
		return err
	}

	if err := saveProofAndPublish(ctx, h.proofRepo, h.eventBus, h.logger, proof); err != nil {
		return err
	}

	h.logger.Info("argument deleted",
		zap.String("proof_id", proofID.String()),
		zap.String("argument_id", argID.String()))
	return nil
}
