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

// Branch directions supported by BranchArgumentCommand.
const (
	BranchFromConclusion = "from_conclusion"
	BranchToPremise      = "to_premise"
)

// BranchArgumentCommand grows the proof from an existing argument. Branching
// from a conclusion seeds a new argument whose premise reuses the selected
// conclusion statement; branching to a premise seeds one whose conclusion
// feeds the selected premise statement.
type BranchArgumentCommand struct {
	ProofID    string `json:"proof_id" validate:"required,uuid"`
	ArgumentID string `json:"argument_id" validate:"required,uuid"`
	Direction  string `json:"direction" validate:"required,oneof=from_conclusion to_premise"`
	Index      int    `json:"index" validate:"min=0"`
}

// BranchArgumentHandler handles the BranchArgumentCommand
type BranchArgumentHandler struct {
	proofRepo ports.ProofRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewBranchArgumentHandler creates a new handler instance
func NewBranchArgumentHandler(
	proofRepo ports.ProofRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *BranchArgumentHandler {
	return &BranchArgumentHandler{
		proofRepo: proofRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the branch argument command and returns the new argument's id
func (h *BranchArgumentHandler) Handle(ctx context.Context, cmd BranchArgumentCommand) (valueobjects.ArgumentID, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return valueobjects.ArgumentID{}, err
	}

	proofID, err := valueobjects.NewProofIDFromString(cmd.ProofID)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}
	argID, err := valueobjects.NewArgumentIDFromString(cmd.ArgumentID)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	proof, err := h.proofRepo.FindByID(ctx, proofID)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	var newArgID valueobjects.ArgumentID
	switch cmd.Direction {
	case BranchFromConclusion:
		newArgID, err = proof.BranchFromConclusion(argID, cmd.Index)
	case BranchToPremise:
		newArgID, err = proof.BranchToPremise(argID, cmd.Index)
	default:
		return valueobjects.ArgumentID{}, pkgerrors.NewValidationError(
			fmt.Sprintf("unknown branch direction: %q", cmd.Direction))
	}
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	if err := saveProofAndPublish(ctx, h.proofRepo, h.eventBus, h.logger, proof); err != nil {
		return valueobjects.ArgumentID{}, err
	}

	h.logger.Info("argument branched",
		zap.String("proof_id", proofID.String()),
		zap.String("source_argument_id", argID.String()),
		zap.String("new_argument_id", newArgID.String()),
		zap.String("direction", cmd.Direction))
	return newArgID, nil
}
