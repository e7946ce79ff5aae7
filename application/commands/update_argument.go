package commands

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
	"proofgraph/pkg/utils"
)

// UpdateArgumentCommand rewires an argument's premise and conclusion set
// references. Empty ids mean absent. Wiring an argument's premise to the set
// another argument concludes into is how two steps are connected.
type UpdateArgumentCommand struct {
	ProofID         string `json:"proof_id" validate:"required,uuid"`
	ArgumentID      string `json:"argument_id" validate:"required,uuid"`
	PremiseSetID    string `json:"premise_set_id" validate:"omitempty,uuid"`
	ConclusionSetID string `json:"conclusion_set_id" validate:"omitempty,uuid"`
}

// UpdateArgumentHandler handles the UpdateArgumentCommand
type UpdateArgumentHandler struct {
	proofRepo ports.ProofRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewUpdateArgumentHandler creates a new handler instance
func NewUpdateArgumentHandler(
	proofRepo ports.ProofRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *UpdateArgumentHandler {
	return &UpdateArgumentHandler{
		proofRepo: proofRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the update argument command
func (h *UpdateArgumentHandler) Handle(ctx context.Context, cmd UpdateArgumentCommand) error {
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

	premiseSetID, err := optionalOrderedSetID(cmd.PremiseSetID)
	if err != nil {
		return err
	}
	conclusionSetID, err := optionalOrderedSetID(cmd.ConclusionSetID)
	if err != nil {
		return err
	}

	proof, err := h.proofRepo.FindByID(ctx, proofID)
	if err != nil {
		return err
	}

	if err := proof.UpdateAtomicArgument(argID, premiseSetID, conclusionSetID); err != nil {
		return err
	}

	if err := saveProofAndPublish(ctx, h.proofRepo, h.eventBus, h.logger, proof); err != nil {
		return err
	}
	return nil
}

// UpdateSideLabelsCommand replaces an argument's side annotations.
// Whitespace-only labels normalize to absent.
type UpdateSideLabelsCommand struct {
	ProofID    string `json:"proof_id" validate:"required,uuid"`
	ArgumentID string `json:"argument_id" validate:"required,uuid"`
	LeftLabel  string `json:"left_label" validate:"max=256"`
	RightLabel string `json:"right_label" validate:"max=256"`
}

// UpdateSideLabelsHandler handles the UpdateSideLabelsCommand
type UpdateSideLabelsHandler struct {
	proofRepo ports.ProofRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewUpdateSideLabelsHandler creates a new handler instance
func NewUpdateSideLabelsHandler(
	proofRepo ports.ProofRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *UpdateSideLabelsHandler {
	return &UpdateSideLabelsHandler{
		proofRepo: proofRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the update side labels command
func (h *UpdateSideLabelsHandler) Handle(ctx context.Context, cmd UpdateSideLabelsCommand) error {
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

	labels, err := valueobjects.NewSideLabels(cmd.LeftLabel, cmd.RightLabel)
	if err != nil {
		return err
	}

	proof, err := h.proofRepo.FindByID(ctx, proofID)
	if err != nil {
		return err
	}

	if err := proof.UpdateArgumentSideLabels(argID, labels); err != nil {
		return err
	}

	if err := saveProofAndPublish(ctx, h.proofRepo, h.eventBus, h.logger, proof); err != nil {
		return err
	}
	return nil
}

func optionalOrderedSetID(raw string) (*valueobjects.OrderedSetID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := valueobjects.NewOrderedSetIDFromString(raw)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	return &id, nil
}
