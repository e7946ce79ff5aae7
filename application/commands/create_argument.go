package commands

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/pkg/utils"
)

// CreateArgumentCommand creates a reasoning step from lists of existing
// statement ids. Non-empty lists become implicit ordered sets wired as the
// argument's premise and conclusion; two empty lists create a bootstrap
// argument.
type CreateArgumentCommand struct {
	ProofID                string   `json:"proof_id" validate:"required,uuid"`
	PremiseStatementIDs    []string `json:"premise_statement_ids" validate:"dive,uuid"`
	ConclusionStatementIDs []string `json:"conclusion_statement_ids" validate:"dive,uuid"`
	LeftLabel              string   `json:"left_label" validate:"max=256"`
	RightLabel             string   `json:"right_label" validate:"max=256"`
}

// CreateArgumentHandler handles the CreateArgumentCommand
type CreateArgumentHandler struct {
	proofRepo ports.ProofRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateArgumentHandler creates a new handler instance
func NewCreateArgumentHandler(
	proofRepo ports.ProofRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *CreateArgumentHandler {
	return &CreateArgumentHandler{
		proofRepo: proofRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the create argument command and returns the new
// argument's id
func (h *CreateArgumentHandler) Handle(ctx context.Context, cmd CreateArgumentCommand) (valueobjects.ArgumentID, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return valueobjects.ArgumentID{}, err
	}

	proofID, err := valueobjects.NewProofIDFromString(cmd.ProofID)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	labels, err := valueobjects.NewSideLabels(cmd.LeftLabel, cmd.RightLabel)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	proof, err := h.proofRepo.FindByID(ctx, proofID)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	var premiseSetID, conclusionSetID *valueobjects.OrderedSetID

	if len(cmd.PremiseStatementIDs) > 0 {
		ids, err := parseStatementIDs(cmd.PremiseStatementIDs)
		if err != nil {
			return valueobjects.ArgumentID{}, err
		}
		setID, err := proof.CreateOrderedSet(ids)
		if err != nil {
			return valueobjects.ArgumentID{}, err
		}
		premiseSetID = &setID
	}

	if len(cmd.ConclusionStatementIDs) > 0 {
		ids, err := parseStatementIDs(cmd.ConclusionStatementIDs)
		if err != nil {
			return valueobjects.ArgumentID{}, err
		}
		setID, err := proof.CreateOrderedSet(ids)
		if err != nil {
			return valueobjects.ArgumentID{}, err
		}
		conclusionSetID = &setID
	}

	argID, err := proof.CreateAtomicArgument(premiseSetID, conclusionSetID, labels)
	if err != nil {
		return valueobjects.ArgumentID{}, err
	}

	if err := saveProofAndPublish(ctx, h.proofRepo, h.eventBus, h.logger, proof); err != nil {
		return valueobjects.ArgumentID{}, err
	}

	h.logger.Info("argument created",
		zap.String("proof_id", cmd.ProofID),
		zap.String("argument_id", argID.String()),
		zap.Int("premises", len(cmd.PremiseStatementIDs)),
		zap.Int("conclusions", len(cmd.ConclusionStatementIDs)),
	)

	return argID, nil
}

func parseStatementIDs(raw []string) ([]valueobjects.StatementID, error) {
	ids := make([]valueobjects.StatementID, 0, len(raw))
	for _, r := range raw {
		id, err := valueobjects.NewStatementIDFromString(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
