package queries

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/dto"
	"proofgraph/application/ports"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/domain/services"
	"proofgraph/pkg/utils"
)

// GetProofStatsQuery derives statistics for a proof and its trees.
type GetProofStatsQuery struct {
	ProofID string `json:"proof_id" validate:"required,uuid"`
}

// GetProofStatsHandler handles the GetProofStatsQuery
type GetProofStatsHandler struct {
	proofRepo ports.ProofRepository
	treeRepo  ports.TreeRepository
	stats     *services.ProofStatsService
	logger    *zap.Logger
}

// NewGetProofStatsHandler creates a new handler instance
func NewGetProofStatsHandler(
	proofRepo ports.ProofRepository,
	treeRepo ports.TreeRepository,
	stats *services.ProofStatsService,
	logger *zap.Logger,
) *GetProofStatsHandler {
	return &GetProofStatsHandler{
		proofRepo: proofRepo,
		treeRepo:  treeRepo,
		stats:     stats,
		logger:    logger,
	}
}

// Handle executes the get proof stats query
func (h *GetProofStatsHandler) Handle(ctx context.Context, query GetProofStatsQuery) (*dto.StatsDTO, error) {
	if err := utils.ValidateStruct(query); err != nil {
		return nil, err
	}

	proofID, err := valueobjects.NewProofIDFromString(query.ProofID)
	if err != nil {
		return nil, err
	}

	proof, err := h.proofRepo.FindByID(ctx, proofID)
	if err != nil {
		return nil, err
	}

	trees, err := h.treeRepo.FindByProofID(ctx, proofID)
	if err != nil {
		return nil, err
	}

	proofStats, err := h.stats.Derive(proof, trees)
	if err != nil {
		return nil, err
	}

	return dto.ToStatsDTO(proofStats), nil
}
