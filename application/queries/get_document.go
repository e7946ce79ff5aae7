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

// GetDocumentQuery fetches the full document envelope for a proof,
// optionally with derived statistics attached.
type GetDocumentQuery struct {
	ProofID      string `json:"proof_id" validate:"required,uuid"`
	IncludeStats bool   `json:"include_stats"`
}

// GetDocumentHandler handles the GetDocumentQuery
type GetDocumentHandler struct {
	proofRepo ports.ProofRepository
	treeRepo  ports.TreeRepository
	stats     *services.ProofStatsService
	logger    *zap.Logger
}

// NewGetDocumentHandler creates a new handler instance
func NewGetDocumentHandler(
	proofRepo ports.ProofRepository,
	treeRepo ports.TreeRepository,
	stats *services.ProofStatsService,
	logger *zap.Logger,
) *GetDocumentHandler {
	return &GetDocumentHandler{
		proofRepo: proofRepo,
		treeRepo:  treeRepo,
		stats:     stats,
		logger:    logger,
	}
}

// Handle executes the get document query
func (h *GetDocumentHandler) Handle(ctx context.Context, query GetDocumentQuery) (*dto.DocumentDTO, error) {
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

	var proofStats *services.ProofStats
	if query.IncludeStats {
		proofStats, err = h.stats.Derive(proof, trees)
		if err != nil {
			return nil, err
		}
	}

	doc := dto.ToDocumentDTO(proof, trees, proofStats)
	return &doc, nil
}
