package dynamodb

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"proofgraph/application/dto"
	"proofgraph/application/ports"
	"proofgraph/domain/core/aggregates"
	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
)

// ProofRepository implements ports.ProofRepository on top of the document
// envelope store. The full proof is one item; the envelope's conditional
// write carries the optimistic concurrency check.
type ProofRepository struct {
	docs   ports.DocumentRepository
	logger *zap.Logger
}

// NewProofRepository creates a new ProofRepository
func NewProofRepository(docs ports.DocumentRepository, logger *zap.Logger) *ProofRepository {
	return &ProofRepository{
		docs:   docs,
		logger: logger,
	}
}

var _ ports.ProofRepository = (*ProofRepository)(nil)

// FindByID retrieves a proof aggregate by its ID
func (r *ProofRepository) FindByID(ctx context.Context, id valueobjects.ProofID) (*aggregates.Proof, error) {
	doc, err := r.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	proof, _, err := dto.DocumentFromDTO(*doc)
	if err != nil {
		return nil, pkgerrors.Wrap(err, fmt.Sprintf("failed to load proof %q", id.String()))
	}
	return proof, nil
}

// Save persists a proof aggregate
func (r *ProofRepository) Save(ctx context.Context, proof *aggregates.Proof) error {
	doc := dto.ToDocumentDTO(proof, nil, nil)
	return r.docs.Save(ctx, doc)
}

// Delete removes a proof
func (r *ProofRepository) Delete(ctx context.Context, id valueobjects.ProofID) error {
	return r.docs.Delete(ctx, id)
}
