package memory

import (
	"context"
	"fmt"
	"sync"

	"proofgraph/application/dto"
	"proofgraph/application/ports"
	"proofgraph/domain/core/aggregates"
	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
)

// ProofRepository provides an in-memory implementation of ports.ProofRepository.
// Aggregates are stored as document envelopes so callers never share mutable
// state with the store.
type ProofRepository struct {
	mu     sync.RWMutex
	proofs map[string]dto.DocumentDTO
}

// NewProofRepository creates a new in-memory proof repository
func NewProofRepository() *ProofRepository {
	return &ProofRepository{
		proofs: make(map[string]dto.DocumentDTO),
	}
}

var _ ports.ProofRepository = (*ProofRepository)(nil)

// FindByID retrieves a proof aggregate by its ID
func (r *ProofRepository) FindByID(ctx context.Context, id valueobjects.ProofID) (*aggregates.Proof, error) {
	r.mu.RLock()
	doc, exists := r.proofs[id.String()]
	r.mu.RUnlock()

	if !exists {
		return nil, pkgerrors.NewNotFoundError("proof")
	}

	proof, _, err := dto.DocumentFromDTO(doc)
	if err != nil {
		return nil, pkgerrors.Wrap(err, fmt.Sprintf("failed to load proof %q", id.String()))
	}
	return proof, nil
}

// Save persists a proof aggregate with optimistic concurrency on the version
func (r *ProofRepository) Save(ctx context.Context, proof *aggregates.Proof) error {
	doc := dto.ToDocumentDTO(proof, nil, nil)

	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, exists := r.proofs[proof.ID().String()]; exists {
		if stored.Version >= proof.Version() {
			return pkgerrors.NewConflictError(fmt.Sprintf(
				"proof %q was modified concurrently: stored version %d, saving version %d",
				proof.ID().String(), stored.Version, proof.Version()))
		}
	}

	r.proofs[proof.ID().String()] = doc
	return nil
}

// Delete removes a proof
func (r *ProofRepository) Delete(ctx context.Context, id valueobjects.ProofID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.proofs[id.String()]; !exists {
		return pkgerrors.NewNotFoundError("proof")
	}
	delete(r.proofs, id.String())
	return nil
}
