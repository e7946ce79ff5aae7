package ports

import (
	"context"

	"proofgraph/application/dto"
	"proofgraph/domain/core/aggregates"
	"proofgraph/domain/core/valueobjects"
	"proofgraph/domain/events"
)

// ProofRepository defines the interface for proof document persistence.
// This is a port in hexagonal architecture - the domain doesn't know about
// the implementation.
type ProofRepository interface {
	// FindByID retrieves a proof aggregate by its ID
	FindByID(ctx context.Context, id valueobjects.ProofID) (*aggregates.Proof, error)

	// Save persists a proof aggregate. Implementations enforce optimistic
	// concurrency on the aggregate version and return a conflict error when
	// the stored version is not older than the one being saved.
	Save(ctx context.Context, proof *aggregates.Proof) error

	// Delete removes a proof document
	Delete(ctx context.Context, id valueobjects.ProofID) error
}

// TreeRepository defines the interface for derivation tree persistence
type TreeRepository interface {
	// FindByID retrieves a tree by its ID
	FindByID(ctx context.Context, id valueobjects.TreeID) (*aggregates.Tree, error)

	// FindByProofID retrieves all trees for a proof document
	FindByProofID(ctx context.Context, proofID valueobjects.ProofID) ([]*aggregates.Tree, error)

	// Save persists a tree with the same optimistic concurrency contract as
	// ProofRepository.Save
	Save(ctx context.Context, tree *aggregates.Tree) error

	// Delete removes a tree
	Delete(ctx context.Context, id valueobjects.TreeID) error
}

// DocumentRepository persists the whole serialized envelope at once, for
// stores that keep one item per document rather than one per aggregate
type DocumentRepository interface {
	// FindByID retrieves a document envelope by proof ID
	FindByID(ctx context.Context, id valueobjects.ProofID) (*dto.DocumentDTO, error)

	// Save persists a document envelope with a conditional write on Version
	Save(ctx context.Context, doc dto.DocumentDTO) error

	// Delete removes a document envelope
	Delete(ctx context.Context, id valueobjects.ProofID) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// EventBus defines the interface for publishing and subscribing to domain events
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler for an event type
	Subscribe(eventType string, handler EventHandler) error

	// Unsubscribe removes a handler
	Unsubscribe(eventType string, handler EventHandler) error
}

// EventHandler defines the interface for handling domain events
type EventHandler interface {
	// Handle processes an event
	Handle(ctx context.Context, event events.DomainEvent) error

	// CanHandle checks if this handler can process the event
	CanHandle(eventType string) bool
}
