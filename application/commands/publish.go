package commands

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/core/aggregates"
)

// saveProofAndPublish persists the aggregate and flushes its events. A
// mutation that changed nothing leaves the event buffer empty; in that case
// both the write and the publish are skipped, so an unchanged version is
// never offered to the repository's concurrency check.
func saveProofAndPublish(
	ctx context.Context,
	repo ports.ProofRepository,
	bus ports.EventPublisher,
	logger *zap.Logger,
	proof *aggregates.Proof,
) error {
	if len(proof.GetUncommittedEvents()) == 0 {
		return nil
	}
	if err := repo.Save(ctx, proof); err != nil {
		return err
	}
	publishProofEvents(ctx, bus, logger, proof)
	return nil
}

// saveTreeAndPublish does the same for a tree aggregate
func saveTreeAndPublish(
	ctx context.Context,
	repo ports.TreeRepository,
	bus ports.EventPublisher,
	logger *zap.Logger,
	tree *aggregates.Tree,
) error {
	if len(tree.GetUncommittedEvents()) == 0 {
		return nil
	}
	if err := repo.Save(ctx, tree); err != nil {
		return err
	}
	publishTreeEvents(ctx, bus, logger, tree)
	return nil
}

// publishProofEvents flushes a proof's uncommitted events to the bus after a
// successful save. Delivery is best-effort: the mutation is already durable,
// so a publish failure is logged, not surfaced to the caller.
func publishProofEvents(ctx context.Context, bus ports.EventPublisher, logger *zap.Logger, proof *aggregates.Proof) {
	evts := proof.GetUncommittedEvents()
	if len(evts) == 0 {
		return
	}

	if err := bus.PublishBatch(ctx, evts); err != nil {
		logger.Warn("failed to publish proof events",
			zap.String("proof_id", proof.ID().String()),
			zap.Int("event_count", len(evts)),
			zap.Error(err),
		)
		return
	}

	proof.MarkEventsAsCommitted()
}

// publishTreeEvents does the same for a tree aggregate
func publishTreeEvents(ctx context.Context, bus ports.EventPublisher, logger *zap.Logger, tree *aggregates.Tree) {
	evts := tree.GetUncommittedEvents()
	if len(evts) == 0 {
		return
	}

	if err := bus.PublishBatch(ctx, evts); err != nil {
		logger.Warn("failed to publish tree events",
			zap.String("tree_id", tree.ID().String()),
			zap.Int("event_count", len(evts)),
			zap.Error(err),
		)
		return
	}

	tree.MarkEventsAsCommitted()
}
