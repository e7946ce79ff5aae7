package commands

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
	"proofgraph/pkg/utils"
)

// AddTreeNodeCommand places an argument instance into a tree. The same
// argument may appear in several nodes, each occurrence is a distinct node.
type AddTreeNodeCommand struct {
	TreeID     string `json:"tree_id" validate:"required,uuid"`
	ArgumentID string `json:"argument_id" validate:"required,uuid"`
}

// AddTreeNodeHandler handles the AddTreeNodeCommand
type AddTreeNodeHandler struct {
	proofRepo ports.ProofRepository
	treeRepo  ports.TreeRepository
	eventBus  ports.EventPublisher
	logger    *zap.Logger
}

// NewAddTreeNodeHandler creates a new handler instance
func NewAddTreeNodeHandler(
	proofRepo ports.ProofRepository,
	treeRepo ports.TreeRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *AddTreeNodeHandler {
	return &AddTreeNodeHandler{
		proofRepo: proofRepo,
		treeRepo:  treeRepo,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Handle executes the add tree node command and returns the new node's id
func (h *AddTreeNodeHandler) Handle(ctx context.Context, cmd AddTreeNodeCommand) (valueobjects.TreeNodeID, error) {
	if err := utils.ValidateStruct(cmd); err != nil {
		return valueobjects.TreeNodeID{}, err
	}

	treeID, err := valueobjects.NewTreeIDFromString(cmd.TreeID)
	if err != nil {
		return valueobjects.TreeNodeID{}, err
	}
	argID, err := valueobjects.NewArgumentIDFromString(cmd.ArgumentID)
	if err != nil {
		return valueobjects.TreeNodeID{}, err
	}

	tree, err := h.treeRepo.FindByID(ctx, treeID)
	if err != nil {
		return valueobjects.TreeNodeID{}, err
	}

	proof, err := h.proofRepo.FindByID(ctx, tree.ProofID())
	if err != nil {
		return valueobjects.TreeNodeID{}, err
	}
	if _, err := proof.GetArgument(argID); err != nil {
		return valueobjects.TreeNodeID{}, err
	}

	nodeID := valueobjects.NewTreeNodeID()
	if err := tree.AddNode(nodeID, argID); err != nil {
		return valueobjects.TreeNodeID{}, err
	}

	if err := saveTreeAndPublish(ctx, h.treeRepo, h.eventBus, h.logger, tree); err != nil {
		return valueobjects.TreeNodeID{}, err
	}

	h.logger.Info("tree node added",
		zap.String("tree_id", treeID.String()),
		zap.String("node_id", nodeID.String()),
		zap.String("argument_id", argID.String()))
	return nodeID, nil
}

// SetNodeParentCommand reparents a node within its tree. An empty parent id
// makes the node a root.
type SetNodeParentCommand struct {
	TreeID   string `json:"tree_id" validate:"required,uuid"`
	NodeID   string `json:"node_id" validate:"required,uuid"`
	ParentID string `json:"parent_id" validate:"omitempty,uuid"`
}

// SetNodeParentHandler handles the SetNodeParentCommand
type SetNodeParentHandler struct {
	treeRepo ports.TreeRepository
	eventBus ports.EventPublisher
	logger   *zap.Logger
}

// NewSetNodeParentHandler creates a new handler instance
func NewSetNodeParentHandler(
	treeRepo ports.TreeRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *SetNodeParentHandler {
	return &SetNodeParentHandler{
		treeRepo: treeRepo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Handle executes the set node parent command
func (h *SetNodeParentHandler) Handle(ctx context.Context, cmd SetNodeParentCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}

	treeID, err := valueobjects.NewTreeIDFromString(cmd.TreeID)
	if err != nil {
		return err
	}
	nodeID, err := valueobjects.NewTreeNodeIDFromString(cmd.NodeID)
	if err != nil {
		return err
	}

	var parentID *valueobjects.TreeNodeID
	if cmd.ParentID != "" {
		id, err := valueobjects.NewTreeNodeIDFromString(cmd.ParentID)
		if err != nil {
			return pkgerrors.NewValidationError(err.Error())
		}
		parentID = &id
	}

	tree, err := h.treeRepo.FindByID(ctx, treeID)
	if err != nil {
		return err
	}

	if err := tree.SetNodeParent(nodeID, parentID); err != nil {
		return err
	}

	if err := saveTreeAndPublish(ctx, h.treeRepo, h.eventBus, h.logger, tree); err != nil {
		return err
	}
	return nil
}

// RemoveTreeNodeCommand removes a node from a tree. Children of the removed
// node become roots.
type RemoveTreeNodeCommand struct {
	TreeID string `json:"tree_id" validate:"required,uuid"`
	NodeID string `json:"node_id" validate:"required,uuid"`
}

// RemoveTreeNodeHandler handles the RemoveTreeNodeCommand
type RemoveTreeNodeHandler struct {
	treeRepo ports.TreeRepository
	eventBus ports.EventPublisher
	logger   *zap.Logger
}

// NewRemoveTreeNodeHandler creates a new handler instance
func NewRemoveTreeNodeHandler(
	treeRepo ports.TreeRepository,
	eventBus ports.EventPublisher,
	logger *zap.Logger,
) *RemoveTreeNodeHandler {
	return &RemoveTreeNodeHandler{
		treeRepo: treeRepo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Handle executes the remove tree node command
func (h *RemoveTreeNodeHandler) Handle(ctx context.Context, cmd RemoveTreeNodeCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}

	treeID, err := valueobjects.NewTreeIDFromString(cmd.TreeID)
	if err != nil {
		return err
	}
	nodeID, err := valueobjects.NewTreeNodeIDFromString(cmd.NodeID)
	if err != nil {
		return err
	}

	tree, err := h.treeRepo.FindByID(ctx, treeID)
	if err != nil {
		return err
	}

	if err := tree.RemoveNode(nodeID); err != nil {
		return err
	}

	if err := saveTreeAndPublish(ctx, h.treeRepo, h.eventBus, h.logger, tree); err != nil {
		return err
	}
	return nil
}
