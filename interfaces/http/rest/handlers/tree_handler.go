package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"proofgraph/application/commands"
	"proofgraph/pkg/common"
	pkgerrors "proofgraph/pkg/errors"
)

// TreeHandler handles tree HTTP requests
type TreeHandler struct {
	createTree     *commands.CreateTreeHandler
	moveTree       *commands.MoveTreeHandler
	addTreeNode    *commands.AddTreeNodeHandler
	setNodeParent  *commands.SetNodeParentHandler
	removeTreeNode *commands.RemoveTreeNodeHandler
	errors         *pkgerrors.ErrorHandler
	logger         *zap.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(
	createTree *commands.CreateTreeHandler,
	moveTree *commands.MoveTreeHandler,
	addTreeNode *commands.AddTreeNodeHandler,
	setNodeParent *commands.SetNodeParentHandler,
	removeTreeNode *commands.RemoveTreeNodeHandler,
	logger *zap.Logger,
) *TreeHandler {
	return &TreeHandler{
		createTree:     createTree,
		moveTree:       moveTree,
		addTreeNode:    addTreeNode,
		setNodeParent:  setNodeParent,
		removeTreeNode: removeTreeNode,
		errors:         pkgerrors.NewErrorHandler(logger),
		logger:         logger,
	}
}

// CreateTreeRequest represents the request body for creating a tree
type CreateTreeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CreateTree handles POST /documents/{proofID}/trees
func (h *TreeHandler) CreateTree(w http.ResponseWriter, r *http.Request) {
	var req CreateTreeRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	treeID, err := h.createTree.Handle(r.Context(), commands.CreateTreeCommand{
		ProofID: chi.URLParam(r, "proofID"),
		X:       req.X,
		Y:       req.Y,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": treeID.String()})
}

// MoveTreeRequest represents the request body for moving a tree
type MoveTreeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MoveTree handles PUT /trees/{treeID}/position
func (h *TreeHandler) MoveTree(w http.ResponseWriter, r *http.Request) {
	var req MoveTreeRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	err := h.moveTree.Handle(r.Context(), commands.MoveTreeCommand{
		TreeID: chi.URLParam(r, "treeID"),
		X:      req.X,
		Y:      req.Y,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "tree moved"})
}

// AddTreeNodeRequest represents the request body for adding a node
type AddTreeNodeRequest struct {
	ArgumentID string `json:"argument_id"`
}

// AddNode handles POST /trees/{treeID}/nodes
func (h *TreeHandler) AddNode(w http.ResponseWriter, r *http.Request) {
	var req AddTreeNodeRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	nodeID, err := h.addTreeNode.Handle(r.Context(), commands.AddTreeNodeCommand{
		TreeID:     chi.URLParam(r, "treeID"),
		ArgumentID: req.ArgumentID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": nodeID.String()})
}

// SetNodeParentRequest represents the request body for reparenting a node
type SetNodeParentRequest struct {
	ParentID string `json:"parent_id"`
}

// SetNodeParent handles PUT /trees/{treeID}/nodes/{nodeID}/parent
func (h *TreeHandler) SetNodeParent(w http.ResponseWriter, r *http.Request) {
	var req SetNodeParentRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	err := h.setNodeParent.Handle(r.Context(), commands.SetNodeParentCommand{
		TreeID:   chi.URLParam(r, "treeID"),
		NodeID:   chi.URLParam(r, "nodeID"),
		ParentID: req.ParentID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "node reparented"})
}

// RemoveNode handles DELETE /trees/{treeID}/nodes/{nodeID}
func (h *TreeHandler) RemoveNode(w http.ResponseWriter, r *http.Request) {
	err := h.removeTreeNode.Handle(r.Context(), commands.RemoveTreeNodeCommand{
		TreeID: chi.URLParam(r, "treeID"),
		NodeID: chi.URLParam(r, "nodeID"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "node removed"})
}
