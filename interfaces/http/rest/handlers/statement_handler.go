package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"proofgraph/application/commands"
	"proofgraph/pkg/common"
	pkgerrors "proofgraph/pkg/errors"
)

// StatementHandler handles statement HTTP requests
type StatementHandler struct {
	createStatement *commands.CreateStatementHandler
	updateStatement *commands.UpdateStatementHandler
	deleteStatement *commands.DeleteStatementHandler
	moveStatement   *commands.MoveStatementHandler
	errors          *pkgerrors.ErrorHandler
	logger          *zap.Logger
}

// NewStatementHandler creates a new statement handler
func NewStatementHandler(
	createStatement *commands.CreateStatementHandler,
	updateStatement *commands.UpdateStatementHandler,
	deleteStatement *commands.DeleteStatementHandler,
	moveStatement *commands.MoveStatementHandler,
	logger *zap.Logger,
) *StatementHandler {
	return &StatementHandler{
		createStatement: createStatement,
		updateStatement: updateStatement,
		deleteStatement: deleteStatement,
		moveStatement:   moveStatement,
		errors:          pkgerrors.NewErrorHandler(logger),
		logger:          logger,
	}
}

// CreateStatementRequest represents the request body for creating a statement
type CreateStatementRequest struct {
	Content string `json:"content"`
}

// CreateStatement handles POST /documents/{proofID}/statements
func (h *StatementHandler) CreateStatement(w http.ResponseWriter, r *http.Request) {
	var req CreateStatementRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	stmtID, err := h.createStatement.Handle(r.Context(), commands.CreateStatementCommand{
		ProofID: chi.URLParam(r, "proofID"),
		Content: req.Content,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{
		"id": stmtID.String(),
	})
}

// UpdateStatementRequest represents the request body for updating a statement
type UpdateStatementRequest struct {
	Content string `json:"content"`
}

// UpdateStatement handles PUT /documents/{proofID}/statements/{statementID}
func (h *StatementHandler) UpdateStatement(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatementRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	err := h.updateStatement.Handle(r.Context(), commands.UpdateStatementCommand{
		ProofID:     chi.URLParam(r, "proofID"),
		StatementID: chi.URLParam(r, "statementID"),
		Content:     req.Content,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "statement updated",
	})
}

// DeleteStatement handles DELETE /documents/{proofID}/statements/{statementID}
func (h *StatementHandler) DeleteStatement(w http.ResponseWriter, r *http.Request) {
	err := h.deleteStatement.Handle(r.Context(), commands.DeleteStatementCommand{
		ProofID:     chi.URLParam(r, "proofID"),
		StatementID: chi.URLParam(r, "statementID"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "statement deleted",
	})
}

// MoveStatementRequest represents the request body for moving a statement
type MoveStatementRequest struct {
	FromSetID string `json:"from_set_id"`
	ToSetID   string `json:"to_set_id"`
	Position  int    `json:"position"`
}

// MoveStatement handles POST /documents/{proofID}/statements/{statementID}/move
func (h *StatementHandler) MoveStatement(w http.ResponseWriter, r *http.Request) {
	var req MoveStatementRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	err := h.moveStatement.Handle(r.Context(), commands.MoveStatementCommand{
		ProofID:     chi.URLParam(r, "proofID"),
		StatementID: chi.URLParam(r, "statementID"),
		FromSetID:   req.FromSetID,
		ToSetID:     req.ToSetID,
		Position:    req.Position,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "statement moved",
	})
}
