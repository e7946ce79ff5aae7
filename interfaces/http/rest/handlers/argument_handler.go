package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"proofgraph/application/commands"
	"proofgraph/pkg/common"
	pkgerrors "proofgraph/pkg/errors"
)

// ArgumentHandler handles atomic argument HTTP requests
type ArgumentHandler struct {
	createArgument          *commands.CreateArgumentHandler
	createBootstrapArgument *commands.CreateBootstrapArgumentHandler
	updateArgument          *commands.UpdateArgumentHandler
	updateSideLabels        *commands.UpdateSideLabelsHandler
	deleteArgument          *commands.DeleteArgumentHandler
	branchArgument          *commands.BranchArgumentHandler
	errors                  *pkgerrors.ErrorHandler
	logger                  *zap.Logger
}

// NewArgumentHandler creates a new argument handler
func NewArgumentHandler(
	createArgument *commands.CreateArgumentHandler,
	createBootstrapArgument *commands.CreateBootstrapArgumentHandler,
	updateArgument *commands.UpdateArgumentHandler,
	updateSideLabels *commands.UpdateSideLabelsHandler,
	deleteArgument *commands.DeleteArgumentHandler,
	branchArgument *commands.BranchArgumentHandler,
	logger *zap.Logger,
) *ArgumentHandler {
	return &ArgumentHandler{
		createArgument:          createArgument,
		createBootstrapArgument: createBootstrapArgument,
		updateArgument:          updateArgument,
		updateSideLabels:        updateSideLabels,
		deleteArgument:          deleteArgument,
		branchArgument:          branchArgument,
		errors:                  pkgerrors.NewErrorHandler(logger),
		logger:                  logger,
	}
}

// CreateArgumentRequest represents the request body for creating an argument.
// An empty statement list on either side means that side is absent; empty on
// both sides creates a bootstrap argument.
type CreateArgumentRequest struct {
	PremiseStatementIDs    []string `json:"premise_statement_ids"`
	ConclusionStatementIDs []string `json:"conclusion_statement_ids"`
	LeftLabel              string   `json:"left_label"`
	RightLabel             string   `json:"right_label"`
}

// CreateArgument handles POST /documents/{proofID}/arguments
func (h *ArgumentHandler) CreateArgument(w http.ResponseWriter, r *http.Request) {
	var req CreateArgumentRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	proofID := chi.URLParam(r, "proofID")

	if len(req.PremiseStatementIDs) == 0 && len(req.ConclusionStatementIDs) == 0 {
		argID, err := h.createBootstrapArgument.Handle(r.Context(), commands.CreateBootstrapArgumentCommand{
			ProofID: proofID,
		})
		if err != nil {
			h.errors.Handle(w, r, err)
			return
		}
		common.RespondJSON(w, http.StatusCreated, map[string]string{"id": argID.String()})
		return
	}

	argID, err := h.createArgument.Handle(r.Context(), commands.CreateArgumentCommand{
		ProofID:                proofID,
		PremiseStatementIDs:    req.PremiseStatementIDs,
		ConclusionStatementIDs: req.ConclusionStatementIDs,
		LeftLabel:              req.LeftLabel,
		RightLabel:             req.RightLabel,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": argID.String()})
}

// UpdateArgumentRequest represents the request body for rewiring an argument
type UpdateArgumentRequest struct {
	PremiseSetID    string `json:"premise_set_id"`
	ConclusionSetID string `json:"conclusion_set_id"`
}

// UpdateArgument handles PUT /documents/{proofID}/arguments/{argumentID}
func (h *ArgumentHandler) UpdateArgument(w http.ResponseWriter, r *http.Request) {
	var req UpdateArgumentRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	err := h.updateArgument.Handle(r.Context(), commands.UpdateArgumentCommand{
		ProofID:         chi.URLParam(r, "proofID"),
		ArgumentID:      chi.URLParam(r, "argumentID"),
		PremiseSetID:    req.PremiseSetID,
		ConclusionSetID: req.ConclusionSetID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "argument updated"})
}

// UpdateSideLabelsRequest represents the request body for side labels
type UpdateSideLabelsRequest struct {
	LeftLabel  string `json:"left_label"`
	RightLabel string `json:"right_label"`
}

// UpdateSideLabels handles PUT /documents/{proofID}/arguments/{argumentID}/labels
func (h *ArgumentHandler) UpdateSideLabels(w http.ResponseWriter, r *http.Request) {
	var req UpdateSideLabelsRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	err := h.updateSideLabels.Handle(r.Context(), commands.UpdateSideLabelsCommand{
		ProofID:    chi.URLParam(r, "proofID"),
		ArgumentID: chi.URLParam(r, "argumentID"),
		LeftLabel:  req.LeftLabel,
		RightLabel: req.RightLabel,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "labels updated"})
}

// DeleteArgument handles DELETE /documents/{proofID}/arguments/{argumentID}
func (h *ArgumentHandler) DeleteArgument(w http.ResponseWriter, r *http.Request) {
	err := h.deleteArgument.Handle(r.Context(), commands.DeleteArgumentCommand{
		ProofID:    chi.URLParam(r, "proofID"),
		ArgumentID: chi.URLParam(r, "argumentID"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "argument deleted"})
}

// BranchArgumentRequest represents the request body for branching
type BranchArgumentRequest struct {
	Direction string `json:"direction"`
	Index     int    `json:"index"`
}

// BranchArgument handles POST /documents/{proofID}/arguments/{argumentID}/branch
func (h *ArgumentHandler) BranchArgument(w http.ResponseWriter, r *http.Request) {
	var req BranchArgumentRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	argID, err := h.branchArgument.Handle(r.Context(), commands.BranchArgumentCommand{
		ProofID:    chi.URLParam(r, "proofID"),
		ArgumentID: chi.URLParam(r, "argumentID"),
		Direction:  req.Direction,
		Index:      req.Index,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": argID.String()})
}
