package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"proofgraph/application/commands"
	"proofgraph/application/queries"
	"proofgraph/pkg/common"
	pkgerrors "proofgraph/pkg/errors"
)

// request bodies above 1 MiB are rejected outright
const maxBodyBytes = 1 << 20

// DocumentHandler handles proof document HTTP requests
type DocumentHandler struct {
	createProof   *commands.CreateProofHandler
	deleteProof   *commands.DeleteProofHandler
	getDocument   *queries.GetDocumentHandler
	getProofStats *queries.GetProofStatsHandler
	errors        *pkgerrors.ErrorHandler
	logger        *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	createProof *commands.CreateProofHandler,
	deleteProof *commands.DeleteProofHandler,
	getDocument *queries.GetDocumentHandler,
	getProofStats *queries.GetProofStatsHandler,
	logger *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		createProof:   createProof,
		deleteProof:   deleteProof,
		getDocument:   getDocument,
		getProofStats: getProofStats,
		errors:        pkgerrors.NewErrorHandler(logger),
		logger:        logger,
	}
}

// CreateDocument handles POST /documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	proofID, err := h.createProof.Handle(r.Context(), commands.CreateProofCommand{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{
		"id": proofID.String(),
	})
}

// GetDocument handles GET /documents/{proofID}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	query := queries.GetDocumentQuery{
		ProofID:      chi.URLParam(r, "proofID"),
		IncludeStats: r.URL.Query().Get("stats") == "true",
	}

	doc, err := h.getDocument.Handle(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, doc)
}

// GetStats handles GET /documents/{proofID}/stats
func (h *DocumentHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.getProofStats.Handle(r.Context(), queries.GetProofStatsQuery{
		ProofID: chi.URLParam(r, "proofID"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, stats)
}

// DeleteDocument handles DELETE /documents/{proofID}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	err := h.deleteProof.Handle(r.Context(), commands.DeleteProofCommand{
		ProofID: chi.URLParam(r, "proofID"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "document deleted",
	})
}
