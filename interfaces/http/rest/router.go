package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"proofgraph/infrastructure/di"
	"proofgraph/interfaces/http/rest/handlers"
	"proofgraph/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.container.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	c := rt.container
	documentHandler := handlers.NewDocumentHandler(
		c.CreateProof, c.DeleteProof, c.GetDocument, c.GetProofStats, rt.logger)
	statementHandler := handlers.NewStatementHandler(
		c.CreateStatement, c.UpdateStatement, c.DeleteStatement, c.MoveStatement, rt.logger)
	argumentHandler := handlers.NewArgumentHandler(
		c.CreateArgument, c.CreateBootstrapArgument, c.UpdateArgument,
		c.UpdateSideLabels, c.DeleteArgument, c.BranchArgument, rt.logger)
	treeHandler := handlers.NewTreeHandler(
		c.CreateTree, c.MoveTree, c.AddTreeNode, c.SetNodeParent, c.RemoveTreeNode, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Secret-less development runs skip authentication
		if c.Config.JWTSecret != "" {
			r.Use(middleware.Authenticate(c.Config.JWTSecret, c.Config.JWTIssuer, rt.logger))
		}

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", documentHandler.CreateDocument)
			r.Get("/{proofID}", documentHandler.GetDocument)
			r.Delete("/{proofID}", documentHandler.DeleteDocument)
			r.Get("/{proofID}/stats", documentHandler.GetStats)

			r.Route("/{proofID}/statements", func(r chi.Router) {
				r.Post("/", statementHandler.CreateStatement)
				r.Put("/{statementID}", statementHandler.UpdateStatement)
				r.Delete("/{statementID}", statementHandler.DeleteStatement)
				r.Post("/{statementID}/move", statementHandler.MoveStatement)
			})

			r.Route("/{proofID}/arguments", func(r chi.Router) {
				r.Post("/", argumentHandler.CreateArgument)
				r.Put("/{argumentID}", argumentHandler.UpdateArgument)
				r.Put("/{argumentID}/labels", argumentHandler.UpdateSideLabels)
				r.Delete("/{argumentID}", argumentHandler.DeleteArgument)
				r.Post("/{argumentID}/branch", argumentHandler.BranchArgument)
			})

			r.Post("/{proofID}/trees", treeHandler.CreateTree)
		})

		r.Route("/trees", func(r chi.Router) {
			r.Put("/{treeID}/position", treeHandler.MoveTree)
			r.Route("/{treeID}/nodes", func(r chi.Router) {
				r.Post("/", treeHandler.AddNode)
				r.Put("/{nodeID}/parent", treeHandler.SetNodeParent)
				r.Delete("/{nodeID}", treeHandler.RemoveNode)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
