package di

import (
	"context"

	"go.uber.org/zap"

	"proofgraph/application/commands"
	"proofgraph/application/ports"
	"proofgraph/application/queries"
	"proofgraph/domain/services"
	"proofgraph/infrastructure/config"
	"proofgraph/infrastructure/persistence/dynamodb"
	"proofgraph/infrastructure/persistence/memory"
)

// Container holds all application dependencies, wired by hand
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	EventBus ports.EventBus

	ProofRepo ports.ProofRepository
	TreeRepo  ports.TreeRepository
	DocRepo   ports.DocumentRepository

	// Commands
	CreateProof             *commands.CreateProofHandler
	DeleteProof             *commands.DeleteProofHandler
	CreateStatement         *commands.CreateStatementHandler
	UpdateStatement         *commands.UpdateStatementHandler
	DeleteStatement         *commands.DeleteStatementHandler
	CreateArgument          *commands.CreateArgumentHandler
	CreateBootstrapArgument *commands.CreateBootstrapArgumentHandler
	UpdateArgument          *commands.UpdateArgumentHandler
	UpdateSideLabels        *commands.UpdateSideLabelsHandler
	DeleteArgument          *commands.DeleteArgumentHandler
	MoveStatement           *commands.MoveStatementHandler
	BranchArgument          *commands.BranchArgumentHandler
	CreateTree              *commands.CreateTreeHandler
	MoveTree                *commands.MoveTreeHandler
	AddTreeNode             *commands.AddTreeNodeHandler
	SetNodeParent           *commands.SetNodeParentHandler
	RemoveTreeNode          *commands.RemoveTreeNodeHandler

	// Queries
	GetDocument   *queries.GetDocumentHandler
	GetProofStats *queries.GetProofStatsHandler
}

// NewContainer assembles the dependency graph. Development runs use in-memory
// persistence and the in-memory bus; other environments use DynamoDB and
// EventBridge.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if cfg.IsDevelopment() {
		c.ProofRepo = memory.NewProofRepository()
		c.TreeRepo = memory.NewTreeRepository()
		c.EventBus = ProvideEventBus(nil, cfg, logger)
	} else {
		awsCfg, err := ProvideAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		dynamoClient := ProvideDynamoDBClient(awsCfg)
		c.DocRepo = ProvideDocumentRepository(dynamoClient, cfg, logger)
		c.ProofRepo = dynamodb.NewProofRepository(c.DocRepo, logger)
		c.TreeRepo = dynamodb.NewTreeRepository(dynamoClient, cfg.DynamoDBTable, "GSI1", logger)
		c.EventBus = ProvideEventBus(ProvideEventBridgeClient(awsCfg), cfg, logger)
	}

	statsService := services.NewProofStatsService()

	c.CreateProof = commands.NewCreateProofHandler(c.ProofRepo, c.EventBus, logger)
	c.DeleteProof = commands.NewDeleteProofHandler(c.ProofRepo, c.TreeRepo, logger)
	c.CreateStatement = commands.NewCreateStatementHandler(c.ProofRepo, c.EventBus, logger)
	c.UpdateStatement = commands.NewUpdateStatementHandler(c.ProofRepo, c.EventBus, logger)
	c.DeleteStatement = commands.NewDeleteStatementHandler(c.ProofRepo, c.EventBus, logger)
	c.CreateArgument = commands.NewCreateArgumentHandler(c.ProofRepo, c.EventBus, logger)
	c.CreateBootstrapArgument = commands.NewCreateBootstrapArgumentHandler(c.ProofRepo, c.EventBus, logger)
	c.UpdateArgument = commands.NewUpdateArgumentHandler(c.ProofRepo, c.EventBus, logger)
	c.UpdateSideLabels = commands.NewUpdateSideLabelsHandler(c.ProofRepo, c.EventBus, logger)
	c.DeleteArgument = commands.NewDeleteArgumentHandler(c.ProofRepo, c.TreeRepo, c.EventBus, logger)
	c.MoveStatement = commands.NewMoveStatementHandler(c.ProofRepo, c.EventBus, logger)
	c.BranchArgument = commands.NewBranchArgumentHandler(c.ProofRepo, c.EventBus, logger)
	c.CreateTree = commands.NewCreateTreeHandler(c.ProofRepo, c.TreeRepo, c.EventBus, logger)
	c.MoveTree = commands.NewMoveTreeHandler(c.TreeRepo, c.EventBus, logger)
	c.AddTreeNode = commands.NewAddTreeNodeHandler(c.ProofRepo, c.TreeRepo, c.EventBus, logger)
	c.SetNodeParent = commands.NewSetNodeParentHandler(c.TreeRepo, c.EventBus, logger)
	c.RemoveTreeNode = commands.NewRemoveTreeNodeHandler(c.TreeRepo, c.EventBus, logger)

	c.GetDocument = queries.NewGetDocumentHandler(c.ProofRepo, c.TreeRepo, statsService, logger)
	c.GetProofStats = queries.NewGetProofStatsHandler(c.ProofRepo, c.TreeRepo, statsService, logger)

	return c, nil
}
