package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"proofgraph/application/ports"
	"proofgraph/infrastructure/config"
	"proofgraph/infrastructure/messaging"
	"proofgraph/infrastructure/messaging/eventbridge"
	dynamopersist "proofgraph/infrastructure/persistence/dynamodb"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideDocumentRepository creates the DynamoDB document repository
func ProvideDocumentRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	logger *zap.Logger,
) ports.DocumentRepository {
	return dynamopersist.NewDocumentRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventBus creates the event bus. Without an EventBridge bus name the
// in-memory bus is used, which keeps local runs self-contained.
func ProvideEventBus(
	client *awseventbridge.Client,
	cfg *config.Config,
	logger *zap.Logger,
) ports.EventBus {
	if cfg.EventBusName == "" || cfg.IsDevelopment() {
		return messaging.NewMemoryEventBus(logger)
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}
