package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"proofgraph/application/dto"
	"proofgraph/application/ports"
	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
)

// DocumentRepository persists document envelopes in DynamoDB using a
// single-table layout. One item per proof document.
type DocumentRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.DocumentRepository = (*DocumentRepository)(nil)

// documentItem represents the DynamoDB item structure for a document
type documentItem struct {
	PK         string          `dynamodbav:"PK"` // PROOF#<proof_id>
	SK         string          `dynamodbav:"SK"` // DOCUMENT
	EntityType string          `dynamodbav:"EntityType"`
	Version    int             `dynamodbav:"Version"`
	Document   dto.DocumentDTO `dynamodbav:"Document"`
}

// FindByID retrieves a document envelope by proof ID
func (r *DocumentRepository) FindByID(ctx context.Context, id valueobjects.ProofID) (*dto.DocumentDTO, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: documentPK(id)},
			"SK": &types.AttributeValueMemberS{Value: "DOCUMENT"},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		r.logger.Error("Failed to get document from DynamoDB",
			zap.Error(err),
			zap.String("proofID", id.String()))
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("document")
	}

	var item documentItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return &item.Document, nil
}

// Save persists a document envelope with a conditional write on Version.
// A concurrent writer that stored an equal or newer version surfaces as a
// conflict error.
func (r *DocumentRepository) Save(ctx context.Context, doc dto.DocumentDTO) error {
	id, err := valueobjects.NewProofIDFromString(doc.ID)
	if err != nil {
		return err
	}

	item := documentItem{
		PK:         documentPK(id),
		SK:         "DOCUMENT",
		EntityType: "DOCUMENT",
		Version:    doc.Version,
		Document:   doc,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK) OR Version < :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", doc.Version)},
		},
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var conditionErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionErr) {
			return pkgerrors.NewConflictError(fmt.Sprintf(
				"document %q was modified concurrently", doc.ID))
		}
		r.logger.Error("Failed to save document to DynamoDB",
			zap.Error(err),
			zap.String("proofID", doc.ID))
		return fmt.Errorf("failed to save document: %w", err)
	}

	r.logger.Debug("Document saved",
		zap.String("proofID", doc.ID),
		zap.Int("version", doc.Version))
	return nil
}

// Delete removes a document envelope
func (r *DocumentRepository) Delete(ctx context.Context, id valueobjects.ProofID) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: documentPK(id)},
			"SK": &types.AttributeValueMemberS{Value: "DOCUMENT"},
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func documentPK(id valueobjects.ProofID) string {
	return fmt.Sprintf("PROOF#%s", id.String())
}
