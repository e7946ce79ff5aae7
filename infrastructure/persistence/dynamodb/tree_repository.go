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

	"proofgraph/application/ports"
	"proofgraph/domain/core/aggregates"
	"proofgraph/domain/core/valueobjects"
	pkgerrors "proofgraph/pkg/errors"
)

// TreeRepository implements ports.TreeRepository using DynamoDB. Trees are
// stored under their proof's partition; GSI1 supports direct lookup by tree
// id without knowing the proof.
type TreeRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewTreeRepository creates a new TreeRepository
func NewTreeRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) *TreeRepository {
	return &TreeRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

var _ ports.TreeRepository = (*TreeRepository)(nil)

// treeNodeRecord is the stored form of a tree node
type treeNodeRecord struct {
	ID         string  `dynamodbav:"ID"`
	ArgumentID string  `dynamodbav:"ArgumentID"`
	ParentID   *string `dynamodbav:"ParentID"`
}

// treeItem represents the DynamoDB item structure for a tree
type treeItem struct {
	PK         string           `dynamodbav:"PK"`     // PROOF#<proof_id>
	SK         string           `dynamodbav:"SK"`     // TREE#<tree_id>
	GSI1PK     string           `dynamodbav:"GSI1PK"` // TREEID#<tree_id>
	GSI1SK     string           `dynamodbav:"GSI1SK"` // METADATA
	EntityType string           `dynamodbav:"EntityType"`
	TreeID     string           `dynamodbav:"TreeID"`
	ProofID    string           `dynamodbav:"ProofID"`
	X          float64          `dynamodbav:"X"`
	Y          float64          `dynamodbav:"Y"`
	Width      float64          `dynamodbav:"Width"`
	Height     float64          `dynamodbav:"Height"`
	SpacingX   float64          `dynamodbav:"SpacingX"`
	SpacingY   float64          `dynamodbav:"SpacingY"`
	Nodes      []treeNodeRecord `dynamodbav:"Nodes"`
	Version    int              `dynamodbav:"Version"`
}

// FindByID retrieves a tree by its ID via GSI1
func (r *TreeRepository) FindByID(ctx context.Context, id valueobjects.TreeID) (*aggregates.Tree, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("TREEID#%s", id.String())},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query tree: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("tree")
	}

	var item treeItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tree: %w", err)
	}
	return treeFromItem(item)
}

// FindByProofID retrieves all trees under a proof's partition
func (r *TreeRepository) FindByProofID(ctx context.Context, proofID valueobjects.ProofID) ([]*aggregates.Tree, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: documentPK(proofID)},
			":sk": &types.AttributeValueMemberS{Value: "TREE#"},
		},
	}

	trees := make([]*aggregates.Tree, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query trees: %w", err)
		}
		for _, raw := range page.Items {
			var item treeItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tree: %w", err)
			}
			tree, err := treeFromItem(item)
			if err != nil {
				return nil, err
			}
			trees = append(trees, tree)
		}
	}
	return trees, nil
}

// Save persists a tree with a conditional write on Version
func (r *TreeRepository) Save(ctx context.Context, tree *aggregates.Tree) error {
	nodes := make([]treeNodeRecord, 0, tree.NodeCount())
	for _, node := range tree.Nodes() {
		record := treeNodeRecord{
			ID:         node.ID.String(),
			ArgumentID: node.ArgumentID.String(),
		}
		if node.ParentID != nil {
			parent := node.ParentID.String()
			record.ParentID = &parent
		}
		nodes = append(nodes, record)
	}

	props := tree.PhysicalProperties()
	item := treeItem{
		PK:         documentPK(tree.ProofID()),
		SK:         fmt.Sprintf("TREE#%s", tree.ID().String()),
		GSI1PK:     fmt.Sprintf("TREEID#%s", tree.ID().String()),
		GSI1SK:     "METADATA",
		EntityType: "TREE",
		TreeID:     tree.ID().String(),
		ProofID:    tree.ProofID().String(),
		X:          tree.Position().X(),
		Y:          tree.Position().Y(),
		Width:      props.Width(),
		Height:     props.Height(),
		SpacingX:   props.SpacingX(),
		SpacingY:   props.SpacingY(),
		Nodes:      nodes,
		Version:    tree.Version(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal tree: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK) OR Version < :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tree.Version())},
		},
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var conditionErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionErr) {
			return pkgerrors.NewConflictError(fmt.Sprintf(
				"tree %q was modified concurrently", tree.ID().String()))
		}
		r.logger.Error("Failed to save tree to DynamoDB",
			zap.Error(err),
			zap.String("treeID", tree.ID().String()))
		return fmt.Errorf("failed to save tree: %w", err)
	}
	return nil
}

// Delete removes a tree. The proof partition is resolved through GSI1 first.
func (r *TreeRepository) Delete(ctx context.Context, id valueobjects.TreeID) error {
	tree, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: documentPK(tree.ProofID())},
			"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("TREE#%s", id.String())},
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to delete tree: %w", err)
	}
	return nil
}

// treeFromItem rebuilds the aggregate from its stored form
func treeFromItem(item treeItem) (*aggregates.Tree, error) {
	treeID, err := valueobjects.NewTreeIDFromString(item.TreeID)
	if err != nil {
		return nil, pkgerrors.NewConsistencyError(fmt.Sprintf("stored tree id is invalid: %v", err))
	}
	proofID, err := valueobjects.NewProofIDFromString(item.ProofID)
	if err != nil {
		return nil, pkgerrors.NewConsistencyError(fmt.Sprintf("stored proof id is invalid: %v", err))
	}

	props, err := valueobjects.NewPhysicalProperties(item.Width, item.Height, item.SpacingX, item.SpacingY)
	if err != nil {
		return nil, err
	}

	nodes := make([]aggregates.TreeNode, 0, len(item.Nodes))
	for _, record := range item.Nodes {
		nodeID, err := valueobjects.NewTreeNodeIDFromString(record.ID)
		if err != nil {
			return nil, pkgerrors.NewConsistencyError(fmt.Sprintf("stored node id is invalid: %v", err))
		}
		argID, err := valueobjects.NewArgumentIDFromString(record.ArgumentID)
		if err != nil {
			return nil, pkgerrors.NewConsistencyError(fmt.Sprintf("stored argument id is invalid: %v", err))
		}
		node := aggregates.TreeNode{ID: nodeID, ArgumentID: argID}
		if record.ParentID != nil {
			parentID, err := valueobjects.NewTreeNodeIDFromString(*record.ParentID)
			if err != nil {
				return nil, pkgerrors.NewConsistencyError(fmt.Sprintf("stored parent id is invalid: %v", err))
			}
			node.ParentID = &parentID
		}
		nodes = append(nodes, node)
	}

	return aggregates.ReconstructTree(
		treeID, proofID,
		valueobjects.NewPosition(item.X, item.Y),
		props, nodes, item.Version,
	)
}
