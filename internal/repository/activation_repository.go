package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SamuelSnowball/Bookstore/internal/domain"
	pkgconfig "github.com/SamuelSnowball/Bookstore/pkg/config"
)

var (
	ErrActivationNotFound = errors.New("activation not found")
	ErrAlreadyFinalized   = errors.New("session already finalized")
)

// ActivationRepository persists checkout activation traces and finalization
// markers in a single DynamoDB table.
type ActivationRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoDBClient(cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	}), nil
}

func NewActivationRepository(client *dynamodb.Client, tableName string) *ActivationRepository {
	return &ActivationRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *ActivationRepository) SaveActivation(ctx context.Context, record *domain.ActivationRecord) error {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal activation: %w", err)
	}

	av["PK"] = &types.AttributeValueMemberS{Value: fmt.Sprintf("ACTIVATION#%s", record.ActivationID)}
	av["SK"] = &types.AttributeValueMemberS{Value: "METADATA"}
	av["GSI1PK"] = &types.AttributeValueMemberS{Value: fmt.Sprintf("ORDER#%d", record.OrderID)}
	av["GSI1SK"] = &types.AttributeValueMemberS{Value: fmt.Sprintf("ACTIVATION#%s", record.CreatedAt.Format("2006-01-02T15:04:05Z"))}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})

	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

func (r *ActivationRepository) GetActivation(ctx context.Context, activationID string) (*domain.ActivationRecord, error) {
	pk := fmt.Sprintf("ACTIVATION#%s", activationID)

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, ErrActivationNotFound
	}

	var record domain.ActivationRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// MarkFinalized writes the at-most-once finalization marker for a session.
// The conditional put rejects a second writer with ErrAlreadyFinalized, even
// from another process.
func (r *ActivationRepository) MarkFinalized(ctx context.Context, record *domain.FinalizationRecord) error {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal finalization: %w", err)
	}

	av["PK"] = &types.AttributeValueMemberS{Value: fmt.Sprintf("SESSION#%s", record.SessionID)}
	av["SK"] = &types.AttributeValueMemberS{Value: "FINALIZED"}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})

	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrAlreadyFinalized
		}
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}
