package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/smartbudget/api/internal/domain"
)

// BudgetRepo stores monthly budget documents.
// PK: email (lowercased), SK: month_key — the pair is unique by construction,
// so Put gives upsert-by-key without a scan.
type BudgetRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBudgetRepo(client *dynamodb.Client, tableName string) *BudgetRepo {
	return &BudgetRepo{client: client, tableName: tableName}
}

func (r *BudgetRepo) Put(ctx context.Context, e *domain.BudgetEntry) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal budget entry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *BudgetRepo) Get(ctx context.Context, email, monthKey string) (*domain.BudgetEntry, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("email", email, "month_key", monthKey),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("budget entry not found: %w", domain.ErrNotFound)
	}
	var e domain.BudgetEntry
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateDocument replaces the document and updated-at of an existing entry in place.
func (r *BudgetRepo) UpdateDocument(ctx context.Context, email, monthKey, document string, updatedAt time.Time) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		"document":   document,
		"updated_at": updatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       compositeKey("email", email, "month_key", monthKey),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// ListByEmail returns every month entry for one user.
func (r *BudgetRepo) ListByEmail(ctx context.Context, email string) ([]domain.BudgetEntry, error) {
	var entries []domain.BudgetEntry
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String("#e = :email"),
		ExpressionAttributeNames:  map[string]string{"#e": "email"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":email": &types.AttributeValueMemberS{Value: email}},
	}
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		var page []domain.BudgetEntry
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		entries = append(entries, page...)
		if out.LastEvaluatedKey == nil {
			return entries, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// Scan returns every budget entry across all users, for snapshots.
func (r *BudgetRepo) Scan(ctx context.Context) ([]domain.BudgetEntry, error) {
	var entries []domain.BudgetEntry
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		var page []domain.BudgetEntry
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		entries = append(entries, page...)
		if out.LastEvaluatedKey == nil {
			return entries, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}
