package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/smartbudget/api/internal/domain"
)

// BillsRepo stores one bills document per user. PK: email (lowercased).
type BillsRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBillsRepo(client *dynamodb.Client, tableName string) *BillsRepo {
	return &BillsRepo{client: client, tableName: tableName}
}

func (r *BillsRepo) Put(ctx context.Context, e *domain.BillsEntry) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal bills entry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *BillsRepo) Get(ctx context.Context, email string) (*domain.BillsEntry, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("bills entry not found: %w", domain.ErrNotFound)
	}
	var e domain.BillsEntry
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateDocument replaces the document and updated-at of an existing entry in place.
func (r *BillsRepo) UpdateDocument(ctx context.Context, email, document string, updatedAt time.Time) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		"document":   document,
		"updated_at": updatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("email", email),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// Scan returns every bills entry, for snapshots.
func (r *BillsRepo) Scan(ctx context.Context) ([]domain.BillsEntry, error) {
	var entries []domain.BillsEntry
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		var page []domain.BillsEntry
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
