package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/classroom-api/internal/domain"
)

// MembershipRepo provides typed DynamoDB operations for one role-membership
// table (administrators, professors or students — same schema, different
// table name).
type MembershipRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMembershipRepo(client *dynamodb.Client, tableName string) *MembershipRepo {
	return &MembershipRepo{client: client, tableName: tableName}
}

// Put writes a membership row. The attribute_not_exists condition enforces
// the one-membership-per-user invariant at the storage layer, closing the
// check-then-put race between two concurrent creates.
func (r *MembershipRepo) Put(ctx context.Context, m *domain.Membership) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal membership: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(membership_id)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("membership already exists: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *MembershipRepo) Get(ctx context.Context, membershipID string) (*domain.Membership, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("membership_id", membershipID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("membership not found: %w", domain.ErrNotFound)
	}
	var m domain.Membership
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepo) GetByUserID(ctx context.Context, userID string) (*domain.Membership, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "user_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: userID}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("membership not found: %w", domain.ErrNotFound)
	}
	var m domain.Membership
	if err := attributevalue.UnmarshalMap(out.Items[0], &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ScanPage returns a page of memberships; cursor semantics match UserRepo.ScanPage.
func (r *MembershipRepo) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Membership, string, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(limit),
	}
	if cursor != "" {
		membershipID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		input.ExclusiveStartKey = strKey("membership_id", membershipID)
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, "", err
	}
	var ms []domain.Membership
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &ms); err != nil {
		return nil, "", err
	}
	nextCursor := ""
	if v, ok := out.LastEvaluatedKey["membership_id"].(*types.AttributeValueMemberS); ok {
		nextCursor = encodeCursor(v.Value)
	}
	return ms, nextCursor, nil
}

func (r *MembershipRepo) Delete(ctx context.Context, membershipID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("membership_id", membershipID),
	})
	return err
}
