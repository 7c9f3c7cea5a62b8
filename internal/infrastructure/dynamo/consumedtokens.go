package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/classroom-api/internal/domain"
)

// ConsumedTokenRepo records the jti of every consumed password-reset token so
// a token can only be exchanged once. Rows carry the token's own expiry as a
// DynamoDB TTL attribute: once the token could no longer decode anyway, the
// record is garbage.
type ConsumedTokenRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewConsumedTokenRepo(client *dynamodb.Client, tableName string) *ConsumedTokenRepo {
	return &ConsumedTokenRepo{client: client, tableName: tableName}
}

// Consume records jti, failing with domain.ErrConflict if it was already
// recorded. The conditional put makes the first of two racing confirms win;
// the loser sees the conflict.
func (r *ConsumedTokenRepo) Consume(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item: map[string]types.AttributeValue{
			"jti":         &types.AttributeValueMemberS{Value: jti},
			"expires_at":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expiresAt.Unix())},
			"consumed_at": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
		ConditionExpression: aws.String("attribute_not_exists(jti)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("reset token already used: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}
