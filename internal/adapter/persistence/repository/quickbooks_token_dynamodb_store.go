package repository

import (
	"context"
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultTokensTableName = "quickbooks_tokens"
	tokenRecordID          = "quickbooks"
)

type quickbooksTokenItem struct {
	ID                    string `dynamodbav:"id"`
	RealmID               string `dynamodbav:"realm_id,omitempty"`
	AccessToken           string `dynamodbav:"access_token,omitempty"`
	RefreshToken          string `dynamodbav:"refresh_token,omitempty"`
	AccessTokenExpiresAt  string `dynamodbav:"access_token_expires_at,omitempty"`
	RefreshTokenExpiresAt string `dynamodbav:"refresh_token_expires_at,omitempty"`
	UpdatedAt             string `dynamodbav:"updated_at,omitempty"`
}

// QuickBooksTokenDynamoStore keeps the single OAuth connection record in
// DynamoDB under a fixed id.
//
// Table requirements:
//   - PK: id (string)
type QuickBooksTokenDynamoStore struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuickBooksTokenStore = (*QuickBooksTokenDynamoStore)(nil)

func NewQuickBooksTokenDynamoStore(ddb *dynamodb.Client) *QuickBooksTokenDynamoStore {
	return &QuickBooksTokenDynamoStore{
		ddb:       ddb,
		tableName: getenvDefault("QUICKBOOKS_TOKENS_TABLE", defaultTokensTableName),
	}
}

func (s *QuickBooksTokenDynamoStore) Load(ctx context.Context) (entities.QuickBooksToken, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: tokenRecordID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.QuickBooksToken{}, err
	}
	if len(out.Item) == 0 {
		return entities.QuickBooksToken{}, nil
	}

	var it quickbooksTokenItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.QuickBooksToken{}, err
	}

	accessExp, _ := time.Parse(time.RFC3339Nano, it.AccessTokenExpiresAt)
	refreshExp, _ := time.Parse(time.RFC3339Nano, it.RefreshTokenExpiresAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.QuickBooksToken{
		RealmID:               it.RealmID,
		AccessToken:           it.AccessToken,
		RefreshToken:          it.RefreshToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshTokenExpiresAt: refreshExp,
		UpdatedAt:             updatedAt,
	}, nil
}

func (s *QuickBooksTokenDynamoStore) Save(ctx context.Context, t entities.QuickBooksToken) error {
	it := quickbooksTokenItem{
		ID:                    tokenRecordID,
		RealmID:               t.RealmID,
		AccessToken:           t.AccessToken,
		RefreshToken:          t.RefreshToken,
		AccessTokenExpiresAt:  t.AccessTokenExpiresAt.UTC().Format(time.RFC3339Nano),
		RefreshTokenExpiresAt: t.RefreshTokenExpiresAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:             time.Now().UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	return err
}

func (s *QuickBooksTokenDynamoStore) Delete(ctx context.Context) error {
	_, err := s.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: tokenRecordID},
		},
	})
	return err
}
