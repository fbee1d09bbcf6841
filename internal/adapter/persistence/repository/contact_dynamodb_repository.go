package repository

import (
	"context"
	"sort"

	"poolops/internal/domain/entities"
	"poolops/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultContactsTableName = "property_contacts"
	contactsPropertyIndex    = "property_id-index"
)

type contactItem struct {
	ID          string `dynamodbav:"id"`
	PropertyID  string `dynamodbav:"property_id"`
	Name        string `dynamodbav:"name"`
	Email       string `dynamodbav:"email,omitempty"`
	Phone       string `dynamodbav:"phone,omitempty"`
	ContactType string `dynamodbav:"contact_type,omitempty"`
	Primary     bool   `dynamodbav:"primary,omitempty"`
}

// ContactDynamoRepository reads property contacts from DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: property_id-index (PK: property_id)
type ContactDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IContactRepository = (*ContactDynamoRepository)(nil)

func NewContactDynamoRepository(ddb *dynamodb.Client) *ContactDynamoRepository {
	return &ContactDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CONTACTS_TABLE", defaultContactsTableName),
	}
}

// GetPropertyContacts returns the property's contacts, primary first.
func (r *ContactDynamoRepository) GetPropertyContacts(ctx context.Context, propertyID string) ([]entities.Contact, error) {
	contacts, err := r.queryByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].Primary && !contacts[j].Primary
	})
	return contacts, nil
}

// GetBillingContacts returns only the contacts marked as billing.
func (r *ContactDynamoRepository) GetBillingContacts(ctx context.Context, propertyID string) ([]entities.Contact, error) {
	contacts, err := r.queryByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	billing := contacts[:0]
	for _, c := range contacts {
		if c.ContactType == "billing" {
			billing = append(billing, c)
		}
	}
	return billing, nil
}

func (r *ContactDynamoRepository) queryByProperty(ctx context.Context, propertyID string) ([]entities.Contact, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(contactsPropertyIndex),
		KeyConditionExpression: aws.String("property_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: propertyID},
		},
	})
	if err != nil {
		return nil, err
	}

	contacts := make([]entities.Contact, 0, len(out.Items))
	for _, raw := range out.Items {
		var it contactItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		contacts = append(contacts, entities.Contact{
			ID:          it.ID,
			PropertyID:  it.PropertyID,
			Name:        it.Name,
			Email:       it.Email,
			Phone:       it.Phone,
			ContactType: it.ContactType,
			Primary:     it.Primary,
		})
	}
	return contacts, nil
}
