package repository

import (
	"context"
	"sort"
	"time"

	"poolops/internal/domain/entities"
	"poolops/internal/domain/money"
	"poolops/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultHistoryTableName = "estimate_history"
	historyEstimateIDIndex  = "estimate_id-index"
)

type historyItem struct {
	ID                string   `dynamodbav:"id"`
	EstimateID        string   `dynamodbav:"estimate_id"`
	EstimateNumber    string   `dynamodbav:"estimate_number,omitempty"`
	PropertyID        string   `dynamodbav:"property_id,omitempty"`
	PropertyName      string   `dynamodbav:"property_name,omitempty"`
	CustomerName      string   `dynamodbav:"customer_name,omitempty"`
	EstimateValue     int64    `dynamodbav:"estimate_value,omitempty"`
	ActionType        string   `dynamodbav:"action_type"`
	ActionDescription string   `dynamodbav:"action_description"`
	PerformedByUserID string   `dynamodbav:"performed_by_user_id,omitempty"`
	PerformedByName   string   `dynamodbav:"performed_by_user_name,omitempty"`
	PerformedAt       string   `dynamodbav:"performed_at"`
	PreviousStatus    string   `dynamodbav:"previous_status,omitempty"`
	NewStatus         string   `dynamodbav:"new_status,omitempty"`
	ApproverName      string   `dynamodbav:"approver_name,omitempty"`
	ApproverTitle     string   `dynamodbav:"approver_title,omitempty"`
	ApprovalMethod    string   `dynamodbav:"approval_method,omitempty"`
	ApprovalDetails   string   `dynamodbav:"approval_details,omitempty"`
	Reason            string   `dynamodbav:"reason,omitempty"`
	EmailSubject      string   `dynamodbav:"email_subject,omitempty"`
	EmailRecipients   []string `dynamodbav:"email_recipients,omitempty"`
}

// HistoryDynamoRepository persists the append-only history log in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: estimate_id-index (PK: estimate_id)
//
// Filtering beyond estimate_id happens in memory after the scan/query; the
// history volume is modest and the filter combinations are open-ended.
type HistoryDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IHistoryRepository = (*HistoryDynamoRepository)(nil)

func NewHistoryDynamoRepository(ddb *dynamodb.Client) *HistoryDynamoRepository {
	return &HistoryDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("HISTORY_TABLE", defaultHistoryTableName),
	}
}

func (r *HistoryDynamoRepository) Create(ctx context.Context, l entities.HistoryLog) (entities.HistoryLog, error) {
	it := toHistoryItem(l)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.HistoryLog{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.HistoryLog{}, err
	}
	return l, nil
}

func (r *HistoryDynamoRepository) List(ctx context.Context, filter entities.HistoryFilter) ([]entities.HistoryLog, error) {
	var raws []map[string]types.AttributeValue

	if filter.EstimateID != "" {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(historyEstimateIDIndex),
			KeyConditionExpression: aws.String("estimate_id = :eid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":eid": &types.AttributeValueMemberS{Value: filter.EstimateID},
			},
		})
		if err != nil {
			return nil, err
		}
		raws = out.Items
	} else {
		paginator := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
			TableName: aws.String(r.tableName),
		})
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			raws = append(raws, page.Items...)
		}
	}

	logs := make([]entities.HistoryLog, 0, len(raws))
	for _, raw := range raws {
		var it historyItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		l := fromHistoryItem(it)
		if matchesHistoryFilter(l, filter) {
			logs = append(logs, l)
		}
	}

	// Newest first.
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].PerformedAt.After(logs[j].PerformedAt)
	})
	return logs, nil
}

func matchesHistoryFilter(l entities.HistoryLog, f entities.HistoryFilter) bool {
	if f.ActionType != "" && l.ActionType != f.ActionType {
		return false
	}
	if f.PropertyID != "" && l.PropertyID != f.PropertyID {
		return false
	}
	if f.PerformedByName != "" && l.PerformedByName != f.PerformedByName {
		return false
	}
	if f.ApprovalMethod != "" && l.ApprovalMethod != f.ApprovalMethod {
		return false
	}
	if f.StartDate != nil && l.PerformedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && l.PerformedAt.After(f.EndDate.Add(24*time.Hour)) {
		return false
	}
	return true
}

func toHistoryItem(l entities.HistoryLog) historyItem {
	return historyItem{
		ID:                l.ID,
		EstimateID:        l.EstimateID,
		EstimateNumber:    l.EstimateNumber,
		PropertyID:        l.PropertyID,
		PropertyName:      l.PropertyName,
		CustomerName:      l.CustomerName,
		EstimateValue:     int64(l.EstimateValue),
		ActionType:        string(l.ActionType),
		ActionDescription: l.ActionDescription,
		PerformedByUserID: l.PerformedByUserID,
		PerformedByName:   l.PerformedByName,
		PerformedAt:       l.PerformedAt.UTC().Format(time.RFC3339Nano),
		PreviousStatus:    string(l.PreviousStatus),
		NewStatus:         string(l.NewStatus),
		ApproverName:      l.ApproverName,
		ApproverTitle:     l.ApproverTitle,
		ApprovalMethod:    string(l.ApprovalMethod),
		ApprovalDetails:   l.ApprovalDetails,
		Reason:            l.Reason,
		EmailSubject:      l.EmailSubject,
		EmailRecipients:   l.EmailRecipients,
	}
}

func fromHistoryItem(it historyItem) entities.HistoryLog {
	performedAt, _ := time.Parse(time.RFC3339Nano, it.PerformedAt)
	return entities.HistoryLog{
		ID:                it.ID,
		EstimateID:        it.EstimateID,
		EstimateNumber:    it.EstimateNumber,
		PropertyID:        it.PropertyID,
		PropertyName:      it.PropertyName,
		CustomerName:      it.CustomerName,
		EstimateValue:     money.Cents(it.EstimateValue),
		ActionType:        entities.HistoryAction(it.ActionType),
		ActionDescription: it.ActionDescription,
		PerformedByUserID: it.PerformedByUserID,
		PerformedByName:   it.PerformedByName,
		PerformedAt:       performedAt,
		PreviousStatus:    entities.EstimateStatus(it.PreviousStatus),
		NewStatus:         entities.EstimateStatus(it.NewStatus),
		ApproverName:      it.ApproverName,
		ApproverTitle:     it.ApproverTitle,
		ApprovalMethod:    entities.ApprovalMethod(it.ApprovalMethod),
		ApprovalDetails:   it.ApprovalDetails,
		Reason:            it.Reason,
		EmailSubject:      it.EmailSubject,
		EmailRecipients:   it.EmailRecipients,
	}
}
