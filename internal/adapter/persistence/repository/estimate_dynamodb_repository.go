package repository

import (
	"context"
	"errors"
	"strconv"
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
	defaultEstimatesTableName = "estimates"
	estimatesTokenIndex       = "approval_token-index"
	estimatesPropertyIndex    = "property_id-index"
)

type lineItemItem struct {
	LineNumber     int     `dynamodbav:"line_number"`
	ProductService string  `dynamodbav:"product_service,omitempty"`
	Description    string  `dynamodbav:"description"`
	SKU            string  `dynamodbav:"sku,omitempty"`
	Quantity       float64 `dynamodbav:"quantity"`
	Rate           float64 `dynamodbav:"rate"`
	Amount         int64   `dynamodbav:"amount"`
	Taxable        bool    `dynamodbav:"taxable"`
	ServiceDate    string  `dynamodbav:"service_date,omitempty"`
}

type personItem struct {
	ID   string `dynamodbav:"id,omitempty"`
	Name string `dynamodbav:"name,omitempty"`
}

type attachmentItem struct {
	Name string `dynamodbav:"name"`
	URL  string `dynamodbav:"url"`
	Size int64  `dynamodbav:"size"`
}

type estimateItem struct {
	ID             string `dynamodbav:"id"`
	EstimateNumber string `dynamodbav:"estimate_number"`
	Version        int64  `dynamodbav:"version"`

	PropertyID    string `dynamodbav:"property_id"`
	PropertyName  string `dynamodbav:"property_name,omitempty"`
	CustomerName  string `dynamodbav:"customer_name,omitempty"`
	CustomerEmail string `dynamodbav:"customer_email,omitempty"`
	Address       string `dynamodbav:"address,omitempty"`

	Title       string `dynamodbav:"title"`
	Description string `dynamodbav:"description,omitempty"`

	Items           []lineItemItem `dynamodbav:"items"`
	Subtotal        int64          `dynamodbav:"subtotal"`
	DiscountType    string         `dynamodbav:"discount_type,omitempty"`
	DiscountValue   float64        `dynamodbav:"discount_value,omitempty"`
	DiscountAmount  int64          `dynamodbav:"discount_amount,omitempty"`
	TaxableSubtotal int64          `dynamodbav:"taxable_subtotal,omitempty"`
	SalesTaxRate    float64        `dynamodbav:"sales_tax_rate,omitempty"`
	SalesTaxAmount  int64          `dynamodbav:"sales_tax_amount,omitempty"`
	DepositType     string         `dynamodbav:"deposit_type,omitempty"`
	DepositValue    float64        `dynamodbav:"deposit_value,omitempty"`
	DepositAmount   int64          `dynamodbav:"deposit_amount,omitempty"`
	TotalAmount     int64          `dynamodbav:"total_amount"`

	Status string `dynamodbav:"status"`

	CreatedByTech   *personItem `dynamodbav:"created_by_tech,omitempty"`
	RepairTech      *personItem `dynamodbav:"repair_tech,omitempty"`
	ServiceTech     *personItem `dynamodbav:"service_tech,omitempty"`
	FieldSupervisor *personItem `dynamodbav:"field_supervisor,omitempty"`
	OfficeMember    *personItem `dynamodbav:"office_member,omitempty"`
	RepairForeman   *personItem `dynamodbav:"repair_foreman,omitempty"`
	ApprovedBy      *personItem `dynamodbav:"approved_by_manager,omitempty"`

	ApprovalToken          string `dynamodbav:"approval_token,omitempty"`
	ApprovalTokenExpiresAt string `dynamodbav:"approval_token_expires_at,omitempty"`
	ApprovalSentTo         string `dynamodbav:"approval_sent_to,omitempty"`
	ApprovalSentAt         string `dynamodbav:"approval_sent_at,omitempty"`
	CustomerApproverName   string `dynamodbav:"customer_approver_name,omitempty"`
	CustomerApproverTitle  string `dynamodbav:"customer_approver_title,omitempty"`
	ApprovedAt             string `dynamodbav:"approved_at,omitempty"`
	RejectedAt             string `dynamodbav:"rejected_at,omitempty"`
	RejectionReason        string `dynamodbav:"rejection_reason,omitempty"`

	ScheduledDate      string `dynamodbav:"scheduled_date,omitempty"`
	DeadlineValue      int    `dynamodbav:"deadline_value,omitempty"`
	DeadlineUnit       string `dynamodbav:"deadline_unit,omitempty"`
	DeadlineAt         string `dynamodbav:"deadline_at,omitempty"`
	AutoReturnedAt     string `dynamodbav:"auto_returned_at,omitempty"`
	AutoReturnedReason string `dynamodbav:"auto_returned_reason,omitempty"`

	InvoiceID             string `dynamodbav:"invoice_id,omitempty"`
	ExternalInvoiceID     string `dynamodbav:"external_invoice_id,omitempty"`
	ExternalInvoiceNumber string `dynamodbav:"external_invoice_number,omitempty"`
	InvoiceError          string `dynamodbav:"invoice_error,omitempty"`

	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
	ReportedDate      string `dynamodbav:"reported_date,omitempty"`
	SentForApprovalAt string `dynamodbav:"sent_for_approval_at,omitempty"`
	CompletedAt       string `dynamodbav:"completed_at,omitempty"`
	InvoicedAt        string `dynamodbav:"invoiced_at,omitempty"`
	PaidAt            string `dynamodbav:"paid_at,omitempty"`

	SourceType         string `dynamodbav:"source_type,omitempty"`
	SourceRepairJobID  string `dynamodbav:"source_repair_job_id,omitempty"`
	SourceEmergencyID  string `dynamodbav:"source_emergency_id,omitempty"`
	ServiceRepairCount int    `dynamodbav:"service_repair_count,omitempty"`

	WorkType   string `dynamodbav:"work_type,omitempty"`
	WOReceived bool   `dynamodbav:"wo_received,omitempty"`
	WONumber   string `dynamodbav:"wo_number,omitempty"`

	ArchiveReason string `dynamodbav:"archive_reason,omitempty"`
	DeletedAt     string `dynamodbav:"deleted_at,omitempty"`
	DeleteReason  string `dynamodbav:"delete_reason,omitempty"`

	Photos      []string         `dynamodbav:"photos,omitempty"`
	Attachments []attachmentItem `dynamodbav:"attachments,omitempty"`

	TechNotes    string `dynamodbav:"tech_notes,omitempty"`
	ManagerNotes string `dynamodbav:"manager_notes,omitempty"`
}

// EstimateDynamoRepository persists Estimate entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: approval_token-index (PK: approval_token)
//   - GSI: property_id-index (PK: property_id)
//
// Update is a full-item conditional PutItem keyed on the stored version, so a
// status change and its side-effect fields land in one write and concurrent
// writers lose with a version conflict instead of silently clobbering.
type EstimateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb *dynamodb.Client) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
	}
}

func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	it := toEstimateItem(e)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Estimate{}, err
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
		return entities.Estimate{}, err
	}
	return e, nil
}

// Update stores the full entity, expecting the caller's version to still be
// current. The stored version is bumped by one on success.
func (r *EstimateDynamoRepository) Update(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	expected := e.Version
	e.Version++

	it := toEstimateItem(e)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Estimate{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expected, 10)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Estimate{}, interfaces.ErrVersionConflict
		}
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimate{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

func (r *EstimateDynamoRepository) GetByApprovalToken(ctx context.Context, token string) (entities.Estimate, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(estimatesTokenIndex),
		KeyConditionExpression: aws.String("approval_token = :token"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":token": &types.AttributeValueMemberS{Value: token},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Items) == 0 {
		return entities.Estimate{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Estimate{}, err
	}
	// The GSI projection may be stale; re-read the base item for the full
	// current state.
	return r.GetByID(ctx, it.ID)
}

func (r *EstimateDynamoRepository) List(ctx context.Context, status entities.EstimateStatus) ([]entities.Estimate, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}
	if status != "" {
		input.FilterExpression = aws.String("#status = :status")
		input.ExpressionAttributeNames = map[string]string{"#status": "status"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		}
	}

	var estimates []entities.Estimate
	paginator := dynamodb.NewScanPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it estimateItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			estimates = append(estimates, fromEstimateItem(it))
		}
	}
	return estimates, nil
}

func (r *EstimateDynamoRepository) ListByProperty(ctx context.Context, propertyID string) ([]entities.Estimate, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(estimatesPropertyIndex),
		KeyConditionExpression: aws.String("property_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: propertyID},
		},
	})
	if err != nil {
		return nil, err
	}

	estimates := make([]entities.Estimate, 0, len(out.Items))
	for _, raw := range out.Items {
		var it estimateItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		estimates = append(estimates, fromEstimateItem(it))
	}
	return estimates, nil
}

func (r *EstimateDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func toEstimateItem(e entities.Estimate) estimateItem {
	items := make([]lineItemItem, len(e.Items))
	for i, li := range e.Items {
		items[i] = lineItemItem{
			LineNumber:     li.LineNumber,
			ProductService: li.ProductService,
			Description:    li.Description,
			SKU:            li.SKU,
			Quantity:       li.Quantity,
			Rate:           li.Rate,
			Amount:         int64(li.Amount),
			Taxable:        li.Taxable,
			ServiceDate:    formatTimePtr(li.ServiceDate),
		}
	}
	attachments := make([]attachmentItem, len(e.Attachments))
	for i, a := range e.Attachments {
		attachments[i] = attachmentItem{Name: a.Name, URL: a.URL, Size: a.Size}
	}

	return estimateItem{
		ID:             e.ID,
		EstimateNumber: e.EstimateNumber,
		Version:        e.Version,

		PropertyID:    e.PropertyID,
		PropertyName:  e.PropertyName,
		CustomerName:  e.CustomerName,
		CustomerEmail: e.CustomerEmail,
		Address:       e.Address,

		Title:       e.Title,
		Description: e.Description,

		Items:           items,
		Subtotal:        int64(e.Subtotal),
		DiscountType:    string(e.DiscountType),
		DiscountValue:   e.DiscountValue,
		DiscountAmount:  int64(e.DiscountAmount),
		TaxableSubtotal: int64(e.TaxableSubtotal),
		SalesTaxRate:    e.SalesTaxRate,
		SalesTaxAmount:  int64(e.SalesTaxAmount),
		DepositType:     string(e.DepositType),
		DepositValue:    e.DepositValue,
		DepositAmount:   int64(e.DepositAmount),
		TotalAmount:     int64(e.TotalAmount),

		Status: string(e.Status),

		CreatedByTech:   toPersonItem(e.CreatedByTech),
		RepairTech:      toPersonItem(e.RepairTech),
		ServiceTech:     toPersonItem(e.ServiceTech),
		FieldSupervisor: toPersonItem(e.FieldSupervisor),
		OfficeMember:    toPersonItem(e.OfficeMember),
		RepairForeman:   toPersonItem(e.RepairForeman),
		ApprovedBy:      toPersonItem(e.ApprovedBy),

		ApprovalToken:          e.ApprovalToken,
		ApprovalTokenExpiresAt: formatTimePtr(e.ApprovalTokenExpiresAt),
		ApprovalSentTo:         e.ApprovalSentTo,
		ApprovalSentAt:         formatTimePtr(e.ApprovalSentAt),
		CustomerApproverName:   e.CustomerApproverName,
		CustomerApproverTitle:  e.CustomerApproverTitle,
		ApprovedAt:             formatTimePtr(e.ApprovedAt),
		RejectedAt:             formatTimePtr(e.RejectedAt),
		RejectionReason:        e.RejectionReason,

		ScheduledDate:      formatTimePtr(e.ScheduledDate),
		DeadlineValue:      e.DeadlineValue,
		DeadlineUnit:       string(e.DeadlineUnit),
		DeadlineAt:         formatTimePtr(e.DeadlineAt),
		AutoReturnedAt:     formatTimePtr(e.AutoReturnedAt),
		AutoReturnedReason: e.AutoReturnedReason,

		InvoiceID:             e.InvoiceID,
		ExternalInvoiceID:     e.ExternalInvoiceID,
		ExternalInvoiceNumber: e.ExternalInvoiceNumber,
		InvoiceError:          e.InvoiceError,

		CreatedAt:         e.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         e.UpdatedAt.UTC().Format(time.RFC3339Nano),
		ReportedDate:      formatTimePtr(e.ReportedDate),
		SentForApprovalAt: formatTimePtr(e.SentForApprovalAt),
		CompletedAt:       formatTimePtr(e.CompletedAt),
		InvoicedAt:        formatTimePtr(e.InvoicedAt),
		PaidAt:            formatTimePtr(e.PaidAt),

		SourceType:         string(e.SourceType),
		SourceRepairJobID:  e.SourceRepairJobID,
		SourceEmergencyID:  e.SourceEmergencyID,
		ServiceRepairCount: e.ServiceRepairCount,

		WorkType:   e.WorkType,
		WOReceived: e.WOReceived,
		WONumber:   e.WONumber,

		ArchiveReason: e.ArchiveReason,
		DeletedAt:     formatTimePtr(e.DeletedAt),
		DeleteReason:  e.DeleteReason,

		Photos:      e.Photos,
		Attachments: attachments,

		TechNotes:    e.TechNotes,
		ManagerNotes: e.ManagerNotes,
	}
}

func fromEstimateItem(it estimateItem) entities.Estimate {
	items := make([]entities.LineItem, len(it.Items))
	for i, li := range it.Items {
		items[i] = entities.LineItem{
			LineNumber:     li.LineNumber,
			ProductService: li.ProductService,
			Description:    li.Description,
			SKU:            li.SKU,
			Quantity:       li.Quantity,
			Rate:           li.Rate,
			Amount:         money.Cents(li.Amount),
			Taxable:        li.Taxable,
			ServiceDate:    parseTimePtr(li.ServiceDate),
		}
	}
	attachments := make([]entities.Attachment, len(it.Attachments))
	for i, a := range it.Attachments {
		attachments[i] = entities.Attachment{Name: a.Name, URL: a.URL, Size: a.Size}
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	return entities.Estimate{
		ID:             it.ID,
		EstimateNumber: it.EstimateNumber,
		Version:        it.Version,

		PropertyID:    it.PropertyID,
		PropertyName:  it.PropertyName,
		CustomerName:  it.CustomerName,
		CustomerEmail: it.CustomerEmail,
		Address:       it.Address,

		Title:       it.Title,
		Description: it.Description,

		Items:           items,
		Subtotal:        money.Cents(it.Subtotal),
		DiscountType:    money.AdjustmentType(it.DiscountType),
		DiscountValue:   it.DiscountValue,
		DiscountAmount:  money.Cents(it.DiscountAmount),
		TaxableSubtotal: money.Cents(it.TaxableSubtotal),
		SalesTaxRate:    it.SalesTaxRate,
		SalesTaxAmount:  money.Cents(it.SalesTaxAmount),
		DepositType:     money.AdjustmentType(it.DepositType),
		DepositValue:    it.DepositValue,
		DepositAmount:   money.Cents(it.DepositAmount),
		TotalAmount:     money.Cents(it.TotalAmount),

		Status: entities.EstimateStatus(it.Status),

		CreatedByTech:   fromPersonItem(it.CreatedByTech),
		RepairTech:      fromPersonItem(it.RepairTech),
		ServiceTech:     fromPersonItem(it.ServiceTech),
		FieldSupervisor: fromPersonItem(it.FieldSupervisor),
		OfficeMember:    fromPersonItem(it.OfficeMember),
		RepairForeman:   fromPersonItem(it.RepairForeman),
		ApprovedBy:      fromPersonItem(it.ApprovedBy),

		ApprovalToken:          it.ApprovalToken,
		ApprovalTokenExpiresAt: parseTimePtr(it.ApprovalTokenExpiresAt),
		ApprovalSentTo:         it.ApprovalSentTo,
		ApprovalSentAt:         parseTimePtr(it.ApprovalSentAt),
		CustomerApproverName:   it.CustomerApproverName,
		CustomerApproverTitle:  it.CustomerApproverTitle,
		ApprovedAt:             parseTimePtr(it.ApprovedAt),
		RejectedAt:             parseTimePtr(it.RejectedAt),
		RejectionReason:        it.RejectionReason,

		ScheduledDate:      parseTimePtr(it.ScheduledDate),
		DeadlineValue:      it.DeadlineValue,
		DeadlineUnit:       entities.DeadlineUnit(it.DeadlineUnit),
		DeadlineAt:         parseTimePtr(it.DeadlineAt),
		AutoReturnedAt:     parseTimePtr(it.AutoReturnedAt),
		AutoReturnedReason: it.AutoReturnedReason,

		InvoiceID:             it.InvoiceID,
		ExternalInvoiceID:     it.ExternalInvoiceID,
		ExternalInvoiceNumber: it.ExternalInvoiceNumber,
		InvoiceError:          it.InvoiceError,

		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
		ReportedDate:      parseTimePtr(it.ReportedDate),
		SentForApprovalAt: parseTimePtr(it.SentForApprovalAt),
		CompletedAt:       parseTimePtr(it.CompletedAt),
		InvoicedAt:        parseTimePtr(it.InvoicedAt),
		PaidAt:            parseTimePtr(it.PaidAt),

		SourceType:         entities.SourceType(it.SourceType),
		SourceRepairJobID:  it.SourceRepairJobID,
		SourceEmergencyID:  it.SourceEmergencyID,
		ServiceRepairCount: it.ServiceRepairCount,

		WorkType:   it.WorkType,
		WOReceived: it.WOReceived,
		WONumber:   it.WONumber,

		ArchiveReason: it.ArchiveReason,
		DeletedAt:     parseTimePtr(it.DeletedAt),
		DeleteReason:  it.DeleteReason,

		Photos:      it.Photos,
		Attachments: attachments,

		TechNotes:    it.TechNotes,
		ManagerNotes: it.ManagerNotes,
	}
}

func toPersonItem(p entities.PersonRef) *personItem {
	if p.IsZero() {
		return nil
	}
	return &personItem{ID: p.ID, Name: p.Name}
}

func fromPersonItem(p *personItem) entities.PersonRef {
	if p == nil {
		return entities.PersonRef{}
	}
	return entities.PersonRef{ID: p.ID, Name: p.Name}
}
