package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrInvoicingNotConnected signals that the external invoicing system has no
// valid (or refreshable) connection. Operator-actionable: reconnect in
// settings. Distinct from transient failures, which do not block the local
// invoiced transition.
var ErrInvoicingNotConnected = errors.New("invoicing system not connected")

// InvoiceLine is one row of an external invoice payload, amounts in
// major-unit strings as the external API expects.
type InvoiceLine struct {
	Description string
	Quantity    float64
	Rate        string
	Amount      string
	SKU         string
}

// InvoicePayload is the request built by the invoicing bridge.
type InvoicePayload struct {
	CustomerName   string
	CustomerEmail  string
	CCEmails       []string
	BCCEmails      []string
	PropertyName   string
	EstimateNumber string
	Lines          []InvoiceLine
	Memo           string
	Terms          string
	PhotoURLs      []string
	SendEmail      bool
}

// InvoiceResult is the external system's answer for a created invoice.
type InvoiceResult struct {
	InvoiceID     string
	InvoiceNumber string
	EmailSent     bool
}

// ConnectionStatus describes the state of the external invoicing link.
type ConnectionStatus struct {
	Connected            bool       `json:"connected"`
	RealmID              string     `json:"realm_id,omitempty"`
	AccessTokenValid     bool       `json:"access_token_valid,omitempty"`
	RefreshTokenValid    bool       `json:"refresh_token_valid,omitempty"`
	AccessTokenExpiresAt *time.Time `json:"access_token_expires_at,omitempty"`
}

// IInvoicingGateway abstracts the external invoicing system (QuickBooks).
// CreateInvoice returns ErrInvoicingNotConnected when no usable connection
// exists; any other error is a transient external failure.
//
//go:generate mockgen -source=invoicing_gateway_interface.go -destination=mocks/invoicing_gateway_mock.go -package=mock_interfaces
type IInvoicingGateway interface {
	CreateInvoice(ctx context.Context, payload InvoicePayload) (InvoiceResult, error)
	Status(ctx context.Context) (ConnectionStatus, error)
	Disconnect(ctx context.Context) error
}
