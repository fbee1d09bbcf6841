package interfaces

import "context"

// ApprovalEmail is the outbound message built by the approval orchestrator.
type ApprovalEmail struct {
	To             string
	CC             []string
	Subject        string
	Body           string
	EstimateID     string
	EstimateNumber string
}

// IEmailDispatcher sends approval emails via the configured transport.
// Dispatch must not be assumed synchronous-instant; a non-nil error means the
// message was not accepted and the caller must not record a send.
//
//go:generate mockgen -source=email_dispatcher_interface.go -destination=mocks/email_dispatcher_mock.go -package=mock_interfaces
type IEmailDispatcher interface {
	Send(ctx context.Context, email ApprovalEmail) error
}
