package entities

import "fmt"

// EstimateStatus is the closed set of workflow states. Transitions are
// validated by CanTransition; adding a status means extending the switch
// there, so an unhandled pair is rejected rather than silently applied.
type EstimateStatus string

const (
	StatusDraft           EstimateStatus = "draft"
	StatusPendingApproval EstimateStatus = "pending_approval"
	StatusApproved        EstimateStatus = "approved"
	StatusRejected        EstimateStatus = "rejected"
	StatusNeedsScheduling EstimateStatus = "needs_scheduling"
	StatusScheduled       EstimateStatus = "scheduled"
	StatusCompleted       EstimateStatus = "completed"
	StatusReadyToInvoice  EstimateStatus = "ready_to_invoice"
	StatusInvoiced        EstimateStatus = "invoiced"
	StatusPaid            EstimateStatus = "paid"
	StatusArchived        EstimateStatus = "archived"
)

// AllStatuses enumerates every workflow state, in lifecycle order.
var AllStatuses = []EstimateStatus{
	StatusDraft, StatusPendingApproval, StatusApproved, StatusRejected,
	StatusNeedsScheduling, StatusScheduled, StatusCompleted,
	StatusReadyToInvoice, StatusInvoiced, StatusPaid, StatusArchived,
}

// Valid reports whether s is a known workflow state.
func (s EstimateStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusRejected,
		StatusNeedsScheduling, StatusScheduled, StatusCompleted,
		StatusReadyToInvoice, StatusInvoiced, StatusPaid, StatusArchived:
		return true
	}
	return false
}

// Terminal reports whether no forward transition leaves s. Paid estimates can
// only be archived; archived is reversible to draft.
func (s EstimateStatus) Terminal() bool {
	return s == StatusPaid
}

// CanTransition reports whether from → to is a legal workflow move.
//
// Transitions are one-directional except the explicit reversible pairs:
// archive/restore and scheduled ↔ needs_scheduling. Any non-terminal status
// may be archived.
func CanTransition(from, to EstimateStatus) bool {
	if to == StatusArchived {
		return from != StatusArchived
	}
	switch from {
	case StatusDraft:
		return to == StatusPendingApproval || to == StatusApproved || to == StatusRejected
	case StatusPendingApproval:
		// Resend keeps the status; approval callbacks resolve it.
		return to == StatusPendingApproval || to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusNeedsScheduling || to == StatusScheduled
	case StatusRejected:
		// Revise-and-resend returns the estimate to the draft edit flow.
		return to == StatusDraft
	case StatusNeedsScheduling:
		return to == StatusScheduled
	case StatusScheduled:
		return to == StatusScheduled || to == StatusNeedsScheduling || to == StatusCompleted
	case StatusCompleted:
		return to == StatusReadyToInvoice
	case StatusReadyToInvoice:
		return to == StatusInvoiced
	case StatusInvoiced:
		return to == StatusPaid
	case StatusPaid:
		return false
	case StatusArchived:
		return to == StatusDraft
	}
	return false
}

// ValidateTransition returns a descriptive error for an illegal move.
func ValidateTransition(from, to EstimateStatus) error {
	if !to.Valid() {
		return fmt.Errorf("unknown status %q", to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("transition %s -> %s is not allowed", from, to)
	}
	return nil
}
