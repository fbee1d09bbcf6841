package request

// SendApprovalRequest triggers the email approval path. RecipientEmail
// overrides contact resolution when set.
type SendApprovalRequest struct {
	RecipientEmail string       `json:"recipient_email" binding:"omitempty,email"`
	CustomMessage  string       `json:"custom_message"`
	Actor          ActorRequest `json:"actor"`
}

// VerbalApprovalRequest records a phone or in-person customer decision.
type VerbalApprovalRequest struct {
	Decision      string       `json:"decision" binding:"required,oneof=approve decline"`
	ApproverName  string       `json:"approver_name" binding:"required"`
	ApproverTitle string       `json:"approver_title"`
	RecordedBy    string       `json:"recorded_by" binding:"required"`
	Method        string       `json:"method" binding:"omitempty,oneof=email phone other"`
	MethodDetail  string       `json:"method_detail"`
	Actor         ActorRequest `json:"actor"`
}

// TokenApproveRequest is the public approval-page accept payload.
type TokenApproveRequest struct {
	ApproverName  string `json:"approver_name" binding:"required"`
	ApproverTitle string `json:"approver_title"`
}

// TokenRejectRequest is the public approval-page decline payload.
type TokenRejectRequest struct {
	ApproverName string `json:"approver_name" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
}
