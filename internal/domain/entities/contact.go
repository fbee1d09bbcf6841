package entities

// Contact is a person attached to a property, used for approval-email
// recipient resolution. Type distinguishes general property contacts from
// billing contacts.
type Contact struct {
	ID          string `json:"id"`
	PropertyID  string `json:"property_id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ContactType string `json:"contact_type,omitempty"` // e.g. "manager", "billing"
	Primary     bool   `json:"primary,omitempty"`
}
