package models

// ConsentScope identifies what the user has consented to.
type ConsentScope string

// Consent scopes.
const (
	ConsentReadStatements   ConsentScope = "read_statements"
	ConsentShareWithPartner ConsentScope = "share_with_partner"
	ConsentAITrainingOptIn  ConsentScope = "ai_training_opt_in"
)

// Consent records a grant or revocation of a scope for a user.
type Consent struct {
	Base
	UserID  uint         `gorm:"not null;index" json:"user_id"`
	Scope   ConsentScope `gorm:"not null" json:"scope"`
	Granted bool         `gorm:"default:false" json:"granted"`
}
