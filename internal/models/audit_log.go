package models

// AuditLog records sensitive operations: compliance-gate decisions, AI
// interactions, and consent changes. Payload text is already PII-redacted
// by the time it reaches this table.
type AuditLog struct {
	Base
	UserID  uint   `gorm:"index" json:"user_id"`
	Action  string `gorm:"not null" json:"action"`
	Payload string `gorm:"default:'{}'" json:"payload,omitempty"`
}
