package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"peakfinance/internal/logger"
	"peakfinance/internal/models"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Record persists an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation. Payload values must already be
// PII-redacted by the caller.
func (s *auditService) Record(userID uint, action string, payload map[string]any) {
	payloadJSON := "{}"
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit payload", "error", err, "action", action)
		} else {
			payloadJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:  userID,
		Action:  action,
		Payload: payloadJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
		)
	}
}
