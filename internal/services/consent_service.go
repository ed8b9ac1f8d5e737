package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "peakfinance/internal/errors"
	"peakfinance/internal/models"
)

// consentService handles consent tracking.
type consentService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewConsentService creates a new ConsentServicer.
func NewConsentService(db *gorm.DB, audit AuditServicer) ConsentServicer {
	return &consentService{db: db, audit: audit}
}

// GetUserConsents returns all consent records for the user.
func (s *consentService) GetUserConsents(userID uint) ([]models.Consent, error) {
	var consents []models.Consent
	if err := s.db.Where("user_id = ?", userID).Order("scope ASC").Find(&consents).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return consents, nil
}

// SetConsent grants or revokes a consent scope, creating the record on first
// use. Every change is audited.
func (s *consentService) SetConsent(userID uint, scope models.ConsentScope, granted bool) (*models.Consent, error) {
	switch scope {
	case models.ConsentReadStatements, models.ConsentShareWithPartner, models.ConsentAITrainingOptIn:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown consent scope")
	}

	var consent models.Consent
	err := s.db.Where("user_id = ? AND scope = ?", userID, scope).First(&consent).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		consent = models.Consent{UserID: userID, Scope: scope}
	}

	consent.Granted = granted
	if err := s.db.Save(&consent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	action := "consent_revoked"
	if granted {
		action = "consent_granted"
	}
	s.audit.Record(userID, action, map[string]any{"scope": string(scope)})

	return &consent, nil
}
