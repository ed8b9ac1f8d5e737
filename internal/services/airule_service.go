package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "peakfinance/internal/errors"
	"peakfinance/internal/models"
)

// aiRuleService handles per-user advisor rule overrides.
type aiRuleService struct {
	db *gorm.DB
}

// NewAIRuleService creates a new AIRuleServicer.
func NewAIRuleService(db *gorm.DB) AIRuleServicer {
	return &aiRuleService{db: db}
}

// GetRule returns the user's advisor rule override, or ErrNotFound when the
// user has never customized the defaults.
func (s *aiRuleService) GetRule(userID uint) (*models.AIRule, error) {
	var rule models.AIRule
	if err := s.db.Where("user_id = ?", userID).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rule, nil
}

// UpsertRule creates or updates the user's advisor rule override.
func (s *aiRuleService) UpsertRule(userID uint, update AIRuleUpdate) (*models.AIRule, error) {
	if update.FunRatio != nil && (*update.FunRatio < 0 || *update.FunRatio > 1) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "fun ratio must be between 0 and 1")
	}
	if update.VelocityThresholdK != nil && *update.VelocityThresholdK <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "velocity threshold must be positive")
	}

	rule, err := s.GetRule(userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		rule = &models.AIRule{
			UserID:             userID,
			FunRatio:           0.15,
			CategoryCapsJSON:   "{}",
			VelocityThresholdK: 2.0,
			MerchantRulesJSON:  "[]",
		}
	}

	if update.FunRatio != nil {
		rule.FunRatio = *update.FunRatio
	}
	if update.VelocityThresholdK != nil {
		rule.VelocityThresholdK = *update.VelocityThresholdK
	}
	if update.CategoryCaps != nil {
		if err := rule.SetCategoryCaps(update.CategoryCaps); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
		}
	}
	if update.MerchantRules != nil {
		if err := rule.SetMerchantRules(update.MerchantRules); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
		}
	}

	if err := s.db.Save(rule).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return rule, nil
}
