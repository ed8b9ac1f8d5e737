package models

import "encoding/json"

// AIRule holds per-user overrides for the advisor. At most one row per user;
// absence means system-wide defaults apply. Caps and merchant rules are
// stored as JSON text so the schema stays stable as rule shapes evolve.
type AIRule struct {
	Base
	UserID             uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	FunRatio           float64 `gorm:"default:0.15;check:fun_ratio >= 0 AND fun_ratio <= 1" json:"fun_ratio"`
	CategoryCapsJSON   string  `gorm:"default:'{}'" json:"-"`
	VelocityThresholdK float64 `gorm:"default:2.0" json:"velocity_threshold_k"`
	MerchantRulesJSON  string  `gorm:"default:'[]'" json:"-"`
}

// CategoryCaps decodes the per-category spending caps. Invalid or empty JSON
// yields an empty map rather than an error.
func (r *AIRule) CategoryCaps() map[string]float64 {
	caps := make(map[string]float64)
	if r.CategoryCapsJSON != "" {
		_ = json.Unmarshal([]byte(r.CategoryCapsJSON), &caps)
	}
	return caps
}

// SetCategoryCaps encodes the per-category spending caps.
func (r *AIRule) SetCategoryCaps(caps map[string]float64) error {
	data, err := json.Marshal(caps)
	if err != nil {
		return err
	}
	r.CategoryCapsJSON = string(data)
	return nil
}

// MerchantRules decodes the merchant-specific rules. Invalid or empty JSON
// yields an empty slice.
func (r *AIRule) MerchantRules() []map[string]any {
	var rules []map[string]any
	if r.MerchantRulesJSON != "" {
		_ = json.Unmarshal([]byte(r.MerchantRulesJSON), &rules)
	}
	if rules == nil {
		rules = []map[string]any{}
	}
	return rules
}

// SetMerchantRules encodes the merchant-specific rules.
func (r *AIRule) SetMerchantRules(rules []map[string]any) error {
	data, err := json.Marshal(rules)
	if err != nil {
		return err
	}
	r.MerchantRulesJSON = string(data)
	return nil
}
