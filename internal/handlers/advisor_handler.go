package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "peakfinance/internal/errors"
	"peakfinance/internal/models"
	"peakfinance/internal/services"
)

// AdvisorHandler handles the AI advisor, insight, rule, and consent endpoints.
type AdvisorHandler struct {
	advisorService services.AdvisorServicer
	insightService services.InsightServicer
	aiRuleService  services.AIRuleServicer
	consentService services.ConsentServicer
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(
	advisorService services.AdvisorServicer,
	insightService services.InsightServicer,
	aiRuleService services.AIRuleServicer,
	consentService services.ConsentServicer,
) *AdvisorHandler {
	return &AdvisorHandler{
		advisorService: advisorService,
		insightService: insightService,
		aiRuleService:  aiRuleService,
		consentService: consentService,
	}
}

// AskRequest represents a question for the AI advisor.
type AskRequest struct {
	Question string `json:"question" binding:"required,min=1,max=2000"`
}

// UpdateRulesRequest represents the advisor rule override payload.
type UpdateRulesRequest struct {
	FunRatio           *float64           `json:"fun_ratio" binding:"omitempty,gte=0,lte=1"`
	CategoryCaps       map[string]float64 `json:"category_caps"`
	VelocityThresholdK *float64           `json:"velocity_threshold_k" binding:"omitempty,gt=0"`
	MerchantRules      []map[string]any   `json:"merchant_rules"`
}

// SetConsentRequest represents a consent grant or revocation.
type SetConsentRequest struct {
	Scope   models.ConsentScope `json:"scope" binding:"required,consent_scope"`
	Granted *bool               `json:"granted" binding:"required"`
}

// ruleJSON shapes an advisor rule for responses, decoding the JSON columns.
func ruleJSON(rule *models.AIRule) gin.H {
	return gin.H{
		"fun_ratio":            rule.FunRatio,
		"category_caps":        rule.CategoryCaps(),
		"velocity_threshold_k": rule.VelocityThresholdK,
		"merchant_rules":       rule.MerchantRules(),
	}
}

// Ask handles an advisor question.
// @Summary     Ask the advisor
// @Description Ask a financial question; regulated requests are refused
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AskRequest true "Question"
// @Success     200 {object} services.AdvisorReply "Advisor reply"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /ai/ask [post]
func (h *AdvisorHandler) Ask(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	reply, err := h.advisorService.Ask(c.Request.Context(), userID, req.Question)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

// Insights returns rule-based insights for the authenticated user.
// @Summary     Get insights
// @Description Get rule-based observations about the user's finances
// @Tags        ai
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Insights"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /ai/insights [get]
func (h *AdvisorHandler) Insights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	insights, err := h.insightService.GenerateInsights(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// GetRules returns the user's advisor rule override, or the defaults when the
// user has never customized them.
// @Summary     Get advisor rules
// @Description Get the per-user advisor rule overrides
// @Tags        ai
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Advisor rules"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /ai/rules [get]
func (h *AdvisorHandler) GetRules(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rule, err := h.aiRuleService.GetRule(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"rules": ruleJSON(&models.AIRule{
				FunRatio:           0.15,
				CategoryCapsJSON:   "{}",
				VelocityThresholdK: 2.0,
				MerchantRulesJSON:  "[]",
			})})
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": ruleJSON(rule)})
}

// UpdateRules creates or updates the user's advisor rule override.
// @Summary     Update advisor rules
// @Description Create or update the per-user advisor rule overrides
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateRulesRequest true "Rule fields"
// @Success     200 {object} map[string]interface{} "Updated rules"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /ai/rules [put]
func (h *AdvisorHandler) UpdateRules(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, err := h.aiRuleService.UpsertRule(userID, services.AIRuleUpdate{
		FunRatio:           req.FunRatio,
		CategoryCaps:       req.CategoryCaps,
		VelocityThresholdK: req.VelocityThresholdK,
		MerchantRules:      req.MerchantRules,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": ruleJSON(rule)})
}

// GetConsents lists the user's consent records.
// @Summary     Get consents
// @Description List the user's consent grants and revocations
// @Tags        consents
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Consents"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /consents [get]
func (h *AdvisorHandler) GetConsents(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	consents, err := h.consentService.GetUserConsents(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"consents": consents})
}

// SetConsent grants or revokes a consent scope.
// @Summary     Set consent
// @Description Grant or revoke a consent scope
// @Tags        consents
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetConsentRequest true "Consent change"
// @Success     200 {object} models.Consent "Updated consent"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /consents [put]
func (h *AdvisorHandler) SetConsent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	consent, err := h.consentService.SetConsent(userID, req.Scope, *req.Granted)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"consent": consent})
}
