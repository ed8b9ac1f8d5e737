package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"peakfinance/internal/config"
	apperrors "peakfinance/internal/errors"
	"peakfinance/internal/services"
)

// CalcHandler handles the calculator and dashboard endpoints.
type CalcHandler struct {
	plannerService   services.PlannerServicer
	dashboardService services.DashboardServicer
	cfg              *config.Config
}

// NewCalcHandler creates a new CalcHandler.
func NewCalcHandler(plannerService services.PlannerServicer, dashboardService services.DashboardServicer, cfg *config.Config) *CalcHandler {
	return &CalcHandler{plannerService: plannerService, dashboardService: dashboardService, cfg: cfg}
}

// LoanPreAssessmentRequest represents a loan affordability query.
type LoanPreAssessmentRequest struct {
	Income              float64 `json:"income" binding:"required,gt=0"`
	ExistingMonthlyDebt float64 `json:"existing_monthly_debt" binding:"gte=0"`
	LoanType            string  `json:"loan_type"`
	TermMonths          int     `json:"term_months" binding:"required,gte=1"`
	AnnualRatePct       float64 `json:"annual_rate_pct" binding:"gte=0"`
}

// LoanPayoffPlanRequest represents a payoff-plan query for an existing loan.
type LoanPayoffPlanRequest struct {
	Principal       float64 `json:"principal" binding:"gte=0"`
	AnnualRatePct   float64 `json:"annual_rate_pct" binding:"gte=0"`
	MonthsRemaining int     `json:"months_remaining" binding:"required,gte=1"`
}

// InflationItemRequest is one essential-expense line in a forecast query.
type InflationItemRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=255"`
	CurrentCost float64  `json:"current_cost" binding:"gte=0"`
	Weight      *float64 `json:"weight" binding:"omitempty,gte=0"`
}

// InflationForecastRequest represents an inflation forecast query. CPIRate
// falls back to the configured national default when omitted.
type InflationForecastRequest struct {
	Items   []InflationItemRequest `json:"items" binding:"required,min=1,dive"`
	CPIRate *float64               `json:"cpi_rate" binding:"omitempty,gte=0"`
	Years   int                    `json:"years" binding:"required,gte=1,lte=30"`
}

// LoanPreAssessment estimates loan affordability.
// @Summary     Loan pre-assessment
// @Description Estimate loan affordability with DTI and stress scenarios (educational only)
// @Tags        calculations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body LoanPreAssessmentRequest true "Assessment inputs"
// @Success     200 {object} services.LoanAssessment "Assessment result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /calc/loan-pre-assessment [post]
func (h *CalcHandler) LoanPreAssessment(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req LoanPreAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.plannerService.PreAssessLoan(req.Income, req.ExistingMonthlyDebt, req.AnnualRatePct, req.TermMonths)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LoanPayoffPlan computes the cost of finishing an existing loan.
// @Summary     Loan payoff plan
// @Description Compute required EMI, total interest, and total payment
// @Tags        calculations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body LoanPayoffPlanRequest true "Payoff inputs"
// @Success     200 {object} services.PayoffPlan "Payoff plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /calc/loan-payoff-plan [post]
func (h *CalcHandler) LoanPayoffPlan(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req LoanPayoffPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, err := h.plannerService.LoanPayoffPlan(req.Principal, req.AnnualRatePct, req.MonthsRemaining)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// InflationForecast projects costs under three CPI scenarios.
// @Summary     Inflation forecast
// @Description Project essential expenses under base, optimistic, and pessimistic CPI scenarios
// @Tags        calculations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body InflationForecastRequest true "Forecast inputs"
// @Success     200 {object} services.InflationForecast "Forecast result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /calc/inflation-forecast [post]
func (h *CalcHandler) InflationForecast(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req InflationForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cpiRate := h.cfg.DefaultCPIRate
	if req.CPIRate != nil {
		cpiRate = *req.CPIRate
	}

	items := make([]services.InflationItem, len(req.Items))
	for i, item := range req.Items {
		weight := 1.0
		if item.Weight != nil {
			weight = *item.Weight
		}
		items[i] = services.InflationItem{
			Name:        item.Name,
			CurrentCost: item.CurrentCost,
			Weight:      weight,
		}
	}

	forecast, err := h.plannerService.ForecastInflation(items, cpiRate, req.Years)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}

// Dashboard returns the single-screen financial summary.
// @Summary     Dashboard summary
// @Description Get key financial metrics aggregated from the user's records
// @Tags        calculations
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardSummary "Dashboard summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /calc/dashboard [get]
func (h *CalcHandler) Dashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
