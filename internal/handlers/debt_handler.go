package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "peakfinance/internal/errors"
	"peakfinance/internal/pagination"
	"peakfinance/internal/services"
)

// DebtHandler handles debt-account requests.
type DebtHandler struct {
	debtService services.DebtServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// CreateDebtRequest represents the request payload for creating a debt account.
type CreateDebtRequest struct {
	Name          string    `json:"name" binding:"required,min=1,max=255"`
	Principal     float64   `json:"principal" binding:"gte=0"`
	AnnualRatePct float64   `json:"annual_rate_pct" binding:"gte=0"`
	TermMonths    int       `json:"term_months" binding:"required,gte=1"`
	CurrentEMI    float64   `json:"current_emi" binding:"gte=0"`
	StartDate     time.Time `json:"start_date"`
}

// UpdateDebtRequest represents the request payload for updating a debt account.
type UpdateDebtRequest struct {
	Name          string   `json:"name" binding:"omitempty,min=1,max=255"`
	Principal     *float64 `json:"principal" binding:"omitempty,gte=0"`
	AnnualRatePct *float64 `json:"annual_rate_pct" binding:"omitempty,gte=0"`
	TermMonths    *int     `json:"term_months" binding:"omitempty,gte=1"`
	CurrentEMI    *float64 `json:"current_emi" binding:"omitempty,gte=0"`
}

// CreateDebt handles the creation of a new debt account.
// @Summary     Create a debt account
// @Description Register a loan the user is servicing
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDebtRequest true "Debt details"
// @Success     201 {object} models.DebtAccount "Debt created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /debts [post]
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.CreateDebt(userID, req.Name, req.Principal, req.AnnualRatePct, req.TermMonths, req.CurrentEMI, req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"debt": debt})
}

// GetDebts handles listing debt accounts for the authenticated user.
// @Summary     Get debts
// @Description Get a paginated list of debt accounts
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.DebtAccount] "Paginated debts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /debts [get]
func (h *DebtHandler) GetDebts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.debtService.GetUserDebts(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDebt handles retrieving a single debt account.
// @Summary     Get a debt account
// @Description Get a single debt account by ID
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Debt ID"
// @Success     200 {object} models.DebtAccount "Debt account"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [get]
func (h *DebtHandler) GetDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	debt, err := h.debtService.GetDebtByID(userID, debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// UpdateDebt handles updating a debt account.
// @Summary     Update a debt account
// @Description Update an existing debt account's fields
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int               true "Debt ID"
// @Param       request body UpdateDebtRequest true "Fields to update"
// @Success     200 {object} models.DebtAccount "Updated debt"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [put]
func (h *DebtHandler) UpdateDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.UpdateDebt(userID, debtID, req.Name, req.Principal, req.AnnualRatePct, req.TermMonths, req.CurrentEMI)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// DeleteDebt handles deleting a debt account.
// @Summary     Delete a debt account
// @Description Delete a debt account by ID
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Debt ID"
// @Success     204 "Debt deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [delete]
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.debtService.DeleteDebt(userID, debtID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
