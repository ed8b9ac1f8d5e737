package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "peakfinance/internal/errors"
	"peakfinance/internal/models"
	"peakfinance/internal/pagination"
)

// debtService handles debt-account business logic.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// CreateDebt creates a new debt account.
func (s *debtService) CreateDebt(userID uint, name string, principal, annualRatePct float64, termMonths int, currentEMI float64, startDate time.Time) (*models.DebtAccount, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "debt name is required")
	}
	if principal < 0 || annualRatePct < 0 || currentEMI < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amounts cannot be negative")
	}
	if termMonths < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "term must be at least 1 month")
	}

	if startDate.IsZero() {
		startDate = time.Now()
	}

	debt := &models.DebtAccount{
		UserID:        userID,
		Name:          name,
		Principal:     principal,
		AnnualRatePct: annualRatePct,
		TermMonths:    termMonths,
		CurrentEMI:    currentEMI,
		StartDate:     startDate,
	}

	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// GetUserDebts returns a paginated list of the user's debt accounts.
func (s *debtService) GetUserDebts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.DebtAccount], error) {
	page.Defaults()

	base := s.db.Model(&models.DebtAccount{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var debts []models.DebtAccount
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(debts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDebtByID returns a debt account by ID if it belongs to the user.
func (s *debtService) GetDebtByID(userID, debtID uint) (*models.DebtAccount, error) {
	var debt models.DebtAccount
	if err := s.db.Where("id = ? AND user_id = ?", debtID, userID).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// UpdateDebt updates an existing debt account's fields.
func (s *debtService) UpdateDebt(userID, debtID uint, name string, principal, annualRatePct *float64, termMonths *int, currentEMI *float64) (*models.DebtAccount, error) {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if principal != nil {
		if *principal < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "principal cannot be negative")
		}
		updates["principal"] = *principal
	}
	if annualRatePct != nil {
		if *annualRatePct < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "annual rate cannot be negative")
		}
		updates["annual_rate_pct"] = *annualRatePct
	}
	if termMonths != nil {
		if *termMonths < 1 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "term must be at least 1 month")
		}
		updates["term_months"] = *termMonths
	}
	if currentEMI != nil {
		if *currentEMI < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "EMI cannot be negative")
		}
		updates["current_emi"] = *currentEMI
	}

	if len(updates) > 0 {
		if err := s.db.Model(debt).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return debt, nil
}

// DeleteDebt soft-deletes a debt account.
func (s *debtService) DeleteDebt(userID, debtID uint) error {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(debt).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return nil
}
