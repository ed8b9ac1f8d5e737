package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "peakfinance/internal/errors"
	"peakfinance/internal/models"
	"peakfinance/internal/pagination"
)

// goalService handles savings-goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new savings goal.
func (s *goalService) CreateGoal(userID uint, name string, targetAmount, savedAmount float64, targetDate *time.Time, priority int) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if targetAmount < 0 || savedAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amounts cannot be negative")
	}
	if priority < 1 {
		priority = 1
	}

	goal := &models.Goal{
		UserID:       userID,
		Name:         name,
		TargetAmount: targetAmount,
		SavedAmount:  savedAmount,
		TargetDate:   targetDate,
		Priority:     priority,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals returns a paginated list of the user's goals ordered by priority.
func (s *goalService) GetUserGoals(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Order("priority DESC, created_at ASC").Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal by ID if it belongs to the user.
func (s *goalService) GetGoalByID(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal updates an existing goal's fields.
func (s *goalService) UpdateGoal(userID, goalID uint, name string, targetAmount, savedAmount *float64, targetDate *time.Time, priority *int) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if targetAmount != nil {
		if *targetAmount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount cannot be negative")
		}
		updates["target_amount"] = *targetAmount
	}
	if savedAmount != nil {
		if *savedAmount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "saved amount cannot be negative")
		}
		updates["saved_amount"] = *savedAmount
	}
	if targetDate != nil {
		updates["target_date"] = targetDate
	}
	if priority != nil {
		if *priority < 1 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "priority must be at least 1")
		}
		updates["priority"] = *priority
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return goal, nil
}

// DeleteGoal soft-deletes a goal.
func (s *goalService) DeleteGoal(userID, goalID uint) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return nil
}
