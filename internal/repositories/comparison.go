package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rolereader/resume-matcher/internal/models"
)

var ErrComparisonNotFound = errors.New("comparison not found")

type ComparisonRepository interface {
	Create(ctx context.Context, comparison *models.Comparison) error
	FindByID(ctx context.Context, id uint) (*models.Comparison, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Comparison, error)
	List(ctx context.Context, limit, offset int) ([]models.Comparison, error)
	Delete(ctx context.Context, id uint) error
	MarkIndexed(ctx context.Context, id uint, at time.Time) error
	FindUnindexed(ctx context.Context, limit int) ([]models.Comparison, error)
	FindAfterID(ctx context.Context, afterID uint, limit int) ([]models.Comparison, error)
}

type comparisonRepository struct {
	db *gorm.DB
}

func NewComparisonRepository(db *gorm.DB) ComparisonRepository {
	return &comparisonRepository{db: db}
}

func (r *comparisonRepository) Create(ctx context.Context, comparison *models.Comparison) error {
	if err := r.db.WithContext(ctx).Create(comparison).Error; err != nil {
		return fmt.Errorf("failed to create comparison: %w", err)
	}
	return nil
}

func (r *comparisonRepository) FindByID(ctx context.Context, id uint) (*models.Comparison, error) {
	var comparison models.Comparison
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comparison).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComparisonNotFound
		}
		return nil, fmt.Errorf("failed to find comparison: %w", err)
	}
	return &comparison, nil
}

// FindByIDs keeps no particular order; callers reorder as needed.
func (r *comparisonRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Comparison, error) {
	var comparisons []models.Comparison
	if len(ids) == 0 {
		return comparisons, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&comparisons).Error; err != nil {
		return nil, fmt.Errorf("failed to find comparisons: %w", err)
	}
	return comparisons, nil
}

func (r *comparisonRepository) List(ctx context.Context, limit, offset int) ([]models.Comparison, error) {
	var comparisons []models.Comparison
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&comparisons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}
	return comparisons, nil
}

func (r *comparisonRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Comparison{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comparison: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrComparisonNotFound
	}
	return nil
}

func (r *comparisonRepository) MarkIndexed(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Comparison{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"indexed_at": at,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark comparison indexed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrComparisonNotFound
	}
	return nil
}

func (r *comparisonRepository) FindUnindexed(ctx context.Context, limit int) ([]models.Comparison, error) {
	var comparisons []models.Comparison
	err := r.db.WithContext(ctx).
		Where("indexed_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&comparisons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed comparisons: %w", err)
	}
	return comparisons, nil
}

func (r *comparisonRepository) FindAfterID(ctx context.Context, afterID uint, limit int) ([]models.Comparison, error) {
	var comparisons []models.Comparison
	err := r.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&comparisons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to page comparisons: %w", err)
	}
	return comparisons, nil
}
