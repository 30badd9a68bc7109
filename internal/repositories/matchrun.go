package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumeshortlist/internal/models"
)

type MatchRunRepository interface {
	Create(run *models.MatchRun, documentIDs []uuid.UUID) error
	FindByID(id uuid.UUID) (*models.MatchRun, error)
	UpdateStatus(id uuid.UUID, status models.MatchRunStatus) error
	UpdateResults(id uuid.UUID, resultsJSON string) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingRuns(limit int) ([]models.MatchRun, error)
}

type matchRunRepository struct {
	db *gorm.DB
}

func NewMatchRunRepository(db *gorm.DB) MatchRunRepository {
	return &matchRunRepository{db: db}
}

// Create stores the run and its document links in one transaction so a run
// can never exist half-wired.
func (r *matchRunRepository) Create(run *models.MatchRun, documentIDs []uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}

		for i, docID := range documentIDs {
			link := models.MatchRunDocument{
				ID:         uuid.New(),
				MatchRunID: run.ID,
				DocumentID: docID,
				Position:   i,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create match run: %w", err)
	}

	return nil
}

// FindByID implements MatchRunRepository.
func (r *matchRunRepository) FindByID(id uuid.UUID) (*models.MatchRun, error) {
	var run models.MatchRun
	if err := r.db.Where("id = ?", id).First(&run).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("match run not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find match run: %w", err)
	}

	return &run, nil
}

// UpdateStatus implements MatchRunRepository.
func (r *matchRunRepository) UpdateStatus(id uuid.UUID, status models.MatchRunStatus) error {
	err := r.db.Model(&models.MatchRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}

// UpdateResults stores the serialized ranked results and marks the run
// completed.
func (r *matchRunRepository) UpdateResults(id uuid.UUID, resultsJSON string) error {
	err := r.db.Model(&models.MatchRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.StatusCompleted,
			"results_json": resultsJSON,
			"updated_at":   time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update results: %w", err)
	}

	return nil
}

// UpdateError implements MatchRunRepository.
func (r *matchRunRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	err := r.db.Model(&models.MatchRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update error: %w", err)
	}

	return nil
}

// FindPendingRuns implements MatchRunRepository.
func (r *matchRunRepository) FindPendingRuns(limit int) ([]models.MatchRun, error) {
	var runs []models.MatchRun
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending runs: %w", err)
	}

	return runs, nil
}
