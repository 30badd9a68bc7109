package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumeshortlist/internal/models"
)

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id uuid.UUID) (*models.Document, error)
	FindByIDs(ids []uuid.UUID) ([]models.Document, error)
	FindByRunID(runID uuid.UUID) ([]models.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if err := d.db.Create(&document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	if err := d.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("document not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

// FindByIDs implements DocumentRepository.
func (d *documentRepository) FindByIDs(ids []uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	if err := d.db.Where("id IN ?", ids).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}

	return docs, nil
}

// FindByRunID returns a run's documents in the order they were requested.
func (d *documentRepository) FindByRunID(runID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	err := d.db.
		Joins("JOIN match_run_documents ON match_run_documents.document_id = documents.id").
		Where("match_run_documents.match_run_id = ?", runID).
		Order("match_run_documents.position ASC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find run documents: %w", err)
	}

	return docs, nil
}
