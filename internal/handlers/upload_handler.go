package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumeshortlist/internal/models"
	"resumeshortlist/internal/repositories"
	"resumeshortlist/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload accepts one or more resume PDFs under the "resumes" form
// field and registers each as a document.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resumes uploaded. Please upload one or more PDF files under 'resumes'.",
		})
	}

	var responses []models.UploadResponse

	for _, file := range files {
		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("File %s too large. Max size: %d bytes", file.Filename, h.maxFileSize),
			})
		}

		filename, filePath, err := h.storageService.SaveResume(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save %s: %v", file.Filename, err),
			})
		}

		doc := models.Document{
			ID:               uuid.New(),
			Filename:         filename,
			OriginalFileName: file.Filename,
			FilePath:         filePath,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}

		if err := h.docRepo.Create(&doc); err != nil {
			// Cleanup uploaded file if database insert fails
			h.storageService.DeleteFile(filename)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save document record for %s", file.Filename),
			})
		}

		responses = append(responses, models.UploadResponse{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}
