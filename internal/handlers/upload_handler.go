package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"rolereader/resume-matcher/internal/models"
	"rolereader/resume-matcher/internal/services"
)

type UploadHandler struct {
	storageService    services.StorageService
	parserService     services.DocumentParserService
	comparisonService services.ComparisonService
}

func NewUploadHandler(
	storageService services.StorageService,
	parserService services.DocumentParserService,
	comparisonService services.ComparisonService,
) *UploadHandler {
	return &UploadHandler{
		storageService:    storageService,
		parserService:     parserService,
		comparisonService: comparisonService,
	}
}

// HandleUpload handles POST /api/compare/upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return badRequest(c, "A resume file is required (field 'resume')")
	}

	filename, filePath, err := h.storageService.SaveFile(resumeFile, "resume")
	if err != nil {
		return writeError(c, err)
	}
	defer func() {
		if err := h.storageService.DeleteFile(filename); err != nil {
			log.Printf("⚠️  Failed to remove upload %s: %v\n", filename, err)
		}
	}()

	resumeText, err := h.parserService.ExtractText(filePath)
	if err != nil {
		return badRequest(c, "Could not extract text from resume file: "+err.Error())
	}

	resp, err := h.comparisonService.Compare(c.UserContext(), models.ComparisonRequest{
		ResumeText:     resumeText,
		JobDescription: c.FormValue("job_description"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
