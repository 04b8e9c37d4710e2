package handler

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"halloffame-backend/internal/storage"
)

// StorageHandler 객체 저장소 PAR 발급 핸들러
type StorageHandler struct {
	s3 *storage.S3Service
}

// NewStorageHandler StorageHandler 생성
func NewStorageHandler(s3 *storage.S3Service) *StorageHandler {
	return &StorageHandler{s3: s3}
}

// UploadPARRequest 업로드 PAR 발급 요청
type UploadPARRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// IssueUploadPAR 업로드용 단기 쓰기 URL + 장기 읽기 URL 발급 (관리자 전용)
func (h *StorageHandler) IssueUploadPAR(c *fiber.Ctx) error {
	if h.s3 == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "object storage is not configured",
		})
	}

	var req UploadPARRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	req.FileName = strings.TrimSpace(req.FileName)
	if req.FileName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file_name is required",
		})
	}

	par, err := h.s3.IssueUploadPAR(c.Context(), req.FileName, req.ContentType)
	if err != nil {
		log.Printf("[Storage] Failed to issue upload PAR: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to issue upload URL",
		})
	}

	return c.JSON(fiber.Map{
		"par": par,
	})
}
