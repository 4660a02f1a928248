package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/http/middleware"
	"github.com/ignatzorin/hvacsite/internal/http/response"
	"github.com/ignatzorin/hvacsite/internal/pkg/apperror"
	"github.com/ignatzorin/hvacsite/internal/validation"
)

// sniffSize сколько байт читаем для определения типа. docx распознаётся по содержимому zip.
const sniffSize = 8 << 10

// Разрешённые форматы резюме по реальному содержимому файла.
var resumeTypes = map[string]bool{
	"pdf":  true,
	"doc":  true,
	"docx": true,
}

type ApplicationSubmitter interface {
	Submit(ctx context.Context, req dto.ApplicationRequest, resume *dto.FileUpload) (*dto.JobApplication, error)
}

// ApplicationHandler принимает отклики на вакансии с резюме.
type ApplicationHandler struct {
	applications  ApplicationSubmitter
	maxUploadSize int64
}

func NewApplicationHandler(applications ApplicationSubmitter, maxUploadMB int64) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, maxUploadSize: maxUploadMB << 20}
}

// Submit обрабатывает POST /api/applications (multipart/form-data, файл в поле resume).
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dto.ApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationFailed(c, []string{"Request body must be multipart form data"})
		return
	}

	errs := validation.ValidateApplication(req)

	header, err := c.FormFile("resume")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		errs = append(errs, "resume could not be read")
	}
	if header != nil && header.Size > h.maxUploadSize {
		errs = append(errs, fmt.Sprintf("resume must be at most %d MB", h.maxUploadSize>>20))
	}
	if len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	var resume *dto.FileUpload
	if header != nil {
		file, err := header.Open()
		if err != nil {
			middleware.LogRequestError(c, err)
			response.Error(c, apperror.Upload(err), "Failed to submit application")
			return
		}
		defer file.Close()

		resume, err = sniffResume(header, file)
		if err != nil {
			response.ValidationFailed(c, []string{err.Error()})
			return
		}
	}

	app, err := h.applications.Submit(c.Request.Context(), req, resume)
	if err != nil {
		middleware.LogRequestError(c, err)
		response.Error(c, err, "Failed to submit application")
		return
	}

	response.Submitted(c, "Application submitted successfully", app)
}

// sniffResume определяет тип файла по магическим байтам и возвращает поток,
// начинающийся с уже прочитанного заголовка.
func sniffResume(header *multipart.FileHeader, file multipart.File) (*dto.FileUpload, error) {
	head := make([]byte, sniffSize)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, errors.New("resume could not be read")
	}
	head = head[:n]
	if n == 0 {
		return nil, errors.New("resume must not be empty")
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown || !resumeTypes[kind.Extension] {
		return nil, errors.New("resume must be a PDF, DOC or DOCX file")
	}

	return &dto.FileUpload{
		Filename:    header.Filename,
		ContentType: kind.MIME.Value,
		Size:        header.Size,
		Body:        io.MultiReader(bytes.NewReader(head), file),
	}, nil
}
