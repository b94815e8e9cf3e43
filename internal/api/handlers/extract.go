package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/devpatel-io/inklens/internal/activity"
	"github.com/devpatel-io/inklens/internal/api/services"
	"github.com/devpatel-io/inklens/internal/config"
	"github.com/devpatel-io/inklens/internal/repositories"
	"github.com/devpatel-io/inklens/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const extractConcurrency = 4

var allowedImageExts = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

type extractResult struct {
	Image string `json:"image"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// POST /api/v1/extract
// ExtractText godoc
// @Summary Extract handwritten text from uploaded images
// @Description Runs OCR on each uploaded image. One file's failure does not abort the batch.
// @Tags Extract
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Images to process"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/extract [post]
func ExtractText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	maxUpload := config.Envs.MaxUploadBytes
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid file upload form",
		})
		return
	}

	formFiles := r.MultipartForm.File["files"]
	if len(formFiles) == 0 {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "No files provided",
		})
		return
	}

	var totalSize int64
	for _, f := range formFiles {
		totalSize += f.Size
	}
	if totalSize > maxUpload {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Total upload size exceeds the limit",
		})
		return
	}

	// Each file is processed independently so a single OCR failure never
	// aborts the rest of the batch.
	results := make([]extractResult, len(formFiles))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(extractConcurrency)

	for i, handler := range formFiles {
		g.Go(func() error {
			filename := filepath.Base(handler.Filename)
			results[i] = extractOne(ctx, userID, filename, handler)
			return nil
		})
	}
	_ = g.Wait()

	succeeded := 0
	for _, res := range results {
		if res.Error == "" {
			succeeded++
		}
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: succeeded > 0,
		Message: fmt.Sprintf("Processed %d of %d files", succeeded, len(results)),
		Data: map[string]any{
			"results": results,
		},
	})
}

func extractOne(ctx context.Context, userID uuid.UUID, filename string, handler *multipart.FileHeader) extractResult {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, allowed := allowedImageExts[ext]
	if !allowed {
		return extractResult{Image: filename, Error: "Unsupported file type"}
	}

	src, err := handler.Open()
	if err != nil {
		return extractResult{Image: filename, Error: "Could not open file"}
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return extractResult{Image: filename, Error: "Could not read file"}
	}

	ocrCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	text, err := services.OCR.ExtractText(ocrCtx, data)
	if err != nil {
		return extractResult{Image: filename, Error: "Text extraction failed"}
	}

	// Collapse runs of whitespace the OCR emits around line breaks.
	formatted := strings.Join(strings.Fields(text), " ")

	var imageKey string
	if repositories.StorageEnabled() {
		imageKey = fmt.Sprintf("%s/%s_%s", userID, uuid.NewString(), filename)
		if err := repositories.ArchiveImage(ctx, imageKey, contentType, data); err != nil {
			// Archiving is best effort, the extraction still counts.
			imageKey = ""
		}
	}

	if _, err := repositories.AppendRecord(userID, filename, formatted, imageKey); err != nil {
		return extractResult{Image: filename, Error: "Failed to save result"}
	}

	activity.Record(userID.String(), "OCR Performed", "File: "+filename)

	return extractResult{Image: filename, Text: formatted}
}
