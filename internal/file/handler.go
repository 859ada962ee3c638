package file

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/spf13/afero"
)

const (
	// multipartOverhead is the slack allowed on top of the file for form fields and boundaries.
	multipartOverhead = 1 << 20
	multipartMemory   = 32 << 20
)

type ServiceAPI interface {
	List(ctx context.Context, userID int64, filter ListFilter) ([]*File, error)
	Stats(ctx context.Context, userID int64) (*Stats, error)
	Upload(ctx context.Context, dto UploadDTO) (int64, error)
	Download(ctx context.Context, userID, id int64) (*File, afero.File, error)
	Update(ctx context.Context, userID, id int64, dto UpdateFileDTO) error
	Delete(ctx context.Context, userID, id int64) error
	MaxUploadSize() int64
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetFiles handles GET /files/{id}?search=&category=
func (h *Handler) GetFiles(w http.ResponseWriter, r *http.Request) {
	userID, err := h.ownerFromPath(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	query := r.URL.Query()
	files, err := h.Service.List(r.Context(), userID, ListFilter{
		Search:   query.Get("search"),
		Category: query.Get("category"),
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"files": files})
}

func (h *Handler) GetFileStats(w http.ResponseWriter, r *http.Request) {
	userID, err := h.ownerFromPath(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	stats, err := h.Service.Stats(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"stats": stats})
}

// UploadFile handles the multipart POST /files/upload with fields file, userId,
// fileCategory, description and tags.
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	limit := h.Service.MaxUploadSize()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isBodyTooLarge(err) {
			h.HandleServiceError(w, errTooLarge(limit))
			return
		}
		h.HandleServiceError(w, internal.NewValidationError("Invalid multipart form: "+err.Error(), internal.ErrCodeInvalidRequest))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	userID, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue("userId")), 10, 64)
	if userID != 0 {
		if err := h.RequireOwner(r, userID); err != nil {
			h.HandleServiceError(w, err)
			return
		}
	}

	dto := UploadDTO{
		UserID:       userID,
		FileCategory: r.FormValue("fileCategory"),
		Description:  formPtr(r, "description"),
		Tags:         formPtr(r, "tags"),
	}

	part, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		h.HandleServiceError(w, internal.NewValidationError("Invalid file part: "+err.Error(), internal.ErrCodeInvalidRequest))
		return
	default:
		defer part.Close()
		dto.Content = part
		dto.OriginalName = header.Filename
		dto.DeclaredType = header.Header.Get("Content-Type")
		dto.Size = header.Size
	}

	id, err := h.Service.Upload(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Log(r).Info("UploadFile: stored", "file_id", id, "size", dto.Size)
	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "File uploaded successfully",
		"fileId":  id,
	})
}

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	f, blob, err := h.Service.Download(r.Context(), internal.UserIDFromContext(r.Context()), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	defer blob.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": f.OriginalFileName})
	if disposition == "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Type", f.FileType)
	http.ServeContent(w, r, f.OriginalFileName, f.UpdatedDate, blob)
}

func (h *Handler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateFileDTO
	if err := h.DecodeOptionalJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Update(r.Context(), internal.UserIDFromContext(r.Context()), id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"message": "File updated successfully"})
}

func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), internal.UserIDFromContext(r.Context()), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"message": "File deleted successfully"})
}

func (h *Handler) ownerFromPath(r *http.Request) (int64, error) {
	userID, err := h.PathID(r, "id")
	if err != nil {
		return 0, err
	}
	if err := h.RequireOwner(r, userID); err != nil {
		return 0, err
	}
	return userID, nil
}

func formPtr(r *http.Request, key string) *string {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
