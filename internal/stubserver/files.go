package stubserver

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/storefront-admin/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-admin/internal/stubserver/response"
)

const maxUploadSize = 10 << 20

// handleUploadFile godoc
// @Summary Выгрузка изображения товара
// @Tags Files
// @Accept mpfd
// @Produce json
// @Success 201 {object} map[string]string
// @Failure 400 {object} response.Error
// @Router /files/product [post]
func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handleUploadFile"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Info("failed to parse multipart form", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		log.Info("file field missing", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "Make sure that the file is an image")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		log.Error("failed to read upload", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	// серверное имя: uuid с расширением исходного файла
	name := uuid.NewString() + filepath.Ext(header.Filename)
	s.store.SaveFile(name, data)
	log.Info("file stored", slog.String("name", name), slog.Int("size", len(data)))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"image": name})
}

// handleGetFile отдаёт ранее выгруженное изображение.
func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, ok := s.store.File(name)
	if !ok {
		response.Fail(w, r, http.StatusNotFound, "File "+name+" not found")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}
