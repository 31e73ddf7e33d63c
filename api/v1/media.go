package v1

import (
  "errors"
  "io"
  "net/http"

  "github.com/go-chi/chi/v5"

  "archive.local/tweets-archive/api"
  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/repositories"
)

type MediaHandler struct {
  ApiContext *common.ApiContext
  Repository *repositories.StorageRepository
}

func NewMediaRouter(apiContext *common.ApiContext) http.Handler {
  h := MediaHandler{
    ApiContext: apiContext,
  }
  h.Repository = repositories.NewStorageRepository(apiContext.Ctx)

  r := chi.NewRouter()
  r.Get("/", h.Get)
  return r
}

func (h *MediaHandler) Get(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  file := r.URL.Query().Get("file")
  if file == "" {
    response.Error(http.StatusBadRequest, 1004, "file is empty")
    return
  }

  body, contentType, err := h.Repository.Get(r.Context(), file)
  if errors.Is(err, repositories.ErrFileNotFound) {
    response.Error(http.StatusNotFound, 1004, "file not exists")
    return
  }
  if err != nil {
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }
  defer body.Close()

  if contentType != "" {
    w.Header().Set("Content-Type", contentType)
  }
  w.WriteHeader(http.StatusOK)
  io.Copy(w, body)
}
