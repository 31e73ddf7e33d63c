package v1

import (
  "errors"
  "net/http"

  "github.com/go-chi/chi/v5"
  "gorm.io/gorm"

  "archive.local/tweets-archive/api"
  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/repositories"
)

type UsersHandler struct {
  ApiContext *common.ApiContext
  Repository *repositories.UsersRepository
}

func NewUsersRouter(apiContext *common.ApiContext) http.Handler {
  h := UsersHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.UsersRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/", h.Get)
  return r
}

func (h *UsersHandler) Get(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  user, err := h.Repository.Get(common.GetEnvString("TWITTER_SCREEN_NAME"))
  if errors.Is(err, gorm.ErrRecordNotFound) {
    response.Error(http.StatusNotFound, 1004, "user not exists")
    return
  }
  if err != nil {
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  response.Json(user)
}
