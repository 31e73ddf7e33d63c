package v1

import (
  "net/http"

  "github.com/go-chi/chi/v5"

  "archive.local/tweets-archive/api"
  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/repositories"
  jwtRepositories "archive.local/tweets-archive/repositories/jwt"
)

type LoginHandler struct {
  ApiContext       *common.ApiContext
  AdminsRepository *repositories.AdminsRepository
  TokenRepository  *jwtRepositories.TokenRepository
}

type Token struct {
  AccessToken  string `json:"access_token"`
  RefreshToken string `json:"refresh_token"`
}

func NewLoginRouter(apiContext *common.ApiContext) http.Handler {
  h := LoginHandler{
    ApiContext: apiContext,
  }
  h.AdminsRepository = &repositories.AdminsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Post("/", h.Do)

  return r
}

func (h *LoginHandler) Token() *jwtRepositories.TokenRepository {
  if h.TokenRepository == nil {
    h.TokenRepository = &jwtRepositories.TokenRepository{}
  }
  return h.TokenRepository
}

func (h *LoginHandler) Do(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  r.ParseMultipartForm(1024)

  if r.Form.Get("account") == "" {
    response.Error(http.StatusForbidden, 1004, "account is empty")
    return
  }

  if r.Form.Get("password") == "" {
    response.Error(http.StatusForbidden, 1004, "password is empty")
    return
  }

  account := r.Form.Get("account")
  password := r.Form.Get("password")

  admin := h.AdminsRepository.Get(account)
  if admin == nil {
    response.Error(http.StatusForbidden, 1000, "account not exists")
    return
  }
  if !common.VerifyPassword(password, admin.Salt, admin.Password) {
    response.Error(http.StatusForbidden, 1000, "password is wrong")
    return
  }

  accessToken, err := h.Token().AccessToken(admin.ID)
  if err != nil {
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }
  refreshToken, err := h.Token().RefreshToken(admin.ID)
  if err != nil {
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  token := &Token{
    AccessToken:  accessToken,
    RefreshToken: refreshToken,
  }

  response.Json(token)
}
