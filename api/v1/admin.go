package v1

import (
  "encoding/csv"
  "errors"
  "fmt"
  "net/http"
  "strconv"
  "strings"

  "github.com/go-chi/chi/v5"
  "gorm.io/gorm"

  "archive.local/tweets-archive/api"
  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/models"
  "archive.local/tweets-archive/repositories"
  jwtRepositories "archive.local/tweets-archive/repositories/jwt"
)

type AdminHandler struct {
  ApiContext       *common.ApiContext
  Repository       *repositories.TweetsRepository
  AdminsRepository *repositories.AdminsRepository
  TokenRepository  *jwtRepositories.TokenRepository
}

func NewAdminRouter(apiContext *common.ApiContext) http.Handler {
  h := AdminHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.TweetsRepository{
    Db: h.ApiContext.Db,
  }
  h.AdminsRepository = &repositories.AdminsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Use(h.Authenticate)
  r.Get("/delete", h.Delete)
  r.Get("/archive/export", h.Export)
  return r
}

func (h *AdminHandler) Token() *jwtRepositories.TokenRepository {
  if h.TokenRepository == nil {
    h.TokenRepository = &jwtRepositories.TokenRepository{}
  }
  return h.TokenRepository
}

func (h *AdminHandler) Authenticate(next http.Handler) http.Handler {
  return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    response := &api.ResponseHandler{
      Writer: w,
    }
    token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
    if token == "" {
      response.Error(http.StatusUnauthorized, 1001, "token is empty")
      return
    }
    uid, err := h.Token().Uid(token)
    if err != nil {
      response.Error(http.StatusUnauthorized, 1001, "token not valid")
      return
    }
    if _, err := h.AdminsRepository.Find(uid); err != nil {
      response.Error(http.StatusUnauthorized, 1001, "admin not exists")
      return
    }
    next.ServeHTTP(w, r)
  })
}

// Delete toggles the Deleted flag, the one manual override of the
// reconciliation state machine.
func (h *AdminHandler) Delete(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  if r.URL.Query().Get("id") == "" {
    response.Error(http.StatusBadRequest, 1004, "id is empty")
    return
  }

  tweet, err := h.Repository.Get(r.URL.Query().Get("id"))
  if errors.Is(err, gorm.ErrRecordNotFound) {
    response.Error(http.StatusNotFound, 1004, "tweet not exists")
    return
  }
  if err != nil {
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  tweet.Deleted = !tweet.Deleted
  if err := h.Repository.Save([]*models.Tweet{tweet}); err != nil {
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  response.Json(map[string]interface{}{
    "deleted": tweet.Deleted,
  })
}

func (h *AdminHandler) Export(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  tweets, err := h.Repository.All(true)
  if err != nil {
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  name := common.GetEnvString("TWITTER_SCREEN_NAME")
  w.Header().Set("Content-Type", "text/csv; charset=utf-8")
  w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"-archive.csv"))
  w.WriteHeader(http.StatusOK)

  writer := csv.NewWriter(w)
  writer.Write([]string{"IdStr", "Id", "Text", "Created", "Updated", "Faves", "Rts", "Ratio", "Deleted", "Url"})
  for _, tweet := range tweets {
    writer.Write([]string{
      tweet.IdStr,
      strconv.FormatInt(tweet.Id, 10),
      tweet.Text,
      strconv.FormatInt(tweet.Created, 10),
      strconv.FormatInt(tweet.Updated, 10),
      strconv.Itoa(tweet.Faves),
      strconv.Itoa(tweet.Rts),
      strconv.FormatFloat(tweet.Ratio, 'f', -1, 64),
      strconv.FormatBool(tweet.Deleted),
      tweet.Url,
    })
  }
  writer.Flush()
}
