package v1

import (
  "context"
  "log"
  "net/http"

  "github.com/go-chi/chi/v5"

  "archive.local/tweets-archive/api"
  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/repositories"
)

// CronHandler exposes the maintenance flows to a scheduler that can
// only speak HTTP. Requests missing the scheduler header are rejected
// outside of development.
type CronHandler struct {
  ApiContext *common.ApiContext
  Repository *repositories.TweetsRepository
  Users      *repositories.UsersRepository
}

func NewCronRouter(apiContext *common.ApiContext) http.Handler {
  h := CronHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.TweetsRepository{
    Db: h.ApiContext.Db,
  }
  h.Users = &repositories.UsersRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Use(h.Guard)
  r.Get("/fetch", h.Fetch)
  r.Get("/update/tweets", h.UpdateTweets)
  r.Get("/update/user", h.UpdateUser)
  return r
}

func (h *CronHandler) Guard(next http.Handler) http.Handler {
  return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    response := &api.ResponseHandler{
      Writer: w,
    }
    if r.Header.Get("X-Appengine-Cron") != "true" && common.GetEnvString("ARCHIVE_ENV") != "development" {
      response.Error(http.StatusForbidden, 1003, "scheduler only")
      return
    }
    next.ServeHTTP(w, r)
  })
}

func (h *CronHandler) Fetch(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  mutex := common.NewMutex(
    h.ApiContext.Rdb,
    h.ApiContext.Ctx,
    config.LOCKS_TWEETS_FETCH,
  )
  if !mutex.Lock(config.FETCH_JOB_TIMEOUT) {
    response.Error(http.StatusConflict, 1005, "fetch already running")
    return
  }
  defer mutex.Unlock()

  ctx, cancel := context.WithTimeout(r.Context(), config.FETCH_JOB_TIMEOUT)
  defer cancel()

  saved, err := h.Repository.FetchNew(ctx, common.GetEnvString("TWITTER_SCREEN_NAME"))
  if err != nil {
    log.Println("cron fetch error", err)
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  response.Json(map[string]interface{}{
    "saved": saved,
  })
}

func (h *CronHandler) UpdateTweets(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  mutex := common.NewMutex(
    h.ApiContext.Rdb,
    h.ApiContext.Ctx,
    config.LOCKS_TWEETS_CHECK,
  )
  if !mutex.Lock(config.CHECK_JOB_TIMEOUT) {
    response.Error(http.StatusConflict, 1005, "check already running")
    return
  }
  defer mutex.Unlock()

  ctx, cancel := context.WithTimeout(r.Context(), config.CHECK_JOB_TIMEOUT)
  defer cancel()

  if err := h.Repository.CheckAndUpdateTweets(ctx); err != nil {
    log.Println("cron check error", err)
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  response.Json(map[string]interface{}{
    "success": true,
  })
}

func (h *CronHandler) UpdateUser(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  ctx, cancel := context.WithTimeout(r.Context(), config.FETCH_JOB_TIMEOUT)
  defer cancel()

  if err := h.Users.Refresh(ctx, common.GetEnvString("TWITTER_SCREEN_NAME")); err != nil {
    log.Println("cron user update error", err)
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  response.Json(map[string]interface{}{
    "success": true,
  })
}
