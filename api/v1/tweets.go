package v1

import (
  "encoding/json"
  "errors"
  "fmt"
  "net/http"
  "strconv"

  "github.com/go-chi/chi/v5"
  "gorm.io/gorm"

  "archive.local/tweets-archive/api"
  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/models"
  "archive.local/tweets-archive/repositories"
)

type TweetsKind int

const (
  TweetsKindLatest TweetsKind = iota
  TweetsKindBest
  TweetsKindSearch
)

type TweetsHandler struct {
  ApiContext *common.ApiContext
  Repository *repositories.TweetsRepository
}

func NewTweetsRouter(apiContext *common.ApiContext) http.Handler {
  h := TweetsHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.TweetsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/{which}", h.Listings)
  return r
}

func NewTweetRouter(apiContext *common.ApiContext) http.Handler {
  h := TweetsHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.TweetsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/", h.Get)
  return r
}

func (h *TweetsHandler) Listings(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  var kind TweetsKind
  switch chi.URLParam(r, "which") {
  case "latest":
    kind = TweetsKindLatest
  case "best":
    kind = TweetsKindBest
  case "search":
    kind = TweetsKindSearch
  default:
    response.Error(http.StatusBadRequest, 1004, "listing not valid")
    return
  }

  page, _ := strconv.Atoi(r.URL.Query().Get("page"))
  if page < 0 {
    response.Error(http.StatusBadRequest, 1004, "page not valid")
    return
  }

  var tweets []*models.Tweet
  var err error
  switch kind {
  case TweetsKindLatest:
    tweets, err = h.cached(fmt.Sprintf("latest:%d", page), func() ([]*models.Tweet, error) {
      return h.Repository.Latest(page)
    })
  case TweetsKindBest:
    tweets, err = h.cached(fmt.Sprintf("best:%d", page), func() ([]*models.Tweet, error) {
      return h.Repository.Best(page)
    })
  case TweetsKindSearch:
    tweets, err = h.Repository.GetSearch(
      page,
      r.URL.Query().Get("search"),
      r.URL.Query().Get("order"),
    )
  }
  if err != nil {
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  response.Json(tweets)
}

// cached keeps latest/best pages in redis for a minute; the NATS save
// listener drops them early when new tweets land.
func (h *TweetsHandler) cached(suffix string, load func() ([]*models.Tweet, error)) ([]*models.Tweet, error) {
  redisKey := fmt.Sprintf(config.REDIS_KEY_TWEETS_PAGES, suffix)
  var tweets []*models.Tweet
  if cached, err := h.ApiContext.Rdb.Get(h.ApiContext.Ctx, redisKey).Bytes(); err == nil {
    if json.Unmarshal(cached, &tweets) == nil {
      return tweets, nil
    }
  }
  tweets, err := load()
  if err != nil {
    return nil, err
  }
  if data, err := json.Marshal(tweets); err == nil {
    h.ApiContext.Rdb.SetEX(h.ApiContext.Ctx, redisKey, data, config.TWEETS_PAGES_CACHE_TTL)
  }
  return tweets, nil
}

func (h *TweetsHandler) Get(
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

  response.Json(tweet)
}
