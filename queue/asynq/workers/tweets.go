package workers

import (
  "context"
  "log"

  "github.com/hibiken/asynq"

  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/repositories"
)

type Tweets struct {
  AnsqContext *common.AnsqServerContext
  Repository  *repositories.TweetsRepository
}

func NewTweets(ansqContext *common.AnsqServerContext) *Tweets {
  h := &Tweets{
    AnsqContext: ansqContext,
  }
  h.Repository = &repositories.TweetsRepository{
    Db:   h.AnsqContext.Db,
    Nats: h.AnsqContext.Nats,
  }
  return h
}

func (h *Tweets) Fetch(ctx context.Context, t *asynq.Task) error {
  mutex := common.NewMutex(
    h.AnsqContext.Rdb,
    h.AnsqContext.Ctx,
    config.LOCKS_TWEETS_FETCH,
  )
  if !mutex.Lock(config.FETCH_JOB_TIMEOUT) {
    return nil
  }
  defer mutex.Unlock()

  ctx, cancel := context.WithTimeout(ctx, config.FETCH_JOB_TIMEOUT)
  defer cancel()

  saved, err := h.Repository.FetchNew(ctx, common.GetEnvString("TWITTER_SCREEN_NAME"))
  if err != nil {
    log.Println("tweets fetch error", err)
    return err
  }
  log.Println("tweets fetch saved", saved)

  return nil
}

func (h *Tweets) Check(ctx context.Context, t *asynq.Task) error {
  mutex := common.NewMutex(
    h.AnsqContext.Rdb,
    h.AnsqContext.Ctx,
    config.LOCKS_TWEETS_CHECK,
  )
  if !mutex.Lock(config.CHECK_JOB_TIMEOUT) {
    return nil
  }
  defer mutex.Unlock()

  ctx, cancel := context.WithTimeout(ctx, config.CHECK_JOB_TIMEOUT)
  defer cancel()

  if err := h.Repository.CheckAndUpdateTweets(ctx); err != nil {
    log.Println("tweets check error", err)
    return err
  }

  return nil
}

func (h *Tweets) Register() error {
  h.AnsqContext.Mux.HandleFunc(config.ASYNQ_JOBS_TWEETS_FETCH, h.Fetch)
  h.AnsqContext.Mux.HandleFunc(config.ASYNQ_JOBS_TWEETS_CHECK, h.Check)
  return nil
}
