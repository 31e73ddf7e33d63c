package workers

import (
  "context"
  "log"

  "github.com/hibiken/asynq"

  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/repositories"
)

type Users struct {
  AnsqContext *common.AnsqServerContext
  Repository  *repositories.UsersRepository
}

func NewUsers(ansqContext *common.AnsqServerContext) *Users {
  h := &Users{
    AnsqContext: ansqContext,
  }
  h.Repository = &repositories.UsersRepository{
    Db: h.AnsqContext.Db,
  }
  return h
}

func (h *Users) Update(ctx context.Context, t *asynq.Task) error {
  mutex := common.NewMutex(
    h.AnsqContext.Rdb,
    h.AnsqContext.Ctx,
    config.LOCKS_USERS_UPDATE,
  )
  if !mutex.Lock(config.FETCH_JOB_TIMEOUT) {
    return nil
  }
  defer mutex.Unlock()

  ctx, cancel := context.WithTimeout(ctx, config.FETCH_JOB_TIMEOUT)
  defer cancel()

  if err := h.Repository.Refresh(ctx, common.GetEnvString("TWITTER_SCREEN_NAME")); err != nil {
    log.Println("users update error", err)
    return err
  }

  return nil
}

func (h *Users) Register() error {
  h.AnsqContext.Mux.HandleFunc(config.ASYNQ_JOBS_USERS_UPDATE, h.Update)
  return nil
}
