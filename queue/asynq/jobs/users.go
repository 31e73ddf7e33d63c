package jobs

import (
  "github.com/hibiken/asynq"

  "archive.local/tweets-archive/config"
)

type Users struct{}

func (h *Users) Update() (*asynq.Task, error) {
  return asynq.NewTask(config.ASYNQ_JOBS_USERS_UPDATE, nil), nil
}
