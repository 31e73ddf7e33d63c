package jobs

import (
  "github.com/hibiken/asynq"

  "archive.local/tweets-archive/config"
)

type Tweets struct{}

func (h *Tweets) Fetch() (*asynq.Task, error) {
  return asynq.NewTask(config.ASYNQ_JOBS_TWEETS_FETCH, nil), nil
}

func (h *Tweets) Check() (*asynq.Task, error) {
  return asynq.NewTask(config.ASYNQ_JOBS_TWEETS_CHECK, nil), nil
}
