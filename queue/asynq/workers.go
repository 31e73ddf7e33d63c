package asynq

import (
  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/queue/asynq/workers"
)

type Workers struct {
  AnsqContext *common.AnsqServerContext
}

func NewWorkers(ansqContext *common.AnsqServerContext) *Workers {
  return &Workers{
    AnsqContext: ansqContext,
  }
}

func (h *Workers) Register() error {
  workers.NewTweets(h.AnsqContext).Register()
  workers.NewUsers(h.AnsqContext).Register()
  return nil
}
