package nats

import (
  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/queue/nats/workers"
)

type Workers struct {
  NatsContext *common.NatsContext
}

func NewWorkers(natsContext *common.NatsContext) *Workers {
  return &Workers{
    NatsContext: natsContext,
  }
}

func (h *Workers) Subscribe() error {
  workers.NewTweets(h.NatsContext).Subscribe()
  return nil
}
