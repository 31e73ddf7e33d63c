package workers

import (
  "fmt"
  "log"

  "github.com/nats-io/nats.go"

  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/config"
)

// Tweets invalidates the cached listing pages whenever the archive is
// written, so the API serves fresh pages after every save.
type Tweets struct {
  NatsContext *common.NatsContext
}

func NewTweets(natsContext *common.NatsContext) *Tweets {
  return &Tweets{
    NatsContext: natsContext,
  }
}

func (h *Tweets) Subscribe() error {
  h.NatsContext.Conn.Subscribe(config.NATS_TWEETS_SAVE, h.Apply)
  return nil
}

func (h *Tweets) Apply(m *nats.Msg) {
  pattern := fmt.Sprintf(config.REDIS_KEY_TWEETS_PAGES, "*")
  iterator := h.NatsContext.Rdb.Scan(h.NatsContext.Ctx, 0, pattern, 0).Iterator()
  for iterator.Next(h.NatsContext.Ctx) {
    h.NatsContext.Rdb.Del(h.NatsContext.Ctx, iterator.Val())
  }
  if err := iterator.Err(); err != nil {
    log.Println("tweets pages flush error", err)
  }
}
