package commands

import (
  "context"
  "log"

  "github.com/go-redis/redis/v8"
  "github.com/nats-io/nats.go"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/repositories"
)

type TweetsHandler struct {
  Db         *gorm.DB
  Rdb        *redis.Client
  Ctx        context.Context
  Nats       *nats.Conn
  Repository *repositories.TweetsRepository
}

func NewTweetsCommand() *cli.Command {
  var h TweetsHandler
  return &cli.Command{
    Name:  "tweets",
    Usage: "",
    Before: func(c *cli.Context) error {
      h = TweetsHandler{
        Db:   common.NewDB(),
        Rdb:  common.NewRedis(),
        Ctx:  context.Background(),
        Nats: common.NewNats(),
      }
      h.Repository = &repositories.TweetsRepository{
        Db:   h.Db,
        Nats: h.Nats,
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "fetch",
        Usage: "",
        Action: func(c *cli.Context) error {
          if err := h.Fetch(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
      {
        Name:  "check",
        Usage: "",
        Action: func(c *cli.Context) error {
          if err := h.Check(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *TweetsHandler) Fetch() error {
  log.Println("tweets fetch processing...")
  saved, err := h.Repository.FetchNew(h.Ctx, common.GetEnvString("TWITTER_SCREEN_NAME"))
  if err != nil {
    return err
  }
  log.Println("tweets fetch saved", saved)
  return nil
}

func (h *TweetsHandler) Check() error {
  log.Println("tweets check processing...")
  return h.Repository.CheckAndUpdateTweets(h.Ctx)
}
