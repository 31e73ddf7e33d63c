package commands

import (
  "context"
  "fmt"
  "log"
  "net/http"
  "os"

  "github.com/go-chi/chi/v5"
  "github.com/go-redis/redis/v8"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "archive.local/tweets-archive/api/v1"
  "archive.local/tweets-archive/common"
)

type ApiHandler struct {
  Db  *gorm.DB
  Rdb *redis.Client
  Ctx context.Context
}

func NewApiCommand() *cli.Command {
  var h ApiHandler
  return &cli.Command{
    Name:  "api",
    Usage: "",
    Before: func(c *cli.Context) error {
      h = ApiHandler{
        Db:  common.NewDB(),
        Rdb: common.NewRedis(),
        Ctx: context.Background(),
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      if err := h.Run(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *ApiHandler) Run() error {
  log.Println("api running...")

  apiContext := &common.ApiContext{
    Db:  h.Db,
    Rdb: h.Rdb,
    Ctx: h.Ctx,
  }

  r := chi.NewRouter()
  r.Route("/v1", func(r chi.Router) {
    r.Mount("/tweets", v1.NewTweetsRouter(apiContext))
    r.Mount("/tweet", v1.NewTweetRouter(apiContext))
    r.Mount("/user", v1.NewUsersRouter(apiContext))
    r.Mount("/media", v1.NewMediaRouter(apiContext))
    r.Mount("/feed", v1.NewFeedRouter(apiContext))
    r.Mount("/login", v1.NewLoginRouter(apiContext))
    r.Mount("/admin", v1.NewAdminRouter(apiContext))
    r.Mount("/cron", v1.NewCronRouter(apiContext))
  })

  err := http.ListenAndServe(
    fmt.Sprintf("127.0.0.1:%v", os.Getenv("ARCHIVE_API_PORT")),
    r,
  )
  if err != nil {
    return err
  }

  return nil
}
