package commands

import (
  "context"
  "log"

  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/repositories"
)

type UsersHandler struct {
  Db         *gorm.DB
  Ctx        context.Context
  Repository *repositories.UsersRepository
}

func NewUsersCommand() *cli.Command {
  var h UsersHandler
  return &cli.Command{
    Name:  "users",
    Usage: "",
    Before: func(c *cli.Context) error {
      h = UsersHandler{
        Db:  common.NewDB(),
        Ctx: context.Background(),
      }
      h.Repository = &repositories.UsersRepository{
        Db: h.Db,
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "update",
        Usage: "",
        Action: func(c *cli.Context) error {
          if err := h.Update(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *UsersHandler) Update() error {
  log.Println("users update processing...")
  return h.Repository.Refresh(h.Ctx, common.GetEnvString("TWITTER_SCREEN_NAME"))
}
