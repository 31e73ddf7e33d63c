package v1

import (
  "fmt"
  "net/http"
  "time"

  "github.com/go-chi/chi/v5"
  "github.com/gorilla/feeds"

  "archive.local/tweets-archive/api"
  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/repositories"
)

type FeedHandler struct {
  ApiContext      *common.ApiContext
  Repository      *repositories.TweetsRepository
  UsersRepository *repositories.UsersRepository
}

func NewFeedRouter(apiContext *common.ApiContext) http.Handler {
  h := FeedHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.TweetsRepository{
    Db: h.ApiContext.Db,
  }
  h.UsersRepository = &repositories.UsersRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/latest.xml", h.Latest)
  return r
}

func (h *FeedHandler) Latest(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  name := common.GetEnvString("TWITTER_SCREEN_NAME")
  tweets, err := h.Repository.Latest(0)
  if err != nil {
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }
  user, err := h.UsersRepository.Get(name)
  if err != nil {
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  author := &feeds.Author{
    Name: fmt.Sprintf("@%s", name),
  }
  feed := &feeds.Feed{
    Title:       fmt.Sprintf("@%s Latest Tweets", name),
    Description: fmt.Sprintf("Latest tweets by @%s", user.ScreenName),
    Id:          common.GetEnvString("SITE_URL"),
    Link:        &feeds.Link{Href: common.GetEnvString("SITE_URL")},
    Copyright:   fmt.Sprintf("All rights reserved %d, @%s", time.Now().Year(), name),
    Author:      author,
  }

  for _, tweet := range tweets {
    title := tweet.Text
    if len([]rune(title)) > config.SUMMARY_LENGTH {
      title = string([]rune(title)[:config.SUMMARY_LENGTH]) + "..."
    }
    feed.Items = append(feed.Items, &feeds.Item{
      Title:       title,
      Id:          tweet.IdStr,
      Link:        &feeds.Link{Href: tweet.Url},
      Description: "A Tweet",
      Content:     tweet.Text,
      Author:      author,
      Created:     time.Unix(tweet.Created, 0),
    })
  }

  atom, err := feed.ToAtom()
  if err != nil {
    response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  w.Header().Set("Content-Type", "application/atom+xml; charset=utf-8")
  w.WriteHeader(http.StatusOK)
  w.Write([]byte(atom))
}
