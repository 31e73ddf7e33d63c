package repositories

import (
  "context"
  "fmt"
  "net/http"
  "net/http/httptest"
  "testing"
  "time"

  "github.com/tidwall/gjson"
)

func TestGetNewTweetsPagination(t *testing.T) {
  var requests []map[string]string
  ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    params := map[string]string{
      "since_id": r.URL.Query().Get("since_id"),
      "max_id":   r.URL.Query().Get("max_id"),
    }
    requests = append(requests, params)

    w.Header().Set("Content-Type", "application/json")
    if len(requests) == 1 {
      fmt.Fprint(w, `[
        {"id_str":"300","id":300,"full_text":"third","favorite_count":1,"retweet_count":0,"created_at":"Mon Sep 01 10:00:00 +0000 2025"},
        {"id_str":"200","id":200,"full_text":"second","favorite_count":2,"retweet_count":1,"created_at":"Mon Sep 01 09:00:00 +0000 2025"}
      ]`)
      return
    }
    fmt.Fprint(w, `[]`)
  }))
  defer ts.Close()

  r := &TwitterRepository{ApiUrl: ts.URL}
  tweets, err := r.GetNewTweets(context.Background(), "someone", "100")
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(tweets) != 2 {
    t.Fatalf("expected 2 tweets, got %d", len(tweets))
  }
  if len(requests) != 2 {
    t.Fatalf("expected 2 requests, got %d", len(requests))
  }
  if requests[0]["since_id"] != "100" || requests[0]["max_id"] != "" {
    t.Fatalf("unexpected first request params: %+v", requests[0])
  }
  if requests[1]["since_id"] != "100" || requests[1]["max_id"] != "199" {
    t.Fatalf("unexpected second request params: %+v", requests[1])
  }
}

func TestGetNewTweetsEmptyTimeline(t *testing.T) {
  ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    fmt.Fprint(w, `[]`)
  }))
  defer ts.Close()

  r := &TwitterRepository{ApiUrl: ts.URL}
  tweets, err := r.GetNewTweets(context.Background(), "someone", "")
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(tweets) != 0 {
    t.Fatalf("expected no tweets, got %d", len(tweets))
  }
}

func TestNormalizeTweet(t *testing.T) {
  r := &TwitterRepository{}
  s := gjson.Parse(`{
    "id_str": "1234567890123456789",
    "id": 1234567890123456789,
    "full_text": "hello world",
    "favorite_count": 10,
    "retweet_count": 4,
    "created_at": "Wed Aug 27 13:08:45 +0000 2008",
    "entities": {
      "media": [
        {"id_str":"m1","type":"photo","url":"https://t.co/abc","expanded_url":"https://x/1","media_url_https":"https://pbs/one.jpg"},
        {"id_str":"m2","type":"photo","url":"https://t.co/def","expanded_url":"https://x/2","media_url_https":"https://pbs/two.png"}
      ]
    }
  }`)

  tweet := r.NormalizeTweet(s, "someone")
  if tweet.IdStr != "1234567890123456789" || tweet.Id != 1234567890123456789 {
    t.Fatalf("unexpected ids: %v %v", tweet.IdStr, tweet.Id)
  }
  if tweet.Text != "hello world" {
    t.Fatalf("unexpected text: %v", tweet.Text)
  }
  if tweet.Faves != 10 || tweet.Rts != 4 || tweet.Ratio != 0.4 {
    t.Fatalf("unexpected counts: %+v", tweet)
  }
  if tweet.Url != "https://twitter.com/someone/status/1234567890123456789" {
    t.Fatalf("unexpected url: %v", tweet.Url)
  }
  created := time.Unix(tweet.Created, 0).UTC()
  if created.Year() != 2008 || created.Month() != time.August || created.Day() != 27 {
    t.Fatalf("unexpected created time: %v", created)
  }
  if len(tweet.Media) != 2 {
    t.Fatalf("expected 2 media, got %d", len(tweet.Media))
  }
  if tweet.Media[0].UploadFileName != "status/1234567890123456789/photo/1.jpg" {
    t.Fatalf("unexpected upload filename: %v", tweet.Media[0].UploadFileName)
  }
  if tweet.Media[1].UploadFileName != "status/1234567890123456789/photo/2.png" {
    t.Fatalf("unexpected upload filename: %v", tweet.Media[1].UploadFileName)
  }
}

func TestNormalizeUser(t *testing.T) {
  r := &TwitterRepository{}
  u := gjson.Parse(`{
    "id_str": "42",
    "id": 42,
    "screen_name": "someone",
    "name": "Someone",
    "description": "find me at https://t.co/xyz",
    "followers_count": 100,
    "friends_count": 50,
    "statuses_count": 2000,
    "location": "nowhere",
    "verified": true,
    "created_at": "Wed Aug 27 13:08:45 +0000 2008",
    "profile_image_url_https": "https://pbs/profile_images/987/me_normal.jpg",
    "entities": {
      "description": {
        "urls": [{"url":"https://t.co/xyz","expanded_url":"https://example.com"}]
      }
    }
  }`)

  user := r.NormalizeUser(u, "someone")
  if user.ScreenName != "someone" || user.Followers != 100 || user.Following != 50 {
    t.Fatalf("unexpected user: %+v", user)
  }
  if user.Description != "find me at https://example.com" {
    t.Fatalf("expected expanded description link, got %v", user.Description)
  }
  avatar := user.Media.Data()
  if avatar.UploadFileName != "user/42/avatar-987.jpg" {
    t.Fatalf("unexpected avatar filename: %v", avatar.UploadFileName)
  }
}

func TestGetUserNotFound(t *testing.T) {
  ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    fmt.Fprint(w, `[]`)
  }))
  defer ts.Close()

  r := &TwitterRepository{ApiUrl: ts.URL}
  if _, err := r.GetUser(context.Background(), "nobody"); err != ErrUserNotFound {
    t.Fatalf("expected ErrUserNotFound, got %v", err)
  }
}

func TestReplaceLinks(t *testing.T) {
  r := &TwitterRepository{}
  entities := gjson.Parse(`{
    "urls": [{"url":"https://t.co/abc","expanded_url":"https://example.com/page"}]
  }`)

  got := r.ReplaceLinks("read https://t.co/abc now", entities)
  if got != "read https://example.com/page now" {
    t.Fatalf("unexpected replacement: %v", got)
  }
  if got := r.ReplaceLinks("", entities); got != "" {
    t.Fatalf("expected empty result, got %v", got)
  }
}

func TestRequestRetriesServerErrors(t *testing.T) {
  attempts := 0
  ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    attempts++
    if attempts < 3 {
      w.WriteHeader(http.StatusTooManyRequests)
      return
    }
    fmt.Fprint(w, `[]`)
  }))
  defer ts.Close()

  r := &TwitterRepository{ApiUrl: ts.URL, Backoff: time.Millisecond}
  if _, err := r.GetTweets(context.Background(), []string{"1"}); err != nil {
    t.Fatalf("expected retries to succeed, got %v", err)
  }
  if attempts != 3 {
    t.Fatalf("expected 3 attempts, got %d", attempts)
  }
}

func TestRequestGivesUpOnClientErrors(t *testing.T) {
  attempts := 0
  ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    attempts++
    w.WriteHeader(http.StatusNotFound)
  }))
  defer ts.Close()

  r := &TwitterRepository{ApiUrl: ts.URL, Backoff: time.Millisecond}
  if _, err := r.GetTweets(context.Background(), []string{"1"}); err == nil {
    t.Fatal("expected an error")
  }
  if attempts != 1 {
    t.Fatalf("expected no retry on 404, got %d attempts", attempts)
  }
}
