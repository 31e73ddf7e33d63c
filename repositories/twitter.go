package repositories

import (
  "context"
  "errors"
  "fmt"
  "io"
  "net"
  "net/http"
  "net/url"
  "path"
  "regexp"
  "strconv"
  "strings"
  "time"

  "github.com/tidwall/gjson"
  "golang.org/x/time/rate"
  "gorm.io/datatypes"

  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/models"
)

var ErrUserNotFound = errors.New("user not found")

var avatarRevisionRe = regexp.MustCompile(`([0-9]+)/[^/]+\.[a-z]+$`)

// TwitterRepository owns every upstream-specific detail: endpoints,
// pagination cursors, field mapping into the archive's Tweet/User/Media
// shapes. Nothing outside it sees raw API JSON.
type TwitterRepository struct {
  ApiUrl     string
  ScreenName string
  Limiter    *rate.Limiter
  Backoff    time.Duration
}

func NewTwitterRepository() *TwitterRepository {
  return &TwitterRepository{
    ApiUrl:     config.TWITTER_API_URL,
    ScreenName: common.GetEnvString("TWITTER_SCREEN_NAME"),
    Limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
  }
}

// GetNewTweets walks the user timeline backward from the newest tweet.
// since_id bounds the lower end, and each next page sets max_id to the
// smallest id seen minus one, until a page comes back empty. Pages are
// normalized and concatenated; callers must not assume a global order.
func (r *TwitterRepository) GetNewTweets(ctx context.Context, screenName string, minIdStr string) (tweets []*models.Tweet, err error) {
  var maxIdStr string
  for {
    params := url.Values{}
    params.Set("screen_name", screenName)
    params.Set("count", strconv.Itoa(config.TIMELINE_FETCH_COUNT))
    params.Set("trim_user", "1")
    params.Set("exclude_replies", "1")
    params.Set("include_rts", "0")
    params.Set("tweet_mode", "extended")
    if minIdStr != "" {
      params.Set("since_id", minIdStr)
    }
    if maxIdStr != "" {
      params.Set("max_id", common.IdDecrement(maxIdStr))
    }

    data, err := r.request(ctx, "/statuses/user_timeline.json", params)
    if err != nil {
      return nil, err
    }
    page := data.Array()
    if len(page) == 0 {
      break
    }

    var last string
    for _, s := range page {
      idStr := s.Get("id_str").Str
      if last == "" {
        last = idStr
      } else {
        last = common.IdMin(last, idStr)
      }
      tweets = append(tweets, r.NormalizeTweet(s, screenName))
    }
    maxIdStr = last
  }
  return tweets, nil
}

// GetTweets is a single batch status lookup; the caller keeps ids within
// the upstream batch cap.
func (r *TwitterRepository) GetTweets(ctx context.Context, ids []string) (tweets []*models.Tweet, err error) {
  params := url.Values{}
  params.Set("id", strings.Join(ids, ","))
  params.Set("trim_user", "1")
  params.Set("include_entities", "1")
  params.Set("tweet_mode", "extended")

  data, err := r.request(ctx, "/statuses/lookup.json", params)
  if err != nil {
    return
  }
  for _, s := range data.Array() {
    tweets = append(tweets, r.NormalizeTweet(s, r.ScreenName))
  }
  return
}

func (r *TwitterRepository) GetUser(ctx context.Context, screenName string) (user *models.User, err error) {
  params := url.Values{}
  params.Set("screen_name", screenName)
  params.Set("include_entities", "1")

  data, err := r.request(ctx, "/users/lookup.json", params)
  if err != nil {
    return
  }
  matches := data.Array()
  if len(matches) == 0 {
    err = ErrUserNotFound
    return
  }
  user = r.NormalizeUser(matches[0], screenName)
  return
}

func (r *TwitterRepository) NormalizeTweet(s gjson.Result, screenName string) *models.Tweet {
  created, _ := time.Parse(time.RubyDate, s.Get("created_at").Str)
  tweet := &models.Tweet{
    IdStr:   s.Get("id_str").Str,
    Id:      s.Get("id").Int(),
    Text:    s.Get("full_text").Str,
    Faves:   int(s.Get("favorite_count").Int()),
    Rts:     int(s.Get("retweet_count").Int()),
    Created: created.Unix(),
    Updated: time.Now().Unix(),
    Deleted: false,
    Media:   datatypes.JSONSlice[models.Media]{},
  }
  tweet.Ratio = GetRatio(tweet.Faves, tweet.Rts)
  tweet.Url = config.TWITTER_URL + screenName + "/status/" + tweet.IdStr

  i := 0
  s.Get("entities.media").ForEach(func(_, m gjson.Result) bool {
    i++
    mediaUrl := m.Get("media_url_https").Str
    tweet.Media = append(tweet.Media, models.Media{
      Type:           m.Get("type").Str,
      IdStr:          m.Get("id_str").Str,
      Url:            m.Get("url").Str,
      ExpandedUrl:    m.Get("expanded_url").Str,
      MediaUrl:       mediaUrl,
      UploadFileName: fmt.Sprintf("status/%s/%s/%d%s", tweet.IdStr, m.Get("type").Str, i, path.Ext(mediaUrl)),
    })
    return true
  })

  return tweet
}

func (r *TwitterRepository) NormalizeUser(u gjson.Result, screenName string) *models.User {
  imgUrl := u.Get("profile_image_url_https").Str
  var rev string
  if matches := avatarRevisionRe.FindStringSubmatch(imgUrl); len(matches) > 1 {
    rev = matches[1]
  }
  idStr := u.Get("id_str").Str
  return &models.User{
    Id:          u.Get("id").Int(),
    IdStr:       idStr,
    ScreenName:  u.Get("screen_name").Str,
    Url:         config.TWITTER_URL + screenName,
    Name:        u.Get("name").Str,
    Description: r.ReplaceLinks(u.Get("description").Str, u.Get("entities.description")),
    Followers:   int(u.Get("followers_count").Int()),
    Following:   int(u.Get("friends_count").Int()),
    TweetCount:  int(u.Get("statuses_count").Int()),
    Location:    u.Get("location").Str,
    Verified:    u.Get("verified").Bool(),
    Link:        r.ReplaceLinks(u.Get("url").Str, u.Get("entities.url")),
    Updated:     time.Now().Unix(),
    CreatedAt:   u.Get("created_at").Str,
    Media: datatypes.NewJSONType(models.Media{
      IdStr:          "avatar-" + idStr,
      Type:           "photo",
      Url:            imgUrl,
      ExpandedUrl:    imgUrl,
      MediaUrl:       imgUrl,
      UploadFileName: fmt.Sprintf("user/%s/avatar-%s%s", idStr, rev, path.Ext(imgUrl)),
    }),
  }
}

// ReplaceLinks swaps every t.co token in the text for its expanded form,
// whole tokens only, case-insensitive.
func (r *TwitterRepository) ReplaceLinks(str string, entities gjson.Result) string {
  if str == "" {
    return ""
  }
  entities.Get("urls").ForEach(func(_, u gjson.Result) bool {
    re, err := regexp.Compile(`(?i)(^|\b)` + regexp.QuoteMeta(u.Get("url").Str) + `(\b|$)`)
    if err != nil {
      return true
    }
    str = re.ReplaceAllString(str, u.Get("expanded_url").Str)
    return true
  })
  return str
}

func GetRatio(favs int, rts int) float64 {
  if favs <= 0 {
    return 0
  }
  return float64(rts) / float64(favs)
}

func (r *TwitterRepository) request(ctx context.Context, apiPath string, params url.Values) (result gjson.Result, err error) {
  tr := &http.Transport{
    DisableKeepAlives: true,
  }
  if proxy := common.GetEnvString("TWITTER_PROXY"); proxy != "" {
    tr.DialContext = (&common.ProxySession{
      Proxy: proxy,
    }).DialContext
  } else {
    tr.DialContext = (&net.Dialer{}).DialContext
  }

  httpClient := &http.Client{
    Transport: tr,
    Timeout:   time.Duration(15) * time.Second,
  }

  if r.Limiter != nil {
    if err = r.Limiter.Wait(ctx); err != nil {
      return
    }
  }

  backoff := r.Backoff
  if backoff == 0 {
    backoff = 500 * time.Millisecond
  }

  for attempt := 0; ; attempt++ {
    req, _ := http.NewRequestWithContext(ctx, "GET", r.ApiUrl+apiPath, nil)
    req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", common.GetEnvString("TWITTER_BEARER_TOKEN")))
    req.URL.RawQuery = params.Encode()

    resp, e := httpClient.Do(req)
    if e != nil {
      err = e
      return
    }
    body, _ := io.ReadAll(resp.Body)
    resp.Body.Close()

    if resp.StatusCode == http.StatusOK {
      result = gjson.ParseBytes(body)
      return
    }

    if attempt < config.UPSTREAM_MAX_RETRIES && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError) {
      select {
      case <-ctx.Done():
        err = ctx.Err()
        return
      case <-time.After(backoff):
      }
      backoff *= 2
      continue
    }

    err = errors.New(
      fmt.Sprintf(
        "request error: status[%s] code[%d]",
        resp.Status,
        resp.StatusCode,
      ),
    )
    return
  }
}
