package repositories

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "strings"
  "time"

  "github.com/nats-io/nats.go"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/models"
)

var searchOrderColumns = map[string]string{
  "Faves":   "faves",
  "Rts":     "rts",
  "Ratio":   "ratio",
  "Id":      "id",
  "Created": "created",
  "Updated": "updated",
}

// TweetsRepository is the single reader/writer of tweet persistence. It
// owns ordering, filtering and pagination policy plus the two background
// maintenance flows (fetch-new and reconciliation).
type TweetsRepository struct {
  Db                *gorm.DB
  Nats              *nats.Conn
  TwitterRepository *TwitterRepository
  MediaRepository   *MediaRepository
  SearchRepository  *SearchRepository
  StorageRepository *StorageRepository
}

func (r *TweetsRepository) Twitter() *TwitterRepository {
  if r.TwitterRepository == nil {
    r.TwitterRepository = NewTwitterRepository()
  }
  return r.TwitterRepository
}

func (r *TweetsRepository) Media() *MediaRepository {
  if r.MediaRepository == nil {
    r.MediaRepository = &MediaRepository{
      StorageRepository: r.StorageRepository,
    }
  }
  return r.MediaRepository
}

func (r *TweetsRepository) Search() *SearchRepository {
  if r.SearchRepository == nil {
    r.SearchRepository = &SearchRepository{}
  }
  return r.SearchRepository
}

func (r *TweetsRepository) Get(idStr string) (tweet *models.Tweet, err error) {
  err = r.Db.Where("id_str", idStr).Take(&tweet).Error
  return
}

// GetLast returns the tweet with the maximum id, the incremental sync
// watermark. A nil tweet means the store is empty.
func (r *TweetsRepository) GetLast() (*models.Tweet, error) {
  var tweet *models.Tweet
  result := r.Db.Order("id desc").Take(&tweet)
  if errors.Is(result.Error, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if result.Error != nil {
    return nil, result.Error
  }
  return tweet, nil
}

func (r *TweetsRepository) Latest(page int) (tweets []*models.Tweet, err error) {
  err = r.Db.Where("deleted", false).
    Order("id desc").
    Limit(config.TWEETS_TO_FETCH).
    Offset(page * config.TWEETS_TO_FETCH).
    Find(&tweets).Error
  return
}

func (r *TweetsRepository) Best(page int) (tweets []*models.Tweet, err error) {
  err = r.Db.Where("deleted", false).
    Order("faves desc").
    Order("rts desc").
    Order("ratio desc").
    Limit(config.TWEETS_TO_FETCH).
    Offset(page * config.TWEETS_TO_FETCH).
    Find(&tweets).Error
  return
}

// GetSearch fetches the store window from the page offset onward in the
// requested order, filters it in memory, then re-slices the filtered
// list to one page. The filter only ever sees the fetched window, so a
// matching tweet beyond it surfaces once its page is reached.
func (r *TweetsRepository) GetSearch(page int, search string, order string) ([]*models.Tweet, error) {
  search = r.Search().RemovePunctuation(strings.TrimSpace(search), false)
  if len(search) <= config.MIN_SEARCH_LENGTH {
    return []*models.Tweet{}, nil
  }
  terms := r.Search().Terms(search)
  if len(terms) == 0 {
    return []*models.Tweet{}, nil
  }

  if order == "" {
    order = "-Faves"
  }
  descending := strings.HasPrefix(order, "-")
  field := order
  if descending {
    field = order[1:]
  }
  column, ok := searchOrderColumns[field]
  if !ok {
    column = "faves"
    descending = true
  }

  num := page * config.TWEETS_TO_FETCH
  query := r.Db.Where("deleted", false).Offset(num)
  if descending {
    query = query.Order(fmt.Sprintf("%v desc", column))
  } else {
    query = query.Order(column)
  }

  var tweets []*models.Tweet
  if err := query.Find(&tweets).Error; err != nil {
    return nil, err
  }
  return sliceTweetsPage(r.Search().Filter(tweets, terms), num), nil
}

func sliceTweetsPage(tweets []*models.Tweet, offset int) []*models.Tweet {
  if offset >= len(tweets) {
    return []*models.Tweet{}
  }
  end := offset + config.TWEETS_TO_FETCH
  if end > len(tweets) {
    end = len(tweets)
  }
  return tweets[offset:end]
}

// All loads the full archive ordered by Updated ascending, following
// the pagination to completion rather than stopping at one store page.
func (r *TweetsRepository) All(includeDeleted bool) (tweets []*models.Tweet, err error) {
  for {
    query := r.Db.Order("updated").Order("id_str")
    if !includeDeleted {
      query = query.Where("deleted", false)
    }
    var batch []*models.Tweet
    if err = query.Offset(len(tweets)).Limit(config.MAX_PUT_SIZE).Find(&batch).Error; err != nil {
      return
    }
    if len(batch) == 0 {
      return
    }
    tweets = append(tweets, batch...)
  }
}

// Save is an idempotent bulk upsert keyed by IdStr, chunked to the
// write batch cap. Listeners learn about the write over NATS.
func (r *TweetsRepository) Save(tweets []*models.Tweet) error {
  for start := 0; start < len(tweets); start += config.MAX_PUT_SIZE {
    end := start + config.MAX_PUT_SIZE
    if end > len(tweets) {
      end = len(tweets)
    }
    chunk := tweets[start:end]
    err := r.Db.Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "id_str"}},
      UpdateAll: true,
    }).Create(&chunk).Error
    if err != nil {
      return err
    }
  }
  if r.Nats != nil && len(tweets) > 0 {
    data, _ := json.Marshal(map[string]interface{}{
      "count": len(tweets),
    })
    r.Nats.Publish(config.NATS_TWEETS_SAVE, data)
    r.Nats.Flush()
  }
  return nil
}

// FetchNew runs the incremental sync: watermark, timeline fetch, media
// fan-out, save. Tweets whose media could not be stored are withheld
// from the save and reported; so are tweets above the lowest failure,
// keeping the watermark below it and the skipped tweets refetchable on
// the next run.
func (r *TweetsRepository) FetchNew(ctx context.Context, screenName string) (saved int, err error) {
  last, err := r.GetLast()
  if err != nil {
    return
  }
  var minIdStr string
  if last != nil {
    minIdStr = last.IdStr
  }

  tweets, err := r.Twitter().GetNewTweets(ctx, screenName, minIdStr)
  if err != nil {
    return
  }
  if len(tweets) == 0 {
    return
  }

  failed := r.Media().FetchAndStoreAll(ctx, tweets)

  out := saveableTweets(tweets, failed)
  if len(out) > 0 {
    if err = r.Save(out); err != nil {
      return
    }
    saved = len(out)
  }
  if len(failed) > 0 {
    var ids []string
    for idStr := range failed {
      ids = append(ids, idStr)
    }
    err = errors.New(
      fmt.Sprintf("media fetch failed for tweets %v", ids),
    )
  }
  return
}

// saveableTweets withholds failed tweets and every tweet above the
// lowest failed id. GetLast() then stays below the failure, so the next
// incremental run's since_id still covers the withheld tweets.
func saveableTweets(tweets []*models.Tweet, failed map[string]error) []*models.Tweet {
  var lowest string
  for idStr := range failed {
    if lowest == "" {
      lowest = idStr
    } else {
      lowest = common.IdMin(lowest, idStr)
    }
  }

  var out []*models.Tweet
  for _, tweet := range tweets {
    if lowest != "" && !common.IdLessThan(tweet.IdStr, lowest) {
      continue
    }
    out = append(out, tweet)
  }
  return out
}

// CheckAndUpdateTweets reconciles the stored archive against the live
// API: refreshed engagement counts are written back, tweets gone
// upstream are flagged deleted, untouched tweets are not re-persisted.
func (r *TweetsRepository) CheckAndUpdateTweets(ctx context.Context) error {
  tweets, err := r.All(false)
  if err != nil {
    return err
  }
  changed, err := r.CheckTweets(ctx, tweets)
  if err != nil {
    return err
  }
  if len(changed) == 0 {
    return nil
  }
  return r.Save(changed)
}

func (r *TweetsRepository) CheckTweets(ctx context.Context, tweets []*models.Tweet) (changed []*models.Tweet, err error) {
  for start := 0; start < len(tweets); start += config.MAX_API_LOOKUP_SIZE {
    end := start + config.MAX_API_LOOKUP_SIZE
    if end > len(tweets) {
      end = len(tweets)
    }
    batch := tweets[start:end]

    ids := make([]string, 0, len(batch))
    for _, tweet := range batch {
      ids = append(ids, tweet.IdStr)
    }
    fetched, err := r.Twitter().GetTweets(ctx, ids)
    if err != nil {
      return nil, err
    }
    changed = append(changed, DiffTweets(batch, fetched)...)
  }
  return
}

// DiffTweets applies the reconciliation rules to one lookup batch:
// absent upstream flips Deleted, changed counts update Faves/Rts and the
// derived ratio. Only touched tweets come back.
func DiffTweets(local []*models.Tweet, fetched []*models.Tweet) []*models.Tweet {
  var changed []*models.Tweet
  for _, tweet := range local {
    var found *models.Tweet
    for _, t := range fetched {
      if t.IdStr == tweet.IdStr {
        found = t
        break
      }
    }
    if found == nil {
      tweet.Deleted = true
      tweet.Updated = time.Now().Unix()
      changed = append(changed, tweet)
    } else if found.Faves != tweet.Faves || found.Rts != tweet.Rts {
      tweet.Faves = found.Faves
      tweet.Rts = found.Rts
      tweet.Ratio = GetRatio(tweet.Faves, tweet.Rts)
      tweet.Updated = time.Now().Unix()
      changed = append(changed, tweet)
    }
  }
  return changed
}
