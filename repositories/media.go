package repositories

import (
  "context"
  "errors"
  "fmt"
  "io"
  "net"
  "net/http"
  "strings"
  "sync"
  "time"

  "github.com/h2non/filetype"

  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/models"
)

// MediaRepository pulls media bytes off the upstream CDN and lands them
// in the storage bucket under the tweet's derived upload filename.
type MediaRepository struct {
  StorageRepository *StorageRepository
}

func (r *MediaRepository) Storage() *StorageRepository {
  if r.StorageRepository == nil {
    r.StorageRepository = NewStorageRepository(context.Background())
  }
  return r.StorageRepository
}

// FetchAndStoreAll fans out over tweets that carry media, bounded to a
// fixed worker count. Failures are isolated per tweet and returned by
// id so the caller can withhold just those tweets from the save.
func (r *MediaRepository) FetchAndStoreAll(ctx context.Context, tweets []*models.Tweet) map[string]error {
  sem := make(chan struct{}, config.MEDIA_FETCH_WORKERS)
  wg := &sync.WaitGroup{}
  var mux sync.Mutex
  failed := map[string]error{}

  for _, tweet := range tweets {
    if len(tweet.Media) == 0 {
      continue
    }
    wg.Add(1)
    go func(tweet *models.Tweet) {
      defer wg.Done()
      sem <- struct{}{}
      defer func() { <-sem }()
      if err := r.FetchAndStoreTweetMedia(ctx, tweet); err != nil {
        mux.Lock()
        failed[tweet.IdStr] = err
        mux.Unlock()
      }
    }(tweet)
  }
  wg.Wait()

  return failed
}

func (r *MediaRepository) FetchAndStoreTweetMedia(ctx context.Context, tweet *models.Tweet) error {
  for _, media := range tweet.Media {
    if err := r.FetchAndStore(ctx, media); err != nil {
      return err
    }
  }
  return nil
}

func (r *MediaRepository) FetchAndStore(ctx context.Context, media models.Media) error {
  data, contentType, err := r.Fetch(ctx, media)
  if err != nil {
    return err
  }
  return r.Storage().Put(ctx, media.UploadFileName, data, contentType)
}

func (r *MediaRepository) Fetch(ctx context.Context, media models.Media) (data []byte, contentType string, err error) {
  tr := &http.Transport{
    DisableKeepAlives: true,
  }
  tr.DialContext = (&net.Dialer{}).DialContext

  httpClient := &http.Client{
    Transport: tr,
    Timeout:   time.Duration(30) * time.Second,
  }

  // avatars come back as _normal thumbnails, fetch the large variant
  url := strings.Replace(media.MediaUrl, "_normal.", "_400x400.", 1)
  req, _ := http.NewRequestWithContext(ctx, "GET", url, nil)
  resp, err := httpClient.Do(req)
  if err != nil {
    return
  }
  defer resp.Body.Close()

  if resp.StatusCode != http.StatusOK {
    err = errors.New(
      fmt.Sprintf(
        "request error: url[%s] status[%s] code[%d]",
        url,
        resp.Status,
        resp.StatusCode,
      ),
    )
    return
  }

  data, err = io.ReadAll(resp.Body)
  if err != nil {
    return
  }

  contentType = "application/octet-stream"
  if kind, _ := filetype.Match(data); kind != filetype.Unknown {
    contentType = kind.MIME.Value
  }
  return
}
