package repositories

import (
  "errors"
  "strconv"
  "strings"
  "testing"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/models"
)

func TestDiffTweetsDeleted(t *testing.T) {
  local := []*models.Tweet{
    {IdStr: "1", Faves: 5, Rts: 2},
    {IdStr: "2", Faves: 3, Rts: 1},
  }
  fetched := []*models.Tweet{
    {IdStr: "2", Faves: 3, Rts: 1},
  }

  changed := DiffTweets(local, fetched)
  if len(changed) != 1 {
    t.Fatalf("expected 1 changed tweet, got %d", len(changed))
  }
  if changed[0].IdStr != "1" || !changed[0].Deleted {
    t.Fatalf("expected tweet 1 flagged deleted, got %+v", changed[0])
  }
  if changed[0].Updated == 0 {
    t.Fatal("expected updated timestamp to be set")
  }
}

func TestDiffTweetsCounts(t *testing.T) {
  local := []*models.Tweet{
    {IdStr: "1", Faves: 5, Rts: 2, Ratio: 0.4},
  }
  fetched := []*models.Tweet{
    {IdStr: "1", Faves: 10, Rts: 2},
  }

  changed := DiffTweets(local, fetched)
  if len(changed) != 1 {
    t.Fatalf("expected 1 changed tweet, got %d", len(changed))
  }
  if changed[0].Faves != 10 || changed[0].Rts != 2 {
    t.Fatalf("expected refreshed counts, got %+v", changed[0])
  }
  if changed[0].Ratio != 0.2 {
    t.Fatalf("expected ratio 0.2, got %v", changed[0].Ratio)
  }
  if changed[0].Deleted {
    t.Fatal("expected tweet not flagged deleted")
  }
}

func TestDiffTweetsUnchanged(t *testing.T) {
  local := []*models.Tweet{
    {IdStr: "1", Faves: 5, Rts: 2},
  }
  fetched := []*models.Tweet{
    {IdStr: "1", Faves: 5, Rts: 2},
  }

  if changed := DiffTweets(local, fetched); len(changed) != 0 {
    t.Fatalf("expected no changed tweets, got %+v", changed)
  }
}

func TestSliceTweetsPage(t *testing.T) {
  var tweets []*models.Tweet
  for i := 0; i < 25; i++ {
    tweets = append(tweets, &models.Tweet{})
  }

  if got := sliceTweetsPage(tweets, 0); len(got) != config.TWEETS_TO_FETCH {
    t.Fatalf("expected a full page, got %d", len(got))
  }
  if got := sliceTweetsPage(tweets, config.TWEETS_TO_FETCH); len(got) != 5 {
    t.Fatalf("expected 5 leftover tweets, got %d", len(got))
  }
  if got := sliceTweetsPage(tweets, 40); len(got) != 0 {
    t.Fatalf("expected empty page past the end, got %d", len(got))
  }
}

func TestGetSearchShortCircuits(t *testing.T) {
  // a nil Db proves the store is never touched
  r := &TweetsRepository{}

  tweets, err := r.GetSearch(0, "ab", "")
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(tweets) != 0 {
    t.Fatalf("expected empty result for short query, got %d", len(tweets))
  }

  tweets, err = r.GetSearch(0, "an ox", "")
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if len(tweets) != 0 {
    t.Fatalf("expected empty result when no terms survive, got %d", len(tweets))
  }
}

func TestSaveableTweetsCapsAtLowestFailure(t *testing.T) {
  tweets := []*models.Tweet{
    {IdStr: "100"},
    {IdStr: "200"},
    {IdStr: "300"},
  }
  failed := map[string]error{
    "200": errors.New("media fetch failed"),
  }

  out := saveableTweets(tweets, failed)
  if len(out) != 1 || out[0].IdStr != "100" {
    t.Fatalf("expected only tweets below the failure to be saved, got %+v", out)
  }
}

func TestSaveableTweetsNoFailures(t *testing.T) {
  tweets := []*models.Tweet{
    {IdStr: "100"},
    {IdStr: "200"},
  }

  out := saveableTweets(tweets, map[string]error{})
  if len(out) != 2 {
    t.Fatalf("expected all tweets to be saved, got %d", len(out))
  }
}

func newDryRunDB(t *testing.T) *gorm.DB {
  db, err := gorm.Open(postgres.New(postgres.Config{
    DriverName: "pgx",
  }), &gorm.Config{
    DryRun:                 true,
    DisableAutomaticPing:   true,
    SkipDefaultTransaction: true,
  })
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  return db
}

func TestSaveUpsertsOnIdStr(t *testing.T) {
  db := newDryRunDB(t)
  var stmts []string
  db.Callback().Create().After("gorm:create").Register("capture", func(tx *gorm.DB) {
    stmts = append(stmts, tx.Statement.SQL.String())
  })

  r := &TweetsRepository{Db: db}
  var tweets []*models.Tweet
  for i := 0; i < config.MAX_PUT_SIZE+1; i++ {
    tweets = append(tweets, &models.Tweet{IdStr: strconv.Itoa(i + 1), Id: int64(i + 1)})
  }
  if err := r.Save(tweets); err != nil {
    t.Fatalf("unexpected error: %v", err)
  }

  if len(stmts) != 2 {
    t.Fatalf("expected one statement per chunk, got %d", len(stmts))
  }
  for _, stmt := range stmts {
    if !strings.Contains(stmt, `ON CONFLICT ("id_str") DO UPDATE`) {
      t.Fatalf("expected upsert on id_str, got %q", stmt)
    }
  }
}

// The filter only ever sees the window fetched from the page offset, so
// a matching tweet beyond the window surfaces once its page reaches it.
func TestGetSearchWindowReslice(t *testing.T) {
  search := &SearchRepository{}
  terms := search.Terms("cats")

  // page 1: the store window starts at offset 20 and all 30 tweets in
  // it match
  var window []*models.Tweet
  for i := 0; i < 30; i++ {
    window = append(window, &models.Tweet{IdStr: strconv.Itoa(50 - i), Text: "cats"})
  }

  page := sliceTweetsPage(search.Filter(window, terms), 20)
  if len(page) != 10 {
    t.Fatalf("expected 10 tweets, got %d", len(page))
  }
  // the re-slice starts 20 into the filtered window, so its first 20
  // matches are skipped on this page
  if page[0].IdStr != "30" {
    t.Fatalf("expected page to start 20 into the filtered window, got %v", page[0].IdStr)
  }
}

func TestGetRatio(t *testing.T) {
  if got := GetRatio(10, 2); got != 0.2 {
    t.Fatalf("expected 0.2, got %v", got)
  }
  if got := GetRatio(0, 5); got != 0 {
    t.Fatalf("expected 0 for zero faves, got %v", got)
  }
  if got := GetRatio(4, 0); got != 0 {
    t.Fatalf("expected 0, got %v", got)
  }
}
