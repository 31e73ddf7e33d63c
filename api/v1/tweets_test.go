package v1

import (
  "net/http"
  "net/http/httptest"
  "strings"
  "sync"
  "testing"

  "archive.local/tweets-archive/common"
)

// Handlers are shared between requests, so each request must write
// through its own response handler.
func TestListingsConcurrentRequests(t *testing.T) {
  router := NewTweetsRouter(&common.ApiContext{})

  wg := &sync.WaitGroup{}
  results := make([]*httptest.ResponseRecorder, 8)
  for i := range results {
    wg.Add(1)
    go func(i int) {
      defer wg.Done()
      w := httptest.NewRecorder()
      r := httptest.NewRequest("GET", "/search?search=x", nil)
      router.ServeHTTP(w, r)
      results[i] = w
    }(i)
  }
  wg.Wait()

  for i, w := range results {
    if w.Code != http.StatusOK {
      t.Fatalf("request %d: expected 200, got %d", i, w.Code)
    }
    if strings.TrimSpace(w.Body.String()) != "[]" {
      t.Fatalf("request %d: expected empty listing, got %q", i, w.Body.String())
    }
  }
}

func TestListingsRejectsUnknownKind(t *testing.T) {
  router := NewTweetsRouter(&common.ApiContext{})

  w := httptest.NewRecorder()
  r := httptest.NewRequest("GET", "/nope", nil)
  router.ServeHTTP(w, r)

  if w.Code != http.StatusBadRequest {
    t.Fatalf("expected 400, got %d", w.Code)
  }
}
