package repositories

import (
  "regexp"
  "strings"

  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/models"
)

var (
  punctuationRe       = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
  punctuationQuotesRe = regexp.MustCompile(`[^a-zA-Z0-9 "]`)
)

type SearchTerm struct {
  Original string
  Text     string
  Upper    string
  Quoted   bool
  Regexp   *regexp.Regexp
}

// SearchRepository compiles a raw query into OR-groups of AND-terms and
// evaluates them against tweet text. It holds no state and touches no
// storage; the store feeds it an already fetched page window.
type SearchRepository struct{}

// Terms splits the query on " OR " into groups, then each group into
// whitespace-separated terms. Double-quoted spans survive the whitespace
// split and become whole-word phrase terms. Terms at or below the
// minimum length are dropped; a group with no surviving terms is dropped.
func (r *SearchRepository) Terms(search string) [][]*SearchTerm {
  var terms [][]*SearchTerm
  for _, group := range strings.Split(search, " OR ") {
    var and []*SearchTerm
    for _, token := range r.tokenize(group) {
      if len(token) <= config.MIN_SEARCH_LENGTH {
        continue
      }
      term := &SearchTerm{
        Original: token,
        Quoted:   strings.HasPrefix(token, "\"") && strings.HasSuffix(token, "\"") && len(token) > 1,
      }
      if term.Quoted {
        term.Text = r.RemovePunctuation(token[1:len(token)-1], true)
        term.Upper = strings.ToUpper(term.Text)
        term.Regexp = regexp.MustCompile("(^| )" + regexp.QuoteMeta(term.Upper) + "( |$)")
      } else {
        term.Text = r.RemovePunctuation(token, true)
        term.Upper = strings.ToUpper(term.Text)
      }
      if term.Text == "" {
        continue
      }
      and = append(and, term)
    }
    if len(and) > 0 {
      terms = append(terms, and)
    }
  }
  return terms
}

// tokenize splits on whitespace but keeps a double-quoted span together
// so a phrase like "big dog" stays one token.
func (r *SearchRepository) tokenize(group string) []string {
  fields := strings.Fields(group)
  var tokens []string
  for i := 0; i < len(fields); i++ {
    token := fields[i]
    if strings.HasPrefix(token, "\"") && !strings.HasSuffix(token, "\"") {
      for i+1 < len(fields) {
        i++
        token += " " + fields[i]
        if strings.HasSuffix(fields[i], "\"") {
          break
        }
      }
    }
    tokens = append(tokens, token)
  }
  return tokens
}

// Match reports whether the text satisfies at least one OR-group, where
// a group requires every term: phrase terms as whole words, plain terms
// as substrings, both case-insensitive over punctuation-stripped text.
func (r *SearchRepository) Match(text string, terms [][]*SearchTerm) bool {
  upper := strings.ToUpper(r.RemovePunctuation(text, true))
  for _, and := range terms {
    matched := true
    for _, term := range and {
      if term.Quoted {
        if !term.Regexp.MatchString(upper) {
          matched = false
          break
        }
      } else if !strings.Contains(upper, term.Upper) {
        matched = false
        break
      }
    }
    if matched {
      return true
    }
  }
  return false
}

func (r *SearchRepository) Filter(tweets []*models.Tweet, terms [][]*SearchTerm) []*models.Tweet {
  out := []*models.Tweet{}
  for _, tweet := range tweets {
    if r.Match(tweet.Text, terms) {
      out = append(out, tweet)
    }
  }
  return out
}

// RemovePunctuation strips everything outside [A-Za-z0-9 ]; when quotes
// is false the double quote survives so the phrase check can still see it.
func (r *SearchRepository) RemovePunctuation(str string, quotes bool) string {
  if quotes {
    return punctuationRe.ReplaceAllString(str, "")
  }
  return punctuationQuotesRe.ReplaceAllString(str, "")
}
