package repositories

import (
  "testing"

  "archive.local/tweets-archive/models"
)

func TestSearchTerms(t *testing.T) {
  r := &SearchRepository{}

  terms := r.Terms(`cats OR dogs "big dog"`)
  if len(terms) != 2 {
    t.Fatalf("expected 2 groups, got %d", len(terms))
  }
  if len(terms[0]) != 1 || terms[0][0].Upper != "CATS" {
    t.Fatalf("unexpected first group: %+v", terms[0])
  }
  if len(terms[1]) != 2 {
    t.Fatalf("expected 2 terms in second group, got %d", len(terms[1]))
  }
  if terms[1][0].Quoted || terms[1][0].Upper != "DOGS" {
    t.Fatalf("unexpected plain term: %+v", terms[1][0])
  }
  if !terms[1][1].Quoted || terms[1][1].Upper != "BIG DOG" {
    t.Fatalf("unexpected phrase term: %+v", terms[1][1])
  }
}

func TestSearchTermsDropsShortTokens(t *testing.T) {
  r := &SearchRepository{}

  terms := r.Terms("an ox cats")
  if len(terms) != 1 || len(terms[0]) != 1 || terms[0][0].Upper != "CATS" {
    t.Fatalf("expected only cats to survive, got %+v", terms)
  }
  if terms := r.Terms("an ox"); len(terms) != 0 {
    t.Fatalf("expected no groups, got %+v", terms)
  }
}

func TestSearchMatchPlainTerm(t *testing.T) {
  r := &SearchRepository{}
  terms := r.Terms("cats")

  if !r.Match("I love Cats!", terms) {
    t.Fatal("expected case insensitive match")
  }
  // plain terms are substrings
  if !r.Match("concatsenation", terms) {
    t.Fatal("expected substring match")
  }
  if r.Match("dogs only", terms) {
    t.Fatal("expected no match")
  }
}

func TestSearchMatchPhraseWholeWords(t *testing.T) {
  r := &SearchRepository{}
  terms := r.Terms(`"big dog"`)

  if !r.Match("what a big dog indeed", terms) {
    t.Fatal("expected phrase match")
  }
  if !r.Match("Big Dog", terms) {
    t.Fatal("expected phrase match at string bounds")
  }
  if r.Match("bigdog", terms) {
    t.Fatal("expected no match without word boundary")
  }
  if r.Match("a bigger dog", terms) {
    t.Fatal("expected no partial phrase match")
  }
}

func TestSearchMatchAndOr(t *testing.T) {
  r := &SearchRepository{}
  terms := r.Terms("cats dogs OR birds")

  if !r.Match("cats and dogs", terms) {
    t.Fatal("expected first group to match")
  }
  if !r.Match("only birds here", terms) {
    t.Fatal("expected second group to match")
  }
  if r.Match("cats alone", terms) {
    t.Fatal("expected AND group to require every term")
  }
}

func TestSearchMatchIgnoresPunctuation(t *testing.T) {
  r := &SearchRepository{}
  terms := r.Terms("cats")

  if !r.Match("c.a.t.s", terms) {
    t.Fatal("expected match with punctuation stripped")
  }
}

func TestSearchFilter(t *testing.T) {
  r := &SearchRepository{}
  terms := r.Terms("cats")

  tweets := []*models.Tweet{
    {IdStr: "1", Text: "cats forever"},
    {IdStr: "2", Text: "dogs forever"},
    {IdStr: "3", Text: "more CATS"},
  }
  out := r.Filter(tweets, terms)
  if len(out) != 2 || out[0].IdStr != "1" || out[1].IdStr != "3" {
    t.Fatalf("unexpected filter result: %+v", out)
  }
}

func TestRemovePunctuation(t *testing.T) {
  r := &SearchRepository{}

  if got := r.RemovePunctuation(`it's "quoted"!`, true); got != `its quoted` {
    t.Fatalf("unexpected result: %q", got)
  }
  if got := r.RemovePunctuation(`it's "quoted"!`, false); got != `its "quoted"` {
    t.Fatalf("unexpected result: %q", got)
  }
}
