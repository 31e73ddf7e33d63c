package config

import "time"

const (
  TWITTER_URL     = "https://twitter.com/"
  TWITTER_API_URL = "https://api.twitter.com/1.1"

  TWEETS_TO_FETCH      = 20
  TIMELINE_FETCH_COUNT = 200
  MAX_PUT_SIZE         = 500
  MAX_API_LOOKUP_SIZE  = 100
  MIN_SEARCH_LENGTH    = 2
  SUMMARY_LENGTH       = 30

  MEDIA_FETCH_WORKERS  = 5
  UPSTREAM_MAX_RETRIES = 3

  FETCH_JOB_TIMEOUT = 10 * time.Minute
  CHECK_JOB_TIMEOUT = 30 * time.Minute

  ASYNQ_QUEUE_TWEETS = "archive.tweets"
  ASYNQ_QUEUE_USERS  = "archive.users"

  ASYNQ_JOBS_TWEETS_FETCH = "archive:tweets:fetch"
  ASYNQ_JOBS_TWEETS_CHECK = "archive:tweets:check"
  ASYNQ_JOBS_USERS_UPDATE = "archive:users:update"

  NATS_TWEETS_SAVE = "archive.tweets.save"

  REDIS_KEY_TWEETS_PAGES = "archive:tweets:pages:%s"
  TWEETS_PAGES_CACHE_TTL = 60 * time.Second

  LOCKS_TWEETS_FETCH = "locks:archive:tweets:fetch"
  LOCKS_TWEETS_CHECK = "locks:archive:tweets:check"
  LOCKS_USERS_UPDATE = "locks:archive:users:update"
)
