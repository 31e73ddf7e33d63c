package tasks

import (
  "log"

  "github.com/hibiken/asynq"

  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/queue/asynq/jobs"
)

type TweetsTask struct {
  Job         *jobs.Tweets
  AnsqContext *common.AnsqClientContext
}

func NewTweetsTask(ansqContext *common.AnsqClientContext) *TweetsTask {
  return &TweetsTask{
    AnsqContext: ansqContext,
  }
}

func (t *TweetsTask) Fetch() (err error) {
  log.Println("tasks tweets fetch")
  if job, err := t.Job.Fetch(); err == nil {
    t.AnsqContext.Conn.Enqueue(
      job,
      asynq.Queue(config.ASYNQ_QUEUE_TWEETS),
      asynq.MaxRetry(0),
      asynq.Timeout(config.FETCH_JOB_TIMEOUT),
    )
  }
  return
}

func (t *TweetsTask) Check() (err error) {
  log.Println("tasks tweets check")
  if job, err := t.Job.Check(); err == nil {
    t.AnsqContext.Conn.Enqueue(
      job,
      asynq.Queue(config.ASYNQ_QUEUE_TWEETS),
      asynq.MaxRetry(0),
      asynq.Timeout(config.CHECK_JOB_TIMEOUT),
    )
  }
  return
}
