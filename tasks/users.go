package tasks

import (
  "log"

  "github.com/hibiken/asynq"

  "archive.local/tweets-archive/common"
  "archive.local/tweets-archive/config"
  "archive.local/tweets-archive/queue/asynq/jobs"
)

type UsersTask struct {
  Job         *jobs.Users
  AnsqContext *common.AnsqClientContext
}

func NewUsersTask(ansqContext *common.AnsqClientContext) *UsersTask {
  return &UsersTask{
    AnsqContext: ansqContext,
  }
}

func (t *UsersTask) Update() (err error) {
  log.Println("tasks users update")
  if job, err := t.Job.Update(); err == nil {
    t.AnsqContext.Conn.Enqueue(
      job,
      asynq.Queue(config.ASYNQ_QUEUE_USERS),
      asynq.MaxRetry(0),
      asynq.Timeout(config.FETCH_JOB_TIMEOUT),
    )
  }
  return
}
