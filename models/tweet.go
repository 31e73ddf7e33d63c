package models

import (
  "gorm.io/datatypes"
)

type Tweet struct {
  IdStr   string                     `gorm:"size:20;primaryKey"`
  Id      int64                      `gorm:"not null;index"`
  Text    string                     `gorm:"size:5000;not null"`
  Faves   int                        `gorm:"not null;index:idx_archive_tweets_best,priority:1"`
  Rts     int                        `gorm:"not null;index:idx_archive_tweets_best,priority:2"`
  Ratio   float64                    `gorm:"not null;index:idx_archive_tweets_best,priority:3"`
  Created int64                      `gorm:"not null"`
  Updated int64                      `gorm:"not null;index"`
  Deleted bool                       `gorm:"not null;index"`
  Url     string                     `gorm:"size:100;not null"`
  Media   datatypes.JSONSlice[Media] `gorm:"not null"`
}

func (m *Tweet) TableName() string {
  return "archive_tweets"
}
