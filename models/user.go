package models

import (
  "gorm.io/datatypes"
)

type User struct {
  ScreenName  string                    `gorm:"size:50;primaryKey"`
  Id          int64                     `gorm:"not null"`
  IdStr       string                    `gorm:"size:20;not null"`
  Url         string                    `gorm:"size:100;not null"`
  Name        string                    `gorm:"size:100;not null"`
  Description string                    `gorm:"size:500;not null"`
  Followers   int                       `gorm:"not null"`
  Following   int                       `gorm:"not null"`
  TweetCount  int                       `gorm:"not null"`
  Location    string                    `gorm:"size:100;not null"`
  Verified    bool                      `gorm:"not null"`
  Link        string                    `gorm:"size:200;not null"`
  Updated     int64                     `gorm:"not null"`
  CreatedAt   string                    `gorm:"size:40;not null"`
  Media       datatypes.JSONType[Media] `gorm:"not null"`
}

func (m *User) TableName() string {
  return "archive_users"
}
