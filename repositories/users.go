package repositories

import (
  "context"

  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "archive.local/tweets-archive/models"
)

// UsersRepository keeps the single tracked account record and the flow
// that refreshes it from upstream.
type UsersRepository struct {
  Db                *gorm.DB
  TwitterRepository *TwitterRepository
  MediaRepository   *MediaRepository
  StorageRepository *StorageRepository
}

func (r *UsersRepository) Twitter() *TwitterRepository {
  if r.TwitterRepository == nil {
    r.TwitterRepository = NewTwitterRepository()
  }
  return r.TwitterRepository
}

func (r *UsersRepository) Media() *MediaRepository {
  if r.MediaRepository == nil {
    r.MediaRepository = &MediaRepository{
      StorageRepository: r.StorageRepository,
    }
  }
  return r.MediaRepository
}

func (r *UsersRepository) Get(screenName string) (user *models.User, err error) {
  err = r.Db.Where("screen_name", screenName).Take(&user).Error
  return
}

func (r *UsersRepository) Save(user *models.User) error {
  return r.Db.Clauses(clause.OnConflict{
    Columns:   []clause.Column{{Name: "screen_name"}},
    UpdateAll: true,
  }).Create(user).Error
}

// Refresh fetches the live profile, stores the avatar, then overwrites
// the user record wholesale.
func (r *UsersRepository) Refresh(ctx context.Context, screenName string) error {
  user, err := r.Twitter().GetUser(ctx, screenName)
  if err != nil {
    return err
  }
  if err := r.Media().FetchAndStore(ctx, user.Media.Data()); err != nil {
    return err
  }
  return r.Save(user)
}
