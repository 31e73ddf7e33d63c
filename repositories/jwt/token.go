package jwt

import (
  "encoding/json"
  "errors"
  "time"

  "github.com/lestrrat/go-jwx/jwa"
  "github.com/lestrrat/go-jwx/jws"
  "github.com/tidwall/gjson"

  "archive.local/tweets-archive/common"
)

type TokenRepository struct{}

func (r *TokenRepository) AccessToken(uid string) (string, error) {
  return r.generate(uid, "access", 2*time.Hour)
}

func (r *TokenRepository) RefreshToken(uid string) (string, error) {
  return r.generate(uid, "refresh", 30*24*time.Hour)
}

func (r *TokenRepository) generate(uid string, use string, ttl time.Duration) (string, error) {
  payload, err := json.Marshal(map[string]interface{}{
    "sub": uid,
    "use": use,
    "exp": time.Now().Add(ttl).Unix(),
  })
  if err != nil {
    return "", err
  }
  signed, err := jws.Sign(payload, jwa.HS256, []byte(common.GetEnvString("JWT_SECRET")))
  if err != nil {
    return "", err
  }
  return string(signed), nil
}

func (r *TokenRepository) Uid(token string) (uid string, err error) {
  payload, err := jws.Verify([]byte(token), jwa.HS256, []byte(common.GetEnvString("JWT_SECRET")))
  if err != nil {
    return
  }
  claims := gjson.ParseBytes(payload)
  if claims.Get("exp").Int() < time.Now().Unix() {
    err = errors.New("token expired")
    return
  }
  if claims.Get("use").Str != "access" {
    err = errors.New("token not valid")
    return
  }
  uid = claims.Get("sub").Str
  if uid == "" {
    err = errors.New("token not valid")
  }
  return
}
