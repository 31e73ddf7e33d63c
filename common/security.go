package common

import (
  "crypto/hmac"
  "crypto/rand"
  "crypto/sha256"
  "encoding/hex"

  "golang.org/x/crypto/pbkdf2"
)

func GenerateSalt(length int) string {
  buf := make([]byte, length/2)
  rand.Read(buf)
  return hex.EncodeToString(buf)
}

func GeneratePassword(password string, salt string) string {
  key := pbkdf2.Key([]byte(password), []byte(salt), 4096, 32, sha256.New)
  return hex.EncodeToString(key)
}

func VerifyPassword(password string, salt string, hashed string) bool {
  return hmac.Equal([]byte(GeneratePassword(password, salt)), []byte(hashed))
}
