package common

import (
  "os"
  "strconv"
  "strings"
)

func GetEnvString(key string) string {
  return os.Getenv(key)
}

func GetEnvInt(key string) int {
  val, _ := strconv.Atoi(os.Getenv(key))
  return val
}

func GetEnvArray(key string) []string {
  return strings.Fields(os.Getenv(key))
}
