package common

import "math/big"

// Tweet ids are snowflake-style decimal strings that can exceed 63 bits,
// so comparisons and max_id arithmetic go through big.Int.

func parseId(id string) *big.Int {
  val, ok := new(big.Int).SetString(id, 10)
  if !ok {
    panic("malformed tweet id: " + id)
  }
  return val
}

func IdLessThan(a string, b string) bool {
  return parseId(a).Cmp(parseId(b)) < 0
}

func IdDecrement(a string) string {
  val := parseId(a)
  return val.Sub(val, big.NewInt(1)).String()
}

func IdMin(a string, b string) string {
  if IdLessThan(b, a) {
    return b
  }
  return a
}
