package main

import (
	"strconv"
	"time"
)

func itoa64(v int64) string {
	return strconv.FormatInt(v, 10)
}

func newSeed() int64 {
	return time.Now().UnixNano()
}
