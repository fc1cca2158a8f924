package wata

import (
	"net/url"
	"strconv"
	"time"
)

// Query parameter formatting helpers. The H2H API expects decimal amounts
// without trailing zeros, RFC 3339 timestamps, and repeated keys for
// list-valued filters.

func setAmount(q url.Values, key string, v *float64) {
	if v != nil {
		q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}

func setTime(q url.Values, key string, v *time.Time) {
	if v != nil {
		q.Set(key, v.UTC().Format(time.RFC3339))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func addStrings[T ~string](q url.Values, key string, vs []T) {
	for _, v := range vs {
		q.Add(key, string(v))
	}
}
