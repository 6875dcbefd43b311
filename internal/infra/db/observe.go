package db

import (
	"strconv"
	"strings"
	"time"

	"conduit/internal/observability/metrics"
)

// ObserveQuery starts timing a repository operation. Call the returned
// function when the operation finishes:
//
//	defer db.ObserveQuery("find_article_by_slug")()
func ObserveQuery(operation string) func() {
	start := time.Now()
	return func() {
		metrics.RecordDBQuery(operation, time.Since(start))
	}
}

// Placeholders renders n comma-separated placeholders. With numbered set it
// produces postgres style $start..$start+n-1, otherwise "?" markers.
func Placeholders(n, start int, numbered bool) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		if numbered {
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(start + i))
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
