package repositories

import (
	"strconv"
	"strings"

	"github.com/desertthunder/boardsync/internal/shared"
)

// Rebind rewrites "?" placeholders into the positional form expected by driver.
//
// SQLite queries are returned unchanged; Postgres queries get $1..$n.
func Rebind(driver, query string) string {
	if driver != shared.DriverPostgres && driver != "postgres" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
