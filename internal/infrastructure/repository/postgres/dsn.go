package postgres

import (
	"net/url"
	"strings"
)

const (
	binaryResultParam = "disable_prepared_binary_result"
	traceQueryLimit   = 512
)

// ConnString prepares a match store DSN. With disableBinaryResults set, URL
// style DSNs get disable_prepared_binary_result=yes unless the caller already
// chose a value. Key/value DSNs are returned as given.
func ConnString(dsn string, disableBinaryResults bool) string {
	dsn = strings.TrimSpace(dsn)
	if !disableBinaryResults {
		return dsn
	}

	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return dsn
	}
	q := u.Query()
	if q.Get(binaryResultParam) != "" {
		return dsn
	}
	q.Set(binaryResultParam, "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// DatabaseName extracts the database from a URL or key/value DSN.
func DatabaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		if name := strings.Trim(u.Path, "/ "); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(dsn) {
		if value, ok := strings.CutPrefix(field, "dbname="); ok {
			if name := strings.Trim(value, `"'`); name != "" {
				return name
			}
		}
	}
	return ""
}

// TraceQuery collapses whitespace in a statement and caps it for span
// attributes.
func TraceQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) <= traceQueryLimit {
		return query
	}
	return query[:traceQueryLimit] + "..."
}
