package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryBuilder encodes only the filters that are present and non-empty
type QueryBuilder struct {
	values url.Values
}

func NewQuery() *QueryBuilder {
	return &QueryBuilder{values: url.Values{}}
}

// String adds key when value is non-empty
func (q *QueryBuilder) String(key, value string) *QueryBuilder {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

// Int adds key when value is non-zero
func (q *QueryBuilder) Int(key string, value int64) *QueryBuilder {
	if value != 0 {
		q.values.Set(key, strconv.FormatInt(value, 10))
	}
	return q
}

// Bool adds key when value is set, including false
func (q *QueryBuilder) Bool(key string, value *bool) *QueryBuilder {
	if value != nil {
		q.values.Set(key, strconv.FormatBool(*value))
	}
	return q
}

func (q *QueryBuilder) Values() url.Values {
	return q.values
}

// routeLabel replaces numeric path segments so metrics keep a bounded
// label set
func routeLabel(endpoint string) string {
	parts := strings.Split(endpoint, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.ParseInt(p, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
