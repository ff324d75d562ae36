package query

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParseListParams reads the recognized list options from the request:
// text, from, to (RFC 3339 date), tab, sort, direction, page, page_size.
// Unparseable numbers and dates are reported here, before any scan.
func ParseListParams(c *gin.Context) (Filter, Sort, Page, error) {
	f := Filter{
		Text:        c.Query("text"),
		StatusGroup: c.Query("tab"),
	}

	if raw := c.Query("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return Filter{}, Sort{}, Page{}, &Error{Param: "from", Reason: "not a date"}
		}
		f.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return Filter{}, Sort{}, Page{}, &Error{Param: "to", Reason: "not a date"}
		}
		// A date-only upper bound covers that whole day, so times later
		// the same day still fall inside the inclusive range.
		if len(raw) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &t
	}

	s := Sort{
		Field:     c.Query("sort"),
		Direction: Direction(c.DefaultQuery("direction", string(Asc))),
	}

	p := Page{Page: 0, PageSize: defaultPageSize}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, Sort{}, Page{}, &Error{Param: "page", Reason: "not a number"}
		}
		p.Page = n
	}
	if raw := c.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, Sort{}, Page{}, &Error{Param: "page_size", Reason: "not a number"}
		}
		p.PageSize = n
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}

	return f, s, p, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
