// Package quota enforces the fixed per-client analysis ceiling. The counter
// lives entirely in a client-held cookie: the server reads whatever value it
// is handed, admits or rejects, and re-issues the incremented value only
// after a successful analysis. There is no server-side source of truth.
package quota

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName carries the usage count. Not HttpOnly: the client UI reads
	// it to display the remaining-analyses counter.
	CookieName = "usage-count"

	// Limit is the fixed number of analyses per client.
	Limit = 3

	// CookieMaxAge is the validity window of the counter, in seconds (24h).
	CookieMaxAge = 60 * 60 * 24

	cookiePath = "/"
)

// State is a snapshot of a client's usage counter.
type State struct {
	Count int
	Limit int
}

// FromRequest reads the usage cookie from the request. An absent or
// malformed cookie reads as zero, never as an error.
func FromRequest(c *gin.Context) State {
	raw, err := c.Cookie(CookieName)
	if err != nil {
		return State{Count: 0, Limit: Limit}
	}
	return State{Count: ParseCount(raw), Limit: Limit}
}

// ParseCount converts a raw cookie value into a usage count. Non-numeric or
// negative values are treated as zero.
func ParseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Admit reports whether another analysis is allowed under the current count.
func (s State) Admit() bool {
	return s.Count < s.Limit
}

// Next returns the state after one successful analysis.
func (s State) Next() State {
	return State{Count: s.Count + 1, Limit: s.Limit}
}

// Remaining returns how many analyses the client has left.
func (s State) Remaining() int {
	if s.Count >= s.Limit {
		return 0
	}
	return s.Limit - s.Count
}

// Write re-issues the counter cookie with the fixed expiry window, scoped to
// the whole service.
func Write(c *gin.Context, s State) {
	c.SetCookie(CookieName, strconv.Itoa(s.Count), CookieMaxAge, cookiePath, "", false, false)
}

// Clear expires the counter cookie. Used by the dev-only reset endpoint.
func Clear(c *gin.Context) {
	c.SetCookie(CookieName, "0", -1, cookiePath, "", false, false)
}
