// Package usage keeps an optional server-side mirror of analysis
// consumption, keyed by client identity. It is advisory only: admission is
// always decided from the client-held quota cookie, and recording here is
// best-effort. The mirror narrows (but cannot close) the window where
// concurrent requests from one client under-count against the cookie.
package usage

import "time"

// Window is the counting horizon, matching the quota cookie's validity.
const Window = 24 * time.Hour

// Counter is a client's recorded analysis consumption inside the current
// window.
type Counter struct {
	ClientID     string    `json:"clientId"`
	Count        int       `json:"count"`
	WindowEndsAt time.Time `json:"windowEndsAt"`
}
