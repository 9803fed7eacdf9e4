package domain

import "time"

// Session is the authenticated identity bound to a bearer token. Token and
// user travel together as one value; a session is never partially present.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedOn time.Time `json:"created_on"`
}
