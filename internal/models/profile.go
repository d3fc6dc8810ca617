package models

import "time"

// Profile is the sanitized view of an account the analyzer works with.
type Profile struct {
	Username    string   `json:"username"`
	Description string   `json:"description"`
	Tweets      []string `json:"tweets"`
}

// Analysis is the result of one analyzer run.
type Analysis struct {
	ID         string    `json:"id"`
	Profile    Profile   `json:"profile"`
	Commentary string    `json:"commentary"`
	Degraded   bool      `json:"degraded"` // commentary is the fallback text
	CreatedAt  time.Time `json:"createdAt"`
}
