// Package events defines the domain events emitted by the shortener and their handlers.
package events

import "time"

// TopicURLShortened is published once per successfully stored short URL.
const TopicURLShortened = "url.shortened"

// URLShortened is emitted after a new code has been stored.
type URLShortened struct {
	Code        string    `json:"code"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}
