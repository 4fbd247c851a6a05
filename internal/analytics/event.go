package analytics

import "time"

const (
	TopicLinkCreated = "link.created"
	TopicLinkClicked = "link.clicked"
)

// LinkCreatedEvent is emitted when a new short link is persisted.
type LinkCreatedEvent struct {
	Code      string    `json:"code"`
	LongURL   string    `json:"longUrl"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// LinkClickedEvent is emitted when a short link is resolved for a redirect.
type LinkClickedEvent struct {
	Code      string    `json:"code"`
	ClickedAt time.Time `json:"clickedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer"`
}
