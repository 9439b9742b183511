package recorder

import "time"

// RequestEvent is one completed stock request, recorded after the terminal
// state is reached. Recording is write-only as far as the pipeline is
// concerned; it never influences how a request is handled.
type RequestEvent struct {
	CreatedAt  time.Time
	Token      string // raw user input
	Symbol     string // resolved symbol used for lookups
	Outcome    string // "delivered", "degraded" or "failed"
	Error      string
	DurationMS int64
}

// Recorder persists request history for the /history command.
type Recorder interface {
	RecordRequest(evt *RequestEvent) error
	RecentRequests(limit int) ([]RequestEvent, error)
	Close() error
}
