package storage

// SearchEntry is one remembered search, newest kept first.
type SearchEntry struct {
	Query     string `json:"query"`
	Timestamp int64  `json:"timestamp"`
}
