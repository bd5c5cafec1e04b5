// Package batch runs many independent ingestions with bounded concurrency.
package batch

// Queue collects URLs in first-seen order, deduplicated on the normalized form.
type Queue struct {
	items   []string
	visited map[string]bool
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues rawURL unless an equivalent URL was seen before.
// It reports whether the URL was added.
func (q *Queue) Add(rawURL string) bool {
	key := NormalizeURL(rawURL)
	if key == "" || q.visited[key] {
		return false
	}
	q.visited[key] = true
	q.items = append(q.items, rawURL)
	return true
}

// All returns every queued URL in first-seen order.
func (q *Queue) All() []string {
	return q.items
}
