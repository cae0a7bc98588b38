package uid

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	mu   sync.Mutex
	last int64
)

// Next returns a millisecond-timestamp identifier. Callers hitting the same
// millisecond get strictly increasing values, so ids double as creation order.
func Next() int64 {
	mu.Lock()
	defer mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= last {
		id = last + 1
	}
	last = id
	return id
}

// Request generates a correlation id for HTTP requests.
func Request() string {
	return uuid.New().String()
}
