package models

import "sync"

// DetailCell is a write-once cache for a Subscription's SubjectDetail.
// Concurrent callers of Resolve share a single fetch.
type DetailCell struct {
	mu       sync.RWMutex
	resolved bool
	detail   SubjectDetail
}

// Get returns the cached detail, if any.
func (c *DetailCell) Get() (SubjectDetail, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.detail, c.resolved
}

// Resolve returns the cached detail, calling fetch first if the cell is empty.
// fetch runs with the write lock held, so it is called at most once per
// successful population. A failed fetch leaves the cell empty.
func (c *DetailCell) Resolve(fetch func() (SubjectDetail, error)) (SubjectDetail, error) {
	if d, ok := c.Get(); ok {
		return d, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have populated it while we waited for the lock
	if c.resolved {
		return c.detail, nil
	}

	d, err := fetch()
	if err != nil {
		return SubjectDetail{}, err
	}
	c.set(d)
	return d, nil
}

// set must be called with mu held.
func (c *DetailCell) set(d SubjectDetail) {
	if c.resolved {
		panic("models: subject detail is re-initialized")
	}
	c.detail = d
	c.resolved = true
}
