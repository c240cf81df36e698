// Package flight collapses concurrent generation requests for the same
// fingerprint into a single unit of backend work. All callers for a key
// share the one in-flight outcome; the key is released as soon as the job
// settles, success or failure, so the next request after settlement always
// starts a fresh attempt.
package flight

import "golang.org/x/sync/singleflight"

// Coordinator deduplicates in-flight generation jobs by fingerprint.
// It is owned by the component that creates it, never package-global,
// so each generator instance has its own registry.
type Coordinator struct {
	group singleflight.Group
}

// NewCoordinator creates an empty coordinator
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Do returns the document produced by work for the given key. If a job for
// the key is already registered, the call joins it and receives the same
// result; otherwise work is invoked exactly once. shared reports whether
// the result was delivered to more than one caller. The registration is
// removed on settlement before the outcome propagates, whether work
// succeeded or failed, so a failing job never leaks its slot.
func (c *Coordinator) Do(key string, work func() ([]byte, error)) (doc []byte, shared bool, err error) {
	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		return work()
	})
	if err != nil {
		return nil, shared, err
	}
	return v.([]byte), shared, nil
}

// Forget drops any registration for key. Future callers start a new job
// instead of joining the current one.
func (c *Coordinator) Forget(key string) {
	c.group.Forget(key)
}
