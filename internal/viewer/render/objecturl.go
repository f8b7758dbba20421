package render

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/kiview/internal/common"
	"github.com/google/uuid"
)

// objectURLScheme prefixes every minted object URL.
const objectURLScheme = "blob:kiview/"

type object struct {
	data     []byte
	mimeType string
}

// ObjectURLRegistry mints temporary in-process URLs for byte buffers, the
// same-origin blob URL trick of the delivery ladder. URLs stay resolvable
// until revoked; revocation can be scheduled on a timer and is always run
// eagerly on RevokeAll when a view session ends.
type ObjectURLRegistry struct {
	mu      sync.Mutex
	objects map[string]object
	timers  map[string]*time.Timer
}

// NewObjectURLRegistry returns an empty registry.
func NewObjectURLRegistry() *ObjectURLRegistry {
	return &ObjectURLRegistry{
		objects: make(map[string]object),
		timers:  make(map[string]*time.Timer),
	}
}

// Create registers content under a fresh opaque URL and returns the URL.
func (r *ObjectURLRegistry) Create(content []byte, mimeType string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	url := objectURLScheme + uuid.New().String()
	r.objects[url] = object{data: content, mimeType: mimeType}
	return url
}

// Resolve returns the content and MIME type behind a URL.
// Revoked or unknown URLs yield common.ErrorNotFound.
func (r *ObjectURLRegistry) Resolve(url string) ([]byte, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.objects[url]
	if !ok {
		return nil, "", common.ErrorNotFound
	}
	return o.data, o.mimeType, nil
}

// Revoke releases the content behind a URL and stops any pending timer.
func (r *ObjectURLRegistry) Revoke(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revokeLocked(url)
}

// RevokeAfter schedules revocation of a URL once the widget has had time to
// consume it. An eager Revoke or RevokeAll cancels the timer.
func (r *ObjectURLRegistry) RevokeAfter(url string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.objects[url]; !ok {
		return
	}
	if t, ok := r.timers[url]; ok {
		t.Stop()
	}
	r.timers[url] = time.AfterFunc(d, func() { r.Revoke(url) })
}

// RevokeAll eagerly releases every outstanding URL, so blob references never
// leak across file switches.
func (r *ObjectURLRegistry) RevokeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for url := range r.objects {
		r.revokeLocked(url)
	}
}

// Len reports the number of outstanding URLs.
func (r *ObjectURLRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.objects)
}

func (r *ObjectURLRegistry) revokeLocked(url string) {
	if t, ok := r.timers[url]; ok {
		t.Stop()
		delete(r.timers, url)
	}
	delete(r.objects, url)
}
