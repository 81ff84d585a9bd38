// Package httputil provides the HTTP client abstraction used to talk to
// the reflectivity service, plus a replayable double for tests.
package httputil

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"
)

// Doer issues HTTP requests. *http.Client satisfies it in production;
// ReplayClient stands in for tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultClient returns the client used when a caller passes nil: plain
// net/http with a generous timeout, since the service computes the
// reflectivity tables on demand.
func DefaultClient() *http.Client {
	return &http.Client{Timeout: 2 * time.Minute}
}

// ReplayClient is a Doer that records every request and answers from a
// queue of canned responses. Once the queue is exhausted it returns empty
// 200 responses.
type ReplayClient struct {
	mu       sync.Mutex
	queue    []canned
	next     int
	requests []*http.Request
	bodies   []string
}

type canned struct {
	status int
	body   string
	err    error
}

// NewReplayClient creates an empty ReplayClient.
func NewReplayClient() *ReplayClient {
	return &ReplayClient{}
}

// Queue appends a response with the given status and body.
func (c *ReplayClient) Queue(status int, body string) *ReplayClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, canned{status: status, body: body})
	return c
}

// QueueError appends a transport-level failure.
func (c *ReplayClient) QueueError(err error) *ReplayClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, canned{err: err})
	return c
}

// Do records req (including its body) and pops the next canned response.
func (c *ReplayClient) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var body string
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		req.Body.Close()
		body = string(b)
	}
	c.requests = append(c.requests, req)
	c.bodies = append(c.bodies, body)

	if c.next >= len(c.queue) {
		return okResponse(req, ""), nil
	}
	r := c.queue[c.next]
	c.next++
	if r.err != nil {
		return nil, r.err
	}
	resp := okResponse(req, r.body)
	resp.StatusCode = r.status
	return resp, nil
}

func okResponse(req *http.Request, body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
		Request:    req,
	}
}

// Request returns the nth recorded request, or nil if out of range.
func (c *ReplayClient) Request(n int) *http.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 || n >= len(c.requests) {
		return nil
	}
	return c.requests[n]
}

// RequestBody returns the recorded body of the nth request.
func (c *ReplayClient) RequestBody(n int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 || n >= len(c.bodies) {
		return ""
	}
	return c.bodies[n]
}

// RequestCount returns how many requests were issued.
func (c *ReplayClient) RequestCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}
