package handlers

import (
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// SubmissionGuard collapses concurrent submissions of the same form token into
// one in-flight operation. Every caller receives the shared outcome.
type SubmissionGuard struct {
	group singleflight.Group
}

func NewSubmissionGuard() *SubmissionGuard {
	return &SubmissionGuard{}
}

// NewToken returns a fresh token for a rendered form.
func (g *SubmissionGuard) NewToken() string {
	return uuid.NewString()
}

// Do runs fn once per in-flight token. An empty token is never collapsed.
func (g *SubmissionGuard) Do(scope, token string, fn func() (any, error)) (any, error, bool) {
	if token == "" {
		v, err := fn()
		return v, err, false
	}
	return g.group.Do(scope+":"+token, fn)
}
