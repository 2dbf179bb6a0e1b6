package session

import (
	"github.com/typegraph/typegraph/internal/ancestry"
	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/definitions"
)

// TypeResult is the resolution outcome for one declared type: either
// the derived structures or the single diagnostic that aborted it.
type TypeResult struct {
	Name               decl.TypeName
	InstanceAncestors  []ancestry.Entry
	SingletonAncestors []ancestry.Entry
	InstanceMethods    map[string]*definitions.Definition
	SingletonMethods   map[string]*definitions.Definition
	Err                error
}

// Report is the outcome of one batch resolution: per-type results in
// table order, stamped with the session identifier so downstream
// consumers can correlate a result set with its snapshot.
type Report struct {
	SessionID string
	results   []TypeResult
}

func NewReport(sessionID string, size int) *Report {
	return &Report{SessionID: sessionID, results: make([]TypeResult, size)}
}

// Results returns per-type outcomes in declaration order.
func (r *Report) Results() []TypeResult { return r.results }

// Failed returns the results that carry a diagnostic.
func (r *Report) Failed() []TypeResult {
	var failed []TypeResult
	for _, res := range r.results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// OK reports whether every type resolved.
func (r *Report) OK() bool { return len(r.Failed()) == 0 }
