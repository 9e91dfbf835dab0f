package domain

import "time"

// Domain contains core models shared by the prober components.

const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// CheckResult is the evaluated outcome of one check run.
type CheckResult struct {
	CheckID    string
	Operation  string
	Status     string
	StatusCode int
	URL        string
	Error      string
	// Failures lists every expectation that did not hold.
	Failures []string
	// Detail carries diagnostics, e.g. the title of an HTML error page.
	Detail    string
	Elapsed   time.Duration
	CheckedAt time.Time
}

// Passed reports whether every expectation held.
func (r CheckResult) Passed() bool { return r.Status == StatusPass }
