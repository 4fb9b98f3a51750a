package publish

import (
	"fmt"
	"strings"
)

// UnsupportedPolicy decides what happens to content types that have no publisher
type UnsupportedPolicy int

const (
	// AcceptUnsupported completes the job with an explanatory message
	AcceptUnsupported UnsupportedPolicy = iota + 1
	// FailUnsupported fails the job
	FailUnsupported
)

func (p UnsupportedPolicy) String() string {
	switch p {
	case AcceptUnsupported:
		return "accept"
	case FailUnsupported:
		return "fail"
	}
	return "unknown"
}

func ParseUnsupportedPolicy(s string) (UnsupportedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "accept":
		return AcceptUnsupported, nil
	case "fail":
		return FailUnsupported, nil
	}
	return 0, fmt.Errorf("invalid unsupported content policy %q, expected accept or fail", s)
}
