package webhook

import "github.com/stretchr/testify/mock"

// MatchRequest creates a custom matcher for request arguments in mocks
func MatchRequest(matcher func(Request) bool) interface{} {
	return mock.MatchedBy(matcher)
}

// MatchJob creates a custom matcher for job arguments in mocks
func MatchJob(matcher func(Job) bool) interface{} {
	return mock.MatchedBy(matcher)
}

// MatchTask creates a custom matcher for queued tasks in mocks
func MatchTask(matcher func(Task) bool) interface{} {
	return mock.MatchedBy(matcher)
}
