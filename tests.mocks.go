package main

import (
	"fmt"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler which
// generates predictable ids like `b:1`, `b:2` and so on.
type MockUIDHandler struct {
	counter int
	Valid   bool
}

// NewMockUIDHandler returns a mocked instance with predictable ids.
func NewMockUIDHandler(valid bool) *MockUIDHandler {
	return &MockUIDHandler{Valid: valid}
}

// Generate constructs the next predictable id.
func (muid *MockUIDHandler) Generate(prefix string) string {
	muid.counter++
	return fmt.Sprintf("%s:%d", prefix, muid.counter)
}

// IsValid mocks IsValid behavior by providing configured status. A false
// status makes the library reject every id before lookup.
func (muid *MockUIDHandler) IsValid(_, _ string) bool {
	return muid.Valid
}

// MockNotifier records every notification it receives.
type MockNotifier struct {
	Successes []string
	Failures  []string
}

func (mn *MockNotifier) SendSuccess(message string) {
	mn.Successes = append(mn.Successes, message)
}

func (mn *MockNotifier) SendFailure(message string) {
	mn.Failures = append(mn.Failures, message)
}
