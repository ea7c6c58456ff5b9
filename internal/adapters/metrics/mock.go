package metrics

import "github.com/stretchr/testify/mock"

type MockMetrics struct {
	mock.Mock
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) PollTick()                           { m.Called() }
func (m *MockMetrics) PollOutcome(state string)            { m.Called(state) }
func (m *MockMetrics) LibraryPage(served int, dropped int) { m.Called(served, dropped) }
func (m *MockMetrics) SignedURLFailure()                   { m.Called() }
func (m *MockMetrics) OwnershipViolation()                 { m.Called() }
func (m *MockMetrics) StorageDeleteFailure()               { m.Called() }
