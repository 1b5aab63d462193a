package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/importer"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueImport(path string, format importer.Format, label string) error {
	args := m.Called(path, format, label)
	return args.Error(0)
}
