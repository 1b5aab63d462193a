package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflash/internal/importer"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/store"
)

// MockDeckService is a mock implementation of services.DeckService
type MockDeckService struct {
	mock.Mock
}

func (m *MockDeckService) Stats(ctx context.Context) (models.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Stats), args.Error(1)
}

func (m *MockDeckService) Words(ctx context.Context, limit int) ([]models.WordRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WordRecord), args.Error(1)
}

func (m *MockDeckService) Settings(ctx context.Context) (models.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Settings), args.Error(1)
}

func (m *MockDeckService) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	args := m.Called(ctx, settings)
	return args.Get(0).(models.Settings), args.Error(1)
}

func (m *MockDeckService) Import(ctx context.Context, data []byte, format importer.Format, label string) (models.Stats, error) {
	args := m.Called(ctx, data, format, label)
	return args.Get(0).(models.Stats), args.Error(1)
}

func (m *MockDeckService) ImportFile(ctx context.Context, path string, format importer.Format, label string) error {
	args := m.Called(ctx, path, format, label)
	return args.Error(0)
}

func (m *MockDeckService) Reload(ctx context.Context) (store.LoadSource, models.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(store.LoadSource), args.Get(1).(models.Stats), args.Error(2)
}

func (m *MockDeckService) Backup(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockDeckService) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDrillService is a mock implementation of services.DrillService
type MockDrillService struct {
	mock.Mock
}

func (m *MockDrillService) Start(ctx context.Context, mode models.Mode) (models.Prompt, error) {
	args := m.Called(ctx, mode)
	return args.Get(0).(models.Prompt), args.Error(1)
}

func (m *MockDrillService) Prompt(ctx context.Context, mode models.Mode) (models.Prompt, error) {
	args := m.Called(ctx, mode)
	return args.Get(0).(models.Prompt), args.Error(1)
}

func (m *MockDrillService) Submit(ctx context.Context, mode models.Mode, answer string) (models.Feedback, error) {
	args := m.Called(ctx, mode, answer)
	return args.Get(0).(models.Feedback), args.Error(1)
}

func (m *MockDrillService) Skip(ctx context.Context, mode models.Mode) (models.Feedback, error) {
	args := m.Called(ctx, mode)
	return args.Get(0).(models.Feedback), args.Error(1)
}

func (m *MockDrillService) Reveal(ctx context.Context, mode models.Mode) (models.Prompt, error) {
	args := m.Called(ctx, mode)
	return args.Get(0).(models.Prompt), args.Error(1)
}

func (m *MockDrillService) Confirm(ctx context.Context, mode models.Mode, remembered bool) (models.Feedback, error) {
	args := m.Called(ctx, mode, remembered)
	return args.Get(0).(models.Feedback), args.Error(1)
}

func (m *MockDrillService) Stats(ctx context.Context, mode models.Mode) (models.SessionStats, error) {
	args := m.Called(ctx, mode)
	return args.Get(0).(models.SessionStats), args.Error(1)
}

func (m *MockDrillService) Abandon(ctx context.Context, mode models.Mode) error {
	args := m.Called(ctx, mode)
	return args.Error(0)
}
