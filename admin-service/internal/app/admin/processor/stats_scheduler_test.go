package processor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockDashboardService мок для DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
	refreshes atomic.Int32
}

func (m *MockDashboardService) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DashboardStats), args.Error(1)
}

func (m *MockDashboardService) Badges(ctx context.Context) (*entity.NavigationBadges, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NavigationBadges), args.Error(1)
}

func (m *MockDashboardService) RefreshMetrics(ctx context.Context) error {
	m.refreshes.Add(1)
	args := m.Called(ctx)
	return args.Error(0)
}

// ===================== Start Tests =====================

func TestStatsScheduler_Start_Success(t *testing.T) {
	// Arrange
	mockSvc := new(MockDashboardService)
	scheduler := NewStatsScheduler(mockSvc)

	// Initial refresh при старте
	mockSvc.On("RefreshMetrics", mock.Anything).Return(nil)

	// Act
	err := scheduler.Start(context.Background(), "@every 15s")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	// Cleanup
	scheduler.Stop()
	assert.Equal(t, int32(1), mockSvc.refreshes.Load())
}

func TestStatsScheduler_Start_InvalidSchedule(t *testing.T) {
	// Arrange
	mockSvc := new(MockDashboardService)
	scheduler := NewStatsScheduler(mockSvc)

	// Act
	err := scheduler.Start(context.Background(), "invalid cron expression")

	// Assert
	assert.Error(t, err)
	assert.Empty(t, scheduler.GetEntries())
	mockSvc.AssertNotCalled(t, "RefreshMetrics", mock.Anything)
}

func TestStatsScheduler_Start_InitialRefreshError_ContinuesWork(t *testing.T) {
	// Arrange
	mockSvc := new(MockDashboardService)
	scheduler := NewStatsScheduler(mockSvc)

	mockSvc.On("RefreshMetrics", mock.Anything).Return(errors.New("database unavailable"))

	// Act
	err := scheduler.Start(context.Background(), "@every 15s")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	scheduler.Stop()
}

// ===================== Job Execution Tests =====================

func TestStatsScheduler_JobExecution(t *testing.T) {
	// Arrange
	mockSvc := new(MockDashboardService)
	scheduler := NewStatsScheduler(mockSvc)

	mockSvc.On("RefreshMetrics", mock.Anything).Return(nil)

	// Act (cron округляет @every до целой секунды)
	err := scheduler.Start(context.Background(), "@every 1s")
	assert.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)
	scheduler.Stop()

	// Assert - initial + минимум один запуск по расписанию
	assert.GreaterOrEqual(t, mockSvc.refreshes.Load(), int32(2))
}

func TestStatsScheduler_JobExecution_WithError(t *testing.T) {
	// Arrange
	mockSvc := new(MockDashboardService)
	scheduler := NewStatsScheduler(mockSvc)

	mockSvc.On("RefreshMetrics", mock.Anything).Return(errors.New("query timeout"))

	// Act
	err := scheduler.Start(context.Background(), "@every 1s")
	assert.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)
	scheduler.Stop()

	// Assert - ошибки не останавливают расписание
	assert.GreaterOrEqual(t, mockSvc.refreshes.Load(), int32(2))
}
