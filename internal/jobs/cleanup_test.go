package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/skarbek/treasury-server-go/internal/model"
)

type mockAdminSessionRepo struct {
	deleteExpiredCount int64
}

func (m *mockAdminSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.AdminSession, error) {
	return nil, nil
}

func (m *mockAdminSessionRepo) Create(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error) {
	return nil, nil
}

func (m *mockAdminSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return nil
}

func (m *mockAdminSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return m.deleteExpiredCount, nil
}

type mockParentSessionRepo struct {
	deleteExpiredCount int64
}

func (m *mockParentSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.ParentSession, error) {
	return nil, nil
}

func (m *mockParentSessionRepo) Create(ctx context.Context, params model.CreateParentSessionParams) (*model.ParentSession, error) {
	return nil, nil
}

func (m *mockParentSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return nil
}

func (m *mockParentSessionRepo) DeleteByParentID(ctx context.Context, parentID string) error {
	return nil
}

func (m *mockParentSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return m.deleteExpiredCount, nil
}

func TestCleanupJob(t *testing.T) {
	t.Run("creates job with correct interval", func(t *testing.T) {
		job := NewCleanupJob(nil, nil, 5*time.Minute)

		assert.NotNil(t, job)
		assert.Equal(t, 5*time.Minute, job.interval)
	})

	t.Run("starts and stops without panic", func(t *testing.T) {
		adminRepo := &mockAdminSessionRepo{}
		parentRepo := &mockParentSessionRepo{}

		job := NewCleanupJob(adminRepo, parentRepo, 100*time.Millisecond)

		job.Start()
		time.Sleep(50 * time.Millisecond)
		job.Stop()
	})

	t.Run("runs cleanup on start", func(t *testing.T) {
		adminRepo := &mockAdminSessionRepo{deleteExpiredCount: 2}
		parentRepo := &mockParentSessionRepo{deleteExpiredCount: 3}

		job := NewCleanupJob(adminRepo, parentRepo, 1*time.Hour)

		job.Start()
		time.Sleep(10 * time.Millisecond)
		job.Stop()
	})
}
