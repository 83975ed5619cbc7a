package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/skarbek/treasury-server-go/internal/model"
)

// Mock repositories shared by the service tests.

type mockParentRepo struct {
	mock.Mock
}

func (m *mockParentRepo) FindByID(ctx context.Context, id string) (*model.Parent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Parent), args.Error(1)
}

func (m *mockParentRepo) FindByEmail(ctx context.Context, email string) (*model.Parent, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Parent), args.Error(1)
}

func (m *mockParentRepo) List(ctx context.Context, includeHidden bool) ([]model.Parent, error) {
	args := m.Called(ctx, includeHidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Parent), args.Error(1)
}

func (m *mockParentRepo) Create(ctx context.Context, params model.CreateParentParams) (*model.Parent, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Parent), args.Error(1)
}

func (m *mockParentRepo) Update(ctx context.Context, id string, params model.UpdateParentParams) (*model.Parent, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Parent), args.Error(1)
}

func (m *mockParentRepo) SetHidden(ctx context.Context, id string, hidden bool) (*model.Parent, error) {
	args := m.Called(ctx, id, hidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Parent), args.Error(1)
}

func (m *mockParentRepo) SetCredential(ctx context.Context, id, passwordHash string, mustChange bool) error {
	args := m.Called(ctx, id, passwordHash, mustChange)
	return args.Error(0)
}

type mockCampaignRepo struct {
	mock.Mock
}

func (m *mockCampaignRepo) FindByID(ctx context.Context, id string) (*model.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) List(ctx context.Context) ([]model.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) ListOpen(ctx context.Context) ([]model.Campaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) Create(ctx context.Context, params model.CreateCampaignParams) (*model.Campaign, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) Update(ctx context.Context, id string, params model.UpdateCampaignParams) (*model.Campaign, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *mockCampaignRepo) Close(ctx context.Context, id string) (*model.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

type mockContributionRepo struct {
	mock.Mock
}

func (m *mockContributionRepo) FindByPair(ctx context.Context, campaignID, parentID string) (*model.Contribution, error) {
	args := m.Called(ctx, campaignID, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contribution), args.Error(1)
}

func (m *mockContributionRepo) Ensure(ctx context.Context, params model.EnsureContributionParams) (*model.Contribution, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contribution), args.Error(1)
}

func (m *mockContributionRepo) MarkPaid(ctx context.Context, campaignID, parentID string, amount float64, note *string) (*model.Contribution, error) {
	args := m.Called(ctx, campaignID, parentID, amount, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contribution), args.Error(1)
}

func (m *mockContributionRepo) ListByCampaign(ctx context.Context, campaignID string) ([]model.Contribution, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contribution), args.Error(1)
}

func (m *mockContributionRepo) ListByParent(ctx context.Context, parentID string) ([]model.Contribution, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contribution), args.Error(1)
}

type mockAdminSessionRepo struct {
	mock.Mock
}

func (m *mockAdminSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.AdminSession, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminSession), args.Error(1)
}

func (m *mockAdminSessionRepo) Create(ctx context.Context, params model.CreateAdminSessionParams) (*model.AdminSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminSession), args.Error(1)
}

func (m *mockAdminSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *mockAdminSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockParentSessionRepo struct {
	mock.Mock
}

func (m *mockParentSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.ParentSession, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParentSession), args.Error(1)
}

func (m *mockParentSessionRepo) Create(ctx context.Context, params model.CreateParentSessionParams) (*model.ParentSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParentSession), args.Error(1)
}

func (m *mockParentSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *mockParentSessionRepo) DeleteByParentID(ctx context.Context, parentID string) error {
	args := m.Called(ctx, parentID)
	return args.Error(0)
}

func (m *mockParentSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendTemporaryPassword(ctx context.Context, toEmail, parentName, password string) error {
	args := m.Called(ctx, toEmail, parentName, password)
	return args.Error(0)
}
