package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nabokov223u/CRM-Originarsa/models"
	"github.com/nabokov223u/CRM-Originarsa/utils"
)

// MockLeadStore
type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) FetchAll(ctx context.Context) ([]models.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lead), args.Error(1)
}

func (m *MockLeadStore) Get(ctx context.Context, id string) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadStore) Insert(ctx context.Context, lead models.Lead) (string, error) {
	args := m.Called(ctx, lead)
	return args.String(0), args.Error(1)
}

func (m *MockLeadStore) Update(ctx context.Context, id string, patch models.LeadPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockLeadStore) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadStore) Subscribe(onChange func([]models.Lead)) (func(), error) {
	args := m.Called(onChange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// MockApplicationStore
type MockApplicationStore struct {
	mock.Mock
}

func (m *MockApplicationStore) FetchAll(ctx context.Context) ([]models.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationStore) Get(ctx context.Context, nativeID string) (*models.Application, error) {
	args := m.Called(ctx, nativeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationStore) Insert(ctx context.Context, app models.Application) (string, error) {
	args := m.Called(ctx, app)
	return args.String(0), args.Error(1)
}

func (m *MockApplicationStore) UpdateStatus(ctx context.Context, nativeID string, status models.ApplicationStatus) error {
	args := m.Called(ctx, nativeID, status)
	return args.Error(0)
}

func (m *MockApplicationStore) SetCRMStatus(ctx context.Context, nativeID string, status models.LeadStatus) error {
	args := m.Called(ctx, nativeID, status)
	return args.Error(0)
}

func (m *MockApplicationStore) Subscribe(onChange func([]models.Application)) (func(), error) {
	args := m.Called(onChange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// MockActivityStore
type MockActivityStore struct {
	mock.Mock
}

func (m *MockActivityStore) Insert(ctx context.Context, activity models.Activity) (string, error) {
	args := m.Called(ctx, activity)
	return args.String(0), args.Error(1)
}

func (m *MockActivityStore) ListByLead(ctx context.Context, leadID string) ([]models.Activity, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Activity), args.Error(1)
}

func TestUpdateLeadStatusIntermediateWritesShadowOnly(t *testing.T) {
	leads := new(MockLeadStore)
	apps := new(MockApplicationStore)
	activities := new(MockActivityStore)

	apps.On("Get", mock.Anything, "55").Return(&models.Application{ID: "55"}, nil)
	apps.On("SetCRMStatus", mock.Anything, "55", models.LeadStatusCalificado).Return(nil)
	activities.On("Insert", mock.Anything, mock.Anything).Return("act-1", nil)

	svc := NewStatusService(leads, apps, activities)
	err := svc.UpdateLeadStatus(context.Background(), "crediexpress_55", models.LeadStatusCalificado, "asesor1")

	assert.NoError(t, err)
	apps.AssertExpectations(t)
	// intermediate states never touch the partner-owned status
	apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	leads.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadStatusGanadoWritesBackApproved(t *testing.T) {
	leads := new(MockLeadStore)
	apps := new(MockApplicationStore)
	activities := new(MockActivityStore)

	apps.On("Get", mock.Anything, "55").Return(&models.Application{ID: "55", CRMStatus: models.LeadStatusNegociacion}, nil)
	apps.On("SetCRMStatus", mock.Anything, "55", models.LeadStatusGanado).Return(nil)
	apps.On("UpdateStatus", mock.Anything, "55", models.ApplicationStatusApproved).Return(nil)
	activities.On("Insert", mock.Anything, mock.MatchedBy(func(a models.Activity) bool {
		return a.LeadID == "crediexpress_55" &&
			a.Metadata != nil &&
			a.Metadata.EstadoAnterior == models.LeadStatusNegociacion &&
			a.Metadata.EstadoNuevo == models.LeadStatusGanado
	})).Return("act-1", nil)

	svc := NewStatusService(leads, apps, activities)
	err := svc.UpdateLeadStatus(context.Background(), "crediexpress_55", models.LeadStatusGanado, "asesor1")

	assert.NoError(t, err)
	apps.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestUpdateLeadStatusPerdidoWritesBackRejected(t *testing.T) {
	leads := new(MockLeadStore)
	apps := new(MockApplicationStore)
	activities := new(MockActivityStore)

	apps.On("Get", mock.Anything, "9").Return(&models.Application{ID: "9"}, nil)
	apps.On("SetCRMStatus", mock.Anything, "9", models.LeadStatusPerdido).Return(nil)
	apps.On("UpdateStatus", mock.Anything, "9", models.ApplicationStatusRejected).Return(nil)
	activities.On("Insert", mock.Anything, mock.Anything).Return("act-1", nil)

	svc := NewStatusService(leads, apps, activities)
	err := svc.UpdateLeadStatus(context.Background(), "crediexpress_9", models.LeadStatusPerdido, "asesor1")

	assert.NoError(t, err)
	apps.AssertExpectations(t)
}

func TestUpdateLeadStatusCRMOrigin(t *testing.T) {
	leads := new(MockLeadStore)
	apps := new(MockApplicationStore)
	activities := new(MockActivityStore)

	leads.On("Get", mock.Anything, "64f1c2d3").Return(&models.Lead{ID: "64f1c2d3", Status: models.LeadStatusNuevo}, nil)
	leads.On("UpdateStatus", mock.Anything, "64f1c2d3", models.LeadStatusContactado).Return(nil)
	activities.On("Insert", mock.Anything, mock.MatchedBy(func(a models.Activity) bool {
		return a.Metadata.EstadoAnterior == models.LeadStatusNuevo &&
			a.Metadata.EstadoNuevo == models.LeadStatusContactado
	})).Return("act-1", nil)

	svc := NewStatusService(leads, apps, activities)
	err := svc.UpdateLeadStatus(context.Background(), "64f1c2d3", models.LeadStatusContactado, "asesor1")

	assert.NoError(t, err)
	leads.AssertExpectations(t)
	apps.AssertNotCalled(t, "SetCRMStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewStatusService(new(MockLeadStore), new(MockApplicationStore), new(MockActivityStore))

	err := svc.UpdateLeadStatus(context.Background(), "64f1c2d3", "Archivado", "asesor1")
	assert.True(t, utils.HasErrorCode(err, utils.CodeBadRequest))
}

func TestUpdateLeadStatusActivityFailureSwallowed(t *testing.T) {
	leads := new(MockLeadStore)
	apps := new(MockApplicationStore)
	activities := new(MockActivityStore)

	leads.On("Get", mock.Anything, "64f1c2d3").Return(&models.Lead{ID: "64f1c2d3", Status: models.LeadStatusNuevo}, nil)
	leads.On("UpdateStatus", mock.Anything, "64f1c2d3", models.LeadStatusContactado).Return(nil)
	activities.On("Insert", mock.Anything, mock.Anything).Return("", errors.New("timeline down"))

	svc := NewStatusService(leads, apps, activities)
	err := svc.UpdateLeadStatus(context.Background(), "64f1c2d3", models.LeadStatusContactado, "asesor1")

	assert.NoError(t, err, "audit failures never fail the status change")
}

func TestUpdateLeadStatusShadowFailureAborts(t *testing.T) {
	leads := new(MockLeadStore)
	apps := new(MockApplicationStore)
	activities := new(MockActivityStore)

	apps.On("Get", mock.Anything, "55").Return(&models.Application{ID: "55"}, nil)
	apps.On("SetCRMStatus", mock.Anything, "55", models.LeadStatusGanado).Return(errors.New("write failed"))

	svc := NewStatusService(leads, apps, activities)
	err := svc.UpdateLeadStatus(context.Background(), "crediexpress_55", models.LeadStatusGanado, "asesor1")

	assert.Error(t, err)
	apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	activities.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
