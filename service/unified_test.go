package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nabokov223u/CRM-Originarsa/models"
	"github.com/nabokov223u/CRM-Originarsa/utils"
)

// fakeLeadStore in-memory LeadStore double with subscription support
type fakeLeadStore struct {
	mu        sync.Mutex
	leads     []models.Lead
	fetchErr  error
	onChange  func([]models.Lead)
	inserts   int
	updates   int
	deletes   int
	subscribe error
}

func (f *fakeLeadStore) FetchAll(ctx context.Context) ([]models.Lead, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.leads, nil
}

func (f *fakeLeadStore) Get(ctx context.Context, id string) (*models.Lead, error) {
	for i := range f.leads {
		if f.leads[i].ID == id {
			return &f.leads[i], nil
		}
	}
	return nil, utils.CreateNotFoundError("Lead")
}

func (f *fakeLeadStore) Insert(ctx context.Context, lead models.Lead) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	return "new-id", nil
}

func (f *fakeLeadStore) Update(ctx context.Context, id string, patch models.LeadPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	return nil
}

func (f *fakeLeadStore) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error {
	return nil
}

func (f *fakeLeadStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return nil
}

func (f *fakeLeadStore) Subscribe(onChange func([]models.Lead)) (func(), error) {
	if f.subscribe != nil {
		return nil, f.subscribe
	}
	f.onChange = onChange
	return func() { f.onChange = nil }, nil
}

// push simulates a store change event
func (f *fakeLeadStore) push(leads []models.Lead) {
	f.leads = leads
	if f.onChange != nil {
		f.onChange(leads)
	}
}

// fakeAppStore in-memory ApplicationStore double
type fakeAppStore struct {
	apps     []models.Application
	fetchErr error
	onChange func([]models.Application)
}

func (f *fakeAppStore) FetchAll(ctx context.Context) ([]models.Application, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.apps, nil
}

func (f *fakeAppStore) Get(ctx context.Context, nativeID string) (*models.Application, error) {
	for i := range f.apps {
		if f.apps[i].ID == nativeID {
			return &f.apps[i], nil
		}
	}
	return nil, utils.CreateNotFoundError("Solicitud")
}

func (f *fakeAppStore) Insert(ctx context.Context, app models.Application) (string, error) {
	return app.ID, nil
}

func (f *fakeAppStore) UpdateStatus(ctx context.Context, nativeID string, status models.ApplicationStatus) error {
	return nil
}

func (f *fakeAppStore) SetCRMStatus(ctx context.Context, nativeID string, status models.LeadStatus) error {
	return nil
}

func (f *fakeAppStore) Subscribe(onChange func([]models.Application)) (func(), error) {
	f.onChange = onChange
	return func() { f.onChange = nil }, nil
}

func (f *fakeAppStore) push(apps []models.Application) {
	f.apps = apps
	if f.onChange != nil {
		f.onChange(apps)
	}
}

func crmLead(id, name string) models.Lead {
	return models.Lead{ID: id, FullName: name, Status: models.LeadStatusNuevo}
}

func partnerApp(nativeID, name string) models.Application {
	return models.Application{
		ID:        nativeID,
		Applicant: models.Applicant{FullName: name},
		Status:    models.ApplicationStatusPending,
		CreatedAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetAllLeadsMergeOrder(t *testing.T) {
	leads := &fakeLeadStore{leads: []models.Lead{crmLead("a", "Lead A"), crmLead("b", "Lead B")}}
	apps := &fakeAppStore{apps: []models.Application{partnerApp("7", "App Siete"), partnerApp("3", "App Tres")}}
	svc := NewUnifiedLeadService(leads, apps)

	merged, err := svc.GetAllLeads(context.Background())
	assert.NoError(t, err)

	ids := make([]string, len(merged))
	for i, l := range merged {
		ids[i] = l.ID
	}
	// CRM block first in store order, then partner block in store order
	assert.Equal(t, []string{"a", "b", "crediexpress_7", "crediexpress_3"}, ids)
}

func TestGetAllLeadsIdempotent(t *testing.T) {
	leads := &fakeLeadStore{leads: []models.Lead{crmLead("a", "Lead A")}}
	apps := &fakeAppStore{apps: []models.Application{partnerApp("1", "App Uno")}}
	svc := NewUnifiedLeadService(leads, apps)

	first, err := svc.GetAllLeads(context.Background())
	assert.NoError(t, err)
	second, err := svc.GetAllLeads(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetAllLeadsNamesFailingSide(t *testing.T) {
	boom := errors.New("connection reset")

	svc := NewUnifiedLeadService(&fakeLeadStore{fetchErr: boom}, &fakeAppStore{})
	_, err := svc.GetAllLeads(context.Background())
	assert.True(t, utils.HasErrorCode(err, utils.CodePartialUnavailable))
	assert.Contains(t, err.Error(), "leads")

	svc = NewUnifiedLeadService(&fakeLeadStore{}, &fakeAppStore{fetchErr: boom})
	_, err = svc.GetAllLeads(context.Background())
	assert.True(t, utils.HasErrorCode(err, utils.CodePartialUnavailable))
	assert.Contains(t, err.Error(), "applications")
}

func TestOriginPredicates(t *testing.T) {
	assert.True(t, IsFromCrediExpress("crediexpress_abc"))
	assert.False(t, IsFromCrediExpress("64f1c2d3e4a5b6c7d8e9f0a1"))
	assert.Equal(t, "abc", CrediExpressNativeID("crediexpress_abc"))
	assert.Equal(t, "plain", CrediExpressNativeID("plain"))
}

func TestUpdateRejectsPartnerOrigin(t *testing.T) {
	leads := &fakeLeadStore{}
	svc := NewUnifiedLeadService(leads, &fakeAppStore{})

	err := svc.Update(context.Background(), "crediexpress_9", models.LeadPatch{})
	assert.True(t, utils.HasErrorCode(err, utils.CodeOriginMismatch))
	assert.Equal(t, 0, leads.updates, "no store write may happen on an origin mismatch")
}

func TestDeleteRejectsPartnerOrigin(t *testing.T) {
	leads := &fakeLeadStore{}
	svc := NewUnifiedLeadService(leads, &fakeAppStore{})

	err := svc.Delete(context.Background(), "crediexpress_9")
	assert.True(t, utils.HasErrorCode(err, utils.CodeOriginMismatch))
	assert.Equal(t, 0, leads.deletes)
}

func TestGetNormalizesPartnerOrigin(t *testing.T) {
	apps := &fakeAppStore{apps: []models.Application{partnerApp("77", "Pedro Pablo León Jaramillo")}}
	svc := NewUnifiedLeadService(&fakeLeadStore{}, apps)

	lead, err := svc.Get(context.Background(), "crediexpress_77")
	assert.NoError(t, err)
	assert.Equal(t, "crediexpress_77", lead.ID)
	assert.Equal(t, models.SourceCrediExpress, lead.Fuente)
}

func TestSubscribeAllRecomputesOnEitherSide(t *testing.T) {
	leads := &fakeLeadStore{}
	apps := &fakeAppStore{}
	svc := NewUnifiedLeadService(leads, apps)

	var mu sync.Mutex
	var deliveries [][]models.Lead
	unsubscribe, err := svc.SubscribeAll(func(merged []models.Lead) {
		mu.Lock()
		deliveries = append(deliveries, merged)
		mu.Unlock()
	})
	assert.NoError(t, err)
	defer unsubscribe()

	leads.push([]models.Lead{crmLead("a", "Lead A")})
	apps.push([]models.Application{partnerApp("1", "App Uno")})
	leads.push([]models.Lead{crmLead("a", "Lead A"), crmLead("b", "Lead B")})

	mu.Lock()
	defer mu.Unlock()
	if assert.Len(t, deliveries, 3) {
		assert.Len(t, deliveries[0], 1)
		// second delivery reuses the cached CRM snapshot
		assert.Len(t, deliveries[1], 2)
		assert.Equal(t, "crediexpress_1", deliveries[1][1].ID)
		assert.Len(t, deliveries[2], 3)
	}
}

func TestSubscribeAllEmptySideBeforeFirstDelivery(t *testing.T) {
	leads := &fakeLeadStore{}
	apps := &fakeAppStore{}
	svc := NewUnifiedLeadService(leads, apps)

	var got []models.Lead
	unsubscribe, err := svc.SubscribeAll(func(merged []models.Lead) {
		got = merged
	})
	assert.NoError(t, err)
	defer unsubscribe()

	// only the partner side has reported so far
	apps.push([]models.Application{partnerApp("1", "App Uno")})

	if assert.Len(t, got, 1) {
		assert.Equal(t, "crediexpress_1", got[0].ID)
	}
}

func TestUnsubscribeStopsDeliveries(t *testing.T) {
	leads := &fakeLeadStore{}
	apps := &fakeAppStore{}
	svc := NewUnifiedLeadService(leads, apps)

	count := 0
	unsubscribe, err := svc.SubscribeAll(func([]models.Lead) { count++ })
	assert.NoError(t, err)

	leads.push([]models.Lead{crmLead("a", "Lead A")})
	assert.Equal(t, 1, count)

	unsubscribe()
	unsubscribe() // idempotent

	leads.push([]models.Lead{crmLead("b", "Lead B")})
	assert.Equal(t, 1, count, "no delivery after unsubscribe")
}

func TestUnsubscribeFromInsideCallback(t *testing.T) {
	leads := &fakeLeadStore{}
	apps := &fakeAppStore{}
	svc := NewUnifiedLeadService(leads, apps)

	count := 0
	var unsubscribe func()
	unsubscribe, err := svc.SubscribeAll(func([]models.Lead) {
		count++
		unsubscribe()
	})
	assert.NoError(t, err)

	leads.push([]models.Lead{crmLead("a", "Lead A")})
	leads.push([]models.Lead{crmLead("b", "Lead B")})

	assert.Equal(t, 1, count)
}

func TestSubscribeAllCleansUpOnSecondSubscribeError(t *testing.T) {
	leads := &fakeLeadStore{}
	apps := &fakeAppStore{}
	svc := NewUnifiedLeadService(leads, apps)

	// make the application subscribe fail after the lead one succeeded
	failing := &failingAppStore{fakeAppStore: apps}
	svc = NewUnifiedLeadService(leads, failing)

	_, err := svc.SubscribeAll(func([]models.Lead) {})
	assert.Error(t, err)
	assert.Nil(t, leads.onChange, "lead subscription must be stopped on rollback")
}

type failingAppStore struct {
	*fakeAppStore
}

func (f *failingAppStore) Subscribe(onChange func([]models.Application)) (func(), error) {
	return nil, errors.New("stream unavailable")
}
