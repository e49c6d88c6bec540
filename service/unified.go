package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nabokov223u/CRM-Originarsa/models"
	"github.com/nabokov223u/CRM-Originarsa/utils"
)

// UnifiedLeadService merges CRM-native leads and normalized CrediExpress
// applications into one identity-qualified view. Provenance lives in the
// id prefix; CrediExpress-origin records are read-only through this
// service's CRUD path.
type UnifiedLeadService struct {
	leads LeadStore
	apps  ApplicationStore
}

// NewUnifiedLeadService creates the unification engine over the two stores
func NewUnifiedLeadService(leads LeadStore, apps ApplicationStore) *UnifiedLeadService {
	return &UnifiedLeadService{leads: leads, apps: apps}
}

// IsFromCrediExpress reports whether a unified lead id tags a
// CrediExpress-origin record
func IsFromCrediExpress(id string) bool {
	return strings.HasPrefix(id, CrediExpressPrefix)
}

// CrediExpressNativeID recovers the partner-native id from a unified id
func CrediExpressNativeID(id string) string {
	return strings.TrimPrefix(id, CrediExpressPrefix)
}

// IsFromCrediExpress method form of the package predicate
func (s *UnifiedLeadService) IsFromCrediExpress(id string) bool {
	return IsFromCrediExpress(id)
}

// MergeLeads combines the two snapshots: all CRM leads in store order,
// then all normalized applications in store order. No cross-source
// re-sorting. Pure and idempotent: identical snapshots in, identical
// list out, every time.
func MergeLeads(crmLeads []models.Lead, apps []models.Application) []models.Lead {
	merged := make([]models.Lead, 0, len(crmLeads)+len(apps))
	merged = append(merged, crmLeads...)
	for _, app := range apps {
		merged = append(merged, NormalizeApplication(app))
	}
	return merged
}

// GetAllLeads fetches both sources once and returns the merged list.
// A failure on either side aborts the whole call: callers get a complete
// view or a PartialUnavailable error naming the side that failed.
func (s *UnifiedLeadService) GetAllLeads(ctx context.Context) ([]models.Lead, error) {
	crmLeads, err := s.leads.FetchAll(ctx)
	if err != nil {
		return nil, utils.NewPartialUnavailableError("leads", err)
	}

	apps, err := s.apps.FetchAll(ctx)
	if err != nil {
		return nil, utils.NewPartialUnavailableError("applications", err)
	}

	return MergeLeads(crmLeads, apps), nil
}

// merger holds the latest snapshot from each side for one subscription.
// State is owned by the subscription instance, never shared across
// SubscribeAll calls. The merged list is always recomputed from both
// cached snapshots under the lock, so the callback never observes a
// half-updated view; the callback itself runs outside the lock so it may
// unsubscribe without deadlocking.
type merger struct {
	mu       sync.Mutex
	closed   atomic.Bool
	crm      []models.Lead
	apps     []models.Application
	onChange func([]models.Lead)
}

func (m *merger) updateCRM(leads []models.Lead) {
	m.mu.Lock()
	m.crm = leads
	merged := MergeLeads(m.crm, m.apps)
	m.mu.Unlock()
	m.deliver(merged)
}

func (m *merger) updateApplications(apps []models.Application) {
	m.mu.Lock()
	m.apps = apps
	merged := MergeLeads(m.crm, m.apps)
	m.mu.Unlock()
	m.deliver(merged)
}

func (m *merger) deliver(merged []models.Lead) {
	if m.closed.Load() {
		return
	}
	m.onChange(merged)
}

func (m *merger) close() {
	m.closed.Store(true)
}

// SubscribeAll opens two independent live subscriptions, one per source,
// and invokes onChange with the complete merged list every time either
// side delivers a new snapshot. The other side's most recent snapshot is
// reused, which may be empty before its first delivery; the view
// self-corrects as soon as that side reports. Callers that need a
// guaranteed-complete first paint should use GetAllLeads and subscribe
// only for the live updates that follow.
//
// The returned unsubscribe handle tears down both subscriptions, is
// idempotent, and is safe to call from inside onChange.
func (s *UnifiedLeadService) SubscribeAll(onChange func([]models.Lead)) (func(), error) {
	m := &merger{onChange: onChange}

	stopLeads, err := s.leads.Subscribe(m.updateCRM)
	if err != nil {
		return nil, err
	}

	stopApps, err := s.apps.Subscribe(m.updateApplications)
	if err != nil {
		stopLeads()
		return nil, err
	}

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			m.close()
			stopLeads()
			stopApps()
		})
	}

	return unsubscribe, nil
}

// Create stores a new lead on the CRM side. Unified creation never
// produces a CrediExpress-origin record.
func (s *UnifiedLeadService) Create(ctx context.Context, lead models.Lead) (string, error) {
	return s.leads.Insert(ctx, lead)
}

// Update applies a partial edit to a CRM-origin lead. CrediExpress-origin
// leads are rejected before any store I/O: they are edited on the
// CrediExpress side only.
func (s *UnifiedLeadService) Update(ctx context.Context, id string, patch models.LeadPatch) error {
	if IsFromCrediExpress(id) {
		return utils.NewOriginMismatchError("editar")
	}
	return s.leads.Update(ctx, id, patch)
}

// Delete removes a CRM-origin lead; same origin guard as Update.
func (s *UnifiedLeadService) Delete(ctx context.Context, id string) error {
	if IsFromCrediExpress(id) {
		return utils.NewOriginMismatchError("eliminar")
	}
	return s.leads.Delete(ctx, id)
}

// Get resolves a single unified lead by id, normalizing on the fly for
// CrediExpress-origin ids.
func (s *UnifiedLeadService) Get(ctx context.Context, id string) (*models.Lead, error) {
	if IsFromCrediExpress(id) {
		app, err := s.apps.Get(ctx, CrediExpressNativeID(id))
		if err != nil {
			return nil, err
		}
		lead := NormalizeApplication(*app)
		return &lead, nil
	}
	return s.leads.Get(ctx, id)
}
