package service

import (
	"context"

	"github.com/nabokov223u/CRM-Originarsa/models"
)

// LeadStore CRM-side lead collection contract. FetchAll returns the full
// ordered sequence (newest created first); Subscribe re-delivers the full
// current sequence on every observed change, never a diff, and may invoke
// the callback from an arbitrary goroutine. The returned unsubscribe
// handle is idempotent and stops further delivery.
type LeadStore interface {
	FetchAll(ctx context.Context) ([]models.Lead, error)
	Get(ctx context.Context, id string) (*models.Lead, error)
	Insert(ctx context.Context, lead models.Lead) (string, error)
	Update(ctx context.Context, id string, patch models.LeadPatch) error
	UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error
	Delete(ctx context.Context, id string) error
	Subscribe(onChange func([]models.Lead)) (func(), error)
}

// ApplicationStore CrediExpress application collection contract. Same
// read/subscribe semantics as LeadStore; the only mutations exposed are
// the partner-owned status write-back and the crmStatus shadow write.
type ApplicationStore interface {
	FetchAll(ctx context.Context) ([]models.Application, error)
	Get(ctx context.Context, nativeID string) (*models.Application, error)
	Insert(ctx context.Context, app models.Application) (string, error)
	UpdateStatus(ctx context.Context, nativeID string, status models.ApplicationStatus) error
	SetCRMStatus(ctx context.Context, nativeID string, status models.LeadStatus) error
	Subscribe(onChange func([]models.Application)) (func(), error)
}

// ActivityStore per-lead activity timeline contract
type ActivityStore interface {
	Insert(ctx context.Context, activity models.Activity) (string, error)
	ListByLead(ctx context.Context, leadID string) ([]models.Activity, error)
}
