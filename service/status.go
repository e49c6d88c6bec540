package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nabokov223u/CRM-Originarsa/models"
	"github.com/nabokov223u/CRM-Originarsa/utils"
)

// StatusService reconciles the two-sided status model: the CRM owns the
// full pipeline granularity, CrediExpress owns its own three-state
// application status. Intermediate pipeline states are stored on this
// side only; the two terminal outcomes are additionally written back to
// the partner-owned status field.
type StatusService struct {
	leads      LeadStore
	apps       ApplicationStore
	activities ActivityStore
}

// NewStatusService creates the status reconciliation service
func NewStatusService(leads LeadStore, apps ApplicationStore, activities ActivityStore) *StatusService {
	return &StatusService{leads: leads, apps: apps, activities: activities}
}

// partnerStatusFor maps a pipeline status onto the partner-owned status.
// Only the two terminal outcomes map; everything else must leave the
// partner field untouched.
func partnerStatusFor(status models.LeadStatus) (models.ApplicationStatus, bool) {
	switch status {
	case models.LeadStatusGanado:
		return models.ApplicationStatusApproved, true
	case models.LeadStatusPerdido:
		return models.ApplicationStatusRejected, true
	default:
		return "", false
	}
}

// UpdateLeadStatus moves a lead to newStatus, routing the writes by
// origin. The two partner-side writes are not transactional: a failure
// after the crmStatus write leaves the partner status stale, which is
// bounded because the normalizer always prefers crmStatus when present.
func (s *StatusService) UpdateLeadStatus(ctx context.Context, id string, newStatus models.LeadStatus, actor string) error {
	if !newStatus.IsValid() {
		return utils.CreateBadRequestError("estado de pipeline desconocido: " + string(newStatus))
	}

	if !IsFromCrediExpress(id) {
		lead, err := s.leads.Get(ctx, id)
		if err != nil {
			return err
		}

		if err := s.leads.UpdateStatus(ctx, id, newStatus); err != nil {
			return err
		}

		s.emitStatusActivity(ctx, id, lead.Status, newStatus, actor)
		return nil
	}

	nativeID := CrediExpressNativeID(id)

	app, err := s.apps.Get(ctx, nativeID)
	if err != nil {
		return err
	}
	previous := app.CRMStatus
	if previous == "" {
		previous = models.LeadStatusNuevo
	}

	// the shadow field always tracks the pipeline; the normalizer reads
	// it back on the next merge
	if err := s.apps.SetCRMStatus(ctx, nativeID, newStatus); err != nil {
		return err
	}

	if partnerStatus, ok := partnerStatusFor(newStatus); ok {
		if err := s.apps.UpdateStatus(ctx, nativeID, partnerStatus); err != nil {
			return err
		}
	}

	s.emitStatusActivity(ctx, id, previous, newStatus, actor)
	return nil
}

// emitStatusActivity records the transition on the lead's timeline.
// Best effort: a failed audit write is logged and swallowed, it never
// fails the status change itself.
func (s *StatusService) emitStatusActivity(ctx context.Context, leadID string, previous, next models.LeadStatus, actor string) {
	activity := models.Activity{
		LeadID:      leadID,
		Tipo:        models.ActivityTypeCambioEstado,
		Titulo:      "Cambio de estado",
		Descripcion: fmt.Sprintf("El lead pasó de %s a %s", previous, next),
		Fecha:       time.Now().Format(time.RFC3339),
		UserName:    actor,
		Metadata: &models.ActivityMetadata{
			EstadoAnterior: previous,
			EstadoNuevo:    next,
		},
	}

	if _, err := s.activities.Insert(ctx, activity); err != nil {
		utils.LogError(err, map[string]interface{}{
			"leadId": leadID,
			"status": next,
		}, "failed to record status-change activity")
	}
}
