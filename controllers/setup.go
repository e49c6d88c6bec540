package controllers

import (
	"github.com/nabokov223u/CRM-Originarsa/queue"
	"github.com/nabokov223u/CRM-Originarsa/service"
)

var (
	leadService     *service.UnifiedLeadService
	statusService   *service.StatusService
	applicationRepo service.ApplicationStore
	activityRepo    service.ActivityStore
	producer        queue.ProducerInterface
)

// Setup wires the handler package to its services. Producer may be nil
// when the message broker is not configured; the intake webhook then
// skips the notification publish.
func Setup(
	leads *service.UnifiedLeadService,
	status *service.StatusService,
	apps service.ApplicationStore,
	activities service.ActivityStore,
	prod queue.ProducerInterface,
) {
	leadService = leads
	statusService = status
	applicationRepo = apps
	activityRepo = activities
	producer = prod
}
