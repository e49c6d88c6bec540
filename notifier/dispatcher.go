package notifier

import (
	"context"
	"sync"

	"github.com/nabokov223u/CRM-Originarsa/queue"
	"github.com/nabokov223u/CRM-Originarsa/utils"
)

// EmailChannel sends email notifications for an application
type EmailChannel interface {
	SendApplicationEmail(payload queue.ApplicationCreatedPayload) error
}

// WhatsAppChannel sends chat notifications for an application
type WhatsAppChannel interface {
	SendApplicationMessage(payload queue.ApplicationCreatedPayload) error
}

// Dispatcher fans an application event out to every configured channel.
// A channel failure is logged and never bubbles up, so one broken
// integration cannot hold the queue message hostage.
type Dispatcher struct {
	Email    EmailChannel
	WhatsApp WhatsAppChannel
}

// NewDispatcher creates a dispatcher. Nil channels are skipped.
func NewDispatcher(email EmailChannel, whatsapp WhatsAppChannel) *Dispatcher {
	return &Dispatcher{
		Email:    email,
		WhatsApp: whatsapp,
	}
}

// ApplicationCreated implements queue.Notifier
func (d *Dispatcher) ApplicationCreated(ctx context.Context, payload queue.ApplicationCreatedPayload) {
	var wg sync.WaitGroup

	if d.Email != nil && payload.Email != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.Email.SendApplicationEmail(payload); err != nil {
				utils.LogError(err, map[string]interface{}{
					"application": payload.NativeID,
				}, "email de solicitud no enviado")
			} else {
				utils.LogInfo(map[string]interface{}{
					"application": payload.NativeID,
				}, "email de solicitud enviado")
			}
		}()
	}

	if d.WhatsApp != nil && payload.Phone != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.WhatsApp.SendApplicationMessage(payload); err != nil {
				utils.LogError(err, map[string]interface{}{
					"application": payload.NativeID,
				}, "whatsapp de solicitud no enviado")
			} else {
				utils.LogInfo(map[string]interface{}{
					"application": payload.NativeID,
				}, "whatsapp de solicitud enviado")
			}
		}()
	}

	wg.Wait()
}
