package notifier

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/nabokov223u/CRM-Originarsa/queue"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// EmailSender sends templated transactional email over SMTP
type EmailSender struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// NewEmailSender creates an SMTP email sender
func NewEmailSender(host string, port int, user, pass, from string) *EmailSender {
	return &EmailSender{Host: host, Port: port, User: user, Pass: pass, From: from}
}

type emailData struct {
	Nombre string
	Monto  string
}

const approvedHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>🎉 ¡Felicitaciones {{.Nombre}}!</h1>
    <div style="background-color: #d4edda; color: #155724; padding: 15px; border-radius: 8px; text-align: center; font-weight: bold;">
      Tu crédito vehicular ha sido APROBADO
    </div>
    <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <p>Monto del vehículo: <strong>{{.Monto}}</strong></p>
      <p>Un asesor de Originarsa se pondrá en contacto contigo muy pronto para continuar con el proceso.</p>
    </div>
    <p style="text-align: center; color: #666;">Originarsa — Financiamiento vehicular</p>
  </div>
</body>
</html>`

const receivedHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>¡Hola {{.Nombre}}!</h1>
    <p>Recibimos tu solicitud de crédito vehicular por <strong>{{.Monto}}</strong>.</p>
    <p>Nuestro equipo la está revisando y un asesor se comunicará contigo en las próximas horas.</p>
    <p style="text-align: center; color: #666;">Originarsa — Financiamiento vehicular</p>
  </div>
</body>
</html>`

// SendApplicationEmail sends the application-received (or approved)
// email for one freshly ingested application
func (s *EmailSender) SendApplicationEmail(payload queue.ApplicationCreatedPayload) error {
	if payload.Email == "" {
		return fmt.Errorf("no applicant email on application %s", payload.NativeID)
	}

	nombre := firstName(payload.FullName)
	monto := "$" + decimal.NewFromFloat(payload.VehicleAmount).StringFixed(2)

	subject := fmt.Sprintf("¡Recibimos tu solicitud, %s!", nombre)
	body := receivedHTML
	text := fmt.Sprintf("Hola %s, recibimos tu solicitud de crédito vehicular por %s. Un asesor se comunicará contigo pronto.", nombre, monto)
	if payload.Status == "approved" {
		subject = fmt.Sprintf("🎉 ¡Felicitaciones %s! Tu crédito fue aprobado", nombre)
		body = approvedHTML
		text = fmt.Sprintf("Felicitaciones %s, tu crédito vehicular por %s fue aprobado. Un asesor se comunicará contigo pronto.", nombre, monto)
	}

	t, err := template.New("email").Parse(body)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var html bytes.Buffer
	if err := t.Execute(&html, emailData{Nombre: nombre, Monto: monto}); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", payload.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	return nil
}
