package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nabokov223u/CRM-Originarsa/queue"

	"github.com/shopspring/decimal"
)

// WhatsAppClient sends messages through the WhatsApp Business API
type WhatsAppClient struct {
	AccessToken string
	PhoneID     string
	BaseURL     string
	HTTPClient  *http.Client
}

// NewWhatsAppClient creates a WhatsApp API client
func NewWhatsAppClient(accessToken, phoneID, baseURL string) *WhatsAppClient {
	return &WhatsAppClient{
		AccessToken: accessToken,
		PhoneID:     phoneID,
		BaseURL:     baseURL,
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

type whatsAppResponse struct {
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// FormatEcuadorianPhone normalizes a local Ecuadorian number to E.164:
// 0984462977 becomes +593984462977. Numbers already carrying a country
// code are left alone apart from the leading plus.
func FormatEcuadorianPhone(phone string) string {
	p := strings.TrimSpace(phone)
	if strings.HasPrefix(p, "0") {
		p = "593" + p[1:]
	}
	if !strings.HasPrefix(p, "593") && !strings.HasPrefix(p, "+") {
		p = "593" + p
	}
	if !strings.HasPrefix(p, "+") {
		p = "+" + p
	}
	return p
}

// SendApplicationMessage sends the application-received chat message
func (c *WhatsAppClient) SendApplicationMessage(payload queue.ApplicationCreatedPayload) error {
	if c.AccessToken == "" || c.PhoneID == "" {
		return fmt.Errorf("whatsapp client not configured")
	}
	if payload.Phone == "" {
		return fmt.Errorf("no applicant phone on application %s", payload.NativeID)
	}

	monto := "$" + decimal.NewFromFloat(payload.VehicleAmount).StringFixed(2)
	message := fmt.Sprintf(
		"¡Hola %s! 👋 Recibimos tu solicitud de crédito vehicular por %s. Un asesor de Originarsa se comunicará contigo muy pronto.",
		firstName(payload.FullName), monto,
	)
	if payload.Status == "approved" {
		message = fmt.Sprintf(
			"🎉 ¡Felicitaciones %s! Tu crédito vehicular por %s fue APROBADO. Un asesor de Originarsa se comunicará contigo para continuar el proceso.",
			firstName(payload.FullName), monto,
		)
	}

	return c.sendText(FormatEcuadorianPhone(payload.Phone), message)
}

func (c *WhatsAppClient) sendText(to, message string) error {
	body, err := json.Marshal(map[string]interface{}{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "text",
		"text": map[string]string{
			"body": message,
		},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.BaseURL, c.PhoneID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("whatsapp api returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result whatsAppResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return err
	}
	if result.Error != nil {
		return fmt.Errorf("whatsapp: %s (code %d)", result.Error.Message, result.Error.Code)
	}

	return nil
}

// firstName returns the first token of a full name, for greetings
func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "cliente"
	}
	return fields[0]
}
