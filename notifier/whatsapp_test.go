package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nabokov223u/CRM-Originarsa/queue"
)

func TestFormatEcuadorianPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0984462977", "+593984462977"},
		{"593984462977", "+593984462977"},
		{"+593984462977", "+593984462977"},
		{"984462977", "+593984462977"},
		{" 0984462977 ", "+593984462977"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatEcuadorianPhone(tc.in), "input %q", tc.in)
	}
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "María", firstName("María Fernanda Vásquez"))
	assert.Equal(t, "Juan", firstName("Juan"))
	assert.Equal(t, "cliente", firstName(""))
	assert.Equal(t, "cliente", firstName("   "))
}

func TestSendApplicationMessage(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient("token-123", "phone-456", server.URL)
	err := client.SendApplicationMessage(queue.ApplicationCreatedPayload{
		NativeID:      "abc",
		FullName:      "María Fernanda Vásquez",
		Phone:         "0984462977",
		VehicleAmount: 25000,
		Status:        "pending",
	})

	assert.NoError(t, err)
	assert.Equal(t, "/phone-456/messages", gotPath)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "+593984462977", gotBody["to"])
	assert.Equal(t, "whatsapp", gotBody["messaging_product"])

	text := gotBody["text"].(map[string]interface{})
	assert.Contains(t, text["body"], "María")
	assert.Contains(t, text["body"], "$25000.00")
}

func TestSendApplicationMessageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid token","code":190}}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient("bad-token", "phone-456", server.URL)
	err := client.SendApplicationMessage(queue.ApplicationCreatedPayload{
		FullName: "Juan Pérez",
		Phone:    "0984462977",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendApplicationMessageRequiresPhone(t *testing.T) {
	client := NewWhatsAppClient("token", "phone", "http://unused")
	err := client.SendApplicationMessage(queue.ApplicationCreatedPayload{NativeID: "abc"})
	assert.Error(t, err)
}
