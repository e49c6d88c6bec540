package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadStatusIsValid(t *testing.T) {
	for _, status := range AllLeadStatuses {
		assert.True(t, status.IsValid(), "status %q", status)
	}

	assert.False(t, LeadStatus("").IsValid())
	assert.False(t, LeadStatus("Archivado").IsValid())
	assert.False(t, LeadStatus("nuevo").IsValid(), "status values are case sensitive")
}

func TestLeadStatusIsTerminal(t *testing.T) {
	assert.True(t, LeadStatusGanado.IsTerminal())
	assert.True(t, LeadStatusPerdido.IsTerminal())

	for _, status := range AllLeadStatuses {
		if status == LeadStatusGanado || status == LeadStatusPerdido {
			continue
		}
		assert.False(t, status.IsTerminal(), "status %q", status)
	}
}
