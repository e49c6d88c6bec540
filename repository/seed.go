package repository

import (
	"context"

	"github.com/nabokov223u/CRM-Originarsa/models"
	"github.com/nabokov223u/CRM-Originarsa/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// SeedDemoData loads a handful of demo leads for local development. It
// only runs when called explicitly (SEED_DEMO_DATA=true) and skips
// seeding entirely when the lead collection is not empty.
func SeedDemoData(ctx context.Context) error {
	leadStore := NewLeadStore()

	count, err := Collection(LeadsCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		utils.Logger.Info().Int64("leads", count).Msg("lead collection not empty, demo seed skipped")
		return nil
	}

	demoLeads := []models.Lead{
		{
			FullName:      "Juan Carlos Pérez González",
			Email:         "juan.perez@email.com",
			Phone:         "0991234567",
			IDNumber:      "1712345678",
			VehicleAmount: 25000,
			Status:        models.LeadStatusNuevo,
			Prioridad:     models.LeadPriorityMedia,
			Fuente:        "Web",
			Observaciones: "Interesado en financiamiento",
			AsignadoA:     "Vendedor 1",
		},
		{
			FullName:      "María Fernanda Rodríguez López",
			Email:         "maria.rodriguez@email.com",
			Phone:         "0987654321",
			IDNumber:      "1787654321",
			VehicleAmount: 18500,
			Status:        models.LeadStatusContactado,
			Prioridad:     models.LeadPriorityAlta,
			Fuente:        "Referido",
			Observaciones: "Ya se contactó, pendiente de cita",
			AsignadoA:     "Vendedor 2",
		},
		{
			FullName:      "Carlos Eduardo Martínez Silva",
			Email:         "carlos.martinez@email.com",
			Phone:         "0984567890",
			IDNumber:      "1711223344",
			VehicleAmount: 32000,
			Status:        models.LeadStatusCalificado,
			Prioridad:     models.LeadPriorityMedia,
			Fuente:        "Redes Sociales",
			Observaciones: "Negociando precio final y forma de pago",
			AsignadoA:     "Vendedor 1",
		},
	}

	for _, lead := range demoLeads {
		if _, err := leadStore.Insert(ctx, lead); err != nil {
			return err
		}
	}

	utils.Logger.Info().Int("leads", len(demoLeads)).Msg("demo leads seeded")
	return nil
}
