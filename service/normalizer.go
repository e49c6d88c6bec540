package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/nabokov223u/CRM-Originarsa/models"

	"github.com/shopspring/decimal"
)

// CrediExpressPrefix id prefix tagging partner-sourced leads
const CrediExpressPrefix = "crediexpress_"

// NormalizeApplication maps one CrediExpress application onto the unified
// Lead shape. Pure: no I/O, no clock reads other than the createdAt
// fallback, byte-identical output for identical input.
//
// Pipeline status comes from the crmStatus shadow when present; otherwise
// every CrediExpress lead starts at Nuevo. A partner-side approval never
// advances the pipeline on its own, an advisor has to move it.
func NormalizeApplication(app models.Application) models.Lead {
	status := models.LeadStatusNuevo
	if app.CRMStatus != "" {
		status = app.CRMStatus
	}

	fechaCreacion := time.Now().Format("2006-01-02")
	if !app.CreatedAt.IsZero() {
		fechaCreacion = app.CreatedAt.Format("2006-01-02")
	}

	nombres, apellidos := SplitFullName(app.Applicant.FullName)

	lead := models.Lead{
		ID: CrediExpressPrefix + app.ID,

		FullName:      app.Applicant.FullName,
		Email:         app.Applicant.Email,
		Phone:         app.Applicant.Phone,
		IDNumber:      app.Applicant.IDNumber,
		MaritalStatus: app.Applicant.MaritalStatus,

		VehicleAmount:  app.Loan.VehicleAmount,
		DownPaymentPct: app.Loan.DownPaymentPct,
		TermMonths:     app.Loan.TermMonths,
		CreditScore:    app.Score,

		Status: status,
		// every CrediExpress lead starts at Media; advisors reprioritize later
		Prioridad: models.LeadPriorityMedia,
		Fuente:    models.SourceCrediExpress,

		Observaciones: buildObservaciones(app),

		FechaCreacion:       fechaCreacion,
		FechaUltimoContacto: fechaCreacion,

		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,

		// legacy split fields, derived only
		Nombres:   nombres,
		Apellidos: apellidos,
		Telefono:  app.Applicant.Phone,
		Cedula:    app.Applicant.IDNumber,
	}

	if app.Loan.VehicleAmount > 0 {
		amount := app.Loan.VehicleAmount
		lead.Presupuesto = &amount
	}

	return lead
}

// buildObservaciones renders the credit summary shown to advisors. Fixed
// field order, one line per present field, absent fields omitted. The
// output is display text only; nothing downstream parses it.
func buildObservaciones(app models.Application) string {
	lines := []string{"Lead de CrediExpress"}

	if app.Loan.VehicleAmount > 0 {
		lines = append(lines, "Monto vehículo: $"+formatMoney(app.Loan.VehicleAmount))
	}
	if app.Loan.DownPaymentPct != nil && *app.Loan.DownPaymentPct > 0 {
		pct := decimal.NewFromFloat(*app.Loan.DownPaymentPct).Mul(decimal.NewFromInt(100))
		lines = append(lines, "Cuota inicial: "+pct.StringFixed(1)+"%")
	}
	if app.Loan.TermMonths != nil && *app.Loan.TermMonths > 0 {
		lines = append(lines, fmt.Sprintf("Plazo: %d meses", *app.Loan.TermMonths))
	}
	if cuota, ok := estimatedInstallment(app.Loan); ok {
		lines = append(lines, "Cuota estimada: $"+cuota+"/mes")
	}
	if app.Score != nil {
		lines = append(lines, "Score: "+decimal.NewFromFloat(*app.Score).StringFixed(0))
	}
	if app.CreditLimit != nil {
		lines = append(lines, "Límite de crédito: $"+formatMoney(*app.CreditLimit))
	}

	return strings.Join(lines, "\n")
}

// estimatedInstallment computes the flat monthly installment over the
// financed portion. Informational only, no interest applied.
func estimatedInstallment(loan models.Loan) (string, bool) {
	if loan.VehicleAmount <= 0 || loan.DownPaymentPct == nil || loan.TermMonths == nil || *loan.TermMonths <= 0 {
		return "", false
	}

	amount := decimal.NewFromFloat(loan.VehicleAmount)
	financed := amount.Mul(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(*loan.DownPaymentPct)))
	cuota := financed.Div(decimal.NewFromInt(int64(*loan.TermMonths)))

	return cuota.StringFixed(2), true
}

// formatMoney renders an amount with thousands separators, no decimals
func formatMoney(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(0)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// SplitFullName derives the deprecated split-name fields from a full
// name: first two space-separated tokens become the given names, the
// remainder the surnames, repeating the first token when the remainder
// is empty. Lossy and one-directional.
func SplitFullName(fullName string) (nombres string, apellidos string) {
	tokens := strings.Fields(fullName)
	if len(tokens) == 0 {
		return "", ""
	}

	if len(tokens) <= 2 {
		nombres = strings.Join(tokens, " ")
		apellidos = tokens[0]
		return nombres, apellidos
	}

	nombres = strings.Join(tokens[:2], " ")
	apellidos = strings.Join(tokens[2:], " ")
	return nombres, apellidos
}
