package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadStatus sales pipeline status
type LeadStatus string

const (
	LeadStatusNuevo         LeadStatus = "Nuevo"         // arrives from CrediExpress, not contacted yet
	LeadStatusContactado    LeadStatus = "Contactado"    // first contact made
	LeadStatusCalificado    LeadStatus = "Calificado"    // high intent, ready to close
	LeadStatusNegociacion   LeadStatus = "Negociación"   // choosing vehicle/conditions
	LeadStatusDocumentacion LeadStatus = "Documentación" // preparing the close
	LeadStatusGanado        LeadStatus = "Ganado"        // sale closed
	LeadStatusNutricion     LeadStatus = "Nutrición"     // not ready yet, follow-up
	LeadStatusPerdido       LeadStatus = "Perdido"       // did not close
)

// LeadPriority lead priority
type LeadPriority string

const (
	LeadPriorityAlta  LeadPriority = "Alta"
	LeadPriorityMedia LeadPriority = "Media"
	LeadPriorityBaja  LeadPriority = "Baja"
)

// SourceCrediExpress provenance label for partner-sourced leads
const SourceCrediExpress = "CrediExpress"

// AllLeadStatuses every pipeline status, in pipeline display order
var AllLeadStatuses = []LeadStatus{
	LeadStatusNuevo,
	LeadStatusContactado,
	LeadStatusCalificado,
	LeadStatusNegociacion,
	LeadStatusDocumentacion,
	LeadStatusGanado,
	LeadStatusNutricion,
	LeadStatusPerdido,
}

// IsValid reports whether s is a known pipeline status
func (s LeadStatus) IsValid() bool {
	for _, known := range AllLeadStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s is one of the two terminal outcomes
func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusGanado || s == LeadStatusPerdido
}

// Lead unified sales-pipeline prospect, regardless of origin.
// ID carries provenance: CrediExpress-sourced leads use the
// "crediexpress_<nativeId>" composite, CRM leads the store-assigned id.
type Lead struct {
	OID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID  string             `bson:"-" json:"id"`

	// client data (CrediExpress field names)
	FullName      string `bson:"fullName" json:"fullName"`
	Email         string `bson:"email" json:"email"`
	Phone         string `bson:"phone" json:"phone"`
	IDNumber      string `bson:"idNumber" json:"idNumber"`
	MaritalStatus string `bson:"maritalStatus,omitempty" json:"maritalStatus,omitempty"`

	// financing data
	VehicleAmount  float64  `bson:"vehicleAmount" json:"vehicleAmount"`
	DownPaymentPct *float64 `bson:"downPaymentPct,omitempty" json:"downPaymentPct,omitempty"`
	TermMonths     *int     `bson:"termMonths,omitempty" json:"termMonths,omitempty"`
	CreditScore    *float64 `bson:"creditScore,omitempty" json:"creditScore,omitempty"`
	MontoFinal     *float64 `bson:"montoFinal,omitempty" json:"montoFinal,omitempty"`

	// pipeline state
	Status    LeadStatus   `bson:"status" json:"status"`
	Prioridad LeadPriority `bson:"prioridad" json:"prioridad"`
	Fuente    string       `bson:"fuente" json:"fuente"`

	// commercial management
	AsignadoA       string `bson:"asignadoA,omitempty" json:"asignadoA,omitempty"`
	VehiculoInteres string `bson:"vehiculoInteres,omitempty" json:"vehiculoInteres,omitempty"`
	Observaciones   string `bson:"observaciones,omitempty" json:"observaciones,omitempty"`
	MotivoPerdida   string `bson:"motivoPerdida,omitempty" json:"motivoPerdida,omitempty"`

	// tracking
	FechaCreacion       string `bson:"fechaCreacion" json:"fechaCreacion"`
	FechaUltimoContacto string `bson:"fechaUltimoContacto,omitempty" json:"fechaUltimoContacto,omitempty"`
	FechaCierre         string `bson:"fechaCierre,omitempty" json:"fechaCierre,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// deprecated split fields kept for older dashboard builds; derived
	// from FullName, never a source of truth
	Nombres     string   `bson:"nombres,omitempty" json:"nombres,omitempty"`
	Apellidos   string   `bson:"apellidos,omitempty" json:"apellidos,omitempty"`
	Telefono    string   `bson:"telefono,omitempty" json:"telefono,omitempty"`
	Cedula      string   `bson:"cedula,omitempty" json:"cedula,omitempty"`
	Presupuesto *float64 `bson:"presupuesto,omitempty" json:"presupuesto,omitempty"`
}

// LeadCreateRequest create lead request
type LeadCreateRequest struct {
	FullName       string       `json:"fullName" binding:"required"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	IDNumber       string       `json:"idNumber"`
	MaritalStatus  string       `json:"maritalStatus"`
	VehicleAmount  float64      `json:"vehicleAmount"`
	DownPaymentPct *float64     `json:"downPaymentPct"`
	TermMonths     *int         `json:"termMonths"`
	Status         LeadStatus   `json:"status"`
	Prioridad      LeadPriority `json:"prioridad"`
	Fuente         string       `json:"fuente"`
	AsignadoA      string       `json:"asignadoA"`
	Observaciones  string       `json:"observaciones"`
}

// LeadPatch partial update for a CRM lead; nil fields are left untouched
type LeadPatch struct {
	FullName        *string       `json:"fullName"`
	Email           *string       `json:"email"`
	Phone           *string       `json:"phone"`
	IDNumber        *string       `json:"idNumber"`
	MaritalStatus   *string       `json:"maritalStatus"`
	VehicleAmount   *float64      `json:"vehicleAmount"`
	DownPaymentPct  *float64      `json:"downPaymentPct"`
	TermMonths      *int          `json:"termMonths"`
	Prioridad       *LeadPriority `json:"prioridad"`
	AsignadoA       *string       `json:"asignadoA"`
	VehiculoInteres *string       `json:"vehiculoInteres"`
	Observaciones   *string       `json:"observaciones"`
	MotivoPerdida   *string       `json:"motivoPerdida"`
	MontoFinal      *float64      `json:"montoFinal"`
}

// UpdateStatusRequest pipeline status change request
type UpdateStatusRequest struct {
	Status LeadStatus `json:"status" binding:"required"`
}
