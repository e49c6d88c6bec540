package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType activity/audit event type
type ActivityType string

const (
	ActivityTypeLlamada      ActivityType = "Llamada"
	ActivityTypeReunion      ActivityType = "Reunión"
	ActivityTypeEmail        ActivityType = "Email"
	ActivityTypeWhatsApp     ActivityType = "WhatsApp"
	ActivityTypeNota         ActivityType = "Nota"
	ActivityTypeTarea        ActivityType = "Tarea"
	ActivityTypeCambioEstado ActivityType = "Cambio de Estado"
)

// ActivityMetadata structured extras depending on the activity type
type ActivityMetadata struct {
	EstadoAnterior  LeadStatus `bson:"estadoAnterior,omitempty" json:"estadoAnterior,omitempty"`
	EstadoNuevo     LeadStatus `bson:"estadoNuevo,omitempty" json:"estadoNuevo,omitempty"`
	DuracionLlamada *int       `bson:"duracionLlamada,omitempty" json:"duracionLlamada,omitempty"`
}

// Activity audit/event record tied to one lead. Immutable once created.
type Activity struct {
	OID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          string             `bson:"-" json:"id"`
	LeadID      string             `bson:"leadId" json:"leadId"`
	Tipo        ActivityType       `bson:"tipo" json:"tipo"`
	Titulo      string             `bson:"titulo" json:"titulo"`
	Descripcion string             `bson:"descripcion" json:"descripcion"`
	Fecha       string             `bson:"fecha" json:"fecha"`
	UserName    string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Metadata    *ActivityMetadata  `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ActivityCreateRequest create activity request
type ActivityCreateRequest struct {
	LeadID      string       `json:"leadId" binding:"required"`
	Tipo        ActivityType `json:"tipo" binding:"required"`
	Titulo      string       `json:"titulo" binding:"required"`
	Descripcion string       `json:"descripcion"`
	Fecha       string       `json:"fecha"`
}
