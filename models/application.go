package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationStatus status owned by CrediExpress. It is only written from
// this side for the two terminal pipeline outcomes (see service.StatusService).
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Applicant applicant sub-record of a financing application
type Applicant struct {
	FullName      string `bson:"fullName" json:"fullName"`
	Email         string `bson:"email" json:"email"`
	Phone         string `bson:"phone" json:"phone"`
	IDNumber      string `bson:"idNumber" json:"idNumber"`
	MaritalStatus string `bson:"maritalStatus" json:"maritalStatus"`
	SpouseID      string `bson:"spouseId,omitempty" json:"spouseId,omitempty"`
}

// Loan loan sub-record of a financing application
type Loan struct {
	VehicleAmount  float64  `bson:"vehicleAmount" json:"vehicleAmount"`
	DownPaymentPct *float64 `bson:"downPaymentPct,omitempty" json:"downPaymentPct,omitempty"`
	TermMonths     *int     `bson:"termMonths,omitempty" json:"termMonths,omitempty"`
}

// Application vehicle-financing application owned by CrediExpress.
// Read-mostly on this side: the partner intake flow creates it and owns
// Status; the CRM only writes CRMStatus (its own shadow of the richer
// pipeline state) plus the terminal Status write-back.
type Application struct {
	OID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID  string             `bson:"nativeId" json:"id"`

	Applicant Applicant `bson:"applicant" json:"applicant"`
	Loan      Loan      `bson:"loan" json:"loan"`

	Status    ApplicationStatus `bson:"status" json:"status"`
	CRMStatus LeadStatus        `bson:"crmStatus,omitempty" json:"crmStatus,omitempty"`

	Score       *float64 `bson:"score,omitempty" json:"score,omitempty"`
	CreditLimit *float64 `bson:"creditLimit,omitempty" json:"creditLimit,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ApplicationCreateRequest partner intake payload (CrediExpress webhook)
type ApplicationCreateRequest struct {
	Applicant struct {
		FullName      string `json:"fullName" binding:"required"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
		IDNumber      string `json:"idNumber" binding:"required"`
		MaritalStatus string `json:"maritalStatus"`
		SpouseID      string `json:"spouseId"`
	} `json:"applicant" binding:"required"`
	Loan struct {
		VehicleAmount  float64  `json:"vehicleAmount"`
		DownPaymentPct *float64 `json:"downPaymentPct"`
		TermMonths     *int     `json:"termMonths"`
	} `json:"loan"`
	Status      ApplicationStatus `json:"status"`
	Score       *float64          `json:"score"`
	CreditLimit *float64          `json:"creditLimit"`
}
