package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nabokov223u/CRM-Originarsa/models"
	"github.com/nabokov223u/CRM-Originarsa/queue"
	"github.com/nabokov223u/CRM-Originarsa/utils"
)

// GetApplications returns every CrediExpress application in raw form
func GetApplications(c *gin.Context) {
	apps, err := applicationRepo.FetchAll(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, apps, "")
}

// CreateApplication is the CrediExpress intake webhook. It stores the
// application and publishes a notification event; a broker failure is
// logged but never rejects the intake.
func CreateApplication(c *gin.Context) {
	var req models.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("Solicitud inválida: "+err.Error()))
		return
	}

	status := req.Status
	if status == "" {
		status = models.ApplicationStatusPending
	}
	if status != models.ApplicationStatusPending &&
		status != models.ApplicationStatusApproved &&
		status != models.ApplicationStatusRejected {
		utils.HandleError(c, utils.CreateBadRequestError("Estado de solicitud inválido: "+string(status)))
		return
	}

	app := models.Application{
		ID: uuid.NewString(),
		Applicant: models.Applicant{
			FullName:      req.Applicant.FullName,
			Email:         req.Applicant.Email,
			Phone:         req.Applicant.Phone,
			IDNumber:      req.Applicant.IDNumber,
			MaritalStatus: req.Applicant.MaritalStatus,
			SpouseID:      req.Applicant.SpouseID,
		},
		Loan: models.Loan{
			VehicleAmount:  req.Loan.VehicleAmount,
			DownPaymentPct: req.Loan.DownPaymentPct,
			TermMonths:     req.Loan.TermMonths,
		},
		Status:      status,
		Score:       req.Score,
		CreditLimit: req.CreditLimit,
	}

	nativeID, err := applicationRepo.Insert(c.Request.Context(), app)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if producer != nil {
		payload := queue.ApplicationCreatedPayload{
			NativeID:       nativeID,
			FullName:       app.Applicant.FullName,
			Email:          app.Applicant.Email,
			Phone:          app.Applicant.Phone,
			IDNumber:       app.Applicant.IDNumber,
			VehicleAmount:  app.Loan.VehicleAmount,
			DownPaymentPct: app.Loan.DownPaymentPct,
			TermMonths:     app.Loan.TermMonths,
			Status:         string(app.Status),
		}
		if err := producer.PublishApplicationCreated(c.Request.Context(), payload); err != nil {
			utils.LogError(err, map[string]interface{}{
				"application": nativeID,
			}, "evento de solicitud no publicado")
		}
	}

	utils.SuccessResponse(c, gin.H{"id": nativeID}, "Solicitud recibida", 201)
}
