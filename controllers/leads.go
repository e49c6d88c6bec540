package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/nabokov223u/CRM-Originarsa/models"
	"github.com/nabokov223u/CRM-Originarsa/service"
	"github.com/nabokov223u/CRM-Originarsa/utils"
)

// GetLeads returns the unified list: CRM leads plus every CrediExpress
// application projected into lead shape, CRM block first
func GetLeads(c *gin.Context) {
	leads, err := leadService.GetAllLeads(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, leads, "")
}

// GetLead returns a single lead from either origin
func GetLead(c *gin.Context) {
	id := c.Param("id")

	lead, err := leadService.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, lead, "")
}

// CreateLead creates a CRM-native lead
func CreateLead(c *gin.Context) {
	var req models.LeadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("Datos de lead inválidos: "+err.Error()))
		return
	}

	if req.Status != "" && !req.Status.IsValid() {
		utils.HandleError(c, utils.CreateBadRequestError("Estado de lead inválido: "+string(req.Status)))
		return
	}

	nombres, apellidos := service.SplitFullName(req.FullName)
	lead := models.Lead{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		IDNumber:       req.IDNumber,
		MaritalStatus:  req.MaritalStatus,
		VehicleAmount:  req.VehicleAmount,
		DownPaymentPct: req.DownPaymentPct,
		TermMonths:     req.TermMonths,
		Status:         req.Status,
		Prioridad:      req.Prioridad,
		Fuente:         req.Fuente,
		AsignadoA:      req.AsignadoA,
		Observaciones:  req.Observaciones,
		Nombres:        nombres,
		Apellidos:      apellidos,
		Telefono:       req.Phone,
		Cedula:         req.IDNumber,
	}

	id, err := leadService.Create(c.Request.Context(), lead)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"id": id}, "Lead creado", 201)
}

// UpdateLead applies a partial update to a CRM-native lead. Leads that
// live in CrediExpress are read-only from here.
func UpdateLead(c *gin.Context) {
	id := c.Param("id")

	var patch models.LeadPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("Datos de actualización inválidos: "+err.Error()))
		return
	}

	if err := leadService.Update(c.Request.Context(), id, patch); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "Lead actualizado")
}

// DeleteLead removes a CRM-native lead
func DeleteLead(c *gin.Context) {
	id := c.Param("id")

	if err := leadService.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "Lead eliminado")
}

// UpdateLeadStatus moves a lead through the pipeline. Works for both
// origins; terminal states are reflected back to CrediExpress.
func UpdateLeadStatus(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("Datos de estado inválidos: "+err.Error()))
		return
	}

	actor := "sistema"
	if user, err := utils.GetUser(c); err == nil && user.Username != "" {
		actor = user.Username
	}

	if err := statusService.UpdateLeadStatus(c.Request.Context(), id, req.Status, actor); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "Estado actualizado")
}
