package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/nabokov223u/CRM-Originarsa/models"
	"github.com/nabokov223u/CRM-Originarsa/utils"
)

// GetLeadActivities returns the activity timeline of a lead, newest first
func GetLeadActivities(c *gin.Context) {
	leadID := c.Param("id")

	activities, err := activityRepo.ListByLead(c.Request.Context(), leadID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, activities, "")
}

// CreateActivity records a manual activity on a lead
func CreateActivity(c *gin.Context) {
	var req models.ActivityCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("Datos de actividad inválidos: "+err.Error()))
		return
	}

	userName := ""
	if user, err := utils.GetUser(c); err == nil {
		userName = user.Username
	}

	activity := models.Activity{
		LeadID:      req.LeadID,
		Tipo:        req.Tipo,
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Fecha:       req.Fecha,
		UserName:    userName,
	}

	id, err := activityRepo.Insert(c.Request.Context(), activity)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"id": id}, "Actividad registrada", 201)
}
