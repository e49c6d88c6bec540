package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nabokov223u/CRM-Originarsa/models"
	"github.com/nabokov223u/CRM-Originarsa/repository"
	"github.com/nabokov223u/CRM-Originarsa/utils"
)

// Login authenticates a CRM user and issues a JWT
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "Parámetros de solicitud inválidos: "+err.Error(), http.StatusBadRequest)
		return
	}

	utils.Logger.Info().Str("email", req.Email).Msg("intento de inicio de sesión")

	usersCollection := repository.Collection(repository.UsersCollection)
	var user models.User
	err := usersCollection.FindOne(c.Request.Context(), bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.ErrorResponse(c, "Usuario o contraseña incorrectos", http.StatusUnauthorized)
		return
	}
	if err != nil {
		utils.Logger.Error().Err(err).Msg("user lookup failed")
		utils.ErrorResponse(c, "Error de base de datos", http.StatusInternalServerError)
		return
	}

	if !user.Activo {
		utils.ErrorResponse(c, "Cuenta desactivada", http.StatusUnauthorized)
		return
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.Logger.Info().Str("email", req.Email).Msg("login rechazado, contraseña incorrecta")
		utils.ErrorResponse(c, "Usuario o contraseña incorrectos", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("token generation failed")
		utils.ErrorResponse(c, "No se pudo generar el token", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(c, models.LoginResponse{Token: token, User: user}, "Inicio de sesión exitoso")
}
