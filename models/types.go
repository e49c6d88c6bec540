package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole advisor role enumeration
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleGerente UserRole = "gerente"
	UserRoleAsesor  UserRole = "asesor"
)

// User advisor account
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // never returned
	Role      UserRole           `bson:"role" json:"role"`
	Activo    bool               `bson:"activo" json:"activo"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Request/response structures
type (
	// LoginRequest login request
	LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse login response
	LoginResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
)
