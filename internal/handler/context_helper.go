package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-wizard-api/internal/middleware"
	"github.com/noah-isme/timetable-wizard-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func ownerFromContext(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil {
		return claims.UserID
	}
	return ""
}

func actorFromContext(c *gin.Context) models.Actor {
	if claims := claimsFromContext(c); claims != nil {
		return models.Actor{UserID: claims.UserID, Role: claims.Role}
	}
	return models.Actor{}
}
