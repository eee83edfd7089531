package handlers

import (
	"net/http"
	"strings"

	"rental-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

type userMaintenancePayload struct {
	Role   string `json:"role" binding:"omitempty,oneof=requester staff admin"`
	Status string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// GET /api/users?q=budi
func GetUsers(c *gin.Context) {
	list, err := repositories.UserRepository{}.ListUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	u, err := repositories.UserRepository{}.GetUserByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}

	var payload userMaintenancePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if payload.Role == "" && payload.Status == "" {
		RespondError(c, http.StatusBadRequest, "tidak ada field yang diubah", nil)
		return
	}

	if err := (repositories.UserRepository{}).UpdateUser(c.Request.Context(), id, payload.Role, payload.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user berhasil diupdate"})
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	if err := (repositories.UserRepository{}).DeleteUser(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user berhasil dihapus"})
}
