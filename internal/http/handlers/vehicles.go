package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"rental-backend/internal/domain/models"
	"rental-backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

type vehiclePayload struct {
	Make        string `json:"make" binding:"required"`
	Model       string `json:"model" binding:"required"`
	Category    string `json:"category"`
	FuelType    string `json:"fuelType"`
	Seats       int    `json:"seats" binding:"omitempty,min=1"`
	PricePerDay int64  `json:"pricePerDay" binding:"required,min=1"`
	Available   *bool  `json:"available"`
	ImageRef    string `json:"imageRef"`
}

// GET /api/vehicles?q=avanza&category=mpv&available=1&page=1&limit=50
func GetVehicles(c *gin.Context) {
	filter := repositories.VehicleFilter{
		Query:         strings.TrimSpace(c.Query("q")),
		Category:      strings.TrimSpace(c.Query("category")),
		AvailableOnly: c.Query("available") == "1" || c.Query("available") == "true",
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if filter.Page > 0 && filter.Limit == 0 {
		filter.Limit = 50
	}

	list, err := repositories.VehicleRepository{}.ListVehicles(c.Request.Context(), filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/vehicles/:id
func GetVehicleByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	v, err := repositories.VehicleRepository{}.GetVehicleByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var payload vehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	now := time.Now()
	v := models.Vehicle{
		ID:          uuid.NewString(),
		Make:        strings.TrimSpace(payload.Make),
		Model:       strings.TrimSpace(payload.Model),
		Category:    strings.TrimSpace(payload.Category),
		FuelType:    strings.TrimSpace(payload.FuelType),
		Seats:       payload.Seats,
		PricePerDay: payload.PricePerDay,
		Available:   true,
		ImageRef:    strings.TrimSpace(payload.ImageRef),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if payload.Available != nil {
		v.Available = *payload.Available
	}

	if err := (repositories.VehicleRepository{}).CreateVehicle(c.Request.Context(), v); err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			RespondError(c, http.StatusConflict, "kendaraan sudah terdaftar (duplikat)", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "kendaraan berhasil ditambahkan", "id": v.ID})
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}

	var payload vehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	repo := repositories.VehicleRepository{}
	current, err := repo.GetVehicleByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	current.Make = strings.TrimSpace(payload.Make)
	current.Model = strings.TrimSpace(payload.Model)
	current.Category = strings.TrimSpace(payload.Category)
	current.FuelType = strings.TrimSpace(payload.FuelType)
	current.Seats = payload.Seats
	current.PricePerDay = payload.PricePerDay
	current.ImageRef = strings.TrimSpace(payload.ImageRef)
	if payload.Available != nil {
		current.Available = *payload.Available
	}
	current.UpdatedAt = time.Now()

	if err := repo.UpdateVehicle(c.Request.Context(), current); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kendaraan berhasil diupdate"})
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return
	}
	if err := (repositories.VehicleRepository{}).DeleteVehicle(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kendaraan berhasil dihapus"})
}
