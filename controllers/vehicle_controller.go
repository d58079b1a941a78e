package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autolot-api/middleware"
	"autolot-api/repositories"
	"autolot-api/schemas"
	"autolot-api/utils"
)

type VehicleController struct {
	vehicles *repositories.VehicleRepository
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{vehicles: repositories.NewVehicleRepository(db)}
}

// CreateVehicle handles POST /vehicles: persists the vehicle and its image
// list as one aggregate bound to the authenticated owner.
func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	ownerID := c.GetString(middleware.PrincipalKey)

	var req schemas.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if violations := schemas.Validate(&req); violations != nil {
		utils.SendValidationErrors(c, violations)
		return
	}

	vehicle, err := vc.vehicles.Create(ownerID, req.Vehicle(), req.ImageList())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// ListVehicles handles GET /vehicles with pagination and optional
// brand/model/year filters, always scoped to the authenticated owner.
func (vc *VehicleController) ListVehicles(c *gin.Context) {
	ownerID := c.GetString(middleware.PrincipalKey)

	query, violations := schemas.ParseVehicleQuery(c.Request.URL.Query())
	if violations != nil {
		utils.SendValidationErrors(c, violations)
		return
	}

	vehicles, total, err := vc.vehicles.List(ownerID, query.Filter, query.Page, query.Limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SendPaginated(c, vehicles, query.Page, query.Limit, total)
}

// GetVehicle handles GET /vehicles/:id.
func (vc *VehicleController) GetVehicle(c *gin.Context) {
	ownerID := c.GetString(middleware.PrincipalKey)

	vehicle, err := vc.vehicles.GetOne(c.Param("id"), ownerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle handles PUT /vehicles/:id. Absent fields keep their stored
// values; the images field is tri-state (absent = keep, empty = clear,
// populated = replace).
func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	ownerID := c.GetString(middleware.PrincipalKey)

	var req schemas.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if violations := schemas.Validate(&req); violations != nil {
		utils.SendValidationErrors(c, violations)
		return
	}

	vehicle, err := vc.vehicles.Update(c.Param("id"), ownerID, req.Patch())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /vehicles/:id.
func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	ownerID := c.GetString(middleware.PrincipalKey)

	vehicle, err := vc.vehicles.Delete(c.Param("id"), ownerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Vehicle %s %s deleted successfully", vehicle.Brand, vehicle.Model),
	})
}
