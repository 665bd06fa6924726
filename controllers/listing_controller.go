package controllers

import (
	"errors"
	"io"
	"net/http"

	"estate-api/dto"
	"estate-api/middleware"
	"estate-api/services"
	"estate-api/utils"

	"github.com/gin-gonic/gin"
)

// ListingController maneja los endpoints de /api/listings
type ListingController struct {
	service services.ListingService
}

// NewListingController crea una nueva instancia del controlador
func NewListingController(service services.ListingService) *ListingController {
	return &ListingController{service: service}
}

// CreateListing maneja POST /api/listings
func (ctrl *ListingController) CreateListing(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(utils.NewValidationError(utils.MsgInvalidInput))
		return
	}

	listing, err := ctrl.service.CreateListing(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// UpdateListing maneja PUT /api/listings/:listingId
func (ctrl *ListingController) UpdateListing(c *gin.Context) {
	// Un body vacío es un patch sin cambios
	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(utils.NewValidationError(utils.MsgInvalidInput))
		return
	}

	listing, err := ctrl.service.UpdateListing(c.Request.Context(), c.Param("listingId"), req, middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// DeleteListing maneja DELETE /api/listings/:listingId
func (ctrl *ListingController) DeleteListing(c *gin.Context) {
	if err := ctrl.service.DeleteListing(c.Request.Context(), c.Param("listingId"), middleware.UserID(c)); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Listing has been deleted!",
	})
}

// GetListing maneja GET /api/listings/:listingId (pública)
func (ctrl *ListingController) GetListing(c *gin.Context) {
	listing, err := ctrl.service.GetListing(c.Request.Context(), c.Param("listingId"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// GetUserListings maneja GET /api/listings/user/:userId
func (ctrl *ListingController) GetUserListings(c *gin.Context) {
	listings, err := ctrl.service.GetUserListings(c.Request.Context(), c.Param("userId"), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// GetListings maneja GET /api/listings?searchTerm=&type=&offer=...
func (ctrl *ListingController) GetListings(c *gin.Context) {
	var params dto.ListingSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.Error(utils.NewValidationError(utils.MsgInvalidInput))
		return
	}

	listings, err := ctrl.service.SearchListings(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, listings)
}
