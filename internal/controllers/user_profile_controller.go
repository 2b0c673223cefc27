package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack-be/internal/middleware"
	"fintrack-be/internal/models"
	"fintrack-be/internal/service"
)

// UserProfileController serves the caller's own profile
type UserProfileController struct {
	profileService service.UserProfileService
}

func NewUserProfileController(profileService service.UserProfileService) *UserProfileController {
	return &UserProfileController{profileService: profileService}
}

// GetProfile handles GET /api/v1/profile
func (pc *UserProfileController) GetProfile(c *gin.Context) {
	profile, err := pc.profileService.GetProfile(c.Request.Context(), middleware.CallerFrom(c))
	respond(c, http.StatusOK, profile, err)
}

// AddProfile handles POST /api/v1/profile
func (pc *UserProfileController) AddProfile(c *gin.Context) {
	var req models.UserProfileAddDTO
	if !bindJSON(c, &req) {
		return
	}
	profile, err := pc.profileService.AddProfile(c.Request.Context(), middleware.CallerFrom(c), req)
	respond(c, http.StatusCreated, profile, err)
}

// UpdateProfile handles PUT /api/v1/profile/:id
func (pc *UserProfileController) UpdateProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.UserProfileUpdateDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id

	profile, err := pc.profileService.UpdateProfile(c.Request.Context(), middleware.CallerFrom(c), req)
	respond(c, http.StatusOK, profile, err)
}

// DeleteProfile handles DELETE /api/v1/profile/:id
func (pc *UserProfileController) DeleteProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := pc.profileService.DeleteProfile(c.Request.Context(), middleware.CallerFrom(c), id)
	respond(c, http.StatusOK, nil, err)
}
