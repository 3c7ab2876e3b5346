package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/protolab/portal-api/internal/core/domain"
	"github.com/protolab/portal-api/internal/core/ports"
)

type ProfileHandler struct {
	authService ports.AuthService
}

func NewProfileHandler(authService ports.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

type updateProfileRequest struct {
	Name        *string `json:"name"`
	CompanyName *string `json:"company_name"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

// Get returns the full current identity.
//
// @Summary      Current identity
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.ResolveIdentity(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update mutates name, company name, and/or email. Omitted fields are left
// untouched.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /me [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), actor.ID, domain.ProfileUpdate{
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Email:       req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
