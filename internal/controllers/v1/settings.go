package v1

import (
	"errors"
	"net/http"

	"github.com/churchops/backend/internal/httputil"
	"github.com/churchops/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// defaultUpdatedBy is recorded when a client does not identify itself.
const defaultUpdatedBy = "Admin"

// RegisterSettingsRoutes registers the routes for the budget settings.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsSettings)
		r.GET("", GetSettings)
		r.PUT("", UpdateSettings)
	}
	{
		r.OPTIONS("/reset", OptionsSettingsReset)
		r.POST("/reset", ResetSettings)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/budget-settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/budget-settings/reset [options]
func OptionsSettingsReset(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Get budget settings
// @Description	Returns the active budget head configuration, creating the default set on first call
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		500	{object}	httpError
// @Router			/v1/budget-settings [get]
func GetSettings(c *gin.Context) {
	settings, err := models.ActiveSettings()
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{newSettings(settings)})
}

// @Summary		Update budget settings
// @Description	Replaces the active budget head configuration. Percentages must sum to 100
// @Tags			Settings
// @Accept			json
// @Produce		json
// @Success		200		{object}	SettingsUpdateResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			settings	body		SettingsEditable	true	"Settings"
// @Router			/v1/budget-settings [put]
func UpdateSettings(c *gin.Context) {
	var data SettingsEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	if data.UpdatedBy == "" {
		data.UpdatedBy = defaultUpdatedBy
	}

	settings, err := models.ReplaceSettings(data.model(), data.UpdatedBy)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, SettingsUpdateResponse{
		Msg:      "Budget settings updated successfully",
		Settings: newSettings(settings),
	})
}

// @Summary		Reset budget settings
// @Description	Replaces the active budget head configuration with the default set
// @Tags			Settings
// @Accept			json
// @Produce		json
// @Success		200	{object}	SettingsUpdateResponse
// @Failure		500	{object}	httpError
// @Router			/v1/budget-settings/reset [post]
func ResetSettings(c *gin.Context) {
	// The body is optional and only carries the author of the reset.
	var data struct {
		UpdatedBy string `json:"updatedBy"`
	}
	err := httputil.BindData(c, &data)
	if err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	if data.UpdatedBy == "" {
		data.UpdatedBy = defaultUpdatedBy
	}

	settings, err := models.ResetSettings(data.UpdatedBy)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, SettingsUpdateResponse{
		Msg:      "Budget settings reset to default",
		Settings: newSettings(settings),
	})
}
