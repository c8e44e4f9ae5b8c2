package v1

import (
	"net/http"

	"github.com/churchops/backend/internal/httputil"
	"github.com/churchops/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterDonationRoutes registers the routes for donations.
func RegisterDonationRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsDonations)
		r.GET("", GetDonations)
		r.POST("", CreateDonation)
	}
	{
		r.OPTIONS("/total", OptionsDonationTotal)
		r.GET("/total", GetDonationTotal)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Donations
// @Success		204
// @Router			/v1/donations [options]
func OptionsDonations(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Donations
// @Success		204
// @Router			/v1/donations/total [options]
func OptionsDonationTotal(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Create donation
// @Description	Records a donation entry. Donation income drives next month's budget allocation
// @Tags			Donations
// @Accept			json
// @Produce		json
// @Success		201			{object}	DonationCreateResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			donation	body		DonationEditable	true	"Donation"
// @Router			/v1/donations [post]
func CreateDonation(c *gin.Context) {
	var data DonationEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	donation := data.model()
	err = models.DB.Create(&donation).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusCreated, DonationCreateResponse{
		Msg:      "Donation entry added successfully",
		Donation: newDonation(donation),
	})
}

// @Summary		List donations
// @Description	Returns all donations, newest first
// @Tags			Donations
// @Produce		json
// @Success		200	{object}	DonationListResponse
// @Failure		500	{object}	httpError
// @Router			/v1/donations [get]
func GetDonations(c *gin.Context) {
	donations, err := models.Donations()
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	list := make([]Donation, 0, len(donations))
	for _, donation := range donations {
		list = append(list, newDonation(donation))
	}

	c.JSON(http.StatusOK, DonationListResponse{list})
}

// @Summary		Get donation total
// @Description	Returns the all-time donation total
// @Tags			Donations
// @Produce		json
// @Success		200	{object}	DonationTotalResponse
// @Failure		500	{object}	httpError
// @Router			/v1/donations/total [get]
func GetDonationTotal(c *gin.Context) {
	total, err := models.DonationTotal()
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, DonationTotalResponse{total})
}
