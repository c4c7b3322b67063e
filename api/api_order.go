package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/waxsealmail/go-waxseal-server/metrics"
	"github.com/waxsealmail/go-waxseal-server/services"
	"github.com/waxsealmail/go-waxseal-server/store"
	"github.com/waxsealmail/go-waxseal-server/types"
	"github.com/waxsealmail/go-waxseal-server/util"
)

type OrderApi struct {
	stores          *store.Manager
	checkoutService *services.CheckoutService
	sealService     *services.SealService
	validate        *validator.Validate
}

func NewOrderApi(stores *store.Manager, checkoutService *services.CheckoutService, sealService *services.SealService) *OrderApi {
	return &OrderApi{
		stores:          stores,
		checkoutService: checkoutService,
		sealService:     sealService,
		validate:        validator.New(),
	}
}

// @Summary Start a hosted checkout for the campaign
// @Description Marks the campaign as submitted and returns the payment provider's redirect URL
// @Tags Order
// @Accept json
// @Produce json
// @Param input body types.InputCheckout true "Letter count"
// @Success 200 {object} types.OutputCheckout
// @Failure 400 {object} api.ApiError "invalid input"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Failure 502 {object} api.ApiError "checkout provider failed"
// @Router /api/v1/checkout [post]
func (oa *OrderApi) Checkout(c *gin.Context) {
	var input types.InputCheckout
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid checkout payload")
		return
	}
	if vErr := oa.validate.Struct(&input); vErr != nil {
		msg := ValidatorErrorToUser(vErr.(validator.ValidationErrors))
		ApiErrorf(c, http.StatusBadRequest, msg)
		return
	}

	url, err := oa.checkoutService.CreateCheckoutSession(c.Request.Context(), input.LetterCount, input.IsSample)
	if err != nil {
		ApiErrorf(c, http.StatusBadGateway, "checkout provider failed")
		return
	}

	oa.stores.Get(sessionKey(c)).Update(func(campaign *types.Campaign) {
		campaign.Status = types.CampaignStatusSubmitted
		campaign.IsSample = input.IsSample
	})
	metrics.CheckoutRequestsMetricsCount.Inc()

	c.JSON(http.StatusOK, types.OutputCheckout{URL: url})
}

// @Summary Generate the sealed letter image from an uploaded logo
// @Description Sends the logo to the image provider and stores the composited letter on the campaign
// @Tags Order
// @Accept json
// @Produce json
// @Param input body types.InputSeal true "Logo as a data URL"
// @Success 200 {object} types.OutputSeal
// @Failure 400 {object} api.ApiError "invalid input"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Failure 502 {object} api.ApiError "seal image provider failed"
// @Router /api/v1/seal [post]
func (oa *OrderApi) GenerateSeal(c *gin.Context) {
	var input types.InputSeal
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid seal payload")
		return
	}
	if vErr := oa.validate.Struct(&input); vErr != nil {
		msg := ValidatorErrorToUser(vErr.(validator.ValidationErrors))
		ApiErrorf(c, http.StatusBadRequest, msg)
		return
	}
	if !util.IsDataURL(input.Image) {
		ApiErrorf(c, http.StatusBadRequest, "image must be a data URL")
		return
	}

	composited, err := oa.sealService.GenerateSealComposite(c.Request.Context(), input.Image)
	if err != nil {
		ApiErrorf(c, http.StatusBadGateway, "seal image provider failed")
		return
	}

	oa.stores.Get(sessionKey(c)).Update(func(campaign *types.Campaign) {
		campaign.SealLetterImage = composited
		campaign.SealLetterURL = ""
	})
	metrics.SealRequestsMetricsCount.Inc()

	c.JSON(http.StatusOK, types.OutputSeal{Image: composited})
}
