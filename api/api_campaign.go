package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/waxsealmail/go-waxseal-server/services"
	"github.com/waxsealmail/go-waxseal-server/store"
	"github.com/waxsealmail/go-waxseal-server/types"
)

type CampaignApi struct {
	stores          *store.Manager
	campaignService *services.CampaignService
	sessionService  *services.SessionService
	validate        *validator.Validate
}

func NewCampaignApi(stores *store.Manager, campaignService *services.CampaignService, sessionService *services.SessionService) *CampaignApi {
	return &CampaignApi{
		stores:          stores,
		campaignService: campaignService,
		sessionService:  sessionService,
		validate:        validator.New(),
	}
}

func (ca *CampaignApi) storeFor(c *gin.Context) *store.CampaignStore {
	return ca.stores.Get(sessionKey(c))
}

// @Summary Get the session's current campaign
// @Description Returns the in-progress campaign document for the calling session
// @Tags Campaign
// @Success 200 {object} types.Campaign
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Produce json
// @Router /api/v1/campaign [get]
func (ca *CampaignApi) GetCampaign(c *gin.Context) {
	c.JSON(http.StatusOK, ca.storeFor(c).Snapshot())
}

// @Summary Update the session's campaign
// @Description Merges the posted fields into the campaign; the write to the document store is debounced
// @Tags Campaign
// @Accept json
// @Produce json
// @Param campaign body types.Campaign true "Campaign fields"
// @Success 200 {object} types.Campaign
// @Failure 400 {object} api.ApiError "invalid input"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/campaign [put]
func (ca *CampaignApi) UpdateCampaign(c *gin.Context) {
	var input types.Campaign
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid campaign payload")
		return
	}
	cs := ca.storeFor(c)
	cs.Update(func(campaign *types.Campaign) {
		if input.Name != "" {
			campaign.Name = input.Name
		}
		if input.CurrentStep > 0 {
			campaign.CurrentStep = input.CurrentStep
		}
		if input.StampImage != "" {
			campaign.StampImage = input.StampImage
		}
		if input.ReturnAddress != (types.ReturnAddress{}) {
			campaign.ReturnAddress = input.ReturnAddress
		}
		campaign.IsSample = input.IsSample
	})
	c.JSON(http.StatusOK, cs.Snapshot())
}

// @Summary Report the client's UI location
// @Description Autosave only runs while the client is on a campaign editing path
// @Tags Campaign
// @Accept json
// @Param location body types.InputLocation true "Current path"
// @Success 200 {object} types.OK
// @Failure 400 {object} api.ApiError "invalid input"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/campaign/location [put]
func (ca *CampaignApi) SetLocation(c *gin.Context) {
	var input types.InputLocation
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid location payload")
		return
	}
	if vErr := ca.validate.Struct(&input); vErr != nil {
		msg := ValidatorErrorToUser(vErr.(validator.ValidationErrors))
		ApiErrorf(c, http.StatusBadRequest, msg)
		return
	}
	ca.storeFor(c).SetLocation(input.Path)
	c.JSON(http.StatusOK, types.OK{IsOK: true})
}

// @Summary Discard the session's campaign
// @Description Clears the working document and both local snapshot slots; the stored document is not deleted
// @Tags Campaign
// @Success 200 {object} types.OK
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/campaign [delete]
func (ca *CampaignApi) ResetCampaign(c *gin.Context) {
	ca.storeFor(c).Reset()
	c.JSON(http.StatusOK, types.OK{IsOK: true})
}

// @Summary List a user's submitted campaigns
// @Tags Campaign
// @Produce json
// @Param userId query string true "User ID"
// @Param status query string false "Campaign status filter"
// @Success 200 {array} types.Campaign
// @Failure 400 {object} api.ApiError "missing userId"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Failure 500 {object} api.ApiError "failed to list campaigns"
// @Router /api/v1/campaigns [get]
func (ca *CampaignApi) ListCampaigns(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		ApiErrorf(c, http.StatusBadRequest, "userId is required")
		return
	}
	campaigns, err := ca.campaignService.ListCampaigns(c.Request.Context(), c.Query("status"), userID)
	if err != nil {
		ApiErrorf(c, http.StatusInternalServerError, "failed to list campaigns")
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// @Summary Claim a session's campaigns for a signed-in user
// @Description Queues a background sweep that stamps the user ID onto every campaign created under the anonymous session
// @Tags Campaign
// @Accept json
// @Produce json
// @Param input body types.InputAssociate true "Session and user IDs"
// @Success 202 {object} types.OutputAssociate
// @Failure 400 {object} api.ApiError "invalid input"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Failure 500 {object} api.ApiError "failed to queue association"
// @Router /api/v1/campaigns/associate [post]
func (ca *CampaignApi) AssociateCampaigns(c *gin.Context) {
	var input types.InputAssociate
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid association payload")
		return
	}
	if vErr := ca.validate.Struct(&input); vErr != nil {
		msg := ValidatorErrorToUser(vErr.(validator.ValidationErrors))
		ApiErrorf(c, http.StatusBadRequest, msg)
		return
	}
	if err := ca.campaignService.EnqueueAssociation(input.SessionID, input.UserID); err != nil {
		ApiErrorf(c, http.StatusInternalServerError, "failed to queue association")
		return
	}
	c.JSON(http.StatusAccepted, types.OutputAssociate{Queued: true})
}

// @Summary Create a campaign document
// @Description Stores a new draft directly, bypassing the debounced session store
// @Tags Campaign
// @Accept json
// @Produce json
// @Param campaign body types.Campaign true "Campaign"
// @Success 201 {object} types.Campaign
// @Failure 400 {object} api.ApiError "invalid input"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Failure 500 {object} api.ApiError "failed to create campaign"
// @Router /api/v1/campaigns [post]
func (ca *CampaignApi) CreateCampaign(c *gin.Context) {
	var input types.Campaign
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid campaign payload")
		return
	}
	if _, err := ca.campaignService.CreateCampaign(c.Request.Context(), &input); err != nil {
		ApiErrorf(c, http.StatusInternalServerError, "failed to create campaign")
		return
	}
	c.JSON(http.StatusCreated, input)
}

// @Summary Get a campaign document by ID
// @Tags Campaign
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} types.Campaign
// @Failure 404 {object} api.ApiError "campaign not found"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/campaigns/{id} [get]
func (ca *CampaignApi) GetCampaignByID(c *gin.Context) {
	campaign, err := ca.campaignService.GetCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == types.ErrNotFound {
			ApiErrorf(c, http.StatusNotFound, "campaign not found")
			return
		}
		ApiErrorf(c, http.StatusInternalServerError, "failed to read campaign")
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// @Summary Merge updates into a campaign document
// @Tags Campaign
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param campaign body types.Campaign true "Campaign fields"
// @Success 200 {object} types.Campaign
// @Failure 400 {object} api.ApiError "invalid input"
// @Failure 404 {object} api.ApiError "campaign not found"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/campaigns/{id} [put]
func (ca *CampaignApi) UpdateCampaignByID(c *gin.Context) {
	var input types.Campaign
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid campaign payload")
		return
	}
	id := c.Param("id")
	if err := ca.campaignService.UpdateCampaign(c.Request.Context(), id, &input); err != nil {
		if err == types.ErrNotFound {
			ApiErrorf(c, http.StatusNotFound, "campaign not found")
			return
		}
		ApiErrorf(c, http.StatusInternalServerError, "failed to update campaign")
		return
	}
	c.JSON(http.StatusOK, input)
}

// @Summary Delete a campaign document and its stored images
// @Tags Campaign
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} types.OK
// @Failure 404 {object} api.ApiError "campaign not found"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/campaigns/{id} [delete]
func (ca *CampaignApi) DeleteCampaign(c *gin.Context) {
	if err := ca.campaignService.DeleteCampaign(c.Request.Context(), c.Param("id")); err != nil {
		if err == types.ErrNotFound {
			ApiErrorf(c, http.StatusNotFound, "campaign not found")
			return
		}
		ApiErrorf(c, http.StatusInternalServerError, "failed to delete campaign")
		return
	}
	c.JSON(http.StatusOK, types.OK{IsOK: true})
}

// @Summary Get or create the anonymous session ID
// @Tags Campaign
// @Produce json
// @Success 200 {object} types.OutputSession
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/session [get]
func (ca *CampaignApi) GetSession(c *gin.Context) {
	id, err := ca.sessionService.GetOrCreate(c.Request.Context())
	if err != nil {
		ApiErrorf(c, http.StatusInternalServerError, "failed to resolve session")
		return
	}
	c.JSON(http.StatusOK, types.OutputSession{SessionID: id})
}
