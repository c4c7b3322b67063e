package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/waxsealmail/go-waxseal-server/services"
	"github.com/waxsealmail/go-waxseal-server/store"
	"github.com/waxsealmail/go-waxseal-server/types"
)

type LetterApi struct {
	stores *store.Manager
}

func NewLetterApi(stores *store.Manager) *LetterApi {
	return &LetterApi{stores: stores}
}

// @Summary Update the campaign's letter content
// @Description Replaces the letter fields; placeholder tokens like {{FirstName}} are kept verbatim
// @Tags Letter
// @Accept json
// @Produce json
// @Param input body types.InputLetter true "Letter fields"
// @Success 200 {object} types.Letter
// @Failure 400 {object} api.ApiError "invalid input"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/letter [put]
func (la *LetterApi) UpdateLetter(c *gin.Context) {
	var input types.InputLetter
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid letter payload")
		return
	}

	cs := la.stores.Get(sessionKey(c))
	cs.Update(func(campaign *types.Campaign) {
		campaign.Letter.Subject = input.Subject
		campaign.Letter.Body = input.Body
		campaign.Letter.Closing = input.Closing
		campaign.Letter.Signature = input.Signature
	})
	c.JSON(http.StatusOK, cs.Snapshot().Letter)
}

// @Summary Preview the letter with placeholder tokens substituted
// @Description Renders against the first recipient address, or a sample recipient when the list is empty
// @Tags Letter
// @Produce json
// @Success 200 {object} types.OutputPreview
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/letter/preview [get]
func (la *LetterApi) PreviewLetter(c *gin.Context) {
	snapshot := la.stores.Get(sessionKey(c)).Snapshot()

	data := services.SampleRecipient()
	if len(snapshot.Addresses) > 0 {
		data = services.RecipientTokens(&snapshot.Addresses[0])
	}
	c.JSON(http.StatusOK, services.RenderPreview(&snapshot.Letter, data))
}
