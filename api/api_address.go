package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/waxsealmail/go-waxseal-server/ingest"
	"github.com/waxsealmail/go-waxseal-server/metrics"
	"github.com/waxsealmail/go-waxseal-server/store"
	"github.com/waxsealmail/go-waxseal-server/types"
)

type AddressApi struct {
	stores   *store.Manager
	validate *validator.Validate
}

func NewAddressApi(stores *store.Manager) *AddressApi {
	return &AddressApi{
		stores:   stores,
		validate: validator.New(),
	}
}

// @Summary Import recipient addresses from a CSV file
// @Description Parses the uploaded CSV text, normalizes every row to a mailing address and replaces the campaign's recipient list
// @Tags Addresses
// @Accept json
// @Produce json
// @Param input body types.InputCsvImport true "Raw CSV text"
// @Success 200 {object} types.OutputImport
// @Failure 400 {object} api.ApiError "invalid or unusable CSV"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/addresses/import [post]
func (aa *AddressApi) ImportCsv(c *gin.Context) {
	var input types.InputCsvImport
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid import payload")
		return
	}
	if vErr := aa.validate.Struct(&input); vErr != nil {
		msg := ValidatorErrorToUser(vErr.(validator.ValidationErrors))
		ApiErrorf(c, http.StatusBadRequest, msg)
		return
	}

	result, err := ingest.Parse(input.Csv)
	if err != nil {
		ApiErrorf(c, http.StatusBadRequest, err.Error())
		return
	}

	cs := aa.stores.Get(sessionKey(c))
	cs.Update(func(campaign *types.Campaign) {
		campaign.Addresses = result.Addresses
		campaign.RecipientCount = len(result.Addresses)
	})

	metrics.AddressesIngestedMetricsCount.Add(float64(len(result.Addresses)))
	metrics.AddressesRejectedMetricsCount.Add(float64(len(result.Rejections)))

	c.JSON(http.StatusOK, types.OutputImport{
		Message:   fmt.Sprintf("Successfully loaded %d addresses.", len(result.Addresses)),
		Count:     len(result.Addresses),
		Skipped:   len(result.Rejections),
		Headers:   result.Headers,
		Addresses: result.Addresses,
	})
}

// @Summary Add one recipient address from the manual entry form
// @Tags Addresses
// @Accept json
// @Produce json
// @Param input body types.InputManualAddress true "Address form fields"
// @Success 200 {object} types.OutputAddressList
// @Failure 400 {object} api.ApiError "Please fill in all required fields."
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/addresses [post]
func (aa *AddressApi) AddManual(c *gin.Context) {
	var input types.InputManualAddress
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid address payload")
		return
	}

	address, err := ingest.ManualAddress(&input)
	if err != nil {
		ApiErrorf(c, http.StatusBadRequest, err.Error())
		return
	}

	cs := aa.stores.Get(sessionKey(c))
	cs.Update(func(campaign *types.Campaign) {
		campaign.Addresses = append(campaign.Addresses, *address)
		campaign.RecipientCount = len(campaign.Addresses)
	})
	metrics.AddressesIngestedMetricsCount.Inc()

	snapshot := cs.Snapshot()
	c.JSON(http.StatusOK, types.OutputAddressList{
		Count:     len(snapshot.Addresses),
		Addresses: snapshot.Addresses,
	})
}

// @Summary List the campaign's recipient addresses
// @Tags Addresses
// @Produce json
// @Success 200 {object} types.OutputAddressList
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/addresses [get]
func (aa *AddressApi) ListAddresses(c *gin.Context) {
	snapshot := aa.stores.Get(sessionKey(c)).Snapshot()
	c.JSON(http.StatusOK, types.OutputAddressList{
		Count:     len(snapshot.Addresses),
		Addresses: snapshot.Addresses,
	})
}

// @Summary Remove one recipient address by list position
// @Tags Addresses
// @Produce json
// @Param index path int true "Zero-based position in the list"
// @Success 200 {object} types.OutputAddressList
// @Failure 400 {object} api.ApiError "index out of range"
// @Failure 429 {object} api.ApiError "rate limit exceeded"
// @Router /api/v1/addresses/{index} [delete]
func (aa *AddressApi) RemoveAddress(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid address index")
		return
	}

	cs := aa.stores.Get(sessionKey(c))
	outOfRange := false
	cs.Update(func(campaign *types.Campaign) {
		if index < 0 || index >= len(campaign.Addresses) {
			outOfRange = true
			return
		}
		campaign.Addresses = append(campaign.Addresses[:index], campaign.Addresses[index+1:]...)
		campaign.RecipientCount = len(campaign.Addresses)
	})
	if outOfRange {
		ApiErrorf(c, http.StatusBadRequest, "address index out of range")
		return
	}

	snapshot := cs.Snapshot()
	c.JSON(http.StatusOK, types.OutputAddressList{
		Count:     len(snapshot.Addresses),
		Addresses: snapshot.Addresses,
	})
}
