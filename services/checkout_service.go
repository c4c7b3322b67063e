package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/waxsealmail/go-waxseal-server/global"
	"github.com/waxsealmail/go-waxseal-server/types"
)

// CheckoutService calls the external payment provider. The campaign state
// is never touched here, so a failed checkout leaves the draft intact.
type CheckoutService struct {
	restyClient *resty.Client
}

func NewCheckoutService() *CheckoutService {
	client := resty.New().
		SetTimeout(time.Second * 15).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &CheckoutService{
		restyClient: client,
	}
}

// CreateCheckoutSession requests a hosted checkout for the given letter
// count and returns the redirect URL
func (cs *CheckoutService) CreateCheckoutSession(ctx context.Context, letterCount int, isSample bool) (string, error) {
	endpoint := global.Conf.WaxSeal.Checkout
	if endpoint.URL == "" {
		return "", errors.New("checkout provider is not configured")
	}
	if letterCount <= 0 {
		return "", types.ErrBadRequest
	}

	var out types.OutputCheckout
	resp, err := cs.restyClient.R().
		SetContext(ctx).
		SetAuthToken(endpoint.ApiKey).
		SetBody(map[string]interface{}{
			"letterCount": letterCount,
			"isSample":    isSample,
		}).
		SetResult(&out).
		Post(endpoint.URL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		if hErr := handleError(resp.Body()); hErr != nil {
			return "", hErr
		}
		return "", types.ErrInternal
	}
	if out.URL == "" {
		return "", errors.New("checkout provider returned no redirect url")
	}
	return out.URL, nil
}
