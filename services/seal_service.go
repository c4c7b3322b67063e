package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/waxsealmail/go-waxseal-server/global"
	"github.com/waxsealmail/go-waxseal-server/types"
	"github.com/waxsealmail/go-waxseal-server/util"
)

// SealService calls the generative-image provider to composite a custom
// wax seal onto the template letter image
type SealService struct {
	restyClient *resty.Client
}

func NewSealService() *SealService {
	client := resty.New().
		SetTimeout(time.Second * 60). // image generation is slow
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &SealService{
		restyClient: client,
	}
}

// GenerateSealComposite sends the uploaded logo and returns the generated
// letter image as a data URL
func (ss *SealService) GenerateSealComposite(ctx context.Context, logoDataURL string) (string, error) {
	endpoint := global.Conf.WaxSeal.SealImage
	if endpoint.URL == "" {
		return "", errors.New("seal image provider is not configured")
	}

	mimeType, content, pErr := util.ParseDataURL(logoDataURL)
	if pErr != nil {
		return "", pErr
	}
	if vErr := util.ValidateStampImage(mimeType, content); vErr != nil {
		return "", vErr
	}

	var out types.OutputSeal
	resp, err := ss.restyClient.R().
		SetContext(ctx).
		SetAuthToken(endpoint.ApiKey).
		SetBody(map[string]interface{}{
			"image": logoDataURL,
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
	if out.Image == "" {
		return "", errors.New("seal image provider returned no image")
	}
	return out.Image, nil
}
