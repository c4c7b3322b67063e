package services

import (
	"encoding/json"
	"errors"

	"github.com/waxsealmail/go-waxseal-server/global"
)

func handleError(body []byte) error {
	var payload map[string]interface{}
	uErr := json.Unmarshal(body, &payload)
	if uErr != nil {
		global.Logger.Log(uErr, "Failed to unmarshal response")
		return uErr
	}
	if payload["error"] != nil {
		global.Logger.Log(payload["error"])
		return errors.New(payload["error"].(string))
	}
	return nil
}
