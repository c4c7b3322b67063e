package repository

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

func createIndex(repo Repository, payload map[string]interface{}) error {
	c := repo.GetClient().(*resty.Client)
	resp, rErr := c.R().SetBody(payload).Post(fmt.Sprintf("%s/%s", repo.GetDBName(), "_index"))
	if rErr != nil {
		return rErr
	}
	if resp.IsError() {
		return handleError(resp)
	}
	return nil
}

// CreateCampaignSessionUserIndex supports the anonymous-to-authenticated
// association query (sessionId equals, userId absent)
func CreateCampaignSessionUserIndex(campaignRepo Repository) error {
	payload := map[string]interface{}{
		"index": map[string]interface{}{
			"fields": []string{"sessionId", "userId"},
		},
		"name": "campaign-session-user-index",
		"ddoc": "campaign-session-user-index",
		"type": "json",
	}
	return createIndex(campaignRepo, payload)
}

// CreateCampaignStatusIndex supports listing campaigns by status and owner
func CreateCampaignStatusIndex(campaignRepo Repository) error {
	payload := map[string]interface{}{
		"index": map[string]interface{}{
			"fields": []map[string]interface{}{
				{"status": "desc"},
				{"modified": "desc"},
			},
		},
		"name": "campaign-status-modified-index",
		"ddoc": "campaign-status-modified-index",
		"type": "json",
	}
	return createIndex(campaignRepo, payload)
}

// CreateSessionLastAccessedIndex supports the stale-session sweep
func CreateSessionLastAccessedIndex(sessionRepo Repository) error {
	payload := map[string]interface{}{
		"index": map[string]interface{}{
			"fields": []map[string]interface{}{{"lastAccessed": "desc"}},
		},
		"name": "session-last-accessed-index",
		"ddoc": "session-last-accessed-index",
		"type": "json",
	}
	return createIndex(sessionRepo, payload)
}
