package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/waxsealmail/go-waxseal-server/global"
	"github.com/waxsealmail/go-waxseal-server/repository"
	"github.com/waxsealmail/go-waxseal-server/services"
	"github.com/waxsealmail/go-waxseal-server/store"
	"github.com/waxsealmail/go-waxseal-server/types"
)

// CampaignQueue processes the background tasks of the mail-merge workflow
type CampaignQueue struct {
	campaignService *services.CampaignService
	env             *types.Environment
}

func NewCampaignQueue(dbSelector *repository.CouchDBSelector, env *types.Environment) *CampaignQueue {
	sessionService := services.NewSessionService(dbSelector, store.NewMemoryLocalStore())
	campaignService := services.NewCampaignService(dbSelector, sessionService, env)

	return &CampaignQueue{
		campaignService: campaignService,
		env:             env,
	}
}

// ProcessAssociateTask claims anonymous-session campaigns for a freshly
// authenticated user
func (cq *CampaignQueue) ProcessAssociateTask(ctx context.Context, t *asynq.Task) error {
	var task types.AssociateTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	if task.SessionID == "" || task.UserID == "" {
		return fmt.Errorf("missing session or user id: %w", asynq.SkipRetry)
	}

	count, aErr := cq.campaignService.AssociateBySession(ctx, task.SessionID, task.UserID)
	if aErr != nil {
		return aErr
	}
	global.Logger.Log("msg", "associated campaigns with user", "userId", task.UserID, "count", count)
	return nil
}

// ProcessImageOffloadTask moves embedded data-URL images of a saved
// campaign into object storage
func (cq *CampaignQueue) ProcessImageOffloadTask(ctx context.Context, t *asynq.Task) error {
	var task types.ImageOffloadTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	if task.CampaignID == "" {
		return fmt.Errorf("missing campaign id: %w", asynq.SkipRetry)
	}
	return cq.campaignService.OffloadImages(ctx, task.CampaignID)
}
