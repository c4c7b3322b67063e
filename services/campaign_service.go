package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/waxsealmail/go-waxseal-server/global"
	"github.com/waxsealmail/go-waxseal-server/metrics"
	"github.com/waxsealmail/go-waxseal-server/repository"
	"github.com/waxsealmail/go-waxseal-server/types"
)

// CampaignService persists campaign drafts to the document store and owns
// the anonymous-session association flow
type CampaignService struct {
	repoSelector   *repository.CouchDBSelector
	sessionService *SessionService
	s3Service      *S3Service
	env            *types.Environment
}

func NewCampaignService(repoSelector *repository.CouchDBSelector, sessionService *SessionService, env *types.Environment) *CampaignService {
	if repoSelector == nil {
		panic("repoSelector cannot be nil")
	}
	return &CampaignService{
		repoSelector:   repoSelector,
		sessionService: sessionService,
		s3Service:      NewS3Service(env),
		env:            env,
	}
}

// CreateCampaign stores a new draft and returns its assigned document ID
func (cs *CampaignService) CreateCampaign(ctx context.Context, campaign *types.Campaign) (string, error) {
	campaignRepo, rErr := cs.repoSelector.ChooseDB(repository.Campaign)
	if rErr != nil {
		return "", rErr
	}

	// anonymous drafts get a session id so they can be claimed after login
	if campaign.UserID == "" && campaign.SessionID == "" {
		sessionID, sErr := cs.sessionService.GetOrCreate(ctx)
		if sErr != nil {
			global.Logger.Log("msg", "failed to get session id, continuing without it", "error", sErr.Error())
		} else {
			campaign.SessionID = sessionID
		}
	}

	now := time.Now().UTC().UnixMilli()
	campaign.ID = uuid.NewString()
	campaign.Rev = ""
	if campaign.Status == "" {
		campaign.Status = types.CampaignStatusDraft
	}
	if campaign.Name == "" {
		campaign.Name = "Untitled Campaign"
	}
	campaign.RecipientCount = len(campaign.Addresses)
	campaign.Created = now
	campaign.Modified = now

	if err := campaignRepo.Save(ctx, campaign.ID, campaign); err != nil {
		global.Logger.Log(err, "Failed to create campaign")
		return "", err
	}
	metrics.CampaignSavesMetricsCount.Inc()
	cs.enqueueImageOffload(campaign)
	return campaign.ID, nil
}

// GetCampaign reads one campaign by its document ID
func (cs *CampaignService) GetCampaign(ctx context.Context, id string) (*types.Campaign, error) {
	campaignRepo, rErr := cs.repoSelector.ChooseDB(repository.Campaign)
	if rErr != nil {
		return nil, rErr
	}
	resp, gErr := campaignRepo.GetByID(ctx, id)
	if gErr != nil {
		return nil, gErr
	}
	var campaign types.Campaign
	if mErr := repository.MapToObject(resp, &campaign); mErr != nil {
		return nil, mErr
	}
	return &campaign, nil
}

// UpdateCampaign merges the non-empty fields of updates into the stored
// document, so a partial body never erases what it omits. On success
// updates holds the document as written. The recipientCount
// denormalization always tracks the address list at the time of write.
func (cs *CampaignService) UpdateCampaign(ctx context.Context, id string, updates *types.Campaign) error {
	campaignRepo, rErr := cs.repoSelector.ChooseDB(repository.Campaign)
	if rErr != nil {
		return rErr
	}
	existing, gErr := cs.GetCampaign(ctx, id)
	if gErr != nil {
		return gErr
	}

	merged := *existing
	merged.ID = id
	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.UserID != "" {
		merged.UserID = updates.UserID
	}
	if updates.SessionID != "" {
		merged.SessionID = updates.SessionID
	}
	if updates.StampImage != "" && updates.StampImage != existing.StampImage {
		// a new stamp invalidates the offloaded copy
		merged.StampImage = updates.StampImage
		merged.StampImageURL = ""
	}
	if updates.StampImageURL != "" {
		merged.StampImageURL = updates.StampImageURL
	}
	if updates.SealLetterImage != "" && updates.SealLetterImage != existing.SealLetterImage {
		merged.SealLetterImage = updates.SealLetterImage
		merged.SealLetterURL = ""
	}
	if updates.SealLetterURL != "" {
		merged.SealLetterURL = updates.SealLetterURL
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.CurrentStep > 0 {
		merged.CurrentStep = updates.CurrentStep
	}
	if updates.Addresses != nil {
		merged.Addresses = updates.Addresses
	}
	if updates.Letter != (types.Letter{}) {
		merged.Letter = updates.Letter
	}
	if updates.ReturnAddress != (types.ReturnAddress{}) {
		merged.ReturnAddress = updates.ReturnAddress
	}
	if updates.IsSample {
		merged.IsSample = true
	}
	merged.RecipientCount = len(merged.Addresses)
	merged.Modified = time.Now().UTC().UnixMilli()

	if uErr := campaignRepo.Update(ctx, id, &merged); uErr != nil {
		global.Logger.Log(uErr, "Failed to update campaign")
		return uErr
	}
	metrics.CampaignSavesMetricsCount.Inc()
	*updates = merged
	cs.enqueueImageOffload(&merged)
	return nil
}

// SaveState is the autosave entry point: insert when the snapshot has no
// ID yet, merge otherwise. Implements the store's remote lane.
func (cs *CampaignService) SaveState(ctx context.Context, snapshot *types.Campaign) (string, error) {
	if snapshot.ID == "" {
		return cs.CreateCampaign(ctx, snapshot)
	}
	if uErr := cs.UpdateCampaign(ctx, snapshot.ID, snapshot); uErr != nil {
		return "", uErr
	}
	return snapshot.ID, nil
}

// DeleteCampaign removes the document and its stored images
func (cs *CampaignService) DeleteCampaign(ctx context.Context, id string) error {
	campaignRepo, rErr := cs.repoSelector.ChooseDB(repository.Campaign)
	if rErr != nil {
		return rErr
	}

	bucket := global.Conf.Storage.Bucket
	// images might not exist, that's okay
	if dErr := cs.s3Service.DeleteObject(bucket, stampImagePath(id)); dErr != nil && dErr != types.ErrNotFound {
		global.Logger.Log("msg", "failed to delete stamp image", "campaignId", id, "error", dErr.Error())
	}
	if dErr := cs.s3Service.DeleteObject(bucket, sealImagePath(id)); dErr != nil && dErr != types.ErrNotFound {
		global.Logger.Log("msg", "failed to delete seal letter image", "campaignId", id, "error", dErr.Error())
	}

	return campaignRepo.Delete(ctx, id)
}

// ListCampaigns queries campaigns by status and/or owner
func (cs *CampaignService) ListCampaigns(ctx context.Context, status, userID string) ([]types.Campaign, error) {
	campaignRepo, rErr := cs.repoSelector.ChooseDB(repository.Campaign)
	if rErr != nil {
		return nil, rErr
	}
	selector := map[string]interface{}{}
	if status != "" {
		selector["status"] = map[string]interface{}{"$eq": status}
	}
	if userID != "" {
		selector["userId"] = map[string]interface{}{"$eq": userID}
	}
	if len(selector) == 0 {
		selector["_id"] = map[string]interface{}{"$gt": nil}
	}
	query := map[string]interface{}{
		"selector": selector,
		"limit":    100,
	}
	resp, fErr := campaignRepo.Find(ctx, query)
	if fErr != nil {
		return nil, fErr
	}
	var found types.CouchDBFindResponse[types.Campaign]
	if mErr := repository.MapToObject(resp, &found); mErr != nil {
		return nil, mErr
	}
	return found.Docs, nil
}

// AssociateBySession claims every campaign carrying the anonymous session
// id and no owner yet for the authenticated user. Returns the number of
// campaigns associated.
func (cs *CampaignService) AssociateBySession(ctx context.Context, sessionID, userID string) (int, error) {
	if sessionID == "" || userID == "" {
		return 0, types.ErrBadRequest
	}
	campaignRepo, rErr := cs.repoSelector.ChooseDB(repository.Campaign)
	if rErr != nil {
		return 0, rErr
	}

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"sessionId": map[string]interface{}{"$eq": sessionID},
			"userId":    map[string]interface{}{"$exists": false},
		},
		"limit": 100,
	}
	resp, fErr := campaignRepo.Find(ctx, query)
	if fErr != nil {
		return 0, fErr
	}
	var found types.CouchDBFindResponse[types.Campaign]
	if mErr := repository.MapToObject(resp, &found); mErr != nil {
		return 0, mErr
	}

	associated := 0
	for i := range found.Docs {
		campaign := found.Docs[i]
		campaign.UserID = userID
		campaign.Modified = time.Now().UTC().UnixMilli()
		if uErr := campaignRepo.Update(ctx, campaign.ID, &campaign); uErr != nil {
			global.Logger.Log("msg", "failed to associate campaign", "campaignId", campaign.ID, "error", uErr.Error())
			continue
		}
		associated++
	}
	return associated, nil
}

// OffloadImages moves embedded data-URL images of a saved campaign to
// object storage and records the object URLs on the document. The data
// URLs stay on the document for instant preview.
func (cs *CampaignService) OffloadImages(ctx context.Context, id string) error {
	campaign, gErr := cs.GetCampaign(ctx, id)
	if gErr != nil {
		return gErr
	}

	bucket := global.Conf.Storage.Bucket
	changed := false
	if campaign.StampImage != "" && campaign.StampImageURL == "" {
		url, uErr := cs.s3Service.UploadDataURL(bucket, stampImagePath(id), campaign.StampImage)
		if uErr != nil {
			return uErr
		}
		campaign.StampImageURL = url
		changed = true
	}
	if campaign.SealLetterImage != "" && campaign.SealLetterURL == "" {
		url, uErr := cs.s3Service.UploadDataURL(bucket, sealImagePath(id), campaign.SealLetterImage)
		if uErr != nil {
			return uErr
		}
		campaign.SealLetterURL = url
		changed = true
	}
	if !changed {
		return nil
	}

	campaignRepo, rErr := cs.repoSelector.ChooseDB(repository.Campaign)
	if rErr != nil {
		return rErr
	}
	return campaignRepo.Update(ctx, id, campaign)
}

// EnqueueAssociation queues the post-login sweep that stamps the user ID
// onto every campaign created under the anonymous session
func (cs *CampaignService) EnqueueAssociation(sessionID, userID string) error {
	if cs.env == nil || cs.env.TaskClient == nil {
		return errors.New("task queue is not configured")
	}
	task, tErr := types.NewAssociateCampaignsTask(&types.AssociateTask{SessionID: sessionID, UserID: userID})
	if tErr != nil {
		return tErr
	}
	if _, eErr := cs.env.TaskClient.Enqueue(task); eErr != nil {
		return eErr
	}
	return nil
}

// hand the upload to the background queue, fire and forget
func (cs *CampaignService) enqueueImageOffload(campaign *types.Campaign) {
	if cs.env == nil || cs.env.TaskClient == nil {
		return
	}
	needsOffload := (campaign.StampImage != "" && campaign.StampImageURL == "") ||
		(campaign.SealLetterImage != "" && campaign.SealLetterURL == "")
	if !needsOffload {
		return
	}
	task, tErr := types.NewImageOffloadTask(&types.ImageOffloadTask{CampaignID: campaign.ID})
	if tErr != nil {
		global.Logger.Log("msg", "failed to build image offload task", "error", tErr.Error())
		return
	}
	if _, eErr := cs.env.TaskClient.Enqueue(task); eErr != nil {
		global.Logger.Log("msg", "failed to enqueue image offload task", "error", eErr.Error())
	}
}

func stampImagePath(campaignID string) string {
	return fmt.Sprintf("campaigns/%s/stamp", campaignID)
}

func sealImagePath(campaignID string) string {
	return fmt.Sprintf("campaigns/%s/ai-letter", campaignID)
}
