package types

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

var (
	QueueTypeAssociateCampaigns = "campaign:associate"
	QueueTypeImageOffload       = "campaign:image_offload"
)

// AssociateTask claims anonymous-session campaigns for an authenticated user
type AssociateTask struct {
	SessionID string `json:"sessionId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
}

// ImageOffloadTask moves embedded data-URL images of a saved campaign to
// object storage
type ImageOffloadTask struct {
	CampaignID string `json:"campaignId" validate:"required"`
}

func NewAssociateCampaignsTask(task *AssociateTask) (*asynq.Task, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(QueueTypeAssociateCampaigns, payload), nil
}

func NewImageOffloadTask(task *ImageOffloadTask) (*asynq.Task, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(QueueTypeImageOffload, payload), nil
}
