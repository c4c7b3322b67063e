package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/waxsealmail/go-waxseal-server/global"
	"github.com/waxsealmail/go-waxseal-server/repository"
	"github.com/waxsealmail/go-waxseal-server/store"
	"github.com/waxsealmail/go-waxseal-server/types"
)

// local cache slot for the device's anonymous session id
const sessionCacheKey = "anonymous_session_id"

// SessionService tracks campaigns created before the user authenticates.
// Session documents live in their own collection; the id is cached in the
// local key-value lane.
type SessionService struct {
	repoSelector *repository.CouchDBSelector
	local        store.LocalStore
}

func NewSessionService(repoSelector *repository.CouchDBSelector, local store.LocalStore) *SessionService {
	if repoSelector == nil {
		panic("repoSelector cannot be nil")
	}
	return &SessionService{
		repoSelector: repoSelector,
		local:        local,
	}
}

// GetOrCreate returns the cached anonymous session id after verifying it
// still exists remotely, or creates a new session document. When the
// remote create fails a temp_-prefixed id is handed out so the workflow
// can continue locally.
func (ss *SessionService) GetOrCreate(ctx context.Context) (string, error) {
	sessionRepo, rErr := ss.repoSelector.ChooseDB(repository.Session)
	if rErr != nil {
		return "", rErr
	}

	if cached, ok := ss.local.Get(sessionCacheKey); ok && cached != "" {
		resp, gErr := sessionRepo.GetByID(ctx, cached)
		if gErr == nil {
			var session types.AnonymousSession
			if mErr := repository.MapToObject(resp, &session); mErr == nil {
				ss.touch(ctx, sessionRepo, &session)
				return cached, nil
			}
		}
		// cached session is gone remotely, mint a new one
	}

	now := time.Now().UTC().UnixMilli()
	session := &types.AnonymousSession{
		ID:           uuid.NewString(),
		Created:      now,
		LastAccessed: now,
	}
	if sErr := sessionRepo.Save(ctx, session.ID, session); sErr != nil {
		// temporary id, won't persist across devices
		fallback := "temp_" + uuid.NewString()
		global.Logger.Log("msg", "failed to create anonymous session, using temporary id", "error", sErr.Error())
		ss.local.Set(sessionCacheKey, fallback)
		return fallback, nil
	}

	ss.local.Set(sessionCacheKey, session.ID)
	return session.ID, nil
}

// touch refreshes lastAccessed, best effort
func (ss *SessionService) touch(ctx context.Context, sessionRepo repository.Repository, session *types.AnonymousSession) {
	session.LastAccessed = time.Now().UTC().UnixMilli()
	if uErr := sessionRepo.Update(ctx, session.ID, session); uErr != nil {
		global.Logger.Log("msg", "failed to touch anonymous session", "error", uErr.Error())
	}
}

// RemoveStaleSessions deletes anonymous sessions idle longer than the
// configured number of days. Intended as a cron job.
func (ss *SessionService) RemoveStaleSessions() {
	maxIdleDays := global.Conf.WaxSeal.SessionMaxIdleDays
	if maxIdleDays <= 0 {
		maxIdleDays = 30
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -maxIdleDays).UnixMilli()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sessionRepo, rErr := ss.repoSelector.ChooseDB(repository.Session)
	if rErr != nil {
		global.Logger.Log("error", "failed to select session database", "error", rErr.Error())
		return
	}

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"lastAccessed": map[string]interface{}{
				"$lt": cutoff,
			},
		},
		"limit": 500,
	}
	resp, fErr := sessionRepo.Find(ctx, query)
	if fErr != nil {
		global.Logger.Log("error", "failed to query stale sessions", "error", fErr.Error())
		return
	}
	var found types.CouchDBFindResponse[types.AnonymousSession]
	if mErr := repository.MapToObject(resp, &found); mErr != nil {
		global.Logger.Log("error", "failed to map stale sessions", "error", mErr.Error())
		return
	}
	removed := 0
	for _, session := range found.Docs {
		if dErr := sessionRepo.Delete(ctx, session.ID); dErr != nil {
			global.Logger.Log("error", "failed to delete stale session", "sessionId", session.ID, "error", dErr.Error())
			continue
		}
		removed++
	}
	if removed > 0 {
		global.Logger.Log("msg", "removed stale anonymous sessions", "count", removed)
	}
}
