package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log/level"
	"github.com/waxsealmail/go-waxseal-server/global"
	"github.com/waxsealmail/go-waxseal-server/types"
)

// RemoteStore is the durable document-store lane
type RemoteStore interface {
	// SaveState inserts the snapshot when it has no ID yet, otherwise
	// merges it into the existing document. Returns the document ID.
	SaveState(ctx context.Context, snapshot *types.Campaign) (string, error)
	GetCampaign(ctx context.Context, id string) (*types.Campaign, error)
}

type State int

const (
	StateUninitialized State = iota
	StateHydrating
	StateActive
)

// local key-value slots
const (
	StateKey      = "waxseal_state"
	CampaignIDKey = "waxseal_campaignId"
)

const (
	DefaultAutosaveDelay  = 2000 * time.Millisecond
	DefaultHydrationGrace = 3000 * time.Millisecond

	// grace before the first autosave when there is nothing to hydrate
	coldStartGrace = 1000 * time.Millisecond
)

var DefaultEditingPaths = []string{"/campaign/step/", "/sample/step/"}

type Options struct {
	Local          LocalStore
	Remote         RemoteStore
	AutosaveDelay  time.Duration
	HydrationGrace time.Duration
	EditingPaths   []string
}

// CampaignStore owns the in-memory campaign document for one session.
// Every mutation snapshots the document to the local lane synchronously and
// restarts the debounce timer for the remote lane. Rapid mutations within
// the window collapse into a single remote write of the latest state.
type CampaignStore struct {
	mu     sync.Mutex
	doc    *types.Campaign
	local  LocalStore
	remote RemoteStore

	delay        time.Duration
	grace        time.Duration
	editingPaths []string
	location     string

	timer            *time.Timer
	state            State
	hydrating        bool
	suppressAutosave bool
}

func NewCampaignStore(opts Options) *CampaignStore {
	if opts.AutosaveDelay <= 0 {
		opts.AutosaveDelay = DefaultAutosaveDelay
	}
	if opts.HydrationGrace <= 0 {
		opts.HydrationGrace = DefaultHydrationGrace
	}
	if len(opts.EditingPaths) == 0 {
		opts.EditingPaths = DefaultEditingPaths
	}
	s := &CampaignStore{
		doc:              types.NewCampaign(),
		local:            opts.Local,
		remote:           opts.Remote,
		delay:            opts.AutosaveDelay,
		grace:            opts.HydrationGrace,
		editingPaths:     opts.EditingPaths,
		state:            StateUninitialized,
		suppressAutosave: true,
	}
	s.loadLocal()
	return s
}

// loadLocal restores the last local snapshot, if any. Corrupt snapshots are
// discarded.
func (s *CampaignStore) loadLocal() {
	if raw, ok := s.local.Get(StateKey); ok {
		restored := types.NewCampaign()
		if err := json.Unmarshal([]byte(raw), restored); err != nil {
			level.Error(global.Logger).Log("error", err.Error(), "msg", "failed to restore local snapshot")
		} else {
			s.doc = restored
		}
	}
	if id, ok := s.local.Get(CampaignIDKey); ok && id != "" {
		s.doc.ID = id
	}
}

// Hydrate issues the one-time remote read when a previously saved campaign
// ID exists locally. Remote fields win over local ones. Outbound autosaves
// stay suppressed for a grace window afterwards so freshly loaded data
// isn't immediately re-saved.
func (s *CampaignStore) Hydrate(ctx context.Context) {
	s.mu.Lock()
	id := s.doc.ID
	if id == "" {
		s.state = StateActive
		s.mu.Unlock()
		time.AfterFunc(coldStartGrace, s.enableAutosave)
		return
	}
	s.state = StateHydrating
	s.hydrating = true
	s.mu.Unlock()

	remoteDoc, err := s.remote.GetCampaign(ctx, id)

	s.mu.Lock()
	if err != nil {
		// fail soft, keep the local copy
		global.Logger.Log("msg", "campaign hydration failed, continuing with local snapshot", "campaignId", id, "error", err.Error())
	} else if remoteDoc != nil {
		s.doc = remoteDoc
		s.snapshotLocalLocked()
	}
	s.hydrating = false
	s.state = StateActive
	s.mu.Unlock()

	time.AfterFunc(s.grace, s.enableAutosave)
}

func (s *CampaignStore) enableAutosave() {
	s.mu.Lock()
	s.suppressAutosave = false
	s.mu.Unlock()
}

// Update applies one mutation to the document, writes the local snapshot
// and restarts the debounce timer. The mutation function must not retain
// the document pointer.
func (s *CampaignStore) Update(mutate func(c *types.Campaign)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(s.doc)
	s.snapshotLocalLocked()
	s.scheduleAutosaveLocked()
}

// Snapshot returns a deep copy of the current document
func (s *CampaignStore) Snapshot() *types.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyDocLocked()
}

// SetLocation records the client's UI location; autosave only runs while
// the location is one of the campaign-editing paths.
func (s *CampaignStore) SetLocation(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = path
}

// Reset discards the document and both local slots
func (s *CampaignStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.doc = types.NewCampaign()
	s.local.Remove(StateKey)
	s.local.Remove(CampaignIDKey)
}

func (s *CampaignStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close cancels any pending autosave
func (s *CampaignStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *CampaignStore) copyDocLocked() *types.Campaign {
	copied := *s.doc
	copied.Addresses = make([]types.Address, len(s.doc.Addresses))
	copy(copied.Addresses, s.doc.Addresses)
	return &copied
}

// local lane: best effort, failures are logged and never propagated
func (s *CampaignStore) snapshotLocalLocked() {
	raw, err := json.Marshal(s.doc)
	if err != nil {
		level.Error(global.Logger).Log("error", err.Error(), "msg", "failed to serialize local snapshot")
		return
	}
	if sErr := s.local.Set(StateKey, string(raw)); sErr != nil {
		level.Error(global.Logger).Log("error", sErr.Error(), "msg", "failed to write local snapshot")
		return
	}
	if s.doc.ID != "" {
		if sErr := s.local.Set(CampaignIDKey, s.doc.ID); sErr != nil {
			level.Error(global.Logger).Log("error", sErr.Error(), "msg", "failed to write local campaign id")
		}
	}
}

// a new mutation cancels the pending write and restarts the window
func (s *CampaignStore) scheduleAutosaveLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.autosave)
}

func (s *CampaignStore) onEditingPathLocked() bool {
	for _, p := range s.editingPaths {
		if strings.HasPrefix(s.location, p) {
			return true
		}
	}
	return false
}

// autosave runs when the debounce window elapses uninterrupted. The write
// is suppressed during hydration and its grace window, off the editing
// paths, and while the document has no meaningful content.
func (s *CampaignStore) autosave() {
	s.mu.Lock()
	if s.hydrating || s.suppressAutosave {
		s.mu.Unlock()
		return
	}
	if !s.onEditingPathLocked() {
		s.mu.Unlock()
		return
	}
	if !s.doc.HasContent() {
		s.mu.Unlock()
		return
	}
	snapshot := s.copyDocLocked()
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := s.remote.SaveState(ctx, snapshot)
	if err != nil {
		// fail soft, the local lane already has the state
		global.Logger.Log("msg", "campaign autosave failed (local snapshot only)", "error", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// the campaign ID is assigned at most once, on the first successful
	// remote write
	if s.doc.ID == "" && id != "" {
		s.doc.ID = id
		if sErr := s.local.Set(CampaignIDKey, id); sErr != nil {
			level.Error(global.Logger).Log("error", sErr.Error(), "msg", "failed to write local campaign id")
		}
	}
}
