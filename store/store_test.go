package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/waxsealmail/go-waxseal-server/types"
)

type fakeRemote struct {
	mu       sync.Mutex
	saves    []*types.Campaign
	assignID string
	saveErr  error
	doc      *types.Campaign
	getErr   error
}

func (f *fakeRemote) SaveState(ctx context.Context, snapshot *types.Campaign) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saves = append(f.saves, snapshot)
	if snapshot.ID != "" {
		return snapshot.ID, nil
	}
	return f.assignID, nil
}

func (f *fakeRemote) GetCampaign(ctx context.Context, id string) (*types.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.doc, nil
}

func (f *fakeRemote) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeRemote) lastSave() *types.Campaign {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saves) == 0 {
		return nil
	}
	return f.saves[len(f.saves)-1]
}

// LocalStore whose writes always fail
type brokenLocal struct{}

func (brokenLocal) Get(key string) (string, bool) { return "", false }
func (brokenLocal) Set(key, value string) error   { return errors.New("quota exceeded") }
func (brokenLocal) Remove(key string)             {}

func newTestStore(remote *fakeRemote) *CampaignStore {
	s := NewCampaignStore(Options{
		Local:         NewMemoryLocalStore(),
		Remote:        remote,
		AutosaveDelay: 30 * time.Millisecond,
	})
	s.SetLocation("/campaign/step/2")
	s.enableAutosave()
	return s
}

func TestDebounceCoalescesRapidMutations(t *testing.T) {
	remote := &fakeRemote{assignID: "camp-1"}
	s := newTestStore(remote)
	defer s.Close()

	for i := 0; i < 10; i++ {
		name := string(rune('a' + i))
		s.Update(func(c *types.Campaign) { c.Name = name })
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, remote.saveCount())
	assert.Equal(t, "j", remote.lastSave().Name)
}

func TestCampaignIDAssignedOnce(t *testing.T) {
	remote := &fakeRemote{assignID: "camp-1"}
	s := newTestStore(remote)
	defer s.Close()

	s.Update(func(c *types.Campaign) { c.Name = "first" })
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "camp-1", s.Snapshot().ID)

	s.Update(func(c *types.Campaign) { c.Name = "second" })
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 2, remote.saveCount())
	assert.Equal(t, "camp-1", s.Snapshot().ID)
	// subsequent saves carry the assigned ID
	assert.Equal(t, "camp-1", remote.lastSave().ID)
}

func TestAutosaveSkippedOffEditingPaths(t *testing.T) {
	remote := &fakeRemote{assignID: "camp-1"}
	s := newTestStore(remote)
	defer s.Close()
	s.SetLocation("/gallery")

	s.Update(func(c *types.Campaign) { c.Name = "draft" })
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 0, remote.saveCount())
}

func TestAutosaveSkippedWithoutContent(t *testing.T) {
	remote := &fakeRemote{assignID: "camp-1"}
	s := newTestStore(remote)
	defer s.Close()

	// touching a step alone is not content
	s.Update(func(c *types.Campaign) { c.CurrentStep = 3 })
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 0, remote.saveCount())
}

func TestAutosaveSuppressedDuringHydrationGrace(t *testing.T) {
	local := NewMemoryLocalStore()
	local.Set(CampaignIDKey, "camp-9")
	remoteDoc := types.NewCampaign()
	remoteDoc.ID = "camp-9"
	remoteDoc.Name = "from remote"
	remote := &fakeRemote{doc: remoteDoc}

	s := NewCampaignStore(Options{
		Local:          local,
		Remote:         remote,
		AutosaveDelay:  20 * time.Millisecond,
		HydrationGrace: 80 * time.Millisecond,
	})
	defer s.Close()
	s.SetLocation("/campaign/step/1")

	s.Hydrate(context.Background())
	assert.Equal(t, "from remote", s.Snapshot().Name)

	// mutation inside the grace window must not reach the remote lane
	s.Update(func(c *types.Campaign) { c.Name = "edited" })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, remote.saveCount())

	// once the grace passes, the next mutation saves normally
	time.Sleep(60 * time.Millisecond)
	s.Update(func(c *types.Campaign) { c.Name = "edited again" })
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, remote.saveCount())
	assert.Equal(t, "edited again", remote.lastSave().Name)
}

func TestHydrateFailureKeepsLocalState(t *testing.T) {
	local := NewMemoryLocalStore()
	local.Set(StateKey, `{"name":"local draft","currentStep":2}`)
	local.Set(CampaignIDKey, "camp-9")
	remote := &fakeRemote{getErr: errors.New("network down")}

	s := NewCampaignStore(Options{
		Local:          local,
		Remote:         remote,
		AutosaveDelay:  20 * time.Millisecond,
		HydrationGrace: 20 * time.Millisecond,
	})
	defer s.Close()

	s.Hydrate(context.Background())

	snapshot := s.Snapshot()
	assert.Equal(t, "local draft", snapshot.Name)
	assert.Equal(t, "camp-9", snapshot.ID)
	assert.Equal(t, StateActive, s.State())
}

func TestLocalLaneFailureDoesNotBlockMutations(t *testing.T) {
	remote := &fakeRemote{assignID: "camp-1"}
	s := NewCampaignStore(Options{
		Local:         brokenLocal{},
		Remote:        remote,
		AutosaveDelay: 20 * time.Millisecond,
	})
	defer s.Close()
	s.SetLocation("/campaign/step/1")
	s.enableAutosave()

	s.Update(func(c *types.Campaign) { c.Name = "still works" })
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, "still works", s.Snapshot().Name)
	assert.Equal(t, 1, remote.saveCount())
}

func TestRemoteFailureKeepsDocumentUsable(t *testing.T) {
	remote := &fakeRemote{saveErr: errors.New("network down")}
	s := newTestStore(remote)
	defer s.Close()

	s.Update(func(c *types.Campaign) { c.Name = "offline draft" })
	time.Sleep(80 * time.Millisecond)

	snapshot := s.Snapshot()
	assert.Equal(t, "offline draft", snapshot.Name)
	assert.Equal(t, "", snapshot.ID)
}

func TestReset(t *testing.T) {
	local := NewMemoryLocalStore()
	remote := &fakeRemote{assignID: "camp-1"}
	s := NewCampaignStore(Options{
		Local:         local,
		Remote:        remote,
		AutosaveDelay: 20 * time.Millisecond,
	})
	defer s.Close()
	s.SetLocation("/campaign/step/1")
	s.enableAutosave()

	s.Update(func(c *types.Campaign) { c.Name = "doomed" })
	time.Sleep(80 * time.Millisecond)

	s.Reset()

	snapshot := s.Snapshot()
	assert.Equal(t, "", snapshot.ID)
	assert.Equal(t, "", snapshot.Name)
	_, hasState := local.Get(StateKey)
	_, hasID := local.Get(CampaignIDKey)
	assert.False(t, hasState)
	assert.False(t, hasID)
}

func TestSnapshotIsACopy(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestStore(remote)
	defer s.Close()

	s.Update(func(c *types.Campaign) {
		c.Addresses = append(c.Addresses, types.Address{FullName: "John Doe"})
	})

	snapshot := s.Snapshot()
	snapshot.Addresses[0].FullName = "mutated"
	snapshot.Name = "mutated"

	fresh := s.Snapshot()
	assert.Equal(t, "John Doe", fresh.Addresses[0].FullName)
	assert.Equal(t, "", fresh.Name)
}

func TestLocalSnapshotWrittenSynchronously(t *testing.T) {
	local := NewMemoryLocalStore()
	remote := &fakeRemote{}
	s := NewCampaignStore(Options{
		Local:         local,
		Remote:        remote,
		AutosaveDelay: time.Hour,
	})
	defer s.Close()

	s.Update(func(c *types.Campaign) { c.Name = "immediate" })

	raw, ok := local.Get(StateKey)
	if !ok {
		t.Fatal("expected a local snapshot")
	}
	assert.Contains(t, raw, "immediate")
}
