package memory

import (
	"time"

	"promptito-be/pkg/builder/state"

	"github.com/patrickmn/go-cache"
)

// Preferences are the builder settings of an anonymous client.
type Preferences struct {
	OnboardingCompleted bool       `json:"onboardingCompleted"`
	PreferredMode       state.Mode `json:"preferredMode"`
	AdvancedMode        bool       `json:"advancedMode"`
}

// LocalDraftRepository keeps anonymous drafts and preferences keyed by the
// client id. Entries expire after ttl without writes.
type LocalDraftRepository struct {
	cache *cache.Cache
}

func NewLocalDraftRepository(ttl time.Duration) *LocalDraftRepository {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	cleanup := ttl / 6
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &LocalDraftRepository{
		cache: cache.New(ttl, cleanup),
	}
}

func draftKey(clientID string) string { return "draft:" + clientID }
func prefsKey(clientID string) string { return "prefs:" + clientID }

func (r *LocalDraftRepository) Save(clientID string, draft state.Draft) {
	r.cache.Set(draftKey(clientID), draft.Clone(), cache.DefaultExpiration)
}

func (r *LocalDraftRepository) Get(clientID string) (state.Draft, bool) {
	if x, found := r.cache.Get(draftKey(clientID)); found {
		return x.(state.Draft).Clone(), true
	}
	return state.Draft{}, false
}

func (r *LocalDraftRepository) Delete(clientID string) {
	r.cache.Delete(draftKey(clientID))
}

func (r *LocalDraftRepository) SavePreferences(clientID string, prefs Preferences) {
	r.cache.Set(prefsKey(clientID), prefs, cache.DefaultExpiration)
}

func (r *LocalDraftRepository) GetPreferences(clientID string) Preferences {
	if x, found := r.cache.Get(prefsKey(clientID)); found {
		return x.(Preferences)
	}
	return Preferences{PreferredMode: state.ModeQuest}
}

func (r *LocalDraftRepository) Count() int {
	return r.cache.ItemCount()
}
