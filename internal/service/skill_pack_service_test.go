package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"promptito-be/internal/entity"
	"promptito-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	*logger.ZapLogger
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, module+": "+message)
}

func TestSkillPackGetWithUnreadableSkills(t *testing.T) {
	store := newFakeStore()
	log := &recordingLogger{ZapLogger: logger.NewNop()}
	svc := NewSkillPackService(store, log)

	owner := uuid.New()
	id := uuid.New()
	store.packs[id] = &entity.SkillPack{
		Id:         id,
		OwnerId:    owner,
		Title:      "Broken",
		Visibility: entity.VisibilityPrivate,
		Skills:     []byte(`{not json`),
	}

	resp, err := svc.Get(context.Background(), Actor{UserID: owner}, id)
	require.NoError(t, err)

	var body struct {
		Title  string            `json:"title"`
		Skills []json.RawMessage `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	assert.Equal(t, "Broken", body.Title)
	assert.Empty(t, body.Skills)

	require.Len(t, log.warns, 1)
	assert.Contains(t, log.warns[0], "SkillPack")
}

func TestSkillPackGetHidesOtherUsersPrivatePacks(t *testing.T) {
	store := newFakeStore()
	svc := NewSkillPackService(store, logger.NewNop())

	id := uuid.New()
	store.packs[id] = &entity.SkillPack{
		Id:         id,
		OwnerId:    uuid.New(),
		Visibility: entity.VisibilityPrivate,
		Skills:     []byte(`[]`),
	}

	_, err := svc.Get(context.Background(), Actor{UserID: uuid.New()}, id)
	assert.Error(t, err)
}
