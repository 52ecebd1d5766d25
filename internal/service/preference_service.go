package service

import (
	"context"

	"promptito-be/internal/dto"
	"promptito-be/internal/entity"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/repository/memory"
	"promptito-be/internal/repository/specification"
	"promptito-be/internal/repository/unitofwork"
	"promptito-be/pkg/builder/state"
)

// Profile is what the preference service learns about a signed-in caller
// from the token.
type Profile struct {
	Email string
}

type IPreferenceService interface {
	Get(ctx context.Context, actor Actor) (*dto.PreferencesResponse, error)
	Update(ctx context.Context, actor Actor, profile Profile, req *dto.PreferencesRequest) (*dto.PreferencesResponse, error)
}

type preferenceService struct {
	uowFactory  unitofwork.RepositoryFactory
	localDrafts *memory.LocalDraftRepository
	logger      logger.ILogger
}

func NewPreferenceService(uowFactory unitofwork.RepositoryFactory, localDrafts *memory.LocalDraftRepository, log logger.ILogger) IPreferenceService {
	return &preferenceService{
		uowFactory:  uowFactory,
		localDrafts: localDrafts,
		logger:      log,
	}
}

func (s *preferenceService) hosted(actor Actor) bool {
	return s.uowFactory != nil && actor.SignedIn()
}

func defaultPreferences() memory.Preferences {
	return memory.Preferences{PreferredMode: state.ModeQuest}
}

func fromProfile(p *entity.UserProfile) memory.Preferences {
	prefs := memory.Preferences{
		OnboardingCompleted: p.OnboardingCompleted,
		PreferredMode:       state.Mode(p.PreferredMode),
		AdvancedMode:        p.AdvancedMode,
	}
	if prefs.PreferredMode != state.ModePro {
		prefs.PreferredMode = state.ModeQuest
	}
	return prefs
}

func preferencesResponse(p memory.Preferences) *dto.PreferencesResponse {
	return &dto.PreferencesResponse{
		OnboardingCompleted: p.OnboardingCompleted,
		PreferredMode:       string(p.PreferredMode),
		AdvancedMode:        p.AdvancedMode,
	}
}

func (s *preferenceService) load(ctx context.Context, actor Actor) (memory.Preferences, *entity.UserProfile, error) {
	if s.hosted(actor) {
		profile, err := s.uowFactory.NewUnitOfWork(ctx).UserProfileRepository().FindOne(ctx, specification.ByID{ID: actor.UserID})
		if err != nil {
			return memory.Preferences{}, nil, err
		}
		if profile == nil {
			return defaultPreferences(), nil, nil
		}
		return fromProfile(profile), profile, nil
	}
	if !actor.hasIdentity() {
		return memory.Preferences{}, nil, ErrClientIDRequired
	}
	return s.localDrafts.GetPreferences(actor.localKey()), nil, nil
}

func (s *preferenceService) Get(ctx context.Context, actor Actor) (*dto.PreferencesResponse, error) {
	prefs, _, err := s.load(ctx, actor)
	if err != nil {
		return nil, err
	}
	return preferencesResponse(prefs), nil
}

// Update applies the fields present in req. Hosted profiles are created on
// first write.
func (s *preferenceService) Update(ctx context.Context, actor Actor, profile Profile, req *dto.PreferencesRequest) (*dto.PreferencesResponse, error) {
	prefs, existing, err := s.load(ctx, actor)
	if err != nil {
		return nil, err
	}
	if req.OnboardingCompleted != nil {
		prefs.OnboardingCompleted = *req.OnboardingCompleted
	}
	if req.PreferredMode != nil {
		prefs.PreferredMode = state.Mode(*req.PreferredMode)
	}
	if req.AdvancedMode != nil {
		prefs.AdvancedMode = *req.AdvancedMode
	}

	if !s.hosted(actor) {
		s.localDrafts.SavePreferences(actor.localKey(), prefs)
		return preferencesResponse(prefs), nil
	}

	record := entity.UserProfile{
		Id:                  actor.UserID,
		Email:               profile.Email,
		OnboardingCompleted: prefs.OnboardingCompleted,
		PreferredMode:       string(prefs.PreferredMode),
		AdvancedMode:        prefs.AdvancedMode,
	}
	if existing != nil {
		record.DisplayName = existing.DisplayName
		record.CreatedAt = existing.CreatedAt
		if record.Email == "" {
			record.Email = existing.Email
		}
	}
	if err := s.uowFactory.NewUnitOfWork(ctx).UserProfileRepository().Upsert(ctx, &record); err != nil {
		return nil, err
	}
	s.logger.Debug("Preferences", "Profile updated", map[string]interface{}{"user_id": actor.UserID.String()})
	return preferencesResponse(fromProfile(&record)), nil
}
