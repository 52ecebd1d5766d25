package implementation

import (
	"context"
	"errors"

	"promptito-be/internal/entity"
	"promptito-be/internal/mapper"
	"promptito-be/internal/model"
	"promptito-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PromptDraftRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PromptDraftMapper
}

func NewPromptDraftRepository(db *gorm.DB) contract.PromptDraftRepository {
	return &PromptDraftRepositoryImpl{
		db:     db,
		mapper: mapper.NewPromptDraftMapper(),
	}
}

func (r *PromptDraftRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.PromptDraft, error) {
	var m model.PromptDraft
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PromptDraftRepositoryImpl) Upsert(ctx context.Context, draft *entity.PromptDraft) error {
	m := r.mapper.ToModel(draft)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"builder_state", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*draft = *r.mapper.ToEntity(m)
	return nil
}

func (r *PromptDraftRepositoryImpl) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.PromptDraft{}).Error
}
