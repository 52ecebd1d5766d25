package implementation

import (
	"context"
	"errors"

	"promptito-be/internal/entity"
	"promptito-be/internal/mapper"
	"promptito-be/internal/model"
	"promptito-be/internal/repository/contract"
	"promptito-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillPackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SkillPackMapper
}

func NewSkillPackRepository(db *gorm.DB) contract.SkillPackRepository {
	return &SkillPackRepositoryImpl{
		db:     db,
		mapper: mapper.NewSkillPackMapper(),
	}
}

func (r *SkillPackRepositoryImpl) Create(ctx context.Context, pack *entity.SkillPack) error {
	m := r.mapper.ToModel(pack)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*pack = *r.mapper.ToEntity(m)
	return nil
}

func (r *SkillPackRepositoryImpl) Update(ctx context.Context, pack *entity.SkillPack) error {
	m := r.mapper.ToModel(pack)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*pack = *r.mapper.ToEntity(m)
	return nil
}

func (r *SkillPackRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SkillPack{}, id).Error
}

func (r *SkillPackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SkillPack, error) {
	var m model.SkillPack
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SkillPackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SkillPack, error) {
	var models []*model.SkillPack
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SkillPackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.SkillPack{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
