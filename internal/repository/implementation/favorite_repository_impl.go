package implementation

import (
	"context"

	"promptito-be/internal/entity"
	"promptito-be/internal/mapper"
	"promptito-be/internal/model"
	"promptito-be/internal/repository/contract"
	"promptito-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FavoriteMapper
}

func NewFavoriteRepository(db *gorm.DB) contract.FavoriteRepository {
	return &FavoriteRepositoryImpl{
		db:     db,
		mapper: mapper.NewFavoriteMapper(),
	}
}

func (r *FavoriteRepositoryImpl) Create(ctx context.Context, favorite *entity.Favorite) (bool, error) {
	m := r.mapper.ToModel(favorite)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Omit("Prompt").Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	*favorite = *r.mapper.ToEntity(m)
	return true, nil
}

func (r *FavoriteRepositoryImpl) Delete(ctx context.Context, userId, promptId uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND prompt_id = ?", userId, promptId).
		Delete(&model.Favorite{})
	return result.RowsAffected > 0, result.Error
}

func (r *FavoriteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Favorite, error) {
	var models []*model.Favorite
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FavoriteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Favorite{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
