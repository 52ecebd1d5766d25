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

type PromptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PromptMapper
}

func NewPromptRepository(db *gorm.DB) contract.PromptRepository {
	return &PromptRepositoryImpl{
		db:     db,
		mapper: mapper.NewPromptMapper(),
	}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PromptRepositoryImpl) Create(ctx context.Context, prompt *entity.Prompt) error {
	m := r.mapper.ToModel(prompt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*prompt = *r.mapper.ToEntity(m)
	return nil
}

func (r *PromptRepositoryImpl) Update(ctx context.Context, prompt *entity.Prompt) error {
	m := r.mapper.ToModel(prompt)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*prompt = *r.mapper.ToEntity(m)
	return nil
}

func (r *PromptRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Prompt{}, id).Error
}

func (r *PromptRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Prompt, error) {
	var m model.Prompt
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PromptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Prompt, error) {
	var models []*model.Prompt
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PromptRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Prompt{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PromptRepositoryImpl) IncrementViews(ctx context.Context, id uuid.UUID, n int64) error {
	if n <= 0 {
		return nil
	}
	return specification.PublicActive{}.Apply(r.db.WithContext(ctx).Model(&model.Prompt{})).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", n)).Error
}

func (r *PromptRepositoryImpl) AdjustFavorites(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).Model(&model.Prompt{}).
		Where("id = ?", id).
		UpdateColumn("favorites_count", gorm.Expr("GREATEST(favorites_count + ?, 0)", delta)).Error
}

func (r *PromptRepositoryImpl) SetStatus(ctx context.Context, id uuid.UUID, status string, hiddenReason *string) error {
	result := r.db.WithContext(ctx).Model(&model.Prompt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"hidden_reason": hiddenReason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PromptRepositoryImpl) Facets(ctx context.Context) ([]string, []string, error) {
	macros := make([]string, 0)
	listed := specification.PublicActive{}.Apply(r.db.WithContext(ctx).Model(&model.Prompt{}))
	if err := listed.Distinct("macro").Order("macro").Pluck("macro", &macros).Error; err != nil {
		return nil, nil, err
	}

	tags := make([]string, 0)
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT jsonb_array_elements_text(tags) AS tag
		FROM prompts
		WHERE visibility = ? AND status = ? AND deleted_at IS NULL AND jsonb_typeof(tags) = 'array'
		ORDER BY tag`, entity.VisibilityPublic, entity.StatusActive).
		Scan(&tags).Error
	if err != nil {
		return nil, nil, err
	}
	return macros, tags, nil
}
