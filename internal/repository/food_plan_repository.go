package repository

import (
	"context"

	"pilgrimage/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// FoodPlanRepository обеспечивает доступ к планам питания.
type FoodPlanRepository struct {
	db *sqlx.DB
}

// NewFoodPlanRepository создает новый репозиторий планов питания.
func NewFoodPlanRepository(db *sqlx.DB) *FoodPlanRepository {
	return &FoodPlanRepository{db: db}
}

// List возвращает планы питания, новые первыми.
func (r *FoodPlanRepository) List(ctx context.Context) ([]model.FoodPlan, error) {
	plans := []model.FoodPlan{}
	if err := r.db.SelectContext(ctx, &plans, "SELECT * FROM food_plans ORDER BY created_at DESC"); err != nil {
		return nil, wrapErr("ошибка при получении списка планов питания", err)
	}
	return plans, nil
}

// ListNames возвращает id и названия планов питания.
func (r *FoodPlanRepository) ListNames(ctx context.Context) ([]model.NamedRef, error) {
	refs := []model.NamedRef{}
	if err := r.db.SelectContext(ctx, &refs, "SELECT id, name FROM food_plans ORDER BY name"); err != nil {
		return nil, wrapErr("ошибка при получении названий планов питания", err)
	}
	return refs, nil
}

// GetByID получает план питания по идентификатору.
func (r *FoodPlanRepository) GetByID(ctx context.Context, id string) (*model.FoodPlan, error) {
	var f model.FoodPlan
	if err := r.db.GetContext(ctx, &f, "SELECT * FROM food_plans WHERE id=$1", id); err != nil {
		return nil, wrapErr("ошибка при получении плана питания", err)
	}
	return &f, nil
}

// Create добавляет план питания.
func (r *FoodPlanRepository) Create(ctx context.Context, f *model.FoodPlan) (*model.FoodPlan, error) {
	query := `INSERT INTO food_plans (id, name, meal_type, meals_per_day, price, dining_location, description, quality_standard)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING *`
	var out model.FoodPlan
	err := r.db.QueryRowxContext(ctx, query,
		uuid.NewString(), f.Name, f.MealType, f.MealsPerDay, f.Price, f.DiningLocation, f.Description, f.QualityStandard,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось создать план питания", err)
	}
	return &out, nil
}

// Update перезаписывает редактируемые поля плана питания.
func (r *FoodPlanRepository) Update(ctx context.Context, f *model.FoodPlan) (*model.FoodPlan, error) {
	query := `UPDATE food_plans SET name=$1, meal_type=$2, meals_per_day=$3, price=$4, dining_location=$5,
	          description=$6, quality_standard=$7, updated_at=now() WHERE id=$8 RETURNING *`
	var out model.FoodPlan
	err := r.db.QueryRowxContext(ctx, query,
		f.Name, f.MealType, f.MealsPerDay, f.Price, f.DiningLocation, f.Description, f.QualityStandard, f.ID,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось обновить план питания", err)
	}
	return &out, nil
}

// Delete удаляет план питания.
func (r *FoodPlanRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM food_plans WHERE id=$1", id)
	if err != nil {
		return wrapErr("не удалось удалить план питания", err)
	}
	return checkAffected("не удалось удалить план питания", res)
}
