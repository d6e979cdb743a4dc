package service

import (
	"context"
	"strings"

	"pilgrimage/internal/model"
)

// FoodPlanService — управление планами питания в админке.
type FoodPlanService struct {
	plans FoodPlanStore
}

// NewFoodPlanService создает сервис планов питания.
func NewFoodPlanService(plans FoodPlanStore) *FoodPlanService {
	return &FoodPlanService{plans: plans}
}

// List возвращает все планы питания.
func (s *FoodPlanService) List(ctx context.Context) ([]model.FoodPlan, error) {
	return s.plans.List(ctx)
}

func normalizeFoodPlan(f *model.FoodPlan) error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return invalid("name is required")
	}
	if strings.TrimSpace(f.MealType) == "" {
		f.MealType = "Vegetarian"
	}
	if f.MealsPerDay == 0 {
		f.MealsPerDay = 3
	}
	if f.MealsPerDay < 0 {
		return invalid("meals per day must be positive")
	}
	if f.Price < 0 {
		return invalid("price must not be negative")
	}
	f.DiningLocation = emptyToNil(f.DiningLocation)
	f.Description = emptyToNil(f.Description)
	f.QualityStandard = emptyToNil(f.QualityStandard)
	return nil
}

// Create проверяет и сохраняет новый план питания.
func (s *FoodPlanService) Create(ctx context.Context, f model.FoodPlan) (*model.FoodPlan, error) {
	if err := normalizeFoodPlan(&f); err != nil {
		return nil, err
	}
	return s.plans.Create(ctx, &f)
}

// Update перезаписывает план питания.
func (s *FoodPlanService) Update(ctx context.Context, id string, f model.FoodPlan) (*model.FoodPlan, error) {
	if err := requireID("food plan id", id); err != nil {
		return nil, err
	}
	if err := normalizeFoodPlan(&f); err != nil {
		return nil, err
	}
	f.ID = id
	return s.plans.Update(ctx, &f)
}

// Delete удаляет план питания.
func (s *FoodPlanService) Delete(ctx context.Context, id string) error {
	if err := requireID("food plan id", id); err != nil {
		return err
	}
	return s.plans.Delete(ctx, id)
}
