package model

import "time"

// FoodPlan представляет план питания, включаемый в пакет.
type FoodPlan struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	MealType        string    `db:"meal_type" json:"meal_type"` // Vegetarian / Non-Veg / Jain
	MealsPerDay     int       `db:"meals_per_day" json:"meals_per_day"`
	Price           float64   `db:"price" json:"price"`
	DiningLocation  *string   `db:"dining_location" json:"dining_location"`
	Description     *string   `db:"description" json:"description"`
	QualityStandard *string   `db:"quality_standard" json:"quality_standard"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
