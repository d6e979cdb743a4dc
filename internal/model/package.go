package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// PackageTier — ценовой класс пакета.
type PackageTier string

const (
	TierBasic   PackageTier = "basic"
	TierPremium PackageTier = "premium"
)

// Valid сообщает, входит ли значение в перечисление package_tier.
func (t PackageTier) Valid() bool {
	return t == TierBasic || t == TierPremium
}

// TravelPackage представляет туристический пакет (таблица packages).
type TravelPackage struct {
	ID                string             `db:"id" json:"id"`
	DestinationID     *string            `db:"destination_id" json:"destination_id"`
	HotelID           *string            `db:"hotel_id" json:"hotel_id"`
	FoodPlanID        *string            `db:"food_plan_id" json:"food_plan_id"`
	Name              string             `db:"name" json:"name"`
	Description       *string            `db:"description" json:"description"`
	Tier              PackageTier        `db:"tier" json:"tier"`
	DurationDays      int                `db:"duration_days" json:"duration_days"`
	GroupSize         *string            `db:"group_size" json:"group_size"`
	TravelType        *string            `db:"travel_type" json:"travel_type"`
	TravelCost        float64            `db:"travel_cost" json:"travel_cost"`
	AccommodationCost float64            `db:"accommodation_cost" json:"accommodation_cost"`
	FoodCost          float64            `db:"food_cost" json:"food_cost"`
	TaxAmount         float64            `db:"tax_amount" json:"tax_amount"`
	TotalPrice        float64            `db:"total_price" json:"total_price"`
	Highlights        pq.StringArray     `db:"highlights" json:"highlights"`
	Itinerary         types.NullJSONText `db:"itinerary" json:"itinerary"`
	Rating            *float64           `db:"rating" json:"rating"`
	ImageURL          *string            `db:"image_url" json:"image_url"`
	IsActive          bool               `db:"is_active" json:"is_active"`
	IsFeatured        bool               `db:"is_featured" json:"is_featured"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updated_at"`

	DestinationName *string `db:"destination_name" json:"destination_name,omitempty"`
}

// CostBreakdown — составляющие цены пакета на одного человека.
type CostBreakdown struct {
	TravelCost        float64 `json:"travel_cost"`
	AccommodationCost float64 `json:"accommodation_cost"`
	FoodCost          float64 `json:"food_cost"`
	TaxAmount         float64 `json:"tax_amount"`
}

// Total возвращает сумму четырех составляющих.
func (c CostBreakdown) Total() float64 {
	return c.TravelCost + c.AccommodationCost + c.FoodCost + c.TaxAmount
}

// Costs возвращает составляющие цены пакета.
func (p *TravelPackage) Costs() CostBreakdown {
	return CostBreakdown{
		TravelCost:        p.TravelCost,
		AccommodationCost: p.AccommodationCost,
		FoodCost:          p.FoodCost,
		TaxAmount:         p.TaxAmount,
	}
}

// ComputeTotal пересчитывает TotalPrice как сумму составляющих.
func (p *TravelPackage) ComputeTotal() float64 {
	p.TotalPrice = p.Costs().Total()
	return p.TotalPrice
}
