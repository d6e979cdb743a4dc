package repository

import (
	"context"

	"pilgrimage/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const packageColumns = `p.id, p.destination_id, p.hotel_id, p.food_plan_id, p.name, p.description, p.tier,
	p.duration_days, p.group_size, p.travel_type, p.travel_cost, p.accommodation_cost, p.food_cost,
	p.tax_amount, p.total_price, p.highlights, p.itinerary, p.rating, p.image_url, p.is_active,
	p.is_featured, p.created_at, p.updated_at`

// PackageRepository обеспечивает доступ к туристическим пакетам.
type PackageRepository struct {
	db *sqlx.DB
}

// NewPackageRepository создает новый репозиторий пакетов.
func NewPackageRepository(db *sqlx.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// ListActive возвращает активные пакеты для публичного каталога, избранные первыми.
func (r *PackageRepository) ListActive(ctx context.Context) ([]model.TravelPackage, error) {
	packages := []model.TravelPackage{}
	err := r.db.SelectContext(ctx, &packages,
		"SELECT * FROM packages WHERE is_active = true ORDER BY is_featured DESC, created_at DESC")
	if err != nil {
		return nil, wrapErr("ошибка при получении списка активных пакетов", err)
	}
	return packages, nil
}

// ListAll возвращает все пакеты с названием места паломничества (для админки).
func (r *PackageRepository) ListAll(ctx context.Context) ([]model.TravelPackage, error) {
	query := `SELECT ` + packageColumns + `, d.name AS destination_name
	          FROM packages p LEFT JOIN destinations d ON d.id = p.destination_id
	          ORDER BY p.created_at DESC`
	packages := []model.TravelPackage{}
	if err := r.db.SelectContext(ctx, &packages, query); err != nil {
		return nil, wrapErr("ошибка при получении списка пакетов", err)
	}
	return packages, nil
}

// GetByID получает пакет по идентификатору.
func (r *PackageRepository) GetByID(ctx context.Context, id string) (*model.TravelPackage, error) {
	var p model.TravelPackage
	if err := r.db.GetContext(ctx, &p, "SELECT * FROM packages WHERE id=$1", id); err != nil {
		return nil, wrapErr("ошибка при получении пакета", err)
	}
	return &p, nil
}

// Create добавляет пакет.
func (r *PackageRepository) Create(ctx context.Context, p *model.TravelPackage) (*model.TravelPackage, error) {
	query := `INSERT INTO packages (id, destination_id, hotel_id, food_plan_id, name, description, tier,
	          duration_days, group_size, travel_type, travel_cost, accommodation_cost, food_cost, tax_amount,
	          total_price, highlights, itinerary, rating, image_url, is_active, is_featured)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	          RETURNING *`
	var out model.TravelPackage
	err := r.db.QueryRowxContext(ctx, query,
		uuid.NewString(), p.DestinationID, p.HotelID, p.FoodPlanID, p.Name, p.Description, p.Tier,
		p.DurationDays, p.GroupSize, p.TravelType, p.TravelCost, p.AccommodationCost, p.FoodCost, p.TaxAmount,
		p.TotalPrice, p.Highlights, p.Itinerary, p.Rating, p.ImageURL, p.IsActive, p.IsFeatured,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось создать пакет", err)
	}
	return &out, nil
}

// Update перезаписывает редактируемые поля пакета.
func (r *PackageRepository) Update(ctx context.Context, p *model.TravelPackage) (*model.TravelPackage, error) {
	query := `UPDATE packages SET destination_id=$1, hotel_id=$2, food_plan_id=$3, name=$4, description=$5,
	          tier=$6, duration_days=$7, group_size=$8, travel_type=$9, travel_cost=$10, accommodation_cost=$11,
	          food_cost=$12, tax_amount=$13, total_price=$14, highlights=$15, itinerary=$16, rating=$17,
	          image_url=$18, is_active=$19, is_featured=$20, updated_at=now()
	          WHERE id=$21 RETURNING *`
	var out model.TravelPackage
	err := r.db.QueryRowxContext(ctx, query,
		p.DestinationID, p.HotelID, p.FoodPlanID, p.Name, p.Description,
		p.Tier, p.DurationDays, p.GroupSize, p.TravelType, p.TravelCost, p.AccommodationCost,
		p.FoodCost, p.TaxAmount, p.TotalPrice, p.Highlights, p.Itinerary, p.Rating,
		p.ImageURL, p.IsActive, p.IsFeatured, p.ID,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось обновить пакет", err)
	}
	return &out, nil
}

// Delete удаляет пакет.
func (r *PackageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM packages WHERE id=$1", id)
	if err != nil {
		return wrapErr("не удалось удалить пакет", err)
	}
	return checkAffected("не удалось удалить пакет", res)
}

// Count возвращает количество пакетов.
func (r *PackageRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "packages")
}
