package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mkcore/itam-api/internal/models"
)

// AssetRepository provides database access for asset records. Assigned
// user and department references are written as-is; existence of the
// referenced rows is deliberately not checked.
type AssetRepository struct {
	db *sqlx.DB
}

// NewAssetRepository creates a new instance of AssetRepository.
func NewAssetRepository(db *sqlx.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = `id, category, product, location, company, serial_number, status, assigned_to_user_id, department_id, deployment_date, vendor, manufacturer, purchase_date, order_no, price, order_status, warranty_end_date, cpu, ram, hdd`

// FindByID returns an asset by identifier.
func (r *AssetRepository) FindByID(ctx context.Context, id int64) (*models.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 LIMIT 1`
	var asset models.Asset
	if err := r.db.GetContext(ctx, &asset, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find asset by id: %w", err)
	}
	return &asset, nil
}

// List returns all assets ordered by identifier.
func (r *AssetRepository) List(ctx context.Context) ([]models.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets ORDER BY id ASC`
	var assets []models.Asset
	if err := r.db.SelectContext(ctx, &assets, query); err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}

// Create inserts a new asset and assigns its identifier.
func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	const query = `INSERT INTO assets
	(category, product, location, company, serial_number, status, assigned_to_user_id, department_id, deployment_date, vendor, manufacturer, purchase_date, order_no, price, order_status, warranty_end_date, cpu, ram, hdd)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		asset.Category, asset.Product, asset.Location, asset.Company,
		asset.SerialNumber, asset.Status, asset.AssignedToUserID, asset.DepartmentID,
		asset.DeploymentDate, asset.Vendor, asset.Manufacturer, asset.PurchaseDate,
		asset.OrderNo, asset.Price, asset.OrderStatus, asset.WarrantyEndDate,
		asset.CPU, asset.RAM, asset.HDD,
	).Scan(&asset.ID)
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an asset.
func (r *AssetRepository) Update(ctx context.Context, asset *models.Asset) error {
	const query = `UPDATE assets SET
	category = :category, product = :product, location = :location, company = :company,
	serial_number = :serial_number, status = :status,
	assigned_to_user_id = :assigned_to_user_id, department_id = :department_id,
	deployment_date = :deployment_date, vendor = :vendor, manufacturer = :manufacturer,
	purchase_date = :purchase_date, order_no = :order_no, price = :price,
	order_status = :order_status, warranty_end_date = :warranty_end_date,
	cpu = :cpu, ram = :ram, hdd = :hdd
	WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, asset)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return ensureRowAffected(res, "update asset")
}

// Delete removes an asset.
func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return ensureRowAffected(res, "delete asset")
}
