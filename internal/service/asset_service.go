package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mkcore/itam-api/internal/models"
	appErrors "github.com/mkcore/itam-api/pkg/errors"
)

type assetRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Asset, error)
	List(ctx context.Context) ([]models.Asset, error)
	Create(ctx context.Context, asset *models.Asset) error
	Update(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, id int64) error
}

// AssetRequest carries the field set for asset mutations. The assigned
// user and department ids are accepted verbatim: the register does not
// verify they name existing rows.
type AssetRequest struct {
	Category         string     `json:"category" validate:"required"`
	Product          string     `json:"product" validate:"required"`
	Location         string     `json:"location" validate:"required"`
	Company          string     `json:"company" validate:"required"`
	SerialNumber     string     `json:"serial_number" validate:"required"`
	Status           string     `json:"status" validate:"required,oneof='In Use' Spare"`
	AssignedToUserID *int64     `json:"assigned_to_user_id"`
	DepartmentID     *int64     `json:"department_id"`
	DeploymentDate   *time.Time `json:"deployment_date"`
	Vendor           *string    `json:"vendor"`
	Manufacturer     *string    `json:"manufacturer"`
	PurchaseDate     *time.Time `json:"purchase_date"`
	OrderNo          *string    `json:"order_no"`
	Price            *string    `json:"price"`
	OrderStatus      *string    `json:"order_status"`
	WarrantyEndDate  *time.Time `json:"warranty_end_date"`
	CPU              *string    `json:"cpu"`
	RAM              *string    `json:"ram"`
	HDD              *string    `json:"hdd"`
}

func (r *AssetRequest) applyDefaults() {
	if r.Status == "" {
		r.Status = models.AssetStatusSpare
	}
}

// AssetService coordinates asset mutations.
type AssetService struct {
	repo      assetRepository
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssetService creates an instance of AssetService.
func NewAssetService(repo assetRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *AssetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AssetService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// List returns all assets.
func (s *AssetService) List(ctx context.Context) ([]models.Asset, error) {
	assets, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assets")
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}

// Get returns an asset by id.
func (s *AssetService) Get(ctx context.Context, id int64) (*models.Asset, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "asset not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load asset")
	}
	return asset, nil
}

// Create registers a new asset and appends one audit row.
func (s *AssetService) Create(ctx context.Context, req AssetRequest, actor string) (*models.Asset, error) {
	req.applyDefaults()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid asset payload")
	}

	asset := assetFromRequest(req)
	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create asset")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionCreate, "Asset", strconv.FormatInt(asset.ID, 10), fmt.Sprintf("Created asset %s", asset.Product)); err != nil {
		return nil, err
	}
	return asset, nil
}

// Update fully replaces the mutable fields of an asset.
func (s *AssetService) Update(ctx context.Context, id int64, req AssetRequest, actor string) (*models.Asset, error) {
	req.applyDefaults()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid asset payload")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "asset not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load asset")
	}

	asset := assetFromRequest(req)
	asset.ID = id

	if err := s.repo.Update(ctx, asset); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "asset not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update asset")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionUpdate, "Asset", strconv.FormatInt(id, 10), fmt.Sprintf("Updated asset %s", asset.Product)); err != nil {
		return nil, err
	}
	return asset, nil
}

// Delete removes an asset.
func (s *AssetService) Delete(ctx context.Context, id int64, actor string) error {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "asset not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load asset")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "asset not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete asset")
	}

	return s.audit.Record(ctx, actor, models.AuditActionDelete, "Asset", strconv.FormatInt(id, 10), fmt.Sprintf("Deleted asset %s", asset.Product))
}

func assetFromRequest(req AssetRequest) *models.Asset {
	return &models.Asset{
		Category:         req.Category,
		Product:          req.Product,
		Location:         req.Location,
		Company:          req.Company,
		SerialNumber:     req.SerialNumber,
		Status:           req.Status,
		AssignedToUserID: req.AssignedToUserID,
		DepartmentID:     req.DepartmentID,
		DeploymentDate:   req.DeploymentDate,
		Vendor:           req.Vendor,
		Manufacturer:     req.Manufacturer,
		PurchaseDate:     req.PurchaseDate,
		OrderNo:          req.OrderNo,
		Price:            req.Price,
		OrderStatus:      req.OrderStatus,
		WarrantyEndDate:  req.WarrantyEndDate,
		CPU:              req.CPU,
		RAM:              req.RAM,
		HDD:              req.HDD,
	}
}
