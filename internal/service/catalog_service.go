package service

import (
	"context"
	"errors"
	"strings"

	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/ws"
	"go-retail-analytics/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CatalogService interface {
	List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, req *CreateProductRequest, actor string) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, actor string) (*model.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID, actor string) (*model.Product, error)
	LowStock(ctx context.Context) ([]model.Product, error)
}

// CreateProductRequest carries a new catalog entry. Pointer fields are
// optional and fall back to catalog defaults.
type CreateProductRequest struct {
	SKU      string         `json:"sku"`
	Name     string         `json:"name"`
	Category model.Category `json:"category"`
	Gender   model.Gender   `json:"gender"`
	Size     model.Size     `json:"size"`
	Season   model.Season   `json:"season"`
	Color    string         `json:"color"`
	Brand    string         `json:"brand"`
	Price    *int64         `json:"price" validate:"required"`
	Cost     *int64         `json:"cost" validate:"required"`
	Stock    *int           `json:"stock"`
	MinStock *int           `json:"minStock"`
	Active   *bool          `json:"active"`
}

// UpdateProductRequest is a partial update; nil fields keep their value.
type UpdateProductRequest struct {
	SKU      *string         `json:"sku"`
	Name     *string         `json:"name"`
	Category *model.Category `json:"category"`
	Gender   *model.Gender   `json:"gender"`
	Size     *model.Size     `json:"size"`
	Season   *model.Season   `json:"season"`
	Color    *string         `json:"color"`
	Brand    *string         `json:"brand"`
	Price    *int64          `json:"price"`
	Cost     *int64          `json:"cost"`
	Stock    *int            `json:"stock"`
	MinStock *int            `json:"minStock"`
	Active   *bool           `json:"active"`
}

type catalogService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	events      EventPublisher
	log         *zap.Logger
}

func NewCatalogService(pRepo repository.ProductRepository, db *gorm.DB, events EventPublisher, log *zap.Logger) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		db:          db,
		events:      publisherOrNop(events),
		log:         log.Named("catalog"),
	}
}

func (s *catalogService) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, productLookupErr(err, id)
	}
	return p, nil
}

func (s *catalogService) Create(ctx context.Context, req *CreateProductRequest, actor string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Message: validator.Message(errs)}
	}

	p := &model.Product{
		SKU:      req.SKU,
		Name:     req.Name,
		Category: req.Category,
		Gender:   req.Gender,
		Size:     req.Size,
		Season:   req.Season,
		Color:    req.Color,
		Brand:    req.Brand,
		Price:    *req.Price,
		Cost:     *req.Cost,
		MinStock: model.DefaultMinStock,
		Active:   true,
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	p.ApplyDefaults()
	p.CreatedBy = actor
	p.UpdatedBy = actor

	if errs := validator.ValidateStruct(p); len(errs) > 0 {
		return nil, &ValidationError{Message: validator.Message(errs)}
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationErr(ErrSKUTaken)
		}
		return nil, err
	}

	s.log.Info("product created", zap.String("sku", p.SKU), zap.String("actor", actor))
	s.events.Publish(ws.EventProductCreated, p)
	return p, nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, actor string) (*model.Product, error) {
	var updated *model.Product
	var oldStock int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.productRepo.LockByID(tx, id)
		if err != nil {
			return productLookupErr(err, id)
		}
		oldStock = existing.Stock

		if req.SKU != nil && strings.TrimSpace(*req.SKU) != existing.SKU {
			return validationErr(ErrSKUImmutable)
		}
		applyProductUpdate(existing, req)
		existing.Name = strings.TrimSpace(existing.Name)
		existing.UpdatedBy = actor

		if errs := validator.ValidateStruct(existing); len(errs) > 0 {
			return &ValidationError{Message: validator.Message(errs)}
		}

		if err := s.productRepo.Save(tx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product updated", zap.String("sku", updated.SKU), zap.String("actor", actor))
	s.events.Publish(ws.EventProductUpdated, updated)
	if updated.Stock != oldStock {
		ev := stockEvent{
			ProductID: updated.ID.String(),
			SKU:       updated.SKU,
			Name:      updated.Name,
			OldStock:  oldStock,
			NewStock:  updated.Stock,
			MinStock:  updated.MinStock,
		}
		s.events.Publish(ws.EventStockUpdate, ev)
		if updated.IsLowStock() {
			s.events.Publish(ws.EventLowStock, ev)
		}
	}
	return updated, nil
}

func (s *catalogService) Deactivate(ctx context.Context, id uuid.UUID, actor string) (*model.Product, error) {
	if err := s.productRepo.Deactivate(ctx, id, actor); err != nil {
		return nil, productLookupErr(err, id)
	}

	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, productLookupErr(err, id)
	}

	s.log.Info("product deactivated", zap.String("sku", p.SKU), zap.String("actor", actor))
	s.events.Publish(ws.EventProductDeactivated, p)
	return p, nil
}

func (s *catalogService) LowStock(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.ListLowStock(ctx, 0)
}

func applyProductUpdate(p *model.Product, req *UpdateProductRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.Size != nil {
		p.Size = *req.Size
	}
	if req.Season != nil {
		p.Season = *req.Season
	}
	if req.Color != nil {
		p.Color = *req.Color
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Cost != nil {
		p.Cost = *req.Cost
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
}

func productLookupErr(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: "product", ID: id.String()}
	}
	return err
}
