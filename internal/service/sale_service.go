package service

import (
	"context"
	"errors"
	"time"

	"go-retail-analytics/internal/model"
	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/ws"
	"go-retail-analytics/pkg/metrics"
	"go-retail-analytics/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, req *CreateSaleRequest, actor string) (*model.Sale, error)
	List(ctx context.Context, filter repository.SaleFilter) ([]model.Sale, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	// SyncSequence raises the sale counter past the highest stored number.
	SyncSequence(ctx context.Context) error
}

type SaleItemRequest struct {
	Product  uuid.UUID `json:"product" validate:"uuid_required"`
	Quantity int       `json:"quantity" validate:"min=1"`
}

type CreateSaleRequest struct {
	Branch        model.Branch        `json:"branch" validate:"enum"`
	Items         []SaleItemRequest   `json:"items" validate:"dive"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod" validate:"omitempty,enum"`
	Customer      *model.Customer     `json:"customer"`
	Notes         string              `json:"notes"`
	SaleDate      *time.Time          `json:"saleDate"`
}

type saleService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	sequences   repository.SequenceRepository
	db          *gorm.DB
	events      EventPublisher
	log         *zap.Logger
	now         func() time.Time
}

func NewSaleService(
	pRepo repository.ProductRepository,
	sRepo repository.SaleRepository,
	sequences repository.SequenceRepository,
	db *gorm.DB,
	events EventPublisher,
	log *zap.Logger,
) SaleService {
	return &saleService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		sequences:   sequences,
		db:          db,
		events:      publisherOrNop(events),
		log:         log.Named("sales"),
		now:         time.Now,
	}
}

// touchedProduct tracks one product across every line that references it.
type touchedProduct struct {
	product *model.Product
	claimed int
}

// Create commits a sale. Products are locked in submission order, every
// line is checked against what earlier lines already claimed, and stock,
// counter and sale rows are written in one transaction. A failure leaves
// the catalog untouched.
func (s *saleService) Create(ctx context.Context, req *CreateSaleRequest, actor string) (*model.Sale, error) {
	if len(req.Items) == 0 {
		metrics.RecordRejectedSale("validation")
		return nil, validationErr(ErrEmptySale)
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		metrics.RecordRejectedSale("validation")
		return nil, &ValidationError{Message: validator.Message(errs)}
	}

	sale := &model.Sale{
		Branch:        req.Branch,
		PaymentMethod: req.PaymentMethod,
		Status:        model.StatusCompleted,
		SaleDate:      s.now(),
		Notes:         req.Notes,
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = model.PaymentCard
	}
	if req.SaleDate != nil && !req.SaleDate.IsZero() {
		sale.SaleDate = *req.SaleDate
	}
	sale.SaleDate = sale.SaleDate.UTC()
	if req.Customer != nil {
		sale.Customer = *req.Customer
	}
	sale.CreatedBy = actor
	sale.UpdatedBy = actor

	var touched []*touchedProduct

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		touched = touched[:0]
		sale.Items = sale.Items[:0]
		sale.TotalAmount, sale.TotalCost = 0, 0
		byID := make(map[uuid.UUID]*touchedProduct, len(req.Items))

		for i, line := range req.Items {
			t, ok := byID[line.Product]
			if !ok {
				p, err := s.productRepo.LockByID(tx, line.Product)
				if err != nil {
					return productLookupErr(err, line.Product)
				}
				t = &touchedProduct{product: p}
				byID[line.Product] = t
				touched = append(touched, t)
			}

			available := t.product.Stock - t.claimed
			if available < line.Quantity {
				return &InsufficientStockError{
					Product:   t.product.Name,
					Available: available,
					Requested: line.Quantity,
				}
			}
			t.claimed += line.Quantity

			item := model.NewSaleItem(t.product, line.Quantity, i)
			sale.Items = append(sale.Items, item)
			sale.TotalAmount += item.Subtotal
			sale.TotalCost += item.LineCost()
		}
		sale.TotalProfit = sale.TotalAmount - sale.TotalCost

		for _, item := range sale.Items {
			if err := s.productRepo.DecrementStock(tx, item.ProductID, item.Quantity, actor); err != nil {
				if errors.Is(err, repository.ErrStockConflict) {
					return validationErr(err)
				}
				return err
			}
		}

		n, err := s.sequences.Next(ctx, tx, model.SaleSequence)
		if err != nil {
			return err
		}
		sale.SaleNumber = model.FormatSaleNumber(n)

		return s.saleRepo.Create(tx, sale)
	})
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	s.afterCommit(sale, touched)
	return sale, nil
}

func (s *saleService) afterCommit(sale *model.Sale, touched []*touchedProduct) {
	metrics.RecordSale(string(sale.Branch), string(sale.PaymentMethod), sale.TotalAmount)
	for _, item := range sale.Items {
		metrics.RecordUnits(string(item.Category), item.Quantity)
	}

	s.log.Info("sale committed",
		zap.String("sale_number", sale.SaleNumber),
		zap.String("branch", string(sale.Branch)),
		zap.Int("lines", len(sale.Items)),
		zap.Int64("total_amount", sale.TotalAmount),
		zap.String("actor", sale.CreatedBy),
	)

	s.events.Publish(ws.EventSaleCreated, sale)
	for _, t := range touched {
		p := t.product
		ev := stockEvent{
			ProductID: p.ID.String(),
			SKU:       p.SKU,
			Name:      p.Name,
			OldStock:  p.Stock,
			NewStock:  p.Stock - t.claimed,
			MinStock:  p.MinStock,
		}
		s.events.Publish(ws.EventStockUpdate, ev)
		if p.Active && ev.OldStock > p.MinStock && ev.NewStock <= p.MinStock {
			s.events.Publish(ws.EventLowStock, ev)
		}
	}
}

func (s *saleService) recordRejection(err error) {
	var (
		nf    *NotFoundError
		stock *InsufficientStockError
		ve    *ValidationError
	)
	switch {
	case errors.As(err, &stock):
		metrics.RecordRejectedSale("insufficient_stock")
		s.log.Info("sale rejected", zap.Error(err))
	case errors.As(err, &nf):
		metrics.RecordRejectedSale("not_found")
		s.log.Info("sale rejected", zap.Error(err))
	case errors.As(err, &ve):
		metrics.RecordRejectedSale("validation")
		s.log.Info("sale rejected", zap.Error(err))
	default:
		metrics.RecordRejectedSale("error")
		s.log.Error("sale commit failed", zap.Error(err))
	}
}

func (s *saleService) List(ctx context.Context, filter repository.SaleFilter) ([]model.Sale, error) {
	return s.saleRepo.List(ctx, filter)
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "sale", ID: id.String()}
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) SyncSequence(ctx context.Context) error {
	latest, err := s.saleRepo.LatestSaleNumber(ctx)
	if err != nil {
		return err
	}
	var floor int64
	if latest != "" {
		if floor, err = model.ParseSaleNumber(latest); err != nil {
			return err
		}
	}
	if err := s.sequences.Ensure(ctx, model.SaleSequence, floor); err != nil {
		return err
	}
	s.log.Info("sale sequence ready", zap.Int64("floor", floor))
	return nil
}
