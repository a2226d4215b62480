package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const insertChunk = 100

type storeRepo struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewStoreRepository(db *gorm.DB, logger zerolog.Logger) repository.StoreRepository {
	return &storeRepo{db: db, logger: logger.With().Str("component", "sqlstore").Logger()}
}

func (r *storeRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnreachable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnreachable, err)
	}
	return nil
}

func (r *storeRepo) HasSchema(ctx context.Context) (bool, error) {
	m := r.db.WithContext(ctx).Migrator()
	for _, model := range schemaModels() {
		if !m.HasTable(model) {
			return false, nil
		}
	}
	return true, nil
}

func (r *storeRepo) CreateSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(schemaModels()...); err != nil {
		return classify(err)
	}
	return nil
}

func (r *storeRepo) DropSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Migrator().DropTable(schemaModels()...); err != nil {
		return classify(err)
	}
	return nil
}

func (r *storeRepo) Counts(ctx context.Context) (domain.TableCounts, error) {
	var c domain.TableCounts
	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Customer{}).Count(&c.Customers).Error; err != nil {
		return c, classify(err)
	}
	if err := db.Model(&domain.Product{}).Count(&c.Products).Error; err != nil {
		return c, classify(err)
	}
	if err := db.Model(&domain.Order{}).Count(&c.Orders).Error; err != nil {
		return c, classify(err)
	}
	if err := db.Model(&domain.OrderItem{}).Count(&c.OrderItems).Error; err != nil {
		return c, classify(err)
	}
	return c, nil
}

func (r *storeRepo) ClearAll(ctx context.Context) error {
	tables := []struct {
		name  string
		model any
	}{
		{"order_items", &domain.OrderItem{}},
		{"orders", &domain.Order{}},
		{"products", &domain.Product{}},
		{"customers", &domain.Customer{}},
	}
	for _, t := range tables {
		var removed int64
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Where("1 = 1").Delete(t.model)
			removed = res.RowsAffected
			return res.Error
		})
		if err != nil {
			return fmt.Errorf("clear %s: %w", t.name, classify(err))
		}
		r.logger.Debug().Str("table", t.name).Int64("rows", removed).Msg("table cleared")
	}
	return nil
}

func (r *storeRepo) SaveCustomers(ctx context.Context, customers []domain.Customer) error {
	return saveBatch(ctx, r.db, r.logger, "customers", customers)
}

func (r *storeRepo) SaveProducts(ctx context.Context, products []domain.Product) error {
	return saveBatch(ctx, r.db, r.logger, "products", products)
}

func (r *storeRepo) SaveOrders(ctx context.Context, orders []domain.Order) error {
	return saveBatch(ctx, r.db, r.logger, "orders", orders)
}

func (r *storeRepo) SaveOrderItems(ctx context.Context, items []domain.OrderItem) error {
	return saveBatch(ctx, r.db, r.logger, "order_items", items)
}

// saveBatch writes the whole collection in one transaction, in chunks. Any
// failure, including a cancelled context, rolls the collection back.
func saveBatch[T any](ctx context.Context, db *gorm.DB, logger zerolog.Logger, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < len(rows); i += insertChunk {
			end := min(i+insertChunk, len(rows))

			chunk := rows[i:end]
			if err := tx.Create(&chunk).Error; err != nil {
				return err
			}
			logger.Debug().Str("table", table).Int("from", i).Int("to", end).Msg("chunk saved")
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("batch save failed")
		return classify(err)
	}

	logger.Info().Str("table", table).Int("rows", len(rows)).Msg("batch saved")
	return nil
}

func (r *storeRepo) ListCustomers(ctx context.Context, limit int) ([]domain.CustomerSummary, error) {
	out := []domain.CustomerSummary{}
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Select("id", "first_name", "last_name", "email", "city").
		Order("id").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (r *storeRepo) ListActiveProducts(ctx context.Context, limit int) ([]domain.ProductSummary, error) {
	out := []domain.ProductSummary{}
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("id", "name", "price", "category", "stock_quantity").
		Where("is_active = ?", true).
		Order("id").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

type orderSummaryRow struct {
	domain.OrderSummary
	FirstName string
	LastName  string
}

// ListOrders resolves the owning customer's name with a join at read time.
func (r *storeRepo) ListOrders(ctx context.Context, limit int) ([]domain.OrderSummary, error) {
	var rows []orderSummaryRow
	err := r.db.WithContext(ctx).Table("orders").
		Select("orders.id, orders.order_number, orders.order_date, orders.status, orders.total_amount, customers.first_name, customers.last_name").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Order("orders.id").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	out := make([]domain.OrderSummary, 0, len(rows))
	for _, row := range rows {
		s := row.OrderSummary
		s.CustomerFullName = domain.Customer{FirstName: row.FirstName, LastName: row.LastName}.FullName()
		out = append(out, s)
	}
	return out, nil
}

// Stats sums every order's total regardless of status.
func (r *storeRepo) Stats(ctx context.Context) (domain.StoreStats, error) {
	var s domain.StoreStats

	counts, err := r.Counts(ctx)
	if err != nil {
		return s, err
	}
	s.CustomerCount = counts.Customers
	s.ProductCount = counts.Products
	s.OrderCount = counts.Orders
	s.OrderItemCount = counts.OrderItems

	row := r.db.WithContext(ctx).Model(&domain.Order{}).Select("COALESCE(SUM(total_amount), 0)").Row()
	if err := row.Scan(&s.TotalRevenue); err != nil {
		return s, classify(err)
	}
	s.TotalRevenue = s.TotalRevenue.Round(2)
	return s, nil
}

// classify maps driver errors onto the domain error kinds.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrSeedCanceled, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", domain.ErrConstraintViolation, err)
	default:
		return err
	}
}
