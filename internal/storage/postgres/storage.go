package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/minhvn/solemart/internal/domain/errors"
	"github.com/minhvn/solemart/internal/domain/model"
	"github.com/minhvn/solemart/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage depends on.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type pendingOrderRepository struct {
	storage *Storage
}

type settlementRepository struct {
	storage *Storage
}

type discountRepository struct {
	storage *Storage
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) PendingOrders() repository.PendingOrderRepository {
	return &pendingOrderRepository{storage: s}
}

func (s *Storage) Settlements() repository.SettlementRepository {
	return &settlementRepository{storage: s}
}

func (s *Storage) Discounts() repository.DiscountRepository {
	return &discountRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            total_amount DOUBLE PRECISION NOT NULL,
            shipping_cost DOUBLE PRECISION NOT NULL,
            discount_amount DOUBLE PRECISION NOT NULL,
            final_amount DOUBLE PRECISION NOT NULL,
            house_number TEXT NOT NULL,
            street TEXT NOT NULL,
            ward TEXT NOT NULL,
            district TEXT NOT NULL,
            city TEXT NOT NULL,
            phone TEXT NOT NULL,
            shipping_method TEXT NOT NULL,
            payment_method TEXT NOT NULL,
            discount_code TEXT NOT NULL DEFAULT '',
            customer_notes TEXT NOT NULL DEFAULT '',
            order_status TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            tracking_number TEXT NOT NULL DEFAULT '',
            transaction_ref TEXT NOT NULL DEFAULT '',
            gateway_txn_no TEXT NOT NULL DEFAULT '',
            bank_code TEXT NOT NULL DEFAULT '',
            ordered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            delivered_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id TEXT NOT NULL,
            size TEXT NOT NULL,
            color TEXT NOT NULL DEFAULT '',
            quantity INT NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL,
            original_price DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS order_status_history (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            status TEXT NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS pending_orders (
            transaction_ref TEXT PRIMARY KEY,
            user_id BIGINT NOT NULL,
            payload JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS settlements (
            transaction_ref TEXT PRIMARY KEY,
            outcome TEXT NOT NULL,
            response_code TEXT NOT NULL,
            message TEXT NOT NULL,
            order_id BIGINT,
            gateway_txn_no TEXT NOT NULL DEFAULT '',
            bank_code TEXT NOT NULL DEFAULT '',
            amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            pay_date TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS discounts (
            code TEXT PRIMARY KEY,
            kind TEXT NOT NULL,
            value DOUBLE PRECISION NOT NULL,
            min_subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            expires_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, ordered_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_history_order ON order_status_history(order_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_pending_orders_created ON pending_orders(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, is_admin, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Admin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, is_admin, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Admin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, draft *model.OrderDraft) (*model.Order, error) {
	order := &model.Order{
		UserID:          draft.UserID,
		Items:           draft.Items,
		TotalAmount:     draft.TotalAmount,
		ShippingCost:    draft.ShippingCost,
		DiscountAmount:  draft.DiscountAmount,
		FinalAmount:     draft.FinalAmount,
		ShippingAddress: draft.ShippingAddress,
		ShippingMethod:  draft.ShippingMethod,
		PaymentMethod:   draft.PaymentMethod,
		DiscountCode:    draft.DiscountCode,
		CustomerNotes:   draft.CustomerNotes,
		OrderStatus:     model.OrderStatusProcessing,
		PaymentStatus:   draft.PaymentStatus,
		StatusHistory:   draft.StatusHistory,
		TransactionRef:  draft.TransactionRef,
		GatewayTxnNo:    draft.GatewayTxnNo,
		BankCode:        draft.BankCode,
		OrderedAt:       draft.OrderedAt,
		UpdatedAt:       draft.UpdatedAt,
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
            (user_id, total_amount, shipping_cost, discount_amount, final_amount,
             house_number, street, ward, district, city, phone,
             shipping_method, payment_method, discount_code, customer_notes,
             order_status, payment_status, transaction_ref, gateway_txn_no, bank_code,
             ordered_at, updated_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
            RETURNING id`
		if err := tx.QueryRow(ctx, insertOrder,
			draft.UserID, draft.TotalAmount, draft.ShippingCost, draft.DiscountAmount, draft.FinalAmount,
			draft.ShippingAddress.HouseNumber, draft.ShippingAddress.Street, draft.ShippingAddress.Ward,
			draft.ShippingAddress.District, draft.ShippingAddress.City, draft.ShippingAddress.Phone,
			draft.ShippingMethod, draft.PaymentMethod, draft.DiscountCode, draft.CustomerNotes,
			model.OrderStatusProcessing, draft.PaymentStatus, draft.TransactionRef, draft.GatewayTxnNo, draft.BankCode,
			draft.OrderedAt, draft.UpdatedAt,
		).Scan(&order.ID); err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items
            (order_id, product_id, size, color, quantity, unit_price, original_price)
            VALUES ($1,$2,$3,$4,$5,$6,$7)`
		for _, item := range draft.Items {
			if _, err := tx.Exec(ctx, insertItem,
				order.ID, item.ProductID, item.Size, item.Color, item.Quantity, item.UnitPrice, item.OriginalPrice,
			); err != nil {
				return err
			}
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, status, note, created_at) VALUES ($1,$2,$3,$4)`
		for _, entry := range draft.StatusHistory {
			if _, err := tx.Exec(ctx, insertHistory, order.ID, entry.Status, entry.Note, entry.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

const orderColumns = `id, user_id, total_amount, shipping_cost, discount_amount, final_amount,
       house_number, street, ward, district, city, phone,
       shipping_method, payment_method, discount_code, customer_notes,
       order_status, payment_status, tracking_number, transaction_ref, gateway_txn_no, bank_code,
       ordered_at, updated_at, delivered_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.ShippingCost, &o.DiscountAmount, &o.FinalAmount,
		&o.ShippingAddress.HouseNumber, &o.ShippingAddress.Street, &o.ShippingAddress.Ward,
		&o.ShippingAddress.District, &o.ShippingAddress.City, &o.ShippingAddress.Phone,
		&o.ShippingMethod, &o.PaymentMethod, &o.DiscountCode, &o.CustomerNotes,
		&o.OrderStatus, &o.PaymentStatus, &o.TrackingNumber, &o.TransactionRef, &o.GatewayTxnNo, &o.BankCode,
		&o.OrderedAt, &o.UpdatedAt, &o.DeliveredAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	if err := r.loadHistory(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *model.Order) error {
	const query = `SELECT product_id, size, color, quantity, unit_price, original_price
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.Items = nil
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Size, &item.Color, &item.Quantity, &item.UnitPrice, &item.OriginalPrice); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (r *orderRepository) loadHistory(ctx context.Context, order *model.Order) error {
	const query = `SELECT status, note, created_at
                   FROM order_status_history WHERE order_id=$1 ORDER BY created_at, id`
	rows, err := r.storage.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.StatusHistory = nil
	for rows.Next() {
		var entry model.StatusEntry
		if err := rows.Scan(&entry.Status, &entry.Note, &entry.CreatedAt); err != nil {
			return err
		}
		order.StatusHistory = append(order.StatusHistory, entry)
	}
	return rows.Err()
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, filter repository.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1`
	args := []any{userID}
	query, args = applyFilter(query, args, filter)

	return r.queryOrders(ctx, query, args)
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE TRUE`
	var args []any
	query, args = applyFilter(query, args, filter)

	return r.queryOrders(ctx, query, args)
}

func applyFilter(query string, args []any, filter repository.OrderFilter) (string, []any) {
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND order_status=$%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND ordered_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND ordered_at <= $%d", len(args))
	}
	query += " ORDER BY ordered_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args []any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus, note string, at time.Time) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `UPDATE orders SET order_status=$1, updated_at=$2 WHERE id=$3`
		if status == model.OrderStatusDelivered {
			query = `UPDATE orders SET order_status=$1, updated_at=$2, delivered_at=$2 WHERE id=$3`
		}
		tag, err := tx.Exec(ctx, query, status, at, orderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, status, note, created_at) VALUES ($1,$2,$3,$4)`
		_, err = tx.Exec(ctx, insertHistory, orderID, status, note, at)
		return err
	})
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus, note string, at time.Time) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE orders SET payment_status=$1, updated_at=$2 WHERE id=$3`
		tag, err := tx.Exec(ctx, query, status, at, orderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		const selectStatus = `SELECT order_status FROM orders WHERE id=$1`
		var current model.OrderStatus
		if err := tx.QueryRow(ctx, selectStatus, orderID).Scan(&current); err != nil {
			return err
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, status, note, created_at) VALUES ($1,$2,$3,$4)`
		_, err = tx.Exec(ctx, insertHistory, orderID, current, note, at)
		return err
	})
}

func (r *orderRepository) UpdateShipping(ctx context.Context, orderID int64, tracking string, address *model.Address, at time.Time) error {
	if address != nil {
		const query = `UPDATE orders SET tracking_number=$1,
               house_number=$2, street=$3, ward=$4, district=$5, city=$6, phone=$7,
               updated_at=$8 WHERE id=$9`
		tag, err := r.storage.pool.Exec(ctx, query, tracking,
			address.HouseNumber, address.Street, address.Ward, address.District, address.City, address.Phone,
			at, orderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	}

	const query = `UPDATE orders SET tracking_number=$1, updated_at=$2 WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, tracking, at, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- PendingOrderRepository implementation ---

func (r *pendingOrderRepository) Save(ctx context.Context, pending *model.PendingOrder) error {
	payload, err := json.Marshal(pending.Draft)
	if err != nil {
		return fmt.Errorf("encode pending order: %w", err)
	}

	const query = `INSERT INTO pending_orders (transaction_ref, user_id, payload, created_at)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (transaction_ref) DO NOTHING`
	tag, err := r.storage.pool.Exec(ctx, query, pending.TransactionRef, pending.UserID, payload, pending.CreatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAlreadyExists
	}
	return nil
}

func (r *pendingOrderRepository) Get(ctx context.Context, transactionRef string) (*model.PendingOrder, error) {
	const query = `SELECT transaction_ref, user_id, payload, created_at FROM pending_orders WHERE transaction_ref=$1`
	var pending model.PendingOrder
	var payload []byte
	err := r.storage.pool.QueryRow(ctx, query, transactionRef).Scan(&pending.TransactionRef, &pending.UserID, &payload, &pending.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(payload, &pending.Draft); err != nil {
		return nil, fmt.Errorf("decode pending order: %w", err)
	}
	return &pending, nil
}

func (r *pendingOrderRepository) Delete(ctx context.Context, transactionRef string) error {
	const query = `DELETE FROM pending_orders WHERE transaction_ref=$1`
	_, err := r.storage.pool.Exec(ctx, query, transactionRef)
	return err
}

func (r *pendingOrderRepository) SelectExpired(ctx context.Context, cutoff time.Time, limit int) ([]model.PendingOrder, error) {
	// Pending orders referenced by a reconcile-failed settlement stay put
	// for support lookup; declined or never-settled ones are fair game.
	const query = `SELECT p.transaction_ref, p.user_id, p.payload, p.created_at
                   FROM pending_orders p
                   LEFT JOIN settlements s ON s.transaction_ref = p.transaction_ref
                   WHERE p.created_at < $1
                     AND (s.transaction_ref IS NULL OR s.outcome = 'declined')
                   ORDER BY p.created_at
                   LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PendingOrder
	for rows.Next() {
		var pending model.PendingOrder
		var payload []byte
		if err := rows.Scan(&pending.TransactionRef, &pending.UserID, &payload, &pending.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &pending.Draft); err != nil {
			return nil, fmt.Errorf("decode pending order: %w", err)
		}
		result = append(result, pending)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- SettlementRepository implementation ---

func (r *settlementRepository) Claim(ctx context.Context, settlement *model.Settlement) (bool, *model.Settlement, error) {
	const query = `INSERT INTO settlements
            (transaction_ref, outcome, response_code, message, order_id, gateway_txn_no, bank_code, amount, pay_date, created_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
            ON CONFLICT (transaction_ref) DO NOTHING`
	tag, err := r.storage.pool.Exec(ctx, query,
		settlement.TransactionRef, settlement.Outcome, settlement.ResponseCode, settlement.Message,
		settlement.OrderID, settlement.GatewayTxnNo, settlement.BankCode, settlement.Amount,
		settlement.PayDate, settlement.CreatedAt)
	if err != nil {
		return false, nil, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil, nil
	}

	existing, err := r.Get(ctx, settlement.TransactionRef)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

func (r *settlementRepository) Get(ctx context.Context, transactionRef string) (*model.Settlement, error) {
	const query = `SELECT transaction_ref, outcome, response_code, message, order_id,
                          gateway_txn_no, bank_code, amount, pay_date, created_at
                   FROM settlements WHERE transaction_ref=$1`
	var s model.Settlement
	err := r.storage.pool.QueryRow(ctx, query, transactionRef).Scan(
		&s.TransactionRef, &s.Outcome, &s.ResponseCode, &s.Message, &s.OrderID,
		&s.GatewayTxnNo, &s.BankCode, &s.Amount, &s.PayDate, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *settlementRepository) AttachOrder(ctx context.Context, transactionRef string, orderID int64) error {
	const query = `UPDATE settlements SET order_id=$1 WHERE transaction_ref=$2`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, transactionRef)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *settlementRepository) MarkReconcileFailed(ctx context.Context, transactionRef string) error {
	const query = `UPDATE settlements SET outcome=$1 WHERE transaction_ref=$2`
	tag, err := r.storage.pool.Exec(ctx, query, model.SettlementReconcileFailed, transactionRef)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- DiscountRepository implementation ---

func (r *discountRepository) GetByCode(ctx context.Context, code string) (*model.Discount, error) {
	const query = `SELECT code, kind, value, min_subtotal, active, expires_at FROM discounts WHERE code=$1`
	var d model.Discount
	err := r.storage.pool.QueryRow(ctx, query, code).Scan(&d.Code, &d.Kind, &d.Value, &d.MinSubtotal, &d.Active, &d.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
