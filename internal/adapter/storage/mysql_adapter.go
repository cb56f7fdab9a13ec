package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/mini-pos/internal/core/domain"
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// EnsureSchema creates the tables when they do not exist yet.
func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			unit_price DECIMAL(14,2) NOT NULL,
			stock INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			created_at DATETIME(6) NOT NULL,
			total DECIMAL(14,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ticket_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			ticket_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			quantity INT NOT NULL,
			unit_price DECIMAL(14,2) NOT NULL,
			subtotal DECIMAL(14,2) NOT NULL,
			CONSTRAINT fk_ticket_items_ticket FOREIGN KEY (ticket_id)
				REFERENCES tickets (id) ON DELETE CASCADE
		)`,
	}
	for _, stmt := range stmts {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, unit_price, stock FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, unit_price, stock
		FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Stock)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}

	return &p, nil
}

func (m *MySQLAdapter) SearchProducts(ctx context.Context, q string) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, unit_price, stock
		FROM products
		WHERE LOWER(name) LIKE CONCAT('%', LOWER(?), '%')
		ORDER BY id`, q)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (m *MySQLAdapter) SaveProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == 0 {
		result, err := m.db.ExecContext(ctx, `
			INSERT INTO products (name, unit_price, stock) VALUES (?, ?, ?)`,
			p.Name, p.UnitPrice, p.Stock,
		)
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("product id: %w", err)
		}
		p.ID = id
		return nil
	}

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO products (id, name, unit_price, stock) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE name = ?, unit_price = ?, stock = ?`,
		p.ID, p.Name, p.UnitPrice, p.Stock,
		p.Name, p.UnitPrice, p.Stock,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	return nil
}

func (m *MySQLAdapter) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	if err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// DecrementStock applies the stock guard as one conditional update, so two
// concurrent sales can never drive stock below zero.
func (m *MySQLAdapter) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - ?
		WHERE id = ? AND stock >= ?`,
		quantity, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		var exists int
		err := m.db.QueryRowContext(ctx, `SELECT 1 FROM products WHERE id = ?`, productID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		if err != nil {
			return fmt.Errorf("check product: %w", err)
		}
		return domain.ErrInsufficientStock
	}

	return nil
}

func (m *MySQLAdapter) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT t.id, t.created_at, t.total,
		       i.id, i.product_id, i.quantity, i.unit_price, i.subtotal
		FROM tickets t
		LEFT JOIN ticket_items i ON i.ticket_id = t.id
		ORDER BY t.id, i.id`)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	var cur *domain.Ticket
	for rows.Next() {
		var (
			id        int64
			createdAt time.Time
			total     decimal.Decimal
			itemID    sql.NullInt64
			productID sql.NullInt64
			quantity  sql.NullInt64
			unitPrice decimal.NullDecimal
			subtotal  decimal.NullDecimal
		)
		if err := rows.Scan(&id, &createdAt, &total,
			&itemID, &productID, &quantity, &unitPrice, &subtotal); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}

		if cur == nil || cur.ID != id {
			tickets = append(tickets, domain.Ticket{
				ID:        id,
				CreatedAt: createdAt,
				Total:     total,
				Items:     []domain.TicketItem{},
			})
			cur = &tickets[len(tickets)-1]
		}
		if itemID.Valid {
			cur.Items = append(cur.Items, domain.TicketItem{
				ID:        itemID.Int64,
				TicketID:  id,
				ProductID: productID.Int64,
				Quantity:  int(quantity.Int64),
				UnitPrice: unitPrice.Decimal,
				Subtotal:  subtotal.Decimal,
			})
		}
	}

	return tickets, rows.Err()
}

// CreateTicket inserts the ticket and its items and decrements stock per
// line, all in one transaction. The conditional update re-checks stock under
// the transaction, so a sale that raced past the service-level validation
// still rolls back cleanly.
func (m *MySQLAdapter) CreateTicket(ctx context.Context, t *domain.Ticket) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	t.CreatedAt = time.Now().UTC()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO tickets (created_at, total) VALUES (?, ?)`,
		t.CreatedAt, t.Total,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	ticketID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ticket id: %w", err)
	}
	t.ID = ticketID

	for i := range t.Items {
		item := &t.Items[i]
		item.TicketID = ticketID

		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - ?
			WHERE id = ? AND stock >= ?`,
			item.Quantity, item.ProductID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return domain.ErrInsufficientStock
		}

		result, err = tx.ExecContext(ctx, `
			INSERT INTO ticket_items (ticket_id, product_id, quantity, unit_price, subtotal)
			VALUES (?, ?, ?, ?, ?)`,
			ticketID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert ticket item: %w", err)
		}
		itemID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("ticket item id: %w", err)
		}
		item.ID = itemID
	}

	return tx.Commit()
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
