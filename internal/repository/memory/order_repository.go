// Package memory holds the tabular inputs (customers, orders) loaded fully
// into memory at startup. Read-only after construction, so safe for
// concurrent use without locking.
package memory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"ai-helpdesk-be/internal/entity"
)

type OrderRepository struct {
	orders    map[string]*entity.Order // keyed by uppercase order id
	customers map[string]*entity.Customer
	byCust    map[string][]*entity.Order
}

// NewOrderRepository loads both CSV tables. Expected headers:
// orders: order_id,customer_id,status,total,created_at (dates YYYY-MM-DD)
// customers: customer_id,email
func NewOrderRepository(ordersPath, customersPath string) (*OrderRepository, error) {
	r := &OrderRepository{
		orders:    make(map[string]*entity.Order),
		customers: make(map[string]*entity.Customer),
		byCust:    make(map[string][]*entity.Order),
	}

	if err := r.loadOrders(ordersPath); err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}
	if err := r.loadCustomers(customersPath); err != nil {
		return nil, fmt.Errorf("loading customers: %w", err)
	}
	return r, nil
}

func (r *OrderRepository) loadOrders(path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) < 5 {
			return fmt.Errorf("row %d: expected 5 columns, got %d", i+1, len(row))
		}
		total, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return fmt.Errorf("row %d: invalid total %q: %w", i+1, row[3], err)
		}
		createdAt, err := time.Parse("2006-01-02", strings.TrimSpace(row[4]))
		if err != nil {
			return fmt.Errorf("row %d: invalid created_at %q: %w", i+1, row[4], err)
		}

		order := &entity.Order{
			OrderID:    strings.ToUpper(strings.TrimSpace(row[0])),
			CustomerID: strings.TrimSpace(row[1]),
			Status:     strings.TrimSpace(row[2]),
			Total:      total,
			CreatedAt:  createdAt,
		}
		r.orders[order.OrderID] = order
		r.byCust[order.CustomerID] = append(r.byCust[order.CustomerID], order)
	}
	return nil
}

func (r *OrderRepository) loadCustomers(path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) < 2 {
			return fmt.Errorf("row %d: expected 2 columns, got %d", i+1, len(row))
		}
		c := &entity.Customer{
			CustomerID: strings.TrimSpace(row[0]),
			Email:      strings.TrimSpace(row[1]),
		}
		r.customers[c.CustomerID] = c
	}
	return nil
}

// readCSV returns all data rows, skipping the header line.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if _, err := reader.Read(); err != nil { // header
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return reader.ReadAll()
}

// FindOrder looks up an order by id, case-normalized to uppercase.
func (r *OrderRepository) FindOrder(orderID string) (*entity.Order, bool) {
	o, ok := r.orders[strings.ToUpper(strings.TrimSpace(orderID))]
	return o, ok
}

// FindCustomer looks up a customer by exact id.
func (r *OrderRepository) FindCustomer(customerID string) (*entity.Customer, bool) {
	c, ok := r.customers[customerID]
	return c, ok
}

// OrdersByCustomer returns all orders for a customer, possibly empty.
func (r *OrderRepository) OrdersByCustomer(customerID string) []*entity.Order {
	return r.byCust[customerID]
}

// Counts reports table sizes for startup logging.
func (r *OrderRepository) Counts() (orders, customers int) {
	return len(r.orders), len(r.customers)
}
