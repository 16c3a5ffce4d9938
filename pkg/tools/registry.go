// Package tools implements the closed registry of local operations the
// routing model may invoke. Business failures (order not found, not
// refundable, amount exceeds total) are structured result values, never Go
// errors: callers check the ok/error fields.
package tools

import (
	"fmt"
	"strings"
	"time"

	"ai-helpdesk-be/internal/repository/memory"
)

// Registered tool names. Anything else the model emits is refused.
const (
	ToolGetOrder      = "get_order"
	ToolRefundOrder   = "refund_order"
	ToolSpendInPeriod = "spend_in_period"
)

const dateLayout = "2006-01-02"

// OrderInfo is the get_order result.
type OrderInfo struct {
	Status      string  `json:"status"`
	Total       float64 `json:"total"`
	MaskedEmail string  `json:"email"`
}

// NotFound is the structured get_order miss.
type NotFound struct {
	Error string `json:"error"`
}

// RefundResult is the refund_order outcome.
type RefundResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// SpendResult is the spend_in_period outcome.
type SpendResult struct {
	TotalSpend float64 `json:"total_spend"`
}

type Registry struct {
	repo *memory.OrderRepository
}

func NewRegistry(repo *memory.OrderRepository) *Registry {
	return &Registry{repo: repo}
}

// Has reports whether name is a registered tool.
func (r *Registry) Has(name string) bool {
	switch name {
	case ToolGetOrder, ToolRefundOrder, ToolSpendInPeriod:
		return true
	}
	return false
}

// Dispatch runs a registered tool with loosely-typed args as parsed from the
// model output. Returns an error for unknown tools or malformed args; the
// caller maps those to a refusal.
func (r *Registry) Dispatch(name string, args map[string]interface{}) (interface{}, error) {
	switch name {
	case ToolGetOrder:
		orderID, err := stringArg(args, "order_id")
		if err != nil {
			return nil, err
		}
		return r.GetOrder(orderID), nil
	case ToolRefundOrder:
		orderID, err := stringArg(args, "order_id")
		if err != nil {
			return nil, err
		}
		amount, err := floatArg(args, "amount")
		if err != nil {
			return nil, err
		}
		return r.RefundOrder(orderID, amount), nil
	case ToolSpendInPeriod:
		customerID, err := stringArg(args, "customer_id")
		if err != nil {
			return nil, err
		}
		start, err := stringArg(args, "start")
		if err != nil {
			return nil, err
		}
		end, err := stringArg(args, "end")
		if err != nil {
			return nil, err
		}
		return r.SpendInPeriod(customerID, start, end)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// GetOrder returns status, total and the masked customer email for an order.
// The order id is case-normalized before lookup.
func (r *Registry) GetOrder(orderID string) interface{} {
	order, ok := r.repo.FindOrder(orderID)
	if !ok {
		return NotFound{Error: "Order not found"}
	}

	masked := ""
	if c, ok := r.repo.FindCustomer(order.CustomerID); ok {
		masked = MaskEmail(c.Email)
	}

	return OrderInfo{
		Status:      order.Status,
		Total:       order.Total,
		MaskedEmail: masked,
	}
}

// RefundOrder validates a refund request against the order's status and
// total.
func (r *Registry) RefundOrder(orderID string, amount float64) RefundResult {
	order, ok := r.repo.FindOrder(orderID)
	if !ok {
		return RefundResult{OK: false, Reason: "Order not found"}
	}
	if !order.Refundable() {
		return RefundResult{OK: false, Reason: "Order not refundable"}
	}
	if amount > order.Total {
		return RefundResult{OK: false, Reason: "Amount exceeds order total"}
	}
	return RefundResult{OK: true}
}

// SpendInPeriod sums the totals of a customer's orders with created_at in
// the inclusive [start, end] range. Dates are YYYY-MM-DD.
func (r *Registry) SpendInPeriod(customerID, start, end string) (SpendResult, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return SpendResult{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return SpendResult{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}

	var sum float64
	for _, o := range r.repo.OrdersByCustomer(customerID) {
		if !o.CreatedAt.Before(startDate) && !o.CreatedAt.After(endDate) {
			sum += o.Total
		}
	}
	return SpendResult{TotalSpend: sum}, nil
}

// MaskEmail keeps the first character of the local part and the domain,
// replacing the remaining local-part characters with '*'.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return email
	}
	name, domain := email[:at], email[at+1:]
	return fmt.Sprintf("%s%s@%s", name[:1], strings.Repeat("*", len(name)-1), domain)
}

func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case float64:
		// Models occasionally emit numeric-looking ids as numbers.
		return strings.TrimSuffix(fmt.Sprintf("%v", s), ".0"), nil
	default:
		return "", fmt.Errorf("argument %q: expected string, got %T", key, v)
	}
}

func floatArg(args map[string]interface{}, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%g", &f); err != nil {
			return 0, fmt.Errorf("argument %q: invalid number %q", key, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("argument %q: expected number, got %T", key, v)
	}
}
