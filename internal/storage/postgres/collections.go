package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/salespilots/platform/internal/metrics"
	"github.com/salespilots/platform/internal/models"
)

// Per-entity column maps for the plain owner-scoped tables. The order here
// is the order values and scan use, so the two must stay in sync.

var productColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "userId", Column: "user_id"},
	{Field: "name", Column: "name"},
	{Field: "description", Column: "description"},
	{Field: "pricePaise", Column: "price_paise"},
	{Field: "sku", Column: "sku"},
	{Field: "stock", Column: "stock"},
	{Field: "imageUrl", Column: "image_url"},
	{Field: "active", Column: "active"},
}

func newProducts(db *sql.DB, mc *metrics.Collector, now func() time.Time) *table[*models.Product] {
	return &table[*models.Product]{
		db:    db,
		name:  "products",
		cols:  productColumns,
		owner: "user_id",
		mc:    mc,
		now:   now,
		values: func(p *models.Product) ([]any, error) {
			return []any{p.ID, p.CreatedAt, p.UpdatedAt, p.UserID, p.Name, p.Description,
				p.PricePaise, p.SKU, p.Stock, p.ImageURL, p.Active}, nil
		},
		scan: func(sc scanner) (*models.Product, error) {
			p := &models.Product{}
			err := sc.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.UserID, &p.Name, &p.Description,
				&p.PricePaise, &p.SKU, &p.Stock, &p.ImageURL, &p.Active)
			return p, err
		},
	}
}

var customerColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "userId", Column: "user_id"},
	{Field: "instagramUserId", Column: "instagram_user_id"},
	{Field: "name", Column: "name"},
	{Field: "phone", Column: "phone"},
	{Field: "notes", Column: "notes"},
	{Field: "lastSeenAt", Column: "last_seen_at"},
}

func newCustomers(db *sql.DB, mc *metrics.Collector, now func() time.Time) *table[*models.Customer] {
	return &table[*models.Customer]{
		db:    db,
		name:  "customers",
		cols:  customerColumns,
		owner: "user_id",
		mc:    mc,
		now:   now,
		values: func(c *models.Customer) ([]any, error) {
			return []any{c.ID, c.CreatedAt, c.UpdatedAt, c.UserID, c.InstagramUserID,
				c.Name, c.Phone, c.Notes, c.LastSeenAt}, nil
		},
		scan: func(sc scanner) (*models.Customer, error) {
			c := &models.Customer{}
			err := sc.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.UserID, &c.InstagramUserID,
				&c.Name, &c.Phone, &c.Notes, &c.LastSeenAt)
			return c, err
		},
	}
}

var orderColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "userId", Column: "user_id"},
	{Field: "customerId", Column: "customer_id"},
	{Field: "productId", Column: "product_id"},
	{Field: "quantity", Column: "quantity"},
	{Field: "amountPaise", Column: "amount_paise"},
	{Field: "status", Column: "status"},
	{Field: "paymentRef", Column: "payment_ref"},
	{Field: "screenshotKey", Column: "screenshot_key"},
	{Field: "notes", Column: "notes"},
}

func newOrders(db *sql.DB, mc *metrics.Collector, now func() time.Time) *table[*models.Order] {
	return &table[*models.Order]{
		db:    db,
		name:  "orders",
		cols:  orderColumns,
		owner: "user_id",
		mc:    mc,
		now:   now,
		values: func(o *models.Order) ([]any, error) {
			return []any{o.ID, o.CreatedAt, o.UpdatedAt, o.UserID, o.CustomerID, o.ProductID,
				o.Quantity, o.AmountPaise, o.Status, o.PaymentRef, o.ScreenshotKey, o.Notes}, nil
		},
		scan: func(sc scanner) (*models.Order, error) {
			o := &models.Order{}
			err := sc.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt, &o.UserID, &o.CustomerID, &o.ProductID,
				&o.Quantity, &o.AmountPaise, &o.Status, &o.PaymentRef, &o.ScreenshotKey, &o.Notes)
			return o, err
		},
	}
}

var messageColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "userId", Column: "user_id"},
	{Field: "customerId", Column: "customer_id"},
	{Field: "direction", Column: "direction"},
	{Field: "channel", Column: "channel"},
	{Field: "text", Column: "text"},
	{Field: "sentAt", Column: "sent_at"},
}

func newMessages(db *sql.DB, mc *metrics.Collector, now func() time.Time) *table[*models.Message] {
	return &table[*models.Message]{
		db:    db,
		name:  "messages",
		cols:  messageColumns,
		owner: "user_id",
		mc:    mc,
		now:   now,
		values: func(m *models.Message) ([]any, error) {
			return []any{m.ID, m.CreatedAt, m.UpdatedAt, m.UserID, m.CustomerID,
				m.Direction, m.Channel, m.Text, m.SentAt}, nil
		},
		scan: func(sc scanner) (*models.Message, error) {
			m := &models.Message{}
			err := sc.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt, &m.UserID, &m.CustomerID,
				&m.Direction, &m.Channel, &m.Text, &m.SentAt)
			return m, err
		},
	}
}

var workflowColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "userId", Column: "user_id"},
	{Field: "name", Column: "name"},
	{Field: "trigger", Column: "trigger"},
	{Field: "enabled", Column: "enabled"},
	{Field: "steps", Column: "steps"},
}

// newWorkflows stores the step list as a jsonb column.
func newWorkflows(db *sql.DB, mc *metrics.Collector, now func() time.Time) *table[*models.Workflow] {
	return &table[*models.Workflow]{
		db:    db,
		name:  "workflows",
		cols:  workflowColumns,
		owner: "user_id",
		mc:    mc,
		now:   now,
		values: func(w *models.Workflow) ([]any, error) {
			steps, err := json.Marshal(w.Steps)
			if err != nil {
				return nil, fmt.Errorf("marshal workflow steps: %w", err)
			}
			return []any{w.ID, w.CreatedAt, w.UpdatedAt, w.UserID, w.Name,
				w.Trigger, w.Enabled, steps}, nil
		},
		scan: func(sc scanner) (*models.Workflow, error) {
			w := &models.Workflow{}
			var steps []byte
			if err := sc.Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt, &w.UserID, &w.Name,
				&w.Trigger, &w.Enabled, &steps); err != nil {
				return nil, err
			}
			if len(steps) > 0 {
				if err := json.Unmarshal(steps, &w.Steps); err != nil {
					return nil, fmt.Errorf("unmarshal workflow steps: %w", err)
				}
			}
			return w, nil
		},
	}
}

var templateColumns = colmap{
	{Field: "id", Column: "id"},
	{Field: "createdAt", Column: "created_at"},
	{Field: "updatedAt", Column: "updated_at"},
	{Field: "userId", Column: "user_id"},
	{Field: "name", Column: "name"},
	{Field: "body", Column: "body"},
	{Field: "language", Column: "language"},
	{Field: "category", Column: "category"},
}

func newTemplates(db *sql.DB, mc *metrics.Collector, now func() time.Time) *table[*models.Template] {
	return &table[*models.Template]{
		db:    db,
		name:  "templates",
		cols:  templateColumns,
		owner: "user_id",
		mc:    mc,
		now:   now,
		values: func(t *models.Template) ([]any, error) {
			return []any{t.ID, t.CreatedAt, t.UpdatedAt, t.UserID, t.Name,
				t.Body, t.Language, t.Category}, nil
		},
		scan: func(sc scanner) (*models.Template, error) {
			t := &models.Template{}
			err := sc.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt, &t.UserID, &t.Name,
				&t.Body, &t.Language, &t.Category)
			return t, err
		},
	}
}
