package shopify

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

type orderWire struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	OrderNumber       int64          `json:"order_number"`
	SubtotalPrice     string         `json:"subtotal_price"`
	TotalPrice        string         `json:"total_price"`
	TotalTax          string         `json:"total_tax"`
	TotalDiscounts    string         `json:"total_discounts"`
	Currency          string         `json:"currency"`
	FinancialStatus   string         `json:"financial_status"`
	FulfillmentStatus string         `json:"fulfillment_status"`
	Gateway           string         `json:"gateway"`
	PaymentGateways   []string       `json:"payment_gateway_names"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	Customer          *customerWire  `json:"customer"`
	ShippingLines     []shippingWire `json:"shipping_lines"`
	LineItems         []lineItemWire `json:"line_items"`
	// total_refunded is not part of the plain order payload on every
	// API version; a pointer keeps "absent" distinct from zero.
	TotalRefunded *string `json:"total_refunded"`
}

type customerWire struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type shippingWire struct {
	Price string `json:"price"`
}

type lineItemWire struct {
	ID            int64  `json:"id"`
	ProductID     int64  `json:"product_id"`
	VariantID     int64  `json:"variant_id"`
	Title         string `json:"title"`
	SKU           string `json:"sku"`
	Quantity      int64  `json:"quantity"`
	Price         string `json:"price"`
	TotalDiscount string `json:"total_discount"`
}

type ordersResponse struct {
	Orders []orderWire `json:"orders"`
}

func (c *Client) ListOrders(ctx context.Context, req domain.ListOrdersRequest) (*domain.OrderPage, error) {
	query := url.Values{}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = c.pageSize
	}
	query.Set("limit", strconv.Itoa(pageSize))
	query.Set("status", "any")

	// page_info cursors are exclusive with filter params on the REST
	// API; the window is encoded in the first request only.
	if req.Cursor != "" {
		query.Set("page_info", req.Cursor)
	} else {
		query.Set("created_at_min", req.CreatedAtMin.UTC().Format(time.RFC3339))
		query.Set("created_at_max", req.CreatedAtMax.UTC().Format(time.RFC3339))
	}

	var body ordersResponse
	header, err := c.get(ctx, "/orders.json", query, &body)
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.RemoteOrder, len(body.Orders))
	for i := range body.Orders {
		orders[i] = toRemoteOrder(&body.Orders[i])
	}
	return &domain.OrderPage{
		Orders:     orders,
		NextCursor: nextPageInfo(header),
	}, nil
}

func (c *Client) CountOrders(ctx context.Context, createdAtMin, createdAtMax time.Time) (int64, error) {
	query := url.Values{}
	query.Set("status", "any")
	query.Set("created_at_min", createdAtMin.UTC().Format(time.RFC3339))
	query.Set("created_at_max", createdAtMax.UTC().Format(time.RFC3339))

	var body struct {
		Count int64 `json:"count"`
	}
	if _, err := c.get(ctx, "/orders/count.json", query, &body); err != nil {
		return 0, err
	}
	return body.Count, nil
}

func toRemoteOrder(wire *orderWire) *domain.RemoteOrder {
	shipping := 0.0
	for _, line := range wire.ShippingLines {
		shipping += parseMoney(line.Price)
	}

	firstName, lastName := "", ""
	if wire.Customer != nil {
		firstName = wire.Customer.FirstName
		lastName = wire.Customer.LastName
	}

	lineItems := make([]domain.LineItem, len(wire.LineItems))
	for i, item := range wire.LineItems {
		lineItems[i] = domain.LineItem{
			ShopifyLineItemID: strconv.FormatInt(item.ID, 10),
			ProductID:         strconv.FormatInt(item.ProductID, 10),
			VariantID:         strconv.FormatInt(item.VariantID, 10),
			Title:             item.Title,
			SKU:               item.SKU,
			Quantity:          item.Quantity,
			Price:             parseMoney(item.Price),
			TotalDiscount:     parseMoney(item.TotalDiscount),
		}
	}

	remote := &domain.RemoteOrder{
		Order: domain.Order{
			ShopifyOrderID:    strconv.FormatInt(wire.ID, 10),
			Name:              wire.Name,
			OrderNumber:       wire.OrderNumber,
			Subtotal:          parseMoney(wire.SubtotalPrice),
			Total:             parseMoney(wire.TotalPrice),
			Shipping:          shipping,
			Tax:               parseMoney(wire.TotalTax),
			Discounts:         parseMoney(wire.TotalDiscounts),
			Currency:          wire.Currency,
			FinancialStatus:   domain.FinancialStatus(wire.FinancialStatus),
			FulfillmentStatus: wire.FulfillmentStatus,
			CustomerFirstName: firstName,
			CustomerLastName:  lastName,
			Gateway:           wire.Gateway,
			PaymentMethods:    strings.Join(wire.PaymentGateways, ","),
			LineItems:         lineItems,
			ShopifyCreatedAt:  wire.CreatedAt,
			ShopifyUpdatedAt:  wire.UpdatedAt,
		},
	}
	if wire.TotalRefunded != nil {
		refunded := parseMoney(*wire.TotalRefunded)
		remote.TotalRefunded = &refunded
	}
	return remote
}
