package shopify

import (
	"context"
	"fmt"
	"net/url"

	"github.com/profitpulse/shop-sync-service/internal/domain"
)

type refundsResponse struct {
	Refunds []refundWire `json:"refunds"`
}

type refundWire struct {
	Transactions     []transactionWire     `json:"transactions"`
	OrderAdjustments []orderAdjustmentWire `json:"order_adjustments"`
	RefundShipping   *refundShippingWire   `json:"shipping"`
}

type transactionWire struct {
	Kind   string `json:"kind"`
	Amount string `json:"amount"`
	Status string `json:"status"`
}

type orderAdjustmentWire struct {
	Kind      string `json:"kind"`
	Amount    string `json:"amount"`
	TaxAmount string `json:"tax_amount"`
}

type refundShippingWire struct {
	Amount string `json:"amount"`
}

func (c *Client) GetOrderRefunds(ctx context.Context, shopifyOrderID string) (*domain.RefundDetails, error) {
	var body refundsResponse
	path := fmt.Sprintf("/orders/%s/refunds.json", shopifyOrderID)
	if _, err := c.get(ctx, path, url.Values{}, &body); err != nil {
		return nil, err
	}

	details := &domain.RefundDetails{}
	for _, refund := range body.Refunds {
		for _, tx := range refund.Transactions {
			if tx.Status != "" && tx.Status != "success" {
				continue
			}
			details.Transactions = append(details.Transactions, domain.RefundTransaction{
				Kind:   domain.RefundTransactionKind(tx.Kind),
				Amount: parseMoney(tx.Amount),
			})
		}
		for _, adj := range refund.OrderAdjustments {
			details.OrderAdjustments = append(details.OrderAdjustments, domain.OrderAdjustment{
				Kind:   adj.Kind,
				Amount: parseMoney(adj.Amount),
			})
		}
		if refund.RefundShipping != nil {
			details.ShippingRefund += parseMoney(refund.RefundShipping.Amount)
		}
	}
	return details, nil
}
