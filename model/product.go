package model

import (
	"github.com/transactioncloud/transactioncloud-go/money"
)

// Product describes a product customization to send to the API. Unlike
// the other model types it is a mutable builder used for outbound
// requests only.
type Product struct {
	prices                 []money.Money
	description            string
	payload                string
	transactionIDToMigrate string
}

func NewProduct() *Product {
	return &Product{}
}

func (p *Product) Prices() []money.Money { return p.prices }

func (p *Product) SetPrices(prices []money.Money) { p.prices = prices }

func (p *Product) Description() string { return p.description }

func (p *Product) SetDescription(description string) { p.description = description }

func (p *Product) Payload() string { return p.payload }

func (p *Product) SetPayload(payload string) { p.payload = payload }

func (p *Product) TransactionIDToMigrate() string { return p.transactionIDToMigrate }

func (p *Product) SetTransactionIDToMigrate(id string) { p.transactionIDToMigrate = id }

// APIPayload returns the request body shape the customize-product
// endpoint expects. Each price serializes as {currency, value} with the
// value as a float.
func (p *Product) APIPayload() map[string]any {
	prices := make([]map[string]any, 0, len(p.prices))
	for _, price := range p.prices {
		prices = append(prices, map[string]any{
			"currency": price.Currency().Code(),
			"value":    price.Amount().InexactFloat64(),
		})
	}

	return map[string]any{
		"prices":                 prices,
		"description":            p.description,
		"payload":                p.payload,
		"transactionIdToMigrate": p.transactionIDToMigrate,
	}
}

// ProductData is the API's confirmation of a product customization.
type ProductData struct {
	link            string
	customProductID string
}

// Link is the hosted checkout URL for the customized product.
func (p *ProductData) Link() string { return p.link }

func (p *ProductData) CustomProductID() string { return p.customProductID }
