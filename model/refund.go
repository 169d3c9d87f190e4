package model

import (
	"time"

	"github.com/transactioncloud/transactioncloud-go/money"
)

// Refund is the result of a refund operation. TransactionCloudFee,
// AmountTotal, TaxAmount and TransactionFee are denominated in Currency;
// VendorIncome is denominated in IncomeCurrency.
type Refund struct {
	transactionCloudFee money.Money
	amountTotal         money.Money
	currency            money.Currency
	externalID          string
	hashID              string
	id                  string
	incomeCurrency      money.Currency
	invoiceLink         string
	paymentProvider     string
	refundable          bool
	taxAmount           money.Money
	timestamp           time.Time
	transactionFee      money.Money
	vendorIncome        money.Money
	country             string
}

func (r *Refund) TransactionCloudFee() money.Money { return r.transactionCloudFee }

func (r *Refund) AmountTotal() money.Money { return r.amountTotal }

func (r *Refund) Currency() money.Currency { return r.currency }

func (r *Refund) ExternalID() string { return r.externalID }

func (r *Refund) HashID() string { return r.hashID }

func (r *Refund) ID() string { return r.id }

func (r *Refund) IncomeCurrency() money.Currency { return r.incomeCurrency }

func (r *Refund) InvoiceLink() string { return r.invoiceLink }

func (r *Refund) PaymentProvider() string { return r.paymentProvider }

func (r *Refund) Refundable() bool { return r.refundable }

func (r *Refund) TaxAmount() money.Money { return r.taxAmount }

// Timestamp is the instant the refund was recorded, converted from the
// API's epoch-millisecond representation.
func (r *Refund) Timestamp() time.Time { return r.timestamp }

func (r *Refund) TransactionFee() money.Money { return r.transactionFee }

func (r *Refund) VendorIncome() money.Money { return r.vendorIncome }

func (r *Refund) Country() string { return r.country }
