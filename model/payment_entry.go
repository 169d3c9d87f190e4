package model

import (
	"time"

	"github.com/transactioncloud/transactioncloud-go/money"
)

// PaymentEntry is one row of the payment ledger. AmountTotal and
// TaxAmount are denominated in Currency, Income in IncomeCurrency and
// AffiliateIncome in AffiliateIncomeCurrency.
type PaymentEntry struct {
	affiliateIncome         money.Money
	affiliateIncomeCurrency money.Currency
	amountTotal             money.Money
	country                 string
	createDate              time.Time
	currency                money.Currency
	id                      string
	income                  money.Money
	incomeCurrency          money.Currency
	taxAmount               money.Money
	taxRate                 float64
	entryType               string
}

func (p *PaymentEntry) AffiliateIncome() money.Money { return p.affiliateIncome }

func (p *PaymentEntry) AffiliateIncomeCurrency() money.Currency { return p.affiliateIncomeCurrency }

func (p *PaymentEntry) AmountTotal() money.Money { return p.amountTotal }

func (p *PaymentEntry) Country() string { return p.country }

func (p *PaymentEntry) CreateDate() time.Time { return p.createDate }

func (p *PaymentEntry) Currency() money.Currency { return p.currency }

func (p *PaymentEntry) ID() string { return p.id }

func (p *PaymentEntry) Income() money.Money { return p.income }

func (p *PaymentEntry) IncomeCurrency() money.Currency { return p.incomeCurrency }

func (p *PaymentEntry) TaxAmount() money.Money { return p.taxAmount }

func (p *PaymentEntry) TaxRate() float64 { return p.taxRate }

func (p *PaymentEntry) Type() string { return p.entryType }
