package model

import (
	"time"

	"github.com/transactioncloud/transactioncloud-go/money"
)

// Transaction is one purchase or subscription charge as reported by the
// Transaction.Cloud API. Instances are built by Factory and immutable
// afterwards.
type Transaction struct {
	assignedEmail     string
	chargeFrequency   string
	country           string
	createDate        time.Time
	email             string
	id                string
	lastCharge        time.Time
	payload           *string
	productID         string
	productName       string
	transactionStatus string
	transactionType   string
	netPrice          money.Money
	tax               money.Money
	currency          money.Currency
}

func (t *Transaction) AssignedEmail() string { return t.assignedEmail }

func (t *Transaction) ChargeFrequency() string { return t.chargeFrequency }

func (t *Transaction) Country() string { return t.country }

func (t *Transaction) CreateDate() time.Time { return t.createDate }

func (t *Transaction) Email() string { return t.email }

func (t *Transaction) ID() string { return t.id }

func (t *Transaction) LastCharge() time.Time { return t.lastCharge }

// Payload returns the opaque payload attached to the transaction, or nil
// when the API reported an explicit null.
func (t *Transaction) Payload() *string { return t.payload }

func (t *Transaction) ProductID() string { return t.productID }

func (t *Transaction) ProductName() string { return t.productName }

func (t *Transaction) TransactionStatus() string { return t.transactionStatus }

func (t *Transaction) TransactionType() string { return t.transactionType }

// NetPrice is denominated in Currency.
func (t *Transaction) NetPrice() money.Money { return t.netPrice }

// Tax is denominated in Currency.
func (t *Transaction) Tax() money.Money { return t.tax }

func (t *Transaction) Currency() money.Currency { return t.currency }
