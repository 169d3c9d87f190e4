package model

import "time"

// ChangedTransaction is a transaction emitted by the change-feed
// endpoint. The feed adds the changed status and the next charge date
// but does not guarantee the money fields, so it carries none.
type ChangedTransaction struct {
	assignedEmail     string
	changedStatus     string
	chargeFrequency   string
	country           string
	createDate        time.Time
	email             string
	id                string
	lastCharge        time.Time
	nextCharge        time.Time
	payload           *string
	productID         string
	productName       string
	transactionStatus string
	transactionType   string
}

func (t *ChangedTransaction) AssignedEmail() string { return t.assignedEmail }

func (t *ChangedTransaction) ChangedStatus() string { return t.changedStatus }

func (t *ChangedTransaction) ChargeFrequency() string { return t.chargeFrequency }

func (t *ChangedTransaction) Country() string { return t.country }

func (t *ChangedTransaction) CreateDate() time.Time { return t.createDate }

func (t *ChangedTransaction) Email() string { return t.email }

func (t *ChangedTransaction) ID() string { return t.id }

func (t *ChangedTransaction) LastCharge() time.Time { return t.lastCharge }

func (t *ChangedTransaction) NextCharge() time.Time { return t.nextCharge }

// Payload returns the opaque payload attached to the transaction, or nil
// when the API reported an explicit null.
func (t *ChangedTransaction) Payload() *string { return t.payload }

func (t *ChangedTransaction) ProductID() string { return t.productID }

func (t *ChangedTransaction) ProductName() string { return t.productName }

func (t *ChangedTransaction) TransactionStatus() string { return t.transactionStatus }

func (t *ChangedTransaction) TransactionType() string { return t.transactionType }
