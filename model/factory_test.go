package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transactioncloud/transactioncloud-go/model"
)

func validTransactionData() map[string]any {
	return map[string]any{
		"createDate":        "2022-10-11",
		"lastCharge":        "2022-11-11",
		"assignedEmail":     "",
		"chargeFrequency":   "WEEKLY",
		"country":           "US",
		"email":             "iain.cambridge@example.org",
		"id":                "TC-PR_zzzyyxx",
		"payload":           nil,
		"productId":         "TC-PR_dskfjsdl",
		"productName":       "Product Name",
		"transactionStatus": "SUBSCRIPTION_STATUS_ACTIVE",
		"transactionType":   "SUBSCRIPTION",
		"netPrice":          "10.3",
		"tax":               "1.0",
		"currency":          "USD",
	}
}

// transactionFieldOrder mirrors the order BuildTransaction checks
// fields in. Each ordering test feeds only the fields before the target
// plus an invalid target: getting the target's message proves no later
// field was inspected.
var transactionFieldOrder = []string{
	"createDate", "lastCharge", "assignedEmail", "chargeFrequency",
	"country", "email", "id", "payload", "productId", "productName",
	"transactionStatus", "transactionType", "netPrice", "tax", "currency",
}

func transactionDataUpTo(target string) map[string]any {
	valid := validTransactionData()
	data := map[string]any{}
	for _, key := range transactionFieldOrder {
		if key == target {
			break
		}
		data[key] = valid[key]
	}
	return data
}

func TestBuildTransactionFailsFastPerField(t *testing.T) {
	factory := model.NewFactory()

	tests := []struct {
		field   string
		mutate  func(data map[string]any)
		wantMsg string
	}{
		{
			field:   "createDate",
			mutate:  func(data map[string]any) { data["createDate"] = "" },
			wantMsg: "Expected key 'createDate' to contain date format",
		},
		{
			field:   "lastCharge",
			mutate:  func(data map[string]any) { data["lastCharge"] = "" },
			wantMsg: "Expected key 'lastCharge' to contain date format",
		},
		{
			field:   "assignedEmail",
			mutate:  func(data map[string]any) { data["assignedEmail"] = nil },
			wantMsg: "Expected key 'assignedEmail' to contain a string",
		},
		{
			field:   "chargeFrequency",
			mutate:  func(data map[string]any) { data["chargeFrequency"] = nil },
			wantMsg: "Expected key 'chargeFrequency' to contain a string",
		},
		{
			field:   "country",
			mutate:  func(data map[string]any) { data["country"] = nil },
			wantMsg: "Expected key 'country' to contain a string",
		},
		{
			field:   "email",
			mutate:  func(data map[string]any) { data["email"] = nil },
			wantMsg: "Expected key 'email' to contain a string",
		},
		{
			field:   "id",
			mutate:  func(data map[string]any) { data["id"] = nil },
			wantMsg: "Expected key 'id' to contain a string",
		},
		{
			field:   "payload",
			mutate:  func(data map[string]any) {},
			wantMsg: "Expected key 'payload' to contain a string or null",
		},
		{
			field:   "productId",
			mutate:  func(data map[string]any) { data["productId"] = nil },
			wantMsg: "Expected key 'productId' to contain a string",
		},
		{
			field:   "productName",
			mutate:  func(data map[string]any) { data["productName"] = nil },
			wantMsg: "Expected key 'productName' to contain a string",
		},
		{
			field:   "transactionStatus",
			mutate:  func(data map[string]any) { data["transactionStatus"] = nil },
			wantMsg: "Expected key 'transactionStatus' to contain a string",
		},
		{
			field:   "transactionType",
			mutate:  func(data map[string]any) { data["transactionType"] = nil },
			wantMsg: "Expected key 'transactionType' to contain a string",
		},
		{
			field:   "netPrice",
			mutate:  func(data map[string]any) { data["netPrice"] = nil },
			wantMsg: "Expected key 'netPrice' to contain a string",
		},
		{
			field:   "tax",
			mutate:  func(data map[string]any) { data["tax"] = nil },
			wantMsg: "Expected key 'tax' to contain a string",
		},
		{
			field:   "currency",
			mutate:  func(data map[string]any) { data["currency"] = nil },
			wantMsg: "Expected key 'currency' to contain a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			// Later fields are left out entirely, so the target's
			// message also proves it failed before them.
			data := transactionDataUpTo(tt.field)
			tt.mutate(data)

			_, err := factory.BuildTransaction(data)
			require.Error(t, err)

			var missing *model.MissingModelDataError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, tt.field, missing.Key)
		})
	}
}

func TestBuildTransactionEmptyCreateDateMasksEverything(t *testing.T) {
	factory := model.NewFactory()

	_, err := factory.BuildTransaction(map[string]any{"createDate": ""})
	require.Error(t, err)
	assert.Equal(t, "Expected key 'createDate' to contain date format", err.Error())
}

func TestBuildTransactionValid(t *testing.T) {
	factory := model.NewFactory()

	tx, err := factory.BuildTransaction(validTransactionData())
	require.NoError(t, err)

	assert.Equal(t, "", tx.AssignedEmail())
	assert.Equal(t, "WEEKLY", tx.ChargeFrequency())
	assert.Equal(t, "US", tx.Country())
	assert.Equal(t, time.Date(2022, 10, 11, 0, 0, 0, 0, time.UTC), tx.CreateDate())
	assert.Equal(t, "iain.cambridge@example.org", tx.Email())
	assert.Equal(t, "TC-PR_zzzyyxx", tx.ID())
	assert.Equal(t, time.Date(2022, 11, 11, 0, 0, 0, 0, time.UTC), tx.LastCharge())
	assert.Nil(t, tx.Payload())
	assert.Equal(t, "TC-PR_dskfjsdl", tx.ProductID())
	assert.Equal(t, "Product Name", tx.ProductName())
	assert.Equal(t, "SUBSCRIPTION_STATUS_ACTIVE", tx.TransactionStatus())
	assert.Equal(t, "SUBSCRIPTION", tx.TransactionType())

	assert.Equal(t, "USD", tx.Currency().Code())
	assert.True(t, tx.NetPrice().Amount().Equal(decimal.RequireFromString("10.3")))
	assert.True(t, tx.Tax().Amount().Equal(decimal.RequireFromString("1.0")))
}

func TestBuildTransactionMoneySharesCurrency(t *testing.T) {
	factory := model.NewFactory()

	tx, err := factory.BuildTransaction(validTransactionData())
	require.NoError(t, err)

	assert.Equal(t, tx.Currency(), tx.NetPrice().Currency())
	assert.Equal(t, tx.Currency(), tx.Tax().Currency())
}

func TestBuildTransactionExplicitNullPayload(t *testing.T) {
	factory := model.NewFactory()

	data := validTransactionData()
	data["payload"] = nil

	tx, err := factory.BuildTransaction(data)
	require.NoError(t, err)
	assert.Nil(t, tx.Payload())
}

func TestBuildTransactionStringPayload(t *testing.T) {
	factory := model.NewFactory()

	data := validTransactionData()
	data["payload"] = "custom-data"

	tx, err := factory.BuildTransaction(data)
	require.NoError(t, err)
	require.NotNil(t, tx.Payload())
	assert.Equal(t, "custom-data", *tx.Payload())
}

func TestBuildTransactionUnknownCurrencyIsNotMissingData(t *testing.T) {
	factory := model.NewFactory()

	data := validTransactionData()
	data["currency"] = "NOPE"

	_, err := factory.BuildTransaction(data)
	require.Error(t, err)

	var missing *model.MissingModelDataError
	assert.False(t, errors.As(err, &missing), "currency resolution failures pass through untouched")
}

func TestBuildTransactionRoundTrip(t *testing.T) {
	factory := model.NewFactory()

	first, err := factory.BuildTransaction(validTransactionData())
	require.NoError(t, err)

	serialized := map[string]any{
		"createDate":        first.CreateDate().Format(model.DateFormat),
		"lastCharge":        first.LastCharge().Format(model.DateFormat),
		"assignedEmail":     first.AssignedEmail(),
		"chargeFrequency":   first.ChargeFrequency(),
		"country":           first.Country(),
		"email":             first.Email(),
		"id":                first.ID(),
		"payload":           nil,
		"productId":         first.ProductID(),
		"productName":       first.ProductName(),
		"transactionStatus": first.TransactionStatus(),
		"transactionType":   first.TransactionType(),
		"netPrice":          first.NetPrice().Amount().String(),
		"tax":               first.Tax().Amount().String(),
		"currency":          first.Currency().Code(),
	}

	second, err := factory.BuildTransaction(serialized)
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, first.CreateDate(), second.CreateDate())
	assert.Equal(t, first.LastCharge(), second.LastCharge())
	assert.True(t, first.NetPrice().Equal(second.NetPrice()))
	assert.True(t, first.Tax().Equal(second.Tax()))
	assert.Equal(t, first.Currency(), second.Currency())
}

func validChangedTransactionData() map[string]any {
	return map[string]any{
		"createDate":        "2022-10-11",
		"lastCharge":        "2022-11-11",
		"nextCharge":        "2022-12-11",
		"assignedEmail":     "",
		"changedStatus":     "CHANGED_STATUS_NEW",
		"chargeFrequency":   "WEEKLY",
		"country":           "US",
		"email":             "iain.cambridge@example.org",
		"id":                "TC-PR_zzzyyxx",
		"payload":           nil,
		"productId":         "TC-PR_dskfjsdl",
		"productName":       "Product Name",
		"transactionStatus": "SUBSCRIPTION_STATUS_ACTIVE",
		"transactionType":   "SUBSCRIPTION",
	}
}

var changedTransactionFieldOrder = []string{
	"createDate", "lastCharge", "nextCharge", "assignedEmail",
	"changedStatus", "chargeFrequency", "country", "email", "id",
	"payload", "productId", "productName", "transactionStatus",
	"transactionType",
}

func TestBuildChangedTransactionFailsFastPerField(t *testing.T) {
	factory := model.NewFactory()

	wantMsg := map[string]string{
		"createDate":        "Expected key 'createDate' to contain date format",
		"lastCharge":        "Expected key 'lastCharge' to contain date format",
		"nextCharge":        "Expected key 'nextCharge' to contain date format",
		"assignedEmail":     "Expected key 'assignedEmail' to contain a string",
		"changedStatus":     "Expected key 'changedStatus' to contain a string",
		"chargeFrequency":   "Expected key 'chargeFrequency' to contain a string",
		"country":           "Expected key 'country' to contain a string",
		"email":             "Expected key 'email' to contain a string",
		"id":                "Expected key 'id' to contain a string",
		"payload":           "Expected key 'payload' to contain a string or null",
		"productId":         "Expected key 'productId' to contain a string",
		"productName":       "Expected key 'productName' to contain a string",
		"transactionStatus": "Expected key 'transactionStatus' to contain a string",
		"transactionType":   "Expected key 'transactionType' to contain a string",
	}

	valid := validChangedTransactionData()
	for _, field := range changedTransactionFieldOrder {
		t.Run(field, func(t *testing.T) {
			data := map[string]any{}
			for _, key := range changedTransactionFieldOrder {
				if key == field {
					break
				}
				data[key] = valid[key]
			}
			// The target is left absent; for payload that is the only
			// invalid shape, for the rest absent and null are the same.

			_, err := factory.BuildChangedTransaction(data)
			require.Error(t, err)
			assert.Equal(t, wantMsg[field], err.Error())
		})
	}
}

func TestBuildChangedTransactionValid(t *testing.T) {
	factory := model.NewFactory()

	tx, err := factory.BuildChangedTransaction(validChangedTransactionData())
	require.NoError(t, err)

	assert.Equal(t, "CHANGED_STATUS_NEW", tx.ChangedStatus())
	assert.Equal(t, time.Date(2022, 12, 11, 0, 0, 0, 0, time.UTC), tx.NextCharge())
	assert.Equal(t, "TC-PR_zzzyyxx", tx.ID())
	assert.Equal(t, "SUBSCRIPTION", tx.TransactionType())
	assert.Nil(t, tx.Payload())
}

func validRefundData() map[string]any {
	return map[string]any{
		"TCFee":           "0.5",
		"amountTotal":     "10.0",
		"currency":        "USD",
		"externalId":      "EXT-123",
		"hashId":          "HSH-456",
		"id":              "TC-RF_abcdef",
		"incomeCurrency":  "EUR",
		"invoiceLink":     "https://example.org/invoice/1",
		"paymentProvider": "CARD",
		"refundable":      true,
		"taxAmount":       "1.9",
		"timestamp":       int64(1665512247363),
		"transactionFee":  "0.3",
		"vendorIncome":    "7.3",
		"country":         "US",
	}
}

var refundFieldOrder = []string{
	"TCFee", "amountTotal", "currency", "externalId", "hashId", "id",
	"incomeCurrency", "invoiceLink", "paymentProvider", "refundable",
	"taxAmount", "timestamp", "transactionFee", "vendorIncome", "country",
}

func TestBuildRefundFailsFastPerField(t *testing.T) {
	factory := model.NewFactory()

	valid := validRefundData()
	for _, field := range refundFieldOrder {
		t.Run(field, func(t *testing.T) {
			data := map[string]any{}
			for _, key := range refundFieldOrder {
				if key == field {
					break
				}
				data[key] = valid[key]
			}
			data[field] = nil

			_, err := factory.BuildRefund(data)
			require.Error(t, err)

			var missing *model.MissingModelDataError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, "Expected key '"+field+"' to contain a value", err.Error())
		})
	}
}

func TestBuildRefundValid(t *testing.T) {
	factory := model.NewFactory()

	refund, err := factory.BuildRefund(validRefundData())
	require.NoError(t, err)

	assert.Equal(t, "TC-RF_abcdef", refund.ID())
	assert.Equal(t, "EXT-123", refund.ExternalID())
	assert.Equal(t, "HSH-456", refund.HashID())
	assert.Equal(t, "https://example.org/invoice/1", refund.InvoiceLink())
	assert.Equal(t, "CARD", refund.PaymentProvider())
	assert.True(t, refund.Refundable())
	assert.Equal(t, "US", refund.Country())

	assert.Equal(t, "USD", refund.Currency().Code())
	assert.Equal(t, "EUR", refund.IncomeCurrency().Code())

	// The four fee fields share the refund currency, vendor income is in
	// the income currency.
	assert.Equal(t, refund.Currency(), refund.TransactionCloudFee().Currency())
	assert.Equal(t, refund.Currency(), refund.AmountTotal().Currency())
	assert.Equal(t, refund.Currency(), refund.TaxAmount().Currency())
	assert.Equal(t, refund.Currency(), refund.TransactionFee().Currency())
	assert.Equal(t, refund.IncomeCurrency(), refund.VendorIncome().Currency())

	assert.Equal(t, time.UnixMilli(1665512247363).UTC(), refund.Timestamp())
}

func TestBuildRefundFloatFormattedTimestamp(t *testing.T) {
	factory := model.NewFactory()

	// The decoder hands numbers over as json.Number; a float-formatted
	// epoch still resolves to the refund instant.
	data := validRefundData()
	data["timestamp"] = json.Number("1665512247363.0")

	refund, err := factory.BuildRefund(data)
	require.NoError(t, err)
	assert.Equal(t, time.UnixMilli(1665512247363).UTC(), refund.Timestamp())
}

func TestBuildRefundUnparseableTimestampFailsValidation(t *testing.T) {
	factory := model.NewFactory()

	data := validRefundData()
	data["timestamp"] = json.Number("1e999")

	_, err := factory.BuildRefund(data)
	require.Error(t, err)
	assert.Equal(t, "Expected key 'timestamp' to contain a value", err.Error())
}

func TestBuildProductData(t *testing.T) {
	factory := model.NewFactory()

	t.Run("link missing", func(t *testing.T) {
		_, err := factory.BuildProductData(map[string]any{
			"link":            nil,
			"customProductId": "PC_z4wvoA0",
		})
		require.Error(t, err)
		assert.Equal(t, "Expected key 'link' to contain a string", err.Error())
	})

	t.Run("customProductId missing", func(t *testing.T) {
		_, err := factory.BuildProductData(map[string]any{
			"link":            "http://example.org",
			"customProductId": nil,
		})
		require.Error(t, err)
		assert.Equal(t, "Expected key 'customProductId' to contain a string", err.Error())
	})

	t.Run("valid", func(t *testing.T) {
		data, err := factory.BuildProductData(map[string]any{
			"link":            "http://example.org",
			"customProductId": "PC_z4wvoA0",
		})
		require.NoError(t, err)
		assert.Equal(t, "http://example.org", data.Link())
		assert.Equal(t, "PC_z4wvoA0", data.CustomProductID())
	})
}

func validPaymentData() map[string]any {
	return map[string]any{
		"affiliateIncome":         "10.0",
		"affiliateIncomeCurrency": "USD",
		"amountTotal":             "37.0",
		"country":                 "CY",
		"createDate":              "2022-09-23T06:58:26.000Z",
		"currency":                "EUR",
		"id":                      "TC-BA_7R3lvVA",
		"income":                  "27.0",
		"incomeCurrency":          "USD",
		"taxAmount":               "5.0",
		"taxRate":                 0.19,
		"type":                    "SUBSCRIPTION_PAYMENT",
	}
}

func TestBuildPayment(t *testing.T) {
	factory := model.NewFactory()

	entry, err := factory.BuildPayment(validPaymentData())
	require.NoError(t, err)

	assert.Equal(t, "TC-BA_7R3lvVA", entry.ID())
	assert.Equal(t, "CY", entry.Country())
	assert.Equal(t, "SUBSCRIPTION_PAYMENT", entry.Type())
	assert.Equal(t, "EUR", entry.Currency().Code())
	assert.Equal(t, "USD", entry.IncomeCurrency().Code())
	assert.Equal(t, entry.Currency(), entry.AmountTotal().Currency())
	assert.Equal(t, entry.IncomeCurrency(), entry.Income().Currency())
	assert.Equal(t, entry.AffiliateIncomeCurrency(), entry.AffiliateIncome().Currency())
	assert.InDelta(t, 0.19, entry.TaxRate(), 1e-9)
	// The payment ledger sends a full RFC 3339 instant, not a plain date.
	assert.Equal(t, time.Date(2022, 9, 23, 6, 58, 26, 0, time.UTC), entry.CreateDate())
}

func TestBuildPaymentDateOnlyCreateDate(t *testing.T) {
	factory := model.NewFactory()

	data := validPaymentData()
	data["createDate"] = "2022-09-23"

	entry, err := factory.BuildPayment(data)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 9, 23, 0, 0, 0, 0, time.UTC), entry.CreateDate())
}

func TestBuildPaymentBadCreateDate(t *testing.T) {
	factory := model.NewFactory()

	data := validPaymentData()
	data["createDate"] = "23/09/2022"

	_, err := factory.BuildPayment(data)
	require.Error(t, err)
	assert.Equal(t, "Expected key 'createDate' to contain date format", err.Error())
}

func TestBuildPaymentMissingAffiliateIncome(t *testing.T) {
	factory := model.NewFactory()

	_, err := factory.BuildPayment(map[string]any{
		"affiliateIncome": nil,
	})
	require.Error(t, err)
	assert.Equal(t, "Expected key 'affiliateIncome' to contain a value", err.Error())
}
