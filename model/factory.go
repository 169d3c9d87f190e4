package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/transactioncloud/transactioncloud-go/money"
)

// DateFormat is the calendar-date layout used by the API for
// createDate, lastCharge and nextCharge.
const DateFormat = "2006-01-02"

// Factory builds validated domain objects from decoded JSON objects.
//
// Each builder walks an ordered list of field rules and fails on the
// first field that is absent or has the wrong shape, returning a
// *MissingModelDataError naming that field. The order is fixed and
// callers rely on it: an earlier field's problem masks a later one.
//
// Currency codes and money amounts are resolved after the field rules
// pass; failures there come from the money package and are returned
// as-is, not as *MissingModelDataError.
//
// The zero value is ready to use.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// fieldRule is one ordered validation step: the wire key, the shape
// description used in the error message, and the shape predicate.
type fieldRule struct {
	key      string
	expected string
	valid    func(v any, present bool) bool
}

func validate(data map[string]any, rules []fieldRule) error {
	for _, r := range rules {
		v, present := data[r.key]
		if !r.valid(v, present) {
			return &MissingModelDataError{Key: r.key, Expected: r.expected}
		}
	}
	return nil
}

func isDate(v any, present bool) bool {
	s, ok := v.(string)
	if !present || !ok {
		return false
	}
	_, err := time.Parse(DateFormat, s)
	return err == nil
}

// isPaymentDate accepts the payment ledger's createDate, which arrives
// as an RFC 3339 instant ("2022-09-23T06:58:26.000Z") rather than the
// plain calendar date the transaction endpoints use. Both forms pass.
func isPaymentDate(v any, present bool) bool {
	s, ok := v.(string)
	if !present || !ok {
		return false
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	_, err := time.Parse(DateFormat, s)
	return err == nil
}

func isString(v any, present bool) bool {
	if !present || v == nil {
		return false
	}
	_, ok := v.(string)
	return ok
}

// isNullableString accepts an explicit null but not an absent key.
func isNullableString(v any, present bool) bool {
	if !present {
		return false
	}
	if v == nil {
		return true
	}
	_, ok := v.(string)
	return ok
}

// isAmount accepts the representations a decimal amount arrives in:
// a string, a json.Number, or a float64 from a plain json.Unmarshal.
func isAmount(v any, present bool) bool {
	if !present || v == nil {
		return false
	}
	switch v.(type) {
	case string, json.Number, float64:
		return true
	}
	return false
}

func isBool(v any, present bool) bool {
	if !present {
		return false
	}
	_, ok := v.(bool)
	return ok
}

// isNumber requires a json.Number to actually parse as a float, so the
// extraction helpers below can convert without a failure path.
func isNumber(v any, present bool) bool {
	if !present || v == nil {
		return false
	}
	switch n := v.(type) {
	case json.Number:
		_, err := n.Float64()
		return err == nil
	case float64, int, int64:
		return true
	}
	return false
}

// Extraction helpers. Only called after the matching rule passed, so
// type assertions here cannot fail.

func str(data map[string]any, key string) string {
	return data[key].(string)
}

func nullableStr(data map[string]any, key string) *string {
	if data[key] == nil {
		return nil
	}
	s := data[key].(string)
	return &s
}

func date(data map[string]any, key string) time.Time {
	d, _ := time.Parse(DateFormat, data[key].(string))
	return d
}

func paymentDate(data map[string]any, key string) time.Time {
	s := data[key].(string)
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d
	}
	d, _ := time.Parse(DateFormat, s)
	return d
}

func amount(data map[string]any, key string, cur money.Currency) (money.Money, error) {
	switch v := data[key].(type) {
	case string:
		return money.Parse(v, cur)
	case json.Number:
		return money.Parse(v.String(), cur)
	default:
		return money.New(decimal.NewFromFloat(data[key].(float64)), cur), nil
	}
}

func epochMillis(data map[string]any, key string) time.Time {
	var ms int64
	switch v := data[key].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			// Float-formatted millis ("1665512247363.0"); isNumber
			// verified the text parses, truncate to the millisecond.
			f, _ := v.Float64()
			n = int64(f)
		}
		ms = n
	case float64:
		ms = int64(v)
	case int:
		ms = int64(v)
	case int64:
		ms = v
	}
	return time.UnixMilli(ms).UTC()
}

func float(data map[string]any, key string) float64 {
	switch v := data[key].(type) {
	case json.Number:
		f, _ := v.Float64() // isNumber verified it parses
		return f
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return float64(data[key].(int64))
	}
}

var transactionRules = []fieldRule{
	{"createDate", "date format", isDate},
	{"lastCharge", "date format", isDate},
	{"assignedEmail", "a string", isString},
	{"chargeFrequency", "a string", isString},
	{"country", "a string", isString},
	{"email", "a string", isString},
	{"id", "a string", isString},
	{"payload", "a string or null", isNullableString},
	{"productId", "a string", isString},
	{"productName", "a string", isString},
	{"transactionStatus", "a string", isString},
	{"transactionType", "a string", isString},
	{"netPrice", "a string", isAmount},
	{"tax", "a string", isAmount},
	{"currency", "a string", isString},
}

// BuildTransaction builds a Transaction from one decoded JSON object.
func (f *Factory) BuildTransaction(data map[string]any) (*Transaction, error) {
	if err := validate(data, transactionRules); err != nil {
		return nil, err
	}

	currency, err := money.ParseCurrency(str(data, "currency"))
	if err != nil {
		return nil, err
	}

	netPrice, err := amount(data, "netPrice", currency)
	if err != nil {
		return nil, err
	}

	tax, err := amount(data, "tax", currency)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		assignedEmail:     str(data, "assignedEmail"),
		chargeFrequency:   str(data, "chargeFrequency"),
		country:           str(data, "country"),
		createDate:        date(data, "createDate"),
		email:             str(data, "email"),
		id:                str(data, "id"),
		lastCharge:        date(data, "lastCharge"),
		payload:           nullableStr(data, "payload"),
		productID:         str(data, "productId"),
		productName:       str(data, "productName"),
		transactionStatus: str(data, "transactionStatus"),
		transactionType:   str(data, "transactionType"),
		netPrice:          netPrice,
		tax:               tax,
		currency:          currency,
	}, nil
}

var changedTransactionRules = []fieldRule{
	{"createDate", "date format", isDate},
	{"lastCharge", "date format", isDate},
	{"nextCharge", "date format", isDate},
	{"assignedEmail", "a string", isString},
	{"changedStatus", "a string", isString},
	{"chargeFrequency", "a string", isString},
	{"country", "a string", isString},
	{"email", "a string", isString},
	{"id", "a string", isString},
	{"payload", "a string or null", isNullableString},
	{"productId", "a string", isString},
	{"productName", "a string", isString},
	{"transactionStatus", "a string", isString},
	{"transactionType", "a string", isString},
}

// BuildChangedTransaction builds a ChangedTransaction from one decoded
// JSON object of the change-feed endpoint.
func (f *Factory) BuildChangedTransaction(data map[string]any) (*ChangedTransaction, error) {
	if err := validate(data, changedTransactionRules); err != nil {
		return nil, err
	}

	return &ChangedTransaction{
		assignedEmail:     str(data, "assignedEmail"),
		changedStatus:     str(data, "changedStatus"),
		chargeFrequency:   str(data, "chargeFrequency"),
		country:           str(data, "country"),
		createDate:        date(data, "createDate"),
		email:             str(data, "email"),
		id:                str(data, "id"),
		lastCharge:        date(data, "lastCharge"),
		nextCharge:        date(data, "nextCharge"),
		payload:           nullableStr(data, "payload"),
		productID:         str(data, "productId"),
		productName:       str(data, "productName"),
		transactionStatus: str(data, "transactionStatus"),
		transactionType:   str(data, "transactionType"),
	}, nil
}

var refundRules = []fieldRule{
	{"TCFee", "a value", isAmount},
	{"amountTotal", "a value", isAmount},
	{"currency", "a value", isString},
	{"externalId", "a value", isString},
	{"hashId", "a value", isString},
	{"id", "a value", isString},
	{"incomeCurrency", "a value", isString},
	{"invoiceLink", "a value", isString},
	{"paymentProvider", "a value", isString},
	{"refundable", "a value", isBool},
	{"taxAmount", "a value", isAmount},
	{"timestamp", "a value", isNumber},
	{"transactionFee", "a value", isAmount},
	{"vendorIncome", "a value", isAmount},
	{"country", "a value", isString},
}

// BuildRefund builds a Refund from one decoded JSON object. The
// timestamp field is epoch milliseconds.
func (f *Factory) BuildRefund(data map[string]any) (*Refund, error) {
	if err := validate(data, refundRules); err != nil {
		return nil, err
	}

	currency, err := money.ParseCurrency(str(data, "currency"))
	if err != nil {
		return nil, err
	}

	incomeCurrency, err := money.ParseCurrency(str(data, "incomeCurrency"))
	if err != nil {
		return nil, err
	}

	tcFee, err := amount(data, "TCFee", currency)
	if err != nil {
		return nil, err
	}

	amountTotal, err := amount(data, "amountTotal", currency)
	if err != nil {
		return nil, err
	}

	taxAmount, err := amount(data, "taxAmount", currency)
	if err != nil {
		return nil, err
	}

	transactionFee, err := amount(data, "transactionFee", currency)
	if err != nil {
		return nil, err
	}

	vendorIncome, err := amount(data, "vendorIncome", incomeCurrency)
	if err != nil {
		return nil, err
	}

	return &Refund{
		transactionCloudFee: tcFee,
		amountTotal:         amountTotal,
		currency:            currency,
		externalID:          str(data, "externalId"),
		hashID:              str(data, "hashId"),
		id:                  str(data, "id"),
		incomeCurrency:      incomeCurrency,
		invoiceLink:         str(data, "invoiceLink"),
		paymentProvider:     str(data, "paymentProvider"),
		refundable:          data["refundable"].(bool),
		taxAmount:           taxAmount,
		timestamp:           epochMillis(data, "timestamp"),
		transactionFee:      transactionFee,
		vendorIncome:        vendorIncome,
		country:             str(data, "country"),
	}, nil
}

var productDataRules = []fieldRule{
	{"link", "a string", isString},
	{"customProductId", "a string", isString},
}

// BuildProductData builds a ProductData from one decoded JSON object.
func (f *Factory) BuildProductData(data map[string]any) (*ProductData, error) {
	if err := validate(data, productDataRules); err != nil {
		return nil, err
	}

	return &ProductData{
		link:            str(data, "link"),
		customProductID: str(data, "customProductId"),
	}, nil
}

var paymentRules = []fieldRule{
	{"affiliateIncome", "a value", isAmount},
	{"affiliateIncomeCurrency", "a value", isString},
	{"amountTotal", "a value", isAmount},
	{"country", "a value", isString},
	{"createDate", "date format", isPaymentDate},
	{"currency", "a value", isString},
	{"id", "a value", isString},
	{"income", "a value", isAmount},
	{"incomeCurrency", "a value", isString},
	{"taxAmount", "a value", isAmount},
	{"taxRate", "a value", isNumber},
	{"type", "a value", isString},
}

// BuildPayment builds a PaymentEntry from one decoded JSON object of
// the payment ledger.
func (f *Factory) BuildPayment(data map[string]any) (*PaymentEntry, error) {
	if err := validate(data, paymentRules); err != nil {
		return nil, err
	}

	currency, err := money.ParseCurrency(str(data, "currency"))
	if err != nil {
		return nil, err
	}

	incomeCurrency, err := money.ParseCurrency(str(data, "incomeCurrency"))
	if err != nil {
		return nil, err
	}

	affiliateIncomeCurrency, err := money.ParseCurrency(str(data, "affiliateIncomeCurrency"))
	if err != nil {
		return nil, err
	}

	affiliateIncome, err := amount(data, "affiliateIncome", affiliateIncomeCurrency)
	if err != nil {
		return nil, err
	}

	amountTotal, err := amount(data, "amountTotal", currency)
	if err != nil {
		return nil, err
	}

	income, err := amount(data, "income", incomeCurrency)
	if err != nil {
		return nil, err
	}

	taxAmount, err := amount(data, "taxAmount", currency)
	if err != nil {
		return nil, err
	}

	return &PaymentEntry{
		affiliateIncome:         affiliateIncome,
		affiliateIncomeCurrency: affiliateIncomeCurrency,
		amountTotal:             amountTotal,
		country:                 str(data, "country"),
		createDate:              paymentDate(data, "createDate"),
		currency:                currency,
		id:                      str(data, "id"),
		income:                  income,
		incomeCurrency:          incomeCurrency,
		taxAmount:               taxAmount,
		taxRate:                 float(data, "taxRate"),
		entryType:               str(data, "type"),
	}, nil
}
