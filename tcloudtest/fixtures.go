package tcloudtest

// TransactionObject returns a wire-shaped transaction object suitable
// for SeedTransaction. Tests may override individual keys.
func TransactionObject(id, email string) map[string]any {
	return map[string]any{
		"createDate":        "2022-10-11",
		"lastCharge":        "2022-11-11",
		"assignedEmail":     email,
		"chargeFrequency":   "WEEKLY",
		"country":           "US",
		"email":             email,
		"id":                id,
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

// ChangedTransactionObject returns a wire-shaped change-feed object
// suitable for SeedChangedTransaction.
func ChangedTransactionObject(id string) map[string]any {
	return map[string]any{
		"createDate":        "2022-10-11",
		"lastCharge":        "2022-11-11",
		"nextCharge":        "2022-12-11",
		"assignedEmail":     "",
		"changedStatus":     "CHANGED_STATUS_NEW",
		"chargeFrequency":   "WEEKLY",
		"country":           "US",
		"email":             "customer@example.org",
		"id":                id,
		"payload":           nil,
		"productId":         "TC-PR_dskfjsdl",
		"productName":       "Product Name",
		"transactionStatus": "SUBSCRIPTION_STATUS_ACTIVE",
		"transactionType":   "SUBSCRIPTION",
	}
}
