// Package tcloudtest provides an in-process fake of the
// Transaction.Cloud HTTP API for tests. The fake speaks the same wire
// shapes as the real API, enforces the Authorization header, and tracks
// the mutations (assignments, cancellations, processed acks) a test
// wants to observe.
package tcloudtest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	transactioncloud "github.com/transactioncloud/transactioncloud-go"
)

// Server is a fake Transaction.Cloud API bound to a local listener.
type Server struct {
	srv           *httptest.Server
	authorization string
	logger        *slog.Logger

	mu             sync.Mutex
	manageURL      string
	adminURL       string
	byID           map[string]map[string]any
	byEmail        map[string][]map[string]any
	changed        []map[string]any
	assignedEmails map[string]string
	cancelled      map[string]bool
	processed      map[string]bool
	productData    map[string]map[string]any
}

type ServerOption func(*Server)

// WithServerLogger enables request logging on the fake.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer starts a fake accepting the given credentials. Callers must
// Close it.
func NewServer(apiKey, apiKeyPassword string, opts ...ServerOption) *Server {
	s := &Server{
		authorization:  apiKey + ":" + apiKeyPassword,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		manageURL:      "https://hosted.example.org/manage",
		adminURL:       "https://hosted.example.org/admin",
		byID:           map[string]map[string]any{},
		byEmail:        map[string][]map[string]any{},
		assignedEmails: map[string]string{},
		cancelled:      map[string]bool{},
		processed:      map[string]bool{},
		productData:    map[string]map[string]any{},
	}
	for _, opt := range opts {
		opt(s)
	}

	router := mux.NewRouter()
	router.Use(s.authMiddleware, s.loggingMiddleware)

	router.HandleFunc("/v1/generate-url-to-manage-transactions/{email}", s.handleManageURL).Methods("GET")
	router.HandleFunc("/v1/generate-url-to-admin", s.handleAdminURL).Methods("GET")
	router.HandleFunc("/v1/transactions/{email}", s.handleTransactionsByEmail).Methods("GET")
	router.HandleFunc("/v1/transaction/{id}", s.handleTransactionByID).Methods("GET")
	router.HandleFunc("/v1/transaction/{id}", s.handleTransactionPost).Methods("POST")
	router.HandleFunc("/v1/cancel-subscription/{id}", s.handleCancelSubscription).Methods("POST")
	router.HandleFunc("/v1/refund-transaction/{id}", s.handleRefundTransaction).Methods("POST")
	router.HandleFunc("/v1/changed-transactions", s.handleChangedTransactions).Methods("GET")
	router.HandleFunc("/v1/changed-transactions/{id}", s.handleMarkProcessed).Methods("POST")

	s.srv = httptest.NewServer(router)
	return s
}

func (s *Server) Close() {
	s.srv.Close()
}

// URL is the fake's base URL.
func (s *Server) URL() string {
	return s.srv.URL
}

// rewriteTransport redirects every request to the fake regardless of
// the host the client was built against.
type rewriteTransport struct {
	base   *url.URL
	client *http.Client
}

func (t rewriteTransport) Do(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = t.base.Scheme
	req.URL.Host = t.base.Host
	return t.client.Do(req)
}

// Transport returns a transport that sends the client's requests to the
// fake. Pass it to transactioncloud.New.
func (s *Server) Transport() transactioncloud.Doer {
	base, _ := url.Parse(s.srv.URL)
	return rewriteTransport{base: base, client: s.srv.Client()}
}

// SeedTransaction registers a transaction object, retrievable by id and
// listed under the given email.
func (s *Server) SeedTransaction(email string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := data["id"].(string); ok {
		s.byID[id] = data
	}
	s.byEmail[email] = append(s.byEmail[email], data)
}

// SeedChangedTransaction appends an object to the change feed.
func (s *Server) SeedChangedTransaction(data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changed = append(s.changed, data)
}

// SeedProductData sets the customize-product response for a product id.
func (s *Server) SeedProductData(productID string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productData[productID] = data
}

// AssignedEmail reports the email a transaction was assigned to, if any.
func (s *Server) AssignedEmail(transactionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.assignedEmails[transactionID]
	return email, ok
}

// Cancelled reports whether a cancel-subscription call was received.
func (s *Server) Cancelled(transactionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled[transactionID]
}

// Processed reports whether a transaction was marked as processed.
func (s *Server) Processed(transactionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processed[transactionID]
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != s.authorization {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) handleManageURL(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"url": s.manageURL})
}

func (s *Server) handleAdminURL(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"url": s.adminURL})
}

func (s *Server) handleTransactionsByEmail(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.byEmail[email]
	if rows == nil {
		rows = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.byID[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// handleTransactionPost serves both assignment and product
// customization, which share a path on the real API and differ only in
// body shape.
func (s *Server) handleTransactionPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if email, ok := body["assignEmail"].(string); ok {
		if _, known := s.byID[id]; !known {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		s.assignedEmails[id] = email
		w.WriteHeader(http.StatusOK)
		return
	}

	data, ok := s.productData[id]
	if !ok {
		data = map[string]any{
			"link":            s.srv.URL + "/payment/product/" + id,
			"customProductId": "PC_" + uuid.NewString(),
		}
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCancelSubscription(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	s.cancelled[id] = true
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRefundTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.byID[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	currency, _ := tx["currency"].(string)
	if currency == "" {
		currency = "USD"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"TCFee":           "0.5",
		"amountTotal":     tx["netPrice"],
		"currency":        currency,
		"externalId":      "EXT-" + uuid.NewString(),
		"hashId":          "HSH-" + uuid.NewString(),
		"id":              "TC-RF_" + uuid.NewString(),
		"incomeCurrency":  currency,
		"invoiceLink":     s.srv.URL + "/invoice/" + id,
		"paymentProvider": "CARD",
		"refundable":      false,
		"taxAmount":       tx["tax"],
		"timestamp":       time.Now().UnixMilli(),
		"transactionFee":  "0.3",
		"vendorIncome":    tx["netPrice"],
		"country":         tx["country"],
	})
}

func (s *Server) handleChangedTransactions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := []map[string]any{}
	for _, row := range s.changed {
		if id, ok := row["id"].(string); ok && s.processed[id] {
			continue
		}
		pending = append(pending, row)
	}
	writeJSON(w, http.StatusOK, pending)
}

func (s *Server) handleMarkProcessed(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.changed {
		if rowID, ok := row["id"].(string); ok && rowID == id {
			s.processed[id] = true
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}
