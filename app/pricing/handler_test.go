package pricing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/merchantkit/commerce-core/app/currencies"
	"github.com/merchantkit/commerce-core/models"
)

// --- Mock Facade ---

type MockFacade struct {
	Quote       *Quote
	Snapshot    *Snapshot
	QuoteErr    error
	SnapshotErr error
}

func (m *MockFacade) VariantQuote(variantID uint, targetISO string) (*Quote, error) {
	if m.QuoteErr != nil {
		return nil, m.QuoteErr
	}
	return m.Quote, nil
}

func (m *MockFacade) ProductSnapshot(productID uint) (*Snapshot, error) {
	if m.SnapshotErr != nil {
		return nil, m.SnapshotErr
	}
	return m.Snapshot, nil
}

// --- Tests ---

func TestHandleGetQuote(t *testing.T) {
	testCases := []struct {
		name               string
		variantID          string
		query              string
		mockSetup          func() *MockFacade
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:      "Success",
			variantID: "10",
			query:     "?currency=EUR",
			mockSetup: func() *MockFacade {
				return &MockFacade{
					Quote: &Quote{
						VariantID: 10,
						SKU:       "SOCK-M",
						Currency:  "EUR",
						Price:     decimal.NewFromFloat(11.25),
						InStock:   true,
					},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp QuoteResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, uint(10), resp.VariantID)
				assert.Equal(t, "EUR", resp.Currency)
				assert.Equal(t, 11.25, resp.Price)
				assert.True(t, resp.InStock)
			},
		},
		{
			name:      "Variant not found",
			variantID: "99",
			query:     "?currency=EUR",
			mockSetup: func() *MockFacade {
				return &MockFacade{QuoteErr: models.ErrVariantNotFound}
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:      "Unknown currency",
			variantID: "10",
			query:     "?currency=XXX",
			mockSetup: func() *MockFacade {
				return &MockFacade{QuoteErr: currencies.ErrUnknownCurrency}
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:      "Missing currency param",
			variantID: "10",
			query:     "",
			mockSetup: func() *MockFacade {
				return &MockFacade{}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:      "Invalid variant id",
			variantID: "abc",
			query:     "?currency=EUR",
			mockSetup: func() *MockFacade {
				return &MockFacade{}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewPricingHandler(tc.mockSetup())
			req := httptest.NewRequest("GET", "/pricing/variants/"+tc.variantID+tc.query, nil)
			req.SetPathValue("id", tc.variantID)
			rec := httptest.NewRecorder()

			handler.HandleGetQuote(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestHandleGetSnapshot(t *testing.T) {
	taken := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	snapshotID := uuid.New()

	testCases := []struct {
		name               string
		productID          string
		mockSetup          func() *MockFacade
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:      "Success",
			productID: "5",
			mockSetup: func() *MockFacade {
				return &MockFacade{
					Snapshot: &Snapshot{
						ID:        snapshotID,
						ProductID: 5,
						TakenAt:   taken,
						Fields: map[string]any{
							"title":   "Alpaca Socks",
							"enabled": true,
						},
					},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp SnapshotResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, snapshotID.String(), resp.ID)
				assert.Equal(t, uint(5), resp.ProductID)
				assert.Equal(t, "2026-03-15T12:00:00Z", resp.TakenAt)
				assert.Equal(t, "Alpaca Socks", resp.Fields["title"])
			},
		},
		{
			name:      "Product not found",
			productID: "99",
			mockSetup: func() *MockFacade {
				return &MockFacade{SnapshotErr: models.ErrProductNotFound}
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:      "Invalid product id",
			productID: "abc",
			mockSetup: func() *MockFacade {
				return &MockFacade{}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewPricingHandler(tc.mockSetup())
			req := httptest.NewRequest("GET", "/pricing/products/"+tc.productID+"/snapshot", nil)
			req.SetPathValue("id", tc.productID)
			rec := httptest.NewRecorder()

			handler.HandleGetSnapshot(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}
