package transaction_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"

	"github.com/frahmantamala/finance-dashboard/internal/auth"
	txDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/transaction"
	userDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/user"
	"github.com/frahmantamala/finance-dashboard/internal/transaction"
	"github.com/frahmantamala/finance-dashboard/internal/user"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// sessionAs injects a fixed user into the request context, standing in for
// the cookie middleware.
func sessionAs(u *user.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u != nil {
				r = r.WithContext(auth.ContextWithUser(r.Context(), u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

var _ = Describe("Transaction Handler", func() {
	var (
		repo    *MockRepository
		handler *transaction.Handler
	)

	newRouter := func(sessionUser *user.User) *chi.Mux {
		router := chi.NewRouter()
		router.Use(sessionAs(sessionUser))
		router.Get("/api/transactions", handler.ListTransactions)
		router.Post("/api/transactions", handler.CreateTransaction)
		router.Get("/api/transactions/{id}", handler.GetTransaction)
		router.Put("/api/transactions/{id}", handler.UpdateTransaction)
		router.Delete("/api/transactions/{id}", handler.DeleteTransaction)
		return router
	}

	BeforeEach(func() {
		repo = NewMockRepository()
		lookup := &MockShareCodeLookup{users: map[string]*userDatamodel.User{
			"AB12CD": {ID: 7, Name: "Ana", ShareCode: "AB12CD"},
		}}
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := transaction.NewService(repo, lookup, testLogger)
		handler = transaction.NewHandler(service)
	})

	Describe("POST /api/transactions", func() {
		It("should return 401 without a session", func() {
			router := newRouter(nil)
			body, _ := json.Marshal(map[string]interface{}{
				"label": "Server hosting", "type": "EXPENSE", "context": "BUSINESS",
				"category": "Infraestrutura", "amount": "150.50", "date": "2024-02-10",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should accept a string amount and echo it as a number", func() {
			router := newRouter(&user.User{ID: 3})
			body, _ := json.Marshal(map[string]interface{}{
				"label": "Server hosting", "type": "EXPENSE", "context": "BUSINESS",
				"category": "Infraestrutura", "amount": "150.50", "date": "2024-02-10",
				"tags": []string{"infra", "infra", " hosting "},
			})
			req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(`"amount":150.5`))

			var created map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
			Expect(created["tags"]).To(Equal([]interface{}{"infra", "hosting"}))
			Expect(created["userId"]).To(BeNumerically("==", 3))
		})

		It("should return 400 for validation failures", func() {
			router := newRouter(&user.User{ID: 3})
			body, _ := json.Marshal(map[string]interface{}{
				"label": "Server hosting", "type": "TRANSFER", "context": "BUSINESS",
				"category": "Infraestrutura", "amount": "150.50", "date": "2024-02-10",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/transactions", func() {
		seed := func(userID int64) {
			row := &txDatamodel.Transaction{
				Label: "Hosting", Type: txDatamodel.TypeExpense, Context: txDatamodel.ContextBusiness,
				Category: "Infraestrutura", UserID: userID,
			}
			Expect(repo.Create(row, nil)).To(Succeed())
		}

		It("should return 401 without session or share code", func() {
			router := newRouter(nil)
			req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should list via share code without a session", func() {
			seed(7)
			router := newRouter(nil)
			req := httptest.NewRequest(http.MethodGet, "/api/transactions?shareCode=AB12CD", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var listed []map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &listed)).To(Succeed())
			Expect(listed).To(HaveLen(1))
		})

		It("should return 404 for an unknown share code even with a session", func() {
			router := newRouter(&user.User{ID: 3})
			req := httptest.NewRequest(http.MethodGet, "/api/transactions?shareCode=ZZZZZZ", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("should return an empty array rather than null", func() {
			router := newRouter(&user.User{ID: 3})
			req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON("[]"))
		})

		It("should reject an out-of-range month", func() {
			router := newRouter(&user.User{ID: 3})
			req := httptest.NewRequest(http.MethodGet, "/api/transactions?month=13", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/transactions/{id}", func() {
		var rowID int64

		BeforeEach(func() {
			row := &txDatamodel.Transaction{
				Label: "Hosting", Type: txDatamodel.TypeExpense, Context: txDatamodel.ContextBusiness,
				Category: "Infraestrutura", UserID: 7,
			}
			Expect(repo.Create(row, nil)).To(Succeed())
			rowID = row.ID
		})

		It("should be readable without a session", func() {
			router := newRouter(nil)
			req := httptest.NewRequest(http.MethodGet, "/api/transactions/"+strconv.FormatInt(rowID, 10), nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("should return 403 for a session user who is not the owner", func() {
			router := newRouter(&user.User{ID: 3})
			req := httptest.NewRequest(http.MethodGet, "/api/transactions/"+strconv.FormatInt(rowID, 10), nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("should return 404 for a missing row", func() {
			router := newRouter(nil)
			req := httptest.NewRequest(http.MethodGet, "/api/transactions/999", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for a malformed id", func() {
			router := newRouter(nil)
			req := httptest.NewRequest(http.MethodGet, "/api/transactions/abc", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("DELETE /api/transactions/{id}", func() {
		var rowID int64

		BeforeEach(func() {
			row := &txDatamodel.Transaction{
				Label: "Hosting", Type: txDatamodel.TypeExpense, Context: txDatamodel.ContextBusiness,
				Category: "Infraestrutura", UserID: 3,
			}
			Expect(repo.Create(row, nil)).To(Succeed())
			rowID = row.ID
		})

		It("should return the deleted row in a success envelope", func() {
			router := newRouter(&user.User{ID: 3})
			req := httptest.NewRequest(http.MethodDelete, "/api/transactions/"+strconv.FormatInt(rowID, 10), nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["success"]).To(BeTrue())
			Expect(resp["transaction"].(map[string]interface{})["label"]).To(Equal("Hosting"))
		})

		It("should return 403 for a non-owner", func() {
			router := newRouter(&user.User{ID: 9})
			req := httptest.NewRequest(http.MethodDelete, "/api/transactions/"+strconv.FormatInt(rowID, 10), nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("should return 401 without a session", func() {
			router := newRouter(nil)
			req := httptest.NewRequest(http.MethodDelete, "/api/transactions/"+strconv.FormatInt(rowID, 10), nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
