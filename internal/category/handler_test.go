package category_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"

	"github.com/frahmantamala/finance-dashboard/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-dashboard/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/category"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var _ = Describe("Category Handler", func() {
	var (
		router  *chi.Mux
		handler *category.Handler
	)

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&categoryDatamodel.Category{})).To(Succeed())

		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := category.NewService(categoryPostgres.NewCategoryRepository(db), testLogger)
		handler = category.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/api/categories", handler.GetCategories)
		router.Post("/api/categories", handler.CreateCategory)
		router.Post("/api/categories/seed", handler.SeedCategories)
		router.Put("/api/categories/{id}", handler.UpdateCategory)
		router.Delete("/api/categories/{id}", handler.DeleteCategory)
	})

	createCategory := func(name, context string) map[string]interface{} {
		body, err := json.Marshal(map[string]string{"name": name, "context": context})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var created map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		return created
	}

	Describe("POST /api/categories", func() {
		It("should create a category", func() {
			created := createCategory("Software", "BUSINESS")
			Expect(created["name"]).To(Equal("Software"))
			Expect(created["context"]).To(Equal("BUSINESS"))
			Expect(created["id"]).To(BeNumerically(">", 0))
		})

		It("should return 409 for a duplicate name", func() {
			createCategory("Software", "BUSINESS")

			body, _ := json.Marshal(map[string]string{"name": "Software", "context": "PERSONAL"})
			req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("should return 400 for an invalid context", func() {
			body, _ := json.Marshal(map[string]string{"name": "Software", "context": "CORPORATE"})
			req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader([]byte("{not json")))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/categories", func() {
		It("should return an empty array when nothing exists", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON("[]"))
		})

		It("should union BOTH rows with a context filter", func() {
			createCategory("Software", "BUSINESS")
			createCategory("Lazer", "PERSONAL")
			createCategory("Outros", "BOTH")

			req := httptest.NewRequest(http.MethodGet, "/api/categories?context=BUSINESS", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var listed []map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &listed)).To(Succeed())
			names := make([]string, len(listed))
			for i, c := range listed {
				names[i] = c["name"].(string)
			}
			Expect(names).To(ConsistOf("Software", "Outros"))
		})
	})

	Describe("PUT /api/categories/{id}", func() {
		It("should replace the category", func() {
			created := createCategory("Software", "BUSINESS")
			id := int64(created["id"].(float64))

			body, _ := json.Marshal(map[string]string{"name": "Hardware", "context": "BOTH"})
			req := httptest.NewRequest(http.MethodPut, "/api/categories/"+itoa(id), bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var updated map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &updated)).To(Succeed())
			Expect(updated["name"]).To(Equal("Hardware"))
		})

		It("should return 404 for a missing category", func() {
			body, _ := json.Marshal(map[string]string{"name": "Hardware", "context": "BOTH"})
			req := httptest.NewRequest(http.MethodPut, "/api/categories/999", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /api/categories/{id}", func() {
		It("should return the deleted category", func() {
			created := createCategory("Software", "BUSINESS")
			id := int64(created["id"].(float64))

			req := httptest.NewRequest(http.MethodDelete, "/api/categories/"+itoa(id), nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["success"]).To(BeTrue())
			Expect(resp["category"].(map[string]interface{})["name"]).To(Equal("Software"))
		})

		It("should return 404 for a missing category", func() {
			req := httptest.NewRequest(http.MethodDelete, "/api/categories/999", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /api/categories/seed", func() {
		It("should install the default set and report the count", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/categories/seed", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["success"]).To(BeTrue())
			Expect(int(resp["count"].(float64))).To(Equal(len(category.DefaultCategories)))
		})
	})
})

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
