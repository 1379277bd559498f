package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/finance-dashboard/internal/auth"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Auth Handler", func() {
	var (
		store  *MockUserStore
		router *chi.Mux
	)

	BeforeEach(func() {
		store = NewMockUserStore()
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := auth.NewService(store, testSecret, 4, false, testLogger)
		handler := auth.NewHandler(service)

		router = chi.NewRouter()
		router.Use(handler.SessionMiddleware)
		router.Post("/api/auth/register", handler.Register)
		router.Post("/api/auth/login", handler.Login)
		router.Post("/api/auth/logout", handler.Logout)
		router.Get("/api/auth/me", handler.Me)
	})

	register := func() *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{
			"name": "Ana", "email": "ana@mail.com", "password": "secret123",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	Describe("POST /api/auth/register", func() {
		It("should return the user and set the session cookie", func() {
			rec := register()
			Expect(rec.Code).To(Equal(http.StatusOK))

			var u map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &u)).To(Succeed())
			Expect(u["email"]).To(Equal("ana@mail.com"))
			Expect(u).NotTo(HaveKey("passwordHash"))

			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal(auth.SessionCookieName))
		})

		It("should return 409 for a duplicate email and create no second row", func() {
			Expect(register().Code).To(Equal(http.StatusOK))

			rec := register()
			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(store.users).To(HaveLen(1))
		})

		It("should return 400 for invalid input", func() {
			body, _ := json.Marshal(map[string]string{
				"name": "Ana", "email": "ana@mail.com", "password": "short",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /api/auth/login", func() {
		BeforeEach(func() {
			Expect(register().Code).To(Equal(http.StatusOK))
		})

		It("should return 401 with a uniform message for bad credentials", func() {
			body, _ := json.Marshal(map[string]string{"email": "ana@mail.com", "password": "wrong-pass"})
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("invalid email or password"))
		})
	})

	Describe("GET /api/auth/me", func() {
		It("should return JSON null without a session", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON("null"))
		})

		It("should return the user with the registration cookie", func() {
			registered := register()
			Expect(registered.Code).To(Equal(http.StatusOK))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			for _, c := range registered.Result().Cookies() {
				req.AddCookie(c)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var u map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &u)).To(Succeed())
			Expect(u["email"]).To(Equal("ana@mail.com"))
		})
	})

	Describe("POST /api/auth/logout", func() {
		It("should clear the cookie and report success", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"success": true}`))

			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].MaxAge).To(BeNumerically("<", 0))
		})
	})
})
