package mockpos

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type contextKey string

const claimsKey contextKey = "claims"

// Server is the in-process POS backend. It satisfies http.Handler, so it
// plugs into httptest.NewServer for integration tests and into a plain
// http.Server for the standalone mock binary.
type Server struct {
	store  *Store
	hub    *Hub
	secret string
	router chi.Router
}

// New builds the server around a store. The hub goroutine starts here and
// lives for the life of the process.
func New(store *Store, jwtSecret string) *Server {
	s := &Server{
		store:  store,
		hub:    NewHub(),
		secret: jwtSecret,
	}
	go s.hub.Run()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
			serveWS(s.hub, s.secret, w, r)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/category", s.handleCategories)
			r.Get("/category/{id}/products", s.handleCategoryProducts)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", s.handleProducts)
				r.Post("/", s.handleCreateProduct)
				r.Get("/{id}", s.handleProduct)
				r.Put("/{id}", s.handleUpdateProduct)
				r.Delete("/{id}", s.handleDeleteProduct)
				r.Put("/{id}/image", s.handleAttachImage)
				r.Delete("/{id}/image", s.handleRemoveImage)
			})

			r.Post("/uploads", s.handleUpload)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", s.handleOrders)
				r.Get("/{id}", s.handleOrderDetail)
				r.Post("/{id}/confirm", s.handleConfirmOrder)
				r.Post("/{id}/pay", s.handlePayOrder)
				r.Post("/{id}/cancel", s.handleCancelOrder)
				r.Post("/{id}/items", s.handleAddItem)
				r.Delete("/{id}/items/{itemID}", s.handleCancelItem)
				r.Get("/tables/{tableID}/active", s.handleActiveOrder)
				r.Post("/tables/{tableID}/open", s.handleOpenTable)
			})

			r.Route("/tables", func(r chi.Router) {
				r.Get("/", s.handleTables)
				r.Post("/", s.handleCreateTable)
				r.Get("/{id}", s.handleTable)
				r.Put("/{id}", s.handleUpdateTable)
				r.Delete("/{id}", s.handleDeleteTable)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", s.handleUsers)
				r.Post("/", s.handleCreateUser)
				r.Get("/me", s.handleMe)
				r.Put("/me", s.handleUpdateMe)
				r.Patch("/me/change-password", s.handleChangePassword)
				r.Get("/{id}", s.handleUser)
				r.Put("/{id}", s.handleUpdateUser)
				r.Put("/{id}/active", s.handleActivateUser)
				r.Put("/{id}/ban", s.handleBanUser)
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", s.handleInventories)
				r.Post("/stock-in", s.handleStockIn)
				r.Post("/stock-out", s.handleStockOut)
			})
		})
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// authenticate rejects requests without a valid bearer token and stores
// the claims on the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "invalid authorization format")
			return
		}

		claims, err := ValidateToken(s.secret, parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}
