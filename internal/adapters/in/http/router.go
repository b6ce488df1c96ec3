package httpin

import (
	"net/http"

	usecase "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/usecase"

	"github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/in/http/handlers"
	"github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/in/http/middleware"
)

// RouterDeps collects the usecases (and other dependencies) injected
// from the DI container.
type RouterDeps struct {
	OrderUC   *usecase.OrderUsecase
	ProductUC *usecase.ProductUsecase
	BrandUC   *usecase.BrandUsecase
	ReviewUC  *usecase.ReviewUsecase
	UserUC    *usecase.UserUsecase

	// FirebaseAuth guards the authenticated routes (my-orders, admin
	// summaries). nil disables verification (local development only).
	FirebaseAuth *middleware.FirebaseAuthClient
}

// NewRouter sets up HTTP routing for all domain endpoints.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health check (always on)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	auth := func(h http.Handler) http.Handler { return h }
	if deps.FirebaseAuth != nil {
		am := &middleware.AuthMiddleware{FirebaseAuth: deps.FirebaseAuth}
		auth = am.Handler
	}

	if deps.OrderUC != nil {
		h := handlers.NewOrderHandler(deps.OrderUC)
		mux.Handle("/orders", h)
		mux.Handle("/orders/", h)

		// identity-bound route sits behind auth
		mux.Handle("/orders/my-orders", auth(h))
	}

	if deps.ProductUC != nil {
		h := handlers.NewProductHandler(deps.ProductUC)
		mux.Handle("/products", h)
		mux.Handle("/products/", h)
	}

	if deps.BrandUC != nil {
		h := handlers.NewBrandHandler(deps.BrandUC)
		mux.Handle("/brands", h)
		mux.Handle("/brands/", h)
	}

	if deps.ReviewUC != nil {
		h := handlers.NewReviewHandler(deps.ReviewUC)
		mux.Handle("/reviews", h)
		mux.Handle("/reviews/", h)
	}

	if deps.UserUC != nil {
		h := handlers.NewUserHandler(deps.UserUC)
		mux.Handle("/users", h)
		mux.Handle("/users/", h)
	}

	// CORS is applied once at the server entry (cmd/api); here only
	// panic recovery wraps the routed handlers.
	return middleware.Recover(mux)
}
