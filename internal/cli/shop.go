package cli

import (
	"fmt"
	"net/http"

	"github.com/adyen/swaglabs/internal/config"
	"github.com/adyen/swaglabs/internal/handlers"
	"github.com/adyen/swaglabs/internal/models"
	"github.com/adyen/swaglabs/internal/services"
)

// BuildShopDependencies wires the replica shop's services and page handlers
// around orderRepo
func BuildShopDependencies(cfg config.ServerConfig, orderRepo services.OrderRepository) (ServerDependencies, error) {
	deps := ServerDependencies{ServerConfig: cfg}

	// Create service layer
	catalog := models.DefaultCatalog()
	sessions := services.NewMemorySessionStore()
	orderService := services.NewOrderService(orderRepo)
	checkoutService := services.NewCheckoutService(sessions, orderService, catalog)

	protect := func(h http.Handler) http.Handler {
		return handlers.RequireSession(sessions, h)
	}

	loginHandler, err := handlers.NewLoginHandler(cfg.TemplateDir, sessions)
	if err != nil {
		return deps, fmt.Errorf("failed to create login handler: %w", err)
	}
	deps.LoginHandler = loginHandler
	deps.LogoutHandler = handlers.NewLogoutHandler(sessions)

	inventoryHandler, err := handlers.NewInventoryHandler(cfg.TemplateDir, catalog)
	if err != nil {
		return deps, fmt.Errorf("failed to create inventory handler: %w", err)
	}
	deps.InventoryHandler = protect(inventoryHandler)

	cartHandler, err := handlers.NewCartHandler(cfg.TemplateDir, catalog)
	if err != nil {
		return deps, fmt.Errorf("failed to create cart handler: %w", err)
	}
	deps.CartHandler = protect(cartHandler)
	deps.AddToCartHandler = protect(handlers.NewAddToCartHandler(checkoutService))
	deps.RemoveFromCartHandler = protect(handlers.NewRemoveFromCartHandler(checkoutService))

	infoHandler, err := handlers.NewCheckoutInfoHandler(cfg.TemplateDir, checkoutService)
	if err != nil {
		return deps, fmt.Errorf("failed to create checkout information handler: %w", err)
	}
	deps.CheckoutInfoHandler = protect(infoHandler)

	overviewHandler, err := handlers.NewCheckoutOverviewHandler(cfg.TemplateDir, checkoutService)
	if err != nil {
		return deps, fmt.Errorf("failed to create checkout overview handler: %w", err)
	}
	deps.CheckoutOverviewHandler = protect(overviewHandler)

	completeHandler, err := handlers.NewCheckoutCompleteHandler(cfg.TemplateDir, orderService)
	if err != nil {
		return deps, fmt.Errorf("failed to create checkout complete handler: %w", err)
	}
	deps.CheckoutCompleteHandler = protect(completeHandler)

	return deps, nil
}
