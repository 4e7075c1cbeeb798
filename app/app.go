package app

import (
	"context"
	"fmt"
	"os"

	"lounge-inventory/app/controller"
	"lounge-inventory/app/router"
	"lounge-inventory/config"
	"lounge-inventory/db"
	"lounge-inventory/peak"
	"lounge-inventory/repository"
	"lounge-inventory/service"
)

// Initialize wires the application and starts the evaluation scheduler.
// The returned scheduler must be stopped on shutdown.
func Initialize() (*service.Scheduler, error) {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		return nil, err
	}
	if err := db.Seed(ctx); err != nil {
		return nil, err
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, err
	}

	calendar, err := peak.NewCalendar(cfg.CalendarWindows())
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	itemRepo := repository.NewItemRepository()
	orderRepo := repository.NewOrderRepository()

	// Initialize notification channels
	emailChannel, err := service.NewEmailChannel(
		cfg.Notifications.Email.CredentialsFile,
		cfg.Notifications.Email.Sender,
		cfg.Notifications.Email.Warehouse,
	)
	if err != nil {
		return nil, err
	}
	whatsappChannel := service.NewWhatsAppChannel(
		cfg.Notifications.WhatsApp.AccountSID,
		cfg.Notifications.WhatsApp.AuthToken,
		cfg.Notifications.WhatsApp.From,
		cfg.Notifications.WhatsApp.To,
	)
	notifier := service.NewNotifier(cfg.NotificationTimeout(), emailChannel, whatsappChannel)

	// Initialize the replenishment engine
	engine := service.NewReplenishmentService(itemRepo, orderRepo, calendar, notifier)

	// Create controllers
	controllers := &router.Controllers{
		Inventory: controller.NewInventoryController(itemRepo, engine),
		Order:     controller.NewOrderController(orderRepo, engine),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	// Start the periodic evaluation
	scheduler := service.NewScheduler(engine, cfg.Interval(), cfg.Grace(), cfg.Scheduler.MaxConcurrent)
	scheduler.Start()

	return scheduler, nil
}
