package router

import (
	"github.com/farmstack/farm-api/internal/application"
	"github.com/farmstack/farm-api/internal/container"
	pginfra "github.com/farmstack/farm-api/internal/infrastructure/postgres"
	handlers "github.com/farmstack/farm-api/internal/interface/http"
	"github.com/farmstack/farm-api/internal/interface/middleware"
	"github.com/farmstack/farm-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()

	accounts := pginfra.NewAccountRepository(pool)
	farmers := pginfra.NewFarmerRepository(pool, container.GetBank())
	customers := pginfra.NewCustomerRepository(pool)
	products := pginfra.NewProductRepository(pool)
	orders := pginfra.NewOrderRepository(pool)
	staff := pginfra.NewStaffRepository(pool)
	milk := pginfra.NewMilkRepository(pool)
	reports := pginfra.NewReportRepository(pool)
	audit := pginfra.NewAuditRepository(pool)

	authSvc := application.NewAuthService(accounts, farmers, customers, audit,
		container.GetJWT(), rdb, container.GetRabbitPub(), logger,
		application.LockoutPolicy{Threshold: cfg.LockoutThreshold, Cooldown: cfg.LockoutCooldown},
		cfg.AppName)
	farmerSvc := application.NewFarmerService(farmers)
	customerSvc := application.NewCustomerService(customers)
	productSvc := application.NewProductService(products, container.GetGCS(),
		container.GetES(), logger, cfg.GCSBucket, cfg.ESProductsIndex)
	orderSvc := application.NewOrderService(orders, products, accounts,
		container.GetRabbitPub(), logger, cfg.AppName)
	staffSvc := application.NewStaffService(staff)
	milkSvc := application.NewMilkService(milk)
	reportSvc := application.NewReportService(reports, rdb, logger, 0)

	authMW := middleware.Authenticated(container.GetJWT(), accounts)

	r.Add(
		modules.NewHealthModule(handlers.NewHealthHandler(pool, rdb)),
		modules.NewAuthModule(handlers.NewAuthHandler(authSvc), authMW),
		modules.NewProfileModule(handlers.NewProfileHandler(farmerSvc, customerSvc), authMW),
		modules.NewProductModule(handlers.NewProductHandler(productSvc), authMW),
		modules.NewOrderModule(handlers.NewOrderHandler(orderSvc), authMW),
		modules.NewFarmModule(handlers.NewStaffHandler(staffSvc),
			handlers.NewMilkHandler(milkSvc), handlers.NewReportHandler(reportSvc), authMW),
	)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
