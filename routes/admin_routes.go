package routes

import (
	"github.com/dcabrera/music_academy/handlers"
	"github.com/dcabrera/music_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)
	admin.Get("/audit-logs", handlers.ListAuditLogs)

	reports := admin.Group("/reports")
	reports.Get("/income", handlers.GetIncomeReport)
	reports.Get("/transactions", handlers.GenerateTransactionReport)
	reports.Get("/debtors", handlers.ListDebtors)
}
