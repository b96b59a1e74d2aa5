package routes

import (
	"github.com/dcabrera/music_academy/handlers"
	"github.com/dcabrera/music_academy/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments", middleware.Protected(), middleware.StaffRequired())
	payments.Post("", handlers.CreatePayment)
	payments.Get("", handlers.ListPayments)
	payments.Post("/installment-plans", handlers.CreateInstallmentPlan)
	payments.Get("/:paymentId", handlers.GetPayment)
	payments.Get("/:paymentId/balance", handlers.GetPendingBalance)
	payments.Post("/:paymentId/transactions", handlers.AddTransaction)
	payments.Post("/:paymentId/complete", handlers.MarkPaymentCompleted)
	payments.Post("/:paymentId/cancel", handlers.CancelPayment)
	payments.Post("/:paymentId/receipt", handlers.RegenerateReceipt)
	payments.Delete("/:paymentId", handlers.DeletePayment)

	// Gateway callback carries its own signature; no session auth.
	api.Post("/payments/webhook", handlers.HandlePaymentWebhook)
}
