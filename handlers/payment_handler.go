package handlers

import (
	"time"

	"github.com/dcabrera/music_academy/database"
	"github.com/dcabrera/music_academy/ledger"
	"github.com/dcabrera/music_academy/models"
	"github.com/dcabrera/music_academy/notifications"
	"github.com/dcabrera/music_academy/services"
	"github.com/dcabrera/music_academy/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreatePaymentRequest struct {
	StudentID    string  `json:"student_id" validate:"required,uuid"`
	ProgramID    *string `json:"program_id,omitempty" validate:"omitempty,uuid"`
	EnrollmentID *string `json:"enrollment_id,omitempty" validate:"omitempty,uuid"`
	Concept      string  `json:"concept" validate:"required,min=3"`
	PaymentType  string  `json:"payment_type" validate:"required,oneof=single partial installment"`
	Amount       string  `json:"amount" validate:"required"`
	Currency     string  `json:"currency" validate:"required,iso4217"`
	DueDate      string  `json:"due_date" validate:"required,datetime=2006-01-02"`
}

func parseOptionalUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

func CreatePayment(c *fiber.Ctx) error {
	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount"})
	}
	studentID, _ := uuid.Parse(req.StudentID)
	dueDate, _ := time.Parse("2006-01-02", req.DueDate)

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	payment, err := ledger.CreatePayment(database.DB, ledger.CreatePaymentInput{
		StudentID:      studentID,
		ProgramID:      parseOptionalUUID(req.ProgramID),
		EnrollmentID:   parseOptionalUUID(req.EnrollmentID),
		Concept:        req.Concept,
		PaymentType:    req.PaymentType,
		OriginalAmount: amount,
		Currency:       req.Currency,
		DueDate:        dueDate,
		RecordedBy:     actorID(c),
	})
	if err != nil {
		return ledgerError(c, err)
	}

	go services.RecordAudit(actorID(c), "create", "payment", payment.ID, payment.Concept)

	return c.Status(fiber.StatusCreated).JSON(payment)
}

func ListPayments(c *fiber.Ctx) error {
	limit, offset := pageWindow(c.Query("page", "1"), c.Query("page_size", "25"), 25)

	query := database.DB.Model(&models.Payment{}).Preload("Student")
	if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if planID := c.Query("plan_id"); planID != "" {
		query = query.Where("plan_id = ?", planID)
	}
	if from := c.Query("due_from"); from != "" {
		query = query.Where("due_date >= ?", from)
	}
	if to := c.Query("due_to"); to != "" {
		query = query.Where("due_date <= ?", to)
	}

	var payments []models.Payment
	if err := query.Order("due_date asc").Limit(limit).Offset(offset).Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(payments)
}

func GetPayment(c *fiber.Ctx) error {
	var payment models.Payment
	err := database.DB.
		Preload("Student").
		Preload("Program").
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		First(&payment, "id = ?", c.Params("paymentId")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}
	return c.JSON(payment)
}

func GetPendingBalance(c *fiber.Ctx) error {
	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", c.Params("paymentId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}
	balance := ledger.PendingBalance(&payment)
	return c.JSON(fiber.Map{
		"payment_id":      payment.ID,
		"pending_balance": balance.StringFixed(2),
		"currency":        payment.Currency,
	})
}

type AddTransactionRequest struct {
	Amount          string  `json:"amount" validate:"required"`
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=cash card transfer online"`
	ReferenceNumber *string `json:"reference_number,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// AddTransaction records an abono (partial payment) against a payment.
func AddTransaction(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	var req AddTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount"})
	}

	txn, payment, err := ledger.AddTransaction(database.DB, paymentID, ledger.AddTransactionInput{
		Amount:          amount,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		RecordedBy:      actorID(c),
	})
	if err != nil {
		return ledgerError(c, err)
	}

	go notifyPaymentReceived(payment.ID, txn.Amount)
	go services.RecordAudit(actorID(c), "add_transaction", "payment", payment.ID, ledger.FormatAmount(txn.Amount, payment.Currency))
	if payment.Status == models.PaymentCompleted {
		go services.GenerateReceipt(payment.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"transaction": txn,
		"payment":     payment,
	})
}

type MarkCompletedRequest struct {
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=cash card transfer online"`
	ReferenceNumber *string `json:"reference_number,omitempty"`
}

func MarkPaymentCompleted(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	var req MarkCompletedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	reference := req.ReferenceNumber
	if reference == nil {
		generated, err := utils.GenerateReceiptNumber(database.DB)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate receipt number"})
		}
		reference = &generated
	}

	payment, err := ledger.MarkCompleted(database.DB, paymentID, req.PaymentMethod, reference)
	if err != nil {
		return ledgerError(c, err)
	}

	go notifyPaymentReceived(payment.ID, payment.OriginalAmount)
	go services.RecordAudit(actorID(c), "mark_completed", "payment", payment.ID, payment.Concept)
	go services.GenerateReceipt(payment.ID)

	return c.JSON(payment)
}

func CancelPayment(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	payment, err := ledger.Cancel(database.DB, paymentID)
	if err != nil {
		return ledgerError(c, err)
	}

	go services.RecordAudit(actorID(c), "cancel", "payment", payment.ID, payment.Concept)

	return c.JSON(payment)
}

func DeletePayment(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	if err := ledger.DeletePayment(database.DB, paymentID); err != nil {
		return ledgerError(c, err)
	}

	go services.RecordAudit(actorID(c), "delete", "payment", paymentID, "")

	return c.JSON(fiber.Map{"message": "Payment deleted"})
}

type InstallmentPlanRequest struct {
	StudentID    string  `json:"student_id" validate:"required,uuid"`
	ProgramID    *string `json:"program_id,omitempty" validate:"omitempty,uuid"`
	EnrollmentID *string `json:"enrollment_id,omitempty" validate:"omitempty,uuid"`
	Concept      string  `json:"concept" validate:"required,min=3"`
	TotalAmount  string  `json:"total_amount" validate:"required"`
	Currency     string  `json:"currency" validate:"required,iso4217"`
	Installments int     `json:"installments" validate:"required,min=2,max=12"`
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
}

func CreateInstallmentPlan(c *fiber.Ctx) error {
	var req InstallmentPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	total, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid total amount"})
	}
	studentID, _ := uuid.Parse(req.StudentID)
	startDate, _ := time.Parse("2006-01-02", req.StartDate)

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	payments, err := ledger.CreateInstallmentPlan(database.DB, ledger.InstallmentPlanInput{
		StudentID:    studentID,
		ProgramID:    parseOptionalUUID(req.ProgramID),
		EnrollmentID: parseOptionalUUID(req.EnrollmentID),
		Concept:      req.Concept,
		TotalAmount:  total,
		Currency:     req.Currency,
		Installments: req.Installments,
		StartDate:    startDate,
		RecordedBy:   actorID(c),
	})
	if err != nil {
		return ledgerError(c, err)
	}

	go services.RecordAudit(actorID(c), "create_plan", "payment", *payments[0].PlanID, req.Concept)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"plan_id":  payments[0].PlanID,
		"payments": payments,
	})
}

// RegenerateReceipt re-renders the PDF receipt for a completed
// payment, for when the original upload failed or the template changed.
func RegenerateReceipt(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}
	if payment.Status != models.PaymentCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Receipts are only issued for completed payments"})
	}

	go services.GenerateReceipt(payment.ID)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Receipt generation queued"})
}

// GatewayWebhookPayload is the post-verification notification from the
// payment gateway bridge; signature checking happens upstream.
type GatewayWebhookPayload struct {
	PaymentID     string `json:"payment_id"`
	ResultCode    int    `json:"result_code"`
	Amount        string `json:"amount"`
	ProviderTxnID string `json:"provider_txn_id"`
	FullSettle    bool   `json:"full_settle"`
}

func HandlePaymentWebhook(c *fiber.Ctx) error {
	var payload GatewayWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse webhook payload"})
	}

	paymentID, err := uuid.Parse(payload.PaymentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment reference"})
	}

	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
	}

	if payment.Status == models.PaymentCompleted {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Webhook already processed"})
	}

	if payload.ResultCode != 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Acknowledged failed payment"})
	}

	if payload.FullSettle {
		completed, err := ledger.MarkCompleted(database.DB, paymentID, "online", &payload.ProviderTxnID)
		if err != nil {
			return ledgerError(c, err)
		}
		go notifyPaymentReceived(completed.ID, completed.OriginalAmount)
		go services.GenerateReceipt(completed.ID)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Webhook processed successfully"})
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount"})
	}
	txn, updated, err := ledger.AddTransaction(database.DB, paymentID, ledger.AddTransactionInput{
		Amount:          amount,
		PaymentMethod:   "online",
		ReferenceNumber: &payload.ProviderTxnID,
		RecordedBy:      payment.RecordedBy,
	})
	if err != nil {
		return ledgerError(c, err)
	}

	go notifyPaymentReceived(updated.ID, txn.Amount)
	if updated.Status == models.PaymentCompleted {
		go services.GenerateReceipt(updated.ID)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Webhook processed successfully"})
}

// notifyPaymentReceived runs after the ledger transaction committed.
func notifyPaymentReceived(paymentID uuid.UUID, amount decimal.Decimal) {
	var payment models.Payment
	if err := database.DB.Preload("Student").First(&payment, "id = ?", paymentID).Error; err != nil {
		return
	}
	studentEmail := ""
	if payment.Student.Email != nil {
		studentEmail = *payment.Student.Email
	}
	guardianEmail := ""
	if payment.Student.GuardianEmail != nil {
		guardianEmail = *payment.Student.GuardianEmail
	}
	notifications.SendPaymentReceived(
		payment.Student.FullName,
		studentEmail,
		guardianEmail,
		payment.Concept,
		ledger.FormatAmount(amount, payment.Currency),
	)
}
