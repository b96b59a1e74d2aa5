package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/dcabrera/music_academy/database"
	"github.com/dcabrera/music_academy/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DashboardAnalyticsResponse struct {
	TotalActiveStudents int64            `json:"total_active_students"`
	TotalProfessors     int64            `json:"total_professors"`
	PendingPayments     int64            `json:"pending_payments"`
	OverduePayments     int64            `json:"overdue_payments"`
	CollectedThisMonth  decimal.Decimal  `json:"collected_this_month"`
	OutstandingBalance  decimal.Decimal  `json:"outstanding_balance"`
	RecentPayments      []models.Payment `json:"recent_payments"`
}

func GetDashboardAnalytics(c *fiber.Ctx) error {
	var response DashboardAnalyticsResponse

	database.DB.Model(&models.Student{}).Where("status = ?", "active").Count(&response.TotalActiveStudents)
	database.DB.Model(&models.Professor{}).Count(&response.TotalProfessors)
	database.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentPending).Count(&response.PendingPayments)
	database.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentOverdue).Count(&response.OverduePayments)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var collected, outstanding decimal.NullDecimal
	database.DB.Model(&models.PaymentTransaction{}).
		Where("created_at >= ?", monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&collected)
	response.CollectedThisMonth = collected.Decimal

	database.DB.Model(&models.Payment{}).
		Where("status IN ?", []string{models.PaymentPending, models.PaymentOverdue}).
		Select("COALESCE(SUM(remaining_amount), 0)").Scan(&outstanding)
	response.OutstandingBalance = outstanding.Decimal

	database.DB.Order("created_at desc").Limit(5).Preload("Student").Find(&response.RecentPayments)

	return c.JSON(response)
}

type IncomeBucket struct {
	Key   string          `json:"key"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// GetIncomeReport sums completed collections in a date range, grouped
// by payment method or by program.
func GetIncomeReport(c *fiber.Ctx) error {
	startDate, endDate, err := parseReportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	groupBy := c.Query("group_by", "method")

	var buckets []IncomeBucket
	switch groupBy {
	case "method":
		err = database.DB.Model(&models.PaymentTransaction{}).
			Select("payment_method AS key, COUNT(*) AS count, SUM(amount) AS total").
			Where("created_at BETWEEN ? AND ?", startDate, endDate).
			Group("payment_method").
			Scan(&buckets).Error
	case "program":
		err = database.DB.Model(&models.PaymentTransaction{}).
			Select("COALESCE(programs.name, 'Unassigned') AS key, COUNT(*) AS count, SUM(payment_transactions.amount) AS total").
			Joins("JOIN payments ON payments.id = payment_transactions.payment_id").
			Joins("LEFT JOIN programs ON programs.id = payments.program_id").
			Where("payment_transactions.created_at BETWEEN ? AND ?", startDate, endDate).
			Group("programs.name").
			Scan(&buckets).Error
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "group_by must be 'method' or 'program'"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	grandTotal := decimal.Zero
	for _, b := range buckets {
		grandTotal = grandTotal.Add(b.Total)
	}

	return c.JSON(fiber.Map{
		"start_date": startDate.Format("2006-01-02"),
		"end_date":   endDate.Format("2006-01-02"),
		"group_by":   groupBy,
		"buckets":    buckets,
		"total":      grandTotal,
	})
}

// GenerateTransactionReport streams the transaction log for a date
// range as a CSV download.
func GenerateTransactionReport(c *fiber.Ctx) error {
	startDate, endDate, err := parseReportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var transactions []models.PaymentTransaction
	database.DB.
		Preload("Payment.Student").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Order("created_at desc").
		Find(&transactions)

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	headers := []string{"Transaction ID", "Date", "Student Name", "Concept", "Amount", "Currency", "Method", "Reference"}
	if err := w.Write(headers); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV header"})
	}

	for _, t := range transactions {
		reference := ""
		if t.ReferenceNumber != nil {
			reference = *t.ReferenceNumber
		}
		row := []string{
			t.ID.String(),
			t.CreatedAt.Format("2006-01-02 15:04"),
			t.Payment.Student.FullName,
			t.Payment.Concept,
			t.Amount.StringFixed(2),
			t.Payment.Currency,
			t.PaymentMethod,
			reference,
		}
		if err := w.Write(row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV row"})
		}
	}
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s_to_%s.csv\"", startDate.Format("2006-01-02"), endDate.Format("2006-01-02")))

	return c.Send(b.Bytes())
}

// ListDebtors returns students with pending or overdue balances, worst
// first.
func ListDebtors(c *fiber.Ctx) error {
	type DebtorRow struct {
		StudentID   string          `json:"student_id"`
		StudentName string          `json:"student_name"`
		Payments    int64           `json:"payments"`
		TotalOwed   decimal.Decimal `json:"total_owed"`
	}

	var rows []DebtorRow
	err := database.DB.Model(&models.Payment{}).
		Select("payments.student_id AS student_id, students.full_name AS student_name, COUNT(*) AS payments, SUM(payments.remaining_amount) AS total_owed").
		Joins("JOIN students ON students.id = payments.student_id").
		Where("payments.status IN ?", []string{models.PaymentPending, models.PaymentOverdue}).
		Group("payments.student_id, students.full_name").
		Order("total_owed desc").
		Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(rows)
}

func ListAuditLogs(c *fiber.Ctx) error {
	limit, offset := pageWindow(c.Query("page", "1"), c.Query("page_size", "50"), 50)

	query := database.DB.Model(&models.AuditLog{})
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if actorID := c.Query("actor_id"); actorID != "" {
		query = query.Where("actor_id = ?", actorID)
	}

	var logs []models.AuditLog
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(logs)
}

func parseReportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	startDateStr := c.Query("start_date", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	endDateStr := c.Query("end_date", time.Now().Format("2006-01-02"))

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format, use YYYY-MM-DD")
	}
	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format, use YYYY-MM-DD")
	}
	endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return startDate, endDate, nil
}
