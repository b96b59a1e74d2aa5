package handlers

import (
	"time"

	"github.com/dcabrera/music_academy/database"
	"github.com/dcabrera/music_academy/ledger"
	"github.com/dcabrera/music_academy/models"
	"github.com/dcabrera/music_academy/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProgramRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	Instrument string `json:"instrument" validate:"required,min=2"`
	Modality   string `json:"modality" validate:"required,oneof=individual group"`
	MonthlyFee string `json:"monthly_fee" validate:"required"`
	Currency   string `json:"currency" validate:"required,iso4217"`
}

func CreateProgram(c *fiber.Ctx) error {
	var req ProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	fee, err := decimal.NewFromString(req.MonthlyFee)
	if err != nil || fee.Sign() <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid monthly fee"})
	}

	program := models.Program{
		Name:       req.Name,
		Instrument: req.Instrument,
		Modality:   req.Modality,
		MonthlyFee: fee,
		Currency:   req.Currency,
		IsActive:   true,
	}
	if err := database.DB.Create(&program).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create program"})
	}

	go services.RecordAudit(actorID(c), "create", "program", program.ID, program.Name)

	return c.Status(fiber.StatusCreated).JSON(program)
}

func ListPrograms(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Program{})
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var programs []models.Program
	if err := query.Order("name asc").Find(&programs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(programs)
}

func UpdateProgram(c *fiber.Ctx) error {
	var program models.Program
	if err := database.DB.First(&program, "id = ?", c.Params("programId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Program not found"})
	}

	var req ProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	fee, err := decimal.NewFromString(req.MonthlyFee)
	if err != nil || fee.Sign() <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid monthly fee"})
	}

	program.Name = req.Name
	program.Instrument = req.Instrument
	program.Modality = req.Modality
	program.MonthlyFee = fee
	program.Currency = req.Currency

	if err := database.DB.Save(&program).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update program"})
	}

	go services.RecordAudit(actorID(c), "update", "program", program.ID, program.Name)

	return c.JSON(program)
}

type ProgramEnrollRequest struct {
	StudentID       string `json:"student_id" validate:"required,uuid"`
	Billing         string `json:"billing" validate:"required,oneof=none monthly installments"`
	Installments    int    `json:"installments,omitempty" validate:"omitempty,min=2,max=12"`
	SiblingDiscount bool   `json:"sibling_discount,omitempty"`
}

// EnrollInProgram registers a student into a program and, depending on
// the billing mode, creates the first monthly fee payment or a full
// installment plan in the same transaction. The fee comes from an
// immutable pricing snapshot loaded up front, never from ad-hoc reads.
func EnrollInProgram(c *fiber.Ctx) error {
	programID, err := uuid.Parse(c.Params("programId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program ID format"})
	}

	var req ProgramEnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Billing == "installments" && req.Installments == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "installments count is required for installment billing"})
	}
	studentID, _ := uuid.Parse(req.StudentID)

	var program models.Program
	if err := database.DB.First(&program, "id = ?", programID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Program not found"})
	}
	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	pricing, err := services.LoadPricingSnapshot(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load pricing settings"})
	}
	monthlyFee := pricing.MonthlyFeeFor(program.Modality, req.SiblingDiscount)

	var enrollment models.ProgramEnrollment
	var payments []models.Payment
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.ProgramEnrollment{}).
			Where("student_id = ? AND program_id = ? AND status = ?", studentID, programID, models.EnrollmentActive).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return &ledger.ValidationError{Msg: "student already has an active enrollment in this program"}
		}

		enrollment = models.ProgramEnrollment{
			StudentID: studentID,
			ProgramID: programID,
			Status:    models.EnrollmentActive,
			StartDate: time.Now(),
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		// The monthly fee stays open to partial abonos, hence the
		// partial payment type rather than single.
		switch req.Billing {
		case "monthly":
			payment, err := ledger.CreatePayment(tx, ledger.CreatePaymentInput{
				StudentID:      studentID,
				ProgramID:      &programID,
				EnrollmentID:   &enrollment.ID,
				Concept:        "Monthly fee - " + program.Name,
				PaymentType:    models.PaymentTypePartial,
				OriginalAmount: monthlyFee,
				Currency:       pricing.Currency,
				DueDate:        time.Now().AddDate(0, 0, 5),
				RecordedBy:     actorID(c),
			})
			if err != nil {
				return err
			}
			payments = append(payments, *payment)
		case "installments":
			totalFee := monthlyFee.Mul(decimal.NewFromInt(int64(req.Installments)))
			plan, err := ledger.CreateInstallmentPlan(tx, ledger.InstallmentPlanInput{
				StudentID:    studentID,
				ProgramID:    &programID,
				EnrollmentID: &enrollment.ID,
				Concept:      "Tuition - " + program.Name,
				TotalAmount:  totalFee,
				Currency:     pricing.Currency,
				Installments: req.Installments,
				StartDate:    time.Now(),
				RecordedBy:   actorID(c),
			})
			if err != nil {
				return err
			}
			payments = plan
		}
		return nil
	})
	if err != nil {
		return ledgerError(c, err)
	}

	go services.RecordAudit(actorID(c), "enroll", "program", programID, student.FullName)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"enrollment": enrollment,
		"payments":   payments,
	})
}

func WithdrawFromProgram(c *fiber.Ctx) error {
	var enrollment models.ProgramEnrollment
	if err := database.DB.First(&enrollment, "id = ?", c.Params("enrollmentId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
	}
	if enrollment.Status != models.EnrollmentActive {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Enrollment is not active"})
	}

	now := time.Now()
	enrollment.Status = models.EnrollmentWithdrawn
	enrollment.EndDate = &now
	if err := database.DB.Save(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update enrollment"})
	}

	go services.RecordAudit(actorID(c), "withdraw", "program", enrollment.ProgramID, "")

	return c.JSON(enrollment)
}

func ListProgramEnrollments(c *fiber.Ctx) error {
	query := database.DB.Model(&models.ProgramEnrollment{}).Preload("Student").Preload("Program")
	if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if programID := c.Query("program_id"); programID != "" {
		query = query.Where("program_id = ?", programID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var enrollments []models.ProgramEnrollment
	if err := query.Order("created_at desc").Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(enrollments)
}
