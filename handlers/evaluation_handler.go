package handlers

import (
	"github.com/dcabrera/music_academy/database"
	"github.com/dcabrera/music_academy/models"
	"github.com/dcabrera/music_academy/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EvaluationRequest struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	ProgramID string  `json:"program_id" validate:"required,uuid"`
	Period    string  `json:"period" validate:"required,min=2"`
	Score     int     `json:"score" validate:"min=0,max=100"`
	Remarks   *string `json:"remarks,omitempty"`
}

func CreateEvaluation(c *fiber.Ctx) error {
	var req EvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	studentID, _ := uuid.Parse(req.StudentID)
	programID, _ := uuid.Parse(req.ProgramID)

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	evaluation := models.Evaluation{
		StudentID:   studentID,
		ProgramID:   programID,
		ProfessorID: actorID(c),
		Period:      req.Period,
		Score:       req.Score,
		Remarks:     req.Remarks,
	}
	if err := database.DB.Create(&evaluation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create evaluation"})
	}

	go services.RecordAudit(actorID(c), "create", "evaluation", evaluation.ID, student.FullName)

	return c.Status(fiber.StatusCreated).JSON(evaluation)
}

func ListStudentEvaluations(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Evaluation{}).Preload("Program").Preload("Professor").
		Where("student_id = ?", c.Params("studentId"))
	if period := c.Query("period"); period != "" {
		query = query.Where("period = ?", period)
	}

	var evaluations []models.Evaluation
	if err := query.Order("created_at desc").Find(&evaluations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(evaluations)
}

func UpdateEvaluation(c *fiber.Ctx) error {
	var evaluation models.Evaluation
	if err := database.DB.First(&evaluation, "id = ?", c.Params("evaluationId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Evaluation not found"})
	}

	// Only the professor who wrote the evaluation may edit it.
	if evaluation.ProfessorID != actorID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only edit your own evaluations"})
	}

	var req EvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	evaluation.Period = req.Period
	evaluation.Score = req.Score
	evaluation.Remarks = req.Remarks

	if err := database.DB.Save(&evaluation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update evaluation"})
	}
	return c.JSON(evaluation)
}
