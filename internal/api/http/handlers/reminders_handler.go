package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-service/internal/api/dto"
	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/service"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// RemindersHandler serves reminder endpoints for staff.
type RemindersHandler struct {
	reminders *service.ReminderService
}

// NewRemindersHandler constructs handler.
func NewRemindersHandler(reminderService *service.ReminderService) *RemindersHandler {
	return &RemindersHandler{reminders: reminderService}
}

// Schedule POST /guilds/:guild_id/reminders.
func (h *RemindersHandler) Schedule(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ScheduleReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	userID := req.UserID
	if userID == "" {
		userID = actor.UserID
	}

	reminder, err := h.reminders.Schedule(c.Context(), service.ScheduleReminderInput{
		GuildID:   c.Params("guild_id"),
		UserID:    userID,
		ChannelID: req.ChannelID,
		Message:   req.Message,
		RemindAt:  req.RemindAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": reminderResponse(reminder)})
}

// ListMine GET /guilds/:guild_id/reminders.
func (h *RemindersHandler) ListMine(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	reminders, err := h.reminders.ListPending(c.Context(), c.Params("guild_id"), actor.UserID)
	if err != nil {
		return err
	}
	items := make([]dto.ReminderResponse, 0, len(reminders))
	for i := range reminders {
		items = append(items, reminderResponse(&reminders[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Cancel POST /guilds/:guild_id/reminders/:id/cancel.
func (h *RemindersHandler) Cancel(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	reminder, err := h.reminders.Cancel(c.Context(), actor.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reminderResponse(reminder)})
}

func reminderResponse(reminder *domain.Reminder) dto.ReminderResponse {
	return dto.ReminderResponse{
		ID:        reminder.ID,
		GuildID:   reminder.GuildID,
		UserID:    reminder.UserID,
		ChannelID: reminder.ChannelID,
		Message:   reminder.Message,
		RemindAt:  reminder.RemindAt,
		Status:    reminder.Status,
		SentAt:    reminder.SentAt,
	}
}
