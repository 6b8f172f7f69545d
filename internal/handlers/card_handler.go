package handlers

import (
	"boardify-backend/internal/apperr"
	"boardify-backend/internal/config"
	"boardify-backend/internal/middleware"
	"boardify-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CardHandler struct {
	cards *service.CardService
}

func NewCardHandler(cards *service.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	var in service.CreateCardInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	card, err := h.cards.Create(c.Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(card)
}

func (h *CardHandler) GetCard(c *fiber.Ctx) error {
	cardID, err := parseID(c, "cardId")
	if err != nil {
		return err
	}
	card, err := h.cards.Get(c.Context(), middleware.UserID(c), cardID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(card)
}

func (h *CardHandler) UpdateCard(c *fiber.Ctx) error {
	cardID, err := parseID(c, "cardId")
	if err != nil {
		return err
	}
	var in service.UpdateCardInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	card, err := h.cards.Update(c.Context(), middleware.UserID(c), cardID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(card)
}

func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	cardID, err := parseID(c, "cardId")
	if err != nil {
		return err
	}
	if err := h.cards.Delete(c.Context(), middleware.UserID(c), cardID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Card deleted successfully",
	})
}

func (h *CardHandler) AssignUser(c *fiber.Ctx) error {
	cardID, err := parseID(c, "cardId")
	if err != nil {
		return err
	}
	var in service.AssignInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.cards.Assign(c.Context(), middleware.UserID(c), cardID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

func (h *CardHandler) UnassignUser(c *fiber.Ctx) error {
	cardID, err := parseID(c, "cardId")
	if err != nil {
		return err
	}
	assignmentID, err := parseID(c, "assignmentId")
	if err != nil {
		return err
	}
	if err := h.cards.Unassign(c.Context(), middleware.UserID(c), cardID, assignmentID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User unassigned successfully",
	})
}

func (h *CardHandler) UploadAttachment(c *fiber.Ctx) error {
	cardID, err := parseID(c, "cardId")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperr.New(apperr.ErrInvalid, "no file provided")
	}
	if fileHeader.Size > config.MaxUploadBytes {
		return apperr.New(apperr.ErrInvalid, "file too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	attachment, err := h.cards.AddAttachment(c.Context(), middleware.UserID(c), cardID, fileHeader.Filename, f)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(attachment)
}

func (h *CardHandler) DownloadAttachment(c *fiber.Ctx) error {
	cardID, err := parseID(c, "cardId")
	if err != nil {
		return err
	}
	attachmentID, err := parseID(c, "attachmentId")
	if err != nil {
		return err
	}

	attachment, rc, err := h.cards.OpenAttachment(c.Context(), middleware.UserID(c), cardID, attachmentID)
	if err != nil {
		return err
	}
	c.Attachment(attachment.Filename)
	return c.SendStream(rc)
}

func (h *CardHandler) DeleteAttachment(c *fiber.Ctx) error {
	cardID, err := parseID(c, "cardId")
	if err != nil {
		return err
	}
	attachmentID, err := parseID(c, "attachmentId")
	if err != nil {
		return err
	}
	if err := h.cards.DeleteAttachment(c.Context(), middleware.UserID(c), cardID, attachmentID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Attachment deleted successfully",
	})
}

func (h *CardHandler) AddChecklistItem(c *fiber.Ctx) error {
	cardID, err := parseID(c, "cardId")
	if err != nil {
		return err
	}
	var in service.ChecklistItemInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.cards.AddChecklistItem(c.Context(), middleware.UserID(c), cardID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *CardHandler) UpdateChecklistItem(c *fiber.Ctx) error {
	cardID, err := parseID(c, "cardId")
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		return err
	}
	var in service.ChecklistItemInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.cards.UpdateChecklistItem(c.Context(), middleware.UserID(c), cardID, itemID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

func (h *CardHandler) DeleteChecklistItem(c *fiber.Ctx) error {
	cardID, err := parseID(c, "cardId")
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		return err
	}
	if err := h.cards.DeleteChecklistItem(c.Context(), middleware.UserID(c), cardID, itemID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Checklist item deleted successfully",
	})
}
