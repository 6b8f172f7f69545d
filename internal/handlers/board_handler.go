package handlers

import (
	"boardify-backend/internal/middleware"
	"boardify-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boards *service.BoardService
}

func NewBoardHandler(boards *service.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+param)
	}
	return id, nil
}

func (h *BoardHandler) GetAllBoards(c *fiber.Ctx) error {
	boards, err := h.boards.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(boards)
}

func (h *BoardHandler) CreateBoard(c *fiber.Ctx) error {
	var in service.CreateBoardInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	board, err := h.boards.Create(c.Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(board)
}

func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return err
	}
	board, err := h.boards.Get(c.Context(), middleware.UserID(c), boardID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(board)
}

func (h *BoardHandler) UpdateBoard(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return err
	}
	var in service.UpdateBoardInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	board, err := h.boards.Update(c.Context(), middleware.UserID(c), boardID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(board)
}

func (h *BoardHandler) DeleteBoard(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return err
	}
	if err := h.boards.Delete(c.Context(), middleware.UserID(c), boardID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Board deleted successfully",
	})
}

func (h *BoardHandler) GetMembers(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return err
	}
	members, err := h.boards.Members(c.Context(), middleware.UserID(c), boardID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(members)
}

func (h *BoardHandler) InviteMember(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return err
	}
	var in service.InviteMemberInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	member, err := h.boards.Invite(c.Context(), middleware.UserID(c), boardID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

func (h *BoardHandler) RemoveMember(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return err
	}
	memberID, err := parseID(c, "memberId")
	if err != nil {
		return err
	}
	if err := h.boards.RemoveMember(c.Context(), middleware.UserID(c), boardID, memberID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Member removed successfully",
	})
}

func (h *BoardHandler) GetActivities(c *fiber.Ctx) error {
	boardID, err := parseID(c, "boardId")
	if err != nil {
		return err
	}
	rows, err := h.boards.Activities(c.Context(), middleware.UserID(c), boardID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(rows)
}
