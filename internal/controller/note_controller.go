package controller

import (
	"strconv"
	"strings"

	"notepad-be/internal/dto"
	"notepad-be/internal/entity"
	"notepad-be/internal/pkg/apperror"
	"notepad-be/internal/pkg/serverutils"
	"notepad-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// unfiledFolderParam selects notes without a folder in ?folder=.
const unfiledFolderParam = "none"

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("search", c.Search)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	req, err := parseListNotesRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.List(ctx.UserContext(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Search(ctx *fiber.Ctx) error {
	req, err := parseListNotesRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Search(ctx.UserContext(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search notes", res))
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.noteService.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.noteService.Delete(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete note", res))
}

// parseListNotesRequest reads ?folder=<id|none>&favorite=<bool>&q=<term>.
func parseListNotesRequest(ctx *fiber.Ctx) (*dto.ListNotesRequest, error) {
	req := &dto.ListNotesRequest{
		Filter: entity.NoteFilter{Folder: entity.ScopeAny()},
		Query:  ctx.Query("q"),
	}

	switch folder := strings.TrimSpace(ctx.Query("folder")); folder {
	case "":
	case unfiledFolderParam:
		req.Filter.Folder = entity.ScopeUnfiled()
	default:
		id, err := uuid.Parse(folder)
		if err != nil {
			return nil, apperror.NewValidationError("folder", "must be a folder id or \"none\"")
		}
		req.Filter.Folder = entity.ScopeFolder(id)
	}

	if raw := strings.TrimSpace(ctx.Query("favorite")); raw != "" {
		favorite, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, apperror.NewValidationError("favorite", "must be true or false")
		}
		req.Filter.Favorite = &favorite
	}

	return req, nil
}
