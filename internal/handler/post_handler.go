package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"learnloop/internal/domain"
	"learnloop/internal/middleware"
	"learnloop/internal/service/post"
)

const maxMediaSize = 10 * 1024 * 1024

type PostHandler struct {
	postService post.Service
}

func NewPostHandler(postService post.Service) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	input, files, closeFiles, err := parsePostForm(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	created, err := h.postService.Create(c.UserContext(), userID, input, files)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	input, files, closeFiles, err := parsePostForm(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	updated, err := h.postService.Update(c.UserContext(), c.Params("postId"), userID, input, files)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.UserContext(), c.Params("postId"), userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *PostHandler) Like(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	liked, err := h.postService.Like(c.UserContext(), c.Params("postId"), userID)
	if err != nil {
		return err
	}

	return c.JSON(liked)
}

func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	comment, err := h.postService.AddComment(c.UserContext(), c.Params("postId"), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *PostHandler) EditComment(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	commentID, err := parseUUIDParam(c, "commentId", "comment")
	if err != nil {
		return err
	}

	var input domain.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	comment, err := h.postService.EditComment(c.UserContext(), c.Params("postId"), commentID, userID, input)
	if err != nil {
		return err
	}

	return c.JSON(comment)
}

func (h *PostHandler) DeleteComment(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	commentID, err := parseUUIDParam(c, "commentId", "comment")
	if err != nil {
		return err
	}

	if err := h.postService.DeleteComment(c.UserContext(), c.Params("postId"), commentID, userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

// parsePostForm reads the description and any "media" files of a multipart post.
// The returned func closes the opened files.
func parsePostForm(c *fiber.Ctx) (domain.PostInput, []domain.Upload, func(), error) {
	noop := func() {}

	var input domain.PostInput
	if err := c.BodyParser(&input); err != nil {
		return input, nil, noop, middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return input, nil, noop, err
	}

	form, err := c.MultipartForm()
	if err != nil {
		// Plain form or JSON body without files.
		return input, nil, noop, nil
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	var uploads []domain.Upload
	for _, fh := range form.File["media"] {
		if fh.Size > maxMediaSize {
			closeAll()
			return input, nil, noop, fiber.NewError(fiber.StatusRequestEntityTooLarge, "Media file too large")
		}
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return input, nil, noop, middleware.BadRequest("Failed to read media file")
		}
		opened = append(opened, f)
		uploads = append(uploads, domain.Upload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		})
	}

	return input, uploads, closeAll, nil
}
