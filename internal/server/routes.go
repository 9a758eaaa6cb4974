package server

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jotter/internal/database"
	"jotter/internal/database/dto"
	"jotter/internal/database/repositories"
)

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Post("/login", s.login)
	s.App.Get("/health", s.healthHandler)
	// endpoint to monitor memory
	s.App.Get("/memory", func(c *fiber.Ctx) error {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		memoryInfo := fmt.Sprintf("Alloc = %v MiB, TotalAlloc = %v MiB, Sys = %v MiB, NumGC = %v",
			bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
		return c.SendString(memoryInfo)
	})

	s.App.Post("/password/:user_id", s.setPassword)
	s.App.Post("/verify_password/:user_id", s.verifyPassword)

	// The static /notes routes are the original single-collection API; the
	// parameterized ones are the per-user API. Fiber matches static paths
	// first, so both shapes coexist.
	s.App.Get("/notes", s.getAllNotes)
	s.App.Post("/notes", s.createNote)
	s.App.Put("/notes/:id", s.updateNote)
	s.App.Delete("/notes/:id", s.deleteNote)
	s.App.Get("/notes/:user_id", s.getUserNotes)
	s.App.Post("/notes/:user_id", s.createUserNote)
	s.App.Delete("/notes/:user_id/:note_id", s.deleteUserNote)
}

// statusFor maps a repository error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, database.ErrEmptyUserID),
		errors.Is(err, database.ErrInvalidCategory),
		errors.Is(err, database.ErrEmptyPassword),
		errors.Is(err, database.ErrPasswordAlreadySet):
		return fiber.StatusBadRequest
	case errors.Is(err, database.ErrPasswordMismatch):
		return fiber.StatusUnauthorized
	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrNoteNotFound),
		errors.Is(err, database.ErrPasswordNotSet):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

func (s *FiberServer) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		s.log.Error("internal error", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	return c.JSON(s.store.Health())
}

func (s *FiberServer) login(c *fiber.Ctx) error {
	credentials := dto.LoginRequest{}
	if err := c.BodyParser(&credentials); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	repo := repositories.NewUserRepository(s.store)
	id, err := repo.Login(c.Context(), credentials.UserID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "logged in as " + id})
}

func (s *FiberServer) setPassword(c *fiber.Ctx) error {
	req := dto.PasswordRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	repo := repositories.NewPasswordRepository(s.store)
	if err := repo.Set(c.Context(), c.Params("user_id"), req.Category, req.Password); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "password set successfully"})
}

func (s *FiberServer) verifyPassword(c *fiber.Ctx) error {
	req := dto.PasswordRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	repo := repositories.NewPasswordRepository(s.store)
	if err := repo.Verify(c.Context(), c.Params("user_id"), req.Category, req.Password); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "password verified successfully"})
}

func (s *FiberServer) getAllNotes(c *fiber.Ctx) error {
	repo := repositories.NewNoteRepository(s.store)
	notes, err := repo.ListAll(c.Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(notes)
}

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	req := dto.CreateNoteRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	repo := repositories.NewNoteRepository(s.store)
	note, err := repo.CreateGlobal(c.Context(), req.Title, req.Content)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(note)
}

func (s *FiberServer) updateNote(c *fiber.Ctx) error {
	req := dto.CreateNoteRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	repo := repositories.NewNoteRepository(s.store)
	note, err := repo.Update(c.Context(), c.Params("id"), req.Title, req.Content)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(note)
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	repo := repositories.NewNoteRepository(s.store)
	if err := repo.Delete(c.Context(), c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (s *FiberServer) getUserNotes(c *fiber.Ctx) error {
	repo := repositories.NewNoteRepository(s.store)
	notes, err := repo.ListByUser(c.Context(), c.Params("user_id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(notes)
}

func (s *FiberServer) createUserNote(c *fiber.Ctx) error {
	req := dto.CreateNoteRequest{}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	repo := repositories.NewNoteRepository(s.store)
	note, err := repo.Create(c.Context(), c.Params("user_id"), req.Title, req.Content, req.Category)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(note)
}

func (s *FiberServer) deleteUserNote(c *fiber.Ctx) error {
	repo := repositories.NewNoteRepository(s.store)
	if err := repo.DeleteByUser(c.Context(), c.Params("user_id"), c.Params("note_id")); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
