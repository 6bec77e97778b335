package mockapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stuma/internal/domain"
	"stuma/internal/log"
	"stuma/internal/validate"
)

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// requireUser resolves the bearer token to a user or responds 401.
func (s *Server) requireUser(c *fiber.Ctx) (User, bool) {
	auth := c.Get("Authorization")
	tok, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || tok == "" {
		_ = message(c, fiber.StatusUnauthorized, "missing bearer token")
		return User{}, false
	}
	u, err := s.store.UserByToken(tok)
	if err != nil {
		log.Security("mockapi.auth.reject", map[string]any{"path": c.Path()})
		_ = message(c, fiber.StatusUnauthorized, ErrUnknownToken.Error())
		return User{}, false
	}
	return u, true
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed payload")
	}
	if _, ok := validate.Email(req.Email); !ok {
		return message(c, fiber.StatusBadRequest, "invalid email")
	}
	if _, ok := validate.Name(req.Name); !ok {
		return message(c, fiber.StatusBadRequest, "invalid name")
	}
	if !validate.Password(req.Password) {
		return message(c, fiber.StatusBadRequest, "password too weak")
	}
	if err := s.store.CreateUser(req); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return message(c, fiber.StatusConflict, ErrEmailTaken.Error())
		}
		return err
	}
	log.Audit("mockapi.register", map[string]any{"email": req.Email})
	return message(c, fiber.StatusCreated, "registration successful")
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed payload")
	}
	tok := uuid.NewString()
	if err := s.store.Authenticate(req.Email, req.Password, tok); err != nil {
		if errors.Is(err, ErrBadCreds) {
			log.Security("mockapi.login.fail", map[string]any{"email": req.Email})
			return message(c, fiber.StatusUnauthorized, ErrBadCreds.Error())
		}
		return err
	}
	log.Audit("mockapi.login", map[string]any{"email": req.Email})
	return c.JSON(domain.LoginResponse{Message: "login successful", Token: tok})
}

func (s *Server) handleItems(c *fiber.Ctx) error {
	if _, ok := s.requireUser(c); !ok {
		return nil
	}
	items, err := s.store.Items()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "ok", "data": items})
}

func (s *Server) handleSell(c *fiber.Ctx) error {
	u, ok := s.requireUser(c)
	if !ok {
		return nil
	}
	var req domain.SellRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed payload")
	}
	if !validate.Listing(req.Name, req.Category, req.Stock, req.Price) {
		return message(c, fiber.StatusBadRequest, "invalid listing")
	}
	if err := s.store.InsertItem(u.ID, req); err != nil {
		return err
	}
	log.Audit("mockapi.sell", map[string]any{"seller": u.ID, "item": req.Name})
	return message(c, fiber.StatusCreated, "item listed")
}

func (s *Server) handleProfile(c *fiber.Ctx) error {
	u, ok := s.requireUser(c)
	if !ok {
		return nil
	}
	return c.JSON(domain.Profile{ID: u.ID, Name: u.Name, Phone: u.Phone, Address: u.Address, Email: u.Email})
}

func (s *Server) handleUpdateProfile(c *fiber.Ctx) error {
	u, ok := s.requireUser(c)
	if !ok {
		return nil
	}
	var req domain.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed payload")
	}
	if _, ok := validate.Name(req.Name); !ok {
		return message(c, fiber.StatusBadRequest, "invalid name")
	}
	if err := s.store.UpdateProfile(u.ID, req); err != nil {
		return err
	}
	return message(c, fiber.StatusOK, "profile updated")
}

func (s *Server) handleChangePassword(c *fiber.Ctx) error {
	u, ok := s.requireUser(c)
	if !ok {
		return nil
	}
	var req domain.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "malformed payload")
	}
	if !validate.Password(req.NewPassword) {
		return message(c, fiber.StatusBadRequest, "password too weak")
	}
	if err := s.store.ChangePassword(u.ID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, ErrBadCreds) {
			return message(c, fiber.StatusUnauthorized, "old password does not match")
		}
		return err
	}
	log.Audit("mockapi.change_password", map[string]any{"user": u.ID})
	return message(c, fiber.StatusOK, "password changed")
}
