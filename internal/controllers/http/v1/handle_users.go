package http

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRequest creates an account. Omitting the password registers a
// bot-only account; bot_id is then required.
type RegisterRequest struct {
	Login    string  `json:"login" example:"alice@example.com"`
	Password string  `json:"password" example:"s3cret"`
	BotID    *int64  `json:"bot_id,omitempty" example:"12345"`
	BotName  *string `json:"bot_name,omitempty" example:"alice_tg"`
}

type RegisterResponse struct {
	ID    int    `json:"id" example:"1"`
	Login string `json:"login" example:"alice@example.com"`
}

type LoginRequest struct {
	Login    string `json:"login" example:"alice@example.com"`
	Password string `json:"password" example:"s3cret"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" example:"s3cret"`
	NewPassword string `json:"new_password" example:"m0re-s3cret"`
}

type LinkAccountsRequest struct {
	BotName string `json:"bot_name" example:"alice_tg"`
}

// Register godoc
// @Summary Register an account
// @Description Creates a user with default forecast preferences. Without a password a bot-only account is created under a generated login.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} RegisterResponse "Created account"
// @Failure 400 {object} ErrorResponse "Malformed request"
// @Failure 409 {object} ErrorResponse "Login already taken"
// @Router /users/register [post]
func (r *routes) handleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}

	user, err := r.users.Register(c.Context(), req.Login, req.Password, req.BotID, req.BotName)
	if err != nil {
		return r.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(RegisterResponse{ID: user.ID, Login: user.Login})
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a bearer token.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} auth.TokenInfo "Bearer token"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /users/login [post]
func (r *routes) handleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}

	token, err := r.users.Login(c.Context(), req.Login, req.Password)
	if err != nil {
		return r.respondError(c, err)
	}

	return c.JSON(token)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Old and new password"
// @Success 204 "Password changed"
// @Failure 401 {object} ErrorResponse "Wrong old password or missing token"
// @Router /users/password [patch]
func (r *routes) handleChangePassword(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}

	if err := r.users.ChangePassword(c.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return r.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LinkAccounts godoc
// @Summary Link a bot account
// @Description Moves the bot identity of a bot-only account onto the caller's account and removes the bot-only row.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LinkAccountsRequest true "Bot account name"
// @Success 204 "Accounts linked"
// @Failure 404 {object} ErrorResponse "Bot account not found"
// @Router /users/link [put]
func (r *routes) handleLinkAccounts(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	var req LinkAccountsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}

	if err := r.users.LinkAccounts(c.Context(), userID, req.BotName); err != nil {
		return r.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
