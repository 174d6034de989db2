package handlers

import (
	"regexp"

	"github.com/gofiber/fiber/v2"

	"github.com/example/communityhub/internal/config"
	"github.com/example/communityhub/internal/mail"
	"github.com/example/communityhub/internal/middleware"
	"github.com/example/communityhub/internal/models"
	"github.com/example/communityhub/internal/store"
	"github.com/example/communityhub/internal/utils"
)

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// AuthHandler bundles dependencies for the registration, login, and
// verification workflows.
type AuthHandler struct {
	users  store.UserStore
	mailer mail.Mailer
	cfg    *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users store.UserStore, mailer mail.Mailer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, mailer: mailer, cfg: cfg}
}

type registerRequest struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required"`
	FName       string `json:"fName" validate:"required"`
	LName       string `json:"lName" validate:"required"`
	Password    string `json:"password" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// Register creates a new unverified account and dispatches the verification
// code. Username, email, and phone number must each be unused; the checks run
// in that order and short-circuit on the first conflict.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	reqLog := middleware.Logger(c)

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validateRequest(&req); err != nil {
		return err
	}

	existing, err := h.users.GetByUsername(req.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		reqLog.Warn().Str("username", req.Username).Msg("registration failed, username already exists")
		return fiber.NewError(fiber.StatusConflict, "username already exists")
	}

	existing, err = h.users.GetByEmail(req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		reqLog.Warn().Str("email", req.Email).Msg("registration failed, email already exists")
		return fiber.NewError(fiber.StatusConflict, "email already exists")
	}

	existing, err = h.users.GetByPhone(req.PhoneNumber)
	if err != nil {
		return err
	}
	if existing != nil {
		reqLog.Warn().Str("phone", req.PhoneNumber).Msg("registration failed, phone number already exists")
		return fiber.NewError(fiber.StatusConflict, "phone number already exists")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate verification code")
	}

	user := models.User{
		Username:          req.Username,
		FName:             req.FName,
		LName:             req.LName,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		PasswordHash:      passwordHash,
		Verified:          false,
		VerificationToken: &otp,
	}

	if err := h.users.Create(&user); err != nil {
		return err
	}

	// The record is already persisted at this point; a mail failure surfaces
	// as an error without rolling it back.
	if err := h.mailer.SendVerificationCode(req.Email, otp); err != nil {
		reqLog.Error().Err(err).Str("email", req.Email).Msg("verification mail dispatch failed")
		return err
	}

	reqLog.Info().Str("username", req.Username).Str("email", req.Email).Msg("user registered")
	return utils.Success(c, fiber.StatusCreated, "Registration successful! Please check your email for verification.", nil)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates by username or email and issues a session token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	reqLog := middleware.Logger(c)

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Username == "" {
		return fiber.NewError(fiber.StatusBadRequest, "username parameter is required")
	}

	var (
		user *models.User
		err  error
	)
	if emailPattern.MatchString(req.Username) {
		user, err = h.users.GetByEmail(req.Username)
	} else {
		user, err = h.users.GetByUsername(req.Username)
	}
	if err != nil {
		return err
	}
	if user == nil {
		reqLog.Warn().Str("identifier", req.Username).Msg("login failed, user not found")
		return fiber.NewError(fiber.StatusNotFound, "user not found, please register")
	}

	if !user.Verified {
		reqLog.Warn().Str("username", user.Username).Msg("login failed, email not verified")
		return fiber.NewError(fiber.StatusForbidden, "please verify your email before logging in")
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		reqLog.Warn().Str("username", user.Username).Msg("login failed, invalid password")
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.Username)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	reqLog.Info().Str("username", user.Username).Msg("login successful")
	return utils.Success(c, fiber.StatusOK, "Login successful", fiber.Map{"token": token})
}

type verifyUsersRequest struct {
	VerificationTokens []string `json:"verificationTokens"`
}

type verifiedUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type verificationSummary struct {
	TotalProcessed       int `json:"totalProcessed"`
	SuccessfullyVerified int `json:"successfullyVerified"`
	FailedVerifications  int `json:"failedVerifications"`
}

type verifyUsersResponse struct {
	VerifiedUsers []verifiedUser      `json:"verifiedUsers"`
	InvalidTokens []string            `json:"invalidTokens"`
	Summary       verificationSummary `json:"summary"`
}

// VerifyUsers redeems a batch of OTPs. Each token is looked up independently
// against committed state: unmatched tokens never abort the batch, and matched
// updates are queued and committed together once the whole list is processed.
// A token repeated within one request matches on every occurrence, since the
// queued updates are not visible to later lookups in the same pass.
func (h *AuthHandler) VerifyUsers(c *fiber.Ctx) error {
	reqLog := middleware.Logger(c)

	var req verifyUsersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.VerificationTokens) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid tokens array, provide an array of verification tokens")
	}

	verified := make([]verifiedUser, 0)
	invalid := make([]string, 0)
	updates := make([]store.VerificationUpdate, 0, len(req.VerificationTokens))

	for _, token := range req.VerificationTokens {
		user, err := h.users.FindByVerificationToken(token)
		if err != nil {
			reqLog.Error().Err(err).Msg("verification token lookup failed")
			invalid = append(invalid, token)
			continue
		}
		if user == nil {
			reqLog.Warn().Str("token", token).Msg("verification failed, invalid token")
			invalid = append(invalid, token)
			continue
		}

		updates = append(updates, store.VerificationUpdate{
			Username: user.Username,
			Verified: true,
			Token:    nil,
		})
		verified = append(verified, verifiedUser{Username: user.Username, Email: user.Email})
		reqLog.Info().Str("username", user.Username).Msg("user queued for verification")
	}

	if len(verified) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no valid tokens found, all provided tokens were invalid or expired")
	}

	if err := h.users.BatchUpdateVerification(updates); err != nil {
		return err
	}

	reqLog.Info().
		Int("verified", len(verified)).
		Int("invalid", len(invalid)).
		Msg("batch verification completed")

	return utils.Success(c, fiber.StatusOK, "Verification completed", verifyUsersResponse{
		VerifiedUsers: verified,
		InvalidTokens: invalid,
		Summary: verificationSummary{
			TotalProcessed:       len(req.VerificationTokens),
			SuccessfullyVerified: len(verified),
			FailedVerifications:  len(invalid),
		},
	})
}
