package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/middleware"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/utils"
)

const tokenTTL = 24 * time.Hour

func signToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":      user.ID,
		"role_id": user.RoleID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(middleware.JWTSecret()))
}

// Register creates a new user account. The role defaults to reception when
// none is given; doctor/patient profiles are created through their own
// endpoints so the account and the clinical profile stay separate steps.
func Register(c *fiber.Ctx) error {
	var body struct {
		FullName string `json:"full_name"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		RoleID   uint   `json:"role_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if body.FullName == "" || body.Username == "" || body.Email == "" || body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "full_name, username, email and password are required",
		})
	}
	if len(body.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Password must be at least 6 characters",
		})
	}
	if body.RoleID == 0 {
		body.RoleID = models.RoleReception
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.RespondError(c, "hash password", err)
	}

	user := models.User{
		FullName: body.FullName,
		Username: body.Username,
		Email:    body.Email,
		Password: string(hashed),
		Phone:    body.Phone,
		RoleID:   body.RoleID,
		Active:   true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Username or email already in use",
			})
		}
		return utils.RespondError(c, "register user", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      user.ID,
		"message": "User registered successfully",
	})
}

// Login checks the credentials and issues a JWT.
func Login(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var user models.User
	err := db.DB.Preload("Role").
		Where("username = ? OR email = ?", body.Username, body.Username).
		First(&user).Error
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}
	if !user.Active {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "This account has been deactivated",
		})
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	signed, err := signToken(user)
	if err != nil {
		return utils.RespondError(c, "sign token", err)
	}
	return c.JSON(fiber.Map{
		"token": signed,
		"user": fiber.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"username":  user.Username,
			"email":     user.Email,
			"role_id":   user.RoleID,
			"role":      user.Role.Name,
		},
	})
}

// Me returns the profile behind the current token.
func Me(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var user models.User
	if err := db.DB.Preload("Role").First(&user, principal.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"id":         user.ID,
		"full_name":  user.FullName,
		"username":   user.Username,
		"email":      user.Email,
		"phone":      user.Phone,
		"role_id":    user.RoleID,
		"role":       user.Role.Name,
		"doctor_id":  principal.DoctorID,
		"patient_id": principal.PatientID,
	})
}

// Refresh issues a fresh token for a still-valid session.
func Refresh(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var user models.User
	if err := db.DB.First(&user, principal.UserID).Error; err != nil || !user.Active {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid session",
		})
	}

	signed, err := signToken(user)
	if err != nil {
		return utils.RespondError(c, "sign token", err)
	}
	return c.JSON(fiber.Map{"token": signed})
}

// Logout is a no-op on the server; the client discards the token. The
// endpoint exists so the frontend has a uniform auth surface.
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// ForgotPassword issues a single-use reset token and emails it. The response
// never reveals whether the email belongs to an account.
func ForgotPassword(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}

	neutral := fiber.Map{
		"message": "If the email is registered, a reset link has been sent",
	}

	var user models.User
	if err := db.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		return c.JSON(neutral)
	}

	reset := models.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := db.DB.Create(&reset).Error; err != nil {
		return utils.RespondError(c, "create reset token", err)
	}

	go func() {
		body := "<p>Dear " + user.FullName + ",</p>" +
			"<p>Use the following code to reset your password (valid for 1 hour):</p>" +
			"<p><strong>" + reset.Token + "</strong></p>"
		if err := utils.SendEmail(user.Email, "Password reset", body); err != nil {
			// Best effort; the token stays usable through support channels.
			return
		}
	}()

	return c.JSON(neutral)
}

// ResetPassword consumes a reset token and replaces the password.
func ResetPassword(c *fiber.Ctx) error {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil || body.Token == "" || body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token and new password are required",
		})
	}
	if len(body.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Password must be at least 6 characters",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var reset models.PasswordResetToken
		if err := tx.Where("token = ? AND used = ?", body.Token, false).
			First(&reset).Error; err != nil {
			return errors.New("invalid token")
		}
		if time.Now().After(reset.ExpiresAt) {
			return errors.New("expired token")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
			Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("used", true).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or expired reset token",
		})
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
