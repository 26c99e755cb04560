package middleware

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/db"
	"github.com/EquipoUptamca/EquipoUptamca-Proyecto-Clinica/models"
)

// JWTSecret returns the token signing key. Login and refresh reuse it when
// issuing tokens.
func JWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return secret
}

// Protected validates the JWT and resolves the full principal (user, role,
// linked doctor/patient profile) once per request. Handlers read it with
// CurrentPrincipal instead of touching token claims or session state.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(JWTSecret()),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			userToken := c.Locals("user")
			token, ok := userToken.(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			userID, err := extractUint(claims, "id")
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid user ID in token",
				})
			}
			roleID, err := extractUint(claims, "role_id")
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid role in token",
				})
			}

			principal := models.Principal{UserID: userID, RoleID: roleID}

			conn := db.GetDB()
			if conn == nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "Server is shutting down",
				})
			}
			var doctor models.Doctor
			if conn.Select("id").Where("user_id = ?", userID).First(&doctor).Error == nil {
				principal.DoctorID = doctor.ID
			}
			var patient models.Patient
			if conn.Select("id").Where("user_id = ?", userID).First(&patient).Error == nil {
				principal.PatientID = patient.ID
			}

			c.Locals("principal", principal)
			return c.Next()
		},
	})
}

// CurrentPrincipal returns the principal resolved by Protected.
func CurrentPrincipal(c *fiber.Ctx) (models.Principal, bool) {
	principal, ok := c.Locals("principal").(models.Principal)
	return principal, ok
}

// extractUint handles the numeric claim formats different token issuers
// produce.
func extractUint(claims jwt.MapClaims, key string) (uint, error) {
	val := claims[key]
	if val == nil {
		return 0, fmt.Errorf("no %s found in claims", key)
	}

	switch v := val.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse %s string: %v", key, err)
		}
		return uint(parsed), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported %s type: %T", key, v)
	}
}

// jwtError handles JWT errors
func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
