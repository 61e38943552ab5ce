package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/env"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/hcaptcha"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/mail"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/session"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/statistics"
)

const (
	AUTH_KEY      string = "authenticated"
	USER_ID       string = "user_id"
	USER_NAME     string = "username"
	USER_IS_ADMIN string = "isAdmin"
)

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		var user models.User
		fm := fiber.Map{
			"type": "error",
		}

		// notice: in production you should not inform the user
		// with detailed messages about login failures
		result := database.GetDB().Where("email = ?", c.FormValue("email")).First(&user)
		if result.Error != nil {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !models.CheckPasswordHash(c.FormValue("password"), user.Password) {
			fm["message"] = "There is a problem with the login process"

			return flash.WithError(c, fm).Redirect("/login")
		}

		if !user.IsActive() {
			fm["message"] = "Please activate your account first. Check your inbox for the activation link."

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess, err := session.GetSessionStore().Get(c)
		if err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		sess.Set(AUTH_KEY, true)
		sess.Set(USER_ID, user.ID)
		sess.Set(USER_NAME, user.Name)
		sess.Set(USER_IS_ADMIN, user.Role == models.ROLE_ADMIN)

		if err := sess.Save(); err != nil {
			fm["message"] = fmt.Sprintf("something went wrong: %s", err)

			return flash.WithError(c, fm).Redirect("/login")
		}

		database.GetDB().Model(&user).Update("last_login_at", time.Now())

		ipv4, ipv6 := GetClientIP(c)
		log.Infof("[Auth] User %d logged in from %s %s", user.ID, ipv4, ipv6)

		fm = fiber.Map{
			"type":    "success",
			"message": "Welcome back!",
		}

		return flash.WithSuccess(c, fm).Redirect("/user/dashboard")
	}

	return render(c, "auth/login", fiber.Map{
		"Title": "Sign in",
	})
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "You have been signed out. See you soon.",
	}

	c.Locals(FROM_PROTECTED, false)

	return flash.WithSuccess(c, fm).Redirect("/login")
}

func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		// Verify hCaptcha token
		hcaptchaToken := c.FormValue("h-captcha-response")
		valid, err := hcaptcha.Verify(hcaptchaToken)
		if err != nil || !valid {
			errorMsg := "Captcha validation failed. Please try again."
			if err != nil {
				if env.IsDev() {
					errorMsg = fmt.Sprintf("Captcha validation failed: %v", err)
				}
				log.Errorf("hCaptcha validation error: %v", err)
			}

			fm := fiber.Map{
				"type":    "error",
				"message": errorMsg,
			}
			return flash.WithError(c, fm).Redirect("/register")
		}

		// Create user after successful captcha validation
		user, err := models.CreateUser(c.FormValue("username"), c.FormValue("email"), c.FormValue("password"))
		if err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		if err := user.GenerateActivationToken(); err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		if err := database.GetDB().Create(&user).Error; err != nil {
			fm := fiber.Map{
				"type":    "error",
				"message": fmt.Sprintf("something went wrong: %s", err),
			}

			return flash.WithError(c, fm).Redirect("/register")
		}

		go sendActivationMail(user)

		// Update statistics after registration
		go statistics.UpdateStatisticsCache()

		fm := fiber.Map{
			"type":    "success",
			"message": "Registration successful! Check your inbox for the activation link.",
		}

		return flash.WithSuccess(c, fm).Redirect("/login")
	}

	return render(c, "auth/register", fiber.Map{
		"Title":           "Create account",
		"HCaptchaSiteKey": env.GetEnv("HCAPTCHA_SITEKEY", ""),
	})
}

// HandleAuthActivate consumes the token from the activation mail.
func HandleAuthActivate(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Activation link is invalid.",
		}).Redirect("/login")
	}

	var user models.User
	result := database.GetDB().Where("activation_token = ?", token).First(&user)
	if result.Error != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Activation link is invalid or has already been used.",
		}).Redirect("/login")
	}

	updates := map[string]interface{}{
		"status":           models.STATUS_ACTIVE,
		"activation_token": "",
	}
	if err := database.GetDB().Model(&user).Updates(updates).Error; err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Activation failed. Please try again.",
		}).Redirect("/login")
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Your account is active. You can sign in now.",
	}).Redirect("/login")
}

func sendActivationMail(user *models.User) {
	domain := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:3000")
	link := fmt.Sprintf("%s/activate?token=%s", domain, user.ActivationToken)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nwelcome to VisaPilot. Confirm your email address to activate your account:\r\n\r\n%s\r\n\r\nIf you did not register, ignore this mail.\r\n",
		user.Name, link,
	)
	if err := mail.SendMail(user.Email, "Activate your VisaPilot account", body); err != nil {
		log.Errorf("failed to send activation mail to %s: %v", user.Email, err)
	}
}
