package server

import (
	"errors"
	"strings"
	"time"

	"github.com/Zarsham27/social-networking-web-app/internal/middleware"
	"github.com/Zarsham27/social-networking-web-app/internal/models"
	"github.com/Zarsham27/social-networking-web-app/internal/session"

	"github.com/gofiber/fiber/v2"
)

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginStatus handles GET /api/login
// @Summary Login status
// @Description Report whether the caller holds a live session
// @Tags auth
// @Produce json
// @Success 200 {object} object{loggedIn=bool,user=models.User}
// @Router /login [get]
func (s *Server) LoginStatus(c *fiber.Ctx) error {
	sess, err := s.sessionFromRequest(c)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return c.JSON(fiber.Map{"loggedIn": false})
		}
		return s.respondError(c, models.NewInternalError(err))
	}

	user, err := s.userService.GetProfile(c.UserContext(), sess.Username)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return c.JSON(fiber.Map{"loggedIn": false})
		}
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"loggedIn": true,
		"user":     user,
	})
}

// Login handles POST /api/login
// @Summary User login
// @Description Authenticate, start a session and return a bearer token bound to it
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} object{loggedIn=bool,token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	ctx := c.UserContext()
	user, err := s.userService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	// Replace any session the client already had
	if old, err := s.sessionFromRequest(c); err == nil {
		_ = s.sessions.Delete(ctx, old.ID)
	}

	sess, err := s.sessions.Create(ctx, user.Username)
	if err != nil {
		return s.respondError(c, models.NewInternalError(err))
	}
	token, err := s.tokens.Issue(sess)
	if err != nil {
		return s.respondError(c, models.NewInternalError(err))
	}

	s.setSessionCookie(c, sess.ID, sess.ExpiresAt)
	middleware.Logger.InfoContext(middleware.WithUsername(ctx, user.Username), "user logged in")

	return c.JSON(fiber.Map{
		"loggedIn": true,
		"token":    token,
		"user":     user,
	})
}

// Logout handles DELETE /api/login
// @Summary User logout
// @Description End the caller's session. Succeeds without a session too.
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /login [delete]
func (s *Server) Logout(c *fiber.Ctx) error {
	if sess, err := s.sessionFromRequest(c); err == nil {
		if err := s.sessions.Delete(c.UserContext(), sess.ID); err != nil {
			return s.respondError(c, models.NewInternalError(err))
		}
	}

	s.setSessionCookie(c, "", time.Unix(0, 0))
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// AuthRequired returns the authentication middleware. A session cookie or a
// bearer token referencing a live session identifies the actor.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.sessionFromRequest(c)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Authorization required"))
			}
			return s.respondError(c, models.NewInternalError(err))
		}

		c.Locals("username", sess.Username)
		// Sync to UserContext for logging and downstream services
		c.SetUserContext(middleware.WithUsername(c.UserContext(), sess.Username))

		return c.Next()
	}
}

// sessionFromRequest resolves the caller's session from the cookie or, for
// non-browser clients, the Authorization header. It returns
// session.ErrNotFound when neither yields a live session.
func (s *Server) sessionFromRequest(c *fiber.Ctx) (*session.Session, error) {
	ctx := c.UserContext()

	if id := c.Cookies(s.cookieName()); id != "" {
		sess, err := s.sessions.Get(ctx, id)
		if err == nil || !errors.Is(err, session.ErrNotFound) {
			return sess, err
		}
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	raw, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || raw == "" {
		return nil, session.ErrNotFound
	}

	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, session.ErrNotFound
	}
	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.Username != claims.Subject {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

func (s *Server) cookieName() string {
	if s.config.SessionCookieName != "" {
		return s.config.SessionCookieName
	}
	return "sid"
}

func (s *Server) setSessionCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookieName(),
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
