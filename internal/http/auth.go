package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"simrig-shop/internal/repository"
	"simrig-shop/internal/service"
	"simrig-shop/internal/session"
)

var registrationFields = []string{"firstName", "lastName", "username", "email", "telnum", "city", "postalCode"}

// formValues copies the named fields for redisplay. Passwords are never echoed.
func formValues(c *gin.Context, fields ...string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = c.PostForm(f)
	}
	return values
}

func (h *Handler) registerForm(c *gin.Context) {
	c.HTML(http.StatusOK, pageReg, h.view(c))
}

func (h *Handler) register(c *gin.Context) {
	form := formValues(c, registrationFields...)
	reg := service.Registration{
		FirstName:  strings.TrimSpace(form["firstName"]),
		LastName:   strings.TrimSpace(form["lastName"]),
		Username:   strings.TrimSpace(form["username"]),
		Email:      strings.TrimSpace(form["email"]),
		Password:   c.PostForm("password"),
		City:       strings.TrimSpace(form["city"]),
		PostalCode: strings.TrimSpace(form["postalCode"]),
	}

	if _, err := h.users.Register(c.Request.Context(), reg); err != nil {
		data := h.view(c)
		data.Title = h.msg.Nav.Register
		data.Form = form
		data.Error = h.registrationError(c, err)
		c.HTML(http.StatusOK, pageReg, data)
		return
	}

	sess := session.Default(c)
	sess.Set(keyMessage, h.msg.Registered)
	if err := sess.Save(); err != nil {
		_ = c.Error(err)
		data := h.view(c)
		data.Form = form
		data.Error = fmt.Sprintf(h.msg.ServerError, err)
		c.HTML(http.StatusOK, pageReg, data)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) registrationError(c *gin.Context, err error) string {
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		return h.msg.RegisterFailed + h.msg.UsernameTaken
	case errors.Is(err, service.ErrEmailTaken):
		return h.msg.RegisterFailed + h.msg.EmailTaken
	case errors.Is(err, repository.ErrDuplicateKey):
		_ = c.Error(err)
		return h.msg.RegisterFailed + h.msg.DatabaseError
	default:
		_ = c.Error(err)
		return fmt.Sprintf(h.msg.ServerError, err)
	}
}

func (h *Handler) loginForm(c *gin.Context) {
	data := h.view(c)
	data.Title = h.msg.Nav.Login

	sess := session.Default(c)
	if msg, ok := sess.Pop(keyMessage, nil).(string); ok {
		data.Message = msg
	}
	if err := sess.Save(); err != nil {
		_ = c.Error(err)
	}
	c.HTML(http.StatusOK, pageLogin, data)
}

func (h *Handler) login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	user, err := h.users.Authenticate(c.Request.Context(), username, c.PostForm("password"))
	if err == nil {
		sess := session.Default(c)
		sess.Set(keyUserID, user.ID)
		sess.Set(keyUsername, user.Username)
		err = sess.Save()
		if err == nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
	}

	data := h.view(c)
	data.Title = h.msg.Nav.Login
	data.Form = map[string]string{"username": username}
	if errors.Is(err, service.ErrInvalidCredentials) {
		data.Error = h.msg.InvalidCredentials
	} else {
		_ = c.Error(err)
		data.Error = fmt.Sprintf(h.msg.ServerError, err)
	}
	c.HTML(http.StatusOK, pageLogin, data)
}

func (h *Handler) logout(c *gin.Context) {
	sess := session.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusFound, "/")
}
