package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifleet/api/web"
	"taxifleet/pkg/forms"
	"taxifleet/service"
)

func (h *Handler) Login(c *gin.Context) {
	form := forms.LoginForm{Next: c.Query("next")}
	errs := forms.FieldErrors{}

	if web.CurrentDriver(c) != nil && !isPost(c) {
		c.Redirect(http.StatusFound, forms.SafeNext(form.Next, h.routes.MustURL("taxi:index")))
		return
	}

	if isPost(c) {
		if !h.bind(c, &form) {
			return
		}
		if errs = form.Validate(); errs.Valid() {
			login, err := h.svc.Auth().Login(c.Request.Context(), form.Username, form.Password)
			switch {
			case err == nil:
				web.SetSessionCookie(c, login.Token, h.svc.Auth().TTL(), h.cfg.IsProduction())
				c.Redirect(http.StatusFound, forms.SafeNext(form.Next, h.routes.MustURL("taxi:index")))
				return
			case errors.Is(err, service.ErrInvalidCredentials):
				errs.Add(forms.NonField, forms.MsgInvalidLogin)
			case errors.Is(err, service.ErrInactive):
				errs.Add(forms.NonField, forms.MsgInactiveLogin)
			default:
				h.abort(c, err)
				return
			}
		}
	}
	h.render(c, "login.html", gin.H{
		"title":  "Login",
		"form":   form,
		"errors": errs,
		"next":   form.Next,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if token := web.SessionToken(c); token != "" {
		if err := h.svc.Auth().Logout(c.Request.Context(), token); err != nil {
			h.abort(c, err)
			return
		}
	}
	web.ClearSessionCookie(c)
	h.redirect(c, "login")
}
