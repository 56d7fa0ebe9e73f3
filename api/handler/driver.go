package handler

import (
	"github.com/gin-gonic/gin"

	"taxifleet/api/web"
	"taxifleet/pkg/forms"
)

func (h *Handler) DriverList(c *gin.Context) {
	var search forms.DriverSearch
	h.bindQuery(c, &search)

	drivers, page, err := h.svc.Driver().List(c.Request.Context(), search.Query(), c.Query("page"))
	if err != nil {
		h.abort(c, err)
		return
	}
	h.render(c, "driver_list.html", gin.H{
		"title":   "Drivers",
		"drivers": drivers,
		"page":    page,
		"search":  gin.H{"field": "username", "value": search.Username, "placeholder": "Search by username"},
	})
}

func (h *Handler) DriverDetail(c *gin.Context) {
	id, ok := h.pk(c)
	if !ok {
		return
	}
	d, err := h.svc.Driver().Get(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.render(c, "driver_detail.html", gin.H{"title": d.Username, "driver": d})
}

func (h *Handler) DriverCreate(c *gin.Context) {
	var form forms.DriverCreationForm
	errs := forms.FieldErrors{}

	if isPost(c) {
		if !h.bind(c, &form) {
			return
		}
		// Only staff may hand out staff status.
		form.IsStaff = form.IsStaff && web.CurrentDriver(c).IsStaff

		var err error
		if errs, err = form.Validate(c.Request.Context(), h.svc.Driver()); err != nil {
			h.abort(c, err)
			return
		}
		if errs.Valid() {
			row, err := form.Create()
			if err != nil {
				h.abort(c, err)
				return
			}
			d, err := h.svc.Driver().Register(c.Request.Context(), row)
			if err == nil {
				h.redirect(c, "taxi:driver-detail", d.ID)
				return
			}
			if !forms.AddConstraintError(err, errs) {
				h.abort(c, err)
				return
			}
		}
	}
	h.render(c, "form.html", gin.H{
		"title":  "Create driver",
		"fields": web.DriverCreationFields(form, errs, false),
		"errors": errs,
		"cancel": h.routes.MustURL("taxi:driver-list"),
	})
}

// DriverUpdate edits the profile fields. Staff and active flags are kept as
// stored; the admin panel owns them.
func (h *Handler) DriverUpdate(c *gin.Context) {
	id, ok := h.pk(c)
	if !ok {
		return
	}
	d, err := h.svc.Driver().Get(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}
	form := forms.DriverUpdateFormFrom(d)
	errs := forms.FieldErrors{}

	if isPost(c) {
		form = forms.DriverUpdateForm{}
		if !h.bind(c, &form) {
			return
		}
		form.IsStaff, form.IsActive = d.IsStaff, d.IsActive

		if errs, err = form.Validate(c.Request.Context(), h.svc.Driver(), id); err != nil {
			h.abort(c, err)
			return
		}
		if errs.Valid() {
			_, err := h.svc.Driver().Update(c.Request.Context(), form.Update(id))
			if err == nil {
				h.redirect(c, "taxi:driver-detail", id)
				return
			}
			if !forms.AddConstraintError(err, errs) {
				h.abort(c, err)
				return
			}
		}
	}
	h.render(c, "form.html", gin.H{
		"title":  "Update driver " + d.Username,
		"fields": web.DriverUpdateFields(form, errs, false),
		"errors": errs,
		"cancel": h.routes.MustURL("taxi:driver-detail", id),
	})
}

func (h *Handler) DriverDelete(c *gin.Context) {
	id, ok := h.pk(c)
	if !ok {
		return
	}
	d, err := h.svc.Driver().Get(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}

	if isPost(c) {
		if err := h.svc.Driver().Delete(c.Request.Context(), id); err != nil {
			h.abort(c, err)
			return
		}
		if id == web.CurrentDriver(c).ID {
			web.ClearSessionCookie(c)
			h.redirect(c, "login")
			return
		}
		h.redirect(c, "taxi:driver-list")
		return
	}
	h.render(c, "confirm_delete.html", gin.H{
		"title":  "Delete driver",
		"kind":   "driver",
		"object": d,
		"cancel": h.routes.MustURL("taxi:driver-detail", id),
	})
}
