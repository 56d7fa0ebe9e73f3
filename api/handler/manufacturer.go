package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"taxifleet/api/web"
	"taxifleet/pkg/forms"
)

func (h *Handler) ManufacturerList(c *gin.Context) {
	var search forms.ManufacturerSearch
	h.bindQuery(c, &search)

	manufacturers, page, err := h.svc.Manufacturer().List(c.Request.Context(), search.Query(), c.Query("page"))
	if err != nil {
		h.abort(c, err)
		return
	}
	h.render(c, "manufacturer_list.html", gin.H{
		"title":         "Manufacturers",
		"manufacturers": manufacturers,
		"page":          page,
		"search":        gin.H{"field": "name", "value": search.Name, "placeholder": "Search by name"},
	})
}

func (h *Handler) ManufacturerDetail(c *gin.Context) {
	id, ok := h.pk(c)
	if !ok {
		return
	}
	m, err := h.svc.Manufacturer().Get(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.render(c, "manufacturer_detail.html", gin.H{"title": m.Name, "manufacturer": m})
}

func (h *Handler) ManufacturerCreate(c *gin.Context) {
	var form forms.ManufacturerForm
	errs := forms.FieldErrors{}

	if isPost(c) {
		if !h.bind(c, &form) {
			return
		}
		if errs = form.Validate(); errs.Valid() {
			if _, err := h.svc.Manufacturer().Create(c.Request.Context(), form.Create()); err != nil {
				h.abort(c, err)
				return
			}
			h.redirect(c, "taxi:manufacturer-list")
			return
		}
	}
	h.renderManufacturerForm(c, "Create manufacturer", form, errs)
}

func (h *Handler) ManufacturerUpdate(c *gin.Context) {
	id, ok := h.pk(c)
	if !ok {
		return
	}
	m, err := h.svc.Manufacturer().Get(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}
	form := forms.ManufacturerFormFrom(m)
	errs := forms.FieldErrors{}

	if isPost(c) {
		form = forms.ManufacturerForm{}
		if !h.bind(c, &form) {
			return
		}
		if errs = form.Validate(); errs.Valid() {
			if _, err := h.svc.Manufacturer().Update(c.Request.Context(), form.Update(id)); err != nil {
				h.abort(c, err)
				return
			}
			h.redirect(c, "taxi:manufacturer-list")
			return
		}
	}
	h.renderManufacturerForm(c, "Update manufacturer", form, errs)
}

func (h *Handler) renderManufacturerForm(c *gin.Context, title string, form forms.ManufacturerForm, errs forms.FieldErrors) {
	h.render(c, "form.html", gin.H{
		"title":  title,
		"fields": web.ManufacturerFields(form, errs),
		"errors": errs,
		"cancel": h.routes.MustURL("taxi:manufacturer-list"),
	})
}

func (h *Handler) ManufacturerDelete(c *gin.Context) {
	id, ok := h.pk(c)
	if !ok {
		return
	}
	m, err := h.svc.Manufacturer().Get(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}

	if isPost(c) {
		if err := h.svc.Manufacturer().Delete(c.Request.Context(), id); err != nil {
			h.abort(c, err)
			return
		}
		h.redirect(c, "taxi:manufacturer-list")
		return
	}

	data := gin.H{
		"title":  "Delete manufacturer",
		"kind":   "manufacturer",
		"object": m,
		"cancel": h.routes.MustURL("taxi:manufacturer-detail", id),
	}
	if n := len(m.Cars); n > 0 {
		data["cascade"] = cascadeWarning(n)
	}
	h.render(c, "confirm_delete.html", data)
}

func cascadeWarning(cars int) string {
	if cars == 1 {
		return "Its 1 car will be deleted as well."
	}
	return fmt.Sprintf("Its %d cars will be deleted as well.", cars)
}
