package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"taxifleet/api/web"
	"taxifleet/pkg/forms"
	"taxifleet/storage"
)

func (h *Handler) CarList(c *gin.Context) {
	var search forms.CarSearch
	h.bindQuery(c, &search)

	cars, page, err := h.svc.Car().List(c.Request.Context(), search.Query(), c.Query("page"))
	if err != nil {
		h.abort(c, err)
		return
	}
	h.render(c, "car_list.html", gin.H{
		"title":  "Cars",
		"cars":   cars,
		"page":   page,
		"search": gin.H{"field": "model", "value": search.Model, "placeholder": "Search by model"},
	})
}

func (h *Handler) CarDetail(c *gin.Context) {
	id, ok := h.pk(c)
	if !ok {
		return
	}
	car, err := h.svc.Car().Get(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}
	h.render(c, "car_detail.html", gin.H{
		"title":    car.Model,
		"car":      car,
		"assigned": car.HasDriver(web.CurrentDriver(c).ID),
	})
}

func (h *Handler) CarCreate(c *gin.Context) {
	var form forms.CarForm
	errs := forms.FieldErrors{}

	if isPost(c) {
		if !h.bind(c, &form) {
			return
		}
		var err error
		if errs, err = form.Validate(c.Request.Context(), h.svc.Car()); err != nil {
			h.abort(c, err)
			return
		}
		if errs.Valid() {
			car, err := h.svc.Car().Create(c.Request.Context(), form.Create())
			if err == nil {
				h.redirect(c, "taxi:car-detail", car.ID)
				return
			}
			if !forms.AddConstraintError(err, errs) {
				h.abort(c, err)
				return
			}
		}
	}
	h.renderCarForm(c, "Create car", form, errs)
}

func (h *Handler) CarUpdate(c *gin.Context) {
	id, ok := h.pk(c)
	if !ok {
		return
	}
	car, err := h.svc.Car().Get(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}
	form := forms.CarFormFrom(car)
	errs := forms.FieldErrors{}

	if isPost(c) {
		// An unchecked driver list is absent from the body, so start empty.
		form = forms.CarForm{}
		if !h.bind(c, &form) {
			return
		}
		if errs, err = form.Validate(c.Request.Context(), h.svc.Car()); err != nil {
			h.abort(c, err)
			return
		}
		if errs.Valid() {
			_, err := h.svc.Car().Update(c.Request.Context(), form.Update(id))
			if err == nil {
				h.redirect(c, "taxi:car-detail", id)
				return
			}
			if !forms.AddConstraintError(err, errs) {
				h.abort(c, err)
				return
			}
		}
	}
	h.renderCarForm(c, "Update car", form, errs)
}

func (h *Handler) renderCarForm(c *gin.Context, title string, form forms.CarForm, errs forms.FieldErrors) {
	manufacturers, err := h.svc.Manufacturer().All(c.Request.Context())
	if err != nil {
		h.abort(c, err)
		return
	}
	drivers, err := h.svc.Driver().All(c.Request.Context())
	if err != nil {
		h.abort(c, err)
		return
	}
	h.render(c, "form.html", gin.H{
		"title":  title,
		"fields": web.CarFields(form, manufacturers, drivers, errs),
		"errors": errs,
		"cancel": h.routes.MustURL("taxi:car-list"),
	})
}

func (h *Handler) CarDelete(c *gin.Context) {
	id, ok := h.pk(c)
	if !ok {
		return
	}
	car, err := h.svc.Car().Get(c.Request.Context(), id)
	if err != nil {
		h.abort(c, err)
		return
	}

	if isPost(c) {
		if err := h.svc.Car().Delete(c.Request.Context(), id); err != nil {
			h.abort(c, err)
			return
		}
		h.redirect(c, "taxi:car-list")
		return
	}
	h.render(c, "confirm_delete.html", gin.H{
		"title":  "Delete car",
		"kind":   "car",
		"object": car,
		"cancel": h.routes.MustURL("taxi:car-detail", id),
	})
}

// CarToggleAssign adds the signed-in driver to the car, or removes them if
// already assigned.
func (h *Handler) CarToggleAssign(c *gin.Context) {
	id, ok := h.pk(c)
	if !ok {
		return
	}
	_, err := h.svc.Car().ToggleDriver(c.Request.Context(), id, web.CurrentDriver(c).ID)
	if errors.Is(err, storage.ErrProtected) {
		err = storage.ErrNotFound
	}
	if err != nil {
		h.abort(c, err)
		return
	}
	h.redirect(c, "taxi:car-detail", id)
}
