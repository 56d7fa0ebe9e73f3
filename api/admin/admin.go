// Package admin serves the staff-only management pages: a changelist with
// search and pagination plus add, change and delete pages for each model.
package admin

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxifleet/api/web"
	"taxifleet/pkg/forms"
	"taxifleet/pkg/logger"
	"taxifleet/service"
	"taxifleet/storage"
)

type row struct {
	URL   string
	Cells []string
}

// model describes one registered model. save handles both GET and POST of the
// add (id == 0) and change pages and reports whether the submission was stored.
type model struct {
	name    string
	verbose string
	plural  string
	columns []string

	list   func(ctx context.Context, q, page string) ([][]string, []int64, service.Page, error)
	object func(ctx context.Context, id int64) (fmt.Stringer, error)
	save   func(c *gin.Context, id int64) (bool, []web.Field, forms.FieldErrors, error)
	delete func(ctx context.Context, id int64) error
}

func (m *model) route(action string) string {
	return "admin:taxi_" + m.name + "_" + action
}

type Admin struct {
	svc    service.IServiceManager
	routes *web.Routes
	log    logger.ILogger
	models []*model
}

func New(svc service.IServiceManager, routes *web.Routes, log logger.ILogger) *Admin {
	a := &Admin{svc: svc, routes: routes, log: log}
	a.models = []*model{a.driverModel(), a.carModel(), a.manufacturerModel()}
	return a
}

// Register mounts the panel on g, which must already require a staff driver.
func (a *Admin) Register(g *gin.RouterGroup) {
	a.routes.GET(g, "admin:index", "/", a.index)
	for _, m := range a.models {
		base := "/taxi/" + m.name
		a.routes.GET(g, m.route("changelist"), base+"/", a.changelist(m))
		a.routes.Form(g, m.route("add"), base+"/add/", a.add(m))
		a.routes.Form(g, m.route("change"), base+"/:pk/change/", a.change(m))
		a.routes.Form(g, m.route("delete"), base+"/:pk/delete/", a.remove(m))
	}
}

type entry struct {
	Name          string
	ChangelistURL string
	AddURL        string
}

func (a *Admin) index(c *gin.Context) {
	entries := make([]entry, 0, len(a.models))
	for _, m := range a.models {
		entries = append(entries, entry{
			Name:          m.plural,
			ChangelistURL: a.routes.MustURL(m.route("changelist")),
			AddURL:        a.routes.MustURL(m.route("add")),
		})
	}
	web.Render(c, http.StatusOK, "admin_index.html", gin.H{
		"title":  "Site administration",
		"models": entries,
	})
}

func (a *Admin) changelist(m *model) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		cells, ids, page, err := m.list(c.Request.Context(), q, c.Query("p"))
		if err != nil {
			web.Abort(c, a.log, err)
			return
		}
		rows := make([]row, len(cells))
		for i := range cells {
			rows[i] = row{URL: a.routes.MustURL(m.route("change"), ids[i]), Cells: cells[i]}
		}
		web.Render(c, http.StatusOK, "admin_changelist.html", gin.H{
			"title":   "Select " + m.verbose + " to change",
			"plural":  m.plural,
			"columns": m.columns,
			"rows":    rows,
			"page":    page,
			"q":       q,
			"add":     a.routes.MustURL(m.route("add")),
		})
	}
}

func (a *Admin) add(m *model) gin.HandlerFunc {
	return func(c *gin.Context) {
		a.form(c, m, 0, "Add "+m.verbose)
	}
}

func (a *Admin) change(m *model) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := a.pk(c)
		if !ok {
			return
		}
		obj, err := m.object(c.Request.Context(), id)
		if err != nil {
			web.Abort(c, a.log, err)
			return
		}
		a.form(c, m, id, "Change "+m.verbose+": "+obj.String())
	}
}

func (a *Admin) form(c *gin.Context, m *model, id int64, title string) {
	saved, fields, errs, err := m.save(c, id)
	if err != nil {
		web.Abort(c, a.log, err)
		return
	}
	if c.IsAborted() {
		return
	}
	if saved {
		web.Redirect(c, a.routes, a.log, m.route("changelist"))
		return
	}
	data := gin.H{
		"title":  title,
		"fields": fields,
		"errors": errs,
		"cancel": a.routes.MustURL(m.route("changelist")),
	}
	if id != 0 {
		data["delete"] = a.routes.MustURL(m.route("delete"), id)
	}
	web.Render(c, http.StatusOK, "form.html", data)
}

func (a *Admin) remove(m *model) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := a.pk(c)
		if !ok {
			return
		}
		obj, err := m.object(c.Request.Context(), id)
		if err != nil {
			web.Abort(c, a.log, err)
			return
		}
		if c.Request.Method == http.MethodPost {
			if err := m.delete(c.Request.Context(), id); err != nil {
				web.Abort(c, a.log, err)
				return
			}
			a.log.Info("admin deleted object",
				logger.String("model", m.name),
				logger.Int64("id", id),
				logger.String("by", web.CurrentDriver(c).Username),
			)
			web.Redirect(c, a.routes, a.log, m.route("changelist"))
			return
		}
		web.Render(c, http.StatusOK, "confirm_delete.html", gin.H{
			"title":  "Are you sure?",
			"kind":   m.verbose,
			"object": obj,
			"cancel": a.routes.MustURL(m.route("change"), id),
		})
	}
}

func (a *Admin) pk(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("pk"), 10, 64)
	if err != nil || id <= 0 {
		web.Abort(c, a.log, storage.ErrNotFound)
		return 0, false
	}
	return id, true
}

// bind decodes the POST body into a fresh form, so unchecked boxes read as
// false. It reports false after answering 400.
func (a *Admin) bind(c *gin.Context, form any) bool {
	if err := c.Request.ParseForm(); err == nil {
		if err = forms.Bind(c.Request.PostForm, form); err == nil {
			return true
		}
	}
	web.Render(c, http.StatusBadRequest, "error.html", gin.H{
		"status": http.StatusBadRequest,
		"title":  http.StatusText(http.StatusBadRequest),
	})
	c.Abort()
	return false
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
