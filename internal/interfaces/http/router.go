package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/catalog-admin/internal/application/admin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias del router.
type RouterDeps struct {
	Site          *admin.Site
	JWTSecret     string
	JWTIssuer     string
	Gatherer      prometheus.Gatherer // nil = sin /metrics
	Log           zerolog.Logger
	CharsetReader CharsetReader
}

// Router registra las rutas del panel bajo /admin.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	h := NewAdminHandler(deps.Site, deps.CharsetReader, deps.Log)
	read := RequireRole(RoleSuperuser, RoleStaff, RoleViewer)
	write := RequireRole(RoleSuperuser, RoleStaff)

	g := app.Group("/admin", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	g.Get("/", read, h.Index)
	g.Get("/:model/", read, h.ChangeList)
	g.Patch("/:model/", write, h.SaveListEdits)
	g.Post("/:model/actions", write, h.RunAction)
	g.Get("/:model/export", read, h.Export)
	g.Post("/:model/import", write, h.Import)
	g.Get("/:model/add", read, h.AddForm)
	g.Post("/:model/add", write, h.Create)
	g.Get("/:model/:id/change", read, h.ChangeForm)
	g.Post("/:model/:id/change", write, h.Update)
	g.Delete("/:model/:id", write, h.Delete)
	g.Post("/:model/:id/upload/:field", write, h.Upload)
}
