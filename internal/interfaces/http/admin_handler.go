package http

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalog-admin/internal/application/admin"
	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/rs/zerolog"
)

// CharsetReader decodifica un archivo de importación a UTF-8.
type CharsetReader func(r io.Reader, charset string) (io.Reader, error)

// AdminHandler expone el sitio de administración.
type AdminHandler struct {
	site    *admin.Site
	charset CharsetReader
	log     zerolog.Logger
}

// NewAdminHandler crea el handler. charset nil = solo UTF-8.
func NewAdminHandler(site *admin.Site, charset CharsetReader, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{site: site, charset: charset, log: log}
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// Index lista los modelos registrados.
// @Summary      Portada del panel
// @Tags         Admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IndexResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /admin/ [get]
func (h *AdminHandler) Index(c *fiber.Ctx) error {
	return c.JSON(h.site.Index())
}

// ChangeList devuelve la lista paginada, filtrada y ordenada de un modelo.
// Parámetros reservados: page, all, q, o. El resto de la query string son filtros (name=..., create_date__gte=...).
// @Summary      Lista de cambios
// @Tags         Admin
// @Security     Bearer
// @Produce      json
// @Param        model  path   string  true   "Modelo (category, product, review)"
// @Param        page   query  int     false  "Página (desde 1)"
// @Param        all    query  string  false  "Mostrar todos"
// @Param        q      query  string  false  "Búsqueda"
// @Param        o      query  string  false  "Orden, separado por comas (name,-id)"
// @Success      200  {object}  dto.ChangeListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/{model}/ [get]
func (h *AdminHandler) ChangeList(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_QUERY", err.Error())
	}
	req.DefaultPage()
	raw := make(map[string][]string)
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		raw[string(k)] = append(raw[string(k)], string(v))
	})
	res, err := h.site.ChangeList(c.Context(), c.Params("model"), req, admin.FilterParams(raw))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// SaveListEdits guarda las columnas editables de la lista; el lote es todo o nada.
// @Summary      Guardar ediciones de la lista
// @Tags         Admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        model  path  string               true  "Modelo"
// @Param        body   body  dto.ListEditRequest  true  "Filas editadas por id"
// @Success      200  {object}  dto.ListEditResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /admin/{model}/ [patch]
func (h *AdminHandler) SaveListEdits(c *fiber.Ctx) error {
	var req dto.ListEditRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	edits := make(map[int64]map[string]any, len(req.Rows))
	for k, vals := range req.Rows {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return badRequest(c, "INVALID_BODY", fmt.Sprintf("id inválido: %q", k))
		}
		edits[id] = vals
	}
	n, err := h.site.SaveListEdits(c.Context(), c.Params("model"), edits)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListEditResponse{Updated: n, Message: fmt.Sprintf("%d registro(s) modificados.", n)})
}

// RunAction ejecuta una acción masiva sobre los ids seleccionados.
// @Summary      Ejecutar acción
// @Tags         Admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        model  path  string             true  "Modelo"
// @Param        body   body  dto.ActionRequest  true  "Acción e ids"
// @Success      200  {object}  dto.ActionResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /admin/{model}/actions [post]
func (h *AdminHandler) RunAction(c *fiber.Ctx) error {
	var req dto.ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	res, err := h.site.RunAction(c.Context(), c.Params("model"), req.Action, req.IDs)
	if err != nil {
		return writeError(c, err)
	}
	h.log.Info().Str("model", c.Params("model")).Str("action", req.Action).Str("user", GetUsername(c)).Int("changed", res.Changed).Msg("acción ejecutada")
	return c.JSON(res)
}

// Export descarga todos los registros del modelo en el formato pedido.
// @Summary      Exportar
// @Tags         Admin
// @Security     Bearer
// @Produce      octet-stream
// @Param        model   path   string  true  "Modelo"
// @Param        format  query  string  true  "csv, json, yaml, xml o pdf"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /admin/{model}/export [get]
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	file, err := h.site.Export(c.Context(), c.Params("model"), c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}

// Import crea o actualiza registros desde un archivo (multipart "file" o el cuerpo crudo).
// @Summary      Importar
// @Tags         Admin
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        model     path      string  true   "Modelo"
// @Param        format    query     string  true   "csv, json, yaml o xml"
// @Param        dry_run   query     bool    false  "Validar sin guardar"
// @Param        encoding  query     string  false  "utf-8, latin-1 o windows-1252"
// @Param        file      formData  file    false  "Archivo"
// @Success      200  {object}  dto.ImportReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /admin/{model}/import [post]
func (h *AdminHandler) Import(c *fiber.Ctx) error {
	var r io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "INVALID_FILE", err.Error())
		}
		defer f.Close()
		r = f
	} else {
		r = bytes.NewReader(c.Body())
	}
	if enc := c.Query("encoding"); enc != "" {
		if h.charset == nil {
			return badRequest(c, "INVALID_ENCODING", "solo se admite utf-8")
		}
		decoded, err := h.charset(r, enc)
		if err != nil {
			return badRequest(c, "INVALID_ENCODING", err.Error())
		}
		r = decoded
	}
	rep, err := h.site.Import(c.Context(), c.Params("model"), c.Query("format"), r, c.QueryBool("dry_run"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rep)
}

// AddForm devuelve el formulario vacío de alta.
// @Summary      Formulario de alta
// @Tags         Admin
// @Security     Bearer
// @Produce      json
// @Param        model  path  string  true  "Modelo"
// @Success      200  {object}  dto.FormResponse
// @Router       /admin/{model}/add [get]
func (h *AdminHandler) AddForm(c *fiber.Ctx) error {
	res, err := h.site.Form(c.Context(), c.Params("model"), nil)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Create guarda un registro nuevo con sus inlines.
// @Summary      Crear registro
// @Tags         Admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        model  path  string              true  "Modelo"
// @Param        body   body  dto.FormSubmission  true  "Valores e inlines"
// @Success      201  {object}  dto.RecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /admin/{model}/add [post]
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var sub dto.FormSubmission
	if err := c.BodyParser(&sub); err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	res, err := h.site.Save(c.Context(), c.Params("model"), nil, sub)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// ChangeForm devuelve el formulario de edición.
// @Summary      Formulario de edición
// @Tags         Admin
// @Security     Bearer
// @Produce      json
// @Param        model  path  string  true  "Modelo"
// @Param        id     path  int     true  "ID"
// @Success      200  {object}  dto.FormResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/{model}/{id}/change [get]
func (h *AdminHandler) ChangeForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	res, err := h.site.Form(c.Context(), c.Params("model"), &id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Update guarda los cambios de un registro existente.
// @Summary      Actualizar registro
// @Tags         Admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        model  path  string              true  "Modelo"
// @Param        id     path  int                 true  "ID"
// @Param        body   body  dto.FormSubmission  true  "Valores e inlines"
// @Success      200  {object}  dto.RecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/{model}/{id}/change [post]
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var sub dto.FormSubmission
	if err := c.BodyParser(&sub); err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	res, err := h.site.Save(c.Context(), c.Params("model"), &id, sub)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Delete elimina un registro (en cascada).
// @Summary      Eliminar registro
// @Tags         Admin
// @Security     Bearer
// @Param        model  path  string  true  "Modelo"
// @Param        id     path  int     true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /admin/{model}/{id} [delete]
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.site.Delete(c.Context(), c.Params("model"), id); err != nil {
		return writeError(c, err)
	}
	h.log.Info().Str("model", c.Params("model")).Int64("id", id).Str("user", GetUsername(c)).Msg("registro eliminado")
	return c.SendStatus(fiber.StatusNoContent)
}

// Upload sube una imagen y la asigna al campo indicado.
// @Summary      Subir imagen
// @Tags         Admin
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        model  path      string  true  "Modelo"
// @Param        id     path      int     true  "ID"
// @Param        field  path      string  true  "Campo de imagen"
// @Param        file   formData  file    true  "Imagen"
// @Success      200  {object}  dto.RecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /admin/{model}/{id}/upload/{field} [post]
func (h *AdminHandler) Upload(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "archivo requerido en el campo 'file'")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", err.Error())
	}
	defer f.Close()
	res, err := h.site.UploadImage(c.Context(), c.Params("model"), id, c.Params("field"), fh.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
