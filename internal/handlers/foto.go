package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/services"
)

type FotoHandler struct {
	svc services.FotoService
}

func NewFotoHandler(svc services.FotoService) *FotoHandler {
	return &FotoHandler{svc: svc}
}

// POST /api/fotos
//
// Two payload shapes: multipart/form-data with an "archivo" file plus the
// metadata fields, or application/json whose "url" is either an external
// http(s) reference or the image content base64-encoded.
func (h *FotoHandler) Create(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var in domain.Foto
		if err := c.ShouldBindJSON(&in); err != nil {
			RespondValidation(c, "cuerpo JSON inválido")
			return
		}
		foto, err := h.svc.Create(dbc, &in, nil)
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondCreated(c, foto)
		return
	}

	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		RespondValidation(c, "se requiere el archivo \"archivo\"")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondValidation(c, "no se pudo leer el archivo")
		return
	}
	defer file.Close()

	nombre := c.PostForm("nombre")
	if nombre == "" {
		nombre = fileHeader.Filename
	}
	size := fileHeader.Size
	in := domain.Foto{
		CodigoLote:   c.PostForm("codigo_lote"),
		Nombre:       nombre,
		TipoTerreno:  c.PostForm("tipo_terreno"),
		TipoFoto:     c.PostForm("tipo_foto"),
		ContentType:  fileHeader.Header.Get("Content-Type"),
		TamanioBytes: &size,
	}
	foto, err := h.svc.Create(dbc, &in, file)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, foto)
}

// GET /api/fotos/:id
func (h *FotoHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondValidation(c, "id inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	foto, err := h.svc.GetByID(dbc, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, foto)
}

// GET /api/fotos/lote/:codigo
func (h *FotoHandler) GetByCodigoLote(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fotos, err := h.svc.GetByCodigoLote(dbc, c.Param("codigo"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fotos": fotos})
}

// GET /api/fotos/lote-id/:id
func (h *FotoHandler) GetByLoteID(c *gin.Context) {
	loteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondValidation(c, "id inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fotos, err := h.svc.GetByLoteID(dbc, loteID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fotos": fotos})
}

// GET /api/fotos/tipo/:tipo
func (h *FotoHandler) GetByTipoFoto(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fotos, err := h.svc.GetByTipoFoto(dbc, c.Param("tipo"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fotos": fotos})
}

// DELETE /api/fotos/:id
func (h *FotoHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondValidation(c, "id inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	deleted, err := h.svc.Delete(dbc, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if !deleted {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
