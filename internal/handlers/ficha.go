package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/services"
)

type FichaHandler struct {
	svc services.FichaService
}

func NewFichaHandler(svc services.FichaService) *FichaHandler {
	return &FichaHandler{svc: svc}
}

// POST /api/fichas
func (h *FichaHandler) Create(c *gin.Context) {
	var in domain.FichaCatastral
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidation(c, "cuerpo JSON inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	ficha, err := h.svc.Create(dbc, &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, ficha)
}

// GET /api/fichas/:id
func (h *FichaHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondValidation(c, "id inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	ficha, err := h.svc.GetByID(dbc, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, ficha)
}

// GET /api/fichas/codigo-completo?lote=&unidad=&piso=
func (h *FichaHandler) GetByCodigoCompleto(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	ficha, err := h.svc.GetByCodigoCompleto(dbc,
		c.Query("lote"), c.Query("unidad"), c.Query("piso"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, ficha)
}

// GET /api/fichas/lote/:codigo
func (h *FichaHandler) GetByCodigoLote(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fichas, err := h.svc.GetByCodigoLote(dbc, c.Param("codigo"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fichas": fichas})
}

// GET /api/fichas/titular/:documento — fichas owned by the document holder
func (h *FichaHandler) GetByNumeroDocumento(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fichas, err := h.svc.GetByNumeroDocumento(dbc, c.Param("documento"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fichas": fichas})
}

// GET /api/fichas/sector/:sector
func (h *FichaHandler) GetBySector(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fichas, err := h.svc.GetBySector(dbc, c.Param("sector"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fichas": fichas})
}

// GET /api/fichas/sector/:sector/manzana/:manzana
func (h *FichaHandler) GetByManzana(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fichas, err := h.svc.GetByManzana(dbc, c.Param("sector"), c.Param("manzana"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fichas": fichas})
}

// GET /api/fichas/tipo-predio/:tipo
func (h *FichaHandler) GetByTipoPredio(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fichas, err := h.svc.GetByTipoPredio(dbc, c.Param("tipo"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fichas": fichas})
}

// GET /api/fichas/uso-predio/:uso
func (h *FichaHandler) GetByUsoPredio(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fichas, err := h.svc.GetByUsoPredio(dbc, c.Param("uso"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fichas": fichas})
}

// GET /api/fichas/clasificacion/:clasificacion
func (h *FichaHandler) GetByClasificacion(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fichas, err := h.svc.GetByClasificacion(dbc, c.Param("clasificacion"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fichas": fichas})
}

// GET /api/fichas/fecha-levantamiento?inicio=2024-01-01&fin=2024-12-31
func (h *FichaHandler) GetByFechaLevantamiento(c *gin.Context) {
	inicio, err := time.Parse("2006-01-02", c.Query("inicio"))
	if err != nil {
		RespondValidation(c, "inicio inválido, se espera AAAA-MM-DD")
		return
	}
	fin, err := time.Parse("2006-01-02", c.Query("fin"))
	if err != nil {
		RespondValidation(c, "fin inválido, se espera AAAA-MM-DD")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fichas, err := h.svc.GetByFechaLevantamiento(dbc, inicio, fin)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fichas": fichas})
}

// GET /api/fichas/area-terreno?min=&max=
func (h *FichaHandler) GetByAreaTerreno(c *gin.Context) {
	minArea, maxArea, ok := parseAreaRange(c)
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fichas, err := h.svc.GetByAreaTerreno(dbc, minArea, maxArea)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fichas": fichas})
}

// GET /api/fichas/area-construccion?min=&max=
func (h *FichaHandler) GetByAreaConstruccion(c *gin.Context) {
	minArea, maxArea, ok := parseAreaRange(c)
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fichas, err := h.svc.GetByAreaConstruccion(dbc, minArea, maxArea)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fichas": fichas})
}

// GET /api/fichas?page=0&size=20
func (h *FichaHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	fichas, err := h.svc.List(dbc, page, size)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"fichas": fichas, "page": page, "size": size})
}

// PUT /api/fichas/:id
func (h *FichaHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondValidation(c, "id inválido")
		return
	}
	var in domain.FichaCatastral
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidation(c, "cuerpo JSON inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	ficha, err := h.svc.Update(dbc, id, &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, ficha)
}

// DELETE /api/fichas/:id
func (h *FichaHandler) Delete(c *gin.Context) {
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

// GET /api/fichas/lote/:codigo/count
func (h *FichaHandler) CountByCodigoLote(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	count, err := h.svc.CountByCodigoLote(dbc, c.Param("codigo"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}

// GET /api/fichas/sector/:sector/count
func (h *FichaHandler) CountBySector(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	count, err := h.svc.CountBySector(dbc, c.Param("sector"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}

// GET /api/fichas/tipo-predio/:tipo/count
func (h *FichaHandler) CountByTipoPredio(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	count, err := h.svc.CountByTipoPredio(dbc, c.Param("tipo"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}

func parseAreaRange(c *gin.Context) (minArea, maxArea float64, ok bool) {
	var err error
	minArea, err = strconv.ParseFloat(c.DefaultQuery("min", "0"), 64)
	if err != nil {
		RespondValidation(c, "min inválido")
		return 0, 0, false
	}
	maxArea, err = strconv.ParseFloat(c.Query("max"), 64)
	if err != nil {
		RespondValidation(c, "max inválido")
		return 0, 0, false
	}
	return minArea, maxArea, true
}
