package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/services"
)

type LoteHandler struct {
	svc services.LoteService
}

func NewLoteHandler(svc services.LoteService) *LoteHandler {
	return &LoteHandler{svc: svc}
}

// POST /api/lotes
func (h *LoteHandler) Create(c *gin.Context) {
	var in domain.Lote
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidation(c, "cuerpo JSON inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	lote, err := h.svc.Create(dbc, &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, lote)
}

// GET /api/lotes/:id
func (h *LoteHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondValidation(c, "id inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	lote, err := h.svc.GetByID(dbc, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, lote)
}

// GET /api/lotes/codigo/:codigo
func (h *LoteHandler) GetByCodigo(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	lote, err := h.svc.GetByCodigo(dbc, c.Param("codigo"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, lote)
}

// GET /api/lotes/sector/:sector
func (h *LoteHandler) GetBySector(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	lotes, err := h.svc.GetBySector(dbc, c.Param("sector"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"lotes": lotes})
}

// GET /api/lotes/sector/:sector/manzana/:manzana
func (h *LoteHandler) GetByManzana(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	lotes, err := h.svc.GetByManzana(dbc, c.Param("sector"), c.Param("manzana"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"lotes": lotes})
}

// GET /api/lotes?page=0&size=20
func (h *LoteHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	lotes, err := h.svc.List(dbc, page, size)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"lotes": lotes, "page": page, "size": size})
}

// PUT /api/lotes/:id
func (h *LoteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondValidation(c, "id inválido")
		return
	}
	var in domain.Lote
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidation(c, "cuerpo JSON inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	lote, err := h.svc.Update(dbc, id, &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, lote)
}

// DELETE /api/lotes/:id
func (h *LoteHandler) Delete(c *gin.Context) {
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

// GET /api/lotes/sector/:sector/count
func (h *LoteHandler) CountBySector(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	count, err := h.svc.CountBySector(dbc, c.Param("sector"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}

// GET /api/lotes/sector/:sector/manzana/:manzana/count
func (h *LoteHandler) CountByManzana(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	count, err := h.svc.CountByManzana(dbc, c.Param("sector"), c.Param("manzana"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}
