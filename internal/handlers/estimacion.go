package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/municatastro/catastro-backend/internal/domain"
	"github.com/municatastro/catastro-backend/internal/pkg/dbctx"
	"github.com/municatastro/catastro-backend/internal/services"
)

type EstimacionHandler struct {
	svc services.EstimacionService
}

func NewEstimacionHandler(svc services.EstimacionService) *EstimacionHandler {
	return &EstimacionHandler{svc: svc}
}

// POST /api/estimaciones
func (h *EstimacionHandler) Create(c *gin.Context) {
	var in domain.Estimacion
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidation(c, "cuerpo JSON inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	est, err := h.svc.Create(dbc, &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, est)
}

// GET /api/estimaciones/:id
func (h *EstimacionHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondValidation(c, "id inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	est, err := h.svc.GetByID(dbc, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, est)
}

// GET /api/estimaciones/lote/:codigo — latest survey for the lot
func (h *EstimacionHandler) GetByCodigoLote(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	est, err := h.svc.GetByCodigoLote(dbc, c.Param("codigo"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, est)
}

// GET /api/estimaciones/lote-id/:id — full history for the lot
func (h *EstimacionHandler) GetByLoteID(c *gin.Context) {
	loteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondValidation(c, "id inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	ests, err := h.svc.GetByLoteID(dbc, loteID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"estimaciones": ests})
}

// GET /api/estimaciones/tipo-terreno/:tipo
func (h *EstimacionHandler) GetByTipoTerreno(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	ests, err := h.svc.GetByTipoTerreno(dbc, c.Param("tipo"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"estimaciones": ests})
}

// PUT /api/estimaciones/:id
func (h *EstimacionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondValidation(c, "id inválido")
		return
	}
	var in domain.Estimacion
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidation(c, "cuerpo JSON inválido")
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	est, err := h.svc.Update(dbc, id, &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, est)
}

// DELETE /api/estimaciones/:id
func (h *EstimacionHandler) Delete(c *gin.Context) {
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

// DELETE /api/estimaciones/lote/:codigo
func (h *EstimacionHandler) DeleteByLote(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	if err := h.svc.DeleteByLote(dbc, c.Param("codigo")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/estimaciones/tipo-terreno/:tipo/count
func (h *EstimacionHandler) CountByTipoTerreno(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	count, err := h.svc.CountByTipoTerreno(dbc, c.Param("tipo"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"count": count})
}
