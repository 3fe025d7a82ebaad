package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/befuji/studio-backend/internal/dto"
	"github.com/befuji/studio-backend/internal/http/handlers/common"
	"github.com/befuji/studio-backend/internal/models"
	"github.com/befuji/studio-backend/internal/service"
)

type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// ListProjects GET /projects и GET /admin/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projects.ListProjects(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.NoStore(c)
	c.JSON(http.StatusOK, projects)
}

// CreateProject POST /admin/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req models.Project
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "тело запроса не распарсилось")
		return
	}

	if req.Video == "" && req.ID == "" {
		common.RespondBadRequest(c, "нужен ключ видео или id проекта")
		return
	}

	created, err := h.projects.CreateProject(c.Request.Context(), req)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, created)
}

// UpdateProject PUT /admin/projects
// Тело - либо перестановка {order: [...]}, либо патч {id, ...поля}.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req dto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "тело запроса не распарсилось")
		return
	}

	if req.IsReorder() {
		ordered, err := h.projects.ReorderProjects(c.Request.Context(), req.Order)
		if err != nil {
			common.RespondAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, ordered)
		return
	}

	if req.ID == "" {
		common.RespondBadRequest(c, "id обязателен")
		return
	}

	updated, err := h.projects.PatchProject(c.Request.Context(), req.ID, req.Fields)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProject DELETE /admin/projects
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	var req dto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "id обязателен")
		return
	}

	if err := h.projects.DeleteProject(c.Request.Context(), req.ID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}
