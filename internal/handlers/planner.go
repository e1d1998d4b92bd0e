package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-planner/internal/config"
	"github.com/windoze95/saltybytes-planner/internal/logger"
	"github.com/windoze95/saltybytes-planner/internal/middleware"
	"github.com/windoze95/saltybytes-planner/internal/util"
	"github.com/windoze95/saltybytes-planner/internal/ws"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PlannerHandler serves the planner page and the session downloads.
type PlannerHandler struct {
	Cfg      *config.Config
	Registry *ws.Registry
}

// NewPlannerHandler is the constructor function for initializing a new PlannerHandler.
func NewPlannerHandler(cfg *config.Config, registry *ws.Registry) *PlannerHandler {
	return &PlannerHandler{
		Cfg:      cfg,
		Registry: registry,
	}
}

// ShowPlanner handles GET /. Every page load starts a new session restored from the
// client's persisted planner; the page connects to it with the embedded token.
func (h *PlannerHandler) ShowPlanner(c *gin.Context) {
	clientID, err := util.GetClientIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	session, err := h.Registry.Create(clientID)
	if err != nil {
		logger.FromContext(c).Error("failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore the planner"})
		return
	}

	token, err := middleware.IssueSessionToken(h.Cfg.EnvVars.JwtSecretKey, session.ID, clientID, middleware.SessionTokenTTL)
	if err != nil {
		session.Close()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign session token"})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"SessionID":   session.ID,
		"Token":       token,
		"Shell":       session.Shell(),
		"Messages":    h.Cfg.Messages,
		"ImageUpload": h.Cfg.ImageUploadEnabled(),
	})
}

// ExportWorkbook handles GET /v1/sessions/:session_id/export.xlsx.
func (h *PlannerHandler) ExportWorkbook(c *gin.Context) {
	session, ok := sessionForClient(c, h.Registry)
	if !ok {
		return
	}

	data, err := session.ExportWorkbook()
	if err != nil {
		logger.FromContext(c).Error("failed to export workbook", zap.String("session_id", session.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export the planner"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="weekly-plan.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
