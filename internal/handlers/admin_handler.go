package handlers

import (
	"net/http"
	"strconv"
	"time"

	"match-typer/internal/auth"
	"match-typer/internal/models"
	"match-typer/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// AdminMiddleware rejects requests whose user lacks the admin capability
func (h *AdminHandler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		if !h.adminService.IsAdmin(userID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUsers lists users for the admin panel
// GET /api/admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	limit, offset := parsePagination(c)
	search := c.Query("search")

	users, total, err := h.adminService.GetAllUsers(limit, offset, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}

// PromoteUser grants the admin capability
// POST /api/admin/users/promote
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	adminID, _ := auth.GetUserID(c)

	var req models.PromoteAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminUser, err := h.adminService.PromoteUser(req.UserID, req.Role, adminID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, adminUser)
}

// DemoteUser revokes the admin capability
// DELETE /api/admin/users/:id/admin
func (h *AdminHandler) DemoteUser(c *gin.Context) {
	adminID, _ := auth.GetUserID(c)
	userID := c.Param("id")

	if err := h.adminService.DemoteAdmin(userID, adminID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "admin demoted"})
}

// GetAdminLogs returns the audit trail
// GET /api/admin/logs
func (h *AdminHandler) GetAdminLogs(c *gin.Context) {
	limit, offset := parsePagination(c)

	logs, err := h.adminService.GetAdminLogs(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// GetPlatformStats returns today's platform statistics
// GET /api/admin/stats
func (h *AdminHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.adminService.GetPlatformStats(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func parsePagination(c *gin.Context) (int, int) {
	limit := 20
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}
