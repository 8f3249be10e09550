package admin

import (
	"strconv"

	"github.com/skillchain/skillchain-api/internal/http/response"
	"github.com/skillchain/skillchain-api/internal/logger"
	"github.com/skillchain/skillchain-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetStats 管理员总览统计
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.StatsService.GetAdminStats()
	if err != nil {
		logger.Errorw("admin_stats_failed", "error", err)
		response.Error(c, response.CodeServiceUnavailable, "Statistics temporarily unavailable")
		return
	}
	response.Success(c, stats)
}

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize > 100 {
		pageSize = 100
	}

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Keyword:  c.Query("keyword"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		logger.Errorw("admin_list_users_failed", "error", err)
		response.Error(c, response.CodeInternal, "Failed to list users")
		return
	}

	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	response.SuccessWithPage(c, users, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}
