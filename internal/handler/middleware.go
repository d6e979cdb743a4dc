package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pilgrimage/internal/metrics"
	"pilgrimage/internal/model"
	"pilgrimage/internal/service"
)

const (
	ctxUserID = "user_id"
	ctxRoles  = "roles"
)

// Identity читает UUID пользователя из заголовка прокси аутентификации.
// Заголовок необязателен; некорректное значение отклоняется с 401.
func (h *Handler) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(h.userHeader)
		if raw == "" {
			c.Next()
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{"invalid " + h.userHeader + " header"})
			return
		}
		c.Set(ctxUserID, id.String())
		c.Next()
	}
}

// RequireUser пропускает только запросы с установленной личностью.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{"sign in required"})
			return
		}
		c.Next()
	}
}

// RequireRole пропускает пользователей с ролью role.
func (h *Handler) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, err := h.roles(c)
		if err != nil {
			h.fail(c, err)
			return
		}
		if !service.HasRole(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{"requires " + string(role) + " role"})
			return
		}
		c.Next()
	}
}

// roles загружает роли пользователя один раз за запрос.
func (h *Handler) roles(c *gin.Context) ([]model.Role, error) {
	if v, ok := c.Get(ctxRoles); ok {
		return v.([]model.Role), nil
	}
	roles, err := h.Auth.Roles(c.Request.Context(), userID(c))
	if err != nil {
		return nil, err
	}
	c.Set(ctxRoles, roles)
	return roles, nil
}

func userID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// Metrics измеряет длительность запросов по шаблону маршрута.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
