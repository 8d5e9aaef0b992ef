package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Faisalali0159/besofy/internal/middleware"
)

// RegisterNewsRoutes mounts the news API. Reads are public with an admin
// view for authenticated administrators; mutations require an admin token.
func RegisterNewsRoutes(r gin.IRouter, h *NewsHandler, auth *middleware.Auth) {
	news := r.Group("/api/news")
	{
		news.GET("", auth.OptionalAdmin(), h.List)
		news.GET("/:id", auth.OptionalAdmin(), h.Get)
		news.POST("", auth.RequireAdmin(), h.Create)
		news.PATCH("/:id", auth.RequireAdmin(), h.Update)
		news.DELETE("/:id", auth.RequireAdmin(), h.Delete)
	}
}
