package main

import (
	"github.com/gin-gonic/gin"

	"bookman-backend/internal/shared/middleware"
	"bookman-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())

	router.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(503, gin.H{"status": "unhealthy"})
			return
		}
		ctx.JSON(200, gin.H{"status": "healthy"})
	})

	books := router.Group("/books")
	{
		books.POST("", c.BookHandler.Create)
		books.GET("", c.BookHandler.List)
		books.GET("/search", c.BookHandler.Search)
		books.GET("/:id", c.BookHandler.Get)
		books.PATCH("/:id", c.BookHandler.Patch)
		books.DELETE("/:id", c.BookHandler.Delete)
	}

	persons := router.Group("/persons")
	{
		persons.POST("", c.PersonHandler.Create)
		persons.GET("", c.PersonHandler.List)
		persons.GET("/search", c.PersonHandler.Search)
		persons.GET("/:id", c.PersonHandler.Get)
		persons.PATCH("/:id", c.PersonHandler.Patch)
		persons.DELETE("/:id", c.PersonHandler.Delete)
	}

	return router
}
