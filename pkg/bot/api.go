package bot

import (
	"context"
	"fmt"
	"net/http"

	"servicebot/pkg/logger"
	"servicebot/storage"

	"github.com/gin-gonic/gin"
)

// RunServer exposes a small read-only status API next to the bot.
func RunServer(port int, stg storage.IStorage, log logger.ILogger) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/appointments/active", func(c *gin.Context) {
			appointments, err := stg.Appointment().GetApproved(context.Background())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, appointments)
		})

		api.GET("/specialists", func(c *gin.Context) {
			specialists, err := stg.Specialist().GetAll(context.Background())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, specialists)
		})
	}

	addr := fmt.Sprintf(":%d", port)
	log.Info("HTTP status API listening", logger.String("addr", addr))
	return r.Run(addr)
}
