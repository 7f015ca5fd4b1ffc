package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/sw385/Semester-Schedule/internal/logger"
	"github.com/sw385/Semester-Schedule/internal/scheduler"
)

func main() {
	var addr, configPath string

	cmd := &cobra.Command{
		Use:          "semester-schedule-server",
		Short:        "Serve schedule searches over HTTP",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := scheduler.NewDefaultConfiguration
			if configPath != "" {
				cfg, err := scheduler.LoadConfiguration(configPath)
				if err != nil {
					return err
				}
				logger.Configure(logger.Config{Level: logger.ParseLevel(cfg.LogLevel), Pretty: cfg.LogFormat != "json"})
				defaults = func() *scheduler.Configuration {
					copied := *cfg
					return &copied
				}
			}

			r := newRouter(&server{store: newJobStore(), defaults: defaults})
			logger.Info().Str("addr", addr).Msg("Listening")
			return r.Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3001", "listen address")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration with the search defaults")

	if err := cmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Server stopped")
		os.Exit(1)
	}
}

func newRouter(s *server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/schedules", s.handleGetSchedules)
	r.GET("/schedules/:id", s.handleGetScheduleWithId)
	r.GET("/schedules/:id/export/:label", s.handleExportSchedule)
	r.POST("/schedules", s.handlePostSchedule)
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("Request handled")
	}
}
