package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AgendaEstetica/salon-agenda/internal/config"
	dbpkg "github.com/AgendaEstetica/salon-agenda/internal/db"
	"github.com/AgendaEstetica/salon-agenda/internal/middleware"
	"github.com/AgendaEstetica/salon-agenda/internal/reminder"
	"github.com/AgendaEstetica/salon-agenda/internal/routes"
	"github.com/AgendaEstetica/salon-agenda/internal/timezone"
)

func main() {

	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	db := dbpkg.NewDB(cfg)

	loc := timezone.Location(cfg.Timezone)

	reminders := reminder.New(db, log, loc)
	if err := reminders.Start(); err != nil {
		log.WithError(err).Fatal("failed to start reminder scheduler")
	}
	defer reminders.Stop()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.WithField("addr", cfg.Addr()).Info("server starting")
	if err := r.Run(cfg.Addr()); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
