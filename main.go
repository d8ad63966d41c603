package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"github.com/ckp1990/population-ecology-games/internal/config"
	"github.com/ckp1990/population-ecology-games/internal/handlers"
	"github.com/ckp1990/population-ecology-games/internal/services"
)

func main() {
	pb := pocketbase.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	hub := services.NewHub(cfg)
	go hub.Run()

	pb.OnServe().BindFunc(func(se *core.ServeEvent) error {
		ws := handlers.NewWSHandler(hub)
		se.Router.GET("/ws", ws.HandleRequest)

		se.Router.GET("/api/metrics", handlers.HandleMetrics(hub))
		se.Router.GET("/api/health", handlers.HandleHealth(hub))
		se.Router.GET("/api/survey.csv", handlers.HandleSurveyCSV(hub))

		se.Router.GET("/{path...}", apis.Static(os.DirFS("web/public"), true))

		return se.Next()
	})

	// Default to serving when invoked with no subcommand, on the
	// configured address.
	if len(os.Args) < 2 {
		pb.RootCmd.SetArgs([]string{"serve", "--http=" + cfg.HTTPAddr})
	}

	if err := pb.Start(); err != nil {
		log.Fatal(err)
	}
}
