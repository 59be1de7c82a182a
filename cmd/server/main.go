package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"gls-plugin/config"
	"gls-plugin/database"
	httpapi "gls-plugin/protocol/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg := config.LoadConfig()
	log.Println("active GLS account =", cfg.ActiveAccount)

	store, err := database.NewStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	app := httpapi.NewApp(cfg, store)
	mux := http.NewServeMux()
	app.RegisterRoutes(mux)

	log.Printf("server running on :%s\n", cfg.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Port, mux))
}
