package main

import (
	"context"
	"log"

	"github.com/kpetrova/oracle/internal/cli"
	"github.com/kpetrova/oracle/internal/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(context.Background())

}
