package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/docsession/internal/devstore"
)

func main() {

	cfg, err := devstore.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := devstore.NewApp(cfg).Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
