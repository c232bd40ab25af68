package main

import (
	"context"
	"time"

	"github.com/shopsmart/substitution/config"
	"github.com/shopsmart/substitution/internal/app"
	"github.com/shopsmart/substitution/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	substService := app.New(sigCtx, cfg)

	substService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	substService.Close(ctx)
}
