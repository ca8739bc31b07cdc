package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/talkincode/toughmall/config"
	"github.com/talkincode/toughmall/internal/adminapi"
	"github.com/talkincode/toughmall/internal/app"
	"github.com/talkincode/toughmall/internal/checkout"
	"github.com/talkincode/toughmall/internal/imagehost"
	"github.com/talkincode/toughmall/internal/shopapi"
	"github.com/talkincode/toughmall/internal/suggest"
	"github.com/talkincode/toughmall/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, exit")
)

var version = "latest"

func printVersion() {
	fmt.Fprintf(os.Stdout, "toughmall %s\n", version)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		printVersion()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	checkoutSvc := checkout.NewService(checkout.NewGormRepository(application.DB()), application.Bus())
	imageClient := imagehost.NewClient(cfg.ImageHost)
	suggestClient := suggest.NewClient(cfg.Suggest)

	ws := webserver.New(cfg, application.DB())
	shopapi.New(cfg, checkoutSvc, suggestClient).Register(ws)
	adminapi.New(cfg, application.Settings(), checkoutSvc, imageClient).Register(ws)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.StartBackgroundJobs(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ws.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		zap.L().Info("shutdown signal received")
		return ws.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	zap.L().Info("server stopped")
}
