package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/cablehouse-backend/internal/app"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
)

// snapshot writes one backup of blueprints and orders, or lists existing ones.
func main() {
	var list bool
	var timeout time.Duration
	flag.BoolVar(&list, "list", false, "list stored backups instead of writing one")
	flag.DurationVar(&timeout, "timeout", time.Minute, "overall deadline")
	flag.Parse()

	log, err := logger.New("production")
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := app.LoadConfig(log)
	if err != nil {
		fmt.Printf("load config: %v\n", err)
		os.Exit(1)
	}
	// One-off runs never need cross-instance fan-out or an admin bootstrap.
	cfg.Redis.Addr = ""
	cfg.AdminUsername, cfg.AdminPassword = "", ""
	cfg.MetricsEnabled = false

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	application, err := app.New(ctx, log, cfg)
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if list {
		infos, err := application.Services.Backup.List(ctx)
		if err != nil {
			fmt.Printf("list backups: %v\n", err)
			os.Exit(1)
		}
		for _, info := range infos {
			fmt.Printf("%s\t%d\t%s\n", info.Key, info.Size, info.LastModified.Format(time.RFC3339))
		}
		return
	}

	info, err := application.Services.Backup.Snapshot(ctx)
	if err != nil {
		fmt.Printf("snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d bytes)\n", info.Key, info.Size)
}
