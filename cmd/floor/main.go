package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cablehouse-backend/internal/client"
	"github.com/yungbote/cablehouse-backend/internal/client/guard"
	"github.com/yungbote/cablehouse-backend/internal/client/notify"
	"github.com/yungbote/cablehouse-backend/internal/client/views"
	"github.com/yungbote/cablehouse-backend/internal/domain"
	"github.com/yungbote/cablehouse-backend/internal/platform/envutil"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
)

// floor is the terminal client for the production floor.
//
//	floor [flags] queue|start|finish|watch|catalog|order <blueprint-id>
func main() {
	var baseURL, username, selectKey string
	var timeout time.Duration
	flag.StringVar(&baseURL, "url", envutil.String("CABLEHOUSE_URL", "http://localhost:8080"), "service base URL")
	flag.StringVar(&username, "user", envutil.String("CABLEHOUSE_USER", ""), "username (password from CABLEHOUSE_PASSWORD)")
	flag.StringVar(&selectKey, "order", "", "order id or reference to act on")
	flag.DurationVar(&timeout, "timeout", client.DefaultTimeout, "per-request timeout")
	flag.Parse()

	log, err := logger.New(envutil.String("LOG_MODE", "production"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(log, client.Config{BaseURL: baseURL, Timeout: timeout})
	var session *client.Session
	if username != "" {
		session, err = c.Login(ctx, username, os.Getenv("CABLEHOUSE_PASSWORD"))
		if err != nil {
			fmt.Printf("login: %v\n", err)
			os.Exit(1)
		}
		defer session.Logout()
	}

	bus := notify.NewBus(log, c.Origin())
	orders := client.NewOrderService(c, session, bus)
	blueprints := client.NewBlueprintService(c, session, bus)

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "queue"
	}
	switch cmd {
	case "catalog":
		v := views.NewUserCatalog(log, bus, blueprints, orders)
		v.Mount(ctx)
		defer v.Unmount()
		for _, bp := range v.Blueprints() {
			fmt.Printf("%s\t%s\t%d dims\n", bp.ID, bp.Name, len(bp.Dimensions))
		}
	case "order":
		id, err := uuid.Parse(flag.Arg(1))
		if err != nil {
			fmt.Printf("order: blueprint id required\n")
			os.Exit(2)
		}
		v := views.NewUserCatalog(log, bus, blueprints, orders)
		v.Mount(ctx)
		defer v.Unmount()
		exitOn(v.Order(ctx, id))
	case "queue", "start", "finish", "watch":
		if d := guard.Check(session, guard.ViewWorker); !d.Allow {
			fmt.Printf("%s requires a worker login (go to %s)\n", cmd, d.Redirect)
			os.Exit(2)
		}
		runFloor(ctx, log, baseURL, cmd, selectKey, bus, orders)
	default:
		fmt.Printf("unknown command %q\n", cmd)
		os.Exit(2)
	}
}

func runFloor(ctx context.Context, log *logger.Logger, baseURL, cmd, selectKey string, bus *notify.Bus, orders *client.OrderService) {
	dash := views.NewWorkerDashboard(log, bus, orders)
	dash.Mount(ctx)
	defer dash.Unmount()
	if selectKey != "" {
		dash.Select(selectKey)
	}

	switch cmd {
	case "start":
		exitOn(dash.Start(ctx))
		return
	case "finish":
		exitOn(dash.Finish(ctx))
		return
	}

	queue := views.NewWorkerQueue(log, bus, orders)
	queue.Mount(ctx)
	defer queue.Unmount()
	printQueue(queue.Orders())
	if cmd == "queue" {
		return
	}

	detach := bus.Attach(notify.NewSSEMirror(log, baseURL, &http.Client{}))
	defer detach()
	seen := queue.Refreshes()
	poll := time.NewTicker(200 * time.Millisecond)
	defer poll.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case elapsed := <-dash.Ticks():
			if o, ok := dash.Active(); ok {
				fmt.Printf("\r#%d %s %s ", o.Reference, o.Name, elapsed)
			}
		case <-poll.C:
			if n := queue.Refreshes(); n != seen {
				seen = n
				fmt.Println()
				printQueue(queue.Orders())
			}
		}
	}
}

func printQueue(list []domain.Order) {
	if len(list) == 0 {
		fmt.Println("queue empty")
		return
	}
	for _, o := range list {
		fmt.Printf("#%d\t%-11s\t%s\n", o.Reference, o.Status, o.Name)
	}
}

func exitOn(res client.Result) {
	if !res.Success {
		fmt.Printf("failed: %v\n", res.Err)
		os.Exit(1)
	}
	if res.Order != nil {
		fmt.Printf("#%d %s\n", res.Order.Reference, res.Order.Status)
	}
}
