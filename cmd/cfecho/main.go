package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/stealthrocket/cornflakes/loopback"
	"github.com/stealthrocket/cornflakes/server"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.NewApp()
	app.Name = "cfecho"
	app.Usage = "echo messages through a loopback datapath and report latencies"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load the loopback datapath configuration from `FILE`",
		},
		cli.StringFlag{
			Name:  "message, m",
			Value: "single",
			Usage: "kind of message to echo: single, list or tree",
		},
		cli.IntFlag{
			Name:  "size, s",
			Value: 1024,
			Usage: "size in bytes of each payload",
		},
		cli.IntFlag{
			Name:  "count",
			Value: 4,
			Usage: "number of payloads of list messages",
		},
		cli.IntFlag{
			Name:  "requests, n",
			Value: 10000,
			Usage: "number of requests sent on each queue",
		},
		cli.IntFlag{
			Name:  "queues, q",
			Value: 1,
			Usage: "number of queues, each with its own client and server",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logs",
		},
	}
	app.Action = func(c *cli.Context) error {
		o := options{
			message:  c.String("message"),
			size:     c.Int("size"),
			count:    c.Int("count"),
			requests: c.Int("requests"),
			queues:   c.Int("queues"),
		}
		o.config = loopback.DefaultConfig()
		if path := c.String("config"); path != "" {
			var err error
			if o.config, err = loopback.LoadConfig(path); err != nil {
				return err
			}
		}
		log := logrus.New()
		log.SetOutput(os.Stderr)
		if c.Bool("debug") {
			log.SetLevel(logrus.DebugLevel)
		}
		return bench(context.Background(), o, log, os.Stdout)
	}
	return app.Run(args)
}

type options struct {
	config   loopback.Config
	message  string
	size     int
	count    int
	requests int
	queues   int
}

func bench(ctx context.Context, o options, log logrus.FieldLogger, w io.Writer) error {
	if o.queues < 1 {
		return fmt.Errorf("at least one queue is required")
	}
	work, err := newWorkload(o.message, o.count)
	if err != nil {
		return err
	}

	clients := make([]*loopback.Conn, o.queues)
	servers := make([]*server.Server, o.queues)
	for i := range servers {
		client, conn, err := loopback.NewPair(o.config)
		if err != nil {
			return err
		}
		defer client.Close()
		defer conn.Close()
		clients[i] = client
		servers[i] = &server.Server{
			Transport: conn,
			Handler:   work.handler(),
			Logger:    log.WithField("queue", i),
		}
	}

	// Servers run until every client is done. A failing server cancels
	// the clients, and a failing client stops the servers.
	group, groupCtx := errgroup.WithContext(ctx)
	serveCtx, stop := context.WithCancel(groupCtx)
	defer stop()
	group.Go(func() error { return server.ServeQueues(serveCtx, servers...) })

	histograms := make([]*hdrhistogram.Histogram, o.queues)
	start := time.Now()
	var elapsed time.Duration
	var requests errgroup.Group
	for i, client := range clients {
		i, client := i, client
		histograms[i] = newHistogram()
		requests.Go(func() error {
			return runClient(groupCtx, work, client, o.size, o.requests, histograms[i])
		})
	}
	group.Go(func() error {
		defer stop()
		err := requests.Wait()
		elapsed = time.Since(start)
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}

	latency := newHistogram()
	for _, h := range histograms {
		latency.Merge(h)
	}
	report(w, o, elapsed, latency, clients, servers)
	return nil
}

func report(w io.Writer, o options, elapsed time.Duration, latency *hdrhistogram.Histogram, clients []*loopback.Conn, servers []*server.Server) {
	total := latency.TotalCount()
	fmt.Fprintf(w, "%s %s requests on %d queue(s) in %s (%s req/s)\n",
		humanize.Comma(total), o.message, o.queues, elapsed.Round(time.Millisecond),
		humanize.Comma(int64(float64(total)/elapsed.Seconds())))
	fmt.Fprintf(w, "latency: mean=%s p50=%s p99=%s p99.9=%s max=%s\n",
		time.Duration(latency.Mean()),
		time.Duration(latency.ValueAtQuantile(50)),
		time.Duration(latency.ValueAtQuantile(99)),
		time.Duration(latency.ValueAtQuantile(99.9)),
		time.Duration(latency.Max()))

	var dropped uint64
	for i := range servers {
		dropped += servers[i].Stats().Dropped
		fmt.Fprintf(w, "queue %d: client %s\n", i, clients[i].Stats())
		fmt.Fprintf(w, "queue %d: server %s\n", i, servers[i].Transport.(*loopback.Conn).Stats())
	}
	if dropped > 0 {
		fmt.Fprintf(w, "dropped: %s requests\n", humanize.Comma(int64(dropped)))
	}
}
