package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stlog "log"
	"os"
	"os/signal"
	"time"

	"MeetBoard/internal/board"
	"MeetBoard/internal/config"
	"MeetBoard/internal/logger"
	boardnet "MeetBoard/internal/net"
	"MeetBoard/internal/ui"
)

func main() {
	flags := config.NewFlags(config.AppName)
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(flags.ConfigPath())
	if err != nil {
		stlog.Fatalf("Failed to load config: %v", err)
	}
	flags.ApplyOverrides(cfg)

	logOut, closeLog, err := openLog(cfg.Logger.File)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", cfg.Logger.File, err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, logOut)
	logger.Infof("Starting %s", config.AppName)
	logger.Debugf("Config: board %dx%d, max history %d, mirror %v on %s",
		cfg.Board.Width, cfg.Board.Height, cfg.Board.MaxHistory, cfg.Mirror.Enabled, cfg.Mirror.Addr)

	if flags.Browse {
		if err := runBrowse(); err != nil {
			logger.Errorf("Browse failed: %v", err)
			os.Exit(1)
		}
		return
	}

	b, err := board.New(cfg.Board)
	if err != nil {
		logger.Errorf("Error initializing board: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := ui.Options{Title: "Meet Board"}
	if cfg.Mirror.Enabled {
		opts.Status = startMirror(ctx, b, cfg.Mirror)
	}

	ui.RunApp(b, opts)
	logger.Infof("%s finished", config.AppName)
}

// openLog returns the writer for path. Empty or "-" means stderr.
func openLog(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// startMirror serves the board to viewers and returns a status line.
func startMirror(ctx context.Context, b *board.Board, cfg config.MirrorConfig) string {
	m := boardnet.NewMirror()
	m.Attach(b)
	go func() {
		if err := m.Serve(ctx, cfg.Addr); err != nil {
			logger.Errorf("Mirror stopped: %v", err)
		}
	}()

	if cfg.Advertise {
		if port, err := boardnet.PortOf(cfg.Addr); err != nil {
			logger.Warnf("Not advertising mirror: %v", err)
		} else if srv, err := boardnet.Advertise(port, b.Session()); err != nil {
			logger.Warnf("Not advertising mirror: %v", err)
		} else {
			go func() {
				<-ctx.Done()
				srv.Shutdown()
			}()
		}
	}

	link, err := boardnet.ShareURL(cfg.Addr)
	if err != nil {
		logger.Warnf("Could not build share link: %v", err)
		return "Mirror on " + cfg.Addr
	}
	logger.Infof("Share link: %s", link)
	return "Mirror: " + link
}

func runBrowse() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	found, err := boardnet.Browse(ctx, 3*time.Second)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Println("No boards found on the local network.")
		return nil
	}
	for _, a := range found {
		fmt.Printf("%s\t%s\t%s\n", a.Host, a.URL, a.Session)
	}
	return nil
}
