package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Joseda-hg/taskmanager/internal/cli"
	"github.com/Joseda-hg/taskmanager/internal/config"
	"github.com/Joseda-hg/taskmanager/internal/db"
	"github.com/Joseda-hg/taskmanager/internal/report"
	"github.com/Joseda-hg/taskmanager/internal/schedule"
	"github.com/Joseda-hg/taskmanager/internal/tracker"
	"github.com/Joseda-hg/taskmanager/internal/tui"
	"github.com/Joseda-hg/taskmanager/internal/web"
)

func main() {
	configPathFlag := flag.String("config", "", "config file path")
	dataDirFlag := flag.String("data", "", "directory holding user.txt and tasks.txt")
	backendFlag := flag.String("backend", "", "record backend (text or sqlite)")
	dbPathFlag := flag.String("db", "", "sqlite db path")
	reportDirFlag := flag.String("reports", "", "directory for generated reports")
	tuiFlag := flag.Bool("tui", false, "open the dashboard after login")
	webFlag := flag.Bool("web", false, "enable web server")
	webOnlyFlag := flag.Bool("web-only", false, "run web server only")
	portFlag := flag.Int("port", 0, "web server port")
	intervalFlag := flag.String("report-interval", "", "regenerate reports on this interval, e.g. 15m")
	flag.Parse()

	cfgPath, err := resolveConfigPath(*configPathFlag)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	if *dataDirFlag != "" {
		cfg.DataDir = *dataDirFlag
	}
	if *backendFlag != "" {
		cfg.Backend = *backendFlag
	}
	if *dbPathFlag != "" {
		cfg.DBPath = *dbPathFlag
	}
	if *reportDirFlag != "" {
		cfg.ReportDir = *reportDirFlag
	}
	if *webFlag || *webOnlyFlag {
		cfg.WebEnabled = true
	}
	if *portFlag != 0 {
		cfg.WebPort = *portFlag
	}
	if cfg.WebPort == 0 {
		cfg.WebPort = 8080
	}
	if *intervalFlag != "" {
		cfg.ReportInterval = *intervalFlag
	}

	interval, err := cfg.Interval()
	if err != nil {
		log.Fatal(err)
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		log.Fatal(err)
	}

	// Environment overrides and derived paths apply to this run only.
	if *dataDirFlag == "" {
		cfg = cfg.WithEnv()
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(cfgPath)
	}
	if cfg.Backend == db.BackendSQLite && cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "taskmanager.db")
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = cfg.DataDir
	}

	store, err := db.OpenStore(db.Options{Backend: cfg.Backend, DataDir: cfg.DataDir, DBPath: cfg.DBPath})
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	session, err := tracker.Open(ctx, store)
	if err != nil {
		log.Fatal(err)
	}
	reports := report.NewWriter(cfg.ReportDir)

	if interval > 0 {
		scheduler := schedule.New(time.Local)
		if _, err := scheduler.ScheduleInterval(interval, func() {
			if _, _, err := session.GenerateReports(reports); err != nil {
				log.Printf("scheduled report failed: %v", err)
			}
		}); err != nil {
			log.Fatal(err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	if cfg.WebEnabled {
		addr := fmt.Sprintf(":%d", cfg.WebPort)
		handler := web.NewServer(session, reports).Handler()
		if *webOnlyFlag {
			log.Printf("Web server running at http://localhost%s", addr)
			log.Fatal(http.ListenAndServe(addr, handler))
		}

		go func() {
			log.Printf("Web server running at http://localhost%s", addr)
			if err := http.ListenAndServe(addr, handler); err != nil {
				log.Printf("web server error: %v", err)
			}
		}()
	}

	app := cli.New(session, reports, os.Stdin, os.Stdout)
	if *tuiFlag {
		if err := app.Login(); err != nil {
			if errors.Is(err, cli.ErrInputClosed) {
				return
			}
			log.Fatal(err)
		}
		if err := tui.Run(session, reports); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultConfigPath()
}
