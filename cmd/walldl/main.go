package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/smartisanos/wallkit/pkg/history"
	"github.com/smartisanos/wallkit/pkg/logging"
	"github.com/smartisanos/wallkit/pkg/wallpaper"
)

var version = "dev"

const (
	_ = iota
	exitDotenvError
	exitInvalidSource
	exitOutputDirError
	exitHistoryError
	exitListFailed
	exitDownloadFailed
)

const defaultDownloadDirName = "SmartisanOS_Wallpapers"

var (
	source       string
	paperID      string
	limit        int
	page         int
	outputDir    string
	concurrency  int
	nameTemplate string
	redownload   bool
	noHistory    bool
	showHistory  bool
	listSources  bool
	noProgress   bool
	loggingType  string
	logLevel     string
	showVersion  bool
)

func init() {
	flag.StringVar(
		&source,
		"source",
		"Smartisan",
		"wallpaper source (see -list-sources)")
	flag.StringVar(
		&paperID,
		"paper-id",
		"0",
		"fetch wallpapers after this id (0 = start of the listing)")
	flag.IntVar(
		&limit,
		"limit",
		wallpaper.DefaultListLimit,
		"how many wallpapers to list")
	flag.IntVar(
		&page,
		"page",
		-1,
		"download only this page of 3 wallpapers (-1 = whole listing)")
	flag.StringVar(
		&outputDir,
		"out",
		"",
		"download directory (default: ~/"+defaultDownloadDirName+")")
	flag.IntVar(
		&concurrency,
		"concurrency",
		wallpaper.DefaultConcurrency,
		"parallel downloads")
	flag.StringVar(
		&nameTemplate,
		"name-template",
		wallpaper.DefaultNameTemplate,
		"file name template rendered per wallpaper")
	flag.BoolVar(
		&redownload,
		"redownload",
		false,
		"fetch wallpapers again even when the history knows them")
	flag.BoolVar(
		&noHistory,
		"no-history",
		false,
		"do not read or write the download history")
	flag.BoolVar(
		&showHistory,
		"show-history",
		false,
		"print the most recent downloads and exit")
	flag.BoolVar(
		&listSources,
		"list-sources",
		false,
		"print the known wallpaper sources and exit")
	flag.BoolVar(
		&noProgress,
		"no-progress",
		false,
		"disable the terminal progress bar")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if listSources {
		for _, s := range wallpaper.Sources {
			fmt.Println(s)
		}
		os.Exit(0)
	}

	_ = logging.Initialize(loggingType, logLevel)

	includeEnv()
	checkSource()
	dir := ensureOutputDir()
	db := openHistory(dir)
	if db != nil {
		defer db.Close()
	}

	if showHistory {
		printHistory(db)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	walls := listWallpapers(ctx)
	if page >= 0 {
		walls = wallpaper.Page(walls, page)
	}
	if len(walls) == 0 {
		slog.Info("nothing to download", "source", source, "page", page)
		return
	}

	d := wallpaper.NewDownloader(dir)
	d.Concurrency = concurrency
	d.NameTemplate = nameTemplate
	d.History = db
	d.Redownload = redownload
	d.ShowProgress = !noProgress

	summary, err := d.Download(ctx, source, walls)
	if err != nil {
		slog.Error("download aborted", "error", err)
		os.Exit(exitDownloadFailed)
	}

	slog.Info("done",
		"downloaded", summary.Downloaded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"directory", dir)

	if summary.Downloaded == 0 && summary.Failed > 0 {
		os.Exit(exitDownloadFailed)
	}
}

func listWallpapers(ctx context.Context) []wallpaper.Wallpaper {
	client := wallpaper.NewClient()
	walls, err := client.List(ctx, source, paperID, limit)
	if err != nil {
		slog.Error("failed to fetch wallpaper list", "source", source, "error", err)
		os.Exit(exitListFailed)
	}
	slog.Info("fetched wallpaper list", "source", source, "count", len(walls))
	return walls
}

func checkSource() {
	if wallpaper.ValidSource(source) {
		return
	}
	slog.Error("unknown wallpaper source, see -list-sources", "source", source)
	os.Exit(exitInvalidSource)
}

func ensureOutputDir() string {
	dir := outputDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to resolve home directory", "error", err)
			os.Exit(exitOutputDirError)
		}
		dir = filepath.Join(home, defaultDownloadDirName)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create download directory", "directory", dir, "error", err)
		os.Exit(exitOutputDirError)
	}
	return dir
}

func openHistory(dir string) *history.DB {
	if noHistory {
		return nil
	}

	db, err := history.Open(filepath.Join(dir, history.DefaultFilename))
	if err != nil {
		slog.Error("failed to open download history", "error", err)
		os.Exit(exitHistoryError)
	}
	return db
}

func printHistory(db *history.DB) {
	if db == nil {
		slog.Error("-show-history cannot be combined with -no-history")
		os.Exit(exitHistoryError)
	}

	entries, err := db.Recent(20)
	if err != nil {
		slog.Error("failed to read download history", "error", err)
		os.Exit(exitHistoryError)
	}

	for _, e := range entries {
		fmt.Printf("%s  %-12s  %s  (%d bytes)\n",
			e.DownloadedAt.Format("2006-01-02 15:04"), e.Source, e.Path, e.Size)
	}
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Debug("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}
