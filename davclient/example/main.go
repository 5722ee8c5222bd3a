// Command example lists a WebDAV collection.
//
//	go run ./davclient/example -url https://cloud.example.com/remote.php/dav/files/me/ -r
//
// Flags fall back to DAV_URL, DAV_USERNAME and DAV_PASSWORD, which may also
// come from a .env file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/cyp0633/libwebdav/dav"
	"github.com/cyp0633/libwebdav/davclient"
	"github.com/cyp0633/libwebdav/internal/envutil"
)

func main() {
	envErr := envutil.LoadDotEnv()

	var (
		location  = flag.String("url", envutil.GetEnv("DAV_URL", ""), "collection URL")
		username  = flag.String("user", envutil.GetEnv("DAV_USERNAME", ""), "basic auth username")
		recursive = flag.Bool("r", false, "walk sub-collections")
		verbose   = flag.Bool("v", false, "log requests")
		version   = flag.Bool("version", false, "print the library version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println("libwebdav", davclient.Version())
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("failed to load .env", "error", envErr)
	}

	if *location == "" {
		fmt.Fprintln(os.Stderr, "missing -url (or DAV_URL)")
		os.Exit(2)
	}

	client, err := davclient.New(*location, &davclient.Config{
		Username: *username,
		Password: envutil.GetEnv("DAV_PASSWORD", ""),
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to create client", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *recursive {
		err = client.Walk(ctx, *location, func(r *dav.Resource) error {
			printResource(r)
			return nil
		})
	} else {
		var resources []*dav.Resource
		resources, err = client.List(ctx, *location)
		for _, r := range resources {
			printResource(r)
		}
	}
	if err != nil {
		var pe *dav.ProtocolError
		if errors.As(err, &pe) {
			logger.Error("server refused request", "status", pe.StatusCode(), "phrase", pe.ResponsePhrase())
		} else {
			logger.Error("request failed", "error", err)
		}
		os.Exit(1)
	}
}

func printResource(r *dav.Resource) {
	kind := "-"
	if r.IsDirectory() {
		kind = "d"
	}
	modified := "-"
	if t, ok := r.Modified().Get(); ok {
		modified = t.Local().Format(time.DateTime)
	}
	fmt.Printf("%s %12d %19s %s\n", kind, r.ContentLength(), modified, r.Path())
}
