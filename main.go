package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/Duratori/nvcheck/cmd"
	"github.com/Duratori/nvcheck/internal/version"
	"github.com/getsentry/sentry-go"
)

func main() {
	_ = initSentry()
	defer sentry.Flush(5 * time.Second)

	// Wrap execution with panic recovery
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			sentry.Flush(5 * time.Second)
			panic(r)
		}
	}()

	cmd.Execute()
}

func initSentry() error {
	// DSN is injected at build time - if empty, Sentry is disabled
	if version.SentryDSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              version.SentryDSN,
		Environment:      getEnvironment(),
		Release:          fmt.Sprintf("nvcheck@%s", version.BuildVersion),
		Debug:            false,
		AttachStacktrace: true,
		SampleRate:       1.0,
	})

	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("build_commit", version.BuildCommit)
		scope.SetTag("service", "nvcheck")
		scope.SetTag("instance_id", getInstanceID())
	})

	return nil
}

func getEnvironment() string {
	if version.BuildVersion == "dev" {
		return "dev"
	}
	return "production"
}

func getInstanceID() string {
	if id := os.Getenv("HOSTNAME"); id != "" {
		return id
	}
	if id, err := os.Hostname(); err == nil && id != "" {
		return id
	}
	return "unknown"
}
