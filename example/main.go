// Command example wires doccache to MongoDB, an S3-compatible store and Redis
// from environment configuration, then reads a couple of documents.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/doccache"
	"github.com/unkn0wn-root/doccache/config"
	async "github.com/unkn0wn-root/doccache/hooks/async"
	zaplog "github.com/unkn0wn-root/doccache/log/zap"
	redisprov "github.com/unkn0wn-root/doccache/provider/redis"
	"github.com/unkn0wn-root/doccache/sloghooks"
	"github.com/unkn0wn-root/doccache/source"
	miniosrc "github.com/unkn0wn-root/doccache/source/minio"
	mongosrc "github.com/unkn0wn-root/doccache/source/mongo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zl, err := newZap(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()
	zl.Info("starting", zap.Stringer("config", cfg))

	docs, client, err := mongosrc.Connect(ctx, cfg.MongoDSN, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	var objects source.ObjectStore
	if cfg.S3Enabled() {
		objects, err = miniosrc.New(miniosrc.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			return err
		}
	}

	rp, err := redisprov.FromURL(cfg.RedisDSN)
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	if err := rp.Ping(pingCtx); err != nil {
		// lookups tolerate a missing cache tier; report it and carry on
		zl.Warn("redis unreachable", zap.Error(err))
	}
	cancel()

	hooks := async.New(sloghooks.New(slog.Default(), sloghooks.Options{FillEvery: 100}), 2, 1024)
	defer hooks.Close()

	cc, err := doccache.New(doccache.Options{
		Provider:  rp,
		Documents: docs,
		Objects:   objects,
		Expiry:    cfg,
		Logger:    zaplog.New(zl),
		Hooks:     hooks,
		SourceLimit: source.RateLimit{
			RequestsPerSecond: 200,
			Burst:             50,
			WaitTimeout:       100 * time.Millisecond,
		},
	})
	if err != nil {
		return err
	}
	defer func() { _ = cc.Close(context.Background()) }()

	for _, id := range os.Args[1:] {
		doc, ok := cc.GetDocument(ctx, doccache.SourceMongoDB, id, doccache.DocAccounts, "")
		if !ok {
			zl.Info("account not found", zap.String("id", id))
			continue
		}
		if enc, _ := doc["encryptedKey"].(string); enc != "" {
			doc["encryptedKey"] = doccache.Decrypt(enc, os.Getenv("ACCOUNT_PASSPHRASE"))
		}
		zl.Info("account", zap.String("id", id), zap.Any("doc", doc))
	}
	return nil
}

func newZap(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.LogLevel != "" {
		lvl, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	if cfg.LogFile != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.LogFile)
	}
	return zc.Build()
}
