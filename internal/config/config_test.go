package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"ethoscore/internal/config"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"ETHOSCORE_CONFIG",
		"ETHOSCORE_ADDR",
		"ETHOSCORE_LOG_LEVEL",
		"ETHOSCORE_MONGO_URI",
		"ETHOSCORE_MONGO_DATABASE",
		"ETHOSCORE_REDIS_ADDR",
		"ETHOSCORE_CATALOG_CACHE_TTL_SECONDS",
		"ETHOSCORE_RECOMPUTE_GUARD_TTL_SECONDS",
		"ETHOSCORE_MIN_ASSIGNMENTS",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	convey.Convey("Given the config loader", t, func() {
		clearConfigEnvVars()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load()

			convey.Convey("Then the defaults apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MongoURI, convey.ShouldEqual, "mongodb://localhost:27017")
				convey.So(cfg.MongoDatabase, convey.ShouldEqual, "ethoscore")
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "localhost:6379")
				convey.So(cfg.CatalogCacheTTLSeconds, convey.ShouldEqual, 300)
				convey.So(cfg.RecomputeGuardTTLSeconds, convey.ShouldEqual, 120)
				convey.So(cfg.MinAssignments, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When environment variables are set", func() {
			_ = os.Setenv("ETHOSCORE_ADDR", ":9090")
			_ = os.Setenv("ETHOSCORE_MONGO_DATABASE", "ethoscore_test")
			_ = os.Setenv("ETHOSCORE_MIN_ASSIGNMENTS", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MongoDatabase, convey.ShouldEqual, "ethoscore_test")
				convey.So(cfg.MinAssignments, convey.ShouldEqual, 5)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "localhost:6379")
			})
		})

		convey.Convey("When a YAML file is provided", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			content := "addr: \":7070\"\nlog_level: debug\ncatalog_cache_ttl_seconds: 60\n"
			convey.So(os.WriteFile(path, []byte(content), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("ETHOSCORE_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then file values override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.CatalogCacheTTL().Seconds(), convey.ShouldEqual, 60)
			})

			convey.Convey("And env vars still beat the file", func() {
				_ = os.Setenv("ETHOSCORE_ADDR", ":6060")

				cfg, err := config.Load()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the mongo uri is blanked out", func() {
			_ = os.Setenv("ETHOSCORE_MONGO_URI", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then validation rejects the config", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestSlogLevel(t *testing.T) {
	convey.Convey("Given log level strings", t, func() {
		cases := map[string]slog.Level{
			"debug":   slog.LevelDebug,
			"info":    slog.LevelInfo,
			"warn":    slog.LevelWarn,
			"error":   slog.LevelError,
			"DEBUG":   slog.LevelDebug,
			"unknown": slog.LevelInfo,
			"":        slog.LevelInfo,
		}
		for in, want := range cases {
			cfg := config.Config{LogLevel: in}
			convey.So(cfg.SlogLevel(), convey.ShouldEqual, want)
		}
	})
}
