package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/mmo-globe/internal/api"
	"github.com/annel0/mmo-globe/internal/config"
	"github.com/annel0/mmo-globe/internal/globe"
	"github.com/annel0/mmo-globe/internal/logging"
	"github.com/annel0/mmo-globe/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: $GLOBE_CONFIG)")
	flag.Parse()

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	if err := setupLogging(cfg.Logging); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🌍 Запуск Globe Server...")

	ctx := context.Background()
	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		logging.Error("❌ Ошибка инициализации телеметрии: %v", err)
		log.Fatalf("❌ Ошибка инициализации телеметрии: %v", err)
	}

	// === ИНИЦИАЛИЗАЦИЯ ГЛОБУСА ===
	spec, err := cfg.Globe.ToSpec()
	if err != nil {
		log.Fatalf("❌ Неверные параметры глобуса: %v", err)
	}

	g, err := globe.NewGlobe(spec)
	if err != nil {
		log.Fatalf("❌ Ошибка создания глобуса: %v", err)
	}
	logging.Info("📐 Глобус: seed=%d, root_resolution=%s, chunk_resolution=%d",
		spec.Seed, spec.Resolution(), spec.ChunkResolution)

	if cfg.Globe.ShouldBuildOnStart() {
		start := time.Now()
		g.BuildAllChunks()
		logging.Info("✅ Построено %d чанков за %s, несшитых точек: %d",
			g.ChunkCount(), time.Since(start), g.SeamMismatches())
	}

	// === REST API ===
	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	server, err := api.NewRestServer(api.Config{
		Port:    restPort,
		Globe:   g,
		Tracing: cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Fatalf("❌ Ошибка создания REST API: %v", err)
	}
	if err := server.Start(); err != nil {
		logging.Error("❌ Ошибка запуска REST API: %v", err)
		log.Fatalf("❌ Ошибка запуска REST API: %v", err)
	}

	logging.Info("💡 Примеры:")
	logging.Info("   curl http://localhost%s/health", restPort)
	logging.Info("   curl 'http://localhost%s/api/equivalents?root=3&x=0&y=3&z=77'", restPort)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logging.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	stopCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Stop(stopCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}
	if err := shutdownTelemetry(stopCtx); err != nil {
		logging.Error("❌ Ошибка остановки телеметрии: %v", err)
	}

	logging.Info("👋 Сервер успешно остановлен")
}

func setupLogging(cfg config.LoggingConfig) error {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	logging.SetLogDir(cfg.Dir)
	logging.GetLoggerManager().SetDefaultLevels(level, logging.TRACE)

	if err := logging.InitDefaultLogger("server"); err != nil {
		return err
	}
	logging.DefaultLogger().SetLevels(level, logging.TRACE)
	return nil
}
