package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"takvim.link/configs"
	"takvim.link/configs/configsdatabase"
	"takvim.link/configs/configslog"
	"takvim.link/database"
	"takvim.link/models"
	"takvim.link/pkg/clock"
	"takvim.link/pkg/rabbitmq"
	"takvim.link/pkg/redislock"
	"takvim.link/repositories"
	"takvim.link/routes"
	"takvim.link/services"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		configslog.InitLogger()
		configslog.Log.Fatal("Konfigürasyon yüklenemedi", zap.Error(err))
	}
	configslog.InitLoggerWith(cfg.Env, cfg.LogLevel)
	defer configslog.SyncLogger()

	ctx := context.Background()
	clk := clock.Real{}

	eventRepo, directoryRepo, closeStore := openStore(ctx, cfg, clk)
	defer closeStore()

	serviceOpts := []services.EventServiceOption{services.WithClock(clk)}
	var publisher *rabbitmq.Publisher
	if cfg.AMQP.URL != "" {
		publisher = rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err := publisher.Open(); err != nil {
			configslog.Log.Warn("AMQP bağlantısı kurulamadı, olaylar yayınlanmayacak", zap.Error(err))
			publisher = nil
		} else {
			serviceOpts = append(serviceOpts, services.WithNotifier(publisher))
			configslog.SLog.Infof("Olaylar AMQP exchange'ine yayınlanacak: %s", cfg.AMQP.Exchange)
		}
	}

	eventService := services.NewEventService(eventRepo, directoryRepo, serviceOpts...)
	directoryService := services.NewDirectoryService(directoryRepo)

	var sweeperOpts []services.PurgeSweeperOption
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sweeperOpts = append(sweeperOpts, services.WithLocker(redislock.New(redisClient, "takvim:lock:")))
	}
	sweeper := services.NewPurgeSweeper(eventService, cfg.PurgeSchedule, sweeperOpts...)
	sweeper.RunOnce(ctx)
	if err := sweeper.Start(); err != nil {
		configslog.Log.Fatal("Temizlik zamanlayıcısı başlatılamadı", zap.String("schedule", cfg.PurgeSchedule), zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      "takvim.link",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	routes.SetupRoutes(app, routes.Dependencies{
		Events:     eventService,
		Directory:  directoryService,
		CORSOrigin: cfg.CORSOrigin,
		AccessLog:  true,
	})

	go func() {
		configslog.SLog.Infof("Sunucu %s portunda dinleniyor (sürücü: %s)", cfg.Port, cfg.DBDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	configslog.SLog.Info("Kapanış sinyali alındı, sunucu durduruluyor...")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
	}
	if err := sweeper.Stop(shutdownCtx); err != nil {
		configslog.Log.Warn("Temizlik turu zamanında bitmedi", zap.Error(err))
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			configslog.Log.Warn("AMQP bağlantısı kapatılamadı", zap.Error(err))
		}
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	configslog.SLog.Info("Sunucu durduruldu.")
}

// openStore DB_DRIVER'a göre depoları kurar ve kapatma fonksiyonunu döndürür.
func openStore(ctx context.Context, cfg *configs.AppConfig, clk clock.Clock) (repositories.IEventRepository, repositories.IDirectoryRepository, func()) {
	switch cfg.DBDriver {
	case configs.DBDriverPostgres:
		configsdatabase.InitDB()
		db := configsdatabase.GetDB()
		if err := database.Initialize(db, true, true); err != nil {
			configslog.Log.Fatal("Veritabanı hazırlanamadı", zap.Error(err))
		}
		return repositories.NewEventRepository(db, clk), repositories.NewDirectoryRepository(db), configsdatabase.CloseDB

	case configs.DBDriverMongo:
		configsdatabase.InitMongo(ctx)
		repo := repositories.NewEventMongoRepository(configsdatabase.GetMongo(), clk)
		if err := repo.EnsureIndexes(ctx); err != nil {
			configslog.Log.Fatal("MongoDB indeksleri oluşturulamadı", zap.Error(err))
		}
		directory := repositories.NewDirectoryMemoryRepository(models.DefaultTeams(), models.DefaultMembers())
		return repo, directory, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			configsdatabase.CloseMongo(closeCtx)
		}
	}

	configslog.Log.Warn("Bellek içi depo kullanılıyor, veriler yeniden başlatmada kaybolur")
	directory := repositories.NewDirectoryMemoryRepository(models.DefaultTeams(), models.DefaultMembers())
	return repositories.NewEventMemoryRepository(clk), directory, func() {}
}
