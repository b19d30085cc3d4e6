package main

import (
	"flag"
	"os"

	"takvim.link/configs"
	"takvim.link/configs/configsdatabase"
	"takvim.link/configs/configslog"
	"takvim.link/database"

	"go.uber.org/zap"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Veritabanı başlatma işlemini çalıştır (migrasyonları içerir)")
	seedFlag := flag.Bool("seed", false, "Veritabanı başlatma işlemini çalıştır (seederları içerir)")
	flag.Parse()

	cfg, err := configs.LoadConfig()
	if err != nil {
		configslog.InitLogger()
		configslog.Log.Fatal("Konfigürasyon yüklenemedi", zap.Error(err))
	}
	configslog.InitLoggerWith(cfg.Env, cfg.LogLevel)
	defer configslog.SyncLogger()

	if cfg.DBDriver != configs.DBDriverPostgres {
		configslog.SLog.Infof("DB_DRIVER=%s için migrasyon gerekmiyor.", cfg.DBDriver)
		return
	}

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	if err := database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag); err != nil {
		configslog.SLog.Errorf("Veritabanı başlatma işlemi başarısız: %v", err)
		configslog.SyncLogger()
		os.Exit(1)
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
