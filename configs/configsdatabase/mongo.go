package configsdatabase

import (
	"context"
	"time"

	"takvim.link/configs"
	"takvim.link/configs/configslog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

var mongoClient *mongo.Client

// InitMongo MONGODB_URI ile istemciyi kurar ve primary'ye ping atar.
func InitMongo(ctx context.Context) {
	cfg := configs.GetConfig()
	if cfg.Mongo.URI == "" {
		configslog.Log.Fatal("DB_DRIVER=mongo için MONGODB_URI gerekli")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		configslog.Log.Fatal("MongoDB bağlantısı kurulamadı", zap.Error(err))
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		configslog.Log.Fatal("MongoDB ping başarısız", zap.Error(err))
	}

	mongoClient = client
	configslog.SLog.Infof("MongoDB bağlantısı kuruldu (veritabanı: %s)", cfg.Mongo.Database)
}

// GetMongo yapılandırılmış veritabanını döndürür.
func GetMongo() *mongo.Database {
	if mongoClient == nil {
		configslog.Log.Fatal("MongoDB başlatılmadan GetMongo çağrıldı")
	}
	return mongoClient.Database(configs.GetConfig().Mongo.Database)
}

func CloseMongo(ctx context.Context) {
	if mongoClient == nil {
		return
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		configslog.Log.Error("MongoDB bağlantısı kapatılamadı", zap.Error(err))
		return
	}
	configslog.SLog.Info("MongoDB bağlantısı kapatıldı.")
}
