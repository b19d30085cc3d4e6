package services

import (
	"context"
	"time"

	"takvim.link/configs/configslog"
	"takvim.link/pkg/redislock"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	purgeLockName = "purge-sweep"
	// DefaultPurgeTimeout tek bir temizlik turunun süre sınırı.
	DefaultPurgeTimeout = 5 * time.Minute
)

// PurgeRunner temizlik turunu çalıştıran taraf (EventService).
type PurgeRunner interface {
	PurgeSweep(ctx context.Context) int64
}

// PurgeSweeper süresi dolmuş silinmiş kayıtları istek trafiğinden bağımsız, cron
// takvimiyle temizler. Locker verilirse tur başına yalnızca bir örnek çalışır.
type PurgeSweeper struct {
	runner   PurgeRunner
	schedule string
	locker   *redislock.Locker
	timeout  time.Duration
	cron     *cron.Cron
}

type PurgeSweeperOption func(*PurgeSweeper)

func WithLocker(l *redislock.Locker) PurgeSweeperOption {
	return func(p *PurgeSweeper) { p.locker = l }
}

func WithSweepTimeout(d time.Duration) PurgeSweeperOption {
	return func(p *PurgeSweeper) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func NewPurgeSweeper(runner PurgeRunner, schedule string, opts ...PurgeSweeperOption) *PurgeSweeper {
	p := &PurgeSweeper{runner: runner, schedule: schedule, timeout: DefaultPurgeTimeout}
	for _, opt := range opts {
		opt(p)
	}
	logger := cronLogger{}
	p.cron = cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	return p
}

// Start turu takvime ekler ve zamanlayıcıyı başlatır. Geçersiz takvim ifadesi hata döndürür.
func (p *PurgeSweeper) Start() error {
	if _, err := p.cron.AddFunc(p.schedule, p.tick); err != nil {
		return err
	}
	p.cron.Start()
	configslog.SLog.Infof("Temizlik zamanlayıcısı başlatıldı (%s)", p.schedule)
	return nil
}

// Stop yeni turları durdurur ve çalışan turun bitmesini ctx süresince bekler.
func (p *PurgeSweeper) Stop(ctx context.Context) error {
	done := p.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *PurgeSweeper) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	p.RunOnce(ctx)
}

// RunOnce tek bir turu senkron çalıştırır ve silinen kayıt sayısını döndürür.
// Kilit başka örnekteyse ya da alınamazsa tur atlanır.
func (p *PurgeSweeper) RunOnce(ctx context.Context) int64 {
	if p.locker == nil {
		return p.runner.PurgeSweep(ctx)
	}

	lock, ok, err := p.locker.TryLock(ctx, purgeLockName, p.timeout)
	if err != nil {
		configslog.Log.Warn("Temizlik kilidi alınamadı, tur atlanıyor", zap.Error(err))
		return 0
	}
	if !ok {
		configslog.SLog.Debug("Temizlik kilidi başka bir örnekte, tur atlanıyor")
		return 0
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil {
			configslog.Log.Warn("Temizlik kilidi bırakılamadı", zap.Error(err))
		}
	}()
	return p.runner.PurgeSweep(ctx)
}

// cronLogger cron.Logger arayüzünü zap üzerinden uygular.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	configslog.SLog.Debugw("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	configslog.SLog.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
