package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"clinic-directory/internal/domain/repository"
	"clinic-directory/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Timeout for one refresh of the clinic list cache
const cacheWarmTimeout = 5 * time.Second

// CacheWarmService keeps the unfiltered clinic list in Redis so the first
// directory load after a deploy does not hit the database. Call Stop during
// graceful shutdown.
type CacheWarmService struct {
	db         *gorm.DB
	log        *logrus.Logger
	clinicRepo repository.ClinicRepository
	cache      cache.ClinicCache
	interval   time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	started  atomic.Bool
	stopped  atomic.Bool
}

func NewCacheWarmService(db *gorm.DB, log *logrus.Logger, clinicRepo repository.ClinicRepository, clinicCache cache.ClinicCache, interval time.Duration) *CacheWarmService {
	return &CacheWarmService{
		db:         db,
		log:        log,
		clinicRepo: clinicRepo,
		cache:      clinicCache,
		interval:   interval,
		stopChan:   make(chan struct{}),
	}
}

// Warm loads every clinic from PostgreSQL into the cache.
func (s *CacheWarmService) Warm(ctx context.Context) error {
	startTime := time.Now()

	generation, err := s.cache.Generation(ctx)
	if err != nil {
		s.log.Warnf("Failed to read clinic cache generation: %+v", err)
		return err
	}

	clinics, err := s.clinicRepo.FindAll(s.db.WithContext(ctx), nil)
	if err != nil {
		s.log.Warnf("Failed to load clinics for cache warm: %+v", err)
		return fmt.Errorf("load clinics: %w", err)
	}

	err = s.cache.SetAll(ctx, generation, clinics)
	if errors.Is(err, cache.ErrGenerationChanged) {
		// A create landed during the read; the next reader fills the cache.
		s.log.Debug("Clinic cache changed during warm, skipping write")
		return nil
	}
	if err != nil {
		s.log.Warnf("Failed to warm clinic cache: %+v", err)
		return err
	}

	s.log.Infof("Clinic cache warmed: %d clinics in %v", len(clinics), time.Since(startTime))
	return nil
}

// Start refreshes the cache every interval until Stop is called. An interval of
// zero disables the loop.
func (s *CacheWarmService) Start() {
	if s.interval <= 0 || !s.started.CompareAndSwap(false, true) {
		return
	}
	s.wg.Add(1)
	go s.refreshLoop()
}

// Stop is safe to call multiple times.
func (s *CacheWarmService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("CacheWarmService stopped")
	}
}

func (s *CacheWarmService) refreshLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Cache refresh goroutine stopping")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), cacheWarmTimeout)
			_ = s.Warm(ctx)
			cancel()
		}
	}
}
