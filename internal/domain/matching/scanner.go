package matching

import (
	"context"
	"fmt"
	"time"

	"pet-lost-found/internal/domain/reports"
	"pet-lost-found/internal/ports/lock"
)

// ScanLockKey es la clave del lock de scan; el Locker le agrega su propio prefijo.
const ScanLockKey = "scan"

const scanLockTTL = 10 * time.Minute

// ScanSummary resume una corrida batch.
type ScanSummary struct {
	Scanned  int
	Created  int
	Skipped  int // pares con match previo
	Failed   int
	Locked   bool // otro proceso tenía el lock; no se escaneó
	Duration time.Duration
}

// Scanner recorre todos los lost reports activos y crea matches con sus mejores candidatos.
type Scanner struct {
	engine  *Engine
	matches Repository
	locker  lock.Locker
}

// NewScanner: locker puede ser nil (sin protección entre procesos).
func NewScanner(engine *Engine, matchRepo Repository, locker lock.Locker) *Scanner {
	return &Scanner{engine: engine, matches: matchRepo, locker: locker}
}

// Run hace una pasada completa. Un reporte que falla (error o panic) se loguea y se saltea.
func (s *Scanner) Run(ctx context.Context) (ScanSummary, error) {
	var sum ScanSummary
	start := time.Now()
	log := s.engine.log

	if s.locker != nil {
		release, ok, err := s.locker.TryLock(ctx, ScanLockKey, scanLockTTL)
		if err != nil {
			s.engine.metrics.ScanRun("error")
			return sum, fmt.Errorf("acquire scan lock: %w", err)
		}
		if !ok {
			sum.Locked = true
			s.engine.metrics.ScanRun("locked")
			log.Info("scan skipped, lock held elsewhere", nil)
			return sum, nil
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				log.Warn("release scan lock failed", map[string]any{"error": err})
			}
		}()
	}

	lost, err := s.engine.reports.ListLost(ctx, reports.LostFilter{Status: reports.StatusActive})
	if err != nil {
		s.engine.metrics.ScanRun("error")
		return sum, err
	}

	for _, lr := range lost {
		// corte solo entre reportes: el que está en curso termina
		if err := ctx.Err(); err != nil {
			s.engine.metrics.ScanRun("cancelled")
			sum.Duration = time.Since(start)
			return sum, err
		}
		sum.Scanned++

		created, skipped, err := s.scanOne(ctx, lr)
		sum.Created += created
		sum.Skipped += skipped
		if err != nil {
			sum.Failed++
			s.engine.metrics.ScanItemFailed()
			log.Error("scan item failed", map[string]any{"lost_report_id": lr.ID, "error": err})
		}
	}

	sum.Duration = time.Since(start)
	s.engine.metrics.ScanRun("ok")
	log.Info("scan finished", map[string]any{
		"scanned": sum.Scanned, "created": sum.Created, "skipped": sum.Skipped,
		"failed": sum.Failed, "duration_ms": sum.Duration.Milliseconds(),
	})
	return sum, nil
}

func (s *Scanner) scanOne(ctx context.Context, lost reports.LostReport) (created, skipped int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	cands, err := s.engine.finder.FindForLost(ctx, lost, s.engine.policy.MinScore)
	if err != nil {
		return 0, 0, err
	}
	if len(cands) > s.engine.policy.ScanTopN {
		cands = cands[:s.engine.policy.ScanTopN]
	}

	for _, c := range cands {
		exists, err := s.matches.Exists(ctx, c.Lost.ID, c.Found.ID)
		if err != nil {
			return created, skipped, err
		}
		if exists {
			skipped++
			continue
		}
		_, isNew, err := s.engine.link(ctx, c.Lost, c.Found, triggerScan)
		if isNew {
			created++
		}
		if err != nil {
			return created, skipped, err
		}
	}
	return created, skipped, nil
}
