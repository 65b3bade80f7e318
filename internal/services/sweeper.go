package services

import (
	"context"
	"fmt"
	"time"

	"gestaotemplate/internal/models"
	"gestaotemplate/internal/utils/logger"

	"gorm.io/gorm"
)

// SweepTarget is an entity whose uploads live in Folder and are referenced
// from Columns of Table.
type SweepTarget struct {
	Table   string
	Folder  string
	Columns []string
}

// SweepResult summarises one sweep run.
type SweepResult struct {
	Scanned int `json:"scanned"`
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// Sweeper removes stored files that no row references anymore. Files newer
// than Grace are kept so an upload whose row is still being written is not
// taken.
type Sweeper struct {
	db      *gorm.DB
	storage Storage
	targets []SweepTarget
	grace   time.Duration
	now     func() time.Time
	logger  *logger.Logger
}

func NewSweeper(db *gorm.DB, storage Storage, targets []SweepTarget, grace time.Duration) *Sweeper {
	return &Sweeper{
		db:      db,
		storage: storage,
		targets: targets,
		grace:   grace,
		now:     time.Now,
		logger:  logger.New("sweeper"),
	}
}

// Sweep scans every store, or only lojaID when it is set.
func (s *Sweeper) Sweep(ctx context.Context, lojaID string) (SweepResult, error) {
	var result SweepResult

	var lojas []models.Loja
	q := s.db.WithContext(ctx).Select("id", "pasta")
	if lojaID != "" {
		q = q.Where("id = ?", lojaID)
	}
	if err := q.Find(&lojas).Error; err != nil {
		return result, fmt.Errorf("list lojas: %w", err)
	}

	cutoff := s.now().Add(-s.grace)
	for _, loja := range lojas {
		for _, target := range s.targets {
			if err := s.sweepTarget(ctx, loja, target, cutoff, &result); err != nil {
				return result, err
			}
		}
	}

	s.logger.Info("Sweep finished: scanned=%d deleted=%d failed=%d", result.Scanned, result.Deleted, result.Failed)
	return result, nil
}

func (s *Sweeper) sweepTarget(ctx context.Context, loja models.Loja, target SweepTarget, cutoff time.Time, result *SweepResult) error {
	objects, err := s.storage.List(ctx, EntityFolder(loja.Pasta, target.Folder))
	if err != nil {
		return fmt.Errorf("list %s/%s: %w", loja.Pasta, target.Folder, err)
	}
	if len(objects) == 0 {
		return nil
	}

	referenced := map[string]struct{}{}
	for _, col := range target.Columns {
		var keys []string
		err := s.db.WithContext(ctx).Table(target.Table).
			Where("loja_id = ? AND "+col+" IS NOT NULL", loja.ID).
			Pluck(col, &keys).Error
		if err != nil {
			return fmt.Errorf("pluck %s.%s: %w", target.Table, col, err)
		}
		for _, k := range keys {
			referenced[k] = struct{}{}
		}
	}

	var orphans []string
	for _, obj := range objects {
		result.Scanned++
		if _, ok := referenced[obj.Key]; ok {
			continue
		}
		if obj.ModTime.After(cutoff) {
			continue
		}
		orphans = append(orphans, obj.Key)
	}

	failed := deleteQuietly(ctx, s.storage, orphans)
	result.Failed += len(failed)
	result.Deleted += len(orphans) - len(failed)
	return nil
}
