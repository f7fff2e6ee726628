package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/irvandi/gotoko/internal/domain"
	"github.com/irvandi/gotoko/internal/uploads"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// orphanGracePeriod is how long an uploaded file may sit unreferenced
// before the sweeper treats it as leaked. A create request commits its
// file moments before the row insert, so a fresh file is never swept.
const orphanGracePeriod = time.Hour

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithParser(cronParser), cron.WithLocation(loc))

	_, err = a.sched.AddFunc("@every 1h", func() {
		a.sweepOrphanUploads(orphanGracePeriod)
	})
	if err != nil {
		zap.S().Errorf("failed to register upload sweep job: %v", err)
	}

	a.sched.Start()
}

// sweepOrphanUploads removes files in the upload directory that are older
// than grace and are not referenced by any produk row. These accumulate
// when an insert fails after its image was already written.
func (a *Application) sweepOrphanUploads(grace time.Duration) {
	if a.uploadStore == nil {
		return
	}
	entries, err := os.ReadDir(a.uploadStore.Dir())
	if err != nil {
		zap.L().Error("upload sweep: read dir failed", zap.Error(err))
		return
	}

	cutoff := time.Now().Add(-grace)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		ref := uploads.Prefix + "/" + entry.Name()
		var count int64
		if err := a.gormDB.Model(&domain.Produk{}).Where("image_url = ?", ref).Count(&count).Error; err != nil {
			zap.L().Error("upload sweep: reference query failed", zap.String("ref", ref), zap.Error(err))
			continue
		}
		if count > 0 {
			continue
		}

		if err := os.Remove(filepath.Join(a.uploadStore.Dir(), entry.Name())); err != nil {
			zap.L().Error("upload sweep: remove failed", zap.String("ref", ref), zap.Error(err))
			continue
		}
		zap.L().Info("upload sweep: removed orphan file", zap.String("ref", ref))
	}
}
