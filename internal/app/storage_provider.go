package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/platform/objectstore"
)

type backupMode string

const (
	backupModeDisabled backupMode = ""
	backupModeS3       backupMode = "s3"
	backupModeMemory   backupMode = "memory"
)

var newS3Store = func(ctx context.Context, cfg objectstore.S3Config) (objectstore.Store, error) {
	return objectstore.NewS3(ctx, cfg)
}

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidMode   StorageProviderBootstrapErrorCode = "invalid_mode"
	StorageProviderBootstrapErrorMissingBucket StorageProviderBootstrapErrorCode = "missing_bucket"
	StorageProviderBootstrapErrorConnectFailed StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code   StorageProviderBootstrapErrorCode
	Mode   string
	Bucket string
	Cause  error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "backup storage bootstrap failed"
	}
	return fmt.Sprintf(
		"backup storage bootstrap failed (code=%s mode=%q bucket=%q): %v",
		e.Code,
		e.Mode,
		e.Bucket,
		e.Cause,
	)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveBackupStore returns a nil Store when backups are disabled.
func resolveBackupStore(ctx context.Context, log *logger.Logger, cfg BackupConfig) (objectstore.Store, error) {
	mode := backupMode(strings.ToLower(strings.TrimSpace(cfg.Mode)))
	switch mode {
	case backupModeDisabled:
		log.Info("Backup storage disabled")
		return nil, nil
	case backupModeMemory:
		log.Warn("Backup storage is in-memory; snapshots are lost on restart")
		return objectstore.NewMemory(), nil
	case backupModeS3:
	default:
		err := &StorageProviderBootstrapError{
			Code:   StorageProviderBootstrapErrorInvalidMode,
			Mode:   cfg.Mode,
			Bucket: cfg.Bucket,
			Cause:  fmt.Errorf("unsupported backup mode %q", cfg.Mode),
		}
		log.Error("Backup storage selection failed", "mode", cfg.Mode, "error_code", err.Code, "error", err)
		return nil, err
	}

	if strings.TrimSpace(cfg.Bucket) == "" {
		err := &StorageProviderBootstrapError{
			Code:  StorageProviderBootstrapErrorMissingBucket,
			Mode:  cfg.Mode,
			Cause: errors.New("BACKUP_S3_BUCKET is required for s3 mode"),
		}
		log.Error("Backup storage selection failed", "mode", cfg.Mode, "error_code", err.Code, "error", err)
		return nil, err
	}

	log.Info(
		"Selecting backup storage provider",
		"mode", mode,
		"bucket", cfg.Bucket,
		"region", cfg.Region,
		"endpoint", cfg.Endpoint,
	)
	store, err := newS3Store(ctx, objectstore.S3Config{
		Bucket:          cfg.Bucket,
		Region:          cfg.Region,
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKey,
		SecretAccessKey: cfg.SecretKey,
		PathStyle:       cfg.PathStyle,
	})
	if err != nil {
		classified := &StorageProviderBootstrapError{
			Code:   StorageProviderBootstrapErrorConnectFailed,
			Mode:   cfg.Mode,
			Bucket: cfg.Bucket,
			Cause:  err,
		}
		log.Error("Backup storage bootstrap failed", "mode", mode, "bucket", cfg.Bucket, "error_code", classified.Code, "error", err)
		return nil, classified
	}
	return store, nil
}
