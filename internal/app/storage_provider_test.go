package app

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
	"github.com/yungbote/cablehouse-backend/internal/platform/objectstore"
)

func TestResolveBackupStoreModes(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	store, err := resolveBackupStore(ctx, log, BackupConfig{})
	if err != nil || store != nil {
		t.Fatalf("disabled: store=%v err=%v", store, err)
	}

	store, err = resolveBackupStore(ctx, log, BackupConfig{Mode: "memory"})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if store.Driver() != objectstore.DriverMemory {
		t.Fatalf("memory: driver=%s", store.Driver())
	}
}

func TestResolveBackupStoreErrors(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	cases := []struct {
		name string
		cfg  BackupConfig
		code StorageProviderBootstrapErrorCode
	}{
		{"invalid mode", BackupConfig{Mode: "gcs"}, StorageProviderBootstrapErrorInvalidMode},
		{"missing bucket", BackupConfig{Mode: "s3"}, StorageProviderBootstrapErrorMissingBucket},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolveBackupStore(ctx, log, tc.cfg)
			var got *StorageProviderBootstrapError
			if !errors.As(err, &got) {
				t.Fatalf("expected StorageProviderBootstrapError, got=%T", err)
			}
			if got.Code != tc.code {
				t.Fatalf("code: want=%q got=%q", tc.code, got.Code)
			}
		})
	}
}

func TestResolveBackupStoreConnectFailed(t *testing.T) {
	orig := newS3Store
	t.Cleanup(func() { newS3Store = orig })
	cause := errors.New("no credentials")
	newS3Store = func(context.Context, objectstore.S3Config) (objectstore.Store, error) {
		return nil, cause
	}

	_, err := resolveBackupStore(context.Background(), logger.NewNop(), BackupConfig{Mode: "s3", Bucket: "nightly"})
	var got *StorageProviderBootstrapError
	if !errors.As(err, &got) {
		t.Fatalf("expected StorageProviderBootstrapError, got=%T", err)
	}
	if got.Code != StorageProviderBootstrapErrorConnectFailed || !errors.Is(err, cause) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveBackupStoreS3(t *testing.T) {
	store, err := resolveBackupStore(context.Background(), logger.NewNop(), BackupConfig{
		Mode:      "s3",
		Bucket:    "nightly",
		Region:    "eu-west-1",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	if err != nil {
		t.Fatalf("s3: %v", err)
	}
	if store.Driver() != objectstore.DriverS3 {
		t.Fatalf("driver: %s", store.Driver())
	}
}
