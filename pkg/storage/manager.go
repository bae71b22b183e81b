package storage

import (
	"fmt"
	"sync"

	"github.com/shashiranjanraj/tokri/config"
	"github.com/shashiranjanraj/tokri/pkg/logger"
)

var (
	managerMu sync.RWMutex
	disks     = map[string]Disk{}
)

// Connect boots the storage manager. Call once at application startup.
// The local disk is always available; the S3 disk only when S3_BUCKET is
// configured.
func Connect() error {
	local, err := newLocalDisk(LocalRoot(), config.StorageURL())
	if err != nil {
		return err
	}

	managerMu.Lock()
	disks["local"] = local
	managerMu.Unlock()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			managerMu.Lock()
			disks["s3"] = d
			managerMu.Unlock()
		}
	}

	return nil
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// Has reports whether the named disk was booted.
func Has(name string) bool {
	managerMu.RLock()
	_, ok := disks[name]
	managerMu.RUnlock()
	return ok
}

// RegisterDisk plugs in a custom Disk implementation (used by tests).
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}
