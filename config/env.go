// Package config loads process configuration for tokri.
//
// Values are resolved in increasing precedence:
//
//	built-in defaults  <  config/app.json  <  .env  <  process environment
//
// Call config.Load() once at startup; every accessor calls it lazily so
// tests and CLI subcommands work without explicit bootstrapping.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultMongoURL     = "mongodb://localhost:27017"
	defaultMongoDB      = "tokri"
	defaultRedisAddr    = "localhost:6379"
	defaultAppPort      = "10000"
	defaultAppEnv       = "local"
	defaultStrategy     = "inline"
	defaultUploadBytes  = 5 << 20 // 5 MB, same cap the public API documents
	defaultStorageRoot  = "uploads"
	defaultCacheSeconds = 300
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

// Reload re-reads every config source, including the process environment.
// Load snapshots the sources once; tests that change the environment after
// the first accessor call use Reload to make the change visible.
func Reload() error {
	return loadFromFiles("config/app.json", ".env")
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_PORT":           defaultAppPort,
		"APP_ENV":            defaultAppEnv,
		"MONGO_URL":          defaultMongoURL,
		"MONGO_DB":           defaultMongoDB,
		"IMAGE_STRATEGY":     defaultStrategy,
		"MAX_UPLOAD_BYTES":   strconv.Itoa(defaultUploadBytes),
		"STORAGE_LOCAL_ROOT": defaultStorageRoot,
		"STORAGE_URL":        "",
		"REDIS_ADDR":         defaultRedisAddr,
		"REDIS_PASSWORD":     "",
		"CACHE_TTL_SECONDS":  strconv.Itoa(defaultCacheSeconds),
		"LOG_MONGO":          "",
	}
}

// ── Typed accessors ──────────────────────────────────────────────────────────

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func MongoURL() string {
	_ = Load()
	return get("MONGO_URL", defaultMongoURL)
}

func MongoDB() string {
	_ = Load()
	return get("MONGO_DB", defaultMongoDB)
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// ImageStrategy names the deployment-selected image ingestion strategy:
// "inline", "disk" or "s3". Unknown values fall back to "inline".
func ImageStrategy() string {
	_ = Load()

	s := strings.ToLower(get("IMAGE_STRATEGY", defaultStrategy))
	switch s {
	case "inline", "disk", "s3":
		return s
	default:
		return defaultStrategy
	}
}

// MaxUploadBytes is the hard cap applied to multipart image uploads.
func MaxUploadBytes() int64 {
	_ = Load()

	n, err := strconv.ParseInt(get("MAX_UPLOAD_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultUploadBytes
	}
	return n
}

func CacheTTL() time.Duration {
	_ = Load()

	n, err := strconv.Atoi(get("CACHE_TTL_SECONDS", ""))
	if err != nil || n <= 0 {
		n = defaultCacheSeconds
	}
	return time.Duration(n) * time.Second
}

// MongoLogEnabled reports whether the async MongoDB slog sink should run.
func MongoLogEnabled() bool {
	_ = Load()

	switch strings.ToLower(get("LOG_MONGO", "")) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageLocalRoot() string {
	_ = Load()
	return get("STORAGE_LOCAL_ROOT", defaultStorageRoot)
}

func StorageURL() string {
	_ = Load()
	return get("STORAGE_URL", "")
}

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// ── Loader internals ─────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	// Process environment wins over everything on disk.
	mergeEnviron(loaded)

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func mergeEnviron(out map[string]string) {
	for key := range out {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			out[key] = strings.TrimSpace(v)
		}
	}
	// Pick up keys that have no default entry, e.g. S3_BUCKET.
	for _, kv := range os.Environ() {
		if idx := strings.IndexByte(kv, '='); idx > 0 {
			key := kv[:idx]
			if strings.HasPrefix(key, "S3_") || strings.HasPrefix(key, "STORAGE_") {
				out[key] = strings.TrimSpace(kv[idx+1:])
			}
		}
	}
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env, app.json and the environment are available after Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
