package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ruchira-b/ETL-pipeline/internal/flagx"
	"github.com/ruchira-b/ETL-pipeline/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "3s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	DatabaseDSN       string         `json:"database_dsn"`
	S3AccessKeyID     string         `json:"s3_access_key_id"`
	S3SecretAccessKey string         `json:"s3_secret_access_key"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3BaseEndpoint    string         `json:"s3_base_endpoint"`
	UploadPrefix      string         `json:"upload_prefix"`
	ProjectTag        string         `json:"project_tag"`
	UserID            string         `json:"user_id"`
	DataDir           string         `json:"data_dir"`
	ExportFile        string         `json:"export_file"`
	MaxBatchSize      int            `json:"max_batch_size"`
	UploadWorkers     int            `json:"upload_workers"`
	MaxWait           timex.Duration `json:"max_wait"`
	PollInterval      timex.Duration `json:"poll_interval"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
//
// Only fields present in the file override the current values, so the JSON
// overlay composes with defaults and with the flag overlay applied after it.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.S3AccessKeyID != "" {
		config.S3AccessKeyID = c.S3AccessKeyID
	}
	if c.S3SecretAccessKey != "" {
		config.S3SecretAccessKey = c.S3SecretAccessKey
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.UploadPrefix != "" {
		config.UploadPrefix = c.UploadPrefix
	}
	if c.ProjectTag != "" {
		config.ProjectTag = c.ProjectTag
	}
	if c.UserID != "" {
		config.UserID = c.UserID
	}
	if c.DataDir != "" {
		config.DataDir = c.DataDir
	}
	if c.ExportFile != "" {
		config.ExportFile = c.ExportFile
	}
	if c.MaxBatchSize != 0 {
		config.MaxBatchSize = c.MaxBatchSize
	}
	if c.UploadWorkers != 0 {
		config.UploadWorkers = c.UploadWorkers
	}
	if c.MaxWait.Duration != 0 {
		config.MaxWait = time.Duration(c.MaxWait.Duration)
	}
	if c.PollInterval.Duration != 0 {
		config.PollInterval = time.Duration(c.PollInterval.Duration)
	}
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	}
}
