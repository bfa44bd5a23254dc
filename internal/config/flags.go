package config

import (
	"flag"
	"os"
	"time"

	"github.com/ruchira-b/ETL-pipeline/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-u string   S3 access key id
//	-p string   S3 secret access key
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-k string   upload key prefix
//	-n string   user id attached to uploads and queries
//	-f string   local folder with image files to submit
//	-o string   JSON report export path
//	-m int      max items attempted per batch
//	-w int      max completion wait, seconds
//	-i int      poll interval, seconds
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in seconds and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-u", "-p", "-b", "-g", "-e", "-k", "-n", "-f", "-o", "-m", "-w", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.S3AccessKeyID, "u", config.S3AccessKeyID, "S3 access key id")
	fs.StringVar(&config.S3SecretAccessKey, "p", config.S3SecretAccessKey, "S3 secret access key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.UploadPrefix, "k", config.UploadPrefix, "upload key prefix")
	fs.StringVar(&config.UserID, "n", config.UserID, "user id")
	fs.StringVar(&config.DataDir, "f", config.DataDir, "image folder")
	fs.StringVar(&config.ExportFile, "o", config.ExportFile, "JSON export path")
	fs.IntVar(&config.MaxBatchSize, "m", config.MaxBatchSize, "max items per batch")

	maxWait := fs.Int("w", int(config.MaxWait.Seconds()), "max completion wait (in seconds)")
	pollInterval := fs.Int("i", int(config.PollInterval.Seconds()), "poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.MaxWait = time.Duration(*maxWait) * time.Second
	config.PollInterval = time.Duration(*pollInterval) * time.Second
}
