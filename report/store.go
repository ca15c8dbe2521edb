package report

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"techatlas/common"
	"techatlas/config"
)

// objectArchive is the narrow slice of the S3 wrapper the store needs.
type objectArchive interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// Store persists rendered reports to the local reports directory and,
// when configured, mirrors them to S3. The S3 archive is best effort:
// an upload failure never fails the analysis that produced the report.
type Store struct {
	dir      string
	archive  objectArchive
	bucket   string
	s3Prefix string
}

// NewStore creates a report store rooted at dir. S3 archiving is enabled
// when REPORTS_S3_BUCKET is set and the AWS config chain resolves; on any
// setup failure it logs a warning and stays local only.
func NewStore(ctx context.Context, dir string) *Store {
	if dir == "" {
		dir = config.ReportsDir
	}
	st := &Store{dir: dir}

	bucket := os.Getenv("REPORTS_S3_BUCKET")
	if bucket == "" {
		return st
	}
	s3c, err := common.NewS3(ctx, common.S3Config{
		Region:  os.Getenv("AWS_REGION"),
		Profile: os.Getenv("AWS_PROFILE"),
	})
	if err != nil {
		log.Printf("Warning: S3 report archive disabled: %v", err)
		return st
	}
	st.archive = s3c
	st.bucket = bucket
	st.s3Prefix = strings.Trim(os.Getenv("REPORTS_S3_PREFIX"), "/")
	log.Printf("S3 report archive enabled (bucket %s)", bucket)
	return st
}

// Save writes the report locally and mirrors it to S3 when configured.
// Returns the bare filename usable for download lookups.
func (st *Store) Save(ctx context.Context, filename, body string) (string, error) {
	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports dir: %w", err)
	}
	path := filepath.Join(st.dir, filename)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	log.Printf("Saved report %s (%d bytes)", path, len(body))

	if st.archive != nil {
		key := filename
		if st.s3Prefix != "" {
			key = st.s3Prefix + "/" + filename
		}
		exists, err := st.archive.Exists(ctx, st.bucket, key)
		if err != nil {
			log.Printf("Warning: failed to check report archive: %v", err)
		}
		if exists {
			log.Printf("Report %s already archived, skipping upload", key)
		} else if err := st.archive.Put(ctx, st.bucket, key, strings.NewReader(body), "text/markdown"); err != nil {
			log.Printf("Warning: failed to archive report to S3: %v", err)
		}
	}
	return filename, nil
}

// Open returns the path of a stored report, rejecting names that would
// escape the reports directory.
func (st *Store) Open(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return "", fmt.Errorf("invalid report filename")
	}
	path := filepath.Join(st.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("report not found: %w", err)
	}
	return path, nil
}

// Dir returns the local reports directory.
func (st *Store) Dir() string { return st.dir }
