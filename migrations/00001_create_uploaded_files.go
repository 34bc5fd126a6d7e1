package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUploadedFiles, downCreateUploadedFiles)
}

func upCreateUploadedFiles(ctx context.Context, tx *sql.Tx) error {
	createTable := `
	CREATE TABLE IF NOT EXISTS uploaded_files (
		id UUID PRIMARY KEY,
		filename VARCHAR(255) NOT NULL,
		content_type VARCHAR(255),
		s3_key VARCHAR(1024) NOT NULL,
		upload_id VARCHAR(1024),
		bucket_name VARCHAR(255),
		size_bytes BIGINT,
		uploaded_by VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	if _, err := tx.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("could not create uploaded_files table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_uploaded_files_upload_id ON uploaded_files (upload_id);`,
		`CREATE INDEX IF NOT EXISTS idx_uploaded_files_status_created_at ON uploaded_files (status, created_at);`,
	}
	for _, stmt := range indexes {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not create index: %w", err)
		}
	}
	return nil
}

func downCreateUploadedFiles(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS uploaded_files;`); err != nil {
		return fmt.Errorf("could not drop table uploaded_files: %w", err)
	}
	return nil
}
