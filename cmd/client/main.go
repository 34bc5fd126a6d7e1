package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"multipart-uploader/internal/domain/dto"
	"multipart-uploader/pkg/helper"
)

const LIMIT = 5

func main() {
	server := flag.String("server", "http://localhost:8080", "Server base URL")
	filePath := flag.String("file", "", "Path of the file to upload")
	token := flag.String("token", "", "Bearer token; when empty the client logs in")
	username := flag.String("username", "admin", "Login username")
	password := flag.String("password", os.Getenv("UPLOADER_PASSWORD"), "Login password (default $UPLOADER_PASSWORD)")
	partSizeMB := flag.Int64("part-size-mb", 5, "Part size in MB; must match the server's S3_PART_SIZE_MB")
	concurrency := flag.Int("concurrency", LIMIT, "Parts uploaded in parallel")
	verify := flag.Bool("verify-etag", true, "Check each part ETag against its local MD5")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("-file is required")
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		log.Fatalf("stat file: %v", err)
	}

	filename := filepath.Base(stat.Name())
	contentType, ok := helper.GetMimeTypeFromExtension(filename)
	if !ok {
		log.Fatalf("file extension not allowed: %q", helper.FileExtension(filename))
	}
	partSize := *partSizeMB * 1024 * 1024

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: 10 * time.Minute}
	api := newAPIClient(*server, httpClient)
	if *token != "" {
		api.token = *token
	} else if err := api.Login(ctx, *username, *password); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Server: %s\n", *server)
	fmt.Printf("File: %s (%d bytes, %s)\n", filename, stat.Size(), contentType)

	session, err := api.Initiate(ctx, dto.MultipartUploadRequestDTO{
		Filename:      filename,
		FileSizeBytes: stat.Size(),
		ContentType:   contentType,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Key: %s\nUpload ID: %s\nParts: %d x %d bytes\n", session.Key, session.UploadID, len(session.URLs), partSize)
	fmt.Println("Press Ctrl+C to cancel...")

	progress := NewUploadProgress(len(session.URLs))
	done := make(chan struct{})
	go reportProgress(progress, done)

	uploader := &partUploader{
		http:        httpClient,
		concurrency: *concurrency,
		verifyETag:  *verify,
		progress:    progress,
	}
	parts, err := uploader.UploadParts(ctx, f, stat.Size(), partSize, session.URLs)
	close(done)

	uploaded, failed, total := progress.GetProgress()
	fmt.Printf("\nParts uploaded: %d/%d, %d failed, %.1f MB/s\n", uploaded, total, failed, progress.Throughput()/1024/1024)
	if err != nil {
		log.Fatalf("upload aborted: %v", err)
	}

	fmt.Println("Completing upload...")
	if err := api.Complete(ctx, dto.CompleteUploadRequestDTO{Key: session.Key, UploadID: session.UploadID, Parts: parts}); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Upload completed: %s\n", session.Key)
}

func reportProgress(progress *UploadProgress, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			uploaded, failed, total := progress.GetProgress()
			if uploaded+failed > 0 {
				fmt.Printf("\rProgress: %d/%d done, %d failed", uploaded, total, failed)
			}
		}
	}
}
