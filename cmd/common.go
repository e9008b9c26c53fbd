package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/alec-rabold/zipvault/pkg/source"
	"github.com/alec-rabold/zipvault/zip"
)

// loadReader resolves the configured source (--file, or --bucket/--key)
// into a loaded zip.Reader. It is the one place cmd/ reads archive bytes;
// every subcommand calls it then reads entries only from the in-memory
// Reader (extract and extract-dir may still write their output to disk).
func loadReader() (*zip.Reader, error) {
	ctx := context.Background()

	var buf []byte
	switch {
	case archiveFile != "":
		buf2, err := source.NewFileSource(archiveFile).Load(ctx)
		if err != nil {
			log.Errorf("error reading archive file (path: %s), err: %v", archiveFile, err)
			return nil, err
		}
		buf = buf2
	case bucket != "" && key != "":
		s3src, err := source.NewS3Source(bucket, key)
		if err != nil {
			log.Errorf("error creating S3 source (bucket: %s)(key: %s), err: %v", bucket, key, err)
			return nil, err
		}
		buf2, err := s3src.Load(ctx)
		if err != nil {
			log.Errorf("error reading archive from S3 (bucket: %s)(key: %s), err: %v", bucket, key, err)
			return nil, err
		}
		buf = buf2
	default:
		return nil, fmt.Errorf("must specify --file, or both --bucket and --key")
	}

	r, err := zip.Load(buf)
	if err != nil {
		log.Errorf("error loading zip archive, err: %v", err)
		return nil, err
	}
	return r, nil
}
