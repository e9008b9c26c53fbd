package source

import (
	"context"
	"fmt"
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Source reads a whole S3 object into memory, the way the teacher CLI
// fetched archive bytes before handing them to a decoder.
type S3Source struct {
	Bucket string
	Key    string
	client *s3.S3
}

// NewS3Source creates an S3-backed Source, expecting the environment to
// configure AWS credentials and region (shared config state).
func NewS3Source(bucket, key string) (*S3Source, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("source: creating AWS session: %w", err)
	}
	return &S3Source{
		Bucket: bucket,
		Key:    key,
		client: s3.New(sess),
	}, nil
}

// Load implements Source. It fetches the whole object: unlike the
// teacher's FileExtractor, this decoder parses from a single in-memory
// buffer and needs local file header bytes reachable at their recorded
// offsets, so a partial, directory-only range fetch can't serve it.
func (s *S3Source) Load(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: &s.Bucket,
		Key:    &s.Key,
	})
	if err != nil {
		return nil, fmt.Errorf("source: fetching s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	defer out.Body.Close()
	return ioutil.ReadAll(out.Body)
}
