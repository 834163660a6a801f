package launcher

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/mlperf-bench/launcher/pkg/fileutil"
)

// uploader is the S3 surface the launcher needs; narrowed for tests.
type uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// uploadArtifacts uploads the benchmark log file and results CSV to the
// configured S3 bucket under the S3Dir prefix.
func (ln *Launcher) uploadArtifacts(ctx context.Context) error {
	if ln.s3Uploader == nil {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(ln.cfg.Region))
		if err != nil {
			return fmt.Errorf("failed to load AWS config (%v)", err)
		}
		ln.s3Uploader = s3.NewFromConfig(awsCfg)
	}

	for _, fpath := range []string{ln.cfg.LogFilePath, ln.cfg.ResultsCSVPath} {
		if !fileutil.Exist(fpath) {
			continue
		}
		if err := ln.upload(ctx, fpath); err != nil {
			return err
		}
	}
	return nil
}

func (ln *Launcher) upload(ctx context.Context, fpath string) error {
	f, err := os.Open(fpath)
	if err != nil {
		return fmt.Errorf("open(%q): %v", fpath, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}

	key := path.Join(ln.cfg.S3Dir, filepath.Base(fpath))
	_, err = ln.s3Uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(ln.cfg.S3BucketName),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %q to s3://%s/%s (%v)", fpath, ln.cfg.S3BucketName, key, err)
	}

	ln.lg.Info("uploaded artifact",
		zap.String("bucket", ln.cfg.S3BucketName),
		zap.String("key", key),
		zap.String("size", humanize.Bytes(uint64(st.Size()))),
	)
	return nil
}
