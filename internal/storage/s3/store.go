// Package s3 implements the storage.Store contract over an S3-compatible
// bucket (MinIO in development). The folder hierarchy is modeled with "/"
// delimited key prefixes: a folder handle is its full prefix, a file handle
// is its object key.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
	"github.com/dmitrijs2005/ssrdocs/internal/storage"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*awss3.Options)) *awss3.Client {
		return awss3.NewFromConfig(cfg, optFns...)
	}
)

// API is the subset of the S3 client the store uses. *s3.Client satisfies it.
type API interface {
	ListObjectsV2(ctx context.Context, in *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, in *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
}

// Store reads a folder tree from a single bucket.
type Store struct {
	client API
	bucket string
}

// Options carries the connection settings for an S3-compatible endpoint.
type Options struct {
	User         string
	Password     string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// New builds a Store from endpoint options, using static credentials and a
// custom base endpoint (MINIO_ROOT_USER / MINIO_ROOT_PASSWORD style).
func New(ctx context.Context, opts Options) (*Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.User,
			opts.Password,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *awss3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &Store{client: client, bucket: opts.Bucket}, nil
}

// NewWithClient wires an existing client, used in tests.
func NewWithClient(client API, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// normalizePrefix turns a folder handle into a listing prefix. The root
// folder is the empty handle.
func normalizePrefix(folderID string) string {
	if folderID == "" || folderID == "/" {
		return ""
	}
	return strings.TrimSuffix(folderID, "/") + "/"
}

func (s *Store) listPage(ctx context.Context, prefix, token string) (*awss3.ListObjectsV2Output, error) {
	in := &awss3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	}
	if token != "" {
		in.ContinuationToken = aws.String(token)
	}

	out, err := s.client.ListObjectsV2(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%w: s3 list %q: %v", common.ErrUnavailable, prefix, err)
	}
	return out, nil
}

func (s *Store) SearchChildren(ctx context.Context, parentID, nameFilter string) ([]storage.Folder, error) {
	prefix := normalizePrefix(parentID)
	filter := strings.ToLower(nameFilter)

	var folders []storage.Folder
	token := ""
	for {
		out, err := s.listPage(ctx, prefix, token)
		if err != nil {
			return nil, err
		}

		for _, cp := range out.CommonPrefixes {
			full := aws.ToString(cp.Prefix)
			name := path.Base(strings.TrimSuffix(full, "/"))
			if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
				continue
			}
			folders = append(folders, storage.Folder{ID: full, Name: name, ParentID: parentID})
		}

		if !aws.ToBool(out.IsTruncated) {
			return folders, nil
		}
		token = aws.ToString(out.NextContinuationToken)
	}
}

func (s *Store) ListFolders(ctx context.Context, parentID string) ([]storage.Folder, error) {
	return s.SearchChildren(ctx, parentID, "")
}

func (s *Store) ListFiles(ctx context.Context, parentID string) ([]storage.File, error) {
	prefix := normalizePrefix(parentID)

	var files []storage.File
	token := ""
	for {
		out, err := s.listPage(ctx, prefix, token)
		if err != nil {
			return nil, err
		}

		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix {
				// directory placeholder object
				continue
			}
			f := storage.File{
				ID:   key,
				Name: path.Base(key),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				f.Modified = *obj.LastModified
			}
			files = append(files, f)
		}

		if !aws.ToBool(out.IsTruncated) {
			return files, nil
		}
		token = aws.ToString(out.NextContinuationToken)
	}
}

func (s *Store) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: s3 get %q: %v", common.ErrUnavailable, fileID, err)
	}
	return out.Body, nil
}

var _ storage.Store = (*Store)(nil)
