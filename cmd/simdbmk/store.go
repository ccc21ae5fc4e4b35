package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/elafarge/simd-benchmarking/blobstore"
	"github.com/elafarge/simd-benchmarking/blobstore/minio"
	"github.com/elafarge/simd-benchmarking/blobstore/s3"
)

const defaultStoreDir = "./data"

// storeURL is a parsed --store value.
type storeURL struct {
	Scheme string
	// Host is the MinIO endpoint; empty for other schemes.
	Host   string
	Bucket string
	Prefix string
	// Dir is the local directory for file:// stores.
	Dir string
}

// parseStoreURL accepts file://DIR, mem://, s3://BUCKET/PREFIX and
// minio://HOST:PORT/BUCKET/PREFIX. A bare path is a file store.
func parseStoreURL(raw string) (storeURL, error) {
	scheme, rest, found := strings.Cut(raw, "://")
	if !found {
		scheme, rest = "file", raw
	}

	switch scheme {
	case "file":
		if rest == "" {
			rest = defaultStoreDir
		}
		return storeURL{Scheme: scheme, Dir: rest}, nil
	case "mem":
		return storeURL{Scheme: scheme}, nil
	case "s3":
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return storeURL{}, fmt.Errorf("store %q: missing bucket", raw)
		}
		return storeURL{Scheme: scheme, Bucket: bucket, Prefix: prefix}, nil
	case "minio":
		host, path, _ := strings.Cut(rest, "/")
		bucket, prefix, _ := strings.Cut(path, "/")
		if host == "" || bucket == "" {
			return storeURL{}, fmt.Errorf("store %q: want minio://HOST:PORT/BUCKET/PREFIX", raw)
		}
		return storeURL{Scheme: scheme, Host: host, Bucket: bucket, Prefix: prefix}, nil
	default:
		return storeURL{}, fmt.Errorf("store %q: unsupported scheme %q", raw, scheme)
	}
}

// openStore builds the BlobStore a store URL points at.
func openStore(ctx context.Context, raw string) (blobstore.BlobStore, error) {
	u, err := parseStoreURL(raw)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "mem":
		return blobstore.NewMemoryStore(), nil
	case "s3":
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		return s3.NewStore(awss3.NewFromConfig(cfg), u.Bucket, u.Prefix), nil
	case "minio":
		client, err := miniogo.New(u.Host, &miniogo.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: os.Getenv("MINIO_SECURE") == "true",
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		store := minio.NewStore(client, u.Bucket, u.Prefix)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("minio bucket %s: %w", u.Bucket, err)
		}
		return store, nil
	default:
		return blobstore.NewLocalStore(u.Dir), nil
	}
}
