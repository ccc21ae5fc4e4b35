// Package s3 stores benchmark datasets in Amazon S3.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil { ... }
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "datasets/")
//
//	err = dataset.Save(ctx, store, "uniform-1e6.sbmk", arr, dataset.CompressionZSTD)
//
// # Features
//
//   - Range reads, so headers can be inspected without fetching payloads
//   - Managed multipart uploads with CRC32C checksums for large datasets
//   - Automatic pagination for listing
package s3
