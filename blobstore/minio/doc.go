// Package minio stores benchmark datasets on MinIO or any other
// S3-compatible server through the MinIO client.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "bench", "datasets/")
//	arr, err := dataset.Load(ctx, store, "uniform-1e6.sbmk")
//
// The simdbmk CLI builds the client from a `minio://HOST:PORT/BUCKET/PREFIX`
// store URL with credentials taken from MINIO_ACCESS_KEY and
// MINIO_SECRET_KEY.
package minio
