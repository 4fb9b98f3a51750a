//go:build integration

package postgres

import (
	"context"
	"strconv"
	"testing"
)

/*
Benchmarks for the tracking store against a real PostgreSQL.

Run with: go test -tags=integration -bench=. -benchmem ./webhook/postgres/

The container starts before b.ResetTimer so startup is not measured.
Set TESTCONTAINERS_REUSE_ENABLE=true to reuse the container between runs.
*/

func BenchmarkCreate_Postgres(b *testing.B) {
	ctx := context.Background()
	db, cleanup := SetupPostgresContainer(b, ctx)
	defer cleanup()
	repo := NewRepository(db)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req, job := newPair("bench-create-" + strconv.Itoa(i))
		if err := repo.Create(ctx, req, job); err != nil {
			b.Fatalf("Create failed: %v", err)
		}
	}
}

func BenchmarkGetByIdempotencyKey_Postgres(b *testing.B) {
	ctx := context.Background()
	db, cleanup := SetupPostgresContainer(b, ctx)
	defer cleanup()
	repo := NewRepository(db)

	req, job := newPair("bench-lookup")
	if err := repo.Create(ctx, req, job); err != nil {
		b.Fatalf("Create failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := repo.GetByIdempotencyKey(ctx, "bench-lookup"); err != nil {
			b.Fatalf("GetByIdempotencyKey failed: %v", err)
		}
	}
}
