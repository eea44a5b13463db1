//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/service"
)

const integrationAccountXML = `<account id="3230304"><sources/></account>`

func TestRedisAccountDocumentStore_Integration(t *testing.T) {
	ctx := context.Background()
	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisAccountDocumentStore(rdb, "ub:")
	raw, err := store.Load(ctx, "3230304")
	require.NoError(t, err)
	require.Nil(t, raw)

	require.NoError(t, store.Save(ctx, "3230304", []byte(integrationAccountXML)))
	raw, err = store.Load(ctx, "3230304")
	require.NoError(t, err)
	require.Equal(t, integrationAccountXML, string(raw))

	ttl, err := rdb.TTL(ctx, "ub:account:3230304").Result()
	require.NoError(t, err)
	require.Equal(t, time.Duration(-1), ttl)
}

func TestPostgresRepositories_Integration(t *testing.T) {
	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ueberboese"),
		tcpostgres.WithUsername("ueberboese"),
		tcpostgres.WithPassword("ueberboese"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := OpenDB(ctx, config.DatabaseConfig{Driver: config.DatabaseDriverPostgres, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, EnsureSchema(ctx, db, config.DatabaseDriverPostgres))

	t0 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	accounts := NewSpotifyAccountRepository(db)
	acc := &service.SpotifyAccount{SpotifyUserID: "u1", RefreshToken: "rt-1", CreatedAt: t0, UpdatedAt: t0}
	require.NoError(t, accounts.Upsert(ctx, acc))
	again := &service.SpotifyAccount{SpotifyUserID: "u1", RefreshToken: "rt-2", CreatedAt: t0.Add(time.Hour), UpdatedAt: t0.Add(time.Hour)}
	require.NoError(t, accounts.Upsert(ctx, again))
	require.True(t, again.CreatedAt.Equal(t0))
	require.Equal(t, int64(1), again.Version)

	groups := NewDeviceGroupRepository(db)
	g := &service.DeviceGroup{AccountID: "acc", LeftDeviceID: "L", RightDeviceID: "R", CreatedOn: t0, UpdatedOn: t0}
	require.NoError(t, groups.Create(ctx, g))
	require.Positive(t, g.ID)
	found, err := groups.FindByMember(ctx, "acc", "R")
	require.NoError(t, err)
	require.Equal(t, g.ID, found.ID)
}
