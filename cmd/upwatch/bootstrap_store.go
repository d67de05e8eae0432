package main

import (
	"context"
	"fmt"

	"github.com/upwatch/upwatch/internal/config"
	pg "github.com/upwatch/upwatch/internal/repository/postgres"
	rds "github.com/upwatch/upwatch/internal/repository/redis"
	"github.com/upwatch/upwatch/internal/repository/recordstore"
)

type storeHandle struct {
	store  recordstore.Store
	health func(context.Context) error
	close  func()
}

func initStore(ctx context.Context, cfg *config.Config) (*storeHandle, error) {
	switch cfg.Store.Backend {
	case "postgres":
		db, err := pg.New(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &storeHandle{
			store:  pg.NewRecordStore(db),
			health: db.Pool.Ping,
			close:  db.Close,
		}, nil
	case "redis":
		rs, err := rds.NewRecordStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &storeHandle{
			store:  rs,
			health: rs.Ping,
			close:  func() { _ = rs.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
