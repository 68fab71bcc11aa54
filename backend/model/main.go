package model

import (
	"time"

	"study-hub/backend/common"

	"github.com/burugo/thing"
	redisCache "github.com/burugo/thing/drivers/cache/redis"
	"github.com/burugo/thing/drivers/db/sqlite"
)

// InitDB configures the Thing ORM (SQLite, optional redis object cache),
// migrates every table and binds the per-model ORM handles.
func InitDB() (err error) {
	dbAdapter, err := sqlite.NewSQLiteAdapter(common.SQLitePath)
	if err != nil {
		common.FatalLog(err)
		return err
	}
	var cacheClient thing.CacheClient = nil
	if common.RedisEnabled && common.RDB != nil {
		cacheClient, err = redisCache.NewClient(common.RDB, nil)
		if err != nil {
			return err
		}
	}
	thing.Configure(dbAdapter, cacheClient)

	err = thing.AutoMigrate(
		&User{},
		&File{},
		&Task{},
		&UserSettings{},
		&StudyGroup{},
		&GroupMessage{},
		&StudySession{},
		&Quiz{},
		&Friendship{},
		&AIChat{},
	)
	if err != nil {
		return err
	}

	inits := []func() error{
		UserInit,
		FileInit,
		TaskInit,
		UserSettingsInit,
		StudyGroupInit,
		GroupMessageInit,
		StudySessionInit,
		QuizInit,
		FriendshipInit,
		AIChatInit,
	}
	for _, init := range inits {
		if err := init(); err != nil {
			return err
		}
	}
	return nil
}

func CloseDB() error {
	// Thing ORM owns the connection pool; nothing to close explicitly.
	return nil
}

// NowMillis is the single clock used by models; epoch milliseconds match
// the wire format of every timestamp field. Tests override it.
var NowMillis = func() int64 { return time.Now().UnixMilli() }
