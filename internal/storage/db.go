package storage

import (
	"os"
	"path/filepath"

	"videoflow/internal/appdirs"
	"videoflow/internal/types"
	"videoflow/log"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB
var appDirsResolver = appdirs.Resolve

func InitDB() {
	dbPath, err := resolveDBPath()
	if err != nil {
		log.GetLogger().Fatal("failed to resolve database path", zap.Error(err))
	}

	if err := OpenDB(dbPath); err != nil {
		log.GetLogger().Fatal("failed to open database", zap.String("path", dbPath), zap.Error(err))
	}

	log.GetLogger().Info("Database initialized successfully", zap.String("path", dbPath))
}

// OpenDB opens (or creates) the sqlite database at path and migrates
// the schema. Split from InitDB so tests can point at a temp file.
func OpenDB(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&types.Project{}, &types.Scene{}, &types.AudioTrack{}); err != nil {
		return err
	}

	DB = db
	return nil
}

func resolveDBPath() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return appdirs.DBPathFor(dirs), nil
}
