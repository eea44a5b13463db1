package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"go.uber.org/zap"
)

var legacySpotifyAccountFile = regexp.MustCompile(`^spotify-account-.*\.json$`)

// MigrationReport counts what a migration run did.
type MigrationReport struct {
	Migrated int
	Skipped  int
	Failed   int
}

// SpotifyAccountMigrationService imports legacy spotify-account-*.json files into
// the account table. Source files are left in place.
type SpotifyAccountMigrationService struct {
	repo    SpotifyAccountRepository
	dataDir string
}

func NewSpotifyAccountMigrationService(cfg *config.Config, repo SpotifyAccountRepository) *SpotifyAccountMigrationService {
	return &SpotifyAccountMigrationService{repo: repo, dataDir: cfg.Data.Dir}
}

// Run migrates every matching file in the data directory. A missing directory is not an error.
func (s *SpotifyAccountMigrationService) Run(ctx context.Context) (MigrationReport, error) {
	log := logger.L().With(
		zap.String("component", "service.spotify_account_migration"),
		zap.String("dir", s.dataDir),
	)

	entries, err := os.ReadDir(s.dataDir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("spotify_migration.no_data_dir")
		return MigrationReport{}, nil
	}
	if err != nil {
		return MigrationReport{}, fmt.Errorf("scan data dir: %w", err)
	}

	var report MigrationReport
	for _, entry := range entries {
		if entry.IsDir() || !legacySpotifyAccountFile.MatchString(entry.Name()) {
			continue
		}
		path := filepath.Join(s.dataDir, entry.Name())
		migrated, err := s.migrateFile(ctx, path)
		switch {
		case err != nil:
			report.Failed++
			log.Error("spotify_migration.file_failed", zap.String("file", path), zap.Error(err))
		case migrated:
			report.Migrated++
			log.Info("spotify_migration.file_migrated", zap.String("file", path))
		default:
			report.Skipped++
		}
	}
	log.Info("spotify_migration.completed",
		zap.Int("migrated", report.Migrated),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *SpotifyAccountMigrationService) migrateFile(ctx context.Context, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if !gjson.ValidBytes(data) {
		return false, fmt.Errorf("invalid JSON")
	}
	fields := gjson.GetManyBytes(data, "spotifyUserId", "displayName", "refreshToken", "createdAt")
	userID := strings.TrimSpace(fields[0].String())
	if userID == "" {
		return false, fmt.Errorf("spotifyUserId is missing")
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	createdAt := time.Now().UTC()
	if raw := fields[3].String(); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return false, fmt.Errorf("parse createdAt: %w", err)
		}
		createdAt = parsed
	}

	return true, s.repo.Insert(ctx, &SpotifyAccount{
		SpotifyUserID: userID,
		DisplayName:   fields[1].String(),
		RefreshToken:  fields[2].String(),
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	})
}
