package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"go.uber.org/zap"
)

const (
	recentIDMin = 1_000_000_000
	recentIDMax = 9_999_999_999

	recentLocationFormat = "http://streamingqa.bose.com/account/%s/device/%s/recent/%s"
)

var (
	recentCreatedOn       = time.Date(2018, time.November, 27, 18, 20, 1, 0, time.UTC)
	recentSourceCreatedOn = time.Date(2018, time.August, 11, 8, 55, 41, 0, time.UTC)
	recentSourceUpdatedOn = time.Date(2019, time.July, 20, 17, 48, 31, 0, time.UTC)
)

// Recent is a recently played item reported by a speaker.
type Recent struct {
	ID              string
	AccountID       string
	DeviceID        string
	Name            string
	Location        string
	SourceID        string
	ContentItemType string
	LastPlayedAt    string
	CreatedOn       time.Time
	UpdatedOn       time.Time
	Version         int64
}

// RecentSource is the source block echoed back with a recent item.
type RecentSource struct {
	ID               string
	Type             string
	CreatedOn        time.Time
	UpdatedOn        time.Time
	CredentialType   string
	CredentialValue  string
	Name             string
	SourceProviderID string
	SourceName       string
	Username         string
}

type AddRecentInput struct {
	AccountID       string
	DeviceID        string
	Name            string
	Location        string
	SourceID        string
	ContentItemType string
	LastPlayedAt    string
}

type RecentResult struct {
	Recent   *Recent
	Source   RecentSource
	Location string
}

// RecentRepository persists recents.
type RecentRepository interface {
	Create(ctx context.Context, recent *Recent) error
}

type RecentService struct {
	repo  RecentRepository
	now   func() time.Time
	newID func() string
}

func NewRecentService(repo RecentRepository) *RecentService {
	return &RecentService{repo: repo, now: time.Now, newID: randomRecentID}
}

func randomRecentID() string {
	return strconv.FormatInt(recentIDMin+rand.Int64N(recentIDMax-recentIDMin), 10)
}

// AddRecent answers a speaker's recent-item report with a synthesized item. A
// failure to persist it is logged and does not fail the report.
func (s *RecentService) AddRecent(ctx context.Context, in AddRecentInput) *RecentResult {
	id := s.newID()
	recent := &Recent{
		ID:              id,
		AccountID:       in.AccountID,
		DeviceID:        in.DeviceID,
		Name:            in.Name,
		Location:        in.Location,
		SourceID:        in.SourceID,
		ContentItemType: in.ContentItemType,
		LastPlayedAt:    in.LastPlayedAt,
		CreatedOn:       recentCreatedOn,
		UpdatedOn:       s.now().UTC(),
	}
	if s.repo != nil {
		if err := s.repo.Create(ctx, recent); err != nil {
			logger.L().With(
				zap.String("component", "service.recent"),
				zap.String("account_id", in.AccountID),
				zap.String("device_id", in.DeviceID),
			).Warn("recent.persist_failed", zap.Error(err))
		}
	}

	return &RecentResult{
		Recent: recent,
		Source: RecentSource{
			ID:               in.SourceID,
			Type:             "Audio",
			CreatedOn:        recentSourceCreatedOn,
			UpdatedOn:        recentSourceUpdatedOn,
			CredentialType:   "token",
			CredentialValue:  "eyDu=",
			SourceProviderID: TuneInProviderID,
		},
		Location: fmt.Sprintf(recentLocationFormat, in.AccountID, in.DeviceID, id),
	}
}
