package service

import (
	"context"
	"net/http"

	"github.com/ueberboese/ueberboese-api/internal/config"
	"github.com/ueberboese/ueberboese-api/internal/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FullAccount is the answer to a full-account read.
type FullAccount struct {
	Document  *AccountDocument
	FromCache bool
}

// FullAccountService answers full-account reads from the document store, fetching
// from upstream once per account and patching Spotify credentials on every read.
type FullAccountService struct {
	store     AccountDocumentStore
	forwarder RequestForwarder
	directory OAuthAccountDirectory

	coalesce bool
	fetches  singleflight.Group
}

func NewFullAccountService(cfg *config.Config, store AccountDocumentStore, forwarder RequestForwarder, directory OAuthAccountDirectory) *FullAccountService {
	return &FullAccountService{
		store:     store,
		forwarder: forwarder,
		directory: directory,
		coalesce:  cfg.AccountStore.CoalesceMisses,
	}
}

// GetFullAccount returns the stored document for accountID, or fetches it through
// in and stores it. A stored document that cannot be read fails the call without
// contacting upstream. A failed store write is logged and ignored.
func (s *FullAccountService) GetFullAccount(ctx context.Context, accountID string, in *http.Request) (*FullAccount, error) {
	log := logger.L().With(
		zap.String("component", "service.full_account"),
		zap.String("account_id", accountID),
	)

	raw, err := s.store.Load(ctx, accountID)
	if err != nil {
		log.Error("full_account.cache_read_failed", zap.Error(err))
		return nil, ErrAccountCacheRead.WithCause(err)
	}

	if raw != nil {
		doc, err := ParseAccountDocument(raw)
		if err != nil {
			log.Error("full_account.cache_parse_failed", zap.Error(err))
			return nil, ErrAccountCacheRead.WithCause(err)
		}
		log.Debug("full_account.cache_hit")
		s.patch(ctx, doc, log)
		return &FullAccount{Document: doc, FromCache: true}, nil
	}

	log.Info("full_account.cache_miss")
	doc, err := s.fetch(ctx, accountID, in, log)
	if err != nil {
		return nil, err
	}
	s.patch(ctx, doc, log)
	return &FullAccount{Document: doc}, nil
}

func (s *FullAccountService) fetch(ctx context.Context, accountID string, in *http.Request, log *zap.Logger) (*AccountDocument, error) {
	if !s.coalesce {
		return s.fetchAndStore(ctx, accountID, in, log)
	}
	// the shared fetch ignores the first caller's cancellation
	detached := context.WithoutCancel(ctx)
	v, err, shared := s.fetches.Do(accountID, func() (any, error) {
		return s.fetchAndStore(detached, accountID, in, log)
	})
	if err != nil {
		return nil, err
	}
	doc := v.(*AccountDocument)
	if shared {
		doc = doc.Clone()
	}
	return doc, nil
}

func (s *FullAccountService) fetchAndStore(ctx context.Context, accountID string, in *http.Request, log *zap.Logger) (*AccountDocument, error) {
	// upstream must answer in identity encoding
	out := in.Clone(ctx)
	out.Header.Del("Accept-Encoding")
	resp, err := s.forwarder.Forward(ctx, out, nil)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() || len(resp.Body) == 0 {
		log.Warn("full_account.upstream_rejected", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(resp.Body)))
		return nil, ErrUpstreamUnavailable
	}

	doc, err := ParseAccountDocument(resp.Body)
	if err != nil {
		log.Warn("full_account.upstream_parse_failed", zap.Error(err))
		return nil, ErrAccountParse.WithCause(err)
	}

	if err := s.store.Save(ctx, accountID, resp.Body); err != nil {
		log.Error("full_account.cache_write_failed", zap.String("reason", ReasonAccountCacheWriteFailed), zap.Error(err))
	} else {
		log.Info("full_account.cached", zap.Int("bytes", len(resp.Body)))
	}
	return doc, nil
}

func (s *FullAccountService) patch(ctx context.Context, doc *AccountDocument, log *zap.Logger) {
	if s.directory == nil {
		return
	}
	accounts, err := s.directory.ListAllAccounts(ctx)
	if err != nil {
		log.Warn("full_account.directory_unavailable", zap.Error(err))
		return
	}
	if n := PatchCredentials(doc, accounts); n > 0 {
		log.Debug("full_account.credentials_patched", zap.Int("sources", n))
	}
}
