package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/cache"
	"github.com/blessnhq/blessn/internal/clock"
	"github.com/blessnhq/blessn/internal/moderation/domain"
	"github.com/blessnhq/blessn/internal/observability/metrics"
	"github.com/blessnhq/blessn/pkg/db"
)

const (
	matcherCacheKey = "banned_words"
	matcherCacheTTL = 5 * time.Minute
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics

	// matcher caches the compiled word list so Screen does not hit the
	// database on every message.
	matcher cache.Cache[string, *regexp.Regexp]
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("moderation.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
		matcher: cache.NewTTLCache[string, *regexp.Regexp](),
	}
}

func (s *Service) AddWord(ctx context.Context, word string) (*domain.BannedWord, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" || strings.ContainsAny(word, " \t\n") {
		return nil, domain.ErrInvalidWord
	}

	banned := &domain.BannedWord{
		ID:        s.genID.Generate(),
		Word:      word,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, banned); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrWordExists
		}
		return nil, err
	}

	s.matcher.Purge()
	return banned, nil
}

func (s *Service) ListWords(ctx context.Context) ([]domain.BannedWord, error) {
	return s.repo.FindAll(ctx, s.db)
}

func (s *Service) RemoveWord(ctx context.Context, id snowflake.ID) error {
	word, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if word == nil {
		return domain.ErrWordNotFound
	}
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		return err
	}

	s.matcher.Purge()
	return nil
}

func (s *Service) Screen(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	re, err := s.compiled(ctx)
	if err != nil {
		return err
	}
	if re == nil {
		return nil
	}

	if re.MatchString(text) {
		s.metrics.RecordModerationRejection()
		return domain.ErrContentRejected
	}
	return nil
}

// compiled returns the cached whole-word matcher, rebuilding it from the
// database when the cache entry has expired. A nil matcher means no words
// are configured.
func (s *Service) compiled(ctx context.Context) (*regexp.Regexp, error) {
	if re, ok := s.matcher.Get(matcherCacheKey); ok {
		return re, nil
	}

	words, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		var empty *regexp.Regexp
		s.matcher.Set(matcherCacheKey, empty, matcherCacheTTL)
		return nil, nil
	}

	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(w.Word))
	}

	re, err := regexp.Compile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		s.log.Error("banned word pattern failed to compile", zap.Error(err))
		return nil, err
	}

	s.matcher.Set(matcherCacheKey, re, matcherCacheTTL)
	return re, nil
}
