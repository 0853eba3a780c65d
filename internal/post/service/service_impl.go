package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blessnhq/blessn/internal/clock"
	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
	moderationdomain "github.com/blessnhq/blessn/internal/moderation/domain"
	"github.com/blessnhq/blessn/internal/post/domain"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
	"github.com/blessnhq/blessn/internal/usercontext"
	"github.com/blessnhq/blessn/pkg/db"
)

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Clock           clock.Clock
	Repo            domain.Repository
	ContributorRepo contributordomain.Repository
	Moderation      moderationdomain.Service
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	clock           clock.Clock
	repo            domain.Repository
	contributorRepo contributordomain.Repository
	moderation      moderationdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("post.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		repo:            p.Repo,
		contributorRepo: p.ContributorRepo,
		moderation:      p.Moderation,
	}
}

func (s *Service) Create(ctx context.Context, req *domain.CreatePostRequest) (*domain.Post, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}

	contributor, err := s.contributorRepo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if contributor == nil {
		return nil, contributordomain.ErrContributorNotFound
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" && description == "" && len(req.Files) == 0 {
		return nil, domain.ErrEmptyPost
	}

	for _, text := range []string{title, description} {
		if err := s.moderation.Screen(ctx, text); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	post := &domain.Post{
		ID:            s.genID.Generate(),
		ContributorID: contributor.ID,
		Title:         title,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, file := range req.Files {
		if strings.TrimSpace(file.FileURL) == "" {
			continue
		}
		post.Files = append(post.Files, domain.PostFile{
			ID:        s.genID.Generate(),
			PostID:    post.ID,
			FileURL:   strings.TrimSpace(file.FileURL),
			FileType:  strings.TrimSpace(file.FileType),
			CreatedAt: now,
		})
	}

	if err := s.repo.Insert(ctx, s.db, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (s *Service) ListByContributor(ctx context.Context, contributorID snowflake.ID) ([]domain.Post, error) {
	return s.repo.FindByContributor(ctx, s.db, contributorID)
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	post, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if post == nil {
		return domain.ErrPostNotFound
	}
	if err := s.ensureAuthor(ctx, post.ContributorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) ToggleLike(ctx context.Context, postID snowflake.ID) (bool, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return false, userdomain.ErrInvalidUser
	}

	post, err := s.repo.FindByID(ctx, s.db, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, domain.ErrPostNotFound
	}

	existing, err := s.repo.FindLike(ctx, s.db, userID, postID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, s.repo.DeleteLike(ctx, s.db, userID, postID)
	}

	like := &domain.Like{
		ID:        s.genID.Generate(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertLike(ctx, s.db, like); err != nil {
		// A concurrent toggle already liked it; treat as liked.
		if db.IsDuplicateKeyErr(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) AddComment(ctx context.Context, req *domain.AddCommentRequest) (*domain.Comment, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, userdomain.ErrInvalidUser
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, domain.ErrEmptyComment
	}
	if err := s.moderation.Screen(ctx, text); err != nil {
		return nil, err
	}

	post, err := s.repo.FindByID(ctx, s.db, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}

	comment := &domain.Comment{
		ID:        s.genID.Generate(),
		PostID:    req.PostID,
		UserID:    userID,
		Text:      text,
		CreatedAt: s.clock.Now(),
	}

	if req.ParentID != nil {
		if err := s.validateParentChain(ctx, comment.ID, *req.ParentID, req.PostID); err != nil {
			return nil, err
		}
		comment.ParentID = req.ParentID
	}

	if err := s.repo.InsertComment(ctx, s.db, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// validateParentChain walks the ancestor chain of the proposed parent. It
// rejects parents from other posts and chains that would loop back to the
// new comment or revisit an ancestor.
func (s *Service) validateParentChain(ctx context.Context, newID, parentID, postID snowflake.ID) error {
	visited := map[snowflake.ID]bool{newID: true}
	current := parentID

	for {
		if visited[current] {
			return domain.ErrCommentCycle
		}
		visited[current] = true

		parent, err := s.repo.FindCommentByID(ctx, s.db, current)
		if err != nil {
			return err
		}
		if parent == nil {
			return domain.ErrCommentNotFound
		}
		if parent.PostID != postID {
			return domain.ErrParentMismatch
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}

func (s *Service) Comments(ctx context.Context, postID snowflake.ID) ([]*domain.CommentNode, error) {
	comments, err := s.repo.FindCommentsByPost(ctx, s.db, postID)
	if err != nil {
		return nil, err
	}

	ids := make([]snowflake.ID, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.ID)
	}
	likeCounts, err := s.repo.CountCommentLikesByComment(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	nodes := make(map[snowflake.ID]*domain.CommentNode, len(comments))
	roots := make([]*domain.CommentNode, 0, len(comments))
	for _, comment := range comments {
		nodes[comment.ID] = &domain.CommentNode{
			Comment: comment,
			Likes:   likeCounts[comment.ID],
		}
	}
	for _, comment := range comments {
		node := nodes[comment.ID]
		if comment.ParentID != nil {
			if parent, ok := nodes[*comment.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}

func (s *Service) DeleteComment(ctx context.Context, id snowflake.ID) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return userdomain.ErrInvalidUser
	}

	comment, err := s.repo.FindCommentByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return domain.ErrCommentNotFound
	}
	if comment.UserID != userID && !usercontext.IsAdmin(ctx) {
		return domain.ErrNotAuthor
	}
	return s.repo.DeleteComment(ctx, s.db, id)
}

func (s *Service) ToggleCommentLike(ctx context.Context, commentID snowflake.ID) (bool, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return false, userdomain.ErrInvalidUser
	}

	comment, err := s.repo.FindCommentByID(ctx, s.db, commentID)
	if err != nil {
		return false, err
	}
	if comment == nil {
		return false, domain.ErrCommentNotFound
	}

	existing, err := s.repo.FindCommentLike(ctx, s.db, userID, commentID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, s.repo.DeleteCommentLike(ctx, s.db, userID, commentID)
	}

	like := &domain.CommentLike{
		ID:        s.genID.Generate(),
		UserID:    userID,
		CommentID: commentID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertCommentLike(ctx, s.db, like); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) ensureAuthor(ctx context.Context, contributorID snowflake.ID) error {
	if usercontext.IsAdmin(ctx) {
		return nil
	}
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return userdomain.ErrInvalidUser
	}

	contributor, err := s.contributorRepo.FindByID(ctx, s.db, contributorID)
	if err != nil {
		return err
	}
	if contributor == nil || contributor.UserID != userID {
		return domain.ErrNotAuthor
	}
	return nil
}
