package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/models"
	"github.com/hlaing-dev/socialbook/backend/internal/repositories"
	"gorm.io/gorm"
)

// PostService handles post lifecycle, likes, comments and shares
type PostService struct {
	postRepository  repositories.PostRepository
	userRepository  repositories.UserRepository
	groupRepository repositories.GroupRepository
	notifier        Notifier
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	groupRepo repositories.GroupRepository,
	notifier Notifier,
) *PostService {
	return &PostService{
		postRepository:  postRepo,
		userRepository:  userRepo,
		groupRepository: groupRepo,
		notifier:        notifier,
	}
}

func (s *PostService) getPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.postRepository.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// Create creates a post, optionally attached to a group and optionally
// tagging friends. Each tagged friend is notified.
func (s *PostService) Create(ctx context.Context, caller *models.User, req models.CreatePostRequest, imageURL string) (*models.Post, error) {
	if req.Body == "" && imageURL == "" {
		return nil, apperrors.NewValidation("A post needs a body or an image")
	}

	if req.GroupID != 0 {
		if _, err := s.groupRepository.GetGroupByID(req.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrGroupNotFound
			}
			return nil, err
		}
	}

	kind := models.PostKindNormal
	tagged := make([]uint, 0, len(req.TagFriends))
	for _, id := range req.TagFriends {
		if id != caller.ID {
			tagged = append(tagged, id)
		}
	}
	if len(tagged) > 0 {
		kind = models.PostKindTagged
	}

	post := &models.Post{
		Kind:       kind,
		UserID:     caller.ID,
		Body:       req.Body,
		ImageURL:   imageURL,
		GroupID:    req.GroupID,
		TagFriends: tagged,
	}
	if err := s.postRepository.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	for _, friendID := range tagged {
		s.notifier.Notify(friendID, fmt.Sprintf("%s tagged you in a post.", caller.Name))
	}
	return post, nil
}

// GetByID retrieves a single post
func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getPost(ctx, id)
}

// ListByOwner retrieves a user's posts, newest first
func (s *PostService) ListByOwner(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error) {
	return s.postRepository.GetPostsByUserID(ctx, userID, skip, limit)
}

// ListTagged retrieves posts the user is tagged in
func (s *PostService) ListTagged(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.postRepository.GetTaggedPostsForUser(ctx, userID)
}

// ListShared retrieves posts the user has shared
func (s *PostService) ListShared(ctx context.Context, userID uint) ([]models.Post, error) {
	return s.postRepository.GetPostsByKindForUser(ctx, models.PostKindShared, userID)
}

// ListAll retrieves the global feed, newest first
func (s *PostService) ListAll(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return s.postRepository.GetAllPosts(ctx, skip, limit)
}

// UpdateBody updates a post's body text. Owner only.
func (s *PostService) UpdateBody(ctx context.Context, caller *models.User, postID, body string) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != caller.ID {
		return apperrors.ErrNotPostOwner
	}
	return s.postRepository.UpdateBody(ctx, postID, body)
}

// Delete deletes a post. Allowed for the owner, and for shared posts also
// for the owner of the original post.
func (s *PostService) Delete(ctx context.Context, caller *models.User, postID string) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != caller.ID &&
		!(post.Kind == models.PostKindShared && post.OriginOwnerID == caller.ID) {
		return apperrors.ErrNotPostOwner
	}
	return s.postRepository.DeletePost(ctx, postID)
}

// Like adds the caller to the post's liked users. Liking twice is a no-op.
// The owner is notified on the first like only, and never for self-likes.
func (s *PostService) Like(ctx context.Context, caller *models.User, postID string) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}

	added, err := s.postRepository.AddLike(ctx, postID, caller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrPostNotFound
		}
		return err
	}

	if added && post.UserID != caller.ID {
		s.notifier.Notify(post.UserID, fmt.Sprintf("%s liked your post.", caller.Name))
	}
	return nil
}

// Unlike removes the caller's like. Unliking a post that was never liked is
// a no-op, and never notifies.
func (s *PostService) Unlike(ctx context.Context, caller *models.User, postID string) error {
	if _, err := s.getPost(ctx, postID); err != nil {
		return err
	}
	return s.postRepository.RemoveLike(ctx, postID, caller.ID)
}

// Comment appends a comment and notifies the post owner, unless the caller
// comments on their own post.
func (s *PostService) Comment(ctx context.Context, caller *models.User, postID, text string) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}

	entry := models.CommentEntry{UserID: caller.ID, Text: text, CreatedAt: time.Now()}
	if err := s.postRepository.AddComment(ctx, postID, entry); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrPostNotFound
		}
		return err
	}

	if post.UserID != caller.ID {
		s.notifier.Notify(post.UserID, fmt.Sprintf("%s commented on your post.", caller.Name))
	}
	return nil
}

// Share creates a shared post referencing the original, bumps the
// original's share counter and notifies its owner (unless self-sharing).
func (s *PostService) Share(ctx context.Context, caller *models.User, postID string) (*models.Post, error) {
	origin, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	shared := &models.Post{
		Kind:          models.PostKindShared,
		UserID:        caller.ID,
		OriginPostID:  origin.ID.Hex(),
		OriginOwnerID: origin.UserID,
	}
	if err := s.postRepository.CreatePost(ctx, shared); err != nil {
		return nil, err
	}

	if err := s.postRepository.IncrementSharesCount(ctx, postID); err != nil {
		return nil, err
	}

	if origin.UserID != caller.ID {
		s.notifier.Notify(origin.UserID, fmt.Sprintf("%s shared your post.", caller.Name))
	}
	return shared, nil
}
