package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learnloop/internal/domain"
	"learnloop/internal/pkg/logger"
	"learnloop/internal/repository"
	"learnloop/internal/service/media"
	"learnloop/internal/service/push"
)

type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, input domain.PostInput, files []domain.Upload) (*domain.Post, error)
	Update(ctx context.Context, postID string, userID uuid.UUID, input domain.PostInput, files []domain.Upload) (*domain.Post, error)
	Delete(ctx context.Context, postID string, userID uuid.UUID) error
	Like(ctx context.Context, postID string, userID uuid.UUID) (*domain.Post, error)
	AddComment(ctx context.Context, postID string, userID uuid.UUID, input domain.CommentInput) (*domain.Comment, error)
	EditComment(ctx context.Context, postID string, commentID, userID uuid.UUID, input domain.CommentInput) (*domain.Comment, error)
	DeleteComment(ctx context.Context, postID string, commentID, userID uuid.UUID) error
}

type service struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	media    media.Service
	push     push.Service
	now      func() time.Time
}

func NewService(postRepo repository.PostRepository, userRepo repository.UserRepository, mediaSvc media.Service, pushSvc push.Service) Service {
	return &service{
		postRepo: postRepo,
		userRepo: userRepo,
		media:    mediaSvc,
		push:     pushSvc,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, authorID uuid.UUID, input domain.PostInput, files []domain.Upload) (*domain.Post, error) {
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domain.ErrUserNotFound
	}

	urls, err := s.uploadAll(ctx, authorID, files)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		AuthorID:    authorID,
		Description: strings.TrimSpace(input.Description),
		MediaURLs:   urls,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.removeMedia(ctx, urls)
		return nil, err
	}
	return post, nil
}

// Update replaces the description. When files are given they replace the post's media.
func (s *service) Update(ctx context.Context, postID string, userID uuid.UUID, input domain.PostInput, files []domain.Upload) (*domain.Post, error) {
	post, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	var urls []string
	if len(files) > 0 {
		if urls, err = s.uploadAll(ctx, userID, files); err != nil {
			return nil, err
		}
	}

	description := strings.TrimSpace(input.Description)
	if err := s.postRepo.Update(ctx, postID, description, urls); err != nil {
		s.removeMedia(ctx, urls)
		return nil, err
	}

	if urls != nil {
		s.removeMedia(ctx, post.MediaURLs)
		post.MediaURLs = urls
	}
	post.Description = description
	post.UpdatedAt = s.now()
	return post, nil
}

func (s *service) Delete(ctx context.Context, postID string, userID uuid.UUID) error {
	post, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	s.removeMedia(ctx, post.MediaURLs)
	return nil
}

// Like adds userID to the post's likes. Liking again changes nothing.
func (s *service) Like(ctx context.Context, postID string, userID uuid.UUID) (*domain.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.AddLike(ctx, postID, userID); err != nil {
		return nil, err
	}

	if !post.LikedBy(userID) {
		post.Likes = append(post.Likes, userID)
		s.nudge(post.AuthorID, userID, domain.NotificationLike)
	}
	return post, nil
}

func (s *service) AddComment(ctx context.Context, postID string, userID uuid.UUID, input domain.CommentInput) (*domain.Comment, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:        uuid.New(),
		AuthorID:  userID,
		Content:   strings.TrimSpace(input.Content),
		CreatedAt: s.now(),
	}
	if err := s.postRepo.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	s.nudge(post.AuthorID, userID, domain.NotificationComment)
	return &comment, nil
}

func (s *service) EditComment(ctx context.Context, postID string, commentID, userID uuid.UUID, input domain.CommentInput) (*domain.Comment, error) {
	comment, err := s.authoredComment(ctx, postID, commentID, userID)
	if err != nil {
		return nil, err
	}

	at := s.now()
	content := strings.TrimSpace(input.Content)
	if err := s.postRepo.UpdateComment(ctx, postID, commentID, userID, content, at); err != nil {
		return nil, err
	}

	comment.Content = content
	comment.UpdatedAt = &at
	return comment, nil
}

func (s *service) DeleteComment(ctx context.Context, postID string, commentID, userID uuid.UUID) error {
	if _, err := s.authoredComment(ctx, postID, commentID, userID); err != nil {
		return err
	}
	return s.postRepo.RemoveComment(ctx, postID, commentID, userID)
}

func (s *service) getPost(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (s *service) ownedPost(ctx context.Context, postID string, userID uuid.UUID) (*domain.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, domain.ErrNotPostAuthor
	}
	return post, nil
}

func (s *service) authoredComment(ctx context.Context, postID string, commentID, userID uuid.UUID) (*domain.Comment, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		return nil, domain.ErrNotCommentAuthor
	}
	return comment, nil
}

func (s *service) uploadAll(ctx context.Context, ownerID uuid.UUID, files []domain.Upload) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		u, err := s.media.Upload(ctx, fmt.Sprintf("posts/%s", ownerID), f)
		if err != nil {
			s.removeMedia(ctx, urls)
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func (s *service) removeMedia(ctx context.Context, urls []string) {
	for _, u := range urls {
		if err := s.media.Delete(ctx, u); err != nil {
			logger.WithModule("post").Warn("failed to delete media", zap.String("url", u), zap.Error(err))
		}
	}
}

// nudge tells the post author's client to refresh notifications. Self engagement
// is still listed but not pushed.
func (s *service) nudge(authorID, actorID uuid.UUID, kind domain.NotificationKind) {
	if s.push != nil && authorID != actorID {
		s.push.NotificationsChanged(authorID, kind)
	}
}
