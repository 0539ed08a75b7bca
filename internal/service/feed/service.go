package feed

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"learnloop/internal/domain"
	"learnloop/internal/repository"
	"learnloop/internal/service/lookup"
)

type Service interface {
	GetFeed(ctx context.Context, userID uuid.UUID) ([]domain.FeedPost, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.FeedPost, error)
}

type service struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
	lookup     lookup.Service
}

func NewService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	lookupSvc lookup.Service,
) Service {
	return &service{
		userRepo:   userRepo,
		followRepo: followRepo,
		postRepo:   postRepo,
		lookup:     lookupSvc,
	}
}

// GetFeed returns the user's own posts and the posts of everyone they follow,
// newest first.
func (s *service) GetFeed(ctx context.Context, userID uuid.UUID) ([]domain.FeedPost, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	following, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	authors := make([]uuid.UUID, 0, len(following)+1)
	authors = append(authors, userID)
	for _, id := range following {
		if id != userID && id != uuid.Nil {
			authors = append(authors, id)
		}
	}

	posts, err := s.postRepo.ListByAuthors(ctx, authors)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts)
}

func (s *service) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.FeedPost, error) {
	if err := s.requireUser(ctx, authorID); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts)
}

func (s *service) requireUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return nil
}

// assemble orders posts by creation time and resolves author names. Ties are broken
// by post id so the order is stable across calls.
func (s *service) assemble(ctx context.Context, posts []domain.Post) ([]domain.FeedPost, error) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})

	var people []uuid.UUID
	for _, p := range posts {
		people = append(people, p.AuthorID)
		for _, c := range p.Comments {
			people = append(people, c.AuthorID)
		}
	}
	cards := s.lookup.Cards(ctx, people)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nameOf := func(id uuid.UUID) string {
		if card, ok := cards[id]; ok && card.Name != "" {
			return card.Name
		}
		return domain.UnknownAuthorName
	}

	result := make([]domain.FeedPost, 0, len(posts))
	for _, p := range posts {
		fp := domain.FeedPost{
			ID:          p.ID,
			AuthorID:    p.AuthorID,
			AuthorName:  nameOf(p.AuthorID),
			Description: p.Description,
			MediaURLs:   p.MediaURLs,
			Likes:       p.Likes,
			Comments:    make([]domain.FeedComment, 0, len(p.Comments)),
			CreatedAt:   p.CreatedAt,
		}
		if card, ok := cards[p.AuthorID]; ok {
			fp.AuthorAvatarURL = card.AvatarURL
		}
		for _, c := range p.Comments {
			fp.Comments = append(fp.Comments, domain.FeedComment{
				ID:         c.ID,
				AuthorID:   c.AuthorID,
				AuthorName: nameOf(c.AuthorID),
				Content:    c.Content,
				CreatedAt:  c.CreatedAt,
				UpdatedAt:  c.UpdatedAt,
			})
		}
		result = append(result, fp)
	}
	return result, nil
}
