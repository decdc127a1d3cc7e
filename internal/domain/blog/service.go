package blog

import (
	"context"
	"fmt"
)

type Service struct {
	posts PostRepository
}

func NewService(posts PostRepository) *Service {
	return &Service{posts: posts}
}

func (s *Service) CreatePost(ctx context.Context, p *Post) error {
	if p.Title == "" || p.Content == "" {
		return fmt.Errorf("title and content are required")
	}
	return s.posts.Create(ctx, p)
}

// GetPublishedPost serves the public detail page; drafts stay hidden.
func (s *Service) GetPublishedPost(ctx context.Context, id int64) (*Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsPublished {
		return nil, fmt.Errorf("post not found")
	}
	return p, nil
}

func (s *Service) GetPost(ctx context.Context, id int64) (*Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *Service) UpdatePost(ctx context.Context, p *Post) error {
	if p.Title == "" || p.Content == "" {
		return fmt.Errorf("title and content are required")
	}
	return s.posts.Update(ctx, p)
}

func (s *Service) DeletePost(ctx context.Context, id int64) error {
	return s.posts.Delete(ctx, id)
}

func (s *Service) ListPublished(ctx context.Context, limit, offset int) ([]*Post, int, error) {
	return s.posts.List(ctx, true, limit, offset)
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]*Post, int, error) {
	return s.posts.List(ctx, false, limit, offset)
}
