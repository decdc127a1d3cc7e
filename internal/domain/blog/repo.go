package blog

import "context"

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*Post, int, error)
}
