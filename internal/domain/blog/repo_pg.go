package blog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dralina/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type postRepoPG struct{ pool *pgxpool.Pool }

func NewPostRepoPG(pool *pgxpool.Pool) PostRepository {
	return &postRepoPG{pool: pool}
}

func (r *postRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const postCols = `id, title, content, featured_image_url, seo_keywords, author, is_published, created_at`

func (r *postRepoPG) scanRow(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.FeaturedImageURL, &p.SEOKeywords,
		&p.Author, &p.IsPublished, &p.CreatedAt)
	return &p, err
}

func (r *postRepoPG) Create(ctx context.Context, p *Post) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO blog_posts (title, content, featured_image_url, seo_keywords, author, is_published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		p.Title, p.Content, p.FeaturedImageURL, p.SEOKeywords, p.Author, p.IsPublished).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *postRepoPG) GetByID(ctx context.Context, id int64) (*Post, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+postCols+` FROM blog_posts WHERE id = $1`, id))
}

func (r *postRepoPG) Update(ctx context.Context, p *Post) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE blog_posts
		SET title=$2, content=$3, featured_image_url=$4, seo_keywords=$5, author=$6, is_published=$7
		WHERE id = $1`,
		p.ID, p.Title, p.Content, p.FeaturedImageURL, p.SEOKeywords, p.Author, p.IsPublished)
	return err
}

func (r *postRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	return err
}

func (r *postRepoPG) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*Post, int, error) {
	where := ``
	if publishedOnly {
		where = `WHERE is_published`
	}
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts `+where).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+postCols+` FROM blog_posts `+where+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Post
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
