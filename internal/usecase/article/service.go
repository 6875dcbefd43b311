package article

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"conduit/internal/common/pagination"
	"conduit/internal/domain/entity"
	"conduit/internal/observability/logging"
	"conduit/internal/observability/metrics"
	"conduit/internal/observability/tracing"
	"conduit/internal/repository"
)

// Service provides article use cases.
// It validates business rules and delegates persistence to the repositories.
// Service holds no mutable state and is safe for concurrent use; uniqueness
// races between a check and the following write are resolved by storage
// constraints, which surface as errors wrapping entity.ErrConflict.
type Service struct {
	Social    repository.SocialRepository
	Articles  repository.ArticleRepository
	Favorites repository.ArticleFavoriteRepository

	// Pagination supplies page defaults for facets. The zero value means pagination.DefaultConfig().
	Pagination pagination.Config
}

// ReadArticleBySlug retrieves a single article by its slug.
// Returns ErrInvalidSlug if the slug is empty.
// Returns ErrArticleNotFound if no article has that slug.
func (s *Service) ReadArticleBySlug(ctx context.Context, slug string) (_ *entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.ReadArticleBySlug", attribute.String("article.slug", slug))
	defer func() { s.finish(ctx, span, "read_article_by_slug", err) }()

	if slug == "" {
		return nil, ErrInvalidSlug
	}

	article, err := s.Articles.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// ReadArticles lists articles matching facets as seen by an anonymous viewer.
// The result keeps the repository's order.
func (s *Service) ReadArticles(ctx context.Context, facets entity.ArticleFacets) (_ []entity.ArticleDetails, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.ReadArticles", facetAttributes(facets)...)
	defer func() { s.finish(ctx, span, "read_articles", err) }()

	articles, err := s.Articles.FindAll(ctx, s.facets(facets))
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}

	details, err := s.details(ctx, nil, articles)
	if err != nil {
		return nil, err
	}
	metrics.RecordArticlesListed("articles", len(details))
	return details, nil
}

// ReadArticlesForUser lists articles matching facets as seen by requester.
// A nil requester gets the anonymous view.
func (s *Service) ReadArticlesForUser(ctx context.Context, requester *entity.User, facets entity.ArticleFacets) (_ []entity.ArticleDetails, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.ReadArticlesForUser",
		append(facetAttributes(facets), userAttribute("requester.id", requester))...)
	defer func() { s.finish(ctx, span, "read_articles_for_user", err) }()

	articles, err := s.Articles.FindAll(ctx, s.facets(facets))
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}

	details, err := s.details(ctx, requester, articles)
	if err != nil {
		return nil, err
	}
	metrics.RecordArticlesListed("articles_for_user", len(details))
	return details, nil
}

// ReadFeeds lists the articles written by users that user follows, newest first.
// Returns an empty slice without querying articles when user follows no one.
func (s *Service) ReadFeeds(ctx context.Context, user *entity.User, facets entity.ArticleFacets) (_ []entity.ArticleDetails, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.ReadFeeds", userAttribute("user.id", user))
	defer func() { s.finish(ctx, span, "read_feeds", err) }()

	if user == nil {
		return nil, &entity.ValidationError{Field: "user", Message: "is required"}
	}

	follows, err := s.Social.FindByFollower(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("find followings: %w", err)
	}
	if len(follows) == 0 {
		metrics.RecordArticlesListed("feed", 0)
		return []entity.ArticleDetails{}, nil
	}

	authors := make([]entity.User, 0, len(follows))
	for _, f := range follows {
		authors = append(authors, f.Following)
	}

	articles, err := s.Articles.FindByAuthors(ctx, authors, s.facets(facets))
	if err != nil {
		return nil, fmt.Errorf("find articles by authors: %w", err)
	}

	details, err := s.details(ctx, user, articles)
	if err != nil {
		return nil, err
	}
	metrics.RecordArticlesListed("feed", len(details))
	return details, nil
}

// WriteArticle persists a new article with its tags.
// The slug is derived from the title, and zero timestamps are set to now.
// Tags may be nil; they are normalized with entity.NormalizeTags.
// Returns a ValidationError if the article is incomplete.
// Returns ErrDuplicateTitle if another article already has the title.
func (s *Service) WriteArticle(ctx context.Context, article *entity.Article, tags []entity.Tag) (_ *entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.WriteArticle")
	defer func() { s.finish(ctx, span, "write_article", err) }()

	if err := entity.ValidateNewArticle(article); err != nil {
		return nil, err
	}

	exists, err := s.Articles.ExistsByTitle(ctx, article.Title)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if exists {
		return nil, ErrDuplicateTitle
	}

	article.SetTitle(article.Title)
	now := time.Now()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	if article.UpdatedAt.IsZero() {
		article.UpdatedAt = article.CreatedAt
	}

	saved, err := s.Articles.Save(ctx, article, entity.NormalizeTags(tags))
	if err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}

	metrics.RecordArticleWritten()
	logging.FromContext(ctx).Info("article written",
		slog.Int64("article_id", saved.ID),
		slog.String("slug", saved.Slug),
		slog.Int64("author_id", saved.Author.ID),
		slog.Any("tags", entity.TagNames(saved.Tags)))
	return saved, nil
}

// EditTitle changes the title (and slug) of an article written by requester.
// Returns ErrNotAuthor if requester did not write the article.
// Returns ErrDuplicateTitle if another article already has the new title.
// Setting the current title again is accepted and only refreshes updated_at.
func (s *Service) EditTitle(ctx context.Context, requester *entity.User, article *entity.Article, title string) (_ *entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.EditTitle", userAttribute("requester.id", requester))
	defer func() { s.finish(ctx, span, "edit_title", err) }()

	if err := s.checkAuthor(requester, article); err != nil {
		return nil, err
	}
	if err := entity.ValidateTitle(title); err != nil {
		return nil, err
	}

	if title != article.Title {
		exists, err := s.Articles.ExistsByTitle(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("check title: %w", err)
		}
		if exists {
			return nil, ErrDuplicateTitle
		}
	}

	return s.update(ctx, article, metrics.FieldTitle, func(a *entity.Article) { a.SetTitle(title) })
}

// EditDescription changes the description of an article written by requester.
// Returns ErrNotAuthor if requester did not write the article.
func (s *Service) EditDescription(ctx context.Context, requester *entity.User, article *entity.Article, description string) (_ *entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.EditDescription", userAttribute("requester.id", requester))
	defer func() { s.finish(ctx, span, "edit_description", err) }()

	if err := s.checkAuthor(requester, article); err != nil {
		return nil, err
	}
	if err := entity.ValidateDescription(description); err != nil {
		return nil, err
	}

	return s.update(ctx, article, metrics.FieldDescription, func(a *entity.Article) { a.Description = description })
}

// EditContent changes the content of an article written by requester.
// Returns ErrNotAuthor if requester did not write the article.
func (s *Service) EditContent(ctx context.Context, requester *entity.User, article *entity.Article, content string) (_ *entity.Article, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.EditContent", userAttribute("requester.id", requester))
	defer func() { s.finish(ctx, span, "edit_content", err) }()

	if err := s.checkAuthor(requester, article); err != nil {
		return nil, err
	}

	return s.update(ctx, article, metrics.FieldContent, func(a *entity.Article) { a.Content = content })
}

// DeleteArticle removes an article written by requester.
// Returns ErrNotAuthor if requester did not write the article.
func (s *Service) DeleteArticle(ctx context.Context, requester *entity.User, article *entity.Article) (err error) {
	ctx, span := tracing.StartSpan(ctx, "article.DeleteArticle", userAttribute("requester.id", requester))
	defer func() { s.finish(ctx, span, "delete_article", err) }()

	if err := s.checkAuthor(requester, article); err != nil {
		return err
	}

	if err := s.Articles.Delete(ctx, article); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	metrics.RecordArticleDeleted()
	logging.FromContext(ctx).Info("article deleted",
		slog.Int64("article_id", article.ID),
		slog.String("slug", article.Slug))
	return nil
}

// IsFavorited reports whether requester has favorited article.
func (s *Service) IsFavorited(ctx context.Context, requester *entity.User, article *entity.Article) (_ bool, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.IsFavorited", userAttribute("requester.id", requester))
	defer func() { s.finish(ctx, span, "is_favorited", err) }()

	return s.isFavorited(ctx, requester, article)
}

// FavoriteArticle marks article as favorited by requester.
// Returns ErrAlreadyFavorited if it already is.
func (s *Service) FavoriteArticle(ctx context.Context, requester *entity.User, article *entity.Article) (err error) {
	ctx, span := tracing.StartSpan(ctx, "article.FavoriteArticle", userAttribute("requester.id", requester))
	defer func() { s.finish(ctx, span, "favorite_article", err) }()

	favorited, err := s.isFavorited(ctx, requester, article)
	if err != nil {
		return err
	}
	if favorited {
		return ErrAlreadyFavorited
	}

	if err := s.Favorites.Save(ctx, entity.NewArticleFavorite(*requester, *article)); err != nil {
		return fmt.Errorf("save favorite: %w", err)
	}

	metrics.RecordFavorite(metrics.ActionFavorite)
	logging.FromContext(ctx).Info("article favorited",
		slog.Int64("article_id", article.ID),
		slog.Int64("user_id", requester.ID))
	return nil
}

// UnfavoriteArticle removes requester's favorite on article.
// Returns ErrNotFavorited if there is none.
func (s *Service) UnfavoriteArticle(ctx context.Context, requester *entity.User, article *entity.Article) (err error) {
	ctx, span := tracing.StartSpan(ctx, "article.UnfavoriteArticle", userAttribute("requester.id", requester))
	defer func() { s.finish(ctx, span, "unfavorite_article", err) }()

	favorited, err := s.isFavorited(ctx, requester, article)
	if err != nil {
		return err
	}
	if !favorited {
		return ErrNotFavorited
	}

	if err := s.Favorites.DeleteByUserAndArticle(ctx, requester, article); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	metrics.RecordFavorite(metrics.ActionUnfavorite)
	logging.FromContext(ctx).Info("article unfavorited",
		slog.Int64("article_id", article.ID),
		slog.Int64("user_id", requester.ID))
	return nil
}

// GetArticleInfoByAnonymous returns the anonymous projection of article.
func (s *Service) GetArticleInfoByAnonymous(ctx context.Context, article *entity.Article) (_ entity.ArticleDetails, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.GetArticleInfoByAnonymous")
	defer func() { s.finish(ctx, span, "get_article_info_by_anonymous", err) }()

	if article == nil {
		return entity.ArticleDetails{}, &entity.ValidationError{Field: "article", Message: "is required"}
	}

	details, err := s.Articles.FindDetailsByAnonymous(ctx, article)
	if err != nil {
		return entity.ArticleDetails{}, fmt.Errorf("find article details: %w", err)
	}
	return details, nil
}

// GetArticleInfoByUser returns the projection of article as seen by requester.
func (s *Service) GetArticleInfoByUser(ctx context.Context, requester *entity.User, article *entity.Article) (_ entity.ArticleDetails, err error) {
	ctx, span := tracing.StartSpan(ctx, "article.GetArticleInfoByUser", userAttribute("requester.id", requester))
	defer func() { s.finish(ctx, span, "get_article_info_by_user", err) }()

	if article == nil {
		return entity.ArticleDetails{}, &entity.ValidationError{Field: "article", Message: "is required"}
	}
	if requester == nil {
		return entity.ArticleDetails{}, &entity.ValidationError{Field: "requester", Message: "is required"}
	}

	details, err := s.Articles.FindDetailsByUser(ctx, requester, article)
	if err != nil {
		return entity.ArticleDetails{}, fmt.Errorf("find article details: %w", err)
	}
	return details, nil
}

func (s *Service) facets(f entity.ArticleFacets) entity.ArticleFacets {
	return f.WithDefaults(s.Pagination.OrDefault())
}

// details projects articles in order, anonymously when viewer is nil.
func (s *Service) details(ctx context.Context, viewer *entity.User, articles []*entity.Article) ([]entity.ArticleDetails, error) {
	out := make([]entity.ArticleDetails, 0, len(articles))
	for _, a := range articles {
		var (
			d   entity.ArticleDetails
			err error
		)
		if viewer == nil {
			d, err = s.Articles.FindDetailsByAnonymous(ctx, a)
		} else {
			d, err = s.Articles.FindDetailsByUser(ctx, viewer, a)
		}
		if err != nil {
			return nil, fmt.Errorf("find article details: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Service) checkAuthor(requester *entity.User, article *entity.Article) error {
	if article == nil {
		return &entity.ValidationError{Field: "article", Message: "is required"}
	}
	if article.IsNotAuthor(requester) {
		return ErrNotAuthor
	}
	return nil
}

// update applies edit to a copy of article and persists it, so the caller's
// article is left untouched when the write fails.
func (s *Service) update(ctx context.Context, article *entity.Article, field string, edit func(*entity.Article)) (*entity.Article, error) {
	edited := *article
	edit(&edited)
	edited.UpdatedAt = time.Now()

	updated, err := s.Articles.Update(ctx, &edited)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	metrics.RecordArticleEdited(field)
	logging.FromContext(ctx).Info("article edited",
		slog.Int64("article_id", updated.ID),
		slog.String("field", field))
	return updated, nil
}

func (s *Service) isFavorited(ctx context.Context, requester *entity.User, article *entity.Article) (bool, error) {
	if requester == nil {
		return false, &entity.ValidationError{Field: "requester", Message: "is required"}
	}
	if article == nil {
		return false, &entity.ValidationError{Field: "article", Message: "is required"}
	}

	favorited, err := s.Favorites.ExistsByUserAndArticle(ctx, requester, article)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return favorited, nil
}

// finish records the outcome of an operation on metrics, logs and its span.
func (s *Service) finish(ctx context.Context, span trace.Span, operation string, err error) {
	if err != nil {
		kind := errorKind(err)
		metrics.RecordOperationError(operation, kind)

		logger := logging.FromContext(ctx)
		if kind == "internal" {
			logger.Warn("article operation failed",
				slog.String("operation", operation),
				slog.Any("error", err))
		} else {
			logger.Debug("article operation rejected",
				slog.String("operation", operation),
				slog.String("kind", kind),
				slog.String("reason", err.Error()))
		}
	}
	tracing.End(span, err)
}

func facetAttributes(f entity.ArticleFacets) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("facets.tag", f.Tag),
		attribute.String("facets.author", f.Author),
		attribute.String("facets.favorited", f.Favorited),
		attribute.Int("facets.page", f.Page.Page),
		attribute.Int("facets.limit", f.Page.Limit),
	}
}

func userAttribute(key string, u *entity.User) attribute.KeyValue {
	if u == nil {
		return attribute.Int64(key, 0)
	}
	return attribute.Int64(key, u.ID)
}
