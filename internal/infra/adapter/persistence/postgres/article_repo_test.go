package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"conduit/internal/common/pagination"
	"conduit/internal/domain/entity"
	pg "conduit/internal/infra/adapter/persistence/postgres"
)

/* ─────────────────────────── helpers ─────────────────────────── */

var articleColumns = []string{
	"id", "slug", "title", "description", "content", "created_at", "updated_at",
	"author_id", "username", "email", "bio", "image",
}

func articleRows(articles ...*entity.Article) *sqlmock.Rows {
	rows := sqlmock.NewRows(articleColumns)
	for _, a := range articles {
		rows.AddRow(a.ID, a.Slug, a.Title, a.Description, a.Content, a.CreatedAt, a.UpdatedAt,
			a.Author.ID, a.Author.Username, a.Author.Email, a.Author.Bio, a.Author.Image)
	}
	return rows
}

func tagRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"article_id", "id", "name"})
}

var (
	now  = time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	jake = entity.User{ID: 1, Username: "jake", Email: "jake@jake.jake", Bio: "I work at statefarm"}
	jane = entity.User{ID: 2, Username: "jane", Email: "jane@jane.jane"}
)

func sampleArticle() *entity.Article {
	return &entity.Article{
		ID: 1, Slug: "how-to-train-your-dragon", Title: "How to train your dragon",
		Description: "Ever wonder how?", Content: "You have to believe",
		Author: jake, CreatedAt: now, UpdatedAt: now,
	}
}

func firstPage() entity.ArticleFacets {
	return entity.ArticleFacets{Page: pagination.Params{Page: 1, Limit: 20}}
}

/* ─────────────────────────── 1. FindBySlug ─────────────────────────── */

func TestArticleRepo_FindBySlug(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := sampleArticle()
	want.Tags = []entity.Tag{{ID: 4, Name: "dragons"}, {ID: 7, Name: "training"}}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.slug = $1")).
		WithArgs("how-to-train-your-dragon").
		WillReturnRows(articleRows(sampleArticle()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM article_tags at")).
		WithArgs(int64(1)).
		WillReturnRows(tagRows().AddRow(1, 4, "dragons").AddRow(1, 7, "training"))

	repo := pg.NewArticleRepo(db)
	got, err := repo.FindBySlug(context.Background(), "how-to-train-your-dragon")
	if err != nil {
		t.Fatalf("FindBySlug err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_FindBySlug_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.slug = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(articleColumns))

	repo := pg.NewArticleRepo(db)
	got, err := repo.FindBySlug(context.Background(), "missing")
	if err != nil || got != nil {
		t.Fatalf("FindBySlug want (nil, nil), got (%v, %v)", got, err)
	}
}

func TestArticleRepo_FindBySlug_QueryError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	boom := errors.New("connection reset")
	mock.ExpectQuery("FROM articles").WillReturnError(boom)

	repo := pg.NewArticleRepo(db)
	if _, err := repo.FindBySlug(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("want wrapped error, got %v", err)
	}
}

/* ─────────────────────────── 2. ExistsByTitle ─────────────────────────── */

func TestArticleRepo_ExistsByTitle(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM articles WHERE title = $1)")).
		WithArgs("Taken").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := pg.NewArticleRepo(db)
	exists, err := repo.ExistsByTitle(context.Background(), "Taken")
	if err != nil || !exists {
		t.Fatalf("ExistsByTitle = %v, %v", exists, err)
	}
}

/* ─────────────────────────── 3. FindAll ─────────────────────────── */

func TestArticleRepo_FindAll_WithFacets(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	second := sampleArticle()
	second.ID, second.Slug, second.Title = 2, "second", "Second"

	facets := firstPage()
	facets.Tag = "dragons"
	facets.Author = "jake"

	mock.ExpectQuery(regexp.QuoteMeta("u.username = $2")).
		WithArgs("dragons", "jake", 20, 0).
		WillReturnRows(articleRows(second, sampleArticle()))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE at.article_id IN ($1, $2)")).
		WithArgs(int64(2), int64(1)).
		WillReturnRows(tagRows().AddRow(1, 4, "dragons").AddRow(2, 4, "dragons"))

	repo := pg.NewArticleRepo(db)
	got, err := repo.FindAll(context.Background(), facets)
	if err != nil {
		t.Fatalf("FindAll err=%v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	for _, a := range got {
		if diff := cmp.Diff([]entity.Tag{{ID: 4, Name: "dragons"}}, a.Tags); diff != "" {
			t.Errorf("article %d tags mismatch (-want +got):\n%s", a.ID, diff)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_FindAll_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	facets := entity.ArticleFacets{Page: pagination.Params{Page: 2, Limit: 5}}
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(5, 5).
		WillReturnRows(sqlmock.NewRows(articleColumns))

	repo := pg.NewArticleRepo(db)
	got, err := repo.FindAll(context.Background(), facets)
	if err != nil {
		t.Fatalf("FindAll err=%v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 4. FindByAuthors ─────────────────────────── */

func TestArticleRepo_FindByAuthors(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.author_id IN ($1, $2)")).
		WithArgs(int64(1), int64(2), 20, 0).
		WillReturnRows(articleRows(sampleArticle()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM article_tags at")).
		WithArgs(int64(1)).
		WillReturnRows(tagRows())

	repo := pg.NewArticleRepo(db)
	got, err := repo.FindByAuthors(context.Background(), []entity.User{jake, jane}, firstPage())
	if err != nil {
		t.Fatalf("FindByAuthors err=%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Tags == nil {
		t.Error("tags should be an empty slice, not nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_FindByAuthors_NoAuthors(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	repo := pg.NewArticleRepo(db)
	got, err := repo.FindByAuthors(context.Background(), nil, firstPage())
	if err != nil || len(got) != 0 {
		t.Fatalf("FindByAuthors = %v, %v", got, err)
	}
	// no query may be issued
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 5. Save ─────────────────────────── */

func TestArticleRepo_Save(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	in := sampleArticle()
	in.ID = 0

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs(in.Slug, in.Title, in.Description, in.Content, jake.ID, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tags")).
		WithArgs("dragons").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO article_tags")).
		WithArgs(int64(10), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	got, err := repo.Save(context.Background(), in, entity.NewTags("dragons"))
	if err != nil {
		t.Fatalf("Save err=%v", err)
	}

	want := sampleArticle()
	want.ID = 10
	want.Tags = []entity.Tag{{ID: 4, Name: "dragons"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if in.ID != 0 {
		t.Error("input article must not be modified")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Save_DuplicateTitle(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "articles_title_key"})
	mock.ExpectRollback()

	repo := pg.NewArticleRepo(db)
	_, err := repo.Save(context.Background(), sampleArticle(), nil)
	if !errors.Is(err, entity.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Errorf("driver error should stay reachable: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Save_TagFailureRollsBack(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tags")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	repo := pg.NewArticleRepo(db)
	if _, err := repo.Save(context.Background(), sampleArticle(), entity.NewTags("go")); err == nil {
		t.Fatal("want error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── 6. Update / Delete ─────────────────────────── */

func TestArticleRepo_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	a := sampleArticle()
	a.SetTitle("A new title")

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles")).
		WithArgs("a-new-title", "A new title", a.Description, a.Content, a.UpdatedAt, a.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Update(context.Background(), a)
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if diff := cmp.Diff(a, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleRepo_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewArticleRepo(db)
	if _, err := repo.Update(context.Background(), sampleArticle()); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestArticleRepo_Update_SlugCollision(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "articles_slug_key"})

	repo := pg.NewArticleRepo(db)
	if _, err := repo.Update(context.Background(), sampleArticle()); !errors.Is(err, entity.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestArticleRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewArticleRepo(db)
	if err := repo.Delete(context.Background(), sampleArticle()); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if err := repo.Delete(context.Background(), sampleArticle()); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("second Delete want ErrNotFound, got %v", err)
	}
}

/* ─────────────────────────── 7. Details ─────────────────────────── */

func TestArticleRepo_FindDetailsByAnonymous(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM article_favorites WHERE article_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := pg.NewArticleRepo(db)
	a := sampleArticle()
	got, err := repo.FindDetailsByAnonymous(context.Background(), a)
	if err != nil {
		t.Fatalf("FindDetailsByAnonymous err=%v", err)
	}
	want := entity.ArticleDetails{Article: a, FavoritesCount: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleRepo_FindDetailsByUser(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("BOOL_OR(user_id = $2)")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "favorited"}).AddRow(2, true))

	repo := pg.NewArticleRepo(db)
	a := sampleArticle()
	got, err := repo.FindDetailsByUser(context.Background(), &jane, a)
	if err != nil {
		t.Fatalf("FindDetailsByUser err=%v", err)
	}
	want := entity.ArticleDetails{Article: a, FavoritesCount: 2, Favorited: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
