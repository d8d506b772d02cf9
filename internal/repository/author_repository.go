package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pitchdeck/internal/models"
)

type AuthorRepositoryImpl struct {
	DB *sqlx.DB
}

func NewAuthorRepository(db *sqlx.DB) *AuthorRepositoryImpl {
	return &AuthorRepositoryImpl{DB: db}
}

func (r *AuthorRepositoryImpl) GetByGithubID(ctx context.Context, githubID int64) (*models.Author, error) {
	query := `SELECT * FROM authors WHERE github_id = $1`

	var author models.Author
	err := r.DB.GetContext(ctx, &author, query, githubID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get author by github id %d: %w", githubID, err)
	}

	return &author, nil
}

func (r *AuthorRepositoryImpl) GetByID(ctx context.Context, authorID string) (*models.Author, error) {
	query := `SELECT * FROM authors WHERE author_id = $1`

	var author models.Author
	err := r.DB.GetContext(ctx, &author, query, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("author %s: %w", authorID, ErrAuthorNotFound)
		}
		return nil, fmt.Errorf("get author: %w", err)
	}

	return &author, nil
}

func (r *AuthorRepositoryImpl) CreateIfAbsent(ctx context.Context, author *models.Author) (*models.Author, bool, error) {
	query := `
		INSERT INTO authors (author_id, github_id, name, username, email, bio, image_id, created_at)
		VALUES (:author_id, :github_id, :name, :username, :email, :bio, :image_id, :created_at)
		ON CONFLICT (github_id) DO NOTHING
	`

	if author.ID == "" {
		author.ID = uuid.New().String()
	}
	if author.CreatedAt.IsZero() {
		author.CreatedAt = time.Now()
	}

	result, err := r.DB.NamedExecContext(ctx, query, author)
	if err != nil {
		return nil, false, fmt.Errorf("create author: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("check inserted rows: %w", err)
	}

	if rowsAffected == 1 {
		return author, true, nil
	}

	// lost the race against a concurrent first sign-in
	existing, err := r.GetByGithubID(ctx, author.GithubID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("author with github id %d vanished after conflict", author.GithubID)
	}

	return existing, false, nil
}
