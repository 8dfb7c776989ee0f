package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/markdown"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
)

var ErrPostNotFound = errors.New("post not found")

// PostsPerPage is the page size used by the blog index.
const PostsPerPage = 10

type PostInput struct {
	Title  string
	Body   string
	Status model.PostStatus
}

// PostPage is one page of the blog index.
type PostPage struct {
	Posts      []*model.Post
	Page       int
	PageSize   int
	TotalCount int
}

func (p *PostPage) TotalPages() int {
	if p.TotalCount == 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

type BlogService struct {
	postRepository repository.PostRepository
	parser         *markdown.Parser
}

func NewBlogService(postRepository repository.PostRepository) *BlogService {
	return &BlogService{
		postRepository: postRepository,
		parser:         markdown.NewParser(),
	}
}

func (s *BlogService) Posts(page int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.postRepository.Count()
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepository.Posts((page-1)*PostsPerPage, PostsPerPage)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Page:       page,
		PageSize:   PostsPerPage,
		TotalCount: count,
	}, nil
}

func (s *BlogService) Post(id string) (*model.Post, error) {
	post, err := s.postRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

func (s *BlogService) Create(input PostInput) (*model.Post, error) {
	now := time.Now()
	post := &model.Post{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Body:      input.Body,
		Status:    input.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.postRepository.Create(post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

func (s *BlogService) Update(id string, input PostInput) (*model.Post, error) {
	post, err := s.Post(id)
	if err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Body = input.Body
	post.Status = input.Status

	err = s.postRepository.Update(post)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

// RenderBody converts the post's markdown body to HTML for API responses.
func (s *BlogService) RenderBody(post *model.Post) (string, error) {
	html, err := s.parser.Parse([]byte(post.Body))
	if err != nil {
		return "", fmt.Errorf("failed to render post body: %w", err)
	}
	return string(html), nil
}
