package service

import (
	"context"

	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/validation"
)

// CommentService handles comments on posts. Like posts, comments snapshot the
// author's name and avatar at creation time.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// Create validates the text, confirms the post exists, and appends the
// comment. The updated post is returned with comments newest first.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Post, error) {
	if err := validation.ValidateText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: in.PostID,
		UserID: in.UserID,
		Text:   in.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID)
}

// Delete removes a comment from a post. Only the comment's author may delete
// it, and the comment must actually belong to the given post.
func (s *CommentService) Delete(ctx context.Context, userID, postID, commentID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError("User not authorized")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}
