package service

import (
	"context"

	"devconnect/internal/models"
)

// userRepoStub is a function-field stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Stub User", Avatar: "stub-avatar"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a function-field stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	listFn           func(context.Context) ([]*models.Post, error)
	deleteFn         func(context.Context, uint) error
	deleteByUserIDFn func(context.Context, uint) error
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	likeFn           func(context.Context, uint, uint) error
	unlikeFn         func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:         func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:        func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:           func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		deleteByUserIDFn: func(_ context.Context, _ uint) error { return nil },
		isLikedFn:        func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:           func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:         func(_ context.Context, _, _ uint) error { return nil },
	}
}

// profileRepoStub is a function-field stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn      func(context.Context, uint) (*models.Profile, error)
	listFn             func(context.Context) ([]*models.Profile, error)
	upsertFn           func(context.Context, *models.Profile) error
	deleteByUserIDFn   func(context.Context, uint) error
	addExperienceFn    func(context.Context, uint, *models.Experience) error
	removeExperienceFn func(context.Context, uint, uint) error
	addEducationFn     func(context.Context, uint, *models.Education) error
	removeEducationFn  func(context.Context, uint, uint) error
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) List(ctx context.Context) ([]*models.Profile, error) {
	return s.listFn(ctx)
}
func (s *profileRepoStub) Upsert(ctx context.Context, profile *models.Profile) error {
	return s.upsertFn(ctx, profile)
}
func (s *profileRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) AddExperience(ctx context.Context, profileID uint, exp *models.Experience) error {
	return s.addExperienceFn(ctx, profileID, exp)
}
func (s *profileRepoStub) RemoveExperience(ctx context.Context, profileID, expID uint) error {
	return s.removeExperienceFn(ctx, profileID, expID)
}
func (s *profileRepoStub) AddEducation(ctx context.Context, profileID uint, edu *models.Education) error {
	return s.addEducationFn(ctx, profileID, edu)
}
func (s *profileRepoStub) RemoveEducation(ctx context.Context, profileID, eduID uint) error {
	return s.removeEducationFn(ctx, profileID, eduID)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(_ context.Context, userID uint) (*models.Profile, error) {
			return &models.Profile{ID: 10, UserID: userID, Status: "Developer", Skills: []string{"Go"}}, nil
		},
		listFn:             func(_ context.Context) ([]*models.Profile, error) { return nil, nil },
		upsertFn:           func(_ context.Context, _ *models.Profile) error { return nil },
		deleteByUserIDFn:   func(_ context.Context, _ uint) error { return nil },
		addExperienceFn:    func(_ context.Context, _ uint, _ *models.Experience) error { return nil },
		removeExperienceFn: func(_ context.Context, _, _ uint) error { return nil },
		addEducationFn:     func(_ context.Context, _ uint, _ *models.Education) error { return nil },
		removeEducationFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

// commentRepoStub is a function-field stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn  func(context.Context, *models.Comment) error
	getByIDFn func(context.Context, uint) (*models.Comment, error)
	deleteFn  func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}
