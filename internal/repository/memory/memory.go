// Package memory is an in-process implementation of the entity store. It
// keeps the same contracts as the postgres store, including cascading
// deletes and unique likes, and is used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/google/uuid"
)

type likeKey struct {
	authorID uuid.UUID
	postID   int64
}

type state struct {
	mu sync.Mutex

	posts    map[int64]model.Post
	comments map[int64]model.Comment
	likes    map[likeKey]model.Like
	backups  map[int64]model.PostBackup

	lastPostID    int64
	lastCommentID int64
	lastBackupID  int64

	now func() time.Time
}

func (s *state) clone() *state {
	c := &state{
		posts:         make(map[int64]model.Post, len(s.posts)),
		comments:      make(map[int64]model.Comment, len(s.comments)),
		likes:         make(map[likeKey]model.Like, len(s.likes)),
		backups:       make(map[int64]model.PostBackup, len(s.backups)),
		lastPostID:    s.lastPostID,
		lastCommentID: s.lastCommentID,
		lastBackupID:  s.lastBackupID,
	}
	for k, v := range s.posts {
		c.posts[k] = v
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}
	for k, v := range s.likes {
		c.likes[k] = v
	}
	for k, v := range s.backups {
		c.backups[k] = v
	}

	return c
}

func (s *state) restore(snapshot *state) {
	s.posts = snapshot.posts
	s.comments = snapshot.comments
	s.likes = snapshot.likes
	s.backups = snapshot.backups
	s.lastPostID = snapshot.lastPostID
	s.lastCommentID = snapshot.lastCommentID
	s.lastBackupID = snapshot.lastBackupID
}

// Repository implements repository.Store. Every operation holds the state
// lock; a transaction holds it for its whole duration.
type Repository struct {
	state *state
	inTx  bool
}

type Option func(*Repository)

// WithClock overrides the time source used for created_at stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.state.now = now
	}
}

func New(opts ...Option) *Repository {
	r := &Repository{
		state: &state{
			posts:    make(map[int64]model.Post),
			comments: make(map[int64]model.Comment),
			likes:    make(map[likeKey]model.Like),
			backups:  make(map[int64]model.PostBackup),
			now:      time.Now,
		},
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Repository) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.state.mu.Lock()

	return r.state.mu.Unlock
}

func (r *Repository) now() time.Time {
	return r.state.now().UTC().Truncate(time.Microsecond)
}

func (r *Repository) Posts() repository.Post {
	return (*postRepo)(r)
}

func (r *Repository) Comments() repository.Comment {
	return (*commentRepo)(r)
}

func (r *Repository) Likes() repository.Like {
	return (*likeRepo)(r)
}

func (r *Repository) Backups() repository.Backup {
	return (*backupRepo)(r)
}

func (r *Repository) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	if r.inTx {
		return fn(r)
	}

	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	snapshot := r.state.clone()
	if err := fn(&Repository{state: r.state, inTx: true}); err != nil {
		r.state.restore(snapshot)
		return err
	}

	return nil
}

type postRepo Repository

func (r *postRepo) repo() *Repository {
	return (*Repository)(r)
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	defer r.repo().lock()()

	r.state.lastPostID++
	now := r.repo().now()
	post.ID = r.state.lastPostID
	post.LikesCount = 0
	post.CreatedAt = now
	post.UpdatedAt = now
	r.state.posts[post.ID] = post

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	defer r.repo().lock()()

	post, ok := r.state.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return &post, nil
}

func (r *postRepo) LockByID(ctx context.Context, id int64) (*model.Post, error) {
	return r.FindByID(ctx, id)
}

func (r *postRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	defer r.repo().lock()()

	posts := make([]*model.Post, 0, len(r.state.posts))
	for _, post := range r.state.posts {
		post := post
		posts = append(posts, &post)
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].LikesCount != posts[j].LikesCount {
			return posts[i].LikesCount > posts[j].LikesCount
		}
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})

	return posts, nil
}

func (r *postRepo) UpdateContent(ctx context.Context, id int64, title string, content string, updatedAt time.Time) (*model.Post, error) {
	defer r.repo().lock()()

	post, ok := r.state.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	post.Title = title
	post.Content = content
	post.UpdatedAt = updatedAt.UTC().Truncate(time.Microsecond)
	r.state.posts[id] = post

	return &post, nil
}

func (r *postRepo) AddLikes(ctx context.Context, id int64, delta int64) (int64, error) {
	defer r.repo().lock()()

	post, ok := r.state.posts[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	post.LikesCount += delta
	r.state.posts[id] = post

	return post.LikesCount, nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	defer r.repo().lock()()

	if _, ok := r.state.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.state.posts, id)

	for commentID, comment := range r.state.comments {
		if comment.PostID == id {
			delete(r.state.comments, commentID)
		}
	}
	for key := range r.state.likes {
		if key.postID == id {
			delete(r.state.likes, key)
		}
	}
	for backupID, backup := range r.state.backups {
		if backup.PostID == id {
			delete(r.state.backups, backupID)
		}
	}

	return nil
}

type commentRepo Repository

func (r *commentRepo) repo() *Repository {
	return (*Repository)(r)
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	defer r.repo().lock()()

	if _, ok := r.state.posts[comment.PostID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.state.lastCommentID++
	comment.ID = r.state.lastCommentID
	comment.CreatedAt = r.repo().now()
	r.state.comments[comment.ID] = comment

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	defer r.repo().lock()()

	comment, ok := r.state.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return &comment, nil
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID int64) ([]*model.Comment, error) {
	defer r.repo().lock()()

	comments := []*model.Comment{}
	for _, comment := range r.state.comments {
		if comment.PostID == postID {
			comment := comment
			comments = append(comments, &comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})

	return comments, nil
}

func (r *commentRepo) UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error) {
	defer r.repo().lock()()

	comment, ok := r.state.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	comment.Content = content
	r.state.comments[id] = comment

	return &comment, nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	defer r.repo().lock()()

	if _, ok := r.state.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.state.comments, id)

	return nil
}

type likeRepo Repository

func (r *likeRepo) repo() *Repository {
	return (*Repository)(r)
}

func (r *likeRepo) Create(ctx context.Context, authorID uuid.UUID, postID int64) (*model.Like, error) {
	defer r.repo().lock()()

	if _, ok := r.state.posts[postID]; !ok {
		return nil, repository.ErrNotFound
	}
	key := likeKey{authorID: authorID, postID: postID}
	if _, ok := r.state.likes[key]; ok {
		return nil, repository.ErrAlreadyExists
	}
	like := model.Like{
		AuthorID:  authorID,
		PostID:    postID,
		CreatedAt: r.repo().now(),
	}
	r.state.likes[key] = like

	return &like, nil
}

func (r *likeRepo) Delete(ctx context.Context, authorID uuid.UUID, postID int64) error {
	defer r.repo().lock()()

	key := likeKey{authorID: authorID, postID: postID}
	if _, ok := r.state.likes[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.state.likes, key)

	return nil
}

func (r *likeRepo) Exists(ctx context.Context, authorID uuid.UUID, postID int64) (bool, error) {
	defer r.repo().lock()()

	_, ok := r.state.likes[likeKey{authorID: authorID, postID: postID}]

	return ok, nil
}

func (r *likeRepo) CountByPost(ctx context.Context, postID int64) (int64, error) {
	defer r.repo().lock()()

	var count int64
	for key := range r.state.likes {
		if key.postID == postID {
			count++
		}
	}

	return count, nil
}

func (r *likeRepo) FindByPost(ctx context.Context, postID int64) ([]*model.Like, error) {
	return r.filter(func(like model.Like) bool {
		return like.PostID == postID
	}, true), nil
}

func (r *likeRepo) FindInRange(ctx context.Context, from time.Time, to time.Time) ([]*model.Like, error) {
	return r.filter(func(like model.Like) bool {
		return !like.CreatedAt.Before(from) && !like.CreatedAt.After(to)
	}, false), nil
}

func (r *likeRepo) filter(match func(model.Like) bool, newestFirst bool) []*model.Like {
	defer r.repo().lock()()

	likes := []*model.Like{}
	for _, like := range r.state.likes {
		if match(like) {
			like := like
			likes = append(likes, &like)
		}
	}
	sort.Slice(likes, func(i, j int) bool {
		if newestFirst {
			return likes[i].CreatedAt.After(likes[j].CreatedAt)
		}
		return likes[i].CreatedAt.Before(likes[j].CreatedAt)
	})

	return likes
}

type backupRepo Repository

func (r *backupRepo) repo() *Repository {
	return (*Repository)(r)
}

func (r *backupRepo) Create(ctx context.Context, backup model.PostBackup) (*model.PostBackup, error) {
	defer r.repo().lock()()

	if _, ok := r.state.posts[backup.PostID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.state.lastBackupID++
	backup.ID = r.state.lastBackupID
	backup.CreatedAt = r.repo().now()
	r.state.backups[backup.ID] = backup

	return &backup, nil
}

func (r *backupRepo) FindByPost(ctx context.Context, postID int64) ([]*model.PostBackup, error) {
	defer r.repo().lock()()

	var backups []*model.PostBackup
	for _, backup := range r.state.backups {
		if backup.PostID == postID {
			backup := backup
			backups = append(backups, &backup)
		}
	}
	if len(backups) == 0 {
		return nil, repository.ErrNotFound
	}
	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Date.Equal(backups[j].Date) {
			return backups[i].Date.After(backups[j].Date)
		}
		return backups[i].ID > backups[j].ID
	})

	return backups, nil
}
