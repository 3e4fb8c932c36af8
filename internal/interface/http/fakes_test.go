package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/libhub/library-api/internal/domain/entity"
	"github.com/libhub/library-api/internal/domain/repository"
	"github.com/libhub/library-api/internal/notifier"
	"github.com/libhub/library-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeBookRepo struct {
	books     map[int64]*entity.Book
	nextID    int64
	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[int64]*entity.Book{}, nextID: 1}
}

func (r *fakeBookRepo) seed(b entity.Book) entity.Book {
	if b.ID == 0 {
		b.ID = r.nextID
		r.nextID++
	}
	cp := b
	r.books[b.ID] = &cp
	return b
}

func (r *fakeBookRepo) List(ctx context.Context) ([]entity.Book, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]entity.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookRepo) GetByID(ctx context.Context, id int64) (*entity.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) Create(ctx context.Context, b *entity.Book) error {
	if r.createErr != nil {
		return r.createErr
	}
	b.ID = r.nextID
	r.nextID++
	if b.PublicationDate.IsZero() {
		b.PublicationDate = time.Now()
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *entity.Book) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.books[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.books[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.books, id)
	return nil
}

type fakeCategoryRepo struct {
	byName    map[string]*entity.Category
	nextID    int64
	createErr error
	deleteErr error
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byName: map[string]*entity.Category{}, nextID: 1}
}

func (r *fakeCategoryRepo) seed(c entity.Category) entity.Category {
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	cp := c
	r.byName[c.Name] = &cp
	return c
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, 0, len(r.byName))
	for _, c := range r.byName {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) Create(ctx context.Context, cat *entity.Category) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byName[cat.Name]; ok {
		return repository.ErrDuplicate
	}
	cat.ID = r.nextID
	r.nextID++
	cp := *cat
	r.byName[cat.Name] = &cp
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, cat *entity.Category) error {
	if existing, ok := r.byName[cat.Name]; ok && existing.ID != cat.ID {
		return repository.ErrDuplicate
	}
	for name, c := range r.byName {
		if c.ID == cat.ID {
			delete(r.byName, name)
			cp := *cat
			r.byName[cat.Name] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeCategoryRepo) DeleteByName(ctx context.Context, name string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byName[name]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byName, name)
	return nil
}

type fakeUserRepo struct {
	users   map[int64]*entity.User
	posts   map[int64]int
	reviews map[int64][]entity.Review
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   map[int64]*entity.User{},
		posts:   map[int64]int{},
		reviews: map[int64][]entity.Review{},
		nextID:  1,
	}
}

func (r *fakeUserRepo) seed(u entity.User, postsCnt int, reviews ...entity.Review) entity.User {
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	cp := u
	r.users[u.ID] = &cp
	r.posts[u.ID] = postsCnt
	r.reviews[u.ID] = reviews
	return u
}

func (r *fakeUserRepo) ListWithPosts(ctx context.Context) ([]repository.UserWithPosts, error) {
	out := make([]repository.UserWithPosts, 0, len(r.users))
	for id, u := range r.users {
		// mirrors the store: only users with at least one post are listed
		if r.posts[id] > 0 {
			out = append(out, repository.UserWithPosts{User: *u, PostsCnt: r.posts[id]})
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	u.ID = r.nextID
	u.DateJoined = time.Now()
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) ReviewsByUserIDs(ctx context.Context, ids []int64) (map[int64][]entity.Review, error) {
	out := map[int64][]entity.Review{}
	for _, id := range ids {
		if revs, ok := r.reviews[id]; ok && len(revs) > 0 {
			out[id] = revs
		}
	}
	return out, nil
}

type fakeBlacklist struct {
	revoked map[string]bool
}

func newFakeBlacklist() *fakeBlacklist { return &fakeBlacklist{revoked: map[string]bool{}} }

func (b *fakeBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	b.revoked[jti] = true
	return nil
}

func (b *fakeBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return b.revoked[jti], nil
}

type recordingNotifier struct {
	categoryEvents  []string
	moderatorEvents []string
}

func (n *recordingNotifier) CategorySaved(ctx context.Context, kind notifier.EventKind, name string) {
	n.categoryEvents = append(n.categoryEvents, string(kind)+":"+name)
}

func (n *recordingNotifier) ModeratorCreated(ctx context.Context, username, email string) {
	n.moderatorEvents = append(n.moderatorEvents, username+":"+email)
}
