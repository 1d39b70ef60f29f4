// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "Password123!"

// Options tunes the generated data.
type Options struct {
	// FastHash hashes passwords at bcrypt.MinCost.
	FastHash bool
	// DryRun builds entities without writing them.
	DryRun bool
	// MaxDays spreads created_at over this many past days.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand

	hashOnce sync.Once
	hash     string
	hashErr  error
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{
		db:   db,
		opts: opts,
		// #nosec G404: acceptable for seeding
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (f *Factory) passwordHash() (string, error) {
	f.hashOnce.Do(func() {
		cost := bcrypt.DefaultCost
		if f.opts.FastHash {
			cost = bcrypt.MinCost
		}
		raw, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
		f.hash, f.hashErr = string(raw), err
	})
	return f.hash, f.hashErr
}

// pastTime returns a realistic created_at within MaxDays.
func (f *Factory) pastTime() time.Time {
	back := time.Duration(f.rng.Intn(f.opts.MaxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// username builds a handle that satisfies the username rules.
func username(n int) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, gofakeit.Username())
	if base == "" {
		base = "user"
	}
	if len(base) > 20 {
		base = base[:20]
	}
	return fmt.Sprintf("%s_%d", base, n)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(n int, overrides ...func(*models.User)) (*models.User, error) {
	hash, err := f.passwordHash()
	if err != nil {
		return nil, err
	}

	name := username(n)
	user := &models.User{
		Username:     name,
		Password:     hash,
		DisplayName:  gofakeit.Name(),
		Email:        name + "@example.com",
		Bio:          gofakeit.Sentence(10),
		Location:     gofakeit.City(),
		ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", name),
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		log.Printf("[dry-run] CreateUser: %s", user.Username)
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post by author without persisting it.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Username:  author.Username,
		Text:      gofakeit.Paragraph(1, f.rng.Intn(3)+1, 12, " "),
		CreatedAt: f.pastTime(),
	}
	if f.rng.Float32() < 0.3 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if f.opts.DryRun || len(posts) == 0 {
		return nil
	}
	return f.db.CreateInBatches(posts, 100).Error
}

// CreateComment persists a comment by author on post, after the post.
func (f *Factory) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:    post.ID,
		Username:  author.Username,
		Text:      gofakeit.Sentence(8),
		CreatedAt: post.CreatedAt.Add(time.Duration(f.rng.Intn(72)+1) * time.Hour),
	}
	if comment.CreatedAt.After(time.Now()) {
		comment.CreatedAt = time.Now()
	}
	if f.opts.DryRun {
		return comment, nil
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post. Existing likes are kept.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	if f.opts.DryRun {
		return nil
	}
	like := &models.Like{PostID: post.ID, Username: user.Username}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
}

// CreateFollow persists follower → followee. Existing edges are kept.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	edge := &models.Follow{Follower: follower.Username, Followee: followee.Username}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
}

// CreateFriendRequest persists a pending request from → to.
func (f *Factory) CreateFriendRequest(from, to *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	req := &models.FriendRequest{
		FromUsername: from.Username,
		ToUsername:   to.Username,
		Status:       models.FriendRequestPending,
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(req).Error
}
