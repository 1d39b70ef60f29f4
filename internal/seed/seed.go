package seed

import (
	"fmt"
	"log"

	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"gorm.io/gorm"
)

// Seeder populates a database with a connected, active community.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// Stats counts what a seeding run created.
type Stats struct {
	Users          int
	Follows        int
	FriendRequests int
	Posts          int
	Likes          int
	Comments       int
}

// NewSeeder returns a Seeder writing through db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes every row the application owns, children first.
func (s *Seeder) ClearAll() error {
	log.Println("clearing existing data")
	all := s.db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Like{},
		&models.Post{},
		&models.FriendRequest{},
		&models.Follow{},
		&models.User{},
	} {
		if err := all.Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedSocialMesh creates count users, has each follow a handful of others
// and leaves some friend requests pending.
func (s *Seeder) SeedSocialMesh(count int, stats *Stats) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := s.factory.CreateUser(i)
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	stats.Users = len(users)
	if len(users) < 2 {
		return users, nil
	}

	rng := s.factory.rng
	for i, follower := range users {
		follows := rng.Intn(min(len(users)-1, 8)) + 1
		for _, j := range rng.Perm(len(users))[:follows+1] {
			if j == i {
				continue
			}
			if err := s.factory.CreateFollow(follower, users[j]); err != nil {
				return nil, fmt.Errorf("create follow: %w", err)
			}
			stats.Follows++
		}
	}

	for i := 0; i < len(users)/3; i++ {
		from := users[rng.Intn(len(users))]
		to := users[rng.Intn(len(users))]
		if from.Username == to.Username {
			continue
		}
		if err := s.factory.CreateFriendRequest(from, to); err != nil {
			return nil, fmt.Errorf("create friend request: %w", err)
		}
		stats.FriendRequests++
	}

	return users, nil
}

// SeedEngagement writes numPosts posts by random authors, then likes and
// comments on them from other users.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int, stats *Stats) error {
	if len(users) == 0 || numPosts <= 0 {
		return nil
	}
	rng := s.factory.rng

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		posts = append(posts, s.factory.BuildPost(users[rng.Intn(len(users))]))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("create posts: %w", err)
	}
	stats.Posts = len(posts)

	for _, post := range posts {
		for _, j := range rng.Perm(len(users))[:rng.Intn(len(users))] {
			if users[j].Username == post.Username {
				continue
			}
			if err := s.factory.CreateLike(users[j], post); err != nil {
				return fmt.Errorf("create like: %w", err)
			}
			stats.Likes++
		}
		for c := rng.Intn(4); c > 0; c-- {
			if _, err := s.factory.CreateComment(users[rng.Intn(len(users))], post); err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			stats.Comments++
		}
	}
	return nil
}

// Run clears (optionally) and seeds in one go.
func (s *Seeder) Run(numUsers, numPosts int, clean bool) (*Stats, error) {
	if clean {
		if err := s.ClearAll(); err != nil {
			return nil, err
		}
	}

	stats := &Stats{}
	users, err := s.SeedSocialMesh(numUsers, stats)
	if err != nil {
		return nil, err
	}
	if err := s.SeedEngagement(users, numPosts, stats); err != nil {
		return nil, err
	}

	log.Printf("seeded users=%d follows=%d friend_requests=%d posts=%d likes=%d comments=%d",
		stats.Users, stats.Follows, stats.FriendRequests, stats.Posts, stats.Likes, stats.Comments)
	return stats, nil
}
