package feed

import (
	"github.com/avdeyev/postline/internal/models"
	"github.com/avdeyev/postline/internal/repositories"
)

// Composer produces the ordered, paginated post listings for every feed scope.
// Ordering comes from the repositories (created_at DESC, id DESC); the composer
// only decides which posts are in scope and how the page window is cut.
type Composer struct {
	postRepository   repositories.PostRepository
	groupRepository  repositories.GroupRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	pageSize         int
}

// NewComposer creates a new Composer. pageSize is the fixed page size shared by
// every feed variant.
func NewComposer(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	pageSize int,
) *Composer {
	return &Composer{
		postRepository:   postRepo,
		groupRepository:  groupRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		pageSize:         pageSize,
	}
}

// Public returns page `number` of all posts, newest first.
func (c *Composer) Public(number int) (Page[models.Post], error) {
	posts, err := c.postRepository.GetAllPosts()
	if err != nil {
		return Page[models.Post]{}, err
	}
	return Paginate(posts, number, c.pageSize), nil
}

// Group returns page `number` of the posts belonging to the group with the given
// slug, plus the group itself. Unknown slugs surface ErrGroupNotFound.
func (c *Composer) Group(slug string, number int) (Page[models.Post], *models.Group, error) {
	group, err := c.groupRepository.GetGroupBySlug(slug)
	if err != nil {
		return Page[models.Post]{}, nil, err
	}
	posts, err := c.postRepository.GetPostsByGroupID(group.ID)
	if err != nil {
		return Page[models.Post]{}, nil, err
	}
	return Paginate(posts, number, c.pageSize), group, nil
}

// Author returns page `number` of one author's posts plus the author. The page's
// Total is the author's full post count. Unknown usernames surface
// ErrUserNotFound.
func (c *Composer) Author(username string, number int) (Page[models.Post], *models.User, error) {
	author, err := c.userRepository.GetUserByUsername(username)
	if err != nil {
		return Page[models.Post]{}, nil, err
	}
	posts, err := c.postRepository.GetPostsByAuthorID(author.ID)
	if err != nil {
		return Page[models.Post]{}, nil, err
	}
	return Paginate(posts, number, c.pageSize), author, nil
}

// Followed returns page `number` of the posts written by authors the viewer
// follows. A viewer following nobody gets an empty page, not an error.
func (c *Composer) Followed(viewerID uint, number int) (Page[models.Post], error) {
	authorIDs, err := c.followRepository.GetFollowedAuthorIDs(viewerID)
	if err != nil {
		return Page[models.Post]{}, err
	}
	posts, err := c.postRepository.GetPostsByAuthorIDs(authorIDs)
	if err != nil {
		return Page[models.Post]{}, err
	}
	return Paginate(posts, number, c.pageSize), nil
}
