package service

import (
	"log/slog"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
	"filmorate-service/internal/storage"
)

// UserService orchestrates user CRUD and the friendship graph.
type UserService struct {
	users   storage.UserStorage
	friends storage.FriendshipStorage
	films   storage.FilmStorage
	feed    *FeedService
}

// NewUserService creates a new UserService.
func NewUserService(users storage.UserStorage, friends storage.FriendshipStorage, films storage.FilmStorage, feed *FeedService) *UserService {
	return &UserService{users: users, friends: friends, films: films, feed: feed}
}

// FindAll returns all users.
func (s *UserService) FindAll() ([]models.User, error) {
	return s.users.FindAll()
}

// FindByID returns a user by id.
func (s *UserService) FindByID(id int64) (*models.User, error) {
	return s.users.FindByID(id)
}

// Create validates and stores a new user.
func (s *UserService) Create(user models.User) (*models.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return s.users.Create(user)
}

// Update validates and rewrites an existing user.
func (s *UserService) Update(user models.User) (*models.User, error) {
	if user.ID == 0 {
		return nil, apperr.Validation("user id must be set")
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return s.users.Update(user)
}

// Delete removes a user together with their friendship edges and likes,
// so the deleted user stops counting toward popularity and never shows
// up in other users' friend lists.
func (s *UserService) Delete(id int64) error {
	if _, err := s.users.FindByID(id); err != nil {
		return err
	}
	if err := s.friends.RemoveUser(id); err != nil {
		return err
	}
	if err := s.films.RemoveUserLikes(id); err != nil {
		return err
	}
	return s.users.Delete(id)
}

// AddFriend runs the two-step friendship flow: the requester's edge is
// created and confirmed, the mirror edge stays pending until the other
// side adds back.
func (s *UserService) AddFriend(userID, friendID int64) error {
	if err := s.checkBoth(userID, friendID); err != nil {
		return err
	}
	if err := s.friends.Request(userID, friendID); err != nil {
		return err
	}
	if err := s.friends.Confirm(userID, friendID); err != nil {
		return err
	}
	if err := s.friends.Request(friendID, userID); err != nil {
		return err
	}
	s.record(userID, friendID, models.EventTypeFriend, models.OperationAdd)
	return nil
}

// ConfirmFriend flips the directed edge user->friend to confirmed.
func (s *UserService) ConfirmFriend(userID, friendID int64) error {
	if err := s.checkBoth(userID, friendID); err != nil {
		return err
	}
	return s.friends.Confirm(userID, friendID)
}

// RemoveFriend deletes the directed edge user->friend. Removing an
// absent edge is not an error.
func (s *UserService) RemoveFriend(userID, friendID int64) error {
	if err := s.checkBoth(userID, friendID); err != nil {
		return err
	}
	if err := s.friends.Remove(userID, friendID); err != nil {
		return err
	}
	s.record(userID, friendID, models.EventTypeFriend, models.OperationRemove)
	return nil
}

// Friends returns the confirmed friends of a user.
func (s *UserService) Friends(userID int64) ([]models.User, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, err
	}
	ids, err := s.friends.Friends(userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ids)
}

// CommonFriends returns the intersection of two users' confirmed
// friends. The operation is commutative.
func (s *UserService) CommonFriends(userID, otherID int64) ([]models.User, error) {
	if err := s.checkBoth(userID, otherID); err != nil {
		return nil, err
	}
	userFriends, err := s.friends.Friends(userID)
	if err != nil {
		return nil, err
	}
	otherFriends, err := s.friends.Friends(otherID)
	if err != nil {
		return nil, err
	}

	otherSet := make(map[int64]struct{}, len(otherFriends))
	for _, id := range otherFriends {
		otherSet[id] = struct{}{}
	}
	common := make([]int64, 0)
	for _, id := range userFriends {
		if _, ok := otherSet[id]; ok {
			common = append(common, id)
		}
	}
	return s.resolve(common)
}

// Feed returns the activity feed of a user.
func (s *UserService) Feed(userID int64) ([]models.Event, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, err
	}
	return s.feed.ForUser(userID)
}

func (s *UserService) checkBoth(userID, otherID int64) error {
	if _, err := s.users.FindByID(userID); err != nil {
		return err
	}
	if _, err := s.users.FindByID(otherID); err != nil {
		return err
	}
	return nil
}

func (s *UserService) resolve(ids []int64) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.FindByID(id)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (s *UserService) record(userID, entityID int64, eventType, operation string) {
	if _, err := s.feed.Record(userID, entityID, eventType, operation); err != nil {
		slog.Warn("failed to record feed event", "user_id", userID, "type", eventType, "error", err)
	}
}
