package service

import (
	"context"
	"testing"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

func TestAddFriendIsOneSidedUntilConfirmed(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")
	bob := f.mustUser(t, "bob")

	if err := f.users.AddFriend(alice.ID, bob.ID); err != nil {
		t.Fatalf("add friend: %v", err)
	}

	aliceFriends, err := f.users.Friends(alice.ID)
	if err != nil {
		t.Fatalf("friends of alice: %v", err)
	}
	if len(aliceFriends) != 1 || aliceFriends[0].ID != bob.ID {
		t.Fatalf("expected alice to have bob as friend, got %+v", aliceFriends)
	}

	// Bob received only a pending request, it does not show up as a friend.
	bobFriends, err := f.users.Friends(bob.ID)
	if err != nil {
		t.Fatalf("friends of bob: %v", err)
	}
	if len(bobFriends) != 0 {
		t.Fatalf("expected bob to have no confirmed friends yet, got %+v", bobFriends)
	}

	if err := f.users.ConfirmFriend(bob.ID, alice.ID); err != nil {
		t.Fatalf("confirm friend: %v", err)
	}
	bobFriends, err = f.users.Friends(bob.ID)
	if err != nil {
		t.Fatalf("friends of bob: %v", err)
	}
	if len(bobFriends) != 1 || bobFriends[0].ID != alice.ID {
		t.Fatalf("expected bob to have alice as friend, got %+v", bobFriends)
	}
}

func TestAddFriendBackConfirmsBothSides(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")
	bob := f.mustUser(t, "bob")

	if err := f.users.AddFriend(alice.ID, bob.ID); err != nil {
		t.Fatalf("add friend: %v", err)
	}
	if err := f.users.AddFriend(bob.ID, alice.ID); err != nil {
		t.Fatalf("add friend back: %v", err)
	}

	for _, userID := range []int64{alice.ID, bob.ID} {
		friends, err := f.users.Friends(userID)
		if err != nil {
			t.Fatalf("friends of %d: %v", userID, err)
		}
		if len(friends) != 1 {
			t.Fatalf("expected exactly one friend for %d, got %+v", userID, friends)
		}
	}
}

func TestRemoveFriendIsIdempotent(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")
	bob := f.mustUser(t, "bob")

	if err := f.users.AddFriend(alice.ID, bob.ID); err != nil {
		t.Fatalf("add friend: %v", err)
	}
	if err := f.users.RemoveFriend(alice.ID, bob.ID); err != nil {
		t.Fatalf("remove friend: %v", err)
	}
	if err := f.users.RemoveFriend(alice.ID, bob.ID); err != nil {
		t.Fatalf("remove friend twice: %v", err)
	}

	friends, err := f.users.Friends(alice.ID)
	if err != nil {
		t.Fatalf("friends: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("expected no friends after removal, got %+v", friends)
	}
}

func TestAddFriendRejectsUnknownUsers(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")

	if err := f.users.AddFriend(alice.ID, 999); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown friend, got %v", err)
	}
	if err := f.users.AddFriend(999, alice.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}

func TestCommonFriendsIsCommutative(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")
	bob := f.mustUser(t, "bob")
	carol := f.mustUser(t, "carol")
	dave := f.mustUser(t, "dave")

	for _, userID := range []int64{alice.ID, bob.ID} {
		if err := f.users.AddFriend(userID, carol.ID); err != nil {
			t.Fatalf("add friend carol: %v", err)
		}
	}
	if err := f.users.AddFriend(alice.ID, dave.ID); err != nil {
		t.Fatalf("add friend dave: %v", err)
	}

	ab, err := f.users.CommonFriends(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("common friends: %v", err)
	}
	ba, err := f.users.CommonFriends(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("common friends reversed: %v", err)
	}
	if len(ab) != 1 || ab[0].ID != carol.ID {
		t.Fatalf("expected carol as the only common friend, got %+v", ab)
	}
	if len(ba) != len(ab) || ba[0].ID != ab[0].ID {
		t.Fatalf("expected commutative result, got %+v vs %+v", ab, ba)
	}
}

func TestDeleteUserCascadesLikesAndFriendships(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.mustUser(t, "alice")
	bob := f.mustUser(t, "bob")
	film := f.mustFilm(t, "Orphan Like")

	if _, err := f.films.Like(ctx, film.ID, alice.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := f.users.AddFriend(bob.ID, alice.ID); err != nil {
		t.Fatalf("add friend: %v", err)
	}

	if err := f.users.Delete(alice.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	popular, err := f.films.Popular(ctx, 10, 0, 0)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if len(popular) != 0 {
		t.Fatalf("deleted user's like still counted: %+v", popular)
	}

	friends, err := f.users.Friends(bob.ID)
	if err != nil {
		t.Fatalf("friends of bob: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("deleted user still listed as friend: %+v", friends)
	}
}

func TestUpdateUnknownUserReturnsNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.users.Update(models.User{
		ID:       42,
		Email:    "ghost@example.com",
		Login:    "ghost",
		Birthday: "1980-01-01",
	})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFriendEventsAppearInFeed(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")
	bob := f.mustUser(t, "bob")

	if err := f.users.AddFriend(alice.ID, bob.ID); err != nil {
		t.Fatalf("add friend: %v", err)
	}
	if err := f.users.RemoveFriend(alice.ID, bob.ID); err != nil {
		t.Fatalf("remove friend: %v", err)
	}

	events, err := f.users.Feed(alice.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 feed events, got %d", len(events))
	}
	if events[0].EventType != models.EventTypeFriend || events[0].Operation != models.OperationAdd {
		t.Fatalf("unexpected first event %+v", events[0])
	}
	if events[1].Operation != models.OperationRemove {
		t.Fatalf("unexpected second event %+v", events[1])
	}
	if events[0].EventID >= events[1].EventID {
		t.Fatalf("expected ascending event ids, got %d then %d", events[0].EventID, events[1].EventID)
	}
	if events[0].EntityID != bob.ID {
		t.Fatalf("expected event entity %d, got %d", bob.ID, events[0].EntityID)
	}
}
