package model

import (
	apperrors "study-hub/backend/common/errors"

	"github.com/burugo/thing"
)

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship is an ordered pair (requester, target) with unordered-pair
// uniqueness: at most one row exists for any two users, in either order.
// The check is read-then-write and therefore racy under concurrent adds;
// that race is documented, not fixed.
type Friendship struct {
	thing.BaseModel
	UserID1 int64  `db:"user_id1,index" json:"user_id1"`
	UserID2 int64  `db:"user_id2,index" json:"user_id2"`
	Status  string `db:"status" json:"status"`
}

func (f *Friendship) TableName() string {
	return "friendships"
}

var FriendshipDB *thing.Thing[*Friendship]

func FriendshipInit() error {
	var err error
	FriendshipDB, err = thing.Use[*Friendship]()
	return err
}

func findFriendshipPair(a, b int64) (*Friendship, error) {
	rows, err := FriendshipDB.Where(
		"(user_id1 = ? AND user_id2 = ?) OR (user_id1 = ? AND user_id2 = ?)",
		a, b, b, a,
	).Fetch(0, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// AddFriend resolves the serial code and inserts a pending friendship.
func AddFriend(userID int64, serialCode string) (*Friendship, error) {
	targetSettings, err := GetSettingsBySerialCode(serialCode)
	if err != nil {
		return nil, err
	}
	if targetSettings.UserID == userID {
		return nil, apperrors.InvalidOperation("cannot add yourself")
	}
	existing, err := findFriendshipPair(userID, targetSettings.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("friendship already exists")
	}

	friendship := &Friendship{
		UserID1: userID,
		UserID2: targetSettings.UserID,
		Status:  FriendshipPending,
	}
	if err := FriendshipDB.Save(friendship); err != nil {
		return nil, err
	}
	return friendship, nil
}

// AcceptFriendship flips a pending row to accepted; only the target of the
// request may accept it.
func AcceptFriendship(friendshipID, userID int64) (*Friendship, error) {
	friendship, err := FriendshipDB.ByID(friendshipID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "friendship not found", err)
	}
	if friendship.UserID2 != userID {
		return nil, apperrors.AccessDenied("only the requested user can accept")
	}
	if friendship.Status == FriendshipAccepted {
		return nil, apperrors.Conflict("friendship already accepted")
	}
	friendship.Status = FriendshipAccepted
	if err := FriendshipDB.Save(friendship); err != nil {
		return nil, err
	}
	return friendship, nil
}

// ListFriendships returns every row involving the user, either position.
func ListFriendships(userID int64) ([]*Friendship, error) {
	return FriendshipDB.Where("user_id1 = ? OR user_id2 = ?", userID, userID).All()
}

// OtherUser returns the counterpart of the given user in this friendship.
func (f *Friendship) OtherUser(userID int64) int64 {
	if f.UserID1 == userID {
		return f.UserID2
	}
	return f.UserID1
}
