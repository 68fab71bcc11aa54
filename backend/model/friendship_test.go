package model

import (
	"testing"

	apperrors "study-hub/backend/common/errors"

	"github.com/stretchr/testify/assert"
)

func TestAddFriendBySerialCode(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	bobSettings, err := GetOrCreateSettings(bob.ID)
	assert.NoError(t, err)

	friendship, err := AddFriend(alice.ID, bobSettings.SerialCode)
	assert.NoError(t, err)
	assert.Equal(t, alice.ID, friendship.UserID1)
	assert.Equal(t, bob.ID, friendship.UserID2)
	assert.Equal(t, FriendshipPending, friendship.Status)
}

func TestAddFriendUnknownCode(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")

	_, err := AddFriend(alice.ID, "NOSUCH00")
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestAddFriendSelf(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	settings, err := GetOrCreateSettings(alice.ID)
	assert.NoError(t, err)

	_, err = AddFriend(alice.ID, settings.SerialCode)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidOperation))
}

// The unordered pair is unique: a second request in either direction is a
// conflict.
func TestAddFriendDuplicatePairConflictsBothOrders(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	aliceSettings, err := GetOrCreateSettings(alice.ID)
	assert.NoError(t, err)
	bobSettings, err := GetOrCreateSettings(bob.ID)
	assert.NoError(t, err)

	_, err = AddFriend(alice.ID, bobSettings.SerialCode)
	assert.NoError(t, err)

	_, err = AddFriend(alice.ID, bobSettings.SerialCode)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))

	_, err = AddFriend(bob.ID, aliceSettings.SerialCode)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestAcceptFriendshipOnlyByTarget(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	bobSettings, err := GetOrCreateSettings(bob.ID)
	assert.NoError(t, err)

	friendship, err := AddFriend(alice.ID, bobSettings.SerialCode)
	assert.NoError(t, err)

	// The requester cannot accept their own request.
	_, err = AcceptFriendship(friendship.ID, alice.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeAccessDenied))

	accepted, err := AcceptFriendship(friendship.ID, bob.ID)
	assert.NoError(t, err)
	assert.Equal(t, FriendshipAccepted, accepted.Status)

	_, err = AcceptFriendship(friendship.ID, bob.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestListFriendshipsCoversBothPositions(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	carol := createTestUser(t, "carol")
	aliceSettings, err := GetOrCreateSettings(alice.ID)
	assert.NoError(t, err)
	bobSettings, err := GetOrCreateSettings(bob.ID)
	assert.NoError(t, err)

	_, err = AddFriend(alice.ID, bobSettings.SerialCode)
	assert.NoError(t, err)
	_, err = AddFriend(carol.ID, aliceSettings.SerialCode)
	assert.NoError(t, err)

	friendships, err := ListFriendships(alice.ID)
	assert.NoError(t, err)
	assert.Len(t, friendships, 2)

	others := []int64{friendships[0].OtherUser(alice.ID), friendships[1].OtherUser(alice.ID)}
	assert.ElementsMatch(t, []int64{bob.ID, carol.ID}, others)
}
