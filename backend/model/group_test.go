package model

import (
	"strconv"
	"testing"

	apperrors "study-hub/backend/common/errors"

	"github.com/stretchr/testify/assert"
)

func TestCreateGroupCreatorIsSoleMember(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")

	group, err := CreateGroup(alice.ID, "exam prep", "calculus finals")
	assert.NoError(t, err)
	assert.Equal(t, alice.ID, group.CreatorID)
	assert.Equal(t, []int64{alice.ID}, group.Members())
	assert.NotZero(t, group.LastActive)
}

func TestListGroupsByMemberReturnsForEveryMember(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	carol := createTestUser(t, "carol")

	group, err := CreateGroup(alice.ID, "exam prep", "")
	assert.NoError(t, err)
	group.SetMembers([]int64{alice.ID, bob.ID, carol.ID})
	assert.NoError(t, group.Update())

	for _, member := range []*User{alice, bob, carol} {
		groups, err := ListGroupsByMember(member.ID)
		assert.NoError(t, err)
		assert.Len(t, groups, 1)
		assert.Equal(t, group.ID, groups[0].ID)
	}
}

// Membership means the id appears in the member list, not that its digits
// appear in someone else's id.
func TestListGroupsByMemberRejectsDigitOverlap(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")

	group, err := CreateGroup(alice.ID, "exam prep", "")
	assert.NoError(t, err)
	group.SetMembers([]int64{13})
	assert.NoError(t, group.Update())

	groups, err := ListGroupsByMember(3)
	assert.NoError(t, err)
	assert.Empty(t, groups)

	groups, err = ListGroupsByMember(13)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestGetGroupForMemberDeniesOutsiders(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	group, err := CreateGroup(alice.ID, "exam prep", "")
	assert.NoError(t, err)

	_, err = GetGroupForMember(group.ID, bob.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeAccessDenied))

	got, err := GetGroupForMember(group.ID, alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, group.ID, got.ID)
}

func TestAwardPointsAccumulatesMonthlyAndTotal(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")

	group, err := CreateGroup(alice.ID, "exam prep", "")
	assert.NoError(t, err)

	group.AwardPoints(alice.ID, 3)
	group.AwardPoints(alice.ID, 2)
	assert.NoError(t, group.Update())

	reloaded, err := GetGroupForMember(group.ID, alice.ID)
	assert.NoError(t, err)
	ledger := reloaded.Points()
	key := strconv.FormatInt(alice.ID, 10)
	assert.Equal(t, int64(5), ledger.Monthly[key])
	assert.Equal(t, int64(5), ledger.Total[key])
}
