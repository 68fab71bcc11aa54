package model

import (
	"encoding/json"
	"strconv"

	apperrors "study-hub/backend/common/errors"

	"github.com/burugo/thing"
)

// PointsLedger tracks quiz points per user id (stringified, JSON object
// keys), monthly alongside the all-time total.
type PointsLedger struct {
	Monthly map[string]int64 `json:"monthly"`
	Total   map[string]int64 `json:"total"`
}

// StudyGroup is a peer group. Members and the points ledgers are JSON
// columns; the creator is always a member and membership only grows.
type StudyGroup struct {
	thing.BaseModel
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	CreatorID   int64  `db:"creator_id,index" json:"creator_id"`
	MembersJSON string `db:"members_json" json:"-"`
	PointsJSON  string `db:"points_json" json:"-"`
	LastActive  int64  `db:"last_active" json:"last_active"`
}

func (g *StudyGroup) TableName() string {
	return "study_groups"
}

var StudyGroupDB *thing.Thing[*StudyGroup]

func StudyGroupInit() error {
	var err error
	StudyGroupDB, err = thing.Use[*StudyGroup]()
	return err
}

func (g *StudyGroup) Members() []int64 {
	var members []int64
	if g.MembersJSON != "" {
		_ = json.Unmarshal([]byte(g.MembersJSON), &members)
	}
	return members
}

func (g *StudyGroup) SetMembers(members []int64) {
	data, _ := json.Marshal(members)
	g.MembersJSON = string(data)
}

func (g *StudyGroup) HasMember(userID int64) bool {
	for _, id := range g.Members() {
		if id == userID {
			return true
		}
	}
	return false
}

func (g *StudyGroup) Points() PointsLedger {
	ledger := PointsLedger{Monthly: map[string]int64{}, Total: map[string]int64{}}
	if g.PointsJSON != "" {
		_ = json.Unmarshal([]byte(g.PointsJSON), &ledger)
	}
	if ledger.Monthly == nil {
		ledger.Monthly = map[string]int64{}
	}
	if ledger.Total == nil {
		ledger.Total = map[string]int64{}
	}
	return ledger
}

func (g *StudyGroup) SetPoints(ledger PointsLedger) {
	data, _ := json.Marshal(ledger)
	g.PointsJSON = string(data)
}

// AwardPoints adds to both ledgers for the given user.
func (g *StudyGroup) AwardPoints(userID, points int64) {
	ledger := g.Points()
	key := strconv.FormatInt(userID, 10)
	ledger.Monthly[key] += points
	ledger.Total[key] += points
	g.SetPoints(ledger)
}

// CreateGroup inserts a group with the creator as its only member.
func CreateGroup(creatorID int64, name, description string) (*StudyGroup, error) {
	group := &StudyGroup{
		Name:        name,
		Description: description,
		CreatorID:   creatorID,
		LastActive:  NowMillis(),
	}
	group.SetMembers([]int64{creatorID})
	group.SetPoints(PointsLedger{Monthly: map[string]int64{}, Total: map[string]int64{}})
	if err := StudyGroupDB.Save(group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroupsByMember returns every group the user belongs to. The LIKE on
// the JSON column only prefilters; HasMember is the real membership test,
// so a group with members [3, 7] is found for user 3 and never for user 13.
func ListGroupsByMember(userID int64) ([]*StudyGroup, error) {
	pattern := "%" + strconv.FormatInt(userID, 10) + "%"
	candidates, err := StudyGroupDB.Where("members_json LIKE ?", pattern).
		Order("last_active DESC").All()
	if err != nil {
		return nil, err
	}
	groups := make([]*StudyGroup, 0, len(candidates))
	for _, g := range candidates {
		if g.HasMember(userID) {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// GetGroupForMember loads a group the user belongs to; NotFound otherwise.
func GetGroupForMember(groupID, userID int64) (*StudyGroup, error) {
	group, err := StudyGroupDB.ByID(groupID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "group not found", err)
	}
	if !group.HasMember(userID) {
		return nil, apperrors.AccessDenied("group not found or access denied")
	}
	return group, nil
}

func (g *StudyGroup) Update() error {
	return StudyGroupDB.Save(g)
}

// TouchGroup bumps last_active; called on every message send.
func (g *StudyGroup) TouchGroup() error {
	g.LastActive = NowMillis()
	return StudyGroupDB.Save(g)
}
