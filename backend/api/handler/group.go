package handler

import (
	"net/http"
	"strconv"
	"strings"

	"study-hub/backend/common"
	"study-hub/backend/model"

	"github.com/gin-gonic/gin"
)

// groupView is the wire shape of a study group: the JSON member and points
// columns exposed as structured fields.
type groupView struct {
	*model.StudyGroup
	Members []int64            `json:"members"`
	Points  model.PointsLedger `json:"points"`
}

func viewGroup(g *model.StudyGroup) groupView {
	return groupView{StudyGroup: g, Members: g.Members(), Points: g.Points()}
}

type addFriendPayload struct {
	SerialCode string `json:"serial_code" validate:"required,len=8"`
}

func AddFriend(c *gin.Context) {
	var payload addFriendPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	friendship, err := model.AddFriend(c.GetInt64("user_id"), strings.ToUpper(strings.TrimSpace(payload.SerialCode)))
	if err != nil {
		common.RespAppError(c, err)
		return
	}
	common.RespSuccess(c, friendship)
}

func AcceptFriend(c *gin.Context) {
	friendshipID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid friendship id")
		return
	}
	friendship, err := model.AcceptFriendship(friendshipID, c.GetInt64("user_id"))
	if err != nil {
		common.RespAppError(c, err)
		return
	}
	common.RespSuccess(c, friendship)
}

type friendView struct {
	FriendshipID int64  `json:"friendship_id"`
	Status       string `json:"status"`
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	SerialCode   string `json:"serial_code,omitempty"`
}

// ListFriends resolves the counterpart's profile and serial code for every
// friendship involving the caller, in either position.
func ListFriends(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		common.RespSuccess(c, []friendView{})
		return
	}
	friendships, err := model.ListFriendships(userID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to list friends", err)
		return
	}

	friends := make([]friendView, 0, len(friendships))
	for _, friendship := range friendships {
		otherID := friendship.OtherUser(userID)
		view := friendView{
			FriendshipID: friendship.ID,
			Status:       friendship.Status,
			UserID:       otherID,
		}
		if user, err := model.GetUserById(otherID); err == nil {
			view.Username = user.Username
			view.DisplayName = user.DisplayName
		}
		if settings, err := model.GetSettingsByUserID(otherID); err == nil {
			view.SerialCode = settings.SerialCode
		}
		friends = append(friends, view)
	}
	common.RespSuccess(c, friends)
}

type createGroupPayload struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

func CreateGroup(c *gin.Context) {
	var payload createGroupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	group, err := model.CreateGroup(c.GetInt64("user_id"), strings.TrimSpace(payload.Name), strings.TrimSpace(payload.Description))
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to create group", err)
		return
	}
	common.RespSuccess(c, viewGroup(group))
}

// ListGroups returns every group the caller is a member of, not only
// single-member groups.
func ListGroups(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		common.RespSuccess(c, []groupView{})
		return
	}
	groups, err := model.ListGroupsByMember(userID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to list groups", err)
		return
	}
	views := make([]groupView, 0, len(groups))
	for _, group := range groups {
		views = append(views, viewGroup(group))
	}
	common.RespSuccess(c, views)
}

func memberGroup(c *gin.Context) (*model.StudyGroup, bool) {
	groupID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid group id")
		return nil, false
	}
	group, err := model.GetGroupForMember(groupID, c.GetInt64("user_id"))
	if err != nil {
		common.RespAppError(c, err)
		return nil, false
	}
	return group, true
}

func GetGroupDetails(c *gin.Context) {
	group, ok := memberGroup(c)
	if !ok {
		return
	}
	common.RespSuccess(c, viewGroup(group))
}

func GetGroupMessages(c *gin.Context) {
	group, ok := memberGroup(c)
	if !ok {
		return
	}
	messages, err := model.GetGroupMessages(group.ID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to fetch messages", err)
		return
	}
	common.RespSuccess(c, messages)
}

type sendMessagePayload struct {
	Type    string `json:"type" validate:"required,oneof=text file link image"`
	Content string `json:"content" validate:"required"`
	FileID  int64  `json:"file_id"`
}

// SendMessage appends an immutable chat line and bumps the group's
// last-active stamp.
func SendMessage(c *gin.Context) {
	var payload sendMessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	group, ok := memberGroup(c)
	if !ok {
		return
	}
	if err := group.TouchGroup(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to update group", err)
		return
	}

	message := &model.GroupMessage{
		GroupID:   group.ID,
		UserID:    c.GetInt64("user_id"),
		Type:      payload.Type,
		Content:   payload.Content,
		FileID:    payload.FileID,
		Timestamp: model.NowMillis(),
	}
	if err := message.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to send message", err)
		return
	}
	common.RespSuccess(c, message)
}

type scheduleSessionPayload struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	StartTime   int64  `json:"start_time" validate:"required"`
	EndTime     int64  `json:"end_time" validate:"required"`
}

func ScheduleSession(c *gin.Context) {
	var payload scheduleSessionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	group, ok := memberGroup(c)
	if !ok {
		return
	}
	session, err := model.ScheduleSession(group.ID, c.GetInt64("user_id"),
		payload.Title, payload.Description, payload.StartTime, payload.EndTime)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to schedule session", err)
		return
	}
	common.RespSuccess(c, session)
}

func ListSessions(c *gin.Context) {
	group, ok := memberGroup(c)
	if !ok {
		return
	}
	sessions, err := model.ListGroupSessions(group.ID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to list sessions", err)
		return
	}
	common.RespSuccess(c, sessions)
}
