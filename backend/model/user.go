package model

import (
	"study-hub/backend/common"
	apperrors "study-hub/backend/common/errors"

	"github.com/burugo/thing"
)

const (
	UserStatusEnabled  = 1
	UserStatusDisabled = 2
)

// User is an account record. Password is bcrypt-hashed before save and
// never serialized.
type User struct {
	thing.BaseModel
	Username    string `db:"username,uniqueIndex" json:"username"`
	Password    string `db:"password" json:"-"`
	DisplayName string `db:"display_name" json:"display_name"`
	Email       string `db:"email,index" json:"email"`
	Status      int    `db:"status" json:"status"`
}

func (u *User) TableName() string {
	return "users"
}

var UserDB *thing.Thing[*User]

func UserInit() error {
	var err error
	UserDB, err = thing.Use[*User]()
	return err
}

func GetUserById(id int64) (*User, error) {
	if id == 0 {
		return nil, apperrors.NotFound("user not found")
	}
	user, err := UserDB.ByID(id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "user not found", err)
	}
	return user, nil
}

func GetUserByUsername(username string) (*User, error) {
	users, err := UserDB.Where("username = ?", username).Fetch(0, 1)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.NotFound("user not found")
	}
	return users[0], nil
}

// Insert hashes the password and saves the record.
func (u *User) Insert() error {
	if u.Password != "" {
		hashed, err := common.Password2Hash(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}
	if u.Status == 0 {
		u.Status = UserStatusEnabled
	}
	return UserDB.Save(u)
}

func (u *User) Update() error {
	return UserDB.Save(u)
}

// ValidateAndFill checks the credentials and loads the full record on match.
func (u *User) ValidateAndFill() error {
	if u.Username == "" || u.Password == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "username and password are required")
	}
	stored, err := GetUserByUsername(u.Username)
	if err != nil {
		return apperrors.Unauthenticated("invalid username or password")
	}
	if !common.ValidatePasswordAndHash(u.Password, stored.Password) {
		return apperrors.Unauthenticated("invalid username or password")
	}
	if stored.Status == UserStatusDisabled {
		return apperrors.AccessDenied("user is disabled")
	}
	*u = *stored
	return nil
}
