package model

import (
	apperrors "study-hub/backend/common/errors"

	"github.com/burugo/thing"
)

const FileTypeFolder = "folder"

// File is a stored file or folder. Only the S3 storage key lives here; the
// bytes themselves never touch the database. ParentFolderID is zero for
// root-level entries — the parent link is checked at write time, there is
// no foreign key.
type File struct {
	thing.BaseModel
	UserID         int64  `db:"user_id,index:idx_file_owner_parent" json:"user_id"`
	Name           string `db:"name" json:"name"`
	Path           string `db:"path" json:"path"`
	Type           string `db:"type" json:"type"`
	ParentFolderID int64  `db:"parent_folder_id,index:idx_file_owner_parent" json:"parent_folder_id"`
	IsFolder       bool   `db:"is_folder" json:"is_folder"`
	Color          string `db:"color" json:"color,omitempty"`
	StorageKey     string `db:"storage_key" json:"-"`
}

func (f *File) TableName() string {
	return "files"
}

var FileDB *thing.Thing[*File]

func FileInit() error {
	var err error
	FileDB, err = thing.Use[*File]()
	return err
}

// ListFiles returns the caller's entries directly under parentFolderID
// (zero = root).
func ListFiles(userID, parentFolderID int64) ([]*File, error) {
	return FileDB.Where("user_id = ? AND parent_folder_id = ?", userID, parentFolderID).
		Order("is_folder DESC, name ASC").All()
}

// GetFileForUser loads a file the user owns. Missing and not-owned are
// deliberately the same NotFound to avoid leaking other users' ids.
func GetFileForUser(fileID, userID int64) (*File, error) {
	file, err := FileDB.ByID(fileID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "file not found", err)
	}
	if file.UserID != userID {
		return nil, apperrors.NotFound("file not found")
	}
	return file, nil
}

// CreateFolder inserts a folder entry. Duplicate names within a parent are
// allowed. A non-zero parent must exist, be a folder and belong to the
// same user.
func CreateFolder(userID int64, name string, parentFolderID int64, color string) (*File, error) {
	if parentFolderID != 0 {
		if err := checkParentFolder(userID, parentFolderID); err != nil {
			return nil, err
		}
	}
	folder := &File{
		UserID:         userID,
		Name:           name,
		Path:           name,
		Type:           FileTypeFolder,
		ParentFolderID: parentFolderID,
		IsFolder:       true,
		Color:          color,
	}
	if err := FileDB.Save(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// SaveFile registers uploaded-blob metadata (phase three of the upload
// handshake: mint target, client PUTs bytes, register key).
func SaveFile(userID int64, storageKey, name, fileType string, parentFolderID int64) (*File, error) {
	if parentFolderID != 0 {
		if err := checkParentFolder(userID, parentFolderID); err != nil {
			return nil, err
		}
	}
	file := &File{
		UserID:         userID,
		Name:           name,
		Path:           name,
		Type:           fileType,
		ParentFolderID: parentFolderID,
		IsFolder:       false,
		StorageKey:     storageKey,
	}
	if err := FileDB.Save(file); err != nil {
		return nil, err
	}
	return file, nil
}

func checkParentFolder(userID, parentFolderID int64) error {
	parent, err := FileDB.ByID(parentFolderID)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeNotFound, "parent folder not found", err)
	}
	if parent.UserID != userID || !parent.IsFolder {
		return apperrors.InvalidOperation("parent must be a folder owned by you")
	}
	return nil
}

// DeleteFile removes exactly one record. Folder contents are not cascaded:
// children keep their parent reference and stay reachable by id.
func DeleteFile(fileID, userID int64) error {
	file, err := FileDB.ByID(fileID)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeAccessDenied, "file not found or access denied", err)
	}
	if file.UserID != userID {
		return apperrors.AccessDenied("file not found or access denied")
	}
	return FileDB.Delete(file)
}
