package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"alumni-portal-backend/internal/model"
)

// ErrDuplicate is returned when a create violates a uniqueness constraint
// (university email/slug, user email).
var ErrDuplicate = errors.New("duplicate record")

// directoryLimit caps directory and search result sets.
const directoryLimit = 50

// DirectoryFilter holds the equality filters for the member directory.
type DirectoryFilter struct {
	GraduationYear *int
	CurrentCity    string
	Company        string
	Designation    string
}

// ProfileUpdate is the allow-listed set of fields a member may change on
// their own profile. Status, role, email, and university are deliberately
// absent: those are either privileged or immutable.
type ProfileUpdate struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	GraduationYear *int    `json:"graduationYear"`
	Degree         *string `json:"degree"`
	CurrentCity    *string `json:"currentCity"`
	Company        *string `json:"company"`
	Designation    *string `json:"designation"`
	Bio            *string `json:"bio"`
	PhotoURL       *string `json:"photoUrl"`
}

// Store defines the interface for the multi-step database operations.
// Handlers perform plain single-record CRUD directly through DB().
type Store interface {
	DB() *gorm.DB

	CreateUniversity(ctx context.Context, u *model.University) error
	UniversityByEmail(ctx context.Context, email string) (model.University, error)
	UniversityByID(ctx context.Context, id int64) (model.University, error)

	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (model.User, error)
	UserByID(ctx context.Context, id int64) (model.User, error)
	UpdateUserProfile(ctx context.Context, id int64, upd ProfileUpdate) (model.User, error)

	PendingUsers(ctx context.Context, universityID int64) ([]model.User, error)
	SetUserStatus(ctx context.Context, id int64, status string) (model.User, error)

	Directory(ctx context.Context, universityID int64, f DirectoryFilter) ([]model.User, error)
	SearchUsers(ctx context.Context, name, email string) ([]model.User, error)

	MessageThread(ctx context.Context, a, b int64) ([]model.Message, error)
	MarkThreadRead(ctx context.Context, receiverID, senderID int64) (int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// CreateUniversity persists a new university, failing with ErrDuplicate when
// the email or the derived slug is already taken.
func (s *gormStore) CreateUniversity(ctx context.Context, u *model.University) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.University{}).
			Where("email = ? OR slug = ?", u.Email, u.Slug).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check university uniqueness: %w", err)
		}
		if count > 0 {
			return ErrDuplicate
		}
		if err := tx.Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to create university: %w", err)
		}
		return nil
	})
}

func (s *gormStore) UniversityByEmail(ctx context.Context, email string) (model.University, error) {
	var u model.University
	err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return u, err
}

func (s *gormStore) UniversityByID(ctx context.Context, id int64) (model.University, error) {
	var u model.University
	err := s.db.WithContext(ctx).First(&u, id).Error
	return u, err
}

// CreateUser persists a new member, failing with ErrDuplicate when the email
// is already registered. The caller is responsible for forcing the pending
// status and hashing the password.
func (s *gormStore) CreateUser(ctx context.Context, u *model.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).
			Where("email = ?", u.Email).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check user uniqueness: %w", err)
		}
		if count > 0 {
			return ErrDuplicate
		}
		if err := tx.Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicate
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
}

func (s *gormStore) UserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Preload("University").First(&u, "email = ?", email).Error
	return u, err
}

func (s *gormStore) UserByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Preload("University").First(&u, id).Error
	return u, err
}

// UpdateUserProfile applies the allow-listed profile fields to the user and
// returns the updated record. A missing id yields gorm.ErrRecordNotFound.
func (s *gormStore) UpdateUserProfile(ctx context.Context, id int64, upd ProfileUpdate) (model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return err
		}

		updates := map[string]any{}
		if upd.Name != nil {
			updates["name"] = *upd.Name
		}
		if upd.Phone != nil {
			updates["phone"] = *upd.Phone
		}
		if upd.GraduationYear != nil {
			updates["graduation_year"] = *upd.GraduationYear
		}
		if upd.Degree != nil {
			updates["degree"] = *upd.Degree
		}
		if upd.CurrentCity != nil {
			updates["current_city"] = *upd.CurrentCity
		}
		if upd.Company != nil {
			updates["company"] = *upd.Company
		}
		if upd.Designation != nil {
			updates["designation"] = *upd.Designation
		}
		if upd.Bio != nil {
			updates["bio"] = *upd.Bio
		}
		if upd.PhotoURL != nil {
			updates["photo_url"] = *upd.PhotoURL
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&u).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		return tx.Preload("University").First(&u, id).Error
	})
	return u, err
}

// PendingUsers lists members of the university awaiting approval.
func (s *gormStore) PendingUsers(ctx context.Context, universityID int64) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Where("university_id = ? AND status = ?", universityID, model.StatusPending).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

// SetUserStatus writes the status unconditionally: approve/reject may
// overwrite a previously terminal state, last write wins. A missing id
// yields gorm.ErrRecordNotFound.
func (s *gormStore) SetUserStatus(ctx context.Context, id int64, status string) (model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&u).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		u.Status = status
		return nil
	})
	return u, err
}

// Directory returns approved members of one university matching the equality
// filters, capped at 50 results.
func (s *gormStore) Directory(ctx context.Context, universityID int64, f DirectoryFilter) ([]model.User, error) {
	q := s.db.WithContext(ctx).
		Where("university_id = ? AND status = ?", universityID, model.StatusApproved)

	if f.GraduationYear != nil {
		q = q.Where("graduation_year = ?", *f.GraduationYear)
	}
	if f.CurrentCity != "" {
		q = q.Where("current_city = ?", f.CurrentCity)
	}
	if f.Company != "" {
		q = q.Where("company = ?", f.Company)
	}
	if f.Designation != "" {
		q = q.Where("designation = ?", f.Designation)
	}

	var users []model.User
	err := q.Order("name ASC").Limit(directoryLimit).Find(&users).Error
	return users, err
}

// escapeLike neutralizes LIKE metacharacters in user input so that a search
// term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// SearchUsers performs a case-insensitive partial match on name and email
// over approved members of any university, capped at 50 results.
func (s *gormStore) SearchUsers(ctx context.Context, name, email string) ([]model.User, error) {
	q := s.db.WithContext(ctx).
		Preload("University").
		Where("status = ?", model.StatusApproved)

	if name != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(name))+"%")
	}
	if email != "" {
		q = q.Where(`LOWER(email) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(email))+"%")
	}

	var users []model.User
	err := q.Order("name ASC").Limit(directoryLimit).Find(&users).Error
	return users, err
}

// MessageThread returns the bidirectional thread between two users, newest
// first.
func (s *gormStore) MessageThread(ctx context.Context, a, b int64) ([]model.Message, error) {
	var msgs []model.Message
	err := s.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at DESC").
		Find(&msgs).Error
	return msgs, err
}

// MarkThreadRead flags every message from sender to receiver as read and
// returns the number of messages affected.
func (s *gormStore) MarkThreadRead(ctx context.Context, receiverID, senderID int64) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read = ?", receiverID, senderID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}
