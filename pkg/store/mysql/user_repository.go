package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// UserRepository handles user persistence in MySQL
type UserRepository struct {
	ds *Datastore
}

// NewUserRepository creates a new user repository
func NewUserRepository(ds *Datastore) *UserRepository {
	return &UserRepository{ds: ds}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *User) error {
	return r.ds.DB(ctx).Create(user).Error
}

// Get retrieves a user by user_id, nil when not found
func (r *UserRepository) Get(ctx context.Context, userID string) (*User, error) {
	var user User
	err := r.ds.DB(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, nil when not found
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.ds.DB(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// List retrieves all users, newest first
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*User, error) {
	if limit <= 0 {
		limit = 50
	}
	var users []*User
	err := r.ds.DB(ctx).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateFields updates specific fields of a user by user_id
func (r *UserRepository) UpdateFields(ctx context.Context, userID string, updates map[string]interface{}) error {
	return r.ds.DB(ctx).Model(&User{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}
