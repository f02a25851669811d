package model

import "time"

// User MySQL model for users table
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:idx_user_id_unique" json:"user_id"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:idx_user_email_unique" json:"email"`
	Name         string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:'EMPLOYEE'" json:"role"`
	Active       bool      `gorm:"column:active;not null;default:true" json:"active"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
