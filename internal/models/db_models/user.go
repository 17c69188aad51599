package db_models

type User struct {
	BaseModel
	Name         string   `gorm:"size:200"`
	Email        string   `gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"size:20;not null"`
	IsActive     bool     `gorm:"not null"`
}
