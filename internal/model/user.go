package model

type UserRole string

const (
	RoleUser        UserRole = "user"
	RoleGlobalAdmin UserRole = "admin"
)

type User struct {
	BaseModel
	Name         string   `gorm:"size:100;not null" json:"name"`
	RollNumber   string   `gorm:"uniqueIndex;size:20;not null" json:"roll_number"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Department   string   `gorm:"size:100" json:"department"`
	PhoneNumber  string   `gorm:"size:20" json:"phone_number"`
	YearOfStudy  int      `json:"year_of_study"`
	Email        string   `gorm:"size:100;not null" json:"email"`
	Role         UserRole `gorm:"size:20;default:'user'" json:"role"`

	Memberships []ClubMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}
