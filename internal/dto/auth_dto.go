package dto

type SignupReq struct {
	Name        string `json:"name" binding:"required"`
	RollNumber  string `json:"roll_number" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	Department  string `json:"department"`
	PhoneNumber string `json:"phone_number"`
	YearOfStudy int    `json:"year_of_study"`
}

type LoginReq struct {
	RollNumber string `json:"roll_number" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type LoginResp struct {
	Token      string `json:"token"`
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Role       string `json:"role"`
}

type SecurityCodeReq struct {
	RollNumber string `json:"roll_number" binding:"required"`
}

type ResetPasswordReq struct {
	RollNumber  string `json:"roll_number" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
