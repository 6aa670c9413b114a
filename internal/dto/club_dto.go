package dto

type CreateClubReq struct {
	Name    string            `json:"name" binding:"required"`
	About   string            `json:"about"`
	Socials map[string]string `json:"socials"`
}

type ClubResp struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	About string `json:"about"`
}

type AddClubAdminReq struct {
	ClubID uint   `json:"club_id" binding:"required"`
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}
