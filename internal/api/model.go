package api

type checkRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Email    string `json:"email" form:"email" binding:"omitempty,email"`
}

type checkResponse struct {
	Score          int             `json:"score"`
	Classification string          `json:"classification"`
	Messages       []string        `json:"messages"`
	Entropy        float64         `json:"entropy"`
	CrackTime      string          `json:"crackTime"`
	Persisted      bool            `json:"persisted"`
	Zxcvbn         *zxcvbnStrength `json:"zxcvbn,omitempty"`
}

type zxcvbnStrength struct {
	Score            int    `json:"score"`
	CrackTimeDisplay string `json:"crackTimeDisplay"`
}
