package models

// PointsResponse баланс очков пользователя
type PointsResponse struct {
	UserID int64 `json:"userId"`
	Points int   `json:"points"`
}

// UpdatePointsRequest запрос на изменение баланса.
// VerifyPoints: баланс, который видел администратор; если он изменился, запрос отклоняется.
type UpdatePointsRequest struct {
	Points       int `json:"points"`
	VerifyPoints int `json:"verifyPoints"`
}

// AdminAccount учётные данные администратора по умолчанию
type AdminAccount struct {
	Email    string
	Password string
	Name     string
	Surname  string
}
