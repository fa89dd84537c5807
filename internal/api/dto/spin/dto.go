package spin

type RegisterRequest struct {
	Name string `json:"name"` // Имя участника (уникальное)
}

type RegisterResponse struct {
	ID int `json:"id"` // ID созданного участника
}

type UserResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Used bool   `json:"used"` // Потратил ли участник свою попытку
}

type TierResponse struct {
	Amount   int `json:"amount"`   // Номинал приза
	Quantity int `json:"quantity"` // Остаток
}

type WinnerResponse struct {
	Name  string `json:"name"`
	Prize int    `json:"prize"`
	Date  string `json:"date"`
}

type BoardResponse struct {
	Users          []UserResponse   `json:"users"`
	Winners        []WinnerResponse `json:"winners"`          // Последние победители
	TierCount      int              `json:"tier_count"`       // Количество позиций инвентаря
	TotalRemaining int              `json:"total_remaining"`  // Суммарный остаток призов
	TotalPrizePool int              `json:"total_prize_pool"` // Суммарная стоимость остатка
}

type SelectResponse struct {
	UserID int `json:"user_id"` // Привязанный участник
}

type WheelResponse struct {
	User    UserResponse     `json:"user"`
	Tiers   []TierResponse   `json:"tiers"` // Только позиции с остатком
	Winners []WinnerResponse `json:"winners"`
}

type SpinResponse struct {
	Prize int `json:"prize"` // Выигранный номинал
}
