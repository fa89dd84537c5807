package admin

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddPrizeRequest struct {
	Amount   int `json:"amount"`   // Номинал приза (положительный)
	Quantity int `json:"quantity"` // Количество (неотрицательное)
}

type AddPrizeResponse struct {
	ID int `json:"id"` // ID созданной позиции
}

type AddUserRequest struct {
	Name string `json:"name"` // Имя участника (уникальное)
}

type AddUserResponse struct {
	ID int `json:"id"` // ID созданного участника
}

type ChangePasswordRequest struct {
	Password string `json:"password"` // Новый пароль администратора
}

type UserResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Used bool   `json:"used"`
}

type PrizeResponse struct {
	ID       int `json:"id"`
	Amount   int `json:"amount"`
	Quantity int `json:"quantity"`
}

type WinnerResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Prize int    `json:"prize"`
	Date  string `json:"date"`
}

type ManageResponse struct {
	Users          []UserResponse   `json:"users"`
	Prizes         []PrizeResponse  `json:"prizes"`
	Winners        []WinnerResponse `json:"winners"`          // Последние победители
	TotalRemaining int              `json:"total_remaining"`  // Суммарный остаток призов
	TotalPrizePool int              `json:"total_prize_pool"` // Суммарная стоимость остатка
}
