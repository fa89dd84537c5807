package model

// SpinResult - результат успешного спина
type SpinResult struct {
	WonAmount int
}

// BoardData - сводка главной страницы: участники, последние победители
// и статистика по инвентарю
type BoardData struct {
	Users          []User
	Winners        []WinnerRecord
	TierCount      int
	TotalRemaining int
	TotalPrizePool int
}

// WheelData - данные страницы колеса для выбранного участника
type WheelData struct {
	User    User
	Tiers   []PrizeTier
	Winners []WinnerRecord
}

// ManageData - сводка админской панели
type ManageData struct {
	Users          []User
	Prizes         []PrizeTier
	Winners        []WinnerRecord
	TotalRemaining int
	TotalPrizePool int
}
