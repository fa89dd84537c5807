package converter

import (
	dto "wheel_backend/internal/api/dto/admin"
	"wheel_backend/internal/model"
)

func ToManageResponse(data model.ManageData) dto.ManageResponse {
	users := make([]dto.UserResponse, len(data.Users))
	for i, u := range data.Users {
		users[i] = dto.UserResponse{
			ID:   u.ID,
			Name: u.Name,
			Used: u.Used,
		}
	}

	prizes := make([]dto.PrizeResponse, len(data.Prizes))
	for i, p := range data.Prizes {
		prizes[i] = dto.PrizeResponse{
			ID:       p.ID,
			Amount:   p.Amount,
			Quantity: p.Quantity,
		}
	}

	winners := make([]dto.WinnerResponse, len(data.Winners))
	for i, w := range data.Winners {
		winners[i] = dto.WinnerResponse{
			ID:    w.ID,
			Name:  w.Name,
			Prize: w.Prize,
			Date:  w.Date.Format(dateLayout),
		}
	}

	return dto.ManageResponse{
		Users:          users,
		Prizes:         prizes,
		Winners:        winners,
		TotalRemaining: data.TotalRemaining,
		TotalPrizePool: data.TotalPrizePool,
	}
}
