package converter

import (
	dto "wheel_backend/internal/api/dto/spin"
	"wheel_backend/internal/model"
)

const dateLayout = "2006-01-02 15:04:05"

func ToBoardResponse(data model.BoardData) dto.BoardResponse {
	return dto.BoardResponse{
		Users:          toUsers(data.Users),
		Winners:        toWinners(data.Winners),
		TierCount:      data.TierCount,
		TotalRemaining: data.TotalRemaining,
		TotalPrizePool: data.TotalPrizePool,
	}
}

func ToSelectResponse(session model.SpinSession) dto.SelectResponse {
	return dto.SelectResponse{
		UserID: session.UserID,
	}
}

func ToWheelResponse(data model.WheelData) dto.WheelResponse {
	tiers := make([]dto.TierResponse, len(data.Tiers))
	for i, t := range data.Tiers {
		tiers[i] = dto.TierResponse{
			Amount:   t.Amount,
			Quantity: t.Quantity,
		}
	}

	return dto.WheelResponse{
		User: dto.UserResponse{
			ID:   data.User.ID,
			Name: data.User.Name,
			Used: data.User.Used,
		},
		Tiers:   tiers,
		Winners: toWinners(data.Winners),
	}
}

func ToSpinResponse(result model.SpinResult) dto.SpinResponse {
	return dto.SpinResponse{
		Prize: result.WonAmount,
	}
}

func toUsers(users []model.User) []dto.UserResponse {
	result := make([]dto.UserResponse, len(users))
	for i, u := range users {
		result[i] = dto.UserResponse{
			ID:   u.ID,
			Name: u.Name,
			Used: u.Used,
		}
	}
	return result
}

func toWinners(winners []model.WinnerRecord) []dto.WinnerResponse {
	result := make([]dto.WinnerResponse, len(winners))
	for i, w := range winners {
		result[i] = dto.WinnerResponse{
			Name:  w.Name,
			Prize: w.Prize,
			Date:  w.Date.Format(dateLayout),
		}
	}
	return result
}
