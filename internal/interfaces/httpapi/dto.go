package httpapi

import (
	"context"
	"time"

	"github.com/pickemhq/pickem-api/internal/domain/game"
	"github.com/pickemhq/pickem-api/internal/domain/gameresult"
	"github.com/pickemhq/pickem-api/internal/domain/pick"
	"github.com/pickemhq/pickem-api/internal/domain/user"
)

type userDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type gameDTO struct {
	GameCode int64     `json:"gameCode"`
	WeekID   int       `json:"weekId"`
	HomeTeam string    `json:"homeTeam"`
	AwayTeam string    `json:"awayTeam"`
	GameDate time.Time `json:"gameDate"`
}

type gameResultDTO struct {
	GameID     int64     `json:"gameId"`
	Week       int       `json:"week"`
	HomeTeam   string    `json:"homeTeam"`
	AwayTeam   string    `json:"awayTeam"`
	HomeScore  *int      `json:"homeScore"`
	AwayScore  *int      `json:"awayScore"`
	WinnerTeam *string   `json:"winnerTeam"`
	GameDate   time.Time `json:"gameDate"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type savedPickDTO struct {
	UserID     int64     `json:"userId"`
	Week       int       `json:"week"`
	GameID     int64     `json:"gameId"`
	PickedTeam string    `json:"pickedTeam"`
	IsCorrect  *bool     `json:"isCorrect"`
	HomeTeam   string    `json:"homeTeam"`
	AwayTeam   string    `json:"awayTeam"`
	GameDate   time.Time `json:"gameDate"`
}

type weekDetailDTO struct {
	UserID     int64   `json:"userId"`
	Username   string  `json:"user"`
	Week       int     `json:"week"`
	GameID     int64   `json:"gameId"`
	PickedTeam string  `json:"pickedTeam"`
	IsCorrect  *bool   `json:"isCorrect"`
	WinnerTeam *string `json:"winnerTeam"`
}

type grandTotalDTO struct {
	Username string `json:"user"`
	Total    int    `json:"total"`
}

func userToDTO(_ context.Context, u user.User) userDTO {
	return userDTO{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

func gameToDTO(_ context.Context, g game.Game) gameDTO {
	return gameDTO{
		GameCode: g.Code,
		WeekID:   g.WeekID,
		HomeTeam: g.HomeTeam,
		AwayTeam: g.AwayTeam,
		GameDate: g.GameDate,
	}
}

func gameResultToDTO(_ context.Context, result gameresult.Result) gameResultDTO {
	return gameResultDTO{
		GameID:     result.GameID,
		Week:       result.Week,
		HomeTeam:   result.HomeTeam,
		AwayTeam:   result.AwayTeam,
		HomeScore:  result.HomeScore,
		AwayScore:  result.AwayScore,
		WinnerTeam: result.WinnerTeam,
		GameDate:   result.GameDate,
		UpdatedAt:  result.UpdatedAt,
	}
}

func savedPickToDTO(_ context.Context, saved pick.SavedPick) savedPickDTO {
	return savedPickDTO{
		UserID:     saved.UserID,
		Week:       saved.Week,
		GameID:     saved.GameID,
		PickedTeam: saved.PickedTeam,
		IsCorrect:  saved.IsCorrect,
		HomeTeam:   saved.HomeTeam,
		AwayTeam:   saved.AwayTeam,
		GameDate:   saved.GameDate,
	}
}

func weekDetailToDTO(_ context.Context, detail pick.WeekDetail) weekDetailDTO {
	return weekDetailDTO{
		UserID:     detail.UserID,
		Username:   detail.Username,
		Week:       detail.Week,
		GameID:     detail.GameID,
		PickedTeam: detail.PickedTeam,
		IsCorrect:  detail.IsCorrect,
		WinnerTeam: detail.WinnerTeam,
	}
}
