package dto

import (
	"encoding/json"
	"time"

	"github.com/ueberboese/ueberboese-api/internal/service"
)

type Speaker struct {
	IPAddress string `json:"ipAddress"`
}

type SpeakersResponse struct {
	Speakers []Speaker `json:"speakers"`
}

func SpeakersFromService(devices []service.TrackedDevice) SpeakersResponse {
	out := SpeakersResponse{Speakers: make([]Speaker, 0, len(devices))}
	for _, d := range devices {
		out.Speakers = append(out.Speakers, Speaker{IPAddress: d.IPAddress})
	}
	return out
}

type DeviceEventsResponse struct {
	DeviceID string            `json:"deviceId"`
	Events   []json.RawMessage `json:"events"`
}

type InitSpotifyAuthResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

type ConfirmSpotifyAuthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	AccountID string `json:"accountId"`
}

// SpotifyAccount never carries the refresh token.
type SpotifyAccount struct {
	SpotifyUserID string    `json:"spotifyUserId"`
	DisplayName   string    `json:"displayName"`
	CreatedAt     time.Time `json:"createdAt"`
}

type SpotifyAccountsResponse struct {
	Accounts []SpotifyAccount `json:"accounts"`
}

func SpotifyAccountsFromService(accounts []service.SpotifyAccount) SpotifyAccountsResponse {
	out := SpotifyAccountsResponse{Accounts: make([]SpotifyAccount, 0, len(accounts))}
	for _, a := range accounts {
		out.Accounts = append(out.Accounts, SpotifyAccount{
			SpotifyUserID: a.SpotifyUserID,
			DisplayName:   a.DisplayName,
			CreatedAt:     a.CreatedAt,
		})
	}
	return out
}

type SpotifyEntityRequest struct {
	URI string `json:"uri"`
}

type SpotifyEntityResponse struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl"`
}
