package handler

import "github.com/cryptotrack/portfolio-api/internal/core/domain"

// --- Request types ---

// registerRequest checks presence only; the email is not validated for
// shape, any non-empty string is accepted.
type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// createAssetRequest uses pointers for the numeric fields so a missing field
// is distinguishable from an explicit zero. Zero is legal on create.
type createAssetRequest struct {
	Ticker      string   `json:"ticker"      validate:"required"`
	Name        string   `json:"name"        validate:"required"`
	TargetPrice *float64 `json:"targetPrice" validate:"required,gte=0"`
	Quantity    *float64 `json:"quantity"    validate:"required,gte=0"`
	BuyPrice    *float64 `json:"buyPrice"    validate:"required,gte=0"`
}

// updateAssetRequest carries no validate tags: the service validates after
// the existence and ownership checks, so a bad body against an unknown or
// foreign asset still answers 404/403. Update also demands strictly positive
// numerics, unlike create.
type updateAssetRequest struct {
	Ticker      string   `json:"ticker"`
	Name        string   `json:"name"`
	TargetPrice *float64 `json:"targetPrice"`
	Quantity    *float64 `json:"quantity"`
	BuyPrice    *float64 `json:"buyPrice"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// --- Response types ---

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type assetResponse struct {
	Asset *domain.Asset `json:"asset"`
}

type assetsResponse struct {
	Assets any `json:"assets"`
}

type usersResponse struct {
	Users []*domain.User `json:"users"`
}

type userUpdatedResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}
