package domain

import (
	"errors"
	"time"
)

var ErrAssetNotFound = errors.New("asset not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidInput = errors.New("invalid input")

type invalidInputError struct {
	msg string
}

func (e *invalidInputError) Error() string { return e.msg }
func (e *invalidInputError) Unwrap() error { return ErrInvalidInput }

// InvalidInput returns a validation error whose message is rendered to the
// client verbatim. It matches ErrInvalidInput under errors.Is.
func InvalidInput(msg string) error {
	return &invalidInputError{msg: msg}
}

// Asset is a single watchlist position owned by a user. Owner holds the hex
// id of the owning user and is allowed to dangle after that user is deleted.
type Asset struct {
	ID          string    `json:"id"`
	Ticker      string    `json:"ticker"`
	Name        string    `json:"name"`
	TargetPrice float64   `json:"targetPrice"`
	Quantity    float64   `json:"quantity"`
	BuyPrice    float64   `json:"buyPrice"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssetOwner is the expanded owner view shown to admins in asset listings.
type AssetOwner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AdminAsset pairs an asset with its expanded owner for the admin listing.
type AdminAsset struct {
	Asset
	Owner AssetOwner `json:"owner"`
}
