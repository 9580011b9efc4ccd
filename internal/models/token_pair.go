package models

// TokenPair — пара токенов, возвращаемая при логине и ротации.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
