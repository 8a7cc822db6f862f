package scope

// Payload is the verified content of an access token.
type Payload struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Department string `json:"department"`

	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
	Id        string `json:"jti"`
	Issuer    string `json:"iss"`
}
