package port

type TokenPayload struct {
	Role string
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(role string) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
