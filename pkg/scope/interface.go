package scope

// Manager verifies access tokens and turns them into a Payload.
type Manager interface {
	Verify(token string) (Payload, error)
}
