package users

// Credential is the persisted secret material for one user. UpdatedAt is
// the unix time of the last credential-affecting change; it only ever moves
// forward, and every token issued before it is implicitly revoked.
type Credential struct {
	Username  string
	Salt      []byte
	Hash      string
	UpdatedAt int64
}
