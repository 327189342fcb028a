package users

// User is a registered account. PassHash holds the hex SHA-256 digest of the
// password chosen at registration; the raw password is never persisted.
type User struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	PassHash string `db:"pass_hash"`
}
