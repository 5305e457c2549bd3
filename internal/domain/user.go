package domain

// User is a registered storefront customer. Password holds the hex digest of
// the password, never the plaintext.
type User struct {
	ID         int64
	FirstName  string
	LastName   string
	Username   string
	Email      string
	Password   string
	City       string
	PostalCode string
}
