package auth

import (
	"golang.org/x/crypto/bcrypt"

	"successspace/errs"
	"successspace/models"
	"successspace/store"
)

type seedUser struct {
	user     models.User
	password string
}

// SeedUsers writes the default accounts on first run. Passwords are stored
// only as bcrypt hashes.
func SeedUsers(s *store.Store) error {
	if s.Exists(store.Users) {
		return nil
	}
	seeds := []seedUser{
		{models.User{ID: "u_admin", Role: models.RoleAdmin, Name: "Admin User", Email: "admin@success.space"}, "admin123"},
		{models.User{ID: "u_staff", Role: models.RoleStaff, Name: "Cafe Staff", Email: "staff@success.space"}, "staff123"},
		{models.User{ID: "u_cust", Role: models.RoleCustomer, Name: "Customer One", Email: "customer@success.space", Membership: "Gold", DiscountPercent: 10}, "customer123"},
	}
	users := make([]models.User, 0, len(seeds))
	for _, sd := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(sd.password), bcrypt.DefaultCost)
		if err != nil {
			return errs.Storage(store.Users, err)
		}
		sd.user.Password = string(hash)
		users = append(users, sd.user)
	}
	return store.Replace(s, store.Users, users)
}
