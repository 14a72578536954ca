package reqrestests

import "fmt"

const (
	usersPath     = "/api/users"
	resourcesPath = "/api/unknown"
	registerPath  = "/api/register"
	loginPath     = "/api/login"
)

// These are the values that the API is known to return. If the API changes them, change them
// here.
const (
	missingID           = 23
	expectedTotal       = 12
	expectedLoginToken  = "QpwL5tke4Pnpja7X4"
	missingPasswordText = "Missing password"
)

// Credentials for the register and login scenarios. Only users that the API already knows about
// can register.
const (
	knownEmail       = "eve.holt@reqres.in"
	registerPassword = "pistol"
	loginPassword    = "cityslicka"
	registerOnlyMail = "sydney@fife"
	loginOnlyMail    = "peter@klaven"
)

func userPath(id int) string {
	return fmt.Sprintf("%s/%d", usersPath, id)
}

func resourcePath(id int) string {
	return fmt.Sprintf("%s/%d", resourcesPath, id)
}
