package reqrestests

import (
	"net/http"

	"github.com/apicheck/reqres-contract-tests/expect"
	"github.com/apicheck/reqres-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func credentials(email, password string) servicedef.User {
	u := servicedef.User{Email: ldvalue.NewOptionalString(email)}
	if password != "" {
		u.Password = ldvalue.NewOptionalString(password)
	}
	return u
}

func DoRegisterTests(t *T) {
	t.Run("successful", func(t *T) {
		resp := t.Request(http.MethodPost, registerPath, credentials(knownEmail, registerPassword))
		t.RequireResponse(resp, expect.Status(200), expect.HasKey("id"), expect.HasKey("token"))
	})

	t.Run("missing password", func(t *T) {
		resp := t.Request(http.MethodPost, registerPath, credentials(registerOnlyMail, ""))
		t.RequireResponse(resp,
			expect.Status(400),
			expect.Value("error", missingPasswordText),
			expect.NoKey("token"),
		)
	})
}

func DoLoginTests(t *T) {
	t.Run("successful", func(t *T) {
		resp := t.Request(http.MethodPost, loginPath, credentials(knownEmail, loginPassword))
		t.RequireResponse(resp, expect.Status(200), expect.Value("token", expectedLoginToken))
	})

	t.Run("missing password", func(t *T) {
		resp := t.Request(http.MethodPost, loginPath, credentials(loginOnlyMail, ""))
		t.RequireResponse(resp,
			expect.Status(400),
			expect.Value("error", missingPasswordText),
			expect.NoKey("token"),
		)
	})
}
