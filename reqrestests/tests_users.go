package reqrestests

import (
	"net/http"

	"github.com/apicheck/reqres-contract-tests/expect"
	"github.com/apicheck/reqres-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

var (
	newUser = servicedef.User{
		Name: ldvalue.NewOptionalString("Evgeniy"),
		Job:  ldvalue.NewOptionalString("QA"),
	}
	updatedName = ldvalue.NewOptionalString("Mike")
	updatedJob  = ldvalue.NewOptionalString("AQA")
)

func DoUserTests(t *T) {
	t.Run("list users page 2", func(t *T) {
		resp := t.Request(http.MethodGet, usersPath+"?page=2", nil)
		t.RequireResponse(resp, expect.Status(200), expect.Value("total", expectedTotal))
	})

	t.Run("single user", func(t *T) {
		var page servicedef.UserPage
		resp := t.Request(http.MethodGet, usersPath, nil)
		t.RequireResponse(resp, expect.Status(200))
		t.RequireRecord(resp, &page)
		require.NotEmpty(t, page.Data, "user list was empty")

		first := page.Data[0]
		require.True(t, first.ID.IsDefined(), "first user in list has no id")
		t.Debug("comparing with user %d from the list", first.ID.IntValue())

		resp = t.Request(http.MethodGet, userPath(first.ID.IntValue()), nil)
		t.RequireResponse(resp, expect.Status(200), expect.Record("data", first))
	})

	t.Run("single user not found", func(t *T) {
		resp := t.Request(http.MethodGet, userPath(missingID), nil)
		t.RequireResponse(resp, expect.Status(404), expect.Body("{}"))
	})

	t.Run("create", func(t *T) {
		resp := t.Request(http.MethodPost, usersPath, newUser)
		t.RequireResponse(resp,
			expect.Status(201),
			expect.Record("", newUser),
			expect.HasKey("id"),
			expect.HasKey("createdAt"),
		)
	})

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		method := method
		t.Run("update with "+method, func(t *T) {
			id := createUser(t)
			update := servicedef.User{Name: updatedName, Job: updatedJob, ID: ldvalue.NewOptionalInt(id)}
			resp := t.Request(method, userPath(id), update)
			t.RequireResponse(resp,
				expect.Status(200),
				expect.Record("", update),
				expect.HasKey("updatedAt"),
			)
		})
	}

	t.Run("delete", func(t *T) {
		id := createUser(t)
		resp := t.Request(http.MethodDelete, userPath(id), nil)
		t.RequireResponse(resp, expect.Status(204), expect.Body(""))
	})
}

// createUser creates the standard new user and returns the id assigned to it. The API returns
// the id as a string; it is read back as a number.
func createUser(t *T) int {
	resp := t.Request(http.MethodPost, usersPath, newUser)
	t.RequireResponse(resp, expect.Status(201), expect.HasKey("id"))
	var created servicedef.User
	t.RequireRecord(resp, &created)
	require.True(t, created.ID.IsDefined(), "created user has no id")
	t.Debug("created user %d", created.ID.IntValue())
	return created.ID.IntValue()
}
