package reqrestests

import (
	"github.com/apicheck/reqres-contract-tests/client"
	"github.com/apicheck/reqres-contract-tests/framework"
)

// RunTestSuite runs every scenario, in a fixed order, against the API that apiClient points to.
// A failing scenario never stops the run.
func RunTestSuite(
	apiClient *client.Client,
	options Options,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	env := &environment{client: apiClient, options: options}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newT(c, env)

		t.Group("users", DoUserTests)
		t.Group("resources", DoResourceTests)
		t.Group("register", DoRegisterTests)
		t.Group("login", DoLoginTests)
		t.Run("delayed response", DoDelayedResponseTest)
	})
}
