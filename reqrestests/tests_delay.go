package reqrestests

import (
	"fmt"
	"net/http"

	"github.com/apicheck/reqres-contract-tests/expect"
)

// DoDelayedResponseTest asks the API to wait before answering, and checks that the measured time
// is at least that long.
func DoDelayedResponseTest(t *T) {
	delay := t.delay()
	resp := t.Request(http.MethodGet, fmt.Sprintf("%s?delay=%d", usersPath, int(delay.Seconds())), nil)
	t.RequireResponse(resp, expect.Status(200), expect.ElapsedAtLeast(delay))
}
