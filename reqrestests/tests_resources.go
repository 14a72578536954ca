package reqrestests

import (
	"net/http"

	"github.com/apicheck/reqres-contract-tests/expect"
	"github.com/apicheck/reqres-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var fuchsiaRose = servicedef.Resource{
	ID:           ldvalue.NewOptionalInt(2),
	Name:         ldvalue.NewOptionalString("fuchsia rose"),
	Year:         ldvalue.NewOptionalInt(2001),
	Color:        ldvalue.NewOptionalString("#C74375"),
	PantoneValue: ldvalue.NewOptionalString("17-2031"),
}

func DoResourceTests(t *T) {
	t.Run("list resources", func(t *T) {
		resp := t.Request(http.MethodGet, resourcesPath, nil)
		t.RequireResponse(resp, expect.Status(200), expect.Value("total", expectedTotal))
	})

	t.Run("single resource", func(t *T) {
		resp := t.Request(http.MethodGet, resourcePath(fuchsiaRose.ID.IntValue()), nil)
		t.RequireResponse(resp, expect.Status(200), expect.Record("data", fuchsiaRose))
	})

	t.Run("single resource not found", func(t *T) {
		resp := t.Request(http.MethodGet, resourcePath(missingID), nil)
		t.RequireResponse(resp, expect.Status(404), expect.Body("{}"))
	})
}
