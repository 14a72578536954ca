package reqrestests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

const fakeFirstID = 100

var (
	fakeFirstNames = []string{"George", "Janet", "Emma", "Eve", "Charles", "Tracey",
		"Michael", "Lindsay", "Tobias", "Byron", "George", "Rachel"}
	fakeLastNames = []string{"Bluth", "Weaver", "Wong", "Holt", "Morris", "Ramos",
		"Lawson", "Ferguson", "Funke", "Fields", "Edwards", "Howell"}
)

// fakeAPI behaves like the parts of reqres that the suite uses. Fields can be changed to make it
// misbehave in one specific way.
type fakeAPI struct {
	loginToken   string
	ignoreDelay  bool
	notFoundBody string

	lock     sync.Mutex
	nextID   int
	requests []fakeRequest
}

type fakeRequest struct {
	Method string
	URI    string
	Body   string
	APIKey string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{loginToken: expectedLoginToken, notFoundBody: "{}", nextID: fakeFirstID}
}

func (f *fakeAPI) handler() http.Handler {
	notFound := httphelpers.HandlerWithResponse(404, nil, []byte(f.notFoundBody))

	r := chi.NewRouter()
	r.Use(f.record)
	r.NotFound(notFound.ServeHTTP)

	r.Route(usersPath, func(r chi.Router) {
		r.Get("/", f.listUsers)
		r.Post("/", f.createUser)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				id, ok := knownID(req)
				if !ok {
					notFound.ServeHTTP(w, req)
					return
				}
				httphelpers.HandlerWithJSONResponse(map[string]interface{}{"data": fakeUser(id)}, nil).ServeHTTP(w, req)
			})
			r.Put("/", f.updateUser)
			r.Patch("/", f.updateUser)
			r.Delete("/", httphelpers.HandlerWithStatus(204).ServeHTTP)
		})
	})

	r.Route(resourcesPath, func(r chi.Router) {
		r.Get("/", httphelpers.HandlerWithJSONResponse(
			map[string]interface{}{"page": 1, "per_page": 6, "total": expectedTotal, "total_pages": 2,
				"data": []interface{}{fakeResource(1), fakeResource(2)}}, nil).ServeHTTP)
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			id, ok := knownID(req)
			if !ok {
				notFound.ServeHTTP(w, req)
				return
			}
			httphelpers.HandlerWithJSONResponse(map[string]interface{}{"data": fakeResource(id)}, nil).ServeHTTP(w, req)
		})
	})

	r.Post(registerPath, func(w http.ResponseWriter, req *http.Request) {
		creds := readBody(req)
		switch {
		case creds["password"] == nil:
			writeJSON(w, 400, map[string]interface{}{"error": missingPasswordText})
		case creds["email"] != knownEmail:
			writeJSON(w, 400, map[string]interface{}{"error": "Note: Only defined users succeed registration"})
		default:
			writeJSON(w, 200, map[string]interface{}{"id": 4, "token": expectedLoginToken})
		}
	})
	r.Post(loginPath, func(w http.ResponseWriter, req *http.Request) {
		creds := readBody(req)
		if creds["password"] == nil {
			writeJSON(w, 400, map[string]interface{}{"error": missingPasswordText})
			return
		}
		writeJSON(w, 200, map[string]interface{}{"token": f.loginToken})
	})
	return r
}

func (f *fakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)
		r.Body = ioutil.NopCloser(bytes.NewReader(body))
		f.lock.Lock()
		f.requests = append(f.requests, fakeRequest{
			Method: r.Method, URI: r.URL.RequestURI(), Body: string(body), APIKey: r.Header.Get("x-api-key"),
		})
		f.lock.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *fakeAPI) recorded() []fakeRequest {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]fakeRequest(nil), f.requests...)
}

func (f *fakeAPI) listUsers(w http.ResponseWriter, r *http.Request) {
	if delay, err := strconv.Atoi(r.URL.Query().Get("delay")); err == nil && !f.ignoreDelay {
		time.Sleep(time.Duration(delay) * time.Second)
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	var users []interface{}
	for id := (page-1)*6 + 1; id <= page*6 && id <= expectedTotal; id++ {
		users = append(users, fakeUser(id))
	}
	writeJSON(w, 200, map[string]interface{}{
		"page": page, "per_page": 6, "total": expectedTotal, "total_pages": 2, "data": users,
	})
}

func (f *fakeAPI) createUser(w http.ResponseWriter, r *http.Request) {
	f.lock.Lock()
	id := f.nextID
	f.nextID++
	f.lock.Unlock()
	body := readBody(r)
	body["id"] = strconv.Itoa(id)
	body["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, 201, body)
}

func fakeUser(id int) map[string]interface{} {
	first, last := fakeFirstNames[id-1], fakeLastNames[id-1]
	return map[string]interface{}{
		"id":         id,
		"email":      fmt.Sprintf("%s.%s@reqres.in", strings.ToLower(first), strings.ToLower(last)),
		"first_name": first,
		"last_name":  last,
		"avatar":     fmt.Sprintf("https://reqres.in/img/faces/%d-image.jpg", id),
	}
}

func fakeResource(id int) map[string]interface{} {
	if id == 2 {
		return map[string]interface{}{
			"id": 2, "name": "fuchsia rose", "year": 2001, "color": "#C74375", "pantone_value": "17-2031",
		}
	}
	return map[string]interface{}{
		"id": id, "name": fmt.Sprintf("colour %d", id), "year": 1999 + id, "color": "#000000", "pantone_value": "00-0000",
	}
}

func (f *fakeAPI) updateUser(w http.ResponseWriter, r *http.Request) {
	body := readBody(r)
	body["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, 200, body)
}

func knownID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id >= 1 && id <= expectedTotal
}

func readBody(r *http.Request) map[string]interface{} {
	ret := make(map[string]interface{})
	data, _ := ioutil.ReadAll(r.Body)
	_ = json.Unmarshal(data, &ret)
	return ret
}

func writeJSON(w http.ResponseWriter, status int, content interface{}) {
	data, _ := json.Marshal(content)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
